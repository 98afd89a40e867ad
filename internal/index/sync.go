package index

import (
	"log/slog"
	"time"

	"github.com/harlowe/plume/internal/checksum"
	"github.com/harlowe/plume/internal/frontmatter"
	"github.com/harlowe/plume/internal/storage"
)

// Sync walks the content root and brings the index up to date:
//   - new/changed files are parsed and upserted
//   - files removed from disk are deleted from the index
//
// Per-file failures are logged and skipped; the pass always covers every
// remaining post.
func Sync(db *DB, store storage.Provider, logger *slog.Logger) error {
	metas, failures, err := store.List("")
	if err != nil {
		return err
	}
	for _, f := range failures {
		logger.Warn("sync: unreadable file skipped", slog.String("path", f.Path), slog.String("error", f.Err.Error()))
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		if checksums[m.Path] == m.Checksum {
			continue
		}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		if err := indexFile(db, m.Path, data, m.UpdatedAt); err != nil {
			logger.Warn("sync: index failed", slog.String("path", m.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("path", m.Path))
		}
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeletePost(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// indexFile parses data and upserts it into the DB. Front-matter parsing is
// lenient and never fails; the only error paths here are database ones.
func indexFile(db *DB, path string, data []byte, updatedAt time.Time) error {
	res := frontmatter.Parse(data)

	title := res.Title
	if title == "" {
		// Posts without a front-matter title still deserve a display title
		// in listings and search.
		title = frontmatter.FirstHeading(res.Body)
	}

	row := PostRow{
		Path:      path,
		Title:     title,
		Date:      res.Date,
		Draft:     res.Draft,
		Checksum:  checksum.Sum(data),
		Tags:      res.Tags,
		UpdatedAt: updatedAt,
	}
	return db.UpsertPost(row, res.Body)
}
