package index

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PostRow represents a row in the posts table.
type PostRow struct {
	Path      string
	Title     string
	Date      string // opaque front-matter date string
	Draft     bool
	Checksum  string
	Tags      []string
	UpdatedAt time.Time
}

// SearchResult represents one search hit.
type SearchResult struct {
	Path    string
	Title   string
	Snippet string
}

// TagCount is one entry of the tag summary.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// ListOptions controls post listings.
type ListOptions struct {
	Limit         int
	Offset        int
	Tag           string // filter to posts carrying this tag
	Sort          string // updated_at (default) | title | path | date
	IncludeDrafts bool
}

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// UpsertPost inserts or replaces a post, its tag rows, and its FTS entry
// within a transaction.
func (db *DB) UpsertPost(p PostRow, body string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	tagsJSON, _ := json.Marshal(p.Tags)

	// Upsert posts table (includes body for fallback search).
	_, err = tx.Exec(`
		INSERT INTO posts (path, title, date, draft, checksum, tags, body, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			title      = excluded.title,
			date       = excluded.date,
			draft      = excluded.draft,
			checksum   = excluded.checksum,
			tags       = excluded.tags,
			body       = excluded.body,
			updated_at = excluded.updated_at
	`, p.Path, p.Title, p.Date, boolInt(p.Draft), p.Checksum, string(tagsJSON), body, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert post: %w", err)
	}

	// FTS upsert (no-op when the sqlite_fts5 tag is absent).
	if err := ftsUpsert(tx, p.Path, p.Title, body, p.Tags); err != nil {
		return err
	}

	// Replace tag rows: delete old then bulk insert.
	_, _ = tx.Exec(`DELETE FROM post_tags WHERE path = ?`, p.Path)
	if len(p.Tags) > 0 {
		stmt, err := tx.Prepare(`INSERT OR IGNORE INTO post_tags (path, tag) VALUES (?, ?)`)
		if err != nil {
			return fmt.Errorf("index: prepare tag insert: %w", err)
		}
		defer stmt.Close()
		for _, tag := range p.Tags {
			if _, err := stmt.Exec(p.Path, tag); err != nil {
				return fmt.Errorf("index: insert tag: %w", err)
			}
		}
	}

	return tx.Commit()
}

// DeletePost removes a post, its FTS entry, and its tag rows.
func (db *DB) DeletePost(path string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, path)
	_, _ = tx.Exec(`DELETE FROM post_tags WHERE path = ?`, path)
	_, _ = tx.Exec(`DELETE FROM posts WHERE path = ?`, path)

	return tx.Commit()
}

// GetPost returns a single post row, or nil if not indexed.
func (db *DB) GetPost(path string) (*PostRow, error) {
	row := db.conn.QueryRow(`
		SELECT path, title, date, draft, checksum, tags, updated_at
		FROM posts WHERE path = ?
	`, path)
	p, err := scanPostRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("index: get post: %w", err)
	}
	return p, nil
}

// GetChecksum returns the stored checksum for a post, or empty string if not
// indexed.
func (db *DB) GetChecksum(path string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM posts WHERE path = ?`, path).Scan(&cs)
	if err != nil {
		return "", nil // not found is fine
	}
	return cs, nil
}

// AllChecksums returns path → checksum for every indexed post.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM posts`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

// ListPosts returns a page of posts plus the total count for the same filter.
func (db *DB) ListPosts(opts ListOptions) ([]PostRow, int, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	where := ` WHERE 1=1`
	var args []any
	if !opts.IncludeDrafts {
		where += ` AND draft = 0`
	}
	if opts.Tag != "" {
		where += ` AND path IN (SELECT path FROM post_tags WHERE tag = ?)`
		args = append(args, opts.Tag)
	}

	var total int
	if err := db.conn.QueryRow(`SELECT count(*) FROM posts`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("index: count posts: %w", err)
	}

	order := orderClause(opts.Sort)
	query := `SELECT path, title, date, draft, checksum, tags, updated_at FROM posts` +
		where + order + ` LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("index: list posts: %w", err)
	}
	defer rows.Close()

	var out []PostRow
	for rows.Next() {
		p, err := scanPostRow(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *p)
	}
	return out, total, rows.Err()
}

// ListTags returns every tag with its post count, most used first.
func (db *DB) ListTags() ([]TagCount, error) {
	rows, err := db.conn.Query(`
		SELECT tag, count(*) FROM post_tags
		GROUP BY tag
		ORDER BY count(*) DESC, tag ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("index: list tags: %w", err)
	}
	defer rows.Close()

	var out []TagCount
	for rows.Next() {
		var tc TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, err
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}

// orderClause whitelists sort fields; anything unknown falls back to
// updated_at. Dates are opaque strings, so date ordering is lexicographic,
// which works for the ISO-8601-like values the corpus uses.
func orderClause(sort string) string {
	switch sort {
	case "title":
		return ` ORDER BY title ASC, path ASC`
	case "path":
		return ` ORDER BY path ASC`
	case "date":
		return ` ORDER BY date DESC, path ASC`
	default:
		return ` ORDER BY updated_at DESC, path ASC`
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPostRow(r rowScanner) (*PostRow, error) {
	var p PostRow
	var draft int
	var tagsJSON string
	if err := r.Scan(&p.Path, &p.Title, &p.Date, &draft, &p.Checksum, &tagsJSON, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Draft = draft != 0
	if err := json.Unmarshal([]byte(tagsJSON), &p.Tags); err != nil {
		p.Tags = nil
	}
	return &p, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
