// Package postservice coordinates content-root storage and the post index.
package postservice

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/harlowe/plume/internal/apperr"
	"github.com/harlowe/plume/internal/checksum"
	"github.com/harlowe/plume/internal/frontmatter"
	"github.com/harlowe/plume/internal/index"
	"github.com/harlowe/plume/internal/storage"
)

// PostDetail is the full representation of a post.
type PostDetail struct {
	Path        string                    `json:"path"`
	Title       string                    `json:"title"`
	Date        string                    `json:"date,omitempty"`
	Draft       bool                      `json:"draft"`
	Tags        []string                  `json:"tags"`
	Content     string                    `json:"content"` // raw file, front matter included
	Body        string                    `json:"body"`    // markdown body only
	Checksum    string                    `json:"checksum"`
	Diagnostics []frontmatter.Diagnostic  `json:"diagnostics,omitempty"`
	UpdatedAt   time.Time                 `json:"updated_at"`
}

// PostListItem is a lightweight item in a list response.
type PostListItem struct {
	Path      string    `json:"path"`
	Title     string    `json:"title"`
	Date      string    `json:"date,omitempty"`
	Draft     bool      `json:"draft"`
	Tags      []string  `json:"tags"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Service coordinates storage and index operations.
type Service struct {
	store storage.Provider
	db    *index.DB
}

// NewService creates a new post service.
func NewService(store storage.Provider, db *index.DB) *Service {
	return &Service{store: store, db: db}
}

// GetPost reads a post from storage and parses its front matter.
func (s *Service) GetPost(_ context.Context, path string) (*PostDetail, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return s.buildDetail(path, data)
}

// CreatePost writes a new post and indexes it.
func (s *Service) CreatePost(_ context.Context, path string, content []byte) (*PostDetail, error) {
	if _, err := s.store.Read(path); err == nil {
		return nil, apperr.ErrAlreadyExists
	}
	if err := s.store.Write(path, content); err != nil {
		return nil, err
	}
	if err := s.IndexFile(path, content); err != nil {
		return nil, err
	}
	return s.buildDetail(path, content)
}

// UpdatePost writes updated content with optimistic concurrency: when ifMatch
// is non-empty it must equal the checksum of the current content.
func (s *Service) UpdatePost(_ context.Context, path string, content []byte, ifMatch string) (*PostDetail, error) {
	existing, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if ifMatch != "" && ifMatch != checksum.Sum(existing) {
		return nil, apperr.ErrConflict
	}
	if err := s.store.Write(path, content); err != nil {
		return nil, err
	}
	if err := s.IndexFile(path, content); err != nil {
		return nil, err
	}
	return s.buildDetail(path, content)
}

// DeletePost removes a post from storage and index.
func (s *Service) DeletePost(_ context.Context, path string) error {
	if err := s.store.Delete(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return apperr.ErrNotFound
		}
		return err
	}
	return s.db.DeletePost(path)
}

// ListPosts returns paginated posts. Drafts are excluded unless requested.
func (s *Service) ListPosts(_ context.Context, opts index.ListOptions) ([]PostListItem, int, error) {
	rows, total, err := s.db.ListPosts(opts)
	if err != nil {
		return nil, 0, err
	}
	items := make([]PostListItem, len(rows))
	for i, r := range rows {
		items[i] = PostListItem{
			Path:      r.Path,
			Title:     r.Title,
			Date:      r.Date,
			Draft:     r.Draft,
			Tags:      nonNilSlice(r.Tags),
			Checksum:  r.Checksum,
			UpdatedAt: r.UpdatedAt,
		}
	}
	return items, total, nil
}

// ListTags returns the tag summary.
func (s *Service) ListTags(_ context.Context) ([]index.TagCount, error) {
	return s.db.ListTags()
}

// Search delegates full-text search to the index.
func (s *Service) Search(_ context.Context, query string, limit int, includeDrafts bool) ([]index.SearchResult, error) {
	return s.db.Search(query, limit, includeDrafts)
}

// IndexFile parses data and upserts it into the index.
// Exported so that sync and watcher paths can reuse it.
func (s *Service) IndexFile(path string, data []byte) error {
	res := frontmatter.Parse(data)
	return s.db.UpsertPost(index.PostRow{
		Path:      path,
		Title:     displayTitle(res),
		Date:      res.Date,
		Draft:     res.Draft,
		Checksum:  checksum.Sum(data),
		Tags:      nonNilSlice(res.Tags),
		UpdatedAt: time.Now(),
	}, res.Body)
}

// buildDetail constructs a PostDetail from raw data without re-reading the
// file. Parse diagnostics ride along so callers can surface authoring
// warnings; they never block the response.
func (s *Service) buildDetail(path string, data []byte) (*PostDetail, error) {
	res := frontmatter.Parse(data)

	updatedAt := time.Now()
	if row, err := s.db.GetPost(path); err == nil && row != nil {
		updatedAt = row.UpdatedAt
	}

	return &PostDetail{
		Path:        path,
		Title:       displayTitle(res),
		Date:        res.Date,
		Draft:       res.Draft,
		Tags:        nonNilSlice(res.Tags),
		Content:     string(data),
		Body:        res.Body,
		Checksum:    checksum.Sum(data),
		Diagnostics: res.Diagnostics,
		UpdatedAt:   updatedAt,
	}, nil
}

// displayTitle prefers the front-matter title and falls back to the first H1
// heading. The parser itself reports an empty title for missing front matter;
// the fallback is purely a presentation concern.
func displayTitle(res *frontmatter.Result) string {
	if res.Title != "" {
		return res.Title
	}
	return frontmatter.FirstHeading(res.Body)
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
