package api

import (
	"github.com/harlowe/plume/internal/frontmatter"
	"github.com/harlowe/plume/internal/index"
	"github.com/harlowe/plume/internal/postservice"
)

// CreatePostRequest is the request body for creating a post.
type CreatePostRequest struct {
	Path    string `json:"path" example:"posts/hello.md" validate:"required"`
	Content string `json:"content" example:"---\ntitle: Hello\n---\nWorld" validate:"required"`
}

// UpdatePostRequest is the request body for updating a post.
type UpdatePostRequest struct {
	Content string `json:"content" example:"---\ntitle: Updated\n---\nContent" validate:"required"`
}

// PostDetail is the full post response type (aliased from the domain layer).
type PostDetail = postservice.PostDetail

// PostListItem is a lightweight item in a list response (aliased from the domain layer).
type PostListItem = postservice.PostListItem

// PostListResponse wraps paginated post listings.
type PostListResponse struct {
	Posts []PostListItem `json:"posts" validate:"required"`
	Total int            `json:"total" example:"42" validate:"required"`
}

// SearchResult is a single search hit (aliased from the index layer).
type SearchResult = index.SearchResult

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResult `json:"results" validate:"required"`
}

// TagListResponse wraps the tag summary.
type TagListResponse struct {
	Tags []index.TagCount `json:"tags" validate:"required"`
}

// PreviewRequest is the request body for a dry-run render.
type PreviewRequest struct {
	Content string `json:"content" example:"---\ntitle: Draft\n---\n# Hi" validate:"required"`
}

// PreviewResponse carries parsed metadata, rendered HTML, and any authoring
// diagnostics for the submitted content.
type PreviewResponse struct {
	Title       string                   `json:"title"`
	Date        string                   `json:"date,omitempty"`
	Draft       bool                     `json:"draft"`
	Tags        []string                 `json:"tags"`
	HTML        string                   `json:"html"`
	Diagnostics []frontmatter.Diagnostic `json:"diagnostics"`
}

// AttachmentUploadResponse is returned after a successful attachment upload.
type AttachmentUploadResponse struct {
	Filename string `json:"filename" example:"image.png" validate:"required"`
	Size     int64  `json:"size" example:"12345" validate:"required"`
	URL      string `json:"url" example:"/attachments/image.png" validate:"required"`
}
