package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harlowe/plume/internal/postservice"
	"github.com/harlowe/plume/internal/render"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
// contentRoot is used to resolve the attachments directory.
func NewRouter(svc *postservice.Service, renderer *render.Renderer, authEnabled bool, token string, sseHandler http.Handler, contentRoot string) chi.Router {
	h := NewHandler(svc, renderer)
	ah := NewAttachmentHandler(contentRoot)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Posts CRUD.
	r.Get("/posts", h.ListPosts)
	r.Post("/posts", h.CreatePost)
	r.Get("/posts/*", h.GetPost)
	r.Put("/posts/*", h.UpdatePost)
	r.Delete("/posts/*", h.DeletePost)

	// Search.
	r.Get("/search", h.Search)

	// Tags.
	r.Get("/tags", h.Tags)

	// Markdown preview without persisting anything.
	r.Post("/preview", h.Preview)

	// Attachments upload (auth-protected).
	r.Post("/attachments", ah.Upload)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
