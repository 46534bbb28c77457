package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RmnRj/glossa/internal/docservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// events, if non-nil, receives an event kind and document after mutations.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
// libraryRoot is used to resolve uploaded PDF paths.
func NewRouter(svc *docservice.Service, authEnabled bool, token string, events EventPublisher, sseHandler http.Handler, libraryRoot string) chi.Router {
	h := NewHandler(svc, events)
	uh := NewUploadHandler(libraryRoot)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Annotated documents.
	r.Get("/documents", h.ListDocuments)
	r.Route("/documents/{doc}", func(r chi.Router) {
		r.Get("/annotations", h.GetAnnotations)
		r.Post("/highlights", h.AddHighlight)
		r.Post("/comments", h.AddComment)
		r.Post("/notes", h.AddNote)
		r.Delete("/annotations/{kind}/{id}", h.DeleteAnnotation)
		r.Get("/summary", h.GetSummary)
		r.Get("/search", h.SearchDocument)
		r.Post("/export", h.Export)
		r.Post("/compile", h.Compile)
	})

	// Snapshot import.
	r.Post("/import", h.Import)

	// PDF library.
	r.Get("/library", h.ListLibrary)
	r.Post("/library", uh.Upload)
	r.Route("/library/{doc}", func(r chi.Router) {
		r.Get("/file", uh.ServeFile)
		r.Get("/text", h.GetText)
		r.Get("/pages", h.GetPages)
		r.Get("/info", h.GetTextInfo)
		r.Get("/search", h.SearchText)
		r.Get("/topics", h.SuggestTopics)
	})

	// Library-wide full-text search.
	r.Get("/search", h.SearchLibrary)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
