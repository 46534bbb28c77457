package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/RmnRj/glossa/internal/apperr"
	"github.com/RmnRj/glossa/internal/docservice"
	"github.com/RmnRj/glossa/internal/index"
	"github.com/RmnRj/glossa/internal/models"
)

// EventPublisher receives an event kind and document name after a successful
// mutation. A nil publisher disables events.
type EventPublisher func(kind, doc string)

// Handler holds API route handlers.
type Handler struct {
	svc    *docservice.Service
	events EventPublisher
}

// NewHandler creates a new Handler.
func NewHandler(svc *docservice.Service, events EventPublisher) *Handler {
	return &Handler{svc: svc, events: events}
}

func (h *Handler) publish(kind, doc string) {
	if h.events != nil {
		h.events(kind, doc)
	}
}

// docName extracts the document name from the URL. Supports encoded
// characters from API clients (e.g. My%20Paper.pdf).
func docName(r *http.Request) string {
	raw := chi.URLParam(r, "doc")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// ListDocuments handles GET /api/documents.
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs := h.svc.Docs(r.Context())
	if docs == nil {
		docs = []string{}
	}
	writeJSON(w, http.StatusOK, DocumentsResponse{Documents: docs})
}

// GetAnnotations handles GET /api/documents/{doc}/annotations.
func (h *Handler) GetAnnotations(w http.ResponseWriter, r *http.Request) {
	doc := docName(r)
	set, topics := h.svc.Annotations(r.Context(), doc)
	writeJSON(w, http.StatusOK, AnnotationsResponse{Document: doc, Annotations: set, Topics: topics})
}

// AddHighlight handles POST /api/documents/{doc}/highlights.
func (h *Handler) AddHighlight(w http.ResponseWriter, r *http.Request) {
	doc := docName(r)
	var req AddHighlightRequest
	if !decodeBody(w, r, &req) {
		return
	}
	color := req.Color
	if color == "" {
		color = models.DefaultColor
	}
	hl, err := h.svc.AddHighlight(r.Context(), doc, req.Text, color)
	if err != nil {
		slog.Error("add highlight failed", slog.String("doc", doc), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	h.publish("highlight.added", doc)
	writeJSON(w, http.StatusCreated, hl)
}

// AddComment handles POST /api/documents/{doc}/comments.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	doc := docName(r)
	var req AddCommentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	c, err := h.svc.AddComment(r.Context(), doc, req.Text, req.Comment)
	if err != nil {
		slog.Error("add comment failed", slog.String("doc", doc), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	h.publish("comment.added", doc)
	writeJSON(w, http.StatusCreated, c)
}

// AddNote handles POST /api/documents/{doc}/notes.
func (h *Handler) AddNote(w http.ResponseWriter, r *http.Request) {
	doc := docName(r)
	var req AddNoteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	n, newTopic, err := h.svc.AddNote(r.Context(), doc, req.Text, req.Note, req.Topic)
	if err != nil {
		slog.Error("add note failed", slog.String("doc", doc), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	h.publish("note.added", doc)
	if newTopic {
		h.publish("topic.created", doc)
	}
	writeJSON(w, http.StatusCreated, n)
}

// DeleteAnnotation handles DELETE /api/documents/{doc}/annotations/{kind}/{id}.
func (h *Handler) DeleteAnnotation(w http.ResponseWriter, r *http.Request) {
	doc := docName(r)
	kind := chi.URLParam(r, "kind")
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("id must be an integer"))
		return
	}
	if err := h.svc.DeleteAnnotation(r.Context(), doc, kind, id); err != nil {
		switch {
		case errors.Is(err, apperr.ErrInvalidKind):
			writeJSON(w, http.StatusBadRequest, errorBody("invalid annotation kind"))
		case errors.Is(err, apperr.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		default:
			slog.Error("delete annotation failed", slog.String("doc", doc), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	h.publish("annotation.deleted", doc)
	w.WriteHeader(http.StatusNoContent)
}

// GetSummary handles GET /api/documents/{doc}/summary.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Summary(r.Context(), docName(r)))
}

// SearchDocument handles GET /api/documents/{doc}/search.
func (h *Handler) SearchDocument(w http.ResponseWriter, r *http.Request) {
	doc := docName(r)
	q := r.URL.Query().Get("q")
	results := h.svc.Search(r.Context(), doc, q)
	writeJSON(w, http.StatusOK, SearchResponse{Document: doc, Query: q, Results: results})
}

// SearchLibrary handles GET /api/search.
func (h *Handler) SearchLibrary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.svc.SearchLibrary(r.Context(), q, limit)
	if err != nil {
		slog.Error("library search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if results == nil {
		results = []index.SearchResult{}
	}
	writeJSON(w, http.StatusOK, LibrarySearchResponse{Query: q, Results: results})
}

// Export handles POST /api/documents/{doc}/export.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	doc := docName(r)
	path, err := h.svc.Export(r.Context(), doc)
	if err != nil {
		slog.Error("export failed", slog.String("doc", doc), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusCreated, ExportResponse{Document: doc, Path: path})
}

// Import handles POST /api/import.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if !decodeBody(w, r, &req) {
		return
	}
	doc, err := h.svc.Import(r.Context(), req.Path)
	if err != nil {
		slog.Error("import failed", slog.String("path", req.Path), slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, errorBody("import failed"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"document": doc})
}

// Compile handles POST /api/documents/{doc}/compile. An optional "topic"
// query parameter compiles a single topic instead of the full document.
func (h *Handler) Compile(w http.ResponseWriter, r *http.Request) {
	doc := docName(r)
	topic := r.URL.Query().Get("topic")

	var path string
	var err error
	if topic != "" {
		path, _, err = h.svc.CompileTopic(r.Context(), doc, topic)
	} else {
		path, _, err = h.svc.Compile(r.Context(), doc)
	}
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("topic not found"))
			return
		}
		slog.Error("compile failed", slog.String("doc", doc), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	h.publish("document.compiled", doc)
	writeJSON(w, http.StatusCreated, CompileResponse{Document: doc, Path: path})
}

// ListLibrary handles GET /api/library.
func (h *Handler) ListLibrary(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListLibrary(r.Context())
	if err != nil {
		slog.Error("list library failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if items == nil {
		items = []docservice.LibraryItem{}
	}
	writeJSON(w, http.StatusOK, LibraryResponse{Files: items})
}

// GetText handles GET /api/library/{doc}/text. An optional "projected" query
// parameter wraps stored highlights in mark tags.
func (h *Handler) GetText(w http.ResponseWriter, r *http.Request) {
	doc := docName(r)
	var text string
	var err error
	if r.URL.Query().Get("projected") == "true" {
		text, err = h.svc.Projected(r.Context(), doc)
	} else {
		text, err = h.svc.FullText(r.Context(), doc)
	}
	if h.extractionError(w, doc, err) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"document": doc, "text": text})
}

// GetPages handles GET /api/library/{doc}/pages.
func (h *Handler) GetPages(w http.ResponseWriter, r *http.Request) {
	doc := docName(r)
	pages, err := h.svc.Pages(r.Context(), doc)
	if h.extractionError(w, doc, err) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"document": doc, "pages": pages})
}

// GetTextInfo handles GET /api/library/{doc}/info.
func (h *Handler) GetTextInfo(w http.ResponseWriter, r *http.Request) {
	doc := docName(r)
	stats, err := h.svc.TextInfo(r.Context(), doc)
	if h.extractionError(w, doc, err) {
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// SearchText handles GET /api/library/{doc}/search.
func (h *Handler) SearchText(w http.ResponseWriter, r *http.Request) {
	doc := docName(r)
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	caseSensitive := r.URL.Query().Get("case") == "true"
	matches, err := h.svc.SearchPDF(r.Context(), doc, q, caseSensitive)
	if h.extractionError(w, doc, err) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"document": doc, "query": q, "matches": matches})
}

// SuggestTopics handles GET /api/library/{doc}/topics.
func (h *Handler) SuggestTopics(w http.ResponseWriter, r *http.Request) {
	doc := docName(r)
	suggestions, err := h.svc.SuggestTopics(r.Context(), doc)
	if h.extractionError(w, doc, err) {
		return
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"document": doc, "topics": suggestions})
}

// extractionError writes the response for a failed PDF operation and reports
// whether an error was handled.
func (h *Handler) extractionError(w http.ResponseWriter, doc string, err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.Is(err, apperr.ErrExtraction):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("text extraction failed"))
	default:
		slog.Error("pdf operation failed", slog.String("doc", doc), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
	return true
}

// decodeBody decodes and validates a JSON request body, writing the error
// response itself on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, req interface {
	Validate() error
}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return false
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return false
	}
	return true
}
