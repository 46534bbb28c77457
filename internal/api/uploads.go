package api

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
)

const maxUploadBytes = 100 << 20 // 100 MB

// UploadHandler accepts and serves PDF files under the library directory.
type UploadHandler struct {
	libraryRoot string
}

// NewUploadHandler creates a handler rooted at the library directory.
func NewUploadHandler(libraryRoot string) *UploadHandler {
	return &UploadHandler{libraryRoot: libraryRoot}
}

// safeName validates that the filename is a plain .pdf name (no path
// separators, no traversal) and returns the absolute path under the library.
func (h *UploadHandler) safeName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("filename is required")
	}
	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("invalid filename: %s", name)
	}
	if !strings.EqualFold(filepath.Ext(cleaned), ".pdf") {
		return "", fmt.Errorf("only .pdf files are accepted")
	}
	abs := filepath.Join(h.libraryRoot, cleaned)
	if !strings.HasPrefix(abs, h.libraryRoot+string(os.PathSeparator)) && abs != h.libraryRoot {
		return "", fmt.Errorf("path escapes library directory")
	}
	return abs, nil
}

// ServeFile handles GET /api/library/{doc}/file.
func (h *UploadHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	doc := chi.URLParam(r, "doc")
	abs, err := h.safeName(doc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, statErr := os.Stat(abs); os.IsNotExist(statErr) {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, abs)
}

// Upload handles POST /api/library (multipart/form-data, field "file").
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("file too large or invalid multipart"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("missing 'file' field in multipart form"))
		return
	}
	defer file.Close()

	abs, err := h.safeName(header.Filename)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	if err := os.MkdirAll(h.libraryRoot, 0o755); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to create library dir"))
		return
	}

	dst, err := os.Create(abs)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to create file"))
		return
	}
	defer dst.Close()

	written, err := io.Copy(dst, file)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to write file"))
		return
	}

	writeJSON(w, http.StatusCreated, UploadResponse{
		Filename: header.Filename,
		Size:     written,
	})
}
