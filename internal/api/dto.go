package api

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/RmnRj/glossa/internal/annotation"
	"github.com/RmnRj/glossa/internal/docservice"
	"github.com/RmnRj/glossa/internal/index"
	"github.com/RmnRj/glossa/internal/models"
)

// AddHighlightRequest is the request body for recording a highlight.
type AddHighlightRequest struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

func (r AddHighlightRequest) Validate() error {
	names := models.ColorNames()
	colors := make([]any, len(names))
	for i, n := range names {
		colors[i] = n
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Required),
		validation.Field(&r.Color, validation.In(colors...)),
	)
}

// AddCommentRequest is the request body for recording a comment.
type AddCommentRequest struct {
	Text    string `json:"text"`
	Comment string `json:"comment"`
}

func (r AddCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Required),
	)
}

// AddNoteRequest is the request body for recording a note.
type AddNoteRequest struct {
	Text  string `json:"text"`
	Note  string `json:"note"`
	Topic string `json:"topic"`
}

func (r AddNoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Note, validation.Required),
	)
}

// ImportRequest is the request body for importing an exported snapshot.
type ImportRequest struct {
	Path string `json:"path"`
}

func (r ImportRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Path, validation.Required),
	)
}

// AnnotationsResponse bundles a document's annotations with its topics.
type AnnotationsResponse struct {
	Document    string        `json:"document"`
	Annotations *models.Set   `json:"annotations"`
	Topics      models.Topics `json:"topics"`
}

// DocumentsResponse lists annotated documents.
type DocumentsResponse struct {
	Documents []string `json:"documents"`
}

// LibraryResponse lists PDFs in the library directory.
type LibraryResponse struct {
	Files []docservice.LibraryItem `json:"files"`
}

// SearchResponse wraps a single-document annotation search.
type SearchResponse struct {
	Document string                   `json:"document"`
	Query    string                   `json:"query"`
	Results  annotation.SearchResults `json:"results"`
}

// LibrarySearchResponse wraps a library-wide full-text search.
type LibrarySearchResponse struct {
	Query   string               `json:"query"`
	Results []index.SearchResult `json:"results"`
}

// CompileResponse reports a written notes document.
type CompileResponse struct {
	Document string `json:"document"`
	Path     string `json:"path"`
}

// ExportResponse reports a written export snapshot.
type ExportResponse struct {
	Document string `json:"document"`
	Path     string `json:"path"`
}

// UploadResponse is returned after a successful PDF upload.
type UploadResponse struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}
