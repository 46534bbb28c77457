// Package docservice coordinates annotation storage, PDF extraction, the
// search index, and notes compilation behind one facade.
package docservice

import (
	"context"
	"strings"

	"github.com/RmnRj/glossa/internal/annotation"
	"github.com/RmnRj/glossa/internal/apperr"
	"github.com/RmnRj/glossa/internal/checksum"
	"github.com/RmnRj/glossa/internal/extract"
	"github.com/RmnRj/glossa/internal/highlight"
	"github.com/RmnRj/glossa/internal/index"
	"github.com/RmnRj/glossa/internal/models"
	"github.com/RmnRj/glossa/internal/notes"
	"github.com/RmnRj/glossa/internal/parser"
	"github.com/RmnRj/glossa/internal/storage"
)

// LibraryItem describes one PDF in the library directory.
type LibraryItem struct {
	Name      string `json:"name"`
	Size      int    `json:"size"`
	Checksum  string `json:"checksum"`
	Annotated bool   `json:"annotated"`
}

// Service coordinates the annotation store, library, index, and compiler.
type Service struct {
	store     *annotation.Store
	db        *index.DB
	library   storage.Provider
	output    storage.Provider
	exports   storage.Provider
	extractor extract.Extractor
	renderer  notes.Renderer
	detector  parser.Detector
}

// NewService creates a document service over the given backends.
func NewService(store *annotation.Store, db *index.DB, library, output, exports storage.Provider) *Service {
	return &Service{
		store:     store,
		db:        db,
		library:   library,
		output:    output,
		exports:   exports,
		extractor: extract.NewFitz(),
		renderer:  notes.NewMarkdown(),
		detector:  parser.NewHeuristic(),
	}
}

// Annotations returns the annotation set and topics for a document. A
// never-annotated document yields an empty set.
func (s *Service) Annotations(_ context.Context, doc string) (*models.Set, models.Topics) {
	anns := s.store.Load(doc)
	set := anns[doc]
	if set == nil {
		set = models.NewSet()
	}
	return set, s.store.LoadTopics(doc)
}

// AddHighlight records a highlight on a document.
func (s *Service) AddHighlight(_ context.Context, doc, text, color string) (models.Highlight, error) {
	anns := s.store.Load(doc)
	h := annotation.AddHighlight(anns, doc, text, color)
	if !s.store.SaveAnnotations(doc, anns) {
		return models.Highlight{}, apperr.ErrSaveFailed
	}
	return h, nil
}

// AddComment records a comment on a document.
func (s *Service) AddComment(_ context.Context, doc, text, comment string) (models.Comment, error) {
	anns := s.store.Load(doc)
	c := annotation.AddComment(anns, doc, text, comment)
	if !s.store.SaveAnnotations(doc, anns) {
		return models.Comment{}, apperr.ErrSaveFailed
	}
	return c, nil
}

// AddNote records a note on a document and files a copy under its topic.
// The second return reports whether the topic was created by this call.
func (s *Service) AddNote(_ context.Context, doc, text, note, topic string) (models.Note, bool, error) {
	anns := s.store.Load(doc)
	topics := s.store.LoadTopics(doc)

	name := strings.TrimSpace(topic)
	if name == "" {
		name = models.DefaultTopic
	}
	_, existed := topics[name]

	n := annotation.AddNote(anns, topics, doc, text, note, topic)
	savedAnns := s.store.SaveAnnotations(doc, anns)
	savedTopics := s.store.SaveTopics(doc, topics)
	if !savedAnns || !savedTopics {
		return models.Note{}, false, apperr.ErrSaveFailed
	}
	return n, !existed, nil
}

// DeleteAnnotation removes every annotation of the kind with the given id.
// Topic copies of deleted notes are kept.
func (s *Service) DeleteAnnotation(_ context.Context, doc, kind string, id int) error {
	switch kind {
	case models.KindHighlights, models.KindComments, models.KindNotes:
	default:
		return apperr.ErrInvalidKind
	}
	anns := s.store.Load(doc)
	if !annotation.Delete(anns, doc, kind, id) {
		return apperr.ErrNotFound
	}
	if !s.store.SaveAnnotations(doc, anns) {
		return apperr.ErrSaveFailed
	}
	return nil
}

// Summary returns annotation counts and the last-modified timestamp.
func (s *Service) Summary(_ context.Context, doc string) annotation.Summary {
	return s.store.Summary(doc)
}

// Search scans one document's annotations and topics for a substring.
func (s *Service) Search(_ context.Context, doc, query string) annotation.SearchResults {
	return s.store.Search(doc, query)
}

// SearchLibrary performs a full-text search across every indexed document.
func (s *Service) SearchLibrary(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	return s.db.Search(query, limit)
}

// Docs lists every document with persisted annotations.
func (s *Service) Docs(_ context.Context) []string {
	return s.store.Docs()
}

// Export writes a single-document snapshot and returns its path.
func (s *Service) Export(_ context.Context, doc string) (string, error) {
	anns := s.store.Load(doc)
	topics := s.store.LoadTopics(doc)
	return annotation.ExportJSON(s.exports, doc, anns, topics)
}

// Import reads a snapshot file and replaces the document's stored
// annotations and topics with its contents.
func (s *Service) Import(_ context.Context, path string) (string, error) {
	doc, anns, topics, err := annotation.ImportJSON(path)
	if err != nil {
		return "", err
	}
	if !s.store.SaveAnnotations(doc, anns) || !s.store.SaveTopics(doc, topics) {
		return "", apperr.ErrSaveFailed
	}
	return doc, nil
}

// Compile renders the full notes document for a document and writes it to the
// output root. It returns the written path and the rendered bytes.
func (s *Service) Compile(ctx context.Context, doc string) (string, []byte, error) {
	set, topics := s.Annotations(ctx, doc)
	return s.renderToFile(notes.OutputFile(doc, s.renderer), notes.Compile(doc, set, topics))
}

// CompileTopic renders a single-topic document.
func (s *Service) CompileTopic(ctx context.Context, doc, name string) (string, []byte, error) {
	topics := s.store.LoadTopics(doc)
	topic, ok := topics[name]
	if !ok {
		return "", nil, apperr.ErrNotFound
	}
	return s.renderToFile(notes.TopicOutputFile(doc, name, s.renderer), notes.CompileTopic(doc, name, topic))
}

func (s *Service) renderToFile(file string, blocks []notes.Block) (string, []byte, error) {
	data, err := s.renderer.Render(blocks)
	if err != nil {
		return "", nil, err
	}
	if err := s.output.Write(file, data); err != nil {
		return "", nil, err
	}
	path, err := s.output.Path(file)
	if err != nil {
		return "", nil, err
	}
	return path, data, nil
}

// FullText extracts the whole text of a library PDF, pages joined with
// marker lines.
func (s *Service) FullText(_ context.Context, doc string) (string, error) {
	path, err := s.libraryPath(doc)
	if err != nil {
		return "", err
	}
	text, err := s.extractor.FullText(path)
	if err != nil {
		return "", apperr.ErrExtraction
	}
	return text, nil
}

// Pages extracts per-page text of a library PDF.
func (s *Service) Pages(_ context.Context, doc string) ([]extract.Page, error) {
	path, err := s.libraryPath(doc)
	if err != nil {
		return nil, err
	}
	pages, err := s.extractor.ByPage(path)
	if err != nil {
		return nil, apperr.ErrExtraction
	}
	return pages, nil
}

// SearchPDF searches the extracted text of a library PDF line by line.
func (s *Service) SearchPDF(ctx context.Context, doc, query string, caseSensitive bool) ([]extract.Match, error) {
	text, err := s.FullText(ctx, doc)
	if err != nil {
		return nil, err
	}
	return extract.SearchText(text, query, caseSensitive), nil
}

// TextInfo returns word, character, line, and page statistics for a PDF.
func (s *Service) TextInfo(ctx context.Context, doc string) (extract.Stats, error) {
	text, err := s.FullText(ctx, doc)
	if err != nil {
		return extract.Stats{}, err
	}
	return extract.TextStats(text), nil
}

// SuggestTopics extracts heading-like lines from a PDF as topic candidates.
func (s *Service) SuggestTopics(ctx context.Context, doc string) ([]string, error) {
	text, err := s.FullText(ctx, doc)
	if err != nil {
		return nil, err
	}
	return s.detector.DetectTopics(text), nil
}

// Projected returns a PDF's extracted text with every stored highlight
// wrapped in a styled mark tag.
func (s *Service) Projected(ctx context.Context, doc string) (string, error) {
	text, err := s.FullText(ctx, doc)
	if err != nil {
		return "", err
	}
	set, _ := s.Annotations(ctx, doc)
	return highlight.Project(text, set.Highlights), nil
}

// ListLibrary returns every PDF in the library directory.
func (s *Service) ListLibrary(_ context.Context) ([]LibraryItem, error) {
	names, err := s.library.List(".pdf")
	if err != nil {
		return nil, err
	}
	annotated := make(map[string]struct{})
	for _, d := range s.store.Docs() {
		annotated[d] = struct{}{}
	}
	items := make([]LibraryItem, 0, len(names))
	for _, name := range names {
		data, err := s.library.Read(name)
		if err != nil {
			continue
		}
		_, isAnnotated := annotated[name]
		items = append(items, LibraryItem{
			Name:      name,
			Size:      len(data),
			Checksum:  checksum.Sum(data),
			Annotated: isAnnotated,
		})
	}
	return items, nil
}

func (s *Service) libraryPath(doc string) (string, error) {
	if !s.library.Exists(doc) {
		return "", apperr.ErrNotFound
	}
	return s.library.Path(doc)
}
