package annotation

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"sort"

	"github.com/RmnRj/glossa/internal/models"
	"github.com/RmnRj/glossa/internal/storage"
)

const (
	annSuffix = "_annotations.json"
	topSuffix = "_topics.json"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_.\-]`)

// FileKey returns the sanitized storage key for a document name: every
// character outside [A-Za-z0-9_.-] becomes an underscore.
func FileKey(doc string) string {
	return unsafeChars.ReplaceAllString(doc, "_")
}

// AnnotationsFile returns the annotations file name for a document.
func AnnotationsFile(doc string) string {
	return FileKey(doc) + annSuffix
}

// TopicsFile returns the topics file name for a document.
func TopicsFile(doc string) string {
	return FileKey(doc) + topSuffix
}

// Store persists per-document annotation and topic collections as JSON files
// under two separate roots.
//
// Load never fails: any read or parse error is logged and degraded to an
// empty map, so a corrupt file behaves like a never-annotated document. Save
// reports success as a bool; a failed save is logged and leaves the previous
// file version on disk as the source of truth.
type Store struct {
	ann storage.Provider
	top storage.Provider
}

// NewStore creates a Store over the given annotation and topic roots.
func NewStore(ann, top storage.Provider) *Store {
	return &Store{ann: ann, top: top}
}

// Load returns the annotations map for a document. A missing file yields an
// empty map, as does any error.
func (s *Store) Load(doc string) models.DocAnnotations {
	return loadMap[models.DocAnnotations](s.ann, AnnotationsFile(doc), "annotations")
}

// LoadTopics returns the topics map for a document, empty on any error.
func (s *Store) LoadTopics(doc string) models.Topics {
	return loadMap[models.Topics](s.top, TopicsFile(doc), "topics")
}

func loadMap[M ~map[string]V, V any](p storage.Provider, file, what string) M {
	if !p.Exists(file) {
		return M{}
	}
	data, err := p.Read(file)
	if err != nil {
		slog.Error("annotation: load failed", slog.String("kind", what), slog.String("file", file), slog.String("error", err.Error()))
		return M{}
	}
	var m M
	if err := json.Unmarshal(data, &m); err != nil {
		slog.Error("annotation: parse failed", slog.String("kind", what), slog.String("file", file), slog.String("error", err.Error()))
		return M{}
	}
	if m == nil {
		m = M{}
	}
	return m
}

// SaveAnnotations writes the annotations map for a document, reporting
// success. Failures are logged, never raised.
func (s *Store) SaveAnnotations(doc string, anns models.DocAnnotations) bool {
	return saveMap(s.ann, AnnotationsFile(doc), anns)
}

// SaveTopics writes the topics map for a document, reporting success.
func (s *Store) SaveTopics(doc string, topics models.Topics) bool {
	return saveMap(s.top, TopicsFile(doc), topics)
}

func saveMap(p storage.Provider, file string, v any) bool {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		slog.Error("annotation: marshal failed", slog.String("file", file), slog.String("error", err.Error()))
		return false
	}
	if err := p.Write(file, data); err != nil {
		slog.Error("annotation: save failed", slog.String("file", file), slog.String("error", err.Error()))
		return false
	}
	return true
}

// AddHighlight appends a highlight and persists the annotations map.
func (s *Store) AddHighlight(doc, text, color string, anns models.DocAnnotations) bool {
	AddHighlight(anns, doc, text, color)
	return s.SaveAnnotations(doc, anns)
}

// AddComment appends a comment and persists the annotations map.
func (s *Store) AddComment(doc, text, comment string, anns models.DocAnnotations) bool {
	AddComment(anns, doc, text, comment)
	return s.SaveAnnotations(doc, anns)
}

// AddNote appends a note plus its topic copy and persists both maps. Both
// saves are attempted; the result is true only when both succeed. A partial
// failure (annotations written, topics not) is possible and not rolled back.
func (s *Store) AddNote(doc, text, note, topic string, anns models.DocAnnotations, topics models.Topics) bool {
	AddNote(anns, topics, doc, text, note, topic)
	savedAnns := s.SaveAnnotations(doc, anns)
	savedTopics := s.SaveTopics(doc, topics)
	return savedAnns && savedTopics
}

// DeleteAnnotation removes all entries of the kind with the given id and
// persists. Returns false when the document or kind is absent.
func (s *Store) DeleteAnnotation(doc, kind string, id int, anns models.DocAnnotations) bool {
	if !Delete(anns, doc, kind, id) {
		return false
	}
	return s.SaveAnnotations(doc, anns)
}

// Docs lists the names of all documents with a persisted annotations file,
// sorted. The document name is the key inside the file, not the sanitized
// file name.
func (s *Store) Docs() []string {
	files, err := s.ann.List(annSuffix)
	if err != nil {
		slog.Error("annotation: list failed", slog.String("error", err.Error()))
		return nil
	}
	var docs []string
	for _, f := range files {
		data, err := s.ann.Read(f)
		if err != nil {
			continue
		}
		var m models.DocAnnotations
		if err := json.Unmarshal(data, &m); err != nil {
			continue
		}
		for doc := range m {
			docs = append(docs, doc)
		}
	}
	sort.Strings(docs)
	return docs
}
