// Package annotation implements the annotation store: load/save of the two
// JSON-backed collections per document (annotations and topics) and the
// mutation, summary, and search operations over them.
//
// Mutations are pure functions over the in-memory maps; the Store couples
// them with persistence. This keeps the load-mutate-save cycle (and its
// last-writer-wins race) explicit and unit-testable without touching disk.
package annotation

import (
	"strings"

	"github.com/RmnRj/glossa/internal/models"
)

// AddHighlight appends a new highlight to the document's set, creating the
// set on first use. The id is assigned as count+1 and is therefore reusable
// after deletions; see models.Highlight.
func AddHighlight(anns models.DocAnnotations, doc, text, color string) models.Highlight {
	set := ensureSet(anns, doc)
	trimmed := strings.TrimSpace(text)
	h := models.Highlight{
		ID:        len(set.Highlights) + 1,
		Text:      trimmed,
		Color:     color,
		Timestamp: models.Now(),
		Preview:   models.Preview(trimmed),
	}
	set.Highlights = append(set.Highlights, h)
	return h
}

// AddComment appends a new comment to the document's set. The store does not
// reject empty text or comment bodies; that guard belongs to the caller.
func AddComment(anns models.DocAnnotations, doc, text, comment string) models.Comment {
	set := ensureSet(anns, doc)
	trimmed := strings.TrimSpace(text)
	c := models.Comment{
		ID:        len(set.Comments) + 1,
		Text:      trimmed,
		Comment:   strings.TrimSpace(comment),
		Timestamp: models.Now(),
		Preview:   models.Preview(trimmed),
	}
	set.Comments = append(set.Comments, c)
	return c
}

// AddNote appends a new note to the document's set and a denormalized copy
// to the named topic, creating the topic on first use. A blank topic name
// falls back to models.DefaultTopic. The topic copy is a snapshot: deleting
// the note later does not cascade into the topic.
func AddNote(anns models.DocAnnotations, topics models.Topics, doc, text, note, topic string) models.Note {
	set := ensureSet(anns, doc)
	trimmed := strings.TrimSpace(text)
	name := strings.TrimSpace(topic)
	if name == "" {
		name = models.DefaultTopic
	}
	n := models.Note{
		ID:        len(set.Notes) + 1,
		Text:      trimmed,
		Note:      strings.TrimSpace(note),
		Topic:     name,
		Timestamp: models.Now(),
		Preview:   models.Preview(trimmed),
	}
	set.Notes = append(set.Notes, n)

	t, ok := topics[name]
	if !ok {
		t = models.NewTopic(name)
		topics[name] = t
	}
	t.Notes = append(t.Notes, models.TopicNote{
		Note:      n.Note,
		Text:      n.Text,
		Timestamp: n.Timestamp,
		NoteID:    n.ID,
	})
	return n
}

// Delete removes every entry of the given kind whose id matches. Filtering
// all matches (not just the first) covers duplicate ids produced by the
// count-based assignment. Returns false when the document or kind is absent.
func Delete(anns models.DocAnnotations, doc, kind string, id int) bool {
	set, ok := anns[doc]
	if !ok {
		return false
	}
	switch kind {
	case models.KindHighlights:
		set.Highlights = deleteByID(set.Highlights, id, func(h models.Highlight) int { return h.ID })
	case models.KindComments:
		set.Comments = deleteByID(set.Comments, id, func(c models.Comment) int { return c.ID })
	case models.KindNotes:
		set.Notes = deleteByID(set.Notes, id, func(n models.Note) int { return n.ID })
	default:
		return false
	}
	return true
}

func deleteByID[T any](items []T, id int, idOf func(T) int) []T {
	out := items[:0]
	for _, it := range items {
		if idOf(it) != id {
			out = append(out, it)
		}
	}
	return out
}

func ensureSet(anns models.DocAnnotations, doc string) *models.Set {
	set, ok := anns[doc]
	if !ok {
		set = models.NewSet()
		anns[doc] = set
	}
	return set
}
