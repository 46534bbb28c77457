// Package models defines the domain types for Glossa.
package models

import "time"

// Annotation kinds, used as collection keys in a Set and in delete requests.
const (
	KindHighlights = "highlights"
	KindComments   = "comments"
	KindNotes      = "notes"
)

// DefaultTopic is assigned when a note is created with a blank topic name.
const DefaultTopic = "General Notes"

// TimestampLayout is the ISO-8601 layout used for all persisted timestamps.
// Timestamps are stored as strings and compared lexicographically, which
// matches chronological order for this layout.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// Now returns the current timestamp string. Tests swap it out for a fixed clock.
var Now = func() string {
	return time.Now().Format(TimestampLayout)
}

// Highlight is a colored text selection.
//
// ID is a per-document sequence number assigned as count+1 at insertion time.
// It is not a stable unique key: deleting an entry and adding a new one can
// reuse an earlier id. Delete therefore filters every entry carrying the id.
type Highlight struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	Color     string `json:"color"`
	Timestamp string `json:"timestamp"`
	Preview   string `json:"text_preview"`
}

// Comment attaches free-form commentary to a text selection.
type Comment struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	Comment   string `json:"comment"`
	Timestamp string `json:"timestamp"`
	Preview   string `json:"text_preview"`
}

// Note attaches a topic-tagged note to a text selection. Creating a Note also
// appends a denormalized TopicNote copy to the named Topic.
type Note struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	Note      string `json:"note"`
	Topic     string `json:"topic"`
	Timestamp string `json:"timestamp"`
	Preview   string `json:"text_preview"`
}

// Set holds the three ordered annotation collections for one document.
type Set struct {
	Highlights []Highlight `json:"highlights"`
	Comments   []Comment   `json:"comments"`
	Notes      []Note      `json:"notes"`
}

// TopicNote is the denormalized copy of a Note stored inside a Topic.
// It is a snapshot, not a reference: deleting the Note from the Set does not
// remove this copy.
type TopicNote struct {
	Note      string `json:"note"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	NoteID    int    `json:"note_id"`
}

// Topic groups notes under a user-chosen name. The Highlights and Comments
// slices exist in the persisted shape for forward compatibility but are never
// populated by current operations.
type Topic struct {
	Name       string      `json:"name"`
	Created    string      `json:"created"`
	Notes      []TopicNote `json:"notes"`
	Highlights []Highlight `json:"highlights"`
	Comments   []Comment   `json:"comments"`
}

// DocAnnotations is the on-disk shape of an annotations file: document name
// (the original filename, not the sanitized storage key) to its Set. A
// document that was never annotated has no entry at all.
type DocAnnotations map[string]*Set

// Topics is the on-disk shape of a topics file: topic name to Topic.
// Topic names are case-sensitive.
type Topics map[string]*Topic

// NewSet returns a Set with empty (non-nil) collections so that it always
// serializes as three arrays.
func NewSet() *Set {
	return &Set{
		Highlights: []Highlight{},
		Comments:   []Comment{},
		Notes:      []Note{},
	}
}

// NewTopic returns a Topic created now, with all collections empty.
func NewTopic(name string) *Topic {
	return &Topic{
		Name:       name,
		Created:    Now(),
		Notes:      []TopicNote{},
		Highlights: []Highlight{},
		Comments:   []Comment{},
	}
}

const previewRunes = 100

// Preview truncates text to at most 100 runes, appending an ellipsis when
// anything was cut.
func Preview(text string) string {
	r := []rune(text)
	if len(r) <= previewRunes {
		return text
	}
	return string(r[:previewRunes]) + "..."
}
