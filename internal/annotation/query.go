package annotation

import (
	"sort"
	"strings"

	"github.com/RmnRj/glossa/internal/models"
)

// Summary aggregates annotation counts for one document. LastModified is the
// lexicographically maximal ISO-8601 timestamp across the three collections
// (string max is chronological max for this layout), nil when the document
// has no annotations.
type Summary struct {
	TotalHighlights int     `json:"total_highlights"`
	TotalComments   int     `json:"total_comments"`
	TotalNotes      int     `json:"total_notes"`
	TotalTopics     int     `json:"total_topics"`
	LastModified    *string `json:"last_modified"`
}

// SearchResults buckets per-document search hits by annotation kind.
type SearchResults struct {
	Highlights []models.Highlight `json:"highlights"`
	Comments   []models.Comment   `json:"comments"`
	Notes      []models.Note      `json:"notes"`
	Topics     []*models.Topic    `json:"topics"`
}

// Summary loads both collections and aggregates them.
func (s *Store) Summary(doc string) Summary {
	anns := s.Load(doc)
	topics := s.LoadTopics(doc)
	return Summarize(anns[doc], topics)
}

// Summarize computes the summary from in-memory collections. A nil set means
// the document was never annotated.
func Summarize(set *models.Set, topics models.Topics) Summary {
	if set == nil {
		return Summary{}
	}
	sum := Summary{
		TotalHighlights: len(set.Highlights),
		TotalComments:   len(set.Comments),
		TotalNotes:      len(set.Notes),
		TotalTopics:     len(topics),
	}
	var last string
	for _, h := range set.Highlights {
		if h.Timestamp > last {
			last = h.Timestamp
		}
	}
	for _, c := range set.Comments {
		if c.Timestamp > last {
			last = c.Timestamp
		}
	}
	for _, n := range set.Notes {
		if n.Timestamp > last {
			last = n.Timestamp
		}
	}
	if last != "" {
		sum.LastModified = &last
	}
	return sum
}

// Search loads both collections and runs a case-insensitive substring search.
func (s *Store) Search(doc, query string) SearchResults {
	anns := s.Load(doc)
	topics := s.LoadTopics(doc)
	return SearchSet(anns[doc], topics, query)
}

// SearchSet matches the query as a case-insensitive substring against the
// text fields of each collection. An empty or whitespace-only query returns
// empty buckets. A topic is checked independently by name and by contained
// note bodies, so a topic matching on both counts appears twice; that
// double-entry is part of the contract (see DESIGN.md).
func SearchSet(set *models.Set, topics models.Topics, query string) SearchResults {
	res := SearchResults{
		Highlights: []models.Highlight{},
		Comments:   []models.Comment{},
		Notes:      []models.Note{},
		Topics:     []*models.Topic{},
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return res
	}

	if set != nil {
		for _, h := range set.Highlights {
			if contains(h.Text, q) {
				res.Highlights = append(res.Highlights, h)
			}
		}
		for _, c := range set.Comments {
			if contains(c.Text, q) || contains(c.Comment, q) {
				res.Comments = append(res.Comments, c)
			}
		}
		for _, n := range set.Notes {
			if contains(n.Text, q) || contains(n.Note, q) || contains(n.Topic, q) {
				res.Notes = append(res.Notes, n)
			}
		}
	}

	// Topic names sorted for deterministic result order.
	names := make([]string, 0, len(topics))
	for name := range topics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t := topics[name]
		if contains(name, q) {
			res.Topics = append(res.Topics, t)
		}
		for _, tn := range t.Notes {
			if contains(tn.Note, q) {
				res.Topics = append(res.Topics, t)
				break
			}
		}
	}
	return res
}

func contains(haystack, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}
