package annotation

import (
	"testing"

	"github.com/RmnRj/glossa/internal/models"
)

func TestSummarizeLastModified(t *testing.T) {
	setClock(t, "2024-01-01T00:00:00.000000")
	anns := models.DocAnnotations{}
	topics := models.Topics{}
	AddHighlight(anns, "doc.pdf", "early", "Light Green")

	setClock(t, "2024-06-01T00:00:00.000000")
	AddHighlight(anns, "doc.pdf", "late", "Light Blue")

	sum := Summarize(anns["doc.pdf"], topics)
	if sum.TotalHighlights != 2 {
		t.Errorf("total highlights = %d", sum.TotalHighlights)
	}
	if sum.LastModified == nil || *sum.LastModified != "2024-06-01T00:00:00.000000" {
		t.Errorf("last modified = %v", sum.LastModified)
	}
}

func TestSummarizeNeverAnnotated(t *testing.T) {
	sum := Summarize(nil, models.Topics{})
	if sum.TotalHighlights != 0 || sum.TotalComments != 0 || sum.TotalNotes != 0 || sum.TotalTopics != 0 {
		t.Errorf("summary = %+v", sum)
	}
	if sum.LastModified != nil {
		t.Errorf("last modified = %v, want nil", *sum.LastModified)
	}
}

func TestSummarizeCountsTopics(t *testing.T) {
	anns := models.DocAnnotations{}
	topics := models.Topics{}
	AddNote(anns, topics, "doc.pdf", "a", "n1", "T1")
	AddNote(anns, topics, "doc.pdf", "b", "n2", "T2")
	sum := Summarize(anns["doc.pdf"], topics)
	if sum.TotalTopics != 2 || sum.TotalNotes != 2 {
		t.Errorf("summary = %+v", sum)
	}
}

func searchFixture() (models.DocAnnotations, models.Topics) {
	anns := models.DocAnnotations{}
	topics := models.Topics{}
	AddHighlight(anns, "doc.pdf", "The quick brown fox", "Light Green")
	AddHighlight(anns, "doc.pdf", "unrelated passage", "Light Blue")
	AddComment(anns, "doc.pdf", "selected text", "this needs a Fox review")
	AddNote(anns, topics, "doc.pdf", "den of foxes", "vulpine behavior", "Wildlife")
	AddNote(anns, topics, "doc.pdf", "other", "nothing here", "Fox Studies")
	return anns, topics
}

func TestSearchCaseInsensitive(t *testing.T) {
	anns, topics := searchFixture()
	res := SearchSet(anns["doc.pdf"], topics, "FOX")
	if len(res.Highlights) != 1 {
		t.Errorf("highlights = %d", len(res.Highlights))
	}
	if len(res.Comments) != 1 {
		t.Errorf("comments = %d", len(res.Comments))
	}
	// Both notes match: one by text, one by topic name.
	if len(res.Notes) != 2 {
		t.Errorf("notes = %d", len(res.Notes))
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	anns, topics := searchFixture()
	for _, q := range []string{"", "   "} {
		res := SearchSet(anns["doc.pdf"], topics, q)
		if len(res.Highlights)+len(res.Comments)+len(res.Notes)+len(res.Topics) != 0 {
			t.Errorf("query %q: expected all-empty buckets", q)
		}
	}
}

func TestSearchTopicDoubleMatch(t *testing.T) {
	// A topic whose name and contained note both match is listed twice:
	// the name check and the note-content check are independent.
	anns := models.DocAnnotations{}
	topics := models.Topics{}
	AddNote(anns, topics, "doc.pdf", "text", "all about foxes", "Fox Facts")

	res := SearchSet(anns["doc.pdf"], topics, "fox")
	if len(res.Topics) != 2 {
		t.Fatalf("topics = %d, want 2 (name match + note match)", len(res.Topics))
	}
	if res.Topics[0] != res.Topics[1] {
		t.Error("both entries should reference the same topic")
	}
}

func TestSearchNoAnnotations(t *testing.T) {
	res := SearchSet(nil, models.Topics{}, "anything")
	if res.Highlights == nil || res.Topics == nil {
		t.Error("buckets must be empty slices, not nil")
	}
	if len(res.Highlights) != 0 {
		t.Error("expected no hits")
	}
}
