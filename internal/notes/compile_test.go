package notes

import (
	"strings"
	"testing"

	"github.com/RmnRj/glossa/internal/models"
)

func setClock(t *testing.T, stamp string) {
	t.Helper()
	prev := models.Now
	models.Now = func() string { return stamp }
	t.Cleanup(func() { models.Now = prev })
}

func fixture() (*models.Set, models.Topics) {
	set := models.NewSet()
	set.Highlights = []models.Highlight{
		{ID: 1, Text: "first highlighted passage", Color: "Light Yellow", Timestamp: "2026-08-20T10:30:00.000000"},
		{ID: 2, Text: "second passage", Color: "Light Blue", Timestamp: "2026-08-20T10:31:00.000000"},
		{ID: 3, Text: "third passage", Color: "Light Yellow", Timestamp: "bogus"},
	}
	set.Comments = []models.Comment{
		{ID: 1, Text: "quoted source", Comment: "my remark", Timestamp: "2026-08-20T10:32:00.000000"},
	}
	set.Notes = []models.Note{
		{ID: 1, Text: "referenced text", Note: "note body", Topic: "Methods", Timestamp: "2026-08-20T10:33:00.000000"},
	}
	topics := models.Topics{
		"Methods": {
			Name:    "Methods",
			Created: "2026-08-20T10:33:00.000000",
			Notes: []models.TopicNote{
				{Note: "note body", Text: "referenced text", Timestamp: "2026-08-20T10:33:00.000000", NoteID: 1},
			},
		},
		"Empty Topic": {Name: "Empty Topic", Created: "2026-08-20T10:34:00.000000"},
	}
	return set, topics
}

func render(t *testing.T, blocks []Block) string {
	t.Helper()
	out, err := NewMarkdown().Render(blocks)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func TestCompileSections(t *testing.T) {
	setClock(t, "2026-08-29T09:00:00.000000")
	set, topics := fixture()
	md := render(t, Compile("paper.pdf", set, topics))

	for _, want := range []string{
		"# Notes from: paper.pdf",
		"Generated on: August 29, 2026 at 09:00 AM",
		"## 📊 Summary",
		"| Total Annotations | 5 |",
		"## 📚 Notes by Topic",
		"### 🔖 Empty Topic",
		"No notes in this topic yet.",
		"### 🔖 Methods",
		"## 🖍️ Highlights",
		"### 🎨 Light Yellow Highlights",
		"### 🎨 Light Blue Highlights",
		"Highlighted on: 08/20/2026 10:30 AM",
		"Highlighted on: Unknown time",
		"## 💬 Comments",
		"### Comment #1",
		"Added on: 08/20/2026 10:32 AM",
		"## 📝 Individual Notes",
		"### Note #1 (Topic: Methods)",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestCompileColorGroupOrder(t *testing.T) {
	setClock(t, "2026-08-29T09:00:00.000000")
	set, topics := fixture()
	md := render(t, Compile("paper.pdf", set, topics))

	yellow := strings.Index(md, "### 🎨 Light Yellow Highlights")
	blue := strings.Index(md, "### 🎨 Light Blue Highlights")
	if yellow < 0 || blue < 0 || yellow > blue {
		t.Fatalf("expected first-seen color order, yellow=%d blue=%d", yellow, blue)
	}
}

func TestCompileTopicsSorted(t *testing.T) {
	setClock(t, "2026-08-29T09:00:00.000000")
	set, topics := fixture()
	md := render(t, Compile("paper.pdf", set, topics))

	empty := strings.Index(md, "### 🔖 Empty Topic")
	methods := strings.Index(md, "### 🔖 Methods")
	if empty < 0 || methods < 0 || empty > methods {
		t.Fatalf("expected sorted topics, empty=%d methods=%d", empty, methods)
	}
}

func TestCompileEmptySet(t *testing.T) {
	setClock(t, "2026-08-29T09:00:00.000000")
	md := render(t, Compile("blank.pdf", nil, nil))

	if !strings.Contains(md, "| Total Annotations | 0 |") {
		t.Errorf("expected zero totals, got:\n%s", md)
	}
	for _, absent := range []string{"## 🖍️ Highlights", "## 💬 Comments", "## 📝 Individual Notes", "## 📚 Notes by Topic"} {
		if strings.Contains(md, absent) {
			t.Errorf("unexpected section %q for empty set", absent)
		}
	}
}

func TestCompileTopic(t *testing.T) {
	setClock(t, "2026-08-29T09:00:00.000000")
	_, topics := fixture()
	md := render(t, CompileTopic("paper.pdf", "Methods", topics["Methods"]))

	for _, want := range []string{
		"# Topic: Methods",
		"From: paper.pdf",
		"## 📝 Notes",
		"1. note body",
		`> Reference: "referenced text"`,
	} {
		if !strings.Contains(md, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestCompileTopicNil(t *testing.T) {
	setClock(t, "2026-08-29T09:00:00.000000")
	md := render(t, CompileTopic("paper.pdf", "Ghost", nil))
	if strings.Contains(md, "## 📝 Notes") {
		t.Errorf("nil topic should not emit a notes section")
	}
}

func TestOutputFiles(t *testing.T) {
	r := NewMarkdown()
	if got := OutputFile("paper.pdf", r); got != "Notes-paper.md" {
		t.Errorf("OutputFile = %q", got)
	}
	if got := TopicOutputFile("paper.pdf", "Key Ideas", r); got != "Topic-Key_Ideas-paper.md" {
		t.Errorf("TopicOutputFile = %q", got)
	}
}

func TestMarkdownQuoteMultiline(t *testing.T) {
	md := render(t, []Block{quote("line one\nline two")})
	if md != "> line one\n> line two\n" {
		t.Errorf("quote render = %q", md)
	}
}

func TestMarkdownTable(t *testing.T) {
	md := render(t, []Block{table([][]string{{"A", "B"}, {"1", "2"}})})
	want := "| A | B |\n| --- | --- |\n| 1 | 2 |\n"
	if md != want {
		t.Errorf("table render = %q, want %q", md, want)
	}
}
