package notes

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/RmnRj/glossa/internal/models"
)

// Compile assembles the full notes document for one document: summary table,
// notes by topic, highlights grouped by color, comments, and the individual
// notes list. A nil set compiles to just the header and an empty summary.
func Compile(doc string, set *models.Set, topics models.Topics) []Block {
	blocks := []Block{
		title("Notes from: " + doc),
		spacer(),
		body("Generated on: " + generatedAt()),
		spacer(),
	}

	blocks = append(blocks, summarySection(set, topics)...)

	if len(topics) > 0 {
		blocks = append(blocks, topicsSection(topics)...)
	}
	if set != nil {
		if len(set.Highlights) > 0 {
			blocks = append(blocks, highlightsSection(set.Highlights)...)
		}
		if len(set.Comments) > 0 {
			blocks = append(blocks, commentsSection(set.Comments)...)
		}
		if len(set.Notes) > 0 {
			blocks = append(blocks, notesSection(set.Notes)...)
		}
	}
	return blocks
}

// CompileTopic assembles a document for a single topic.
func CompileTopic(doc, name string, topic *models.Topic) []Block {
	blocks := []Block{
		title("Topic: " + name),
		spacer(),
		body("From: " + doc),
		body("Generated on: " + generatedAt()),
		spacer(),
	}
	if topic == nil || len(topic.Notes) == 0 {
		return blocks
	}
	blocks = append(blocks, heading("📝 Notes"))
	for i, n := range topic.Notes {
		blocks = append(blocks, body(fmt.Sprintf("%d. %s", i+1, n.Note)))
		if n.Text != "" {
			blocks = append(blocks, quote(fmt.Sprintf("Reference: %q", models.Preview(n.Text))))
		}
		blocks = append(blocks, spacer())
	}
	return blocks
}

func summarySection(set *models.Set, topics models.Topics) []Block {
	var highlights, comments, notes int
	if set != nil {
		highlights = len(set.Highlights)
		comments = len(set.Comments)
		notes = len(set.Notes)
	}
	rows := [][]string{
		{"Type", "Count"},
		{"Topics", strconv.Itoa(len(topics))},
		{"Highlights", strconv.Itoa(highlights)},
		{"Comments", strconv.Itoa(comments)},
		{"Notes", strconv.Itoa(notes)},
		{"Total Annotations", strconv.Itoa(highlights + comments + notes)},
	}
	return []Block{heading("📊 Summary"), table(rows), spacer()}
}

func topicsSection(topics models.Topics) []Block {
	blocks := []Block{heading("📚 Notes by Topic")}

	names := make([]string, 0, len(topics))
	for name := range topics {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		blocks = append(blocks, subheading("🔖 "+name))
		t := topics[name]
		if len(t.Notes) == 0 {
			blocks = append(blocks, body("No notes in this topic yet."), spacer())
			continue
		}
		for i, n := range t.Notes {
			blocks = append(blocks, body(fmt.Sprintf("%d. %s", i+1, n.Note)))
			if n.Text != "" {
				blocks = append(blocks, quote(fmt.Sprintf("Reference: %q", models.Preview(n.Text))))
			}
		}
		blocks = append(blocks, spacer())
	}
	return blocks
}

func highlightsSection(highlights []models.Highlight) []Block {
	blocks := []Block{heading("🖍️ Highlights")}

	// Group by color, preserving first-seen order.
	var colors []string
	groups := make(map[string][]models.Highlight)
	for _, h := range highlights {
		color := h.Color
		if color == "" {
			color = "Unknown"
		}
		if _, ok := groups[color]; !ok {
			colors = append(colors, color)
		}
		groups[color] = append(groups[color], h)
	}

	for _, color := range colors {
		blocks = append(blocks, subheading(fmt.Sprintf("🎨 %s Highlights", color)))
		for i, h := range groups[color] {
			blocks = append(blocks,
				quote(fmt.Sprintf("%d. %s", i+1, h.Text)),
				body("Highlighted on: "+formatStamp(h.Timestamp)),
				spacer(),
			)
		}
	}
	return blocks
}

func commentsSection(comments []models.Comment) []Block {
	blocks := []Block{heading("💬 Comments")}
	for i, c := range comments {
		blocks = append(blocks, subheading(fmt.Sprintf("Comment #%d", i+1)))
		if c.Text != "" {
			blocks = append(blocks, body("Original Text:"), quote(fmt.Sprintf("%q", c.Text)))
		}
		blocks = append(blocks,
			body("Comment:"),
			body(c.Comment),
			body("Added on: "+formatStamp(c.Timestamp)),
			spacer(),
		)
	}
	return blocks
}

func notesSection(notes []models.Note) []Block {
	blocks := []Block{heading("📝 Individual Notes")}
	for i, n := range notes {
		topic := n.Topic
		if topic == "" {
			topic = "General"
		}
		blocks = append(blocks, subheading(fmt.Sprintf("Note #%d (Topic: %s)", i+1, topic)))
		blocks = append(blocks, body(n.Note))
		if n.Text != "" {
			r := []rune(n.Text)
			if len(r) > 200 {
				n.Text = string(r[:200]) + "..."
			}
			blocks = append(blocks, body("Reference Text:"), quote(fmt.Sprintf("%q", n.Text)))
		}
		blocks = append(blocks, body("Added on: "+formatStamp(n.Timestamp)), spacer())
	}
	return blocks
}

func generatedAt() string {
	stamp := models.Now()
	return formatLong(stamp)
}

// formatStamp renders a stored ISO-8601 timestamp as "01/02/2006 03:04 PM".
func formatStamp(stamp string) string {
	t, err := time.Parse(models.TimestampLayout, stamp)
	if err != nil {
		return "Unknown time"
	}
	return t.Format("01/02/2006 03:04 PM")
}

// formatLong renders a stored ISO-8601 timestamp as "January 2, 2006 at 03:04 PM".
func formatLong(stamp string) string {
	t, err := time.Parse(models.TimestampLayout, stamp)
	if err != nil {
		return "Unknown time"
	}
	return t.Format("January 2, 2006 at 03:04 PM")
}

// OutputFile returns the compiled document file name for a document.
func OutputFile(doc string, r Renderer) string {
	return "Notes-" + strings.TrimSuffix(doc, ".pdf") + r.Extension()
}

// TopicOutputFile returns the compiled file name for a single topic.
func TopicOutputFile(doc, topic string, r Renderer) string {
	stem := strings.TrimSuffix(doc, ".pdf")
	return "Topic-" + strings.ReplaceAll(topic, " ", "_") + "-" + stem + r.Extension()
}
