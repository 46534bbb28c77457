package notes

import (
	"fmt"
	"strings"
)

// Markdown renders blocks as a GitHub-flavored Markdown document.
type Markdown struct{}

func NewMarkdown() *Markdown { return &Markdown{} }

func (m *Markdown) Extension() string { return ".md" }

func (m *Markdown) Render(blocks []Block) ([]byte, error) {
	var b strings.Builder
	for _, blk := range blocks {
		switch blk.Kind {
		case KindTitle:
			b.WriteString("# " + blk.Text + "\n")
		case KindHeading:
			b.WriteString("## " + blk.Text + "\n")
		case KindSubheading:
			b.WriteString("### " + blk.Text + "\n")
		case KindBody:
			b.WriteString(blk.Text + "\n")
		case KindQuote:
			for _, line := range strings.Split(blk.Text, "\n") {
				b.WriteString("> " + line + "\n")
			}
		case KindSpacer:
			b.WriteString("\n")
		case KindTable:
			if err := writeTable(&b, blk.Rows); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("notes: unknown block kind %q", blk.Kind)
		}
	}
	return []byte(b.String()), nil
}

func writeTable(b *strings.Builder, rows [][]string) error {
	if len(rows) == 0 {
		return fmt.Errorf("notes: empty table")
	}
	header := rows[0]
	b.WriteString("| " + strings.Join(header, " | ") + " |\n")
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	b.WriteString("| " + strings.Join(sep, " | ") + " |\n")
	for _, row := range rows[1:] {
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
	return nil
}
