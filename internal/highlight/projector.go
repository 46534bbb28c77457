// Package highlight projects highlight markup onto raw extracted text.
package highlight

import (
	"fmt"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/RmnRj/glossa/internal/models"
)

const markFormat = `<mark style="background-color: %s; color: %s; padding: 2px 4px; border-radius: 3px; margin: 1px;">%s</mark>`

// Project renders the highlights onto text and returns the marked-up result.
//
// Highlights are applied longest-first (stable for equal lengths) so that a
// highlight whose text is contained in a longer, already-applied one is not
// wrapped a second time. Each highlight replaces only the first occurrence of
// its trimmed text in the working string. Two highlights that overlap without
// nesting produce partially broken markup; this single-pass strategy accepts
// that rather than tracking span boundaries.
func Project(text string, highlights []models.Highlight) string {
	if len(highlights) == 0 {
		return text
	}
	ordered := make([]models.Highlight, len(highlights))
	copy(ordered, highlights)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].Text) > len(ordered[j].Text)
	})

	out := text
	for _, h := range ordered {
		needle := strings.TrimSpace(h.Text)
		if needle == "" {
			continue
		}
		idx := strings.Index(out, needle)
		if idx < 0 {
			continue
		}
		bg := models.ColorHex(h.Color)
		span := fmt.Sprintf(markFormat, bg, Foreground(bg), needle)
		out = out[:idx] + span + out[idx+len(needle):]
	}
	return out
}

// Foreground picks black or white text for a background hex color based on
// its perceived luminance.
func Foreground(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "#000000"
	}
	if _, _, l := c.Hsl(); l < 0.5 {
		return "#FFFFFF"
	}
	return "#000000"
}
