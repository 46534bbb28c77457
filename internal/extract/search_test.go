package extract

import (
	"strings"
	"testing"
)

const sample = `line one
line two
line three with target
line four
line five
line six
line seven
another Target appears here
line nine`

func TestSearchTextBasic(t *testing.T) {
	matches := SearchText(sample, "target", false)
	if len(matches) != 2 {
		t.Fatalf("matches = %d, want 2", len(matches))
	}
	if matches[0].LineNumber != 3 {
		t.Errorf("line = %d, want 3", matches[0].LineNumber)
	}
	if !strings.Contains(matches[0].Context, "**target**") {
		t.Errorf("context missing emphasis: %q", matches[0].Context)
	}
	// Case-insensitive wrap preserves the original case of the match.
	if !strings.Contains(matches[1].Context, "**Target**") {
		t.Errorf("second context: %q", matches[1].Context)
	}
}

func TestSearchTextContextWindow(t *testing.T) {
	matches := SearchText(sample, "target", false)
	ctx := strings.Split(matches[0].Context, "\n")
	// 3 lines before + the match + 3 after.
	if len(ctx) != 7 {
		t.Errorf("context lines = %d, want 7", len(ctx))
	}
	if ctx[0] != "line one" {
		t.Errorf("first context line = %q", ctx[0])
	}
}

func TestSearchTextClampedAtEdges(t *testing.T) {
	matches := SearchText("only line with hit", "hit", false)
	if len(matches) != 1 {
		t.Fatalf("matches = %d", len(matches))
	}
	if strings.Count(matches[0].Context, "\n") != 0 {
		t.Errorf("context = %q", matches[0].Context)
	}
}

func TestSearchTextCaseSensitive(t *testing.T) {
	matches := SearchText(sample, "Target", true)
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
	if matches[0].LineNumber != 8 {
		t.Errorf("line = %d", matches[0].LineNumber)
	}
}

func TestSearchTextEmptyQuery(t *testing.T) {
	for _, q := range []string{"", "  ", "\t"} {
		if got := SearchText(sample, q, false); len(got) != 0 {
			t.Errorf("query %q: matches = %d, want 0", q, len(got))
		}
	}
}

func TestSearchTextOverlappingContextsNotMerged(t *testing.T) {
	text := "a\nhit one\nhit two\nb"
	matches := SearchText(text, "hit", false)
	if len(matches) != 2 {
		t.Fatalf("matches = %d, want 2", len(matches))
	}
	// Each matching line yields a full block even though the ranges overlap.
	for _, m := range matches {
		if !strings.Contains(m.Context, "a") || !strings.Contains(m.Context, "b") {
			t.Errorf("context = %q", m.Context)
		}
	}
}

func TestSearchTextRegexMetaQuery(t *testing.T) {
	matches := SearchText("price is $5.00 today", "$5.00", false)
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
	if !strings.Contains(matches[0].Context, "**$5.00**") {
		t.Errorf("context = %q", matches[0].Context)
	}
}
