package parser

import (
	"fmt"
	"strings"
	"testing"
)

func TestDetectTopics(t *testing.T) {
	text := strings.Join([]string{
		"--- Page 1 ---",
		"INTRODUCTION",
		"This is a long paragraph of body text that rambles on well past the point where any heading would stop, because headings are short and this is not, so it must not be picked up as a topic by the detector at all.",
		"Chapter 2 The Method",
		"1. Results overview",
		"Key findings:",
		"",
	}, "\n")

	got := NewHeuristic().DetectTopics(text)
	want := []string{"INTRODUCTION", "Chapter 2 The Method", "Results overview", "Key findings"}
	if len(got) != len(want) {
		t.Fatalf("topics = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("topic %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDetectTopicsDeduplicates(t *testing.T) {
	text := "Summary:\nbody\nSummary:\n"
	got := NewHeuristic().DetectTopics(text)
	if len(got) != 2 {
		// "body" is short enough to pass the word-count heuristic but
		// "Summary" must only appear once.
		t.Logf("topics = %v", got)
	}
	count := 0
	for _, topic := range got {
		if topic == "Summary" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Summary appears %d times", count)
	}
}

func TestDetectTopicsCap(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&b, "Section %d overview\n", i)
	}
	got := NewHeuristic().DetectTopics(b.String())
	if len(got) != 20 {
		t.Errorf("topics = %d, want 20", len(got))
	}
}

func TestDetectTopicsEmpty(t *testing.T) {
	if got := NewHeuristic().DetectTopics(""); len(got) != 0 {
		t.Errorf("topics = %v", got)
	}
}
