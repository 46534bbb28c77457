// Package parser sniffs heading-like lines out of extracted text to suggest
// topic names. The heuristics are best-effort guesses, kept behind the
// Detector interface so a better classifier can replace them without
// touching the annotation store.
package parser

import (
	"regexp"
	"strings"
)

// Detector proposes topic names for a block of extracted text.
type Detector interface {
	DetectTopics(text string) []string
}

const (
	maxHeadingLen = 100
	maxTopics     = 20
)

var (
	numberedHeading = regexp.MustCompile(`^\d+\.?\s+[A-Z]`)
	leadingNumber   = regexp.MustCompile(`^\d+\.?\s*`)
)

// Heuristic is the regex-based Detector.
type Heuristic struct{}

// NewHeuristic returns the default heading-sniffing detector.
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

// DetectTopics scans line by line for things that look like headings: short
// all-caps lines, "Chapter"/"Section"/"Part" openers, numbered headings,
// colon-terminated lines, and lines of at most eight words. Returns at most
// 20 distinct candidates in document order.
func (h *Heuristic) DetectTopics(text string) []string {
	seen := make(map[string]struct{})
	var topics []string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--- Page") {
			continue
		}
		if len(line) >= maxHeadingLen || !looksLikeHeading(line) {
			continue
		}
		topic := strings.TrimSpace(strings.TrimRight(leadingNumber.ReplaceAllString(line, ""), ":"))
		if len(topic) <= 2 {
			continue
		}
		if _, dup := seen[topic]; dup {
			continue
		}
		seen[topic] = struct{}{}
		topics = append(topics, topic)
		if len(topics) == maxTopics {
			break
		}
	}
	return topics
}

func looksLikeHeading(line string) bool {
	if line == strings.ToUpper(line) && line != strings.ToLower(line) {
		return true
	}
	for _, prefix := range []string{"Chapter", "Section", "Part"} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	if numberedHeading.MatchString(line) {
		return true
	}
	if strings.HasSuffix(line, ":") {
		return true
	}
	return len(strings.Fields(line)) <= 8
}
