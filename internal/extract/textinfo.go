package extract

import (
	"fmt"
	"strings"
)

// Stats are basic reading statistics for an extracted text.
type Stats struct {
	WordCount      int    `json:"word_count"`
	CharacterCount int    `json:"character_count"`
	LineCount      int    `json:"line_count"`
	PageCount      int    `json:"page_count"`
	ReadingTime    string `json:"estimated_reading_time"`
}

const wordsPerMinute = 200

// TextStats computes reading statistics. PageCount is derived from the
// page marker lines FullText inserts.
func TextStats(text string) Stats {
	words := len(strings.Fields(text))
	minutes := float64(words) / wordsPerMinute
	return Stats{
		WordCount:      words,
		CharacterCount: len(text),
		LineCount:      len(strings.Split(text, "\n")),
		PageCount:      strings.Count(text, "--- Page"),
		ReadingTime:    fmt.Sprintf("%.1f minutes", minutes),
	}
}

// Chunks splits extracted text into display-sized pieces. Page boundaries are
// respected first; oversized pages are split on word boundaries.
func Chunks(text string, size int) []string {
	if text == "" {
		return nil
	}
	if size <= 0 {
		size = 2000
	}

	var chunks []string
	for _, page := range strings.Split(text, "--- Page") {
		page = strings.TrimSpace(page)
		if page == "" {
			continue
		}
		if len(page) <= size {
			chunks = append(chunks, page)
			continue
		}
		var current []string
		length := 0
		for _, word := range strings.Fields(page) {
			wl := len(word) + 1
			if length+wl > size && len(current) > 0 {
				chunks = append(chunks, strings.Join(current, " "))
				current = []string{word}
				length = wl
			} else {
				current = append(current, word)
				length += wl
			}
		}
		if len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
		}
	}
	if len(chunks) == 0 {
		return []string{text}
	}
	return chunks
}
