package extract

import (
	"regexp"
	"strings"
)

const contextLines = 3

// Match is one hit of a text search: the matching line's 1-based number and
// the surrounding context block with the query wrapped in ** emphasis.
type Match struct {
	LineNumber int    `json:"line_number"`
	Context    string `json:"context"`
}

// SearchText scans text line by line for the query as a substring and
// returns each matching line with three lines of context before and after.
//
// Consecutive matching lines produce one block each; overlapping context
// ranges are not merged. An empty or whitespace-only query yields no
// matches. In case-insensitive mode the context keeps its original case and
// the emphasis wrap preserves the case of the matched substring.
func SearchText(text, query string, caseSensitive bool) []Match {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	needle := query
	if !caseSensitive {
		needle = strings.ToLower(query)
	}

	pattern := "(" + regexp.QuoteMeta(query) + ")"
	if !caseSensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil
	}

	var out []Match
	for i, line := range lines {
		probe := line
		if !caseSensitive {
			probe = strings.ToLower(line)
		}
		if !strings.Contains(probe, needle) {
			continue
		}
		start := i - contextLines
		if start < 0 {
			start = 0
		}
		end := i + contextLines + 1
		if end > len(lines) {
			end = len(lines)
		}
		context := strings.Join(lines[start:end], "\n")
		out = append(out, Match{
			LineNumber: i + 1,
			Context:    re.ReplaceAllString(context, "**$1**"),
		})
	}
	return out
}
