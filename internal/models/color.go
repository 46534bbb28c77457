package models

// ColorOption describes one of the five named highlight colors.
type ColorOption struct {
	Hex   string `json:"hex"`
	Emoji string `json:"emoji"`
}

// DefaultColor is the color assigned when a highlight names none.
const DefaultColor = "Light Yellow"

// DefaultColorHex is used when a highlight carries an unrecognized color name.
const DefaultColorHex = "#FFFFE0"

// HighlightColors is the fixed palette available to highlights.
var HighlightColors = map[string]ColorOption{
	"Light Green":  {Hex: "#90EE90", Emoji: "🟢"},
	"Light Yellow": {Hex: "#FFFFE0", Emoji: "🟡"},
	"Light Blue":   {Hex: "#ADD8E6", Emoji: "🔵"},
	"Light Pink":   {Hex: "#FFB6C1", Emoji: "🩷"},
	"Light Red":    {Hex: "#FFA07A", Emoji: "🔴"},
}

// ColorHex resolves a color name to its hex value, falling back to
// DefaultColorHex for unknown names.
func ColorHex(name string) string {
	if c, ok := HighlightColors[name]; ok {
		return c.Hex
	}
	return DefaultColorHex
}

// ColorNames lists the palette names in a stable order for UI pickers.
func ColorNames() []string {
	return []string{"Light Green", "Light Yellow", "Light Blue", "Light Pink", "Light Red"}
}
