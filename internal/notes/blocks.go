// Package notes compiles a document's annotations into a standalone notes
// document: an ordered sequence of styled blocks handed to a Renderer.
package notes

// Kind selects the style of a Block. The five paragraph styles plus spacer
// and table form the whole fixed style sheet; the compiler supplies content,
// not layout.
type Kind string

const (
	KindTitle      Kind = "title"
	KindHeading    Kind = "heading"
	KindSubheading Kind = "subheading"
	KindBody       Kind = "body"
	KindQuote      Kind = "quote"
	KindSpacer     Kind = "spacer"
	KindTable      Kind = "table"
)

// Block is one styled element of the compiled document. Text is set for
// paragraph kinds, Rows for tables (first row is the header).
type Block struct {
	Kind Kind
	Text string
	Rows [][]string
}

// Renderer turns a block sequence into document bytes.
type Renderer interface {
	Render(blocks []Block) ([]byte, error)
	// Extension is the file extension of the rendered format, with dot.
	Extension() string
}

func title(text string) Block      { return Block{Kind: KindTitle, Text: text} }
func heading(text string) Block    { return Block{Kind: KindHeading, Text: text} }
func subheading(text string) Block { return Block{Kind: KindSubheading, Text: text} }
func body(text string) Block       { return Block{Kind: KindBody, Text: text} }
func quote(text string) Block      { return Block{Kind: KindQuote, Text: text} }
func spacer() Block                { return Block{Kind: KindSpacer} }
func table(rows [][]string) Block  { return Block{Kind: KindTable, Rows: rows} }
