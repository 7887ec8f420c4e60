// Package markup holds a small rich-text tree and the renderers that turn it
// into each chat platform's dialect.
package markup

// Node is one inline element of a line.
type Node interface {
	node()
}

// Text is literal upstream text. Renderers escape it.
type Text string

type Bold struct{ Children []Node }

type Italic struct{ Children []Node }

type Underline struct{ Children []Node }

type Code string

// CodeBlock is a preformatted block. It should be the only node on its line.
type CodeBlock struct{ Lines []string }

type Link struct {
	URL      string
	Children []Node
}

func (Text) node()      {}
func (Bold) node()      {}
func (Italic) node()    {}
func (Underline) node() {}
func (Code) node()      {}
func (CodeBlock) node() {}
func (Link) node()      {}

func B(children ...Node) Bold      { return Bold{Children: children} }
func I(children ...Node) Italic    { return Italic{Children: children} }
func U(children ...Node) Underline { return Underline{Children: children} }

func A(url string, children ...Node) Link {
	return Link{URL: url, Children: children}
}

// Line is a sequence of inline nodes. An empty Line renders as a blank line.
type Line []Node

type Doc struct {
	Lines []Line
}

func (d *Doc) Add(nodes ...Node) *Doc {
	d.Lines = append(d.Lines, Line(nodes))
	return d
}

func (d *Doc) Blank() *Doc {
	d.Lines = append(d.Lines, Line{})
	return d
}

// Append copies the lines of other onto d.
func (d *Doc) Append(other Doc) *Doc {
	d.Lines = append(d.Lines, other.Lines...)
	return d
}

// Single is a one-line document.
func Single(nodes ...Node) Doc {
	var d Doc
	d.Add(nodes...)
	return d
}
