// Package response builds the ordered document returned for a query and
// renders it as HTML or terminal text.
package response

import "errors"

type Kind string

const (
	KindHeading      Kind = "heading"
	KindTable        Kind = "table"
	KindPreformatted Kind = "preformatted"
	KindNotice       Kind = "notice"
	KindError        Kind = "error"
)

// Tone picks the styling of a preformatted block.
type Tone string

const (
	ToneData   Tone = "data"
	ToneAnswer Tone = "answer"
)

var ErrSealed = errors.New("response: document is sealed")

// Cell is one table cell. A non-empty Link renders the cell as a hyperlink.
type Cell struct {
	Text string
	Link string
}

type Fragment struct {
	Kind    Kind
	Level   int
	Text    string
	Tone    Tone
	Headers []string
	Rows    [][]Cell
}

// Document is an append-only list of fragments. Once sealed it can only be
// read.
type Document struct {
	fragments []Fragment
	sealed    bool
}

func NewDocument() *Document {
	return &Document{}
}

func (d *Document) Append(f Fragment) error {
	if d.sealed {
		return ErrSealed
	}
	d.fragments = append(d.fragments, f)
	return nil
}

func (d *Document) Heading(level int, text string) error {
	return d.Append(Fragment{Kind: KindHeading, Level: level, Text: text})
}

func (d *Document) Table(headers []string, rows [][]Cell) error {
	return d.Append(Fragment{Kind: KindTable, Headers: headers, Rows: rows})
}

func (d *Document) Preformatted(tone Tone, text string) error {
	return d.Append(Fragment{Kind: KindPreformatted, Tone: tone, Text: text})
}

func (d *Document) Notice(text string) error {
	return d.Append(Fragment{Kind: KindNotice, Text: text})
}

func (d *Document) Error(text string) error {
	return d.Append(Fragment{Kind: KindError, Text: text})
}

func (d *Document) Seal() *Document {
	d.sealed = true
	return d
}

func (d *Document) Sealed() bool { return d.sealed }

// Fragments returns a copy so callers cannot reorder a sealed document.
func (d *Document) Fragments() []Fragment {
	out := make([]Fragment, len(d.fragments))
	copy(out, d.fragments)
	return out
}

// Errors returns the text of every error fragment.
func (d *Document) Errors() []string {
	var out []string
	for _, f := range d.fragments {
		if f.Kind == KindError {
			out = append(out, f.Text)
		}
	}
	return out
}
