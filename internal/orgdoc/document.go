package orgdoc

// Document is the parsed, mutable representation of one org file.
type Document struct {
	// Name identifies the document in error messages, usually a file path.
	Name string

	// Headlines in document order. Parent links give the enclosing chain.
	Headlines []*Headline

	// Blocks in document order.
	Blocks []*Block

	text []byte

	// fileHeaderArgs is the raw value of `#+property: header-args ...`
	// keywords in the file preamble, lowest-precedence declaration source.
	fileHeaderArgs string
}

// Headline is one `*` heading with its property drawer, if any.
type Headline struct {
	Level  int
	Title  string
	Line   int
	Span   Span // the headline line itself
	Extent Span // headline plus everything until the next sibling or EOF

	// Properties holds the drawer entries with lowercased keys.
	Properties map[string]string

	Parent *Headline
}

// Block is one `#+begin_… / #+end_…` pair together with the declaration
// lines immediately preceding it.
type Block struct {
	// Kind is the lowercased delimiter keyword ("src", "transclusion", …).
	Kind string

	// Language is the first token after the keyword for src blocks.
	Language string

	Line      int  // line number of the begin delimiter, 1-based
	BeginLine Span // the whole begin delimiter line, newline excluded
	EndLine   Span
	Body      Span // content between the delimiter lines

	// InlineSpan covers the `:name value …` tail of the begin line. It is
	// an empty span at end-of-line when no inline parameters exist, which
	// keeps it a valid insertion point.
	InlineSpan Span

	// HeaderLines are the contiguous `#+header:` lines directly above the
	// block, in document order.
	HeaderLines []HeaderLine

	// Headline is the innermost enclosing headline, nil in the preamble.
	Headline *Headline
}

// HeaderLine is one `#+header:` declaration line attached to a block.
type HeaderLine struct {
	Line int
	Span Span // the whole line, newline excluded
}

// SupportedKinds lists the block kinds argument resolution operates on.
var SupportedKinds = map[string]bool{
	"src":           true,
	"transclusion":  true,
	"example":       true,
}

// Supported reports whether the block's structural kind participates in
// argument resolution.
func (b *Block) Supported() bool {
	return SupportedKinds[b.Kind]
}

// Extent returns the span from the block's first header line (or its begin
// delimiter when it has none) through the end delimiter.
func (b *Block) Extent() Span {
	start := b.BeginLine.Start
	if len(b.HeaderLines) > 0 {
		start = b.HeaderLines[0].Span.Start
	}
	return Span{Start: start, End: b.EndLine.End}
}

// Text returns the full document text.
func (d *Document) Text() string {
	return string(d.text)
}

// Len returns the document length in bytes.
func (d *Document) Len() int {
	return len(d.text)
}

// Slice returns the text covered by the span.
func (d *Document) Slice(s Span) string {
	if s.Start < 0 || s.End > len(d.text) || s.End < s.Start {
		return ""
	}
	return string(d.text[s.Start:s.End])
}

// InlineParams returns the raw inline parameter string on the block's begin
// line, empty when none exist.
func (d *Document) InlineParams(b *Block) string {
	return d.Slice(b.InlineSpan)
}

// HeaderLineText returns the raw text of one declaration line.
func (d *Document) HeaderLineText(h HeaderLine) string {
	return d.Slice(h.Span)
}

// BlockAt returns the block whose extent contains the offset, or nil.
func (d *Document) BlockAt(off int) *Block {
	for _, b := range d.Blocks {
		ext := b.Extent()
		if off >= ext.Start && off < ext.End {
			return b
		}
	}
	return nil
}

// NearestHeaderArgs returns the raw aggregate `header-args` property
// inherited by the block: the innermost enclosing headline that declares
// one, falling back to the file-level property keyword.
func (d *Document) NearestHeaderArgs(b *Block) (string, bool) {
	for h := b.Headline; h != nil; h = h.Parent {
		if v, ok := h.Properties["header-args"]; ok {
			return v, true
		}
	}
	if d.fileHeaderArgs != "" {
		return d.fileHeaderArgs, true
	}
	return "", false
}

// Replace substitutes the text covered by the span and returns the applied
// edit. All spans the document itself holds are reindexed; spans held by
// callers must be reindexed against the returned edit.
func (d *Document) Replace(s Span, text string) Edit {
	e := Edit{Start: s.Start, End: s.End, NewText: text}
	d.apply(e)
	return e
}

// Insert places text at the offset and returns the applied edit.
func (d *Document) Insert(pos int, text string) Edit {
	e := Edit{Start: pos, End: pos, NewText: text}
	d.apply(e)
	return e
}

// Delete removes the text covered by the span and returns the applied edit.
func (d *Document) Delete(s Span) Edit {
	e := Edit{Start: s.Start, End: s.End}
	d.apply(e)
	return e
}

func (d *Document) apply(e Edit) {
	next := make([]byte, 0, len(d.text)+e.Delta())
	next = append(next, d.text[:e.Start]...)
	next = append(next, e.NewText...)
	next = append(next, d.text[e.End:]...)
	d.text = next
	d.reindex(e)
}

// reindex adjusts every span the document tracks for one applied edit.
func (d *Document) reindex(e Edit) {
	for _, h := range d.Headlines {
		h.Span = h.Span.Reindex(e)
		h.Extent = h.Extent.Reindex(e)
	}
	for _, b := range d.Blocks {
		b.BeginLine = b.BeginLine.Reindex(e)
		b.EndLine = b.EndLine.Reindex(e)
		b.Body = b.Body.Reindex(e)
		b.InlineSpan = b.InlineSpan.Reindex(e)
		for i := range b.HeaderLines {
			b.HeaderLines[i].Span = b.HeaderLines[i].Span.Reindex(e)
		}
	}
}
