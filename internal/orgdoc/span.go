package orgdoc

// Span is a half-open byte range [Start, End) into a document's text.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains reports whether the byte offset falls inside the span.
func (s Span) Contains(off int) bool {
	return off >= s.Start && off < s.End
}

// Empty reports whether the span covers no bytes.
func (s Span) Empty() bool {
	return s.End <= s.Start
}

// Edit describes one applied text mutation: the bytes in [Start, End) were
// replaced by NewText. Inserts have Start == End; deletes have NewText == "".
type Edit struct {
	Start   int
	End     int
	NewText string
}

// Delta returns the change in document length the edit caused.
func (e Edit) Delta() int {
	return len(e.NewText) - (e.End - e.Start)
}

// Reindex returns the span adjusted for an edit that has been applied to the
// underlying text. This is the single place span offset arithmetic lives;
// every holder of a Span runs it through here after a mutation.
func (s Span) Reindex(e Edit) Span {
	d := e.Delta()
	switch {
	case s.End <= e.Start:
		// Entirely before the edit.
		return s
	case s.Start >= e.End:
		// Entirely after the edit.
		return Span{Start: s.Start + d, End: s.End + d}
	case e.Start >= s.Start && e.End <= s.End:
		// Edit fully inside the span: the span stretches or shrinks.
		return Span{Start: s.Start, End: s.End + d}
	case e.Start <= s.Start && e.End >= s.End:
		// Edit swallows the span: collapse to the edit start.
		return Span{Start: e.Start, End: e.Start}
	case e.Start < s.Start:
		// Edit overlaps the span's head.
		return Span{Start: e.Start + len(e.NewText), End: s.End + d}
	default:
		// Edit overlaps the span's tail.
		return Span{Start: s.Start, End: e.Start}
	}
}
