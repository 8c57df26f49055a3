package headerargs

import (
	"fmt"

	"github.com/gggion/org-transclusion-blocks/internal/orgdoc"
)

// Mode selects the insertion policy for Set when the argument has no
// writable declaration yet.
type Mode int

const (
	// ModeUpdate only rewrites an existing declaration.
	ModeUpdate Mode = iota

	// ModeInsertHeader creates a new `#+header:` line when none exists.
	ModeInsertHeader

	// ModeInsertInline appends an inline token when none exists.
	ModeInsertInline

	// ModeUpsertHeader updates in place, inserting a header line if the
	// argument is absent.
	ModeUpsertHeader

	// ModeUpsertInline updates in place, appending inline if the argument
	// is absent.
	ModeUpsertInline
)

// Get returns the value of the single highest-precedence declaration of the
// argument, or ok=false when it is declared nowhere.
func Get(doc *orgdoc.Document, b *orgdoc.Block, name string) (string, bool, error) {
	locs, err := FindLocations(doc, b, name)
	if err != nil {
		return "", false, err
	}
	if len(locs) == 0 {
		return "", false, nil
	}
	return locs[0].Value, true, nil
}

// Set writes the argument's value. When any declaration exists, the
// highest-precedence one is rewritten in place and its span recomputed;
// targeting an inherited declaration fails with ErrReadOnlyLocation unless
// an insert mode is allowed to shadow it with a fresh writable location.
// When nothing exists, ModeUpdate fails with ErrNotFound and the insert
// modes create a brand-new header-line or inline declaration.
//
// The mutation is applied directly to the document text; discovery is not
// re-run, so callers needing a consistent view afterwards must re-resolve.
func Set(doc *orgdoc.Document, b *orgdoc.Block, name, value string, mode Mode) (*Location, error) {
	locs, err := FindLocations(doc, b, name)
	if err != nil {
		return nil, err
	}

	if len(locs) > 0 && locs[0].Kind.Writable() {
		return updateInPlace(doc, locs[0], value), nil
	}

	if len(locs) > 0 {
		// Present only at the inherited kind.
		if mode == ModeUpdate {
			return nil, fmt.Errorf("cannot write %q: %w", name, ErrReadOnlyLocation)
		}
	} else if mode == ModeUpdate {
		return nil, fmt.Errorf("cannot update %q: %w", name, ErrNotFound)
	}

	switch mode {
	case ModeInsertHeader, ModeUpsertHeader:
		return insertHeader(doc, b, name, value), nil
	case ModeInsertInline, ModeUpsertInline:
		return insertInline(doc, b, name, value), nil
	default:
		return nil, fmt.Errorf("cannot write %q: %w", name, ErrReadOnlyLocation)
	}
}

// UpdatePartial reads the current highest-precedence value, applies the
// transform, and writes the result back with the default mode. The sequence
// is atomic from the caller's perspective only because nothing here ever
// suspends; there is no locking.
func UpdatePartial(doc *orgdoc.Document, b *orgdoc.Block, name string, transform func(string) string) (*Location, error) {
	locs, err := FindLocations(doc, b, name)
	if err != nil {
		return nil, err
	}
	if len(locs) == 0 {
		return nil, fmt.Errorf("cannot transform %q: %w", name, ErrNotFound)
	}
	if !locs[0].Kind.Writable() {
		return nil, fmt.Errorf("cannot transform %q: %w", name, ErrReadOnlyLocation)
	}
	return updateInPlace(doc, locs[0], transform(locs[0].Value)), nil
}

func updateInPlace(doc *orgdoc.Document, loc *Location, value string) *Location {
	doc.Replace(*loc.Span, value)
	loc.Span.End = loc.Span.Start + len(value)
	loc.Value = value
	return loc
}

// insertHeader writes a new declaration line immediately preceding the
// block's begin delimiter and records it on the block so later resolutions
// within the same pass see it.
func insertHeader(doc *orgdoc.Document, b *orgdoc.Block, name, value string) *Location {
	prefix := "#+header: :" + name + " "
	pos := b.BeginLine.Start
	doc.Insert(pos, prefix+value+"\n")

	hl := orgdoc.HeaderLine{
		Line: b.Line,
		Span: orgdoc.Span{Start: pos, End: pos + len(prefix) + len(value)},
	}
	b.HeaderLines = append(b.HeaderLines, hl)
	b.Line++

	span := orgdoc.Span{Start: pos + len(prefix), End: pos + len(prefix) + len(value)}
	return &Location{
		Block:      b,
		Name:       name,
		Kind:       KindHeader,
		Line:       hl.Line,
		Span:       &span,
		Value:      value,
		Precedence: KindHeader.Precedence(),
	}
}

// insertInline appends a `:name value` token to the begin delimiter line.
func insertInline(doc *orgdoc.Document, b *orgdoc.Block, name, value string) *Location {
	token := " :" + name + " " + value
	pos := b.BeginLine.End
	doc.Insert(pos, token)

	b.BeginLine.End = pos + len(token)
	if b.InlineSpan.Empty() {
		b.InlineSpan = orgdoc.Span{Start: pos + 1, End: pos + len(token)}
	} else {
		b.InlineSpan.End = pos + len(token)
	}

	span := orgdoc.Span{Start: pos + len(" :"+name+" "), End: pos + len(token)}
	return &Location{
		Block:      b,
		Name:       name,
		Kind:       KindInline,
		Line:       b.Line,
		Span:       &span,
		Value:      value,
		Precedence: KindInline.Precedence(),
	}
}
