package headerargs

import (
	"errors"

	"github.com/gggion/org-transclusion-blocks/internal/orgdoc"
)

// Resolution and write failures surfaced to callers. All of them abort only
// the current operation and are never retried internally.
var (
	// ErrNotFound means the argument is declared nowhere reachable.
	ErrNotFound = errors.New("argument not declared")

	// ErrReadOnlyLocation means the only writable candidate is the
	// inherited kind, which can never be the target of a write.
	ErrReadOnlyLocation = errors.New("inherited location is read-only")

	// ErrUnsupportedContext means the block's structural kind does not
	// participate in argument resolution.
	ErrUnsupportedContext = errors.New("unsupported block context")
)

// Kind identifies one of the three ranked declaration source kinds. The
// numeric value doubles as the precedence rank: higher wins.
type Kind int

const (
	// KindInherited is the `header-args` property of the nearest
	// structural ancestor. Lowest precedence, never writable.
	KindInherited Kind = 1

	// KindInline is the `:name value` tail of the begin delimiter line.
	KindInline Kind = 2

	// KindHeader is a `#+header:` declaration line above the block.
	// Highest precedence.
	KindHeader Kind = 3
)

// Precedence returns the rank; the kind/precedence mapping is a fixed
// bijection.
func (k Kind) Precedence() int {
	return int(k)
}

// Writable reports whether a location of this kind may be mutated.
func (k Kind) Writable() bool {
	return k != KindInherited
}

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindInherited:
		return "inherited"
	case KindInline:
		return "inline"
	case KindHeader:
		return "header"
	default:
		return "unknown"
	}
}

// Location represents one physical declaration of a named argument. It is
// built fresh on every resolution and discarded when the operation using it
// completes; a write updates Span and Value in place to reflect the mutation
// just performed, but the struct is never persisted beyond the call.
type Location struct {
	Block *orgdoc.Block
	Name  string
	Kind  Kind

	// Line is the 1-based source line of the declaration, 0 for the
	// inherited kind.
	Line int

	// Span covers the value text and is nil for the inherited kind.
	Span *orgdoc.Span

	Value      string
	Precedence int
}

// FindLocations enumerates every declaration site of the argument across the
// three ranked source kinds, ordered by descending precedence. Multiple
// header lines may each yield a location, kept in document order. The result
// is empty when the argument is declared nowhere.
func FindLocations(doc *orgdoc.Document, b *orgdoc.Block, name string) ([]*Location, error) {
	if !b.Supported() {
		return nil, errWithContext(b)
	}

	var locs []*Location
	for _, hl := range b.HeaderLines {
		raw := doc.HeaderLineText(hl)
		if vs, ve, ok := findArgValue(raw, name); ok {
			span := orgdoc.Span{Start: hl.Span.Start + vs, End: hl.Span.Start + ve}
			locs = append(locs, &Location{
				Block:      b,
				Name:       name,
				Kind:       KindHeader,
				Line:       hl.Line,
				Span:       &span,
				Value:      raw[vs:ve],
				Precedence: KindHeader.Precedence(),
			})
		}
	}

	if raw := doc.InlineParams(b); raw != "" {
		if vs, ve, ok := findArgValue(raw, name); ok {
			span := orgdoc.Span{Start: b.InlineSpan.Start + vs, End: b.InlineSpan.Start + ve}
			locs = append(locs, &Location{
				Block:      b,
				Name:       name,
				Kind:       KindInline,
				Line:       b.Line,
				Span:       &span,
				Value:      raw[vs:ve],
				Precedence: KindInline.Precedence(),
			})
		}
	}

	if raw, ok := doc.NearestHeaderArgs(b); ok {
		if vs, ve, found := findArgValue(raw, name); found {
			locs = append(locs, &Location{
				Block:      b,
				Name:       name,
				Kind:       KindInherited,
				Value:      raw[vs:ve],
				Precedence: KindInherited.Precedence(),
			})
		}
	}

	return locs, nil
}

func errWithContext(b *orgdoc.Block) error {
	return &ContextError{Kind: b.Kind, Line: b.Line}
}

// ContextError wraps ErrUnsupportedContext with the offending block kind.
type ContextError struct {
	Kind string
	Line int
}

// Error implements the error interface.
func (e *ContextError) Error() string {
	return "unsupported block context: " + e.Kind
}

// Unwrap lets errors.Is match ErrUnsupportedContext.
func (e *ContextError) Unwrap() error {
	return ErrUnsupportedContext
}
