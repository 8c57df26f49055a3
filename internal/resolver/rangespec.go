package resolver

import (
	"fmt"
	"regexp"
	"strconv"
)

// rangeRe accepts "10-20", "10-", "-20" and the bare single line "10".
var rangeRe = regexp.MustCompile(`^(\d+)?-(\d+)?$|^(\d+)$`)

// RangeSpec is a 1-based inclusive line range; either bound may be open.
type RangeSpec struct {
	Start    int
	End      int
	HasStart bool
	HasEnd   bool
}

// ParseRange parses a range directive string.
func ParseRange(s string) (RangeSpec, error) {
	m := rangeRe.FindStringSubmatch(s)
	if m == nil {
		return RangeSpec{}, &UserInputError{Arg: "lines", Reason: fmt.Sprintf("malformed range %q, expected forms like 10-20, 10- or -20", s)}
	}
	// The regex only admits digit runs, so a conversion failure means the
	// number does not fit an int.
	bound := func(digits string) (int, error) {
		n, err := strconv.Atoi(digits)
		if err != nil {
			return 0, &UserInputError{Arg: "lines", Reason: fmt.Sprintf("line number %q out of range", digits), Err: err}
		}
		return n, nil
	}

	var r RangeSpec
	if m[3] != "" {
		n, err := bound(m[3])
		if err != nil {
			return RangeSpec{}, err
		}
		return RangeSpec{Start: n, End: n, HasStart: true, HasEnd: true}, nil
	}
	if m[1] == "" && m[2] == "" {
		return RangeSpec{}, &UserInputError{Arg: "lines", Reason: fmt.Sprintf("malformed range %q, at least one bound is required", s)}
	}
	if m[1] != "" {
		n, err := bound(m[1])
		if err != nil {
			return RangeSpec{}, err
		}
		r.Start, r.HasStart = n, true
	}
	if m[2] != "" {
		n, err := bound(m[2])
		if err != nil {
			return RangeSpec{}, err
		}
		r.End, r.HasEnd = n, true
	}
	if r.HasStart && r.HasEnd && r.Start > r.End {
		return RangeSpec{}, &UserInputError{Arg: "lines", Reason: fmt.Sprintf("range %q starts after it ends", s)}
	}
	return r, nil
}

// String renders the canonical directive form.
func (r RangeSpec) String() string {
	switch {
	case r.HasStart && r.HasEnd && r.Start == r.End:
		return strconv.Itoa(r.Start)
	case r.HasStart && r.HasEnd:
		return fmt.Sprintf("%d-%d", r.Start, r.End)
	case r.HasStart:
		return fmt.Sprintf("%d-", r.Start)
	case r.HasEnd:
		return fmt.Sprintf("-%d", r.End)
	default:
		return "-"
	}
}

// Expand widens the range by n lines on each present bound. The start never
// drops below line 1.
func (r RangeSpec) Expand(n int) RangeSpec {
	out := r
	if out.HasStart {
		out.Start -= n
		if out.Start < 1 {
			out.Start = 1
		}
	}
	if out.HasEnd {
		out.End += n
	}
	return out
}

// Shrink narrows the range by n lines on each present bound and fails when
// the bounds would cross.
func (r RangeSpec) Shrink(n int) (RangeSpec, error) {
	out := r
	if out.HasStart {
		out.Start += n
	}
	if out.HasEnd {
		out.End -= n
	}
	if out.HasStart && out.HasEnd && out.Start > out.End {
		return RangeSpec{}, &UserInputError{
			Arg:    "lines",
			Reason: fmt.Sprintf("shrinking %s by %d would invert the range", r, n),
		}
	}
	return out, nil
}
