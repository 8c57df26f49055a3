package headerargs

import (
	"regexp"
	"strings"
)

// Arguments whose value runs to end of line instead of stopping at the next
// whitespace. The range and thing directives are free text by grammar; vars
// and the trailing directive string carry embedded spaces by nature.
var freeTextArgs = map[string]bool{
	"lines":          true,
	"thing-at-point": true,
	"args":           true,
	"vars":           true,
}

// argNameRe matches a `:name` token at the start of the scanned text or
// after whitespace. The name grammar matches org's keyword conventions.
var argNameRe = regexp.MustCompile(`(^|[ \t]):([A-Za-z][A-Za-z0-9_-]*)`)

// declMarkerRe strips the declaration-line marker before scanning.
var declMarkerRe = regexp.MustCompile(`(?i)^[ \t]*#\+header:[ \t]*`)

// Param is one name/value argument pair.
type Param struct {
	Name  string
	Value string
}

// ParamSet is an ordered association from argument name to value. Order is
// first-appearance order; Set overwrites in place while Append keeps every
// occurrence, which the binding argument needs.
type ParamSet struct {
	params []Param
}

// NewParamSet returns an empty set.
func NewParamSet() *ParamSet {
	return &ParamSet{}
}

// Get returns the effective value for the name: the most recently written
// occurrence wins.
func (s *ParamSet) Get(name string) (string, bool) {
	for i := len(s.params) - 1; i >= 0; i-- {
		if s.params[i].Name == name {
			return s.params[i].Value, true
		}
	}
	return "", false
}

// Has reports whether the name is declared at all.
func (s *ParamSet) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Set overwrites the existing occurrence in place, or appends.
func (s *ParamSet) Set(name, value string) {
	for i := range s.params {
		if s.params[i].Name == name {
			s.params[i].Value = value
			return
		}
	}
	s.params = append(s.params, Param{Name: name, Value: value})
}

// Append always adds another occurrence, preserving earlier ones.
func (s *ParamSet) Append(name, value string) {
	s.params = append(s.params, Param{Name: name, Value: value})
}

// All returns every value declared for the name, in declaration order.
func (s *ParamSet) All(name string) []string {
	var out []string
	for _, p := range s.params {
		if p.Name == name {
			out = append(out, p.Value)
		}
	}
	return out
}

// Params returns a copy of the entries in order.
func (s *ParamSet) Params() []Param {
	out := make([]Param, len(s.params))
	copy(out, s.params)
	return out
}

// Names returns the distinct argument names in first-appearance order.
func (s *ParamSet) Names() []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range s.params {
		if !seen[p.Name] {
			seen[p.Name] = true
			out = append(out, p.Name)
		}
	}
	return out
}

// Clone returns an independent copy.
func (s *ParamSet) Clone() *ParamSet {
	return &ParamSet{params: s.Params()}
}

// Len returns the number of entries.
func (s *ParamSet) Len() int {
	return len(s.params)
}

// ParseDeclarations parses raw declaration strings (header lines, the inline
// parameter string, or an inherited aggregate) into a ParamSet. This is the
// single boundary between raw org text and the format-agnostic pipeline.
func ParseDeclarations(raws ...string) *ParamSet {
	set := NewParamSet()
	for _, raw := range raws {
		for _, p := range scanParams(raw) {
			if p.Name == "vars" {
				set.Append(p.Name, p.Value)
			} else {
				set.Set(p.Name, p.Value)
			}
		}
	}
	return set
}

// scanParams extracts every `:name value` pair from one raw string. A name
// with no value token is not a declaration and is skipped.
func scanParams(raw string) []Param {
	raw = declMarkerRe.ReplaceAllString(raw, "")
	var out []Param
	rest := raw
	for {
		loc := argNameRe.FindStringSubmatchIndex(rest)
		if loc == nil {
			return out
		}
		name := rest[loc[4]:loc[5]]
		after := rest[loc[1]:]
		value, advance, ok := scanValue(name, after)
		if !ok {
			// Not a declaration: skip the junk token so the anchor
			// cannot re-match mid-token.
			idx := strings.IndexAny(after, " \t")
			if idx < 0 {
				return out
			}
			rest = after[idx:]
			continue
		}
		out = append(out, Param{Name: name, Value: value})
		if freeTextArgs[name] {
			return out
		}
		rest = after[advance:]
	}
}

// scanValue reads the value token following an argument name. Free-text
// arguments consume the remainder of the string; everything else takes the
// longest run of non-whitespace characters.
func scanValue(name, after string) (value string, advance int, ok bool) {
	trimmed := strings.TrimLeft(after, " \t")
	pad := len(after) - len(trimmed)
	if trimmed == "" || pad == 0 {
		// Either end of line or the name was not followed by whitespace.
		return "", 0, false
	}
	if freeTextArgs[name] {
		return strings.TrimRight(trimmed, " \t"), len(after), true
	}
	end := strings.IndexAny(trimmed, " \t")
	if end < 0 {
		end = len(trimmed)
	}
	return trimmed[:end], pad + end, true
}

// findArgValue locates the value of one named argument inside a raw string
// and returns its byte offsets within raw. Offsets let the caller build a
// mutable span for the value.
func findArgValue(raw, name string) (start, end int, ok bool) {
	stripped := declMarkerRe.ReplaceAllString(raw, "")
	base := len(raw) - len(stripped)
	rest := stripped
	off := 0
	for {
		loc := argNameRe.FindStringSubmatchIndex(rest)
		if loc == nil {
			return 0, 0, false
		}
		found := rest[loc[4]:loc[5]]
		after := rest[loc[1]:]
		value, advance, has := scanValue(found, after)
		if found == name && has {
			vs := strings.Index(after[:advance], value)
			start = base + off + loc[1] + vs
			return start, start + len(value), true
		}
		if freeTextArgs[found] && has {
			// A free-text value consumed the rest of the line.
			return 0, 0, false
		}
		if has {
			off += loc[1] + advance
			rest = after[advance:]
			continue
		}
		idx := strings.IndexAny(after, " \t")
		if idx < 0 {
			return 0, 0, false
		}
		off += loc[1] + idx
		rest = after[idx:]
	}
}
