// Package vars implements placeholder substitution for argument values.
//
// A binding set maps names to values. Three reference forms are recognized,
// tried in a fixed order: a bracket-wrapped value is unwrapped, expanded and
// re-wrapped; a value that exactly equals a binding name is replaced
// wholesale; and every `$name` occurrence is replaced per binding. A value
// with no matching reference passes through unchanged — that is the normal
// case, not an error.
//
// Binding values are cty values so that non-string bindings stringify
// through a structured representation instead of Go's fmt defaults.
package vars

import (
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Binding is one name/value pair.
type Binding struct {
	Name  string
	Value cty.Value
}

// Bindings is an ordered binding set. Later bindings of a name override
// earlier ones, so callers feed lower-precedence declarations first.
type Bindings struct {
	list  []Binding
	index map[string]int
}

// NewBindings returns an empty binding set.
func NewBindings() *Bindings {
	return &Bindings{index: map[string]int{}}
}

// Put adds or overrides a binding.
func (b *Bindings) Put(name string, value cty.Value) {
	if i, ok := b.index[name]; ok {
		b.list[i].Value = value
		return
	}
	b.index[name] = len(b.list)
	b.list = append(b.list, Binding{Name: name, Value: value})
}

// Get returns the bound value.
func (b *Bindings) Get(name string) (cty.Value, bool) {
	if i, ok := b.index[name]; ok {
		return b.list[i].Value, true
	}
	return cty.NilVal, false
}

// Len returns the number of bindings.
func (b *Bindings) Len() int {
	return len(b.list)
}

// Expand resolves placeholder references in the value against the binding
// set. If nothing matches, the input comes back unchanged.
func (b *Bindings) Expand(value string) string {
	if b == nil || len(b.list) == 0 {
		return value
	}
	if strings.HasPrefix(value, "[[") && strings.HasSuffix(value, "]]") && len(value) >= 4 {
		return "[[" + b.expandFlat(value[2:len(value)-2]) + "]]"
	}
	return b.expandFlat(value)
}

func (b *Bindings) expandFlat(value string) string {
	// Exact bare-name match replaces wholesale.
	if v, ok := b.Get(value); ok {
		return Stringify(v)
	}

	// Longest names first so $foobar is never clipped by a $foo binding.
	names := make([]string, 0, len(b.list))
	for _, bind := range b.list {
		names = append(names, bind.Name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		return len(names[i]) > len(names[j])
	})

	out := value
	for _, name := range names {
		v, _ := b.Get(name)
		out = strings.ReplaceAll(out, "$"+name, Stringify(v))
	}
	return out
}

// Stringify renders a binding value for substitution. Strings are used
// as-is; everything else goes through the structured JSON representation.
func Stringify(v cty.Value) string {
	if v == cty.NilVal || v.IsNull() {
		return ""
	}
	if v.Type() == cty.String {
		return v.AsString()
	}
	buf, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return ""
	}
	return string(buf)
}
