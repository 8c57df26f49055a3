package vars

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// ParseBindings builds a binding set from the raw values of the reserved
// binding argument. Each raw string holds whitespace-separated `name=value`
// tokens; a value may be a quoted string, bare word, or any literal HCL
// expression (numbers, bools, lists). Values that fail to parse as an
// expression degrade to the raw string, never to an error.
func ParseBindings(raws []string) *Bindings {
	b := NewBindings()
	for _, raw := range raws {
		for _, tok := range splitBindingTokens(raw) {
			eq := strings.IndexByte(tok, '=')
			if eq <= 0 {
				continue
			}
			name := tok[:eq]
			b.Put(name, parseLiteral(tok[eq+1:]))
		}
	}
	return b
}

// parseLiteral evaluates one binding value as a literal HCL expression with
// no evaluation context, so only constants resolve.
func parseLiteral(raw string) cty.Value {
	if raw == "" {
		return cty.StringVal("")
	}
	expr, diags := hclsyntax.ParseExpression([]byte(raw), "vars", hcl.InitialPos)
	if diags.HasErrors() {
		return cty.StringVal(raw)
	}
	v, diags := expr.Value(nil)
	if diags.HasErrors() || v.IsNull() {
		return cty.StringVal(raw)
	}
	return v
}

// splitBindingTokens splits on whitespace outside double quotes and
// brackets, so `x="a b"` and `l=[1, 2]` survive as single tokens.
func splitBindingTokens(raw string) []string {
	var out []string
	var cur strings.Builder
	depth := 0
	quoted := false
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '"':
			quoted = !quoted
			cur.WriteByte(c)
		case !quoted && (c == '[' || c == '{' || c == '('):
			depth++
			cur.WriteByte(c)
		case !quoted && (c == ']' || c == '}' || c == ')'):
			depth--
			cur.WriteByte(c)
		case !quoted && depth == 0 && (c == ' ' || c == '\t'):
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return out
}
