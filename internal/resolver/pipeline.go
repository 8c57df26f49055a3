// Package resolver orchestrates the two-phase validation pipeline and link
// construction for one block: collect the raw argument set, run syntax
// validators, expand variables selectively, run semantic validators, check
// component interactions, and assemble the final reference string.
//
// The pipeline is linear with no retries. Any validator failure aborts the
// whole resolution for the block; nothing is written anywhere until every
// stage has passed, so a failed block is left exactly as it was.
package resolver

import (
	"context"

	"github.com/gggion/org-transclusion-blocks/internal/ctxlog"
	"github.com/gggion/org-transclusion-blocks/internal/headerargs"
	"github.com/gggion/org-transclusion-blocks/internal/linktype"
	"github.com/gggion/org-transclusion-blocks/internal/orgdoc"
	"github.com/gggion/org-transclusion-blocks/internal/vars"
)

// TypeArg is the argument that selects a registered link type.
const TypeArg = "type"

// VarsArg is the reserved argument whose values form the binding set.
const VarsArg = "vars"

// genericExpandArgs always pass through variable expansion, regardless of
// the declared type. Everything outside this set and the type's opted-in
// components is left verbatim; in particular the `sub-` argument namespace
// belongs to the sub-extraction subsystem, which has its own variable
// semantics that expansion must not corrupt.
var genericExpandArgs = map[string]bool{
	"link":           true,
	"lines":          true,
	"thing-at-point": true,
	"args":           true,
}

// Options is the caller-level policy for a Resolver.
type Options struct {
	// ShowWarnings controls whether non-fatal configuration warnings are
	// returned on resolutions. Warnings never block resolution either way.
	ShowWarnings bool
}

// Resolver runs the validation pipeline against a link type registry.
type Resolver struct {
	registry *linktype.Registry
	opts     Options
}

// New creates a Resolver bound to a registry.
func New(reg *linktype.Registry, opts Options) *Resolver {
	return &Resolver{registry: reg, opts: opts}
}

// Resolution is the product of a successful pipeline run.
type Resolution struct {
	// Link is the bracketed reference string.
	Link string

	// Lines and Thing are the mutually exclusive ancillary directives.
	Lines *RangeSpec
	Thing string

	// Extra is the free-form trailing directive string, already stripped
	// of sub-directives the ancillary directives supersede.
	Extra string

	Warnings []linktype.Warning
}

// Reference assembles the full output string: the link with the ancillary
// and trailing directives appended.
func (r *Resolution) Reference() string {
	out := r.Link
	if r.Lines != nil {
		out += " :lines " + r.Lines.String()
	}
	if r.Thing != "" {
		out += " :thing-at-point " + r.Thing
	}
	if r.Extra != "" {
		out += " " + r.Extra
	}
	return out
}

// Collect gathers every reachable declaration for the block into one raw
// parameter set and identifies the declared link type, if any. Sources are
// flattened lowest precedence first so higher-ranked declarations override;
// among header lines the first in document order wins, so they are fed in
// reverse.
func Collect(doc *orgdoc.Document, b *orgdoc.Block) (*headerargs.ParamSet, string, error) {
	if !b.Supported() {
		return nil, "", &headerargs.ContextError{Kind: b.Kind, Line: b.Line}
	}

	var raws []string
	if inherited, ok := doc.NearestHeaderArgs(b); ok {
		raws = append(raws, inherited)
	}
	if inline := doc.InlineParams(b); inline != "" {
		raws = append(raws, inline)
	}
	for i := len(b.HeaderLines) - 1; i >= 0; i-- {
		raws = append(raws, doc.HeaderLineText(b.HeaderLines[i]))
	}

	set := headerargs.ParseDeclarations(raws...)
	typeID, _ := set.Get(TypeArg)
	return set, typeID, nil
}

// Resolve runs the full pipeline for one block. A nil Resolution with a nil
// error means there is nothing to do for this block — no link could be
// constructed — which is not a fault.
func (r *Resolver) Resolve(ctx context.Context, doc *orgdoc.Document, b *orgdoc.Block) (*Resolution, error) {
	logger := ctxlog.FromContext(ctx)

	raw, typeID, err := Collect(doc, b)
	if err != nil {
		return nil, err
	}

	var def *linktype.Definition
	if typeID != "" {
		if d, ok := r.registry.Lookup(typeID); ok {
			def = d
		} else {
			logger.Debug("Declared link type is not registered, falling back to direct mode.", "type", typeID)
		}
	}

	if def != nil {
		if err := preValidate(raw, def); err != nil {
			return nil, err
		}
	}

	expanded := expandSet(raw, def)

	if def != nil {
		if err := postValidate(expanded, def); err != nil {
			return nil, err
		}
	}

	var warnings []linktype.Warning
	if def != nil {
		present := map[string]string{}
		for _, p := range expanded.Params() {
			present[p.Name] = p.Value
		}
		ws, err := linktype.CheckInteractions(def.ID, present, def.Components)
		warnings = ws
		if err != nil {
			if ie, ok := err.(*linktype.InteractionError); ok {
				return nil, &UserInputError{Arg: ie.Arg, Reason: ie.Reason, Err: ie}
			}
			return nil, err
		}
	}

	link, ok, err := r.construct(expanded, typeID, def)
	if err != nil {
		return nil, err
	}
	if !ok {
		logger.Debug("No link constructed for block, nothing to do.", "line", b.Line)
		return nil, nil
	}

	res := &Resolution{Link: link}
	dirWarnings, err := applyDirectives(res, expanded)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, dirWarnings...)

	if r.opts.ShowWarnings {
		res.Warnings = warnings
	}
	return res, nil
}

// preValidate runs the syntax validators over the raw, unexpanded set.
// Values awaiting a variable substitution may be incomplete literals, which
// is exactly why these validators see the text before expansion.
func preValidate(raw *headerargs.ParamSet, def *linktype.Definition) error {
	for i := range def.Components {
		d := &def.Components[i]
		if d.ValidateSyntax == nil {
			continue
		}
		v, ok := raw.Get(d.Arg)
		if !ok {
			continue
		}
		if err := d.ValidateSyntax(v, d.Arg, def.ID); err != nil {
			return asValidationError(err, def.ID, d.Arg)
		}
	}
	return nil
}

// postValidate runs each component's effective validator over the expanded
// set.
func postValidate(expanded *headerargs.ParamSet, def *linktype.Definition) error {
	for i := range def.Components {
		d := &def.Components[i]
		fn := d.EffectiveValidator()
		if fn == nil {
			continue
		}
		v, ok := expanded.Get(d.Arg)
		if !ok {
			continue
		}
		if err := fn(v, d.Arg, def.ID); err != nil {
			return asValidationError(err, def.ID, d.Arg)
		}
	}
	return nil
}

func asValidationError(err error, typeID, arg string) error {
	if ve, ok := err.(*ValidationError); ok {
		return ve
	}
	return &ValidationError{TypeID: typeID, Arg: arg, Explanation: err.Error()}
}

// expandSet runs the substitution engine over every eligible argument,
// producing a derived set; the raw set is left untouched.
func expandSet(raw *headerargs.ParamSet, def *linktype.Definition) *headerargs.ParamSet {
	bindings := vars.ParseBindings(raw.All(VarsArg))
	out := headerargs.NewParamSet()
	for _, p := range raw.Params() {
		v := p.Value
		if expandEligible(p.Name, def) {
			v = bindings.Expand(v)
		}
		if p.Name == VarsArg {
			out.Append(p.Name, v)
		} else {
			out.Set(p.Name, v)
		}
	}
	return out
}

func expandEligible(name string, def *linktype.Definition) bool {
	if genericExpandArgs[name] {
		return true
	}
	if def == nil {
		return false
	}
	if d, ok := def.ComponentByArg(name); ok {
		return d.ExpandVars
	}
	return false
}
