package resolver

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gggion/org-transclusion-blocks/internal/headerargs"
	"github.com/gggion/org-transclusion-blocks/internal/linktype"
)

// LinkArg is the designated complete-reference argument. When present its
// value is used verbatim, taking priority over type-specific construction.
const LinkArg = "link"

// construct selects the construction mode in fixed priority order: the
// complete-reference argument wins, then type-specific component assembly.
// ok=false means neither mode produced a reference, which callers treat as
// "nothing to do," not a fault.
func (r *Resolver) construct(set *headerargs.ParamSet, typeID string, def *linktype.Definition) (string, bool, error) {
	if link, ok := set.Get(LinkArg); ok && link != "" {
		return ensureBracketed(link), true, nil
	}

	if def == nil || def.Construct == nil {
		return "", false, nil
	}

	components := map[string]string{}
	for i := range def.Components {
		d := &def.Components[i]
		if v, ok := set.Get(d.Arg); ok {
			components[d.Key] = v
		}
	}
	if len(components) == 0 {
		return "", false, nil
	}

	raw, err := def.Construct(components)
	if err != nil {
		return "", false, &UserInputError{
			Reason: fmt.Sprintf("link type %q constructor failed: %v", typeID, err),
			Err:    err,
		}
	}
	return ensureBracketed(raw), true, nil
}

// ensureBracketed wraps the reference in the bracket convention unless it
// already is.
func ensureBracketed(s string) string {
	if strings.HasPrefix(s, "[[") && strings.HasSuffix(s, "]]") {
		return s
	}
	return "[[" + s + "]]"
}

// Sub-directive patterns stripped from the trailing args string when the
// corresponding ancillary directive is present.
var (
	extraLinesRe = regexp.MustCompile(`(^|[ \t]):lines[ \t]+[^ \t]+`)
	extraThingRe = regexp.MustCompile(`(^|[ \t]):thing-at-point[ \t]+[^ \t]+`)
)

// applyDirectives parses the ancillary directives out of the parameter set
// onto the resolution. The range and thing directives are mutually
// exclusive by hard constraint; a duplicate embedded in the free-form
// trailing string is stripped with a warning because the ancillary
// directive always takes precedence.
func applyDirectives(res *Resolution, set *headerargs.ParamSet) ([]linktype.Warning, error) {
	linesRaw, hasLines := set.Get("lines")
	thing, hasThing := set.Get("thing-at-point")

	if hasLines && hasThing {
		return nil, &UserInputError{
			Arg:    "lines",
			Reason: "the :lines and :thing-at-point directives are mutually exclusive",
		}
	}

	if hasLines {
		rng, err := ParseRange(linesRaw)
		if err != nil {
			return nil, err
		}
		res.Lines = &rng
	}
	if hasThing {
		res.Thing = thing
	}

	var warnings []linktype.Warning
	extra, _ := set.Get("args")
	if extra != "" {
		if hasLines && extraLinesRe.MatchString(extra) {
			extra = strings.TrimSpace(extraLinesRe.ReplaceAllString(extra, ""))
			warnings = append(warnings, linktype.Warning{
				Arg:     "args",
				Message: "redundant :lines in trailing args superseded by the range directive",
			})
		}
		if hasThing && extraThingRe.MatchString(extra) {
			extra = strings.TrimSpace(extraThingRe.ReplaceAllString(extra, ""))
			warnings = append(warnings, linktype.Warning{
				Arg:     "args",
				Message: "redundant :thing-at-point in trailing args superseded by the thing directive",
			})
		}
	}
	res.Extra = extra
	return warnings, nil
}
