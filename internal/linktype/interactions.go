package linktype

import "fmt"

// Warning is a non-fatal finding from the interaction checker. Warnings are
// collected and reported but never block resolution; a caller-level policy
// decides whether they are displayed.
type Warning struct {
	TypeID  string
	Key     string
	Arg     string
	Message string
}

// InteractionError is a fatal component-interaction violation: a missing
// required component, an unmet requires relation, or a conflict.
type InteractionError struct {
	TypeID string
	Key    string
	Arg    string

	// OtherKey and OtherArg are set for conflicts, naming both sides.
	OtherKey string
	OtherArg string

	Reason string
}

// Error implements the error interface.
func (e *InteractionError) Error() string {
	return e.Reason
}

// CheckInteractions evaluates the relation declarations over the set of
// components actually present. present maps backing argument names to their
// values. The checks run in a fixed order — required, shadowed-by, requires,
// conflicts — and the first fatal condition aborts the rest, but shadow
// warnings found before a fatal condition are preserved alongside the error.
func CheckInteractions(typeID string, present map[string]string, decls []ComponentDecl) ([]Warning, error) {
	presentKeys := make(map[string]*ComponentDecl, len(decls))
	for i := range decls {
		if _, ok := present[decls[i].Arg]; ok {
			presentKeys[decls[i].Key] = &decls[i]
		}
	}

	var warnings []Warning

	for i := range decls {
		d := &decls[i]
		if d.Required {
			if _, ok := presentKeys[d.Key]; !ok {
				return warnings, &InteractionError{
					TypeID: typeID,
					Key:    d.Key,
					Arg:    d.Arg,
					Reason: fmt.Sprintf("link type %q: required component :%s (argument %q) is missing", typeID, d.Key, d.Arg),
				}
			}
		}
	}

	for i := range decls {
		d := &decls[i]
		if _, ok := presentKeys[d.Key]; !ok {
			continue
		}
		for _, shadow := range d.ShadowedBy {
			if _, ok := presentKeys[shadow]; ok {
				warnings = append(warnings, Warning{
					TypeID:  typeID,
					Key:     d.Key,
					Arg:     d.Arg,
					Message: fmt.Sprintf("link type %q: component :%s is inert because :%s is also present", typeID, d.Key, shadow),
				})
			}
		}
	}

	for i := range decls {
		d := &decls[i]
		if _, ok := presentKeys[d.Key]; !ok {
			continue
		}
		for _, req := range d.Requires {
			if _, ok := presentKeys[req]; !ok {
				return warnings, &InteractionError{
					TypeID: typeID,
					Key:    d.Key,
					Arg:    d.Arg,
					Reason: fmt.Sprintf("link type %q: component :%s requires :%s, which is not present", typeID, d.Key, req),
				}
			}
		}
	}

	for i := range decls {
		d := &decls[i]
		if _, ok := presentKeys[d.Key]; !ok {
			continue
		}
		for _, conflict := range d.Conflicts {
			other, ok := presentKeys[conflict]
			if !ok {
				continue
			}
			return warnings, &InteractionError{
				TypeID:   typeID,
				Key:      d.Key,
				Arg:      d.Arg,
				OtherKey: other.Key,
				OtherArg: other.Arg,
				Reason: fmt.Sprintf("link type %q: arguments %q and %q conflict (components :%s and :%s)",
					typeID, d.Arg, other.Arg, d.Key, other.Key),
			}
		}
	}

	return warnings, nil
}
