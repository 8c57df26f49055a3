package linktype

// ValidatorFunc checks one component's argument value. It receives the
// value, the backing argument name, and the link type identifier, and
// signals failure by returning an error carrying a human-readable
// explanation.
type ValidatorFunc func(value, arg, typeID string) error

// ConstructorFunc builds the raw (unwrapped) reference string from the
// extracted component values, keyed by semantic component key.
type ConstructorFunc func(components map[string]string) (string, error)

// ComponentDecl declares one named facet of a link type. Absent optional
// behavior is a nil function or empty list, not a missing map key.
type ComponentDecl struct {
	// Key is the semantic name, unique within the type.
	Key string

	// Arg is the backing block argument name.
	Arg string

	// Validate is the legacy single-phase validator, used after expansion
	// when no ValidateSemantic is declared.
	Validate ValidatorFunc

	// ValidateSyntax runs before variable expansion, on raw values.
	ValidateSyntax ValidatorFunc

	// ValidateSemantic runs after variable expansion.
	ValidateSemantic ValidatorFunc

	// Required makes the component's absence a fatal error.
	Required bool

	// Requires lists component keys that must be co-present.
	Requires []string

	// Conflicts lists component keys that must not be co-present.
	Conflicts []string

	// ShadowedBy lists component keys whose presence makes this one
	// inert; co-presence is reported as a soft warning only.
	ShadowedBy []string

	// ExpandVars opts the backing argument into variable expansion.
	ExpandVars bool
}

// EffectiveValidator resolves the post-expansion validator: the semantic
// one when declared, otherwise the legacy single-phase validator.
func (d *ComponentDecl) EffectiveValidator() ValidatorFunc {
	if d.ValidateSemantic != nil {
		return d.ValidateSemantic
	}
	return d.Validate
}

// Definition is one registered link type: its component declarations in
// order plus the constructor.
type Definition struct {
	ID          string
	Description string
	Components  []ComponentDecl
	Construct   ConstructorFunc
}

// Component returns the declaration with the given key.
func (d *Definition) Component(key string) (*ComponentDecl, bool) {
	for i := range d.Components {
		if d.Components[i].Key == key {
			return &d.Components[i], true
		}
	}
	return nil, false
}

// ComponentByArg returns the declaration whose backing argument matches.
func (d *Definition) ComponentByArg(arg string) (*ComponentDecl, bool) {
	for i := range d.Components {
		if d.Components[i].Arg == arg {
			return &d.Components[i], true
		}
	}
	return nil, false
}
