// Package manifest loads link type definitions from HCL manifest files and
// installs them into a registry. A manifest declares the declarative half of
// a link type — its components, their argument names, and their interaction
// relations — while the imperative half (validators, constructors) is Go code
// registered by name; the loader binds the two and verifies parity.
package manifest

import (
	"github.com/hashicorp/hcl/v2"
)

// ComponentBlock is one `component` block inside a link_type definition.
type ComponentBlock struct {
	Key              string   `hcl:"key,label"`
	Arg              string   `hcl:"arg"`
	Required         bool     `hcl:"required,optional"`
	ExpandVars       bool     `hcl:"expand_vars,optional"`
	Validate         string   `hcl:"validate,optional"`
	ValidateSyntax   string   `hcl:"validate_syntax,optional"`
	ValidateSemantic string   `hcl:"validate_semantic,optional"`
	Requires         []string `hcl:"requires,optional"`
	Conflicts        []string `hcl:"conflicts,optional"`
	ShadowedBy       []string `hcl:"shadowed_by,optional"`
}

// LinkTypeBlock is the HCL manifest for one registered link type.
type LinkTypeBlock struct {
	ID          string            `hcl:"id,label"`
	Description string            `hcl:"description,optional"`
	Constructor string            `hcl:"constructor"`
	Components  []*ComponentBlock `hcl:"component,block"`
}

// File is the top-level structure of a manifest file.
type File struct {
	LinkTypes []*LinkTypeBlock `hcl:"link_type,block"`
	Body      hcl.Body         `hcl:",remain"`
}
