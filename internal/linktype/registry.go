package linktype

import (
	"fmt"
	"log/slog"
	"sort"
)

// Module is the interface built-in link type packages implement to be
// compiled into the binary.
type Module interface {
	Register(r *Registry)
}

// Registry holds the registered link type definitions plus the named Go
// handlers (validators and constructors) manifests bind to.
type Registry struct {
	types        map[string]*Definition
	validators   map[string]ValidatorFunc
	constructors map[string]ConstructorFunc
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		types:        make(map[string]*Definition),
		validators:   make(map[string]ValidatorFunc),
		constructors: make(map[string]ConstructorFunc),
	}
}

// Register installs a link type definition. Registering an existing
// identifier replaces the prior bundle wholesale — declarations and
// constructor together. The declaration set's internal consistency is not
// checked here; dangling relation keys surface lazily at validation time.
func (r *Registry) Register(id string, components []ComponentDecl, construct ConstructorFunc) {
	r.RegisterDefinition(&Definition{ID: id, Components: components, Construct: construct})
}

// RegisterDefinition installs a complete definition with overwrite
// semantics.
func (r *Registry) RegisterDefinition(def *Definition) {
	if _, exists := r.types[def.ID]; exists {
		slog.Debug("Replacing link type definition.", "type", def.ID)
	} else {
		slog.Debug("Registering link type definition.", "type", def.ID)
	}
	r.types[def.ID] = def
}

// Lookup returns the definition for a type identifier.
func (r *Registry) Lookup(id string) (*Definition, bool) {
	def, ok := r.types[id]
	return def, ok
}

// Types returns the registered type identifiers, sorted.
func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.types))
	for id := range r.types {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// RegisterValidator registers a Go validator function under a name that
// manifests can reference. Duplicate names are a programmer error.
func (r *Registry) RegisterValidator(name string, fn ValidatorFunc) {
	if _, exists := r.validators[name]; exists {
		panic(fmt.Sprintf("validator with name '%s' already registered", name))
	}
	slog.Debug("Registering validator handler.", "name", name)
	r.validators[name] = fn
}

// Validator returns the named validator handler.
func (r *Registry) Validator(name string) (ValidatorFunc, bool) {
	fn, ok := r.validators[name]
	return fn, ok
}

// RegisterConstructor registers a Go constructor function under a name that
// manifests can reference. Duplicate names are a programmer error.
func (r *Registry) RegisterConstructor(name string, fn ConstructorFunc) {
	if _, exists := r.constructors[name]; exists {
		panic(fmt.Sprintf("constructor with name '%s' already registered", name))
	}
	slog.Debug("Registering constructor handler.", "name", name)
	r.constructors[name] = fn
}

// Constructor returns the named constructor handler.
func (r *Registry) Constructor(name string) (ConstructorFunc, bool) {
	fn, ok := r.constructors[name]
	return fn, ok
}
