// Package idlink provides the built-in `id` link type: references to org
// headlines by their ID property.
package idlink

import (
	"fmt"
	"strings"

	"github.com/gggion/org-transclusion-blocks/internal/linktype"
)

// Module implements the linktype.Module interface for this package.
type Module struct{}

// CheckID accepts any non-empty token without whitespace. IDs are usually
// UUIDs but org does not require that, so neither do we.
func CheckID(value, arg, typeID string) error {
	if value == "" {
		return fmt.Errorf("id is empty")
	}
	if strings.ContainsAny(value, " \t\n") {
		return fmt.Errorf("id %q contains whitespace", value)
	}
	return nil
}

// BuildIDLink prefixes the id component with its scheme.
func BuildIDLink(components map[string]string) (string, error) {
	id, ok := components["id"]
	if !ok {
		return "", fmt.Errorf("id component is missing")
	}
	return "id:" + id, nil
}

// Register registers the handlers with the registry under the names the
// manifest binds to.
func (m *Module) Register(r *linktype.Registry) {
	r.RegisterValidator("CheckID", CheckID)
	r.RegisterConstructor("BuildIDLink", BuildIDLink)
}
