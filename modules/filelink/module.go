// Package filelink provides the built-in `file` link type: references into
// local files, optionally narrowed to a line or a search string.
package filelink

import (
	"fmt"
	"strings"

	"github.com/gggion/org-transclusion-blocks/internal/linktype"
)

// Module implements the linktype.Module interface for this package.
type Module struct{}

// CheckPathSyntax rejects raw path values that can never become a valid
// path, before variable expansion has run.
func CheckPathSyntax(value, arg, typeID string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("path is empty")
	}
	if strings.ContainsAny(value, "\n\r") {
		return fmt.Errorf("path contains a line break")
	}
	return nil
}

// CheckPathSemantic runs after expansion, when the value is final. A path
// still carrying a variable marker here means a binding was missing.
func CheckPathSemantic(value, arg, typeID string) error {
	if err := CheckPathSyntax(value, arg, typeID); err != nil {
		return err
	}
	if strings.Contains(value, "$") {
		return fmt.Errorf("path %q still contains an unexpanded variable", value)
	}
	return nil
}

// CheckLineNumber accepts a bare positive integer.
func CheckLineNumber(value, arg, typeID string) error {
	for _, r := range value {
		if r < '0' || r > '9' {
			return fmt.Errorf("line must be a positive integer, got %q", value)
		}
	}
	if value == "" || strings.TrimLeft(value, "0") == "" {
		return fmt.Errorf("line must be a positive integer, got %q", value)
	}
	return nil
}

// BuildFileLink assembles the reference from the extracted components. The
// line and search components are mutually exclusive by manifest relation,
// so at most one search option is ever appended.
func BuildFileLink(components map[string]string) (string, error) {
	path, ok := components["path"]
	if !ok {
		return "", fmt.Errorf("path component is missing")
	}
	ref := "file:" + path
	if line, ok := components["line"]; ok {
		ref += "::" + line
	} else if search, ok := components["search"]; ok {
		ref += "::" + search
	}
	return ref, nil
}

// Register registers the handlers with the registry under the names the
// manifest binds to.
func (m *Module) Register(r *linktype.Registry) {
	r.RegisterValidator("CheckPathSyntax", CheckPathSyntax)
	r.RegisterValidator("CheckPathSemantic", CheckPathSemantic)
	r.RegisterValidator("CheckLineNumber", CheckLineNumber)
	r.RegisterConstructor("BuildFileLink", BuildFileLink)
}
