// Package httplink provides the built-in `http` link type for remote
// content fetched over HTTP(S).
package httplink

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gggion/org-transclusion-blocks/internal/linktype"
)

// Module implements the linktype.Module interface for this package.
type Module struct{}

// CheckURLSyntax validates the raw URL shape before expansion. Values still
// carrying variable markers are waved through; the semantic check sees the
// final string.
func CheckURLSyntax(value, arg, typeID string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("url is empty")
	}
	if strings.Contains(value, "$") {
		return nil
	}
	return checkParsedURL(value)
}

// CheckURLSemantic validates the fully expanded URL.
func CheckURLSemantic(value, arg, typeID string) error {
	if strings.Contains(value, "$") {
		return fmt.Errorf("url %q still contains an unexpanded variable", value)
	}
	return checkParsedURL(value)
}

func checkParsedURL(value string) error {
	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("url does not parse: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("url has no host")
	}
	return nil
}

// BuildHTTPLink passes the URL component through verbatim; the URL already
// carries its own scheme.
func BuildHTTPLink(components map[string]string) (string, error) {
	u, ok := components["url"]
	if !ok {
		return "", fmt.Errorf("url component is missing")
	}
	return u, nil
}

// Register registers the handlers with the registry under the names the
// manifest binds to.
func (m *Module) Register(r *linktype.Registry) {
	r.RegisterValidator("CheckURLSyntax", CheckURLSyntax)
	r.RegisterValidator("CheckURLSemantic", CheckURLSemantic)
	r.RegisterConstructor("BuildHTTPLink", BuildHTTPLink)
}
