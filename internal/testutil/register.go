package testutil

import (
	"fmt"

	"github.com/gggion/org-transclusion-blocks/internal/linktype"
)

// NoOpModule satisfies the linktype.Module interface without registering
// anything. It's useful for tests that should fail before any link type is
// consulted but still need a non-default module list.
type NoOpModule struct{}

// Register does nothing.
func (m *NoOpModule) Register(r *linktype.Registry) {}

// EchoModule registers an "echo" link type whose constructor returns its
// single component verbatim, so tests can assert on exactly what reached
// construction.
type EchoModule struct{}

// Register registers the "echo" type directly, bypassing manifests.
func (m *EchoModule) Register(r *linktype.Registry) {
	r.Register("echo", []linktype.ComponentDecl{
		{Key: "value", Arg: "arg-value", Required: true, ExpandVars: true},
	}, func(components map[string]string) (string, error) {
		v, ok := components["value"]
		if !ok {
			return "", fmt.Errorf("value component is missing")
		}
		return v, nil
	})
}
