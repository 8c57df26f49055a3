// Package linktype provides the central registry for pluggable link types.
//
// A link type declares an ordered set of named components, each backed by a
// distinct block argument, and a constructor that assembles the validated
// component values into one raw reference string. Definitions may come from
// HCL manifests or be registered programmatically; the Go functions they
// reference (validators and constructors) are registered by string name so
// manifests can bind to compiled code.
//
// The registry is an explicit instance handed around by reference, never
// process-global, so tests can isolate registrations from each other.
package linktype
