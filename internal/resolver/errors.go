package resolver

import (
	"fmt"
	"strings"
)

// UserInputError reports a problem with what the user wrote: a malformed
// range string, conflicting or missing components, a duplicated directive.
// It aborts the current operation only and is never retried.
type UserInputError struct {
	Arg    string
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *UserInputError) Error() string {
	if e.Arg != "" {
		return fmt.Sprintf("argument %q: %s", e.Arg, e.Reason)
	}
	return e.Reason
}

// Unwrap exposes the underlying cause for errors.As chains.
func (e *UserInputError) Unwrap() error {
	return e.Err
}

// ValidationError is raised by a registered component validator, pre- or
// post-expansion. It carries the offending argument, the link type, and the
// validator's explanation plus any suggested fixes.
type ValidationError struct {
	TypeID      string
	Arg         string
	Explanation string
	Fixes       []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("link type %q, argument %q: %s", e.TypeID, e.Arg, e.Explanation)
	if len(e.Fixes) > 0 {
		msg += " (try: " + strings.Join(e.Fixes, "; ") + ")"
	}
	return msg
}
