package orgdoc

import "fmt"

// StructuralError reports a document-structure problem such as a block whose
// closing delimiter is missing. It is fatal for the affected document or
// block but carries enough position context for a batch caller to report it
// and move on.
type StructuralError struct {
	Doc  string
	Line int
	Msg  string
}

// Error implements the error interface.
func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Doc, e.Line, e.Msg)
}
