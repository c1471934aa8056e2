package cpp

import "fmt"

// DuplicateIdentifierError reports two descriptors whose names sanitize to
// the same class name.
type DuplicateIdentifierError struct {
	Identifier string
	First      string
	Second     string
}

func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("shaders %q and %q both map to class %q", e.First, e.Second, e.Identifier)
}

// InvalidNameError reports a descriptor without a name.
type InvalidNameError struct {
	Index int
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("shader #%d: empty name", e.Index)
}
