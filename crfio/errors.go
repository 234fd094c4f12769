package crfio

import "errors"

var (
	// ErrUnrecognizedDeclaration indicates a line's first field began
	// with "@" but was not "@weight"; the grammar defines no other
	// declaration, so this is a hard parse error.
	ErrUnrecognizedDeclaration = errors.New("crfio: unrecognized declaration")

	// ErrBadWeight indicates an "@weight" declaration's argument did not
	// parse as a float.
	ErrBadWeight = errors.New("crfio: malformed @weight declaration")
)
