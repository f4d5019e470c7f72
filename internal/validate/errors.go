// errors.go defines sentinel errors for validation failures.
//
// Separated to centralise error definitions. These errors are used with
// errors.Is() for type-safe error checking. Each error represents a
// distinct validation failure category.

package validate

import "errors"

var (
	ErrInvalidRepoURI  = errors.New("invalid repository uri")
	ErrInvalidPath     = errors.New("invalid path")
	ErrInvalidRevision = errors.New("invalid revision")
)
