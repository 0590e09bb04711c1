package schema

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRoot   = errors.New("schema root must be a struct or an array")
	ErrInvalidSchema = errors.New("invalid canonical schema")
)

// InvalidRootError is returned when a document or schema node that is not a
// container reaches a boundary that requires one.
type InvalidRootError struct {
	Shape string
}

func (e *InvalidRootError) Error() string {
	return fmt.Sprintf("invalid root %s: %s", e.Shape, ErrInvalidRoot)
}

func (e *InvalidRootError) Is(target error) bool {
	return target == ErrInvalidRoot
}
