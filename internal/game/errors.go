package game

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrEmptySource  = errors.New("empty source")
	ErrStructural   = errors.New("structural error")
)

// StructuralError reports every problem found while validating a map.
// It matches ErrStructural with errors.Is.
type StructuralError struct {
	Problems error
}

func NewStructuralError(problems error) *StructuralError {
	return &StructuralError{Problems: problems}
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s: %s", ErrStructural, e.Problems)
}

func (e *StructuralError) Unwrap() []error {
	return []error{ErrStructural, e.Problems}
}
