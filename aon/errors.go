package aon

import (
	"errors"
	"fmt"
)

var (
	// ErrInput is returned for unparsable source documents and for document
	// roots that are neither an object nor a list of objects.
	ErrInput = errors.New("aon: invalid input")

	// ErrEmptyInput is returned when there are no rows to encode.
	ErrEmptyInput = errors.New("aon: empty input")

	// ErrRootSchema is returned when the root schema is missing from the table.
	ErrRootSchema = errors.New("aon: root schema not found")

	// ErrNoSchemas is returned when an AON document declares no schemas.
	// It matches ErrRootSchema.
	ErrNoSchemas = fmt.Errorf("%w: no schemas declared", ErrRootSchema)

	// ErrRowMismatch matches every *MismatchError.
	ErrRowMismatch = errors.New("aon: data row size mismatch")
)

// MismatchError reports a data row whose top-level field count differs
// from the root schema.
type MismatchError struct {
	Row  int // 1-based data row number
	Want int
	Got  int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("aon: data row %d size mismatch: expected %d, got %d", e.Row, e.Want, e.Got)
}

// Is makes errors.Is(err, ErrRowMismatch) true.
func (e *MismatchError) Is(target error) bool {
	return target == ErrRowMismatch
}
