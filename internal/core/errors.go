package core

import (
	"fmt"
	"strings"
)

// ValidationError reports schema violations for a candidate payload. The
// joined message is surfaced verbatim to the caller.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, ", ")
}

// ConflictError reports a duplicate category name on create or update.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NotFoundError reports a category reference that could not be resolved.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// ReferenceError blocks a category delete while transactions reference it.
type ReferenceError struct {
	Count int
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("Cannot delete category: it is used in %d transaction(s)", e.Count)
}
