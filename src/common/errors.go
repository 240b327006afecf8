package common

import (
	"fmt"
	"strings"
)

// Failure kinds the HTTP layer pattern-matches with errors.As. Handlers map
// them to 400/404/409/500; nothing here depends on HTTP.

type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Problems, "; "))
}

type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s [%d] not found", e.Resource, e.ID)
}

type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error on %s: %s", e.Op, e.Err.Error())
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
