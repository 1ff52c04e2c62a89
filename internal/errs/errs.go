// Package errs defines the error categories surfaced by the service. Every
// category carries a machine-readable tag so the HTTP layer can map errors to
// status codes and clients can decide whether to retry, resubmit with an
// explicit action, or give up.
package errs

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	CategoryValidation       = "validation_error"
	CategoryConflict         = "conflict"
	CategoryNotFound         = "not_found"
	CategoryIndexUnavailable = "index_unavailable"
	CategoryCollaborator     = "collaborator_error"
	CategoryPersistence      = "persistence_error"
)

// ValidationError reports bad input: non-PDF upload, empty filename, a
// mismatched overwrite target, an empty document.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return e.Msg }
func (e *ValidationError) Category() string { return CategoryValidation }

func Validation(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ConflictError reports a duplicate filename without a resolved action, or a
// lost uniqueness race at commit time. It carries enough for the caller to
// resubmit with action "new" or "overwrite".
type ConflictError struct {
	ExistingID uuid.UUID
	Filename   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("document with filename %q already exists (id %s)", e.Filename, e.ExistingID)
}
func (e *ConflictError) Category() string { return CategoryConflict }

// NotFoundError reports an unknown document id.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}
func (e *NotFoundError) Category() string { return CategoryNotFound }

func NotFound(resource string, id uuid.UUID) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id.String()}
}

// IndexUnavailableError reports a registry row whose retrieval collection is
// missing or empty. Distinct from NotFoundError so callers can suggest a
// re-upload instead of "document doesn't exist".
type IndexUnavailableError struct {
	DocumentID uuid.UUID
}

func (e *IndexUnavailableError) Error() string {
	return fmt.Sprintf("retrieval index unavailable for document %s; re-upload to reprocess", e.DocumentID)
}
func (e *IndexUnavailableError) Category() string { return CategoryIndexUnavailable }

// CollaboratorError reports a failure of an external collaborator. Unreachable
// distinguishes connectivity/timeout failures from malformed or empty results.
type CollaboratorError struct {
	Collaborator string
	Unreachable  bool
	Err          error
}

func (e *CollaboratorError) Error() string {
	mode := "returned an invalid result"
	if e.Unreachable {
		mode = "unreachable"
	}
	return fmt.Sprintf("%s %s: %v", e.Collaborator, mode, e.Err)
}
func (e *CollaboratorError) Category() string { return CategoryCollaborator }
func (e *CollaboratorError) Unwrap() error    { return e.Err }

// PersistenceError reports a failed registry commit or index write. Ingestion
// code triggers full cleanup before surfacing one.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}
func (e *PersistenceError) Category() string { return CategoryPersistence }
func (e *PersistenceError) Unwrap() error    { return e.Err }

// Categorizer is implemented by every error type in this package.
type Categorizer interface {
	error
	Category() string
}
