// Package errs defines the domain error taxonomy shared by all entity
// services. Services translate store-level failures into these kinds; the
// API layer maps them onto status codes without ever exposing store
// internals to callers.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// FieldError names a single violated field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError carries one entry per violated field, not just the first.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Reason))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a field violation and returns the error for chaining.
func (e *ValidationError) Add(field, reason string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
	return e
}

// HasViolations reports whether any field failed.
func (e *ValidationError) HasViolations() bool {
	return len(e.Fields) > 0
}

// ConflictError signals a unique-constraint violation. Fields lists the
// candidate business keys that can collide for the entity.
type ConflictError struct {
	Resource string
	Fields   []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists", strings.Join(e.Fields, " or "))
}

// NotFoundError signals that a referenced id did not resolve.
type NotFoundError struct {
	Resource string
	Ref      string
}

func (e *NotFoundError) Error() string {
	if e.Ref == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Ref)
}

// DependencyError wraps an unclassified store failure. The wrapped cause is
// kept for logs; callers only see the generic kind.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: dependency failure", e.Op)
}

func (e *DependencyError) Unwrap() error { return e.Err }

func Conflict(resource string, fields ...string) error {
	return &ConflictError{Resource: resource, Fields: fields}
}

func NotFound(resource, ref string) error {
	return &NotFoundError{Resource: resource, Ref: ref}
}

func Dependency(op string, err error) error {
	return &DependencyError{Op: op, Err: err}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

func IsDependency(err error) bool {
	var de *DependencyError
	return errors.As(err, &de)
}
