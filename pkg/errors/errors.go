// Package errors provides custom error types for the fmu-settings API.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the fmu-settings API
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownRevision indicates that a cache revision does not exist
	ErrUnknownRevision = errors.New("unknown revision")

	// ErrIdentityConflict indicates duplicate identity keys within one
	// side of a list comparison
	ErrIdentityConflict = errors.New("identity conflict")

	// ErrSessionExpired indicates that a session token has expired
	ErrSessionExpired = errors.New("session expired")

	// ErrSessionNotFound indicates that no session exists for a token
	ErrSessionNotFound = errors.New("session not found")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// IdentityConflictError reports duplicate identity keys on one side of
// a list comparison. The comparison that produced it returns no partial
// result: silently dropping or overwriting items would misstate what a
// restore would change.
type IdentityConflictError struct {
	FieldPath string // field path of the list being reconciled
	Key       any    // the duplicated identity key
	Side      string // "before" or "after"
}

// Error implements the error interface
func (e *IdentityConflictError) Error() string {
	return fmt.Sprintf("duplicate identity key %v in %s list at %s", e.Key, e.Side, e.FieldPath)
}

// Is implements errors.Is support
func (e *IdentityConflictError) Is(target error) bool {
	return target == ErrIdentityConflict
}

// NewIdentityConflictError creates a new IdentityConflictError
func NewIdentityConflictError(fieldPath string, key any, side string) *IdentityConflictError {
	return &IdentityConflictError{FieldPath: fieldPath, Key: key, Side: side}
}

// UnknownRevisionError represents a request for a cache revision that
// does not exist for a resource
type UnknownRevisionError struct {
	Resource   string
	RevisionID string
}

// Error implements the error interface
func (e *UnknownRevisionError) Error() string {
	return fmt.Sprintf("revision %s of %s does not exist", e.RevisionID, e.Resource)
}

// Is implements errors.Is support
func (e *UnknownRevisionError) Is(target error) bool {
	return target == ErrUnknownRevision || target == ErrNotFound
}

// NewUnknownRevisionError creates a new UnknownRevisionError
func NewUnknownRevisionError(resource, revisionID string) *UnknownRevisionError {
	return &UnknownRevisionError{Resource: resource, RevisionID: revisionID}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "delete"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("IO error during %s: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsIdentityConflict checks if an error is an identity conflict
func IsIdentityConflict(err error) bool {
	return errors.Is(err, ErrIdentityConflict)
}

// IsUnknownRevision checks if an error is an unknown revision error
func IsUnknownRevision(err error) bool {
	return errors.Is(err, ErrUnknownRevision)
}

// IsSessionExpired checks if an error is a session expiry error
func IsSessionExpired(err error) bool {
	return errors.Is(err, ErrSessionExpired)
}
