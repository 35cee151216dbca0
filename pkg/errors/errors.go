// Package errors provides custom error types for the rostersync system.
// These errors enable programmatic error checking across the fetch,
// reconcile and store layers while keeping the original cause available
// through errors.Unwrap.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Join is an alias for the standard library errors.Join.
var Join = errors.Join

// Common sentinel errors for the rostersync system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthenticated indicates that a store handle could not prove its identity
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrFetchFailed indicates that the armory could not deliver a document
	ErrFetchFailed = errors.New("fetch failed")

	// ErrStoreFailed indicates that a remote store operation failed
	ErrStoreFailed = errors.New("store operation failed")

	// ErrRateLimited indicates that the armory rejected a request for rate reasons
	ErrRateLimited = errors.New("rate limited")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
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

// ValidationError represents a violated structural precondition, such as a
// missing constructor argument. Field values rejected by record setters are
// never reported through this type.
type ValidationError struct {
	Field   string
	Value   interface{}
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
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// AuthenticationError represents a store handle that failed its identity check
type AuthenticationError struct {
	Backend string
	Message string
	Err     error
}

// Error implements the error interface
func (e *AuthenticationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication error for %s store: %s: %v", e.Backend, e.Message, e.Err)
	}
	return fmt.Sprintf("authentication error for %s store: %s", e.Backend, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrUnauthenticated
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(backend, message string, err error) *AuthenticationError {
	return &AuthenticationError{
		Backend: backend,
		Message: message,
		Err:     err,
	}
}

// FetchError represents a failed armory request, including responses that
// carried an error page instead of data.
type FetchError struct {
	Resource   string // "guild", "professions", "reputations", "activities"
	URL        string
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s from %s failed (status %d): %s", e.Resource, e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("fetch %s from %s failed: %s", e.Resource, e.URL, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *FetchError) Is(target error) bool {
	if target == ErrFetchFailed {
		return true
	}
	if e.StatusCode == 429 || e.StatusCode == 503 {
		return target == ErrRateLimited
	}
	return false
}

// NewFetchError creates a new FetchError
func NewFetchError(resource, url string, statusCode int, message string) *FetchError {
	return &FetchError{
		Resource:   resource,
		URL:        url,
		StatusCode: statusCode,
		Message:    message,
	}
}

// StoreError represents a failed operation against the remote tree store
type StoreError struct {
	Operation string // "read", "set", "update", "remove"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *StoreError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("store %s of %s failed: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("store %s failed: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *StoreError) Is(target error) bool {
	return target == ErrStoreFailed
}

// NewStoreError creates a new StoreError
func NewStoreError(operation, path string, err error) *StoreError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &StoreError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
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
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// SyncError represents a failed guild synchronization
type SyncError struct {
	Realm string
	Guild string
	Err   error
}

// Error implements the error interface
func (e *SyncError) Error() string {
	return fmt.Sprintf("sync error for guild %s on realm %s: %v", e.Guild, e.Realm, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *SyncError) Unwrap() error {
	return e.Err
}

// NewSyncError creates a new SyncError
func NewSyncError(realm, guild string, err error) *SyncError {
	return &SyncError{
		Realm: realm,
		Guild: guild,
		Err:   err,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "xml", "json", "yaml"
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
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
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

// IsUnauthenticated checks if an error is an authentication error
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}

// IsFetchError checks if an error came from the armory
func IsFetchError(err error) bool {
	return errors.Is(err, ErrFetchFailed)
}

// IsStoreError checks if an error came from the remote store
func IsStoreError(err error) bool {
	return errors.Is(err, ErrStoreFailed)
}

// IsRateLimited checks if an error is a rate limit error
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// IsPermanent reports whether retrying the failed operation can never help.
// Construction, authentication and configuration failures are permanent.
func IsPermanent(err error) bool {
	var cfgErr *ConfigError
	return IsValidationError(err) || IsUnauthenticated(err) || errors.As(err, &cfgErr)
}

// Helper wrapping functions for common patterns

// WrapStore wraps an error as a StoreError
func WrapStore(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewStoreError(operation, path, err)
}

// WrapFetch wraps a transport error as a FetchError
func WrapFetch(resource, url string, err error) error {
	if err == nil {
		return nil
	}
	return &FetchError{
		Resource: resource,
		URL:      url,
		Message:  err.Error(),
		Err:      err,
	}
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// As is an alias for the standard library errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is is an alias for the standard library errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
