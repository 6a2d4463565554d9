// Domain errors represent business-level failures, NOT HTTP errors.
// They are infrastructure-agnostic and can be mapped to HTTP/gRPC/etc by adapters.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates one or more request fields failed validation.
	ErrValidation = errors.New("validation failed")

	// ErrUnavailable indicates a required dependency is unavailable.
	ErrUnavailable = errors.New("unavailable")

	// ErrStorage indicates the persistence write failed after a quote was
	// fully computed.
	ErrStorage = errors.New("storage failure")

	// ErrInconclusive indicates the external name-prediction lookup returned
	// no usable gender label. Callers substitute the fixed default.
	ErrInconclusive = errors.New("inconclusive gender prediction")
)

// NotFoundError provides context for not found errors.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
	}

	return e.Entity + " not found"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is the complete report of a failed validation. It is an
// accumulator: every rule is checked and every violation collected, so the
// caller always receives the full picture in one response.
type ValidationErrors struct {
	Fields []FieldError
}

func (e *ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Error())
	}

	return "validation failed: " + strings.Join(msgs, "; ")
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationErrors) Unwrap() error {
	return ErrValidation
}

// Details returns the field errors as a field-to-message map for API
// responses.
func (e *ValidationErrors) Details() map[string]string {
	details := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		details[f.Field] = f.Message
	}

	return details
}

// NewValidationErrors creates a validation error from collected field errors.
func NewValidationErrors(fields []FieldError) error {
	return &ValidationErrors{Fields: fields}
}

// UnavailableError provides context for unavailable errors.
type UnavailableError struct {
	Service string
	Reason  string
}

func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("service %q unavailable: %s", e.Service, e.Reason)
	}

	return fmt.Sprintf("service %q unavailable", e.Service)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

// NewUnavailableError creates an unavailable error with context.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// StorageError wraps a persistence failure. It retains the fully computed
// (but unpersisted) quote so the caller can retry safely with the same
// input: the computation is idempotent, only ID and CreatedAt are
// store-assigned.
type StorageError struct {
	Op    string
	Quote *Quote
	Err   error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *StorageError) Unwrap() error {
	return ErrStorage
}

// NewStorageError creates a storage error carrying the computed quote.
func NewStorageError(op string, quote *Quote, err error) error {
	return &StorageError{Op: op, Quote: quote, Err: err}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsUnavailable checks if an error is an unavailable error.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// IsStorage checks if an error is a storage error.
func IsStorage(err error) bool {
	return errors.Is(err, ErrStorage)
}
