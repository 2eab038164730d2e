// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrInvalidLegInput  = errors.New("invalid leg input")
	ErrQuoteUnavailable = errors.New("quote unavailable")
	ErrDataNotFound     = errors.New("data not found")
	ErrDatabaseError    = errors.New("database error")
	ErrConfigInvalid    = errors.New("invalid configuration")
)

// LegInputError reports a leg field that failed intake validation. It
// matches ErrInvalidLegInput through errors.Is so callers can treat all
// intake failures uniformly while still printing the offending field.
type LegInputError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *LegInputError) Error() string {
	return fmt.Sprintf("invalid leg input: %s (%v): %s", e.Field, e.Value, e.Reason)
}

func (e *LegInputError) Unwrap() error {
	return ErrInvalidLegInput
}

// NewLegInputError creates a new LegInputError.
func NewLegInputError(field string, value interface{}, reason string) *LegInputError {
	return &LegInputError{
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// QuoteError represents a failure while looking up a price from an
// external quote provider. It matches ErrQuoteUnavailable through
// errors.Is; the underlying transport or decode error stays reachable
// via Unwrap.
type QuoteError struct {
	Provider string
	Symbol   string
	Err      error
}

func (e *QuoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("quote error [%s] %s: %v", e.Provider, e.Symbol, e.Err)
	}
	return fmt.Sprintf("quote error [%s] %s: no price returned", e.Provider, e.Symbol)
}

func (e *QuoteError) Unwrap() error {
	return e.Err
}

func (e *QuoteError) Is(target error) bool {
	return target == ErrQuoteUnavailable
}

// NewQuoteError creates a new QuoteError.
func NewQuoteError(provider, symbol string, err error) *QuoteError {
	return &QuoteError{
		Provider: provider,
		Symbol:   symbol,
		Err:      err,
	}
}

// DatabaseError represents a failure inside the session store.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("database error [%s]: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("database error [%s]", e.Op)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

func (e *DatabaseError) Is(target error) bool {
	return target == ErrDatabaseError
}

// NewDatabaseError creates a new DatabaseError.
func NewDatabaseError(op string, err error) *DatabaseError {
	return &DatabaseError{
		Op:  op,
		Err: err,
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrConfigInvalid
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// IsInvalidLegInput reports whether err is an intake validation failure.
func IsInvalidLegInput(err error) bool {
	return errors.Is(err, ErrInvalidLegInput)
}

// IsQuoteUnavailable reports whether err came from a quote provider
// failure. Quote failures are never fatal: callers keep whatever price
// they already had.
func IsQuoteUnavailable(err error) bool {
	return errors.Is(err, ErrQuoteUnavailable)
}
