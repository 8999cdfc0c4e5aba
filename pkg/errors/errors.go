// Package errors provides the typed error taxonomy used across the roster engine.
package errors

import (
	"errors"
	"fmt"
)

// Code classifies an AppError.
type Code string

const (
	CodeUnknown Code = "UNKNOWN"
	CodeInternal Code = "INTERNAL_ERROR"

	// CodeConfig covers malformed or out-of-range engine configuration, caught before a solve starts.
	CodeConfig Code = "CONFIG_ERROR"
	// CodeDomainValidation covers structurally invalid input data (hospitals, workers, demand rules, ...).
	CodeDomainValidation Code = "DOMAIN_VALIDATION_ERROR"
	// CodeInfeasibleModel means CP-SAT proved the model has no feasible assignment.
	CodeInfeasibleModel Code = "INFEASIBLE_MODEL"
	// CodeSolverFailure covers a solver-level failure that isn't a proven infeasibility (timeout, internal error).
	CodeSolverFailure Code = "SOLVER_FAILURE"
)

// AppError is the engine's error type; every error that crosses a package boundary is one of these.
type AppError struct {
	Code    Code                   `json:"code"`
	Message string                 `json:"message"`
	Details string                 `json:"details,omitempty"`
	Cause   error                  `json:"-"`
	Fields  map[string]interface{} `json:"fields,omitempty"`
}

// Error implements error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the wrapped cause, if any.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails attaches a human-readable detail string.
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// WithCause attaches the underlying error.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithField attaches a structured field, e.g. the binding points of an infeasible model.
func (e *AppError) WithField(key string, value interface{}) *AppError {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// New creates a new AppError.
func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an existing error with a code and message.
func Wrap(err error, code Code, message string) *AppError {
	return &AppError{Code: code, Message: message, Cause: err}
}

// Is reports whether err is an AppError with the given code.
func Is(err error, code Code) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the Code from err, or CodeUnknown if err isn't an AppError.
func GetCode(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// Config creates a CodeConfig error.
func Config(message string) *AppError {
	return New(CodeConfig, message)
}

// DomainValidation creates a CodeDomainValidation error.
func DomainValidation(message string) *AppError {
	return New(CodeDomainValidation, message)
}

// InfeasibleModel creates a CodeInfeasibleModel error carrying binding-point diagnostics.
func InfeasibleModel(message string, bindingPoints interface{}) *AppError {
	return New(CodeInfeasibleModel, message).WithField("binding_points", bindingPoints)
}

// SolverFailure creates a CodeSolverFailure error.
func SolverFailure(message string) *AppError {
	return New(CodeSolverFailure, message)
}

// ValidationErrors accumulates independent field-level validation failures.
type ValidationErrors struct {
	Errors []ValidationError
}

// ValidationError is a single field-level failure.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements error.
func (ve *ValidationErrors) Error() string {
	if len(ve.Errors) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s - %s", ve.Errors[0].Field, ve.Errors[0].Message)
}

// Add records a field-level failure.
func (ve *ValidationErrors) Add(field, message string) {
	ve.Errors = append(ve.Errors, ValidationError{Field: field, Message: message})
}

// HasErrors reports whether any failure has been recorded.
func (ve *ValidationErrors) HasErrors() bool {
	return len(ve.Errors) > 0
}

// ToAppError converts the accumulated failures into a single CodeDomainValidation AppError.
func (ve *ValidationErrors) ToAppError() *AppError {
	err := New(CodeDomainValidation, "domain validation failed")
	err.Fields = make(map[string]interface{})
	for _, e := range ve.Errors {
		err.Fields[e.Field] = e.Message
	}
	return err
}
