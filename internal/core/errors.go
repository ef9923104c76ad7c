package core

import (
	"errors"
	"fmt"
)

// Error codes reported to the user (and to scripts reading --json output).
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNoAuth     = "NO_AUTH"
	CodeNotFound   = "NOT_FOUND"
	CodeAPI        = "API_ERROR"
	CodeCanceled   = "CANCELED"
	CodeUnexpected = "UNEXPECTED_ERROR"
)

// CLIError is implemented by every error kind the command boundary knows how to render.
type CLIError interface {
	error
	Code() string
	Details() any
}

// ValidationError reports malformed user input. It is always raised before any network call.
type ValidationError struct {
	Message string
	// Value is the rejected input, when there was one.
	Value string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (got %q)", e.Message, e.Value)
}

func (e *ValidationError) Code() string { return CodeValidation }
func (e *ValidationError) Details() any { return nil }

// NoAuthError means neither the environment nor the config file supplied an API key.
type NoAuthError struct{}

func (e *NoAuthError) Error() string {
	return "No API key configured. Run `calcom auth set --api-key <key>` or set CALCOM_API_KEY in your environment."
}

func (e *NoAuthError) Code() string { return CodeNoAuth }
func (e *NoAuthError) Details() any { return nil }

// NotFoundError means a referenced remote resource (schedule, event type) does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }
func (e *NotFoundError) Code() string  { return CodeNotFound }
func (e *NotFoundError) Details() any  { return nil }

// APIError is a non-success HTTP response from the remote service.
type APIError struct {
	Status     int
	StatusText string
	Message    string
	// Body is the parsed JSON body, or the raw text when it was not JSON.
	Body any
}

func (e *APIError) Error() string { return e.Message }
func (e *APIError) Code() string  { return CodeAPI }

func (e *APIError) Details() any {
	return map[string]any{
		"status":     e.Status,
		"statusText": e.StatusText,
		"body":       e.Body,
	}
}

// CanceledError is returned when the user declines the confirmation prompt.
type CanceledError struct{}

func (e *CanceledError) Error() string { return "Operation canceled." }
func (e *CanceledError) Code() string  { return CodeCanceled }
func (e *CanceledError) Details() any  { return nil }

// UnexpectedError wraps anything else, transport failures included.
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string {
	if e.Err == nil {
		return "Unknown error"
	}
	return e.Err.Error()
}

func (e *UnexpectedError) Unwrap() error { return e.Err }
func (e *UnexpectedError) Code() string  { return CodeUnexpected }
func (e *UnexpectedError) Details() any  { return nil }

// Classify returns the CLIError carried by err (searching the wrap chain),
// or wraps err in an UnexpectedError.
func Classify(err error) CLIError {
	if err == nil {
		return nil
	}
	var cliErr CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}
	return &UnexpectedError{Err: err}
}
