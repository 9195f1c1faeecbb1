package errors

import (
	stderrors "errors"
	"fmt"

	"lifestat/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context. Domain sentinels keep their
// code through the wrap.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    GetCode(err),
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetCode returns the code of the outermost AppError, or the code mapped from
// a wrapped domain sentinel, or INTERNAL_ERROR.
func GetCode(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return codeForDomain(err)
}

// Predefined error codes
const (
	CodeInsufficientData = "INSUFFICIENT_DATA"
	CodeMalformedInput   = "MALFORMED_INPUT"
	CodeDegenerate       = "DEGENERATE_STATISTIC"
	CodeNonConvergence   = "NON_CONVERGENCE"
	CodeConfigInvalid    = "CONFIG_INVALID"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeNotFound         = "NOT_FOUND"
	CodeInternalError    = "INTERNAL_ERROR"
)

// FromDomain returns err as an AppError, coding domain sentinels.
func FromDomain(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return &AppError{Code: codeForDomain(err), Message: "analysis failed", Cause: err}
}

func codeForDomain(err error) string {
	switch {
	case stderrors.Is(err, core.ErrInsufficientData):
		return CodeInsufficientData
	case stderrors.Is(err, core.ErrMalformedInput):
		return CodeMalformedInput
	case stderrors.Is(err, core.ErrDegenerateStatistic):
		return CodeDegenerate
	case stderrors.Is(err, core.ErrNonConvergence):
		return CodeNonConvergence
	case stderrors.Is(err, core.ErrUnknownMethod), stderrors.Is(err, core.ErrNotFitted):
		return CodeNotFound
	}
	return CodeInternalError
}

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}
