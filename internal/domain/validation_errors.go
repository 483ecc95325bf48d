package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Validation error codes, one per constraint family.
const (
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"
	CodeUnknownValue  ErrorCode = "UNKNOWN_VALUE"
)

// ValidationError describes one invalid request field.
type ValidationError struct {
	Code    ErrorCode `json:"code"`
	Field   string    `json:"field"`
	Message string    `json:"message"`
	Value   string    `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates field errors. It implements error so a
// handler can hand the whole set to the central error handler.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, ve := range e {
		parts = append(parts, ve.Error())
	}
	return strings.Join(parts, "; ")
}

// NewMissingFieldError reports a required field that was absent.
func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Code: CodeMissingField, Field: field, Message: "is required"}
}

// NewInvalidFormatError reports a field whose shape is wrong.
func NewInvalidFormatError(field, value string) ValidationError {
	return ValidationError{Code: CodeInvalidFormat, Field: field, Message: "has an invalid format", Value: value}
}

// NewOutOfRangeError reports a numeric field outside its bounds.
func NewOutOfRangeError(field string, value, min, max int) ValidationError {
	return ValidationError{
		Code:    CodeOutOfRange,
		Field:   field,
		Message: fmt.Sprintf("must be between %d and %d", min, max),
		Value:   strconv.Itoa(value),
	}
}

// NewUnknownValueError reports a value outside a closed enum.
func NewUnknownValueError(field, value string) ValidationError {
	return ValidationError{Code: CodeUnknownValue, Field: field, Message: "is not a known value", Value: value}
}
