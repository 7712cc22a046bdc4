package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryRelation Category = "relation"
	CategoryGraph    Category = "graph"
	CategoryConfig   Category = "config"
	CategoryRequest  Category = "request"
)

// GraphError is a structured error with a code, an explanation and a hint.
type GraphError struct {
	// Code is a unique error identifier (e.g., "G001").
	Code string

	// Category is the error type (relation, graph, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of this occurrence.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *GraphError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a *GraphError with the same code.
func (e *GraphError) Is(target error) bool {
	t, ok := target.(*GraphError)
	if !ok || t.Code == "" {
		return false
	}
	return t.Code == e.Code
}

// WithSuggestion adds a fix suggestion to the error.
func (e *GraphError) WithSuggestion(s string) *GraphError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *GraphError) WithDetail(d string) *GraphError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *GraphError) Wrap(err error) *GraphError {
	e.Wrapped = err
	return e
}

// New creates a GraphError from a registered error code.
func New(code string) *GraphError {
	template, ok := registry[code]
	if !ok {
		return &GraphError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &GraphError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new GraphError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *GraphError {
	return &GraphError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a GraphError.
func FromError(err error, code string) *GraphError {
	if err == nil {
		return nil
	}
	if ge, ok := err.(*GraphError); ok {
		return ge
	}
	return New(code).Wrap(err)
}

// CodeOf returns the code of the first *GraphError in err's chain, or ""
// if there is none.
func CodeOf(err error) string {
	for err != nil {
		if ge, ok := err.(*GraphError); ok {
			return ge.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}
