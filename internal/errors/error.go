package errors

import "fmt"

// Category represents the type of error.
type Category string

const (
	CategoryProtocol Category = "protocol"
	CategorySnapshot Category = "snapshot"
	CategoryInspect  Category = "inspect"
	CategoryConfig   Category = "config"
	CategoryCLI      Category = "cli"
)

// ToolError is a structured error with suggestions and documentation.
type ToolError struct {
	// Code is a unique error identifier (e.g., "E020").
	Code string

	// Category is the error type (protocol, snapshot, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example is a command showing the correct usage.
	Example string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *ToolError) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *ToolError) WithSuggestion(s string) *ToolError {
	e.Suggestion = s
	return e
}

// WithExample adds a usage example to the error.
func (e *ToolError) WithExample(ex string) *ToolError {
	e.Example = ex
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *ToolError) WithDetail(d string) *ToolError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *ToolError) Wrap(err error) *ToolError {
	e.Wrapped = err
	return e
}

// New creates a ToolError from a registered error code.
func New(code string) *ToolError {
	template, ok := registry[code]
	if !ok {
		return &ToolError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &ToolError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new ToolError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *ToolError {
	return &ToolError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a ToolError.
func FromError(err error, code string) *ToolError {
	if err == nil {
		return nil
	}
	if te, ok := err.(*ToolError); ok {
		return te
	}
	return New(code).Wrap(err)
}
