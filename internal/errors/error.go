package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Category represents the type of error.
type Category string

const (
	CategoryRouting Category = "routing"
	CategoryHook    Category = "hook"
	CategoryRender  Category = "render"
	CategoryStartup Category = "startup"
	CategoryConfig  Category = "config"
	CategoryCLI     Category = "cli"
)

// Site points at the part of an application an error is about.
type Site struct {
	// Route is the canonical route involved, if any.
	Route string

	// Folders are page folders relative to the pages root.
	Folders []string

	// File is a source or config file.
	File string
}

func (s *Site) String() string {
	if s == nil {
		return ""
	}
	var parts []string
	if s.Route != "" {
		parts = append(parts, s.Route)
	}
	if len(s.Folders) > 0 {
		parts = append(parts, "("+strings.Join(s.Folders, ", ")+")")
	}
	if s.File != "" {
		parts = append(parts, s.File)
	}
	return strings.Join(parts, " ")
}

// Error is a coded error with a fix hint and a documentation link.
type Error struct {
	// Code is a unique error identifier (e.g., "E201").
	Code string

	// Category is the error type (routing, hook, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Site is where the problem is, if known.
	Site *Site

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}

// AtRoute records the route and page folders involved.
func (e *Error) AtRoute(route string, folders ...string) *Error {
	if e.Site == nil {
		e.Site = &Site{}
	}
	e.Site.Route = route
	e.Site.Folders = folders
	return e
}

// InFile records the file involved.
func (e *Error) InFile(path string) *Error {
	if e.Site == nil {
		e.Site = &Site{}
	}
	e.Site.File = path
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *Error) WithDetail(d string) *Error {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	return e
}

// New creates an Error from a registered error code.
func New(code string) *Error {
	template, ok := registry[code]
	if !ok {
		return &Error{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &Error{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new Error with a formatted message (no code).
func Newf(category Category, format string, args ...any) *Error {
	return &Error{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an Error.
// An *Error anywhere in err's chain is returned as is.
func FromError(err error, code string) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e
	}
	return New(code).Wrap(err)
}
