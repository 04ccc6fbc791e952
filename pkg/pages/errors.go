package pages

import (
	"fmt"
	"strings"
)

// BuildErrorType categorizes route table build errors.
type BuildErrorType string

const (
	// ErrorDuplicateRoute indicates two folders resolve to the same route.
	// Example: Dashboard/ and dashboard/ both resolve to /dashboard
	ErrorDuplicateRoute BuildErrorType = "DUPLICATE_ROUTE"

	// ErrorUnresolvedExport indicates a page folder has no export named
	// after the folder.
	ErrorUnresolvedExport BuildErrorType = "UNRESOLVED_EXPORT"

	// ErrorDuplicateNotFound indicates more than one not-found page.
	ErrorDuplicateNotFound BuildErrorType = "DUPLICATE_NOTFOUND"
)

// BuildError represents a single route table problem.
type BuildError struct {
	// Type is the error category
	Type BuildErrorType

	// Message is the human-readable error message
	Message string

	// Route is the route involved, if any
	Route string

	// Folders are the page folders involved
	Folders []string
}

func (e BuildError) Error() string {
	if len(e.Folders) > 0 {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, strings.Join(e.Folders, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// MultiError wraps every problem found during one build.
type MultiError struct {
	Errors []BuildError
}

func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no route table errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d route table errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Unwrap exposes each problem to errors.Is and errors.As.
func (e *MultiError) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, be := range e.Errors {
		errs[i] = be
	}
	return errs
}

// Has reports whether any problem is of type t.
func (e *MultiError) Has(t BuildErrorType) bool {
	for _, be := range e.Errors {
		if be.Type == t {
			return true
		}
	}
	return false
}

func folderName(segments []string) string {
	return strings.Join(segments, "/")
}
