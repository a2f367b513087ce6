package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrInputType indicates an unrecognized input variant.
	ErrInputType = errors.New("invalid input type")

	// ErrRead indicates the backing store could not be read.
	ErrRead = errors.New("read failure")

	// ErrNoRoot indicates that no root RAML document was found in a fileset.
	ErrNoRoot = errors.New("no root document")

	// ErrAmbiguousRoot indicates that several root RAML documents were found in a fileset.
	ErrAmbiguousRoot = errors.New("ambiguous root document")

	// ErrUnresolvedReference indicates that a referenced file could not be supplied.
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrParse indicates the RAML text could not be parsed.
	ErrParse = errors.New("parse error")

	// ErrSchemaValidation indicates that a produced document failed the schema self-check.
	ErrSchemaValidation = errors.New("schema validation failed")
)

// InputError reports an input variant the importer does not understand.
type InputError struct {
	Kind string
}

// Error returns a human-readable error message.
func (e *InputError) Error() string {
	return fmt.Sprintf("input type: %s is not valid", e.Kind)
}

// Is reports whether target matches this error type.
func (e *InputError) Is(target error) bool {
	return target == ErrInputType
}

// ReadError reports a backing-store I/O failure.
type ReadError struct {
	Path  string
	Cause error
}

// Error returns a human-readable error message.
func (e *ReadError) Error() string {
	msg := "unable to read " + e.Path
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReadError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ReadError) Is(target error) bool {
	return target == ErrRead
}

// RootError reports a fileset without exactly one root document.
// Candidates is empty when no root was found.
type RootError struct {
	Candidates []string
}

// Error returns a human-readable error message.
func (e *RootError) Error() string {
	if len(e.Candidates) == 0 {
		return "Imported folder does not contain Root of the RAML Specs."
	}
	return fmt.Sprintf("Imported folder contains multiple Root of the RAML Specs: %s.", strings.Join(e.Candidates, ", "))
}

// Is reports whether target matches this error type.
func (e *RootError) Is(target error) bool {
	if len(e.Candidates) == 0 {
		return target == ErrNoRoot
	}
	return target == ErrAmbiguousRoot
}

// ReferenceError reports a referenced file that could not be resolved.
type ReferenceError struct {
	// Ref is the decoded reference that failed
	Ref string
	// Remote is true for references the resolver never fetches (http, https)
	Remote bool
	Cause  error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	var msg string
	if e.Remote {
		msg = "cannot fetch " + e.Ref
	} else {
		msg = "Unable to find file " + e.Ref + " in uploaded data"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ReferenceError) Is(target error) bool {
	return target == ErrUnresolvedReference
}

// ParseError reports a RAML syntax or semantic error.
type ParseError struct {
	Path    string
	Message string
	Cause   error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "parse error"
	}
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// SchemaValidationError reports a produced document that failed the schema self-check.
type SchemaValidationError struct {
	Schema   string
	Problems []string
}

// Error returns a human-readable error message.
func (e *SchemaValidationError) Error() string {
	msg := "generated " + e.Schema + " failed schema validation"
	if len(e.Problems) > 0 {
		msg += ": " + strings.Join(e.Problems, "; ")
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *SchemaValidationError) Is(target error) bool {
	return target == ErrSchemaValidation
}

// Reason renders an error as the user-facing reason of a failed Result.
func Reason(err error) string {
	if err == nil {
		return ""
	}

	var refErr *ReferenceError
	if errors.As(err, &refErr) && refErr.Remote {
		return "External references are not supported yet. " + err.Error()
	}

	return err.Error()
}
