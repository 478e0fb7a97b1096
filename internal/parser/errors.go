// Package parser owns one parse operation end to end: it validates the input
// file, drives the structuring pipeline over the extraction backends, and
// writes the persisted JSON representation. Failures carry an explicit kind
// so callers can pattern-match instead of string-matching; the parser itself
// performs no recovery and never produces partial results.
package parser

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a parse failure.
type ErrorKind string

const (
	// KindInputNotFound means the input file path does not exist or is not
	// a usable PDF. Raised at session construction, before any processing.
	KindInputNotFound ErrorKind = "input_not_found"

	// KindBackendFailure means the primary or fallback extraction backend
	// failed during a page or document operation.
	KindBackendFailure ErrorKind = "backend_failure"

	// KindSerializationFailure means writing the output representation
	// failed.
	KindSerializationFailure ErrorKind = "serialization_failure"
)

// ParseError wraps an underlying failure with its kind and the operation
// that produced it.
type ParseError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// kindOf extracts the kind from an error chain, or "" when no ParseError is
// present.
func kindOf(err error) ErrorKind {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// IsInputNotFound reports whether err is an input-not-found failure.
func IsInputNotFound(err error) bool {
	return kindOf(err) == KindInputNotFound
}

// IsBackendFailure reports whether err is an extraction backend failure.
func IsBackendFailure(err error) bool {
	return kindOf(err) == KindBackendFailure
}

// IsSerializationFailure reports whether err is an output writing failure.
func IsSerializationFailure(err error) bool {
	return kindOf(err) == KindSerializationFailure
}
