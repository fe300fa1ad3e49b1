// Package langerr provides the located error type shared by every stage of
// the compilation pipeline (lexer, normalizer, macro expander, parser,
// compiler). Errors built with At or Atf carry a location.Location in the
// source text; errors built with New, Newf, or UnexpectedEndOfDocument
// carry none.
package langerr

import (
	"fmt"

	"github.com/anreg/core/location"
)

// Kind distinguishes the three error shapes the pipeline can produce.
type Kind uint8

const (
	// KindMessage is a plain diagnostic with no location attached.
	KindMessage Kind = iota
	// KindMessageWithLocation pins a diagnostic to a source range or point.
	KindMessageWithLocation
	// KindUnexpectedEndOfDocument marks a distinguished "ran out of input"
	// failure: an unterminated literal, comment, or define(...) form.
	KindUnexpectedEndOfDocument
)

// Error is the sum type every pipeline stage returns on failure.
type Error struct {
	Kind     Kind
	Message  string
	Location location.Location // zero value when Kind == KindMessage
}

// New builds a plain, unlocated error.
func New(message string) *Error {
	return &Error{Kind: KindMessage, Message: message}
}

// Newf builds a plain, unlocated error with formatting.
func Newf(format string, args ...any) *Error {
	return New(fmt.Sprintf(format, args...))
}

// At builds an error pinned to a location.
func At(loc location.Location, message string) *Error {
	return &Error{Kind: KindMessageWithLocation, Message: message, Location: loc}
}

// Atf builds a located error with formatting.
func Atf(loc location.Location, format string, args ...any) *Error {
	return At(loc, fmt.Sprintf(format, args...))
}

// UnexpectedEndOfDocument builds the distinguished end-of-input error.
func UnexpectedEndOfDocument(message string) *Error {
	return &Error{Kind: KindUnexpectedEndOfDocument, Message: message}
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindMessageWithLocation:
		return fmt.Sprintf("%s (at %s)", e.Message, e.Location)
	case KindUnexpectedEndOfDocument:
		return fmt.Sprintf("unexpected end of document: %s", e.Message)
	default:
		return e.Message
	}
}

// HasLocation reports whether the error carries a source location.
func (e *Error) HasLocation() bool {
	return e.Kind == KindMessageWithLocation
}
