// Package seb defines the error type shared by the boundary layers of the
// library: the format codec, the lookup clients and the file handling.
package seb

import "strings"

// ErrorKind classifies an Error.
type ErrorKind int

const (
	// KindIO is an error associated with an underlying IO failure.
	KindIO ErrorKind = iota
	// KindDeserialize is an error caused by a parsing failure.
	KindDeserialize
	// KindNoValue is an error for an operation that found nothing.
	KindNoValue
)

// String returns the display prefix of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "IO error"
	case KindDeserialize:
		return "Deserialize error"
	case KindNoValue:
		return "No value error"
	default:
		return "error"
	}
}

// Error is a classified error with an optional message and an optional
// wrapped cause. An Error should carry a message when it does not wrap an
// existing error.
//
// Incomplete entries are not errors of this type; they travel through the
// ast.BiblioResolver channel so the caller can supply missing fields and
// retry.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// New creates an Error from a kind and a message describing it.
func New(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an Error that has an existing error as its cause.
func Wrap(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// WrapWith creates an Error with both a cause and a new message.
func WrapWith(kind ErrorKind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(": ")

	if e.Message != "" {
		b.WriteString(e.Message)
		if e.Err != nil {
			b.WriteString("\n")
		}
	}

	if e.Err != nil {
		b.WriteString("caused by ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}
