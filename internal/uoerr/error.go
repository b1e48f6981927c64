// Package uoerr defines the single tagged error type that flows through the
// wire codec, the framing layer, the phase state machines and the world
// loop. It mirrors the Error enum of the reference ultimaonline-net crate
// (Message / Serialization / Deserialization / Io / Data) rather than a tree
// of distinct Go error types, so that callers at every layer can make the
// same handful of decisions (abort the connection, reject the login,
// collapse a poisoned lock) with a single type switch on Kind.
package uoerr

import "fmt"

// Kind discriminates the tagged error cases described in spec section 4.7.
type Kind int

const (
	// KindMessage is the generic fallback: closed channels, poisoned
	// locks, anything without a more specific home.
	KindMessage Kind = iota
	// KindSerialization marks an outbound value that violated a codec
	// invariant (e.g. a List longer than its length prefix can hold).
	KindSerialization
	// KindDeserialization marks an inbound byte stream that violated a
	// codec invariant (underread, overread, bad terminator).
	KindDeserialization
	// KindIO marks a transport failure.
	KindIO
	// KindData marks a well-formed packet that arrived in the wrong
	// phase, or with a mismatched id/extended id.
	KindData
)

func (k Kind) String() string {
	switch k {
	case KindMessage:
		return "message"
	case KindSerialization:
		return "serialization"
	case KindDeserialization:
		return "deserialization"
	case KindIO:
		return "io"
	case KindData:
		return "data"
	default:
		return "unknown"
	}
}

// Error is the tagged error value itself. It carries a Kind, a message and,
// for IO errors, the wrapped transport error (reachable through Unwrap);
// the layers above dispatch on the Kind alone.
type Error struct {
	Kind Kind
	Msg  string
	err  error // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.Msg, e.err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an *Error with the same Kind, so callers can
// write errors.Is(err, uoerr.Data("")) style checks if they only care about
// the kind and not the message.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

func newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Message builds a KindMessage error.
func Message(format string, args ...any) *Error { return newf(KindMessage, format, args...) }

// Serialization builds a KindSerialization error.
func Serialization(format string, args ...any) *Error { return newf(KindSerialization, format, args...) }

// Deserialization builds a KindDeserialization error.
func Deserialization(format string, args ...any) *Error {
	return newf(KindDeserialization, format, args...)
}

// Data builds a KindData error.
func Data(format string, args ...any) *Error { return newf(KindData, format, args...) }

// IO wraps an I/O failure from the underlying transport.
func IO(err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindIO, Msg: err.Error(), err: err}
}

// Aborts reports whether an error of this kind requires the connection to
// be aborted, per spec section 7: Io and Data errors always abort;
// Serialization during normal operation indicates a programming defect and
// also aborts the connection it occurred on.
func Aborts(err error) bool {
	e, ok := err.(*Error)
	if !ok {
		return err != nil
	}
	switch e.Kind {
	case KindIO, KindData, KindSerialization:
		return true
	default:
		return false
	}
}
