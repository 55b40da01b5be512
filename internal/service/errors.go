// Package service holds the business operations behind the HTTP actions.
// Every operation returns (T, error); failures are *Error values whose Kind
// tells the transport layer how to report them.
package service

import (
	"errors"

	"go.uber.org/zap"

	"github.com/iliyamo/venue-booking/internal/validation"
)

// Kind classifies a service failure.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindForbidden
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindForbidden:
		return "forbidden"
	case KindPersistence:
		return "persistence"
	}
	return "unknown"
}

// Error is the typed failure returned by services.  Message is safe to show
// to clients; Err keeps the underlying cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the Kind of err.  Errors that did not come from a service
// count as persistence failures.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindPersistence
}

// IsNotFound reports whether err is a KindNotFound failure.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsConflict reports whether err is a KindConflict failure.
func IsConflict(err error) bool { return KindOf(err) == KindConflict }

// IsValidation reports whether err is a KindValidation failure.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

func invalid(msg string) error { return &Error{Kind: KindValidation, Message: msg} }
func notFound(msg string) error { return &Error{Kind: KindNotFound, Message: msg} }
func conflict(msg string) error { return &Error{Kind: KindConflict, Message: msg} }
func forbidden(msg string) error { return &Error{Kind: KindForbidden, Message: msg} }

// validate runs the struct rules of req and converts a failure into a
// KindValidation error carrying the rule's message.
func validate(v *validation.Validator, req any) error {
	err := v.Struct(req)
	if err == nil {
		return nil
	}
	var ve *validation.Error
	if errors.As(err, &ve) {
		return &Error{Kind: KindValidation, Message: ve.Message, Err: err}
	}
	return &Error{Kind: KindValidation, Message: "Invalid request", Err: err}
}

// failure logs an unexpected store error and hides it behind a generic
// message such as "Failed to create booking".
func failure(log *zap.Logger, action string, err error, fields ...zap.Field) error {
	log.Error("store operation failed", append(fields, zap.String("action", action), zap.Error(err))...)
	return &Error{Kind: KindPersistence, Message: "Failed to " + action, Err: err}
}
