// internal/fault/fault.go
//
// Typed error taxonomy shared by the store, the state machine, and the
// HTTP layer.
//
// Context
// -------
// Every failure that can cross a package boundary is classified into one
// of five kinds.  Handlers translate the kind into an HTTP status; the
// store and services attach a field name or a conflicting-resource
// reference so callers can produce useful payloads without parsing error
// strings.
//
//	Validation    – a required or malformed field (400).
//	Conflict      – slug/email already taken, or the one-business rule (409).
//	Authorization – caller is not the owner and not an admin (403).
//	NotFound      – unknown id or slug (404).
//	Internal      – an invariant reached the database anyway (500).
//
// Notes
// -----
// • Analytics failures are never wrapped in a fault; the recorder absorbs
//   them (see internal/analytics).
// • Oxford commas, two spaces after periods.
package fault

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind discriminates the five failure classes.
type Kind int

const (
	KindValidation Kind = iota
	KindConflict
	KindAuthorization
	KindNotFound
	KindInternal
)

// Error carries a kind, a caller-facing message, and optional references.
type Error struct {
	Kind    Kind
	Message string
	Field   string // set for Validation errors
	Ref     string // conflicting resource (slug, email, or business id)
	Err     error  // wrapped cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Constructors.  Each returns *Error so errors.As works uniformly.

// Validationf flags a missing or malformed field.
func Validationf(field, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: fmt.Sprintf(format, args...)}
}

// Conflictf flags a uniqueness or cardinality violation.  ref names the
// resource already holding the contested value.
func Conflictf(ref, format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Ref: ref, Message: fmt.Sprintf(format, args...)}
}

// Authorizationf flags a caller acting outside its role.
func Authorizationf(format string, args ...any) *Error {
	return &Error{Kind: KindAuthorization, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf flags an unknown id or slug.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Internalf wraps a defect.  The cause is preserved for logging; callers
// surface only a generic message.
func Internalf(err error, format string, args ...any) *Error {
	return &Error{Kind: KindInternal, Err: err, Message: fmt.Sprintf(format, args...)}
}

// Is/As helpers.

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, k Kind) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Kind == k
}

func IsConflict(err error) bool { return IsKind(err, KindConflict) }
func IsNotFound(err error) bool { return IsKind(err, KindNotFound) }

// HTTPStatus maps an error to the status code the thin HTTP layer should
// emit.  Unclassified errors are treated as internal.
func HTTPStatus(err error) int {
	var fe *Error
	if !errors.As(err, &fe) {
		return http.StatusInternalServerError
	}
	switch fe.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
