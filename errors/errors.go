package errors

import (
	"errors"
	"fmt"
)

// Error is the typed failure raised by the REST client.
type Error struct {
	// Kind classifies the failure.
	Kind Kind
	// Status is the HTTP status that produced the error, 0 if none applies.
	Status int
	// Detail is additional human-readable context appended to the fixed
	// kind message.
	Detail string
	// Body is the response body attached as payload. It is the normalized
	// form when the response carried a structured content type, otherwise
	// the raw text.
	Body any
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Kind.message()
	if e.Status > 0 {
		msg = fmt.Sprintf("%s (HTTP %d): %s", e.Kind, e.Status, msg)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Kind, msg)
	}
	if e.Detail != "" {
		msg += "\ndetails: " + e.Detail
	}
	if e.Body != nil {
		msg += fmt.Sprintf("\nbody: %v", e.Body)
	}
	return "restkit: " + msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Cause }

// New creates an Error of the given kind with free-form detail.
func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Unauthorized creates the HTTP 401 error.
func Unauthorized(body any) *Error {
	return &Error{Kind: KindUnauthorized, Status: 401, Body: body}
}

// Forbidden creates the HTTP 403 error.
func Forbidden(body any) *Error {
	return &Error{Kind: KindForbidden, Status: 403, Body: body}
}

// NotFound creates the HTTP 404 error.
func NotFound(body any) *Error {
	return &Error{Kind: KindNotFound, Status: 404, Body: body}
}

// BadRequest creates the HTTP 400 error.
func BadRequest(body any) *Error {
	return &Error{Kind: KindBadRequest, Status: 400, Body: body}
}

// Conflict creates the HTTP 409 error.
func Conflict(body any) *Error {
	return &Error{Kind: KindConflict, Status: 409, Body: body}
}

// UnprocessableEntity creates the HTTP 422 error.
func UnprocessableEntity(body any) *Error {
	return &Error{Kind: KindUnprocessableEntity, Status: 422, Body: body}
}

// NotImplemented creates the HTTP 501 error carrying the extracted fault
// message.
func NotImplemented(body any) *Error {
	return &Error{Kind: KindNotImplemented, Status: 501, Body: body}
}

// ServerFault creates the HTTP 500 error carrying the extracted fault
// message.
func ServerFault(body any) *Error {
	return &Error{Kind: KindServerFault, Status: 500, Body: body}
}

// UnexpectedResponseCode creates the error for a status >= 400 with no
// dedicated mapping.
func UnexpectedResponseCode(status int) *Error {
	return &Error{Kind: KindUnexpectedResponseCode, Status: status, Detail: fmt.Sprintf("%d", status)}
}

// OverLimit creates the hard-quota variant of HTTP 413.
func OverLimit(body any) *Error {
	return &Error{Kind: KindOverLimit, Status: 413, Body: body}
}

// RateLimitExceeded creates the transient variant of HTTP 413.
func RateLimitExceeded(body any) *Error {
	return &Error{Kind: KindRateLimitExceeded, Status: 413, Body: body}
}

// InvalidContentType creates the error for an unrecognized content type on
// an error response, or an explicit HTTP 415.
func InvalidContentType(status int, body any) *Error {
	return &Error{Kind: KindInvalidContentType, Status: status, Body: body}
}

// InvalidSuccessCode creates the error for an observed success status that
// does not match the expectation.
func InvalidSuccessCode(expected []int, observed int) *Error {
	return &Error{
		Kind:   KindInvalidSuccessCode,
		Status: observed,
		Detail: fmt.Sprintf("unexpected http success status code %d, the expected status code is %v", observed, expected),
	}
}

// InvalidSuccessExpectation creates the programming-error signal for an
// expected status outside the RFC 7231/4918 success set.
func InvalidSuccessExpectation(expected int) *Error {
	return &Error{
		Kind:   KindInvalidSuccessExpectation,
		Detail: fmt.Sprintf("%d is not a defined success code", expected),
	}
}

// ResponseWithNonEmptyBody creates the protocol-shape violation for a body
// on a response that must not carry one.
func ResponseWithNonEmptyBody(status int) *Error {
	return &Error{Kind: KindResponseWithNonEmptyBody, Status: status}
}

// ResponseWithEntity creates the protocol-shape violation for a 205
// response carrying entity headers.
func ResponseWithEntity() *Error {
	return &Error{Kind: KindResponseWithEntity, Status: 205}
}

// InvalidResponseBody creates the error for an unparseable fault body or a
// body failing schema validation.
func InvalidResponseBody(detail string, body any) *Error {
	return &Error{Kind: KindInvalidResponseBody, Detail: detail, Body: body}
}

// InvalidResponseHeader creates the error for response headers failing
// schema validation.
func InvalidResponseHeader(detail string) *Error {
	return &Error{Kind: KindInvalidResponseHeader, Detail: detail}
}

// Timeout creates the error for deletion polling exceeding its budget.
func Timeout(detail string) *Error {
	return &Error{Kind: KindTimeout, Detail: detail}
}

// CapabilityNotImplemented creates the signal for a resource client missing
// a required capability.
func CapabilityNotImplemented(capability string) *Error {
	return &Error{Kind: KindCapabilityNotImplemented, Detail: capability}
}

// KindOf returns the Kind of err, or "" when err is not a client Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err is a client Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// IsUnauthorized reports an HTTP 401 error.
func IsUnauthorized(err error) bool { return IsKind(err, KindUnauthorized) }

// IsForbidden reports an HTTP 403 error.
func IsForbidden(err error) bool { return IsKind(err, KindForbidden) }

// IsNotFound reports an HTTP 404 error.
func IsNotFound(err error) bool { return IsKind(err, KindNotFound) }

// IsBadRequest reports an HTTP 400 error.
func IsBadRequest(err error) bool { return IsKind(err, KindBadRequest) }

// IsConflict reports an HTTP 409 error.
func IsConflict(err error) bool { return IsKind(err, KindConflict) }

// IsOverLimit reports the hard-quota variant of HTTP 413.
func IsOverLimit(err error) bool { return IsKind(err, KindOverLimit) }

// IsRateLimit reports the transient variant of HTTP 413.
func IsRateLimit(err error) bool { return IsKind(err, KindRateLimitExceeded) }

// IsServerFault reports an HTTP 500 error.
func IsServerFault(err error) bool { return IsKind(err, KindServerFault) }

// IsTimeout reports a polling timeout.
func IsTimeout(err error) bool { return IsKind(err, KindTimeout) }
