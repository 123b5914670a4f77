package errors

// Kind is a machine-readable classification of a client failure.
type Kind string

const (
	// KindInvalidSuccessCode indicates the observed success status did not
	// match the expected one.
	KindInvalidSuccessCode Kind = "invalid_http_success_code"
	// KindInvalidSuccessExpectation indicates a caller declared an expected
	// status outside the RFC 7231/4918 success set. This is a programming
	// error in the calling test, not a backend failure.
	KindInvalidSuccessExpectation Kind = "invalid_success_expectation"
	// KindUnauthorized maps HTTP 401.
	KindUnauthorized Kind = "unauthorized"
	// KindForbidden maps HTTP 403.
	KindForbidden Kind = "forbidden"
	// KindNotFound maps HTTP 404.
	KindNotFound Kind = "not_found"
	// KindBadRequest maps HTTP 400.
	KindBadRequest Kind = "bad_request"
	// KindConflict maps HTTP 409.
	KindConflict Kind = "conflict"
	// KindUnprocessableEntity maps HTTP 422.
	KindUnprocessableEntity Kind = "unprocessable_entity"
	// KindNotImplemented maps HTTP 501.
	KindNotImplemented Kind = "not_implemented"
	// KindServerFault maps HTTP 500.
	KindServerFault Kind = "server_fault"
	// KindUnexpectedResponseCode maps any other status >= 400.
	KindUnexpectedResponseCode Kind = "unexpected_response_code"
	// KindOverLimit indicates a hard quota violation (413, non-retryable).
	KindOverLimit Kind = "over_limit"
	// KindRateLimitExceeded indicates a transient rate limit (413 with a
	// retryable overLimit body).
	KindRateLimitExceeded Kind = "rate_limit_exceeded"
	// KindInvalidContentType indicates an unrecognized content type on an
	// error response, or an explicit HTTP 415.
	KindInvalidContentType Kind = "invalid_content_type"
	// KindResponseWithNonEmptyBody indicates a body on a response that must
	// not carry one (204/205/304, 1xx, or HEAD).
	KindResponseWithNonEmptyBody Kind = "response_with_non_empty_body"
	// KindResponseWithEntity indicates a 205 response carrying entity
	// headers.
	KindResponseWithEntity Kind = "response_with_entity"
	// KindInvalidResponseBody indicates an unparseable fault body or a body
	// failing schema validation.
	KindInvalidResponseBody Kind = "invalid_http_response_body"
	// KindInvalidResponseHeader indicates response headers failing schema
	// validation.
	KindInvalidResponseHeader Kind = "invalid_http_response_header"
	// KindTimeout indicates deletion polling exceeded its budget.
	KindTimeout Kind = "timeout"
	// KindCapabilityNotImplemented indicates a resource client never
	// supplied a required capability such as deletion detection.
	KindCapabilityNotImplemented Kind = "capability_not_implemented"
)

// message is the fixed human-readable description for each kind.
func (k Kind) message() string {
	switch k {
	case KindInvalidSuccessCode:
		return "the success code is different than the expected one"
	case KindInvalidSuccessExpectation:
		return "expected status is not a defined success code"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "object not found"
	case KindBadRequest:
		return "bad request"
	case KindConflict:
		return "an object with that identifier already exists"
	case KindUnprocessableEntity:
		return "unprocessable entity"
	case KindNotImplemented:
		return "got NotImplemented error"
	case KindServerFault:
		return "got server fault"
	case KindUnexpectedResponseCode:
		return "unexpected response code received"
	case KindOverLimit:
		return "quota exceeded"
	case KindRateLimitExceeded:
		return "rate limit exceeded"
	case KindInvalidContentType:
		return "invalid content type provided"
	case KindResponseWithNonEmptyBody:
		return "RFC violation: response with this status must not have a body"
	case KindResponseWithEntity:
		return "RFC violation: response with 205 status must not have an entity"
	case KindInvalidResponseBody:
		return "HTTP response body is invalid"
	case KindInvalidResponseHeader:
		return "HTTP response header is invalid"
	case KindTimeout:
		return "request timed out"
	case KindCapabilityNotImplemented:
		return "capability not implemented"
	default:
		return "an unknown error occurred"
	}
}
