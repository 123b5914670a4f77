package restclient

import (
	"encoding/json"
	"fmt"

	resterrors "github.com/mkaraca/restkit/errors"
	"github.com/mkaraca/restkit/transport"
	"github.com/mkaraca/restkit/validation"
)

// Validator checks a decoded payload against an expected shape.
type Validator interface {
	Validate(data any) error
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(data any) error

// Validate calls f.
func (f ValidatorFunc) Validate(data any) error { return f(data) }

// StructValidator builds a Validator that decodes the payload into a fresh
// instance from newTarget and checks its validate struct tags.
//
//	v := restclient.StructValidator(func() any { return new(serverDoc) })
func StructValidator(newTarget func() any) Validator {
	return ValidatorFunc(func(data any) error {
		target := newTarget()
		raw, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("encode payload: %w", err)
		}
		if err := json.Unmarshal(raw, target); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
		return validation.ValidateStruct(target)
	})
}

// ResponseSpec declares what a successful response must look like.
type ResponseSpec struct {
	// Status lists the acceptable success codes. Every entry must belong
	// to the RFC 7231/4918 success set.
	Status []int
	// Body validates the normalized response body. Nil means the body
	// must be empty.
	Body Validator
	// Header validates the lowercased response header map. Nil skips
	// header validation.
	Header Validator
}

// ExpectedSuccess asserts that the observed status is one of the expected
// success codes. Expected codes outside the success set are a programming
// error and return KindInvalidSuccessExpectation. Observed statuses >= 400
// pass; the error classifier owns those.
func ExpectedSuccess(expected []int, observed int) error {
	for _, code := range expected {
		if !httpSuccess[code] {
			return resterrors.InvalidSuccessExpectation(code)
		}
	}
	if observed >= 400 {
		return nil
	}
	for _, code := range expected {
		if code == observed {
			return nil
		}
	}
	return resterrors.InvalidSuccessCode(expected, observed)
}

// ValidateResponse checks a completed exchange against spec. Responses
// outside the success set are skipped entirely; classification already
// covers them. A spec without a Body validator requires an empty body.
func ValidateResponse(spec ResponseSpec, resp *transport.Response, body []byte) error {
	if !httpSuccess[resp.Status] {
		return nil
	}
	if err := ExpectedSuccess(spec.Status, resp.Status); err != nil {
		return err
	}

	if spec.Body != nil {
		parsed, err := ParseResponseBody(body)
		if err != nil {
			return resterrors.InvalidResponseBody(err.Error(), string(body))
		}
		if err := spec.Body.Validate(parsed); err != nil {
			return resterrors.InvalidResponseBody(err.Error(), parsed)
		}
	} else if len(body) > 0 {
		return resterrors.InvalidResponseBody("HTTP response body should not exist", string(body))
	}

	if spec.Header != nil {
		if err := spec.Header.Validate(resp.Headers); err != nil {
			return resterrors.InvalidResponseHeader(err.Error())
		}
	}
	return nil
}
