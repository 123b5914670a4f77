// Package validation provides the field- and struct-level checks backing
// response schema validation.
//
// The fluent Validator accumulates per-field errors for hand-written
// checks (typically response headers):
//
//	err := validation.New().
//	    Required("location", resp.Header("location")).
//	    Pattern("x-request-id", resp.Header("x-request-id"), `^req-`).
//	    Err()
//
// ValidateStruct checks a decoded body against `validate:"..."` struct
// tags via go-playground/validator.
package validation
