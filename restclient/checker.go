package restclient

import (
	"net/http"
	"strings"

	resterrors "github.com/mkaraca/restkit/errors"
	"github.com/mkaraca/restkit/logger"
	"github.com/mkaraca/restkit/transport"
)

// generalHeaders may appear on any response, including 205.
var generalHeaders = map[string]struct{}{
	"cache-control":     {},
	"connection":        {},
	"date":              {},
	"pragma":            {},
	"trailer":           {},
	"transfer-encoding": {},
	"via":               {},
	"warning":           {},
}

// responseHeaders are the non-entity response headers allowed on a 205.
var responseHeaders = map[string]struct{}{
	"accept-ranges":      {},
	"age":                {},
	"etag":               {},
	"location":           {},
	"proxy-authenticate": {},
	"retry-after":        {},
	"server":             {},
	"vary":               {},
	"www-authenticate":   {},
}

// CheckResponse enforces protocol shape rules before any error
// classification: statuses that forbid a body must not carry one, a 205
// must not carry entity headers, and a 400-level response with no body at
// all is logged as suspicious.
func (c *Client) CheckResponse(method string, resp *transport.Response, body []byte) error {
	isHead := strings.EqualFold(method, http.MethodHead)

	noBodyStatus := resp.Status == 204 || resp.Status == 205 || resp.Status == 304 || resp.Status < 200
	if (noBodyStatus || isHead) && len(body) > 0 {
		return resterrors.ResponseWithNonEmptyBody(resp.Status)
	}

	if resp.Status == 205 {
		for _, name := range resp.HeaderNames() {
			if _, ok := generalHeaders[name]; ok {
				continue
			}
			if _, ok := responseHeaders[name]; ok {
				continue
			}
			return resterrors.ResponseWithEntity()
		}
	}

	if resp.Status >= 400 && !isHead && len(body) == 0 {
		c.log.Warn("error response with empty body", logger.Fields(logger.FieldStatus, resp.Status))
	}
	return nil
}

// structuredTypes are the content types whose error bodies are normalized
// before classification, derived from the configured media subtype.
func structuredTypes(subtype string) []string {
	base := "application/" + subtype
	return []string{base, base + "; charset=utf-8"}
}

var textTypes = []string{
	"text/plain",
	"text/html",
	"text/plain; charset=utf-8",
	"text/html; charset=utf-8",
}

// checkError maps a status >= 400 response to its typed error. Bodies with
// a structured content type are JSON-normalized first; text bodies are
// attached raw; any other content type is itself an error.
func (c *Client) checkError(resp *transport.Response, body []byte) error {
	if resp.Status < 400 {
		return nil
	}

	ctype := strings.ToLower(resp.Header("content-type"))
	if ctype == "" {
		// Some backends omit the header on error responses; assume the
		// configured type so classification can proceed.
		ctype = "application/" + c.cfg.Type
	}

	var structured bool
	switch {
	case containsString(structuredTypes(c.cfg.Type), ctype):
		structured = true
	case containsString(textTypes, ctype):
		structured = false
	default:
		err := resterrors.InvalidContentType(resp.Status, string(body))
		err.Detail = ctype
		return err
	}

	// payload returns the body to attach: normalized when structured and
	// parseable, otherwise the raw text.
	payload := func() any {
		if !structured {
			return string(body)
		}
		parsed, err := ParseResponseBody(body)
		if err != nil {
			return string(body)
		}
		return parsed
	}

	switch resp.Status {
	case 401:
		return resterrors.Unauthorized(string(body))
	case 403:
		return resterrors.Forbidden(string(body))
	case 404:
		return resterrors.NotFound(string(body))
	case 400:
		return resterrors.BadRequest(payload())
	case 409:
		return resterrors.Conflict(payload())
	case 413:
		pb := payload()
		if IsAbsoluteLimit(resp, pb) {
			return resterrors.OverLimit(pb)
		}
		return resterrors.RateLimitExceeded(pb)
	case 415:
		return resterrors.InvalidContentType(resp.Status, payload())
	case 422:
		return resterrors.UnprocessableEntity(payload())
	case 500, 501:
		message := any(string(body))
		if structured {
			parsed, err := ParseResponseBody(body)
			if err != nil {
				return resterrors.InvalidResponseBody(err.Error(), string(body))
			}
			if m, ok := parsed.(map[string]any); ok {
				message = faultMessage(m, string(body))
			} else {
				message = parsed
			}
		}
		if resp.Status == 501 {
			return resterrors.NotImplemented(message)
		}
		return resterrors.ServerFault(message)
	}
	return resterrors.UnexpectedResponseCode(resp.Status)
}

// faultMessage digs the human-readable message out of a structured fault
// body, trying the known fault envelopes in order.
func faultMessage(m map[string]any, fallback string) any {
	for _, key := range []string{"cloudServersFault", "computeFault", "error"} {
		if sub, ok := m[key].(map[string]any); ok {
			if msg, ok := sub["message"]; ok {
				return msg
			}
		}
	}
	if msg, ok := m["message"]; ok {
		return msg
	}
	return fallback
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
