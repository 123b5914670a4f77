package restclient

import (
	"runtime"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mkaraca/restkit/auth"
	"github.com/mkaraca/restkit/logger"
	"github.com/mkaraca/restkit/transport"
)

// requestIDHeaders are probed in order for the backend request correlator.
var requestIDHeaders = []string{"x-openstack-request-id", "x-compute-request-id"}

const (
	maxLoggedBody         = 4096
	binaryBodyPlaceholder = "<BinaryData: removed>"
	redactedPlaceholder   = "<omitted>"
)

// RequestID extracts the backend request correlator from the response, or
// "" when none of the known headers is present.
func RequestID(resp *transport.Response) string {
	for _, h := range requestIDHeaders {
		if resp.Has(h) {
			return resp.Header(h)
		}
	}
	return ""
}

// SafeBody renders a body for logging: binary content is replaced with a
// placeholder and text is truncated to 4 KiB.
func SafeBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if !utf8.Valid(body) {
		return binaryBodyPlaceholder
	}
	if len(body) > maxLoggedBody {
		return string(body[:maxLoggedBody])
	}
	return string(body)
}

// redactHeaders copies headers with credential values masked.
func redactHeaders(h map[string]string) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if strings.EqualFold(k, auth.TokenHeader) || strings.EqualFold(k, "Authorization") {
			v = redactedPlaceholder
		}
		out[k] = v
	}
	return out
}

// findCaller walks up the stack to the first function outside this package
// and returns its short name, e.g. "servers_test.TestCreateServer".
func findCaller() string {
	pcs := make([]uintptr, 16)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if frame.Function != "" && !strings.Contains(frame.Function, "/restclient.") {
			name := frame.Function
			if i := strings.LastIndex(name, "/"); i >= 0 {
				name = name[i+1:]
			}
			return name
		}
		if !more {
			return ""
		}
	}
}

// logRequestStart emits the call-site trace line when the caller matches
// the configured trace pattern.
func (c *Client) logRequestStart(method, url, caller string) {
	if c.trace == nil || !c.trace.MatchString(caller) {
		return
	}
	c.log.Debug("starting request", logger.Fields(
		logger.FieldCaller, caller,
		logger.FieldMethod, method,
		logger.FieldURL, url,
	))
}

// logRequest emits the per-request summary line, plus the full exchange at
// debug level with credentials redacted and bodies sanitized.
func (c *Client) logRequest(method, url string, resp *transport.Response, elapsed time.Duration, caller string, reqHeaders map[string]string, reqBody, respBody []byte) {
	fields := logger.Fields(
		logger.FieldMethod, method,
		logger.FieldStatus, resp.Status,
		logger.FieldURL, url,
		logger.FieldDuration, elapsed.Seconds(),
		logger.FieldRequestID, RequestID(resp),
		logger.FieldCaller, caller,
	)
	c.log.Info("request", fields)

	if !c.log.DebugEnabled() {
		return
	}
	c.log.Debug("request detail", fields, logger.Fields(
		"request_headers", redactHeaders(reqHeaders),
		"request_body", SafeBody(reqBody),
		"response_headers", resp.Headers,
		"response_body", SafeBody(respBody),
	))
}
