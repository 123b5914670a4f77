package transport

import (
	"context"
	"net/http"
	"sort"
	"strings"
)

// Transport executes a single HTTP request and returns the response
// descriptor plus the raw body. Implementations must not retry or reinterpret
// the exchange; that is the client's job.
type Transport interface {
	Request(ctx context.Context, url, method string, headers map[string]string, body []byte) (*Response, []byte, error)
}

// Response describes a completed HTTP response: status code and headers.
// Header names are lowercased on construction.
type Response struct {
	Status  int
	Headers map[string]string
}

// NewResponse builds a descriptor, lowercasing header names. Multi-value
// headers keep their first value.
func NewResponse(status int, headers map[string]string) *Response {
	lowered := make(map[string]string, len(headers))
	for k, v := range headers {
		lowered[strings.ToLower(k)] = v
	}
	return &Response{Status: status, Headers: lowered}
}

func fromHTTPHeader(status int, h http.Header) *Response {
	lowered := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			lowered[strings.ToLower(k)] = v[0]
		}
	}
	return &Response{Status: status, Headers: lowered}
}

// Header returns the value of the named header, case-insensitively.
func (r *Response) Header(name string) string {
	return r.Headers[strings.ToLower(name)]
}

// Has reports whether the named header is present, case-insensitively.
func (r *Response) Has(name string) bool {
	_, ok := r.Headers[strings.ToLower(name)]
	return ok
}

// HeaderNames returns the sorted lowercased header names.
func (r *Response) HeaderNames() []string {
	names := make([]string, 0, len(r.Headers))
	for k := range r.Headers {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
