package restclient

import (
	"bytes"
	"context"
	"strings"
	"testing"

	resterrors "github.com/mkaraca/restkit/errors"
	"github.com/mkaraca/restkit/logger"
	"github.com/mkaraca/restkit/transport"
)

func TestCheckResponseBodyViolations(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		status  int
		body    string
		wantErr bool
	}{
		{"204 with body", "GET", 204, "leftover", true},
		{"205 with body", "GET", 205, "leftover", true},
		{"304 with body", "GET", 304, "leftover", true},
		{"1xx with body", "GET", 100, "leftover", true},
		{"HEAD with body", "HEAD", 200, "leftover", true},
		{"204 without body", "GET", 204, "", false},
		{"HEAD without body", "HEAD", 200, "", false},
		{"200 with body", "GET", 200, "fine", false},
	}

	c := newTestClient(t, &fakeTransport{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := transport.NewResponse(tt.status, nil)
			err := c.CheckResponse(tt.method, resp, []byte(tt.body))
			if tt.wantErr {
				if !resterrors.IsKind(err, resterrors.KindResponseWithNonEmptyBody) {
					t.Errorf("err = %v, want non-empty-body violation", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCheckResponse205Headers(t *testing.T) {
	c := newTestClient(t, &fakeTransport{})

	allowed := transport.NewResponse(205, map[string]string{
		"Date":        "Mon, 01 Jan 2024 00:00:00 GMT",
		"Connection":  "close",
		"Retry-After": "5",
		"ETag":        `"abc"`,
	})
	if err := c.CheckResponse("GET", allowed, nil); err != nil {
		t.Errorf("allowed headers rejected: %v", err)
	}

	entity := transport.NewResponse(205, map[string]string{
		"Date":         "Mon, 01 Jan 2024 00:00:00 GMT",
		"Content-Type": "application/json",
	})
	if err := c.CheckResponse("GET", entity, nil); !resterrors.IsKind(err, resterrors.KindResponseWithEntity) {
		t.Errorf("err = %v, want entity violation", err)
	}
}

func TestCheckResponseWarnsOnEmptyErrorBody(t *testing.T) {
	var buf bytes.Buffer
	c := newTestClient(t, &fakeTransport{}, WithLogger(logger.NewWriter(&buf, "warn")))

	resp := transport.NewResponse(404, nil)
	if err := c.CheckResponse("GET", resp, nil); err != nil {
		t.Fatalf("empty 404 body must not be an error: %v", err)
	}
	if !strings.Contains(buf.String(), "empty body") {
		t.Errorf("expected a warning, log = %q", buf.String())
	}

	buf.Reset()
	if err := c.CheckResponse("HEAD", resp, nil); err != nil {
		t.Fatalf("HEAD 404 must not be an error: %v", err)
	}
	if buf.Len() > 0 {
		t.Errorf("HEAD must not warn, log = %q", buf.String())
	}
}

func errorStatus(status int, ctype, body string) (*transport.Response, []byte) {
	headers := map[string]string{}
	if ctype != "" {
		headers["Content-Type"] = ctype
	}
	return transport.NewResponse(status, headers), []byte(body)
}

func TestCheckErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		ctype  string
		body   string
		want   resterrors.Kind
	}{
		{"401", 401, "application/json", `{"error": "nope"}`, resterrors.KindUnauthorized},
		{"403", 403, "application/json", `{}`, resterrors.KindForbidden},
		{"404", 404, "application/json", `{"itemNotFound": {"message": "gone"}}`, resterrors.KindNotFound},
		{"400", 400, "application/json", `{"badRequest": {"message": "bad"}}`, resterrors.KindBadRequest},
		{"409", 409, "application/json", `{}`, resterrors.KindConflict},
		{"415", 415, "application/json", `{}`, resterrors.KindInvalidContentType},
		{"422", 422, "application/json", `{}`, resterrors.KindUnprocessableEntity},
		{"500", 500, "application/json", `{"computeFault": {"message": "boom"}}`, resterrors.KindServerFault},
		{"501", 501, "application/json", `{}`, resterrors.KindNotImplemented},
		{"402 has no dedicated mapping", 402, "application/json", `{}`, resterrors.KindUnexpectedResponseCode},
		{"418 has no dedicated mapping", 418, "application/json", `{}`, resterrors.KindUnexpectedResponseCode},
		{"text body", 404, "text/plain", "not found", resterrors.KindNotFound},
		{"charset variant", 400, "application/json; charset=utf-8", `{}`, resterrors.KindBadRequest},
		{"missing content type assumes configured", 404, "", "gone", resterrors.KindNotFound},
		{"unknown content type", 400, "application/octet-stream", "...", resterrors.KindInvalidContentType},
		{"unparseable fault body", 500, "application/json", "not json", resterrors.KindInvalidResponseBody},
	}

	c := newTestClient(t, &fakeTransport{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := errorStatus(tt.status, tt.ctype, tt.body)
			err := c.checkError(resp, body)
			if got := resterrors.KindOf(err); got != tt.want {
				t.Errorf("kind = %q, want %q (err: %v)", got, tt.want, err)
			}
		})
	}
}

func TestCheckError413(t *testing.T) {
	c := newTestClient(t, &fakeTransport{})

	transient := transport.NewResponse(413, map[string]string{
		"Content-Type": "application/json",
		"Retry-After":  "3",
	})
	body := []byte(`{"overLimit": {"message": "rate exceeded", "retryAfter": "3"}}`)
	if err := c.checkError(transient, body); !resterrors.IsRateLimit(err) {
		t.Errorf("err = %v, want rate limit", err)
	}

	absolute := transport.NewResponse(413, map[string]string{
		"Content-Type": "application/json",
		"Retry-After":  "3",
	})
	body = []byte(`{"overLimit": {"message": "quota reached"}}`)
	if err := c.checkError(absolute, body); !resterrors.IsOverLimit(err) {
		t.Errorf("err = %v, want over limit", err)
	}

	noRetryAfter := transport.NewResponse(413, map[string]string{"Content-Type": "application/json"})
	body = []byte(`{"overLimit": {"message": "rate exceeded"}}`)
	if err := c.checkError(noRetryAfter, body); !resterrors.IsOverLimit(err) {
		t.Errorf("err = %v, want over limit without retry-after", err)
	}
}

func TestFaultMessageOrder(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
		want any
	}{
		{
			name: "cloudServersFault wins",
			body: map[string]any{
				"cloudServersFault": map[string]any{"message": "a"},
				"computeFault":      map[string]any{"message": "b"},
			},
			want: "a",
		},
		{
			name: "computeFault before error",
			body: map[string]any{
				"computeFault": map[string]any{"message": "b"},
				"error":        map[string]any{"message": "c"},
			},
			want: "b",
		},
		{
			name: "error before bare message",
			body: map[string]any{
				"error":   map[string]any{"message": "c"},
				"message": "d",
			},
			want: "c",
		},
		{
			name: "bare message",
			body: map[string]any{"message": "d"},
			want: "d",
		},
		{
			name: "fallback to raw",
			body: map[string]any{"unrelated": true},
			want: "raw",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := faultMessage(tt.body, "raw"); got != tt.want {
				t.Errorf("faultMessage = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRequestReturnsClassifiedError(t *testing.T) {
	tr := &fakeTransport{exchanges: []exchange{{
		resp: transport.NewResponse(404, map[string]string{"Content-Type": "application/json"}),
		body: []byte(`{"itemNotFound": {"message": "no such server"}}`),
	}}}
	c := newTestClient(t, tr)

	resp, body, err := c.Get(context.Background(), "servers/42")
	if !resterrors.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
	if resp == nil || resp.Status != 404 {
		t.Error("response descriptor must be returned alongside the error")
	}
	if len(body) == 0 {
		t.Error("body must be returned alongside the error")
	}
}
