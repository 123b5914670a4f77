package restclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/mkaraca/restkit/auth"
	resterrors "github.com/mkaraca/restkit/errors"
	"github.com/mkaraca/restkit/logger"
	"github.com/mkaraca/restkit/transport"
	"github.com/mkaraca/restkit/version"
)

// httpSuccess is the closed set of success codes from RFC 7231 and RFC 4918.
var httpSuccess = map[int]bool{
	200: true, 201: true, 202: true, 203: true,
	204: true, 205: true, 206: true, 207: true,
}

// Client issues REST requests against one service endpoint. Construct with
// New; the zero value is not usable.
type Client struct {
	cfg  Config
	auth auth.Provider
	tr   transport.Transport
	log  logger.Sink

	trace        *regexp.Regexp
	checker      ResourceChecker
	resourceType string
	skipPath     bool

	sleep func(time.Duration)
	now   func() time.Time
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithLogger sets the logging sink. Defaults to a no-op logger.
func WithLogger(log logger.Sink) Option {
	return func(c *Client) { c.log = log }
}

// WithTransport replaces the HTTP transport, mainly for tests.
func WithTransport(tr transport.Transport) Option {
	return func(c *Client) { c.tr = tr }
}

// WithResourceChecker enables WaitForResourceDeletion by supplying the
// deletion probe.
func WithResourceChecker(rc ResourceChecker) Option {
	return func(c *Client) { c.checker = rc }
}

// WithResourceType names the resource kind in polling errors. Defaults to
// "resource".
func WithResourceType(name string) Option {
	return func(c *Client) { c.resourceType = name }
}

// New creates a Client from config and an auth provider.
func New(cfg Config, provider auth.Provider, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:          cfg,
		auth:         provider,
		log:          logger.Nop(),
		resourceType: "resource",
		sleep:        time.Sleep,
		now:          time.Now,
	}
	if cfg.TraceRequests != "" {
		c.trace = regexp.MustCompile(cfg.TraceRequests)
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tr == nil {
		tr, err := transport.New(transport.Config{Timeout: cfg.Timeout, TLS: cfg.TLS})
		if err != nil {
			return nil, err
		}
		c.tr = tr
	}
	return c, nil
}

// RequestOption adjusts a single request.
type RequestOption func(*requestOptions)

type requestOptions struct {
	headers      map[string]string
	headersSet   bool
	extraHeaders bool
	body         any
}

// WithHeaders replaces the default headers for this request with h. Combine
// with WithExtraHeaders to merge instead of replace.
func WithHeaders(h map[string]string) RequestOption {
	return func(ro *requestOptions) {
		ro.headers = h
		ro.headersSet = true
	}
}

// WithExtraHeaders fills gaps in explicitly given headers with the client's
// defaults. Explicit values always win over defaults.
func WithExtraHeaders() RequestOption {
	return func(ro *requestOptions) { ro.extraHeaders = true }
}

// WithBody attaches a request body to verbs that do not take one directly,
// such as Delete. Accepted types match Post.
func WithBody(body any) RequestOption {
	return func(ro *requestOptions) { ro.body = body }
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, url string, opts ...RequestOption) (*transport.Response, []byte, error) {
	return c.Request(ctx, http.MethodGet, url, opts...)
}

// Head issues a HEAD request.
func (c *Client) Head(ctx context.Context, url string, opts ...RequestOption) (*transport.Response, []byte, error) {
	return c.Request(ctx, http.MethodHead, url, opts...)
}

// Delete issues a DELETE request. Use WithBody for the occasional API that
// expects one.
func (c *Client) Delete(ctx context.Context, url string, opts ...RequestOption) (*transport.Response, []byte, error) {
	return c.Request(ctx, http.MethodDelete, url, opts...)
}

// Copy issues a COPY request.
func (c *Client) Copy(ctx context.Context, url string, opts ...RequestOption) (*transport.Response, []byte, error) {
	return c.Request(ctx, "COPY", url, opts...)
}

// Post issues a POST request with the given body.
func (c *Client) Post(ctx context.Context, url string, body any, opts ...RequestOption) (*transport.Response, []byte, error) {
	return c.Request(ctx, http.MethodPost, url, append(opts, WithBody(body))...)
}

// Put issues a PUT request with the given body.
func (c *Client) Put(ctx context.Context, url string, body any, opts ...RequestOption) (*transport.Response, []byte, error) {
	return c.Request(ctx, http.MethodPut, url, append(opts, WithBody(body))...)
}

// Patch issues a PATCH request with the given body.
func (c *Client) Patch(ctx context.Context, url string, body any, opts ...RequestOption) (*transport.Response, []byte, error) {
	return c.Request(ctx, http.MethodPatch, url, append(opts, WithBody(body))...)
}

// Request issues a request with an arbitrary method. It signs the request
// through the auth provider, applies the bounded rate-limit retry, checks
// the response shape, and classifies error statuses into typed errors. On
// a classified error the response and body are still returned alongside it.
func (c *Client) Request(ctx context.Context, method, url string, opts ...RequestOption) (*transport.Response, []byte, error) {
	var ro requestOptions
	for _, opt := range opts {
		opt(&ro)
	}

	headers := c.requestHeaders(&ro)
	body, err := encodeBody(ro.body)
	if err != nil {
		return nil, nil, err
	}

	resp, respBody, err := c.withRateLimitRetry(ctx, func() (*transport.Response, []byte, error) {
		return c.do(ctx, method, url, headers, body)
	})
	if err != nil {
		return resp, respBody, err
	}

	if err := c.checkError(resp, respBody); err != nil {
		return resp, respBody, err
	}
	return resp, respBody, nil
}

// RawRequest issues a request without auth signing, retries, shape checks,
// or error classification. Nil headers get the client defaults; the caller
// owns interpretation of the response.
func (c *Client) RawRequest(ctx context.Context, method, url string, headers map[string]string, body []byte) (*transport.Response, []byte, error) {
	if headers == nil {
		headers = c.GetHeaders("", "")
	}
	base, err := c.auth.BaseURL(c.Filters())
	if err != nil {
		return nil, nil, err
	}
	return c.tr.Request(ctx, auth.JoinURL(base, url), method, headers, body)
}

// do runs one signed exchange: sign, send, log, shape-check.
func (c *Client) do(ctx context.Context, method, url string, headers map[string]string, body []byte) (*transport.Response, []byte, error) {
	signed, err := c.auth.Sign(auth.Request{Method: method, URL: url, Headers: headers, Body: body}, c.Filters())
	if err != nil {
		return nil, nil, err
	}

	caller := findCaller()
	c.logRequestStart(method, signed.URL, caller)

	start := c.now()
	resp, respBody, err := c.tr.Request(ctx, signed.URL, method, signed.Headers, signed.Body)
	if err != nil {
		return nil, nil, err
	}
	elapsed := c.now().Sub(start)

	c.logRequest(method, signed.URL, resp, elapsed, caller, signed.Headers, signed.Body, respBody)

	if err := c.CheckResponse(method, resp, respBody); err != nil {
		return resp, respBody, err
	}
	return resp, respBody, nil
}

// requestHeaders resolves the effective header set for one request.
func (c *Client) requestHeaders(ro *requestOptions) map[string]string {
	if !ro.headersSet || ro.headers == nil {
		return c.GetHeaders("", "")
	}
	merged := copyHeaders(ro.headers)
	if ro.extraHeaders {
		for k, v := range c.GetHeaders("", "") {
			if _, ok := merged[k]; !ok {
				merged[k] = v
			}
		}
	}
	return merged
}

// GetHeaders derives the default headers from the configured media subtype.
// Empty acceptType or sendType fall back to the configured Type.
func (c *Client) GetHeaders(acceptType, sendType string) map[string]string {
	if acceptType == "" {
		acceptType = c.cfg.Type
	}
	if sendType == "" {
		sendType = c.cfg.Type
	}
	return map[string]string{
		"Content-Type": "application/" + sendType,
		"Accept":       "application/" + acceptType,
		"User-Agent":   version.UserAgent(),
	}
}

// encodeBody turns the accepted body types into wire bytes: nil stays nil,
// []byte and string pass through, io.Reader is drained, everything else is
// JSON-encoded.
func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	case io.Reader:
		raw, err := io.ReadAll(b)
		if err != nil {
			return nil, fmt.Errorf("restclient: read request body: %w", err)
		}
		return raw, nil
	default:
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("restclient: encode request body: %w", err)
		}
		return raw, nil
	}
}

func copyHeaders(h map[string]string) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// Filters returns the endpoint routing filters derived from the config and
// the current SkipPath state.
func (c *Client) Filters() auth.Filters {
	return auth.Filters{
		Service:      c.cfg.Service,
		EndpointType: c.cfg.EndpointType,
		Region:       c.cfg.Region,
		APIVersion:   c.cfg.APIVersion,
		SkipPath:     c.skipPath,
	}
}

// SkipPath makes subsequent requests resolve against the catalog URL with
// its path component stripped. ResetPath restores normal resolution.
func (c *Client) SkipPath() { c.skipPath = true }

// ResetPath restores base URL resolution to include the catalog path.
func (c *Client) ResetPath() { c.skipPath = false }

// BaseURL resolves the current base URL from the auth provider.
func (c *Client) BaseURL() (string, error) {
	return c.auth.BaseURL(c.Filters())
}

// Token returns the provider's current token.
func (c *Client) Token() (string, error) {
	return c.auth.Token()
}

// User returns the authenticated username.
func (c *Client) User() string { return c.auth.Credentials().Username }

// UserID returns the authenticated user ID.
func (c *Client) UserID() string { return c.auth.Credentials().UserID }

// TenantName returns the authenticated tenant name.
func (c *Client) TenantName() string { return c.auth.Credentials().TenantName }

// TenantID returns the authenticated tenant ID.
func (c *Client) TenantID() string { return c.auth.Credentials().TenantID }

// Password returns the authenticated password.
func (c *Client) Password() string { return c.auth.Credentials().Password }

// ResourceType returns the resource kind used in polling messages.
func (c *Client) ResourceType() string { return c.resourceType }

// GetVersions lists the API versions at the service root: it issues GET
// against the bare base URL and collects the "id" of each version entry.
func (c *Client) GetVersions(ctx context.Context) (*transport.Response, []string, error) {
	resp, body, err := c.Get(ctx, "")
	if err != nil {
		return resp, nil, err
	}
	parsed, err := ParseResponseBody(body)
	if err != nil {
		return resp, nil, resterrors.InvalidResponseBody(err.Error(), string(body))
	}
	items, ok := parsed.([]any)
	if !ok {
		return resp, nil, resterrors.InvalidResponseBody("version listing is not a list", parsed)
	}
	versions := make([]string, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return resp, nil, resterrors.InvalidResponseBody("version entry is not a mapping", parsed)
		}
		id, _ := m["id"].(string)
		versions = append(versions, id)
	}
	return resp, versions, nil
}

// String summarizes the client for diagnostics. The token and default
// headers are truncated to 80 characters.
func (c *Client) String() string {
	const limit = 80
	token, _ := c.auth.Token()
	baseURL, _ := c.BaseURL()
	headers := fmt.Sprintf("%v", c.GetHeaders("", ""))
	return fmt.Sprintf(
		"service:%s, base_url:%s, filters: %+v, build_interval:%s, build_timeout:%s\ntoken:%s...,\nheaders:%s...",
		c.cfg.Service, baseURL, c.Filters(), c.cfg.BuildInterval, c.cfg.BuildTimeout,
		truncate(token, limit), truncate(headers, limit),
	)
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
