package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 60 * time.Second

// Config configures the HTTP transport.
type Config struct {
	// Timeout bounds a single exchange end to end. Defaults to 60s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// TLS configures certificate verification. Nil uses system defaults.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`
}

// HTTPTransport is the net/http-backed Transport. It owns its http.Client
// for the lifetime of the REST client that created it.
type HTTPTransport struct {
	client *http.Client
}

// New creates an HTTP transport from the given config.
func New(cfg Config) (*HTTPTransport, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	rt := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.TLS != nil {
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, err
		}
		if tlsCfg != nil {
			rt.TLSClientConfig = tlsCfg
		}
	}

	return &HTTPTransport{
		client: &http.Client{
			Transport: rt,
			Timeout:   cfg.Timeout,
		},
	}, nil
}

// Request executes one HTTP exchange and returns the response descriptor
// and the fully read body.
func (t *HTTPTransport) Request(ctx context.Context, url, method string, headers map[string]string, body []byte) (*Response, []byte, error) {
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("transport: create request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("transport: %s %s: %w", method, url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("transport: read response body: %w", err)
	}

	return fromHTTPHeader(resp.StatusCode, resp.Header), raw, nil
}

// CloseIdleConnections releases any idle OS-level connections held by the
// transport.
func (t *HTTPTransport) CloseIdleConnections() {
	t.client.CloseIdleConnections()
}
