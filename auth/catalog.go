package auth

import (
	"fmt"
	"net/url"
	"strings"
)

// TokenHeader is the header carrying the bearer token on signed requests.
const TokenHeader = "X-Auth-Token"

// ErrEndpointNotFound is returned when no catalog entry matches the
// routing filters.
var ErrEndpointNotFound = fmt.Errorf("auth: endpoint not found")

// Endpoint is one catalog entry.
type Endpoint struct {
	Service      string
	Region       string
	EndpointType string
	URL          string
}

// Catalog is an ordered set of endpoints. Resolution returns the first
// match.
type Catalog []Endpoint

// Resolve returns the base URL matching the filters, with APIVersion and
// SkipPath applied. Empty filter fields match any value.
func (c Catalog) Resolve(f Filters) (string, error) {
	for _, e := range c {
		if f.Service != "" && e.Service != f.Service {
			continue
		}
		if f.Region != "" && e.Region != "" && e.Region != f.Region {
			continue
		}
		if f.EndpointType != "" && e.EndpointType != "" && e.EndpointType != f.EndpointType {
			continue
		}
		return applyFilters(e.URL, f)
	}
	return "", fmt.Errorf("%w: service=%q region=%q endpoint_type=%q",
		ErrEndpointNotFound, f.Service, f.Region, f.EndpointType)
}

func applyFilters(raw string, f Filters) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("auth: parse catalog url %q: %w", raw, err)
	}
	if f.SkipPath {
		u.Path = ""
		u.RawQuery = ""
	}
	if f.APIVersion != "" && !strings.Contains(u.Path, f.APIVersion) {
		u.Path = strings.TrimRight(u.Path, "/") + "/" + f.APIVersion
	}
	return strings.TrimRight(u.String(), "/"), nil
}

// JoinURL appends a request path to a resolved base URL. An empty path
// returns the base unchanged.
func JoinURL(base, path string) string {
	if path == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

func signWith(req Request, f Filters, c Catalog, token string) (Request, error) {
	base, err := c.Resolve(f)
	if err != nil {
		return Request{}, err
	}

	headers := make(map[string]string, len(req.Headers)+1)
	for k, v := range req.Headers {
		headers[k] = v
	}
	headers[TokenHeader] = token

	return Request{
		Method:  req.Method,
		URL:     JoinURL(base, req.URL),
		Headers: headers,
		Body:    req.Body,
	}, nil
}
