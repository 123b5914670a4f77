package auth

// Credentials are the identity attributes a provider authenticates with.
// The REST client proxies them read-only; it never interprets them.
type Credentials struct {
	Username   string
	UserID     string
	TenantName string
	TenantID   string
	Password   string
}

// Filters are the routing attributes used to resolve a base URL from an
// endpoint catalog.
type Filters struct {
	// Service is the catalog service name, e.g. "compute".
	Service string
	// EndpointType selects the catalog interface, e.g. "publicURL".
	EndpointType string
	// Region selects the catalog region. Empty matches any.
	Region string
	// APIVersion, when set, is appended as a path segment to the resolved
	// URL unless already present.
	APIVersion string
	// SkipPath drops the path component of the catalog URL.
	SkipPath bool
}

// Request is an outgoing request handed to the provider for signing. The
// provider may rewrite the URL, headers, and body; the method is fixed.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

// Provider supplies base URLs, tokens, and request signing.
type Provider interface {
	// BaseURL resolves the base URL for the given routing filters.
	BaseURL(f Filters) (string, error)
	// Token returns the current bearer token.
	Token() (string, error)
	// Sign authenticates an outgoing request: resolves the absolute URL
	// from the filters and attaches credentials. The input request is not
	// modified.
	Sign(req Request, f Filters) (Request, error)
	// Credentials returns the identity the provider authenticates with.
	Credentials() Credentials
}
