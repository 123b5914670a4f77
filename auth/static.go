package auth

// StaticProvider is a Provider over a fixed endpoint catalog and a
// pre-acquired token. It is the usual provider for suites running against
// an environment whose credentials were issued out of band.
type StaticProvider struct {
	token   string
	creds   Credentials
	catalog Catalog
}

// NewStatic creates a provider from a token, credentials, and catalog
// entries.
func NewStatic(token string, creds Credentials, endpoints ...Endpoint) *StaticProvider {
	return &StaticProvider{token: token, creds: creds, catalog: endpoints}
}

// BaseURL resolves the base URL for the given filters.
func (p *StaticProvider) BaseURL(f Filters) (string, error) {
	return p.catalog.Resolve(f)
}

// Token returns the fixed token.
func (p *StaticProvider) Token() (string, error) {
	return p.token, nil
}

// Sign resolves the absolute URL and attaches the token header.
func (p *StaticProvider) Sign(req Request, f Filters) (Request, error) {
	return signWith(req, f, p.catalog, p.token)
}

// Credentials returns the configured identity.
func (p *StaticProvider) Credentials() Credentials {
	return p.creds
}
