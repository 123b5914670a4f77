package auth

import (
	"fmt"
	"sync"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// tokenLeeway re-mints a cached token this long before its actual expiry,
// so a token never expires mid-request.
const tokenLeeway = 30 * time.Second

// JWTConfig configures self-minted bearer tokens.
type JWTConfig struct {
	// Secret is the HS256 signing key shared with the API under test.
	Secret string
	// Issuer is the "iss" claim (optional).
	Issuer string
	// Audience is the "aud" claim (optional).
	Audience []string
	// TTL is the token lifetime. Defaults to 15m.
	TTL time.Duration
}

// JWTProvider is a Provider that mints its own HS256 bearer tokens,
// re-minting when a cached token nears expiry. Useful against self-hosted
// environments where the suite holds the signing secret instead of a
// pre-issued token.
type JWTProvider struct {
	cfg     JWTConfig
	creds   Credentials
	catalog Catalog
	now     func() time.Time

	mu      sync.Mutex
	token   string
	expires time.Time
}

// NewJWT creates a JWT-minting provider over the given catalog.
func NewJWT(cfg JWTConfig, creds Credentials, endpoints ...Endpoint) (*JWTProvider, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("auth/jwt: secret is required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 15 * time.Minute
	}
	return &JWTProvider{
		cfg:     cfg,
		creds:   creds,
		catalog: endpoints,
		now:     time.Now,
	}, nil
}

// BaseURL resolves the base URL for the given filters.
func (p *JWTProvider) BaseURL(f Filters) (string, error) {
	return p.catalog.Resolve(f)
}

// Token returns a valid bearer token, minting a fresh one when the cached
// token is absent or close to expiry.
func (p *JWTProvider) Token() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && p.now().Before(p.expires.Add(-tokenLeeway)) {
		return p.token, nil
	}

	now := p.now()
	expires := now.Add(p.cfg.TTL)
	claims := gojwt.RegisteredClaims{
		Subject:   p.creds.Username,
		Issuer:    p.cfg.Issuer,
		Audience:  p.cfg.Audience,
		IssuedAt:  gojwt.NewNumericDate(now),
		ExpiresAt: gojwt.NewNumericDate(expires),
	}

	signed, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(p.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("auth/jwt: sign token: %w", err)
	}

	p.token = signed
	p.expires = expires
	return signed, nil
}

// Sign resolves the absolute URL and attaches a freshly validated token.
func (p *JWTProvider) Sign(req Request, f Filters) (Request, error) {
	token, err := p.Token()
	if err != nil {
		return Request{}, err
	}
	return signWith(req, f, p.catalog, token)
}

// Credentials returns the configured identity.
func (p *JWTProvider) Credentials() Credentials {
	return p.creds
}
