// Package auth defines the authentication boundary of the REST client.
//
// A Provider resolves base URLs from routing filters, supplies bearer
// tokens, and signs outgoing requests before dispatch. The client holds a
// non-owning reference to its provider; token acquisition and endpoint
// catalogs live entirely behind this interface.
//
// Two implementations are included for test environments: StaticProvider
// (fixed catalog and token) and JWTProvider (same catalog, self-minted
// HS256 tokens with expiry-based re-minting).
package auth
