// Package transport executes single HTTP exchanges for the REST client.
//
// The Transport interface is the client's boundary to the wire: one request
// in, one response descriptor plus raw body out. The net/http-backed
// implementation owns connection handling and TLS; the REST client owns
// everything above it (auth, retries, classification).
//
// Response headers are stored lowercased so lookups are case-insensitive,
// matching how the classifier and retry controller consult them.
package transport
