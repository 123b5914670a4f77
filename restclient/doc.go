// Package restclient implements the REST request client that test suites
// use to exercise a remote HTTP API.
//
// A Client composes an auth.Provider (URL resolution, tokens, request
// signing) with a transport.Transport (single HTTP exchanges) and layers
// the request lifecycle on top: default header derivation, bounded
// rate-limit retry, response shape checking, and classification of error
// responses into the typed taxonomy of the errors package.
//
//	provider := auth.NewStatic(token, creds, endpoints...)
//	client, err := restclient.New(restclient.Config{
//	    Service: "compute",
//	    Region:  "RegionOne",
//	}, provider)
//
//	resp, body, err := client.Get(ctx, "servers/detail")
//	if err != nil { ... }
//	if err := restclient.ExpectedSuccess([]int{200}, resp.Status); err != nil { ... }
//
// Calls are synchronous and blocking; the client issues one request at a
// time. The SkipPath/ResetPath routing toggle is the only mutable state
// and must not be flipped concurrently with in-flight requests.
package restclient
