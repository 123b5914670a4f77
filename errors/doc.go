// Package errors defines the typed error taxonomy raised by the REST
// client when an HTTP exchange fails classification, validation, or
// polling.
//
// Every failure kind is a distinct Kind on a single Error type, so test
// code can branch on specific failures without string matching:
//
//	_, _, err := client.Delete(ctx, "servers/"+id)
//	if errors.IsNotFound(err) {
//	    // already gone, deletion confirmed
//	}
//
// Errors carry the (possibly normalized) response body as Body so the
// failing payload is available to the caller and in test output.
package errors
