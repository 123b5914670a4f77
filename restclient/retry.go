package restclient

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/mkaraca/restkit/logger"
	"github.com/mkaraca/restkit/transport"
)

// maxRateLimitRetries bounds how many times a 413 rate-limit response is
// retried; with the initial attempt the request is sent at most three times.
const maxRateLimitRetries = 2

type retryDecision int

const (
	// retryGiveUp leaves the response to the error classifier.
	retryGiveUp retryDecision = iota
	// retryAgain re-sends after the server-requested delay.
	retryAgain
)

// withRateLimitRetry sends the request and retries transient 413 responses
// after honoring the Retry-After delay. Hard-quota 413s, exchange errors,
// and everything else return immediately.
func (c *Client) withRateLimitRetry(ctx context.Context, send func() (*transport.Response, []byte, error)) (*transport.Response, []byte, error) {
	resp, body, err := send()
	if err != nil {
		return resp, body, err
	}

	for attempt := 0; c.classifyAttempt(resp, body, attempt) == retryAgain; attempt++ {
		delay := retryAfter(resp)
		c.log.Warn("rate limited, retrying", logger.Fields(
			"attempt", attempt+1,
			"retry_after_s", delay.Seconds(),
		))
		if ctx.Err() != nil {
			return resp, body, ctx.Err()
		}
		c.sleep(delay)

		resp, body, err = send()
		if err != nil {
			return resp, body, err
		}
	}
	return resp, body, nil
}

func (c *Client) classifyAttempt(resp *transport.Response, body []byte, attempt int) retryDecision {
	if resp.Status != 413 || !resp.Has("retry-after") {
		return retryGiveUp
	}
	parsed, err := ParseResponseBody(body)
	if err != nil {
		parsed = nil
	}
	if IsAbsoluteLimit(resp, parsed) {
		return retryGiveUp
	}
	if attempt >= maxRateLimitRetries {
		return retryGiveUp
	}
	return retryAgain
}

// IsAbsoluteLimit reports whether a 413 response is a hard quota violation
// rather than a transient rate limit. Anything that cannot positively be
// identified as transient counts as absolute: a non-mapping body, a missing
// Retry-After header, a missing or non-mapping overLimit section, or an
// overLimit message that does not mention an exceeded rate.
func IsAbsoluteLimit(resp *transport.Response, parsedBody any) bool {
	m, ok := parsedBody.(map[string]any)
	if !ok {
		return true
	}
	if !resp.Has("retry-after") {
		return true
	}
	over, ok := m["overLimit"].(map[string]any)
	if !ok || len(over) == 0 {
		return true
	}
	msg, _ := over["message"].(string)
	return !strings.Contains(msg, "exceed")
}

// retryAfter reads the server-requested delay in whole seconds. Unparseable
// or negative values fall back to one second.
func retryAfter(resp *transport.Response) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(resp.Header("retry-after")))
	if err != nil || secs < 0 {
		secs = 1
	}
	return time.Duration(secs) * time.Second
}
