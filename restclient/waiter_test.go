package restclient

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	resterrors "github.com/mkaraca/restkit/errors"
)

// fakeClock drives the waiter's injected clock: every sleep advances time
// by the requested amount.
func fakeClock(c *Client) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	c.sleep = func(d time.Duration) { now = now.Add(d) }
}

type scriptedChecker struct {
	results []bool
	err     error
	calls   int
}

func (s *scriptedChecker) IsResourceDeleted(_ context.Context, _ string) (bool, error) {
	s.calls++
	if s.err != nil {
		return false, s.err
	}
	i := s.calls - 1
	if i >= len(s.results) {
		i = len(s.results) - 1
	}
	return s.results[i], nil
}

func TestWaitForResourceDeletion(t *testing.T) {
	checker := &scriptedChecker{results: []bool{false, false, true}}
	c := newTestClient(t, &fakeTransport{},
		WithResourceChecker(checker), WithResourceType("server"))
	fakeClock(c)

	if err := c.WaitForResourceDeletion(context.Background(), "42"); err != nil {
		t.Fatalf("wait failed: %v", err)
	}
	if checker.calls != 3 {
		t.Errorf("calls = %d, want 3", checker.calls)
	}
}

func TestWaitForResourceDeletionTimeout(t *testing.T) {
	checker := &scriptedChecker{results: []bool{false}}
	c := newTestClient(t, &fakeTransport{},
		WithResourceChecker(checker), WithResourceType("server"))
	c.cfg.BuildTimeout = 3 * time.Second
	c.cfg.BuildInterval = time.Second
	fakeClock(c)

	err := c.WaitForResourceDeletion(context.Background(), "42")
	if !resterrors.IsTimeout(err) {
		t.Fatalf("err = %v, want timeout", err)
	}
	if !strings.Contains(err.Error(), "server 42") {
		t.Errorf("timeout message must name the resource: %v", err)
	}
	// Probes at t=0s, 1s, 2s, 3s; the 3s probe trips the budget check.
	if checker.calls != 4 {
		t.Errorf("calls = %d, want 4", checker.calls)
	}
}

func TestWaitForResourceDeletionNoChecker(t *testing.T) {
	c := newTestClient(t, &fakeTransport{})

	err := c.WaitForResourceDeletion(context.Background(), "42")
	if !resterrors.IsKind(err, resterrors.KindCapabilityNotImplemented) {
		t.Fatalf("err = %v, want capability not implemented", err)
	}
}

func TestWaitForResourceDeletionCheckerError(t *testing.T) {
	boom := fmt.Errorf("probe failed")
	checker := &scriptedChecker{err: boom}
	c := newTestClient(t, &fakeTransport{}, WithResourceChecker(checker))
	fakeClock(c)

	if err := c.WaitForResourceDeletion(context.Background(), "42"); err != boom {
		t.Fatalf("err = %v, want the probe error", err)
	}
}

func TestWaitForResourceDeletionCanceled(t *testing.T) {
	checker := &scriptedChecker{results: []bool{false}}
	c := newTestClient(t, &fakeTransport{}, WithResourceChecker(checker))
	c.cfg.BuildTimeout = time.Hour
	fakeClock(c)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.WaitForResourceDeletion(ctx, "42"); err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
