package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// The provider fails in exactly three distinguishable ways. Callers dispatch
// with errors.Is; no failure is retried.
var (
	ErrRateLimited = errors.New("ai: rate limited")
	ErrTimedOut    = errors.New("ai: request timed out")
	ErrUnavailable = errors.New("ai: service unavailable")
)

// classify folds a transport-level error into the closed failure set.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimedOut
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return ErrTimedOut
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
