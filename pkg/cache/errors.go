package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable marks a backend that could not be reached. Redis
// operations failing with it are retried.
var ErrUnavailable = errors.New("cache backend unavailable")

// backoff retries an operation a fixed number of times, doubling the wait
// after each attempt.
type backoff struct {
	attempts int
	first    time.Duration
}

var redisBackoff = backoff{attempts: 3, first: 200 * time.Millisecond}

// do runs fn until it succeeds, fails with an error that does not wrap
// ErrUnavailable, or runs out of attempts. Cancelling ctx stops the wait.
func (b backoff) do(ctx context.Context, fn func() error) error {
	wait := b.first
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !errors.Is(err, ErrUnavailable) || attempt >= b.attempts {
			return err
		}
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		wait *= 2
	}
}
