// Package resilience provides reliability patterns for upstream provider calls.
package resilience

import (
	"context"
	"math"
	"time"
)

// RetryPolicy retries an operation with exponential backoff. It is a small
// reusable policy object injected into each adapter rather than duplicated
// per call site.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// InitialDelay is the wait before the first retry.
	InitialDelay time.Duration
	// MaxDelay caps the backoff.
	MaxDelay time.Duration
	// Multiplier scales the delay each attempt.
	Multiplier float64
	// RetryIf decides whether an error is worth another attempt. A nil
	// predicate retries every non-nil error.
	RetryIf func(err error) bool
	// OnRetry, if set, is called before each retry with the attempt number
	// just failed, its error, and the upcoming delay.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// NewRetryPolicy fills in defaults for zero-valued fields.
func NewRetryPolicy(p RetryPolicy) RetryPolicy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 3
	}
	if p.InitialDelay <= 0 {
		p.InitialDelay = 500 * time.Millisecond
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = 10 * time.Second
	}
	if p.Multiplier <= 0 {
		p.Multiplier = 2.0
	}
	if p.RetryIf == nil {
		p.RetryIf = func(err error) bool { return err != nil }
	}
	return p
}

// Do runs op until it succeeds, exhausts the attempt budget, fails with a
// non-retryable error, or the context is canceled. The last error is returned.
func (p RetryPolicy) Do(ctx context.Context, op func(context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !p.RetryIf(err) {
			return err
		}
		if attempt >= p.MaxAttempts {
			break
		}

		delay := p.delay(attempt)
		if p.OnRetry != nil {
			p.OnRetry(attempt, err, delay)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return lastErr
}

func (p RetryPolicy) delay(attempt int) time.Duration {
	d := time.Duration(float64(p.InitialDelay) * math.Pow(p.Multiplier, float64(attempt-1)))
	if d > p.MaxDelay {
		d = p.MaxDelay
	}
	return d
}
