package generation

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"
)

type RetryPolicy struct {
	MaxAttempts int           // total attempts, including the first; <1 means 1
	BaseDelay   time.Duration // delay before the second attempt, doubled after each retry
	MaxDelay    time.Duration // upper bound for a single delay; 0 means no bound
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    5 * time.Second,
	}
}

// wraps a Generator with client-side rate limiting and bounded retries of
// transient failures; the wrapped client itself never retries
type Resilient struct {
	next    Generator
	policy  RetryPolicy
	limiter *rate.Limiter
	sleep   func(ctx context.Context, d time.Duration) error
}

// limiter may be nil
func NewResilient(next Generator, policy RetryPolicy, limiter *rate.Limiter) *Resilient {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}

	return &Resilient{
		next:    next,
		policy:  policy,
		limiter: limiter,
		sleep:   sleepContext,
	}
}

func (r *Resilient) Generate(ctx context.Context, req *Request) (*Response, error) {
	for attempt := 1; ; attempt++ {
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return nil, transportError(ctx, OpGenerate, err)
			}
		}

		resp, err := r.next.Generate(ctx, req)
		if err == nil || !Retryable(err) || attempt >= r.policy.MaxAttempts {
			return resp, err
		}

		if err := r.sleep(ctx, r.delay(attempt)); err != nil {
			return nil, transportError(ctx, OpGenerate, err)
		}
	}
}

// backoff before attempt+1
func (r *Resilient) delay(attempt int) time.Duration {
	d := r.policy.BaseDelay << (attempt - 1)
	if d < 0 || (r.policy.MaxDelay > 0 && d > r.policy.MaxDelay) {
		return r.policy.MaxDelay
	}

	return d
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return context.DeadlineExceeded
		}
		return context.Canceled
	case <-timer.C:
		return nil
	}
}
