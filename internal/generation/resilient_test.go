package generation

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// replays a scripted sequence of outcomes
type scriptedGenerator struct {
	errs  []error
	calls int
}

func (s *scriptedGenerator) Generate(_ context.Context, _ *Request) (*Response, error) {
	s.calls++

	if s.calls <= len(s.errs) && s.errs[s.calls-1] != nil {
		return nil, s.errs[s.calls-1]
	}

	return &Response{Body: []byte(`{"ok":true}`)}, nil
}

func newTestResilient(next Generator, attempts int) (*Resilient, *[]time.Duration) {
	var slept []time.Duration

	r := NewResilient(next, RetryPolicy{
		MaxAttempts: attempts,
		BaseDelay:   100 * time.Millisecond,
		MaxDelay:    250 * time.Millisecond,
	}, nil)

	r.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	return r, &slept
}

func TestResilient_RetriesTransientFailures(t *testing.T) {
	next := &scriptedGenerator{errs: []error{
		&Error{Kind: KindNetwork},
		&Error{Kind: KindUpstream, Status: http.StatusBadGateway},
	}}

	r, slept := newTestResilient(next, 3)

	resp, err := r.Generate(context.Background(), &Request{Prompt: "weather"})
	require.NoError(t, err)

	assert.NotNil(t, resp)
	assert.Equal(t, 3, next.calls)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, *slept)
}

func TestResilient_StopsAtMaxAttempts(t *testing.T) {
	next := &scriptedGenerator{errs: []error{
		&Error{Kind: KindUpstream, Status: 503},
		&Error{Kind: KindUpstream, Status: 503},
		&Error{Kind: KindUpstream, Status: 503},
		&Error{Kind: KindUpstream, Status: 503},
	}}

	r, slept := newTestResilient(next, 4)

	_, err := r.Generate(context.Background(), &Request{Prompt: "weather"})

	assert.ErrorIs(t, err, ErrUpstream)
	assert.Equal(t, 4, next.calls)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 250 * time.Millisecond}, *slept)
}

func TestResilient_NeverRetriesPermanentFailures(t *testing.T) {
	permanent := []error{
		&Error{Kind: KindInvalidRequest},
		&Error{Kind: KindMalformedResponse},
		&Error{Kind: KindCancelled},
		&Error{Kind: KindUpstream, Status: http.StatusBadRequest},
	}

	for _, failure := range permanent {
		next := &scriptedGenerator{errs: []error{failure}}
		r, slept := newTestResilient(next, 5)

		_, err := r.Generate(context.Background(), &Request{Prompt: "weather"})

		assert.ErrorIs(t, err, failure)
		assert.Equal(t, 1, next.calls, "kind %s", KindOf(failure))
		assert.Empty(t, *slept)
	}
}

func TestResilient_RetriesTooManyRequests(t *testing.T) {
	next := &scriptedGenerator{errs: []error{&Error{Kind: KindUpstream, Status: http.StatusTooManyRequests}}}
	r, _ := newTestResilient(next, 2)

	_, err := r.Generate(context.Background(), &Request{Prompt: "weather"})

	assert.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestResilient_CancelledWhileBackingOff(t *testing.T) {
	next := &scriptedGenerator{errs: []error{&Error{Kind: KindNetwork}}}

	r := NewResilient(next, RetryPolicy{MaxAttempts: 3, BaseDelay: time.Hour}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	_, err := r.Generate(ctx, &Request{Prompt: "weather"})

	assert.ErrorIs(t, err, ErrCancelled)
	assert.Equal(t, 1, next.calls)
}

func TestResilient_RateLimiterHonorsCancellation(t *testing.T) {
	next := &scriptedGenerator{}
	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	r := NewResilient(next, RetryPolicy{MaxAttempts: 1}, limiter)

	_, err := r.Generate(context.Background(), &Request{Prompt: "first"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = r.Generate(ctx, &Request{Prompt: "second"})

	assert.ErrorIs(t, err, ErrCancelled)
	assert.Equal(t, 1, next.calls)
}
