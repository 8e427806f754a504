package generation

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// classifies why a generate or upload call failed
type Kind string

const (
	KindInvalidRequest    Kind = "invalid_request"
	KindNetwork           Kind = "network_error"
	KindUpstream          Kind = "upstream_error"
	KindMalformedResponse Kind = "malformed_response"
	KindCancelled         Kind = "cancelled"
)

const (
	OpGenerate = "generate"
	OpUpload   = "upload"
)

// sentinels for errors.Is; they match any *Error of the same kind
var (
	ErrInvalidRequest    = &Error{Kind: KindInvalidRequest}
	ErrNetwork           = &Error{Kind: KindNetwork}
	ErrUpstream          = &Error{Kind: KindUpstream}
	ErrMalformedResponse = &Error{Kind: KindMalformedResponse}
	ErrCancelled         = &Error{Kind: KindCancelled}
)

// the single error type surfaced by the client
type Error struct {
	Op     string
	Kind   Kind
	Status int    // upstream HTTP status, set for KindUpstream only
	Body   string // truncated upstream body, for diagnostics
	Err    error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}

	if e.Kind == KindUpstream {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Kind == e.Kind && (t.Op == "" || t.Op == e.Op) && (t.Status == 0 || t.Status == e.Status)
}

// reports whether a network failure was caused by a deadline
func (e *Error) Timeout() bool {
	if e.Kind != KindNetwork || e.Err == nil {
		return false
	}

	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// returns the kind of a generation error, or "" for foreign errors
func KindOf(err error) Kind {
	var genErr *Error
	if errors.As(err, &genErr) {
		return genErr.Kind
	}

	return ""
}

// reports whether a caller may reasonably retry the call unchanged
func Retryable(err error) bool {
	var genErr *Error
	if !errors.As(err, &genErr) {
		return false
	}

	switch genErr.Kind {
	case KindNetwork:
		return true
	case KindUpstream:
		return genErr.Status >= 500 || genErr.Status == 429
	default:
		return false
	}
}

func invalidRequest(op string, err error) *Error {
	return &Error{Op: op, Kind: KindInvalidRequest, Err: err}
}

func malformed(op string, err error) *Error {
	return &Error{Op: op, Kind: KindMalformedResponse, Err: err}
}

// classifies a transport failure, honoring caller cancellation
func transportError(ctx context.Context, op string, err error) *Error {
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return &Error{Op: op, Kind: KindCancelled, Err: err}
	}

	return &Error{Op: op, Kind: KindNetwork, Err: err}
}
