package synth

import (
	"encoding/json"
	"fmt"
	"time"
)

// ErrInvalidResponse means the synthesizer produced a payload that does
// not conform to the rubric's shape schema. The payload is kept so it
// can be logged or audited.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("synthesized payload rejected: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded means the payload was cut off at the token cap
// and is almost certainly unparseable JSON.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "synthesized payload truncated at the token cap"
}

// ErrRateLimit is a 429 from the backend. RetryAfter carries the
// server's hint when one was given, zero otherwise.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("synthesizer rate limited, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("synthesizer rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers backend outages and transport failures.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "synthesizer unavailable"
	}
	return fmt.Sprintf("synthesizer unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }
