package synth

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// retrier reissues failed synthesis calls. Rate limits, 5xx responses
// and transport errors get the full attempt budget with exponential
// backoff; a payload that fails shape validation gets exactly one
// reissue, because a second malformed payload usually means the prompt
// or schema is wrong rather than the connection.
type retrier struct {
	next Provider
	cfg  RetryConfig
}

// WithRetry wraps a Provider with the retry policy above.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &retrier{next: p, cfg: cfg}
}

func (r *retrier) Generate(ctx context.Context, req Request) (*Response, error) {
	budget := retryBudget{invalid: 1}

	var err error
	for attempt := 0; ; attempt++ {
		var resp *Response
		resp, err = r.next.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if attempt+1 >= r.cfg.MaxAttempts || !budget.allow(err) {
			break
		}
		if werr := sleepCtx(ctx, r.delay(attempt, err)); werr != nil {
			return nil, werr
		}
	}
	return nil, err
}

func (r *retrier) ModelID() string {
	return r.next.ModelID()
}

// retryBudget tracks how many reissues each failure class has left
// within a single Generate call.
type retryBudget struct {
	invalid int
}

func (b *retryBudget) allow(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Truncation will not clear on its own; the token cap needs raising.
	var truncated *ErrMaxTokensExceeded
	if errors.As(err, &truncated) {
		return false
	}

	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		if b.invalid == 0 {
			return false
		}
		b.invalid--
		return true
	}

	// Everything else, including rate limits and plain network errors,
	// is assumed transient.
	return true
}

// delay computes how long to wait before the next attempt. A rate limit
// carrying a server-provided Retry-After wins over the backoff curve.
func (r *retrier) delay(attempt int, err error) time.Duration {
	var limited *ErrRateLimit
	if errors.As(err, &limited) && limited.RetryAfter > 0 {
		return limited.RetryAfter
	}

	d := float64(r.cfg.InitialWait)
	for range attempt {
		d *= r.cfg.Multiplier
	}
	d = min(d, float64(r.cfg.MaxWait))

	// Spread concurrent sessions apart so they do not reissue in lockstep.
	d *= 0.8 + 0.4*rand.Float64()

	return time.Duration(max(d, 0))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
