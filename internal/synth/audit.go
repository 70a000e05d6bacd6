package synth

import (
	"context"
	"fmt"
	"os"
	"time"
)

// CallRecord captures one synthesizer call for the audit trail.
type CallRecord struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// CallRecorder persists synthesizer call records. The store implements it.
type CallRecorder interface {
	RecordSynthCall(ctx context.Context, rec CallRecord) error
}

// AuditProvider is a decorator that records every synthesizer call.
type AuditProvider struct {
	inner    Provider
	backend  string
	recorder CallRecorder
}

// WithAudit wraps a Provider with call recording. backend names the
// underlying service ("anthropic", "openai", "gemini", "mock") so the
// audit trail distinguishes it from the per-call model id.
func WithAudit(p Provider, backend string, recorder CallRecorder) Provider {
	return &AuditProvider{inner: p, backend: backend, recorder: recorder}
}

func (a *AuditProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := a.inner.Generate(ctx, req)

	rec := CallRecord{
		Provider:  a.backend,
		Model:     a.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}

	if resp != nil {
		rec.InputTokens = resp.Usage.InputTokens
		rec.OutputTokens = resp.Usage.OutputTokens
		rec.Model = resp.Model
	}
	if err != nil {
		rec.ErrorMessage = err.Error()
	}

	// Record the call but don't fail the request if recording fails.
	if recErr := a.recorder.RecordSynthCall(ctx, rec); recErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record synthesizer call: %v\n", recErr)
	}

	return resp, err
}

func (a *AuditProvider) ModelID() string {
	return a.inner.ModelID()
}
