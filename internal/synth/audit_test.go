package synth

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

type memRecorder struct {
	records []CallRecord
}

func (m *memRecorder) RecordSynthCall(_ context.Context, rec CallRecord) error {
	m.records = append(m.records, rec)
	return nil
}

func TestAudit_RecordsSuccess(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"ok":true}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 34},
	})
	rec := &memRecorder{}
	p := WithAudit(mock, "mock", rec)

	ctx := WithPurpose(context.Background(), "rubric-content")
	if _, err := p.Generate(ctx, Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rec.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(rec.records))
	}
	r := rec.records[0]
	if !r.Success {
		t.Error("expected Success")
	}
	if r.Purpose != "rubric-content" {
		t.Errorf("Purpose = %q, want rubric-content", r.Purpose)
	}
	if r.InputTokens != 12 || r.OutputTokens != 34 {
		t.Errorf("tokens = %d/%d, want 12/34", r.InputTokens, r.OutputTokens)
	}
	if r.Provider != "mock" {
		t.Errorf("Provider = %q, want the backend name, not a model id", r.Provider)
	}
	if r.Model != "mock" {
		t.Errorf("Model = %q, want mock", r.Model)
	}
}

func TestAudit_RecordsFailure(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Err: &ErrProviderUnavailable{Err: errors.New("down")},
	})
	rec := &memRecorder{}
	p := WithAudit(mock, "mock", rec)

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}

	if len(rec.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(rec.records))
	}
	r := rec.records[0]
	if r.Success {
		t.Error("expected failure record")
	}
	if r.ErrorMessage == "" {
		t.Error("expected error message in record")
	}
	if r.Purpose != "unknown" {
		t.Errorf("Purpose = %q, want unknown without a purpose label", r.Purpose)
	}
}
