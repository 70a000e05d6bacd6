package store

import (
	"context"
	"errors"
	"time"

	"github.com/questdeck/questdeck/internal/adaptive"
	"github.com/questdeck/questdeck/internal/narrative"
	"github.com/questdeck/questdeck/internal/rubric"
	"github.com/questdeck/questdeck/internal/synth"
)

// ErrNotFound is returned when a session or rubric does not exist.
var ErrNotFound = errors.New("not found")

// AuditEvent is one entry in a session's append-only audit trail:
// validation warnings, strategy fallbacks, and other events worth keeping
// for later debugging of narrative drift.
type AuditEvent struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Kind      string    `json:"kind"` // "warning", "fallback", "validation"
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Repo is the storage boundary the orchestrator depends on. The core
// assumes at most one writer per session id at any time; locking beyond
// that is the host's concern.
type Repo interface {
	// SaveSession persists a session's narrative context.
	SaveSession(ctx context.Context, nc *narrative.Context) error

	// GetSession loads a session's narrative context.
	GetSession(ctx context.Context, sessionID string) (*narrative.Context, error)

	// SaveRubrics persists a freshly built rubric set.
	SaveRubrics(ctx context.Context, rubrics []*rubric.DataRubric) error

	// GetRubrics loads the full rubric set for a session, in stage-major
	// build order.
	GetRubrics(ctx context.Context, sessionID string) ([]*rubric.DataRubric, error)

	// UpdateRubric persists an adaptation or generated-content write.
	UpdateRubric(ctx context.Context, r *rubric.DataRubric) error

	// CompleteRubric persists a performance write and assigns the
	// rubric's completion sequence number within its session.
	CompleteRubric(ctx context.Context, r *rubric.DataRubric) error

	// CompletedMetrics returns the metrics of all completed units for a
	// session, in completion order.
	CompletedMetrics(ctx context.Context, sessionID string) ([]adaptive.Metrics, error)

	// AppendAudit records an audit event. The event's ID and CreatedAt
	// are assigned by the store.
	AppendAudit(ctx context.Context, ev AuditEvent) error

	// ListAudit returns a session's audit trail in append order.
	ListAudit(ctx context.Context, sessionID string) ([]AuditEvent, error)

	// RecordSynthCall records one synthesizer call (synth.CallRecorder).
	RecordSynthCall(ctx context.Context, rec synth.CallRecord) error
}
