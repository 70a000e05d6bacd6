package session

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/questdeck/questdeck/internal/adaptive"
	"github.com/questdeck/questdeck/internal/catalog"
	"github.com/questdeck/questdeck/internal/consistency"
	"github.com/questdeck/questdeck/internal/curriculum"
	"github.com/questdeck/questdeck/internal/narrative"
	"github.com/questdeck/questdeck/internal/rubric"
	"github.com/questdeck/questdeck/internal/store"
	"github.com/questdeck/questdeck/internal/synth"
)

// Params carries everything a new session needs from its upstream
// collaborators: the narrative context and one skill per subject.
type Params struct {
	Narrative *narrative.Context
	Skills    map[catalog.Subject]curriculum.SkillReference
}

// Orchestrator sequences the pipeline for a session: build the full
// rubric set once, validate it, and on each unit completion rebuild the
// profile and push a fresh strategy onto the next stage's rubrics.
//
// All dependencies are injected; there is no shared instance. Completion
// events for the same session are serialized internally because profile
// rebuild followed by strategy write is a read-modify-write sequence over
// the rubric set.
type Orchestrator struct {
	builder   *rubric.Builder
	validator *consistency.Validator
	repo      store.Repo
	provider  synth.Provider

	maxTokens   int
	temperature float64

	mu       sync.Mutex
	sessions map[string]*sync.Mutex
}

// New creates an Orchestrator. provider may be nil when content
// synthesis is not used (validation-only tooling).
func New(builder *rubric.Builder, validator *consistency.Validator, repo store.Repo, provider synth.Provider, cfg synth.Config) *Orchestrator {
	return &Orchestrator{
		builder:     builder,
		validator:   validator,
		repo:        repo,
		provider:    provider,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		sessions:    make(map[string]*sync.Mutex),
	}
}

// sessionLock returns the mutex serializing operations for one session.
func (o *Orchestrator) sessionLock(sessionID string) *sync.Mutex {
	o.mu.Lock()
	defer o.mu.Unlock()
	l, ok := o.sessions[sessionID]
	if !ok {
		l = &sync.Mutex{}
		o.sessions[sessionID] = l
	}
	return l
}

// Initialize builds the full rubric set for a session, validates it, and
// persists it. If validation reports any error the session is not
// created and the report is returned alongside ErrValidationFailed.
// Warnings do not block but are retained in the audit trail.
func (o *Orchestrator) Initialize(ctx context.Context, params Params) ([]*rubric.DataRubric, *consistency.Report, error) {
	nc := params.Narrative
	if nc == nil || nc.SessionID == "" {
		return nil, nil, fmt.Errorf("narrative context with session id is required")
	}

	l := o.sessionLock(nc.SessionID)
	l.Lock()
	defer l.Unlock()

	rubrics, err := o.builder.BuildAll(nc, params.Skills)
	if err != nil {
		return nil, nil, fmt.Errorf("build rubrics: %w", err)
	}

	rep := o.validator.Validate(nc, rubrics)
	for _, w := range rep.Warnings {
		o.audit(ctx, nc.SessionID, "warning", w.Code, w.Message)
	}
	if !rep.Valid() {
		for _, e := range rep.Errors {
			o.audit(ctx, nc.SessionID, "validation", e.Code, e.Message)
		}
		return nil, rep, fmt.Errorf("%d error(s): %w", len(rep.Errors), ErrValidationFailed)
	}

	if err := o.repo.SaveSession(ctx, nc); err != nil {
		return nil, nil, fmt.Errorf("save session: %w", err)
	}
	if err := o.repo.SaveRubrics(ctx, rubrics); err != nil {
		return nil, nil, fmt.Errorf("save rubrics: %w", err)
	}

	return rubrics, rep, nil
}

// OnUnitCompleted records a unit's performance exactly once, rebuilds the
// session's performance profile, and pushes a fresh adaptation strategy
// onto every not-yet-generated rubric of the next stage. Each next-stage
// rubric gets its own strategy value: the subject-history override
// differs per subject even though the base template is shared.
func (o *Orchestrator) OnUnitCompleted(ctx context.Context, sessionID string, stage catalog.Stage, subject catalog.Subject, m adaptive.Metrics) error {
	l := o.sessionLock(sessionID)
	l.Lock()
	defer l.Unlock()

	rubrics, err := o.repo.GetRubrics(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("load rubrics: %w", err)
	}

	r := findRubric(rubrics, stage, subject)
	if r == nil {
		return fmt.Errorf("%s/%s in session %q: %w", stage, subject, sessionID, ErrRubricNotFound)
	}
	if r.Performance != nil {
		return fmt.Errorf("%s/%s in session %q: %w", stage, subject, sessionID, ErrAlreadyCompleted)
	}

	m.Stage = stage
	m.Subject = subject
	r.Performance = &m
	if err := o.repo.CompleteRubric(ctx, r); err != nil {
		return fmt.Errorf("record performance: %w", err)
	}

	// Rebuild, never patch: the profile is recomputed from every
	// completed unit so partial updates cannot drift.
	completed, err := o.repo.CompletedMetrics(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("load completed metrics: %w", err)
	}
	profile := adaptive.BuildProfile(sessionID, completed)
	level := adaptive.ClassifyPerformance(m)

	next, ok := catalog.NextStage(o.builder.Stages(), stage)
	if !ok {
		// Last stage: nothing left to adapt.
		return nil
	}

	for _, nr := range rubrics {
		if nr.Stage != next {
			continue
		}
		if nr.Generated != nil {
			// Strategies only bias not-yet-generated content.
			continue
		}
		strategy := o.strategyOrFallback(ctx, sessionID, m, profile, level, next, nr.Subject)
		nr.Adaptation = rubric.AdaptationState{
			Phase:    rubric.AdaptationComputed,
			Strategy: strategy,
		}
		if err := o.repo.UpdateRubric(ctx, nr); err != nil {
			return fmt.Errorf("write strategy to %s: %w", nr.Key(), err)
		}
	}

	return nil
}

// strategyOrFallback computes the strategy, falling back to the standard
// template if the engine fails internally. A learner's session is never
// hard-failed by an adaptation bug, but the fallback is recorded as a
// distinguishable audit event so regressions stay observable.
func (o *Orchestrator) strategyOrFallback(ctx context.Context, sessionID string, m adaptive.Metrics, p *adaptive.Profile, level adaptive.Level, nextStage catalog.Stage, nextSubject catalog.Subject) (s *adaptive.Strategy) {
	defer func() {
		if rec := recover(); rec != nil {
			reason := fmt.Sprintf("strategy computation panicked: %v", rec)
			o.audit(ctx, sessionID, "fallback", "strategy-fallback", reason)
			s = adaptive.StandardStrategy(reason)
		}
	}()
	return adaptive.DetermineStrategy(m, p, level, nextStage, nextSubject)
}

// SynthesizeContent hands a rubric's prompt to the content synthesizer
// and accepts the payload only if it satisfies the rubric's shape.
// Content is written at most once unless regenerate is set.
func (o *Orchestrator) SynthesizeContent(ctx context.Context, sessionID string, stage catalog.Stage, subject catalog.Subject, regenerate bool) (*rubric.GeneratedContent, error) {
	if o.provider == nil {
		return nil, fmt.Errorf("no synthesizer provider configured")
	}

	l := o.sessionLock(sessionID)
	l.Lock()
	defer l.Unlock()

	rubrics, err := o.repo.GetRubrics(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load rubrics: %w", err)
	}
	r := findRubric(rubrics, stage, subject)
	if r == nil {
		return nil, fmt.Errorf("%s/%s in session %q: %w", stage, subject, sessionID, ErrRubricNotFound)
	}
	if r.Generated != nil && !regenerate {
		return nil, fmt.Errorf("%s/%s in session %q: %w", stage, subject, sessionID, ErrAlreadyGenerated)
	}

	purpose := "rubric-content"
	if regenerate {
		purpose = "regenerate"
	}
	resp, err := o.provider.Generate(synth.WithPurpose(ctx, purpose), synth.Request{
		System:      r.Prompt.System,
		User:        r.Prompt.User,
		Schema:      rubric.ContentSchema(r.Shape),
		MaxTokens:   o.maxTokens,
		Temperature: o.temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("synthesize %s: %w", r.Key(), err)
	}

	gc, err := rubric.DecodeGenerated(r.Shape, resp.Content)
	if err != nil {
		return nil, fmt.Errorf("synthesize %s: %w", r.Key(), err)
	}

	// Shape counts are checked again at the data level; the JSON schema
	// alone does not cover hand-injected or mock payloads.
	check := *r
	check.Generated = gc
	if rep := consistency.ValidateGenerated(&check); !rep.Valid() {
		for _, e := range rep.Errors {
			o.audit(ctx, sessionID, "validation", e.Code, e.Message)
		}
		return nil, fmt.Errorf("%s: %d issue(s): %w", r.Key(), len(rep.Errors), ErrShapeMismatch)
	}

	r.Generated = gc
	if err := o.repo.UpdateRubric(ctx, r); err != nil {
		return nil, fmt.Errorf("save generated content: %w", err)
	}
	return gc, nil
}

// Audit returns the session's audit trail.
func (o *Orchestrator) Audit(ctx context.Context, sessionID string) ([]store.AuditEvent, error) {
	return o.repo.ListAudit(ctx, sessionID)
}

func (o *Orchestrator) audit(ctx context.Context, sessionID, kind, code, message string) {
	err := o.repo.AppendAudit(ctx, store.AuditEvent{
		SessionID: sessionID,
		Kind:      kind,
		Code:      code,
		Message:   message,
	})
	if err != nil {
		// The audit trail is best-effort; never fail the operation on it.
		fmt.Fprintf(os.Stderr, "warning: append audit event: %v\n", err)
	}
}

func findRubric(rubrics []*rubric.DataRubric, stage catalog.Stage, subject catalog.Subject) *rubric.DataRubric {
	for _, r := range rubrics {
		if r.Stage == stage && r.Subject == subject {
			return r
		}
	}
	return nil
}
