package rubric

import (
	"fmt"

	"github.com/questdeck/questdeck/internal/catalog"
	"github.com/questdeck/questdeck/internal/curriculum"
	"github.com/questdeck/questdeck/internal/narrative"
)

// MissingFieldError reports a narrative context that lacks a required
// field for a (stage, subject) projection. This is a configuration
// defect in the upstream narrative, not learner-triggerable input, so
// the builder fails fast instead of substituting an empty string.
type MissingFieldError struct {
	Field   string
	Stage   catalog.Stage
	Subject catalog.Subject
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("narrative missing %s for stage %q subject %q", e.Field, e.Stage, e.Subject)
}

// Builder constructs the full rubric set for a session. One Builder is
// created per process (or per test) and passed to the orchestrator
// explicitly; there is no shared instance.
type Builder struct {
	stages   []catalog.Stage
	subjects []catalog.Subject
}

// NewBuilder creates a Builder over the given stage and subject catalogs.
// Empty catalogs are a caller bug and rejected immediately.
func NewBuilder(stages []catalog.Stage, subjects []catalog.Subject) (*Builder, error) {
	if len(stages) == 0 {
		return nil, fmt.Errorf("stage catalog is empty")
	}
	if len(subjects) == 0 {
		return nil, fmt.Errorf("subject catalog is empty")
	}
	return &Builder{stages: stages, subjects: subjects}, nil
}

// Stages returns the builder's stage catalog in delivery order.
func (b *Builder) Stages() []catalog.Stage { return b.stages }

// Subjects returns the builder's subject catalog.
func (b *Builder) Subjects() []catalog.Subject { return b.subjects }

// BuildAll produces one rubric per (stage, subject) pair, in stage-major
// order. It constructs value objects only: no storage, no synthesizer.
func (b *Builder) BuildAll(nc *narrative.Context, skills map[catalog.Subject]curriculum.SkillReference) ([]*DataRubric, error) {
	rubrics := make([]*DataRubric, 0, len(b.stages)*len(b.subjects))

	for _, stage := range b.stages {
		for _, subject := range b.subjects {
			skill, ok := skills[subject]
			if !ok {
				return nil, fmt.Errorf("no skill reference for subject %q", subject)
			}
			r, err := b.BuildOne(nc, stage, subject, skill)
			if err != nil {
				return nil, err
			}
			rubrics = append(rubrics, r)
		}
	}

	return rubrics, nil
}

// BuildOne produces the rubric for a single (stage, subject) pair.
func (b *Builder) BuildOne(nc *narrative.Context, stage catalog.Stage, subject catalog.Subject, skill curriculum.SkillReference) (*DataRubric, error) {
	story, err := ProjectStory(nc, stage, subject)
	if err != nil {
		return nil, err
	}

	shape, err := ShapeFor(stage, b.subjects)
	if err != nil {
		return nil, err
	}

	r := &DataRubric{
		SessionID:  nc.SessionID,
		Stage:      stage,
		Subject:    subject,
		Skill:      skill,
		Story:      story,
		Shape:      shape,
		Prompt:     ComposePrompt(story, skill, shape),
		Adaptation: initialAdaptation(b.stages, stage),
	}
	return r, nil
}

// ProjectStory narrows the narrative context to one (stage, subject)
// pair. The projection is total: a missing workplace setting, subject
// bridge, or teaching voice is a *MissingFieldError, never silently
// replaced by an empty string. The validator calls this too, so any
// stored story context can be compared field-for-field with its source.
func ProjectStory(nc *narrative.Context, stage catalog.Stage, subject catalog.Subject) (StoryContext, error) {
	setting, ok := nc.CareerSetting(stage)
	if !ok {
		return StoryContext{}, &MissingFieldError{Field: "career setting", Stage: stage, Subject: subject}
	}
	bridge, ok := nc.SubjectBridge(subject)
	if !ok {
		return StoryContext{}, &MissingFieldError{Field: "subject bridge", Stage: stage, Subject: subject}
	}
	if nc.Companion.Teaching == "" {
		return StoryContext{}, &MissingFieldError{Field: "companion teaching voice", Stage: stage, Subject: subject}
	}
	if nc.Premise == "" || nc.Mission == "" {
		return StoryContext{}, &MissingFieldError{Field: "premise/mission", Stage: stage, Subject: subject}
	}

	return StoryContext{
		Setup:            nc.Premise + " " + nc.Mission,
		CareerContext:    bridge,
		WorkplaceSetting: setting,
		CompanionVoice:   nc.Companion.Teaching,
	}, nil
}

// initialAdaptation distinguishes "never needed" from "not yet computed":
// the first stage has no prior unit so nothing will ever be written; every
// later stage waits for the prior stage to complete.
func initialAdaptation(stages []catalog.Stage, stage catalog.Stage) AdaptationState {
	if len(stages) > 0 && stages[0] == stage {
		return AdaptationState{Phase: AdaptationNotNeeded}
	}
	return AdaptationState{Phase: AdaptationPending}
}
