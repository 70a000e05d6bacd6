package rubric

import (
	"fmt"

	"github.com/questdeck/questdeck/internal/adaptive"
	"github.com/questdeck/questdeck/internal/catalog"
	"github.com/questdeck/questdeck/internal/curriculum"
)

// StoryContext is the narrowed projection of the narrative context for
// one (stage, subject) pair. Derived once at build time; the validator
// recomputes it from the source narrative to detect drift.
type StoryContext struct {
	// Setup is the narrative setup line (premise + mission).
	Setup string `json:"setup"`

	// CareerContext is the subject's narrative bridge into the story.
	CareerContext string `json:"career_context"`

	// WorkplaceSetting is the stage's workplace-setting string.
	WorkplaceSetting string `json:"workplace_setting"`

	// CompanionVoice is the companion's teaching-voice string.
	CompanionVoice string `json:"companion_voice"`
}

// GenerationPrompt is the instruction triple handed to the content
// synthesizer. It is a pure function of (storyContext, skill, shape):
// rebuilding with identical inputs yields byte-identical text.
type GenerationPrompt struct {
	System   string            `json:"system"`
	User     string            `json:"user"`
	Bindings map[string]string `json:"bindings"`
}

// AdaptationPhase is the tri-state lifecycle of a rubric's adaptation
// slot. The reference design overloaded null for both "first stage never
// needs one" and "later stage, not computed yet"; these are distinct
// states here.
type AdaptationPhase string

const (
	// AdaptationNotNeeded marks first-stage rubrics: no prior unit
	// exists, so no strategy will ever be written.
	AdaptationNotNeeded AdaptationPhase = "not-needed"

	// AdaptationPending marks later-stage rubrics waiting for the prior
	// stage to complete.
	AdaptationPending AdaptationPhase = "pending"

	// AdaptationComputed marks rubrics whose strategy has been written.
	AdaptationComputed AdaptationPhase = "computed"
)

// AdaptationState pairs the phase with the strategy, which is non-nil
// exactly when the phase is AdaptationComputed.
type AdaptationState struct {
	Phase    AdaptationPhase    `json:"phase"`
	Strategy *adaptive.Strategy `json:"strategy,omitempty"`
}

// DataRubric is the per-(stage, subject) content specification. Exactly
// one exists per pair for a session. Created once at session start;
// thereafter the content and performance writes happen at most once, and
// the adaptation slot is rewritten by prior-stage completions until
// content is generated.
type DataRubric struct {
	SessionID string          `json:"session_id"`
	Stage     catalog.Stage   `json:"stage"`
	Subject   catalog.Subject `json:"subject"`

	Skill  curriculum.SkillReference `json:"skill"`
	Story  StoryContext              `json:"story"`
	Shape  ContentShape              `json:"shape"`
	Prompt GenerationPrompt          `json:"prompt"`

	Adaptation AdaptationState `json:"adaptation"`

	// Generated is nil until the content synthesizer returns a payload
	// that passes shape validation.
	Generated *GeneratedContent `json:"generated,omitempty"`

	// Performance is nil until the learner completes this unit.
	Performance *adaptive.Metrics `json:"performance,omitempty"`
}

// Key returns the (stage, subject) pair as a stable string, used for
// duplicate detection and error messages.
func (r *DataRubric) Key() string {
	return fmt.Sprintf("%s/%s", r.Stage, r.Subject)
}
