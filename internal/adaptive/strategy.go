package adaptive

import (
	"fmt"
	"strings"

	"github.com/questdeck/questdeck/internal/catalog"
)

// Subject-history override thresholds.
const (
	weakSubjectMaxScore   = 70.0
	strongSubjectMinScore = 90.0
)

// DetermineStrategy computes the adaptation for the rubrics of nextStage.
// It starts from the base template for the current unit's level, then
// applies three override rules in fixed order, each appending a line to
// Reasoning. The order matters: subject-history overrides run before the
// velocity override, so on a shared field the later (velocity) write wins
// for learners who trigger both.
func DetermineStrategy(m Metrics, p *Profile, level Level, nextStage catalog.Stage, nextSubject catalog.Subject) *Strategy {
	s := baseTemplate(level)
	s.Reasoning = fmt.Sprintf("%s base template: score %d with %d attempt(s) on %s %s",
		level, m.Score, m.Attempts, catalog.SubjectDisplayName(m.Subject), catalog.StageDisplayName(m.Stage))

	subjStats, hasHistory := p.BySubject[nextSubject]
	hasHistory = hasHistory && subjStats.Units > 0

	// Weak-subject escalation.
	if hasHistory && subjStats.MeanScore < weakSubjectMaxScore && level != LevelStruggling {
		escalateSupport(s)
		appendReason(s, fmt.Sprintf("escalated support: %s average %.0f is below %.0f",
			catalog.SubjectDisplayName(nextSubject), subjStats.MeanScore, weakSubjectMaxScore))
	}

	// Strong-subject de-escalation, regardless of current-unit level.
	if hasHistory && subjStats.MeanScore >= strongSubjectMinScore {
		deescalateSupport(s)
		appendReason(s, fmt.Sprintf("reduced support: %s average %.0f is at or above %.0f",
			catalog.SubjectDisplayName(nextSubject), subjStats.MeanScore, strongSubjectMinScore))
	}

	// Velocity adjustments.
	switch {
	case p.Velocity == VelocitySlow && level != LevelStruggling:
		s.SuggestBreaks = true
		s.Feedback = FeedbackPerItem
		appendReason(s, "slow pace: breaks suggested and feedback moved to per-item")
	case p.Velocity == VelocityFast && level != LevelAdvanced:
		s.Practice = reducePractice(s.Practice)
		appendReason(s, "fast pace: practice quantity reduced")
	}

	return s
}

// StandardStrategy is the fallback applied when strategy computation
// fails internally. The caller must record the fallback as a warning so
// regressions stay observable.
func StandardStrategy(reason string) *Strategy {
	s := baseTemplate(LevelDeveloping)
	s.Reasoning = "fallback to standard strategy: " + reason
	return s
}

func baseTemplate(level Level) *Strategy {
	switch level {
	case LevelStruggling:
		return &Strategy{
			Complexity:     OrdinalSimplified,
			Vocabulary:     OrdinalSimplified,
			ConceptDensity: OrdinalSimplified,
			Support:        SupportStepByStep,
			Hints:          HintsAlways,
			Feedback:       FeedbackPerItem,
			Tone:           ToneReassuring,
			Focus:          FocusFundamentals,
			Practice:       PracticeExtended,
			TimeLimitSec:   0,
			SuggestBreaks:  true,
		}
	case LevelProficient:
		return &Strategy{
			Complexity:     OrdinalEnriched,
			Vocabulary:     OrdinalStandard,
			ConceptDensity: OrdinalStandard,
			Support:        SupportMinimal,
			Hints:          HintsOnRequest,
			Feedback:       FeedbackPerSection,
			Tone:           ToneEncouraging,
			Focus:          FocusCreative,
			Practice:       PracticeStandard,
		}
	case LevelAdvanced:
		return &Strategy{
			Complexity:     OrdinalEnriched,
			Vocabulary:     OrdinalEnriched,
			ConceptDensity: OrdinalEnriched,
			Support:        SupportMinimal,
			Hints:          HintsNone,
			Feedback:       FeedbackEndOfUnit,
			Tone:           ToneCelebratory,
			Focus:          FocusExtension,
			Practice:       PracticeReduced,
		}
	default: // developing
		return &Strategy{
			Complexity:     OrdinalStandard,
			Vocabulary:     OrdinalStandard,
			ConceptDensity: OrdinalStandard,
			Support:        SupportModerate,
			Hints:          HintsOnRequest,
			Feedback:       FeedbackPerSection,
			Tone:           ToneEncouraging,
			Focus:          FocusApplication,
			Practice:       PracticeStandard,
		}
	}
}

// escalateSupport moves support one notch toward step-by-step and forces
// always-available hints with at least moderate guidance.
func escalateSupport(s *Strategy) {
	switch s.Support {
	case SupportMinimal:
		s.Support = SupportModerate
	case SupportModerate:
		s.Support = SupportStepByStep
	}
	s.Hints = HintsAlways
}

// deescalateSupport moves support one notch toward minimal and hints one
// notch toward none.
func deescalateSupport(s *Strategy) {
	switch s.Support {
	case SupportStepByStep:
		s.Support = SupportModerate
	case SupportModerate:
		s.Support = SupportMinimal
	}
	switch s.Hints {
	case HintsAlways:
		s.Hints = HintsOnRequest
	case HintsOnRequest:
		s.Hints = HintsNone
	}
}

func reducePractice(q PracticeQuantity) PracticeQuantity {
	switch q {
	case PracticeExtended:
		return PracticeStandard
	default:
		return PracticeReduced
	}
}

func appendReason(s *Strategy, line string) {
	if s.Reasoning == "" {
		s.Reasoning = line
		return
	}
	s.Reasoning = strings.Join([]string{s.Reasoning, line}, "; ")
}
