package adaptive

import (
	"strings"
	"testing"

	"github.com/questdeck/questdeck/internal/catalog"
)

func neutralProfile() *Profile {
	return BuildProfile("s1", nil)
}

func TestBaseTemplates(t *testing.T) {
	tests := []struct {
		level      Level
		complexity Ordinal
		support    SupportLevel
		hints      HintAvailability
		practice   PracticeQuantity
		breaks     bool
	}{
		{LevelStruggling, OrdinalSimplified, SupportStepByStep, HintsAlways, PracticeExtended, true},
		{LevelDeveloping, OrdinalStandard, SupportModerate, HintsOnRequest, PracticeStandard, false},
		{LevelProficient, OrdinalEnriched, SupportMinimal, HintsOnRequest, PracticeStandard, false},
		{LevelAdvanced, OrdinalEnriched, SupportMinimal, HintsNone, PracticeReduced, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			m := Metrics{Score: 80, Attempts: 2, Stage: catalog.StageLearn, Subject: catalog.SubjectMath}
			s := DetermineStrategy(m, neutralProfile(), tt.level, catalog.StageExperience, catalog.SubjectMath)

			if s.Complexity != tt.complexity {
				t.Errorf("Complexity = %s, want %s", s.Complexity, tt.complexity)
			}
			if s.Support != tt.support {
				t.Errorf("Support = %s, want %s", s.Support, tt.support)
			}
			if s.Hints != tt.hints {
				t.Errorf("Hints = %s, want %s", s.Hints, tt.hints)
			}
			if s.Practice != tt.practice {
				t.Errorf("Practice = %s, want %s", s.Practice, tt.practice)
			}
			if s.SuggestBreaks != tt.breaks {
				t.Errorf("SuggestBreaks = %v, want %v", s.SuggestBreaks, tt.breaks)
			}
		})
	}
}

func TestReasoningNamesScoreAndAttempts(t *testing.T) {
	m := Metrics{Score: 95, Attempts: 1, Stage: catalog.StageLearn, Subject: catalog.SubjectMath}
	s := DetermineStrategy(m, neutralProfile(), LevelAdvanced, catalog.StageExperience, catalog.SubjectMath)

	if !strings.Contains(s.Reasoning, "advanced") {
		t.Errorf("Reasoning %q does not name the level", s.Reasoning)
	}
	if !strings.Contains(s.Reasoning, "score 95") {
		t.Errorf("Reasoning %q does not name the score", s.Reasoning)
	}
	if !strings.Contains(s.Reasoning, "1 attempt(s)") {
		t.Errorf("Reasoning %q does not name the attempts", s.Reasoning)
	}
}

func TestWeakSubjectEscalation(t *testing.T) {
	// Reading history averages 65: below the weak-subject threshold.
	p := BuildProfile("s1", []Metrics{
		unit(catalog.SubjectReading, 60, 3, 400),
		unit(catalog.SubjectReading, 70, 3, 400),
	})

	m := Metrics{Score: 85, Attempts: 2, Stage: catalog.StageLearn, Subject: catalog.SubjectMath}
	s := DetermineStrategy(m, p, LevelProficient, catalog.StageExperience, catalog.SubjectReading)

	// Proficient base has minimal support; escalation bumps one notch.
	if s.Support != SupportModerate {
		t.Errorf("Support = %s, want %s", s.Support, SupportModerate)
	}
	if s.Hints != HintsAlways {
		t.Errorf("Hints = %s, want %s", s.Hints, HintsAlways)
	}
	if !strings.Contains(s.Reasoning, "escalated support") {
		t.Errorf("Reasoning %q does not record the escalation", s.Reasoning)
	}
}

func TestWeakSubjectEscalationSkippedWhenStruggling(t *testing.T) {
	p := BuildProfile("s1", []Metrics{unit(catalog.SubjectReading, 50, 5, 700)})

	m := Metrics{Score: 40, Attempts: 6, Stage: catalog.StageLearn, Subject: catalog.SubjectReading}
	s := DetermineStrategy(m, p, LevelStruggling, catalog.StageExperience, catalog.SubjectReading)

	// Struggling base is already maximal; the override must not fire.
	if strings.Contains(s.Reasoning, "escalated support") {
		t.Errorf("escalation applied on top of struggling base: %q", s.Reasoning)
	}
	if s.Support != SupportStepByStep {
		t.Errorf("Support = %s, want %s", s.Support, SupportStepByStep)
	}
}

func TestStrongSubjectDeescalation(t *testing.T) {
	p := BuildProfile("s1", []Metrics{
		unit(catalog.SubjectMath, 92, 1, 250),
		unit(catalog.SubjectMath, 94, 1, 240),
	})

	m := Metrics{Score: 80, Attempts: 2, Stage: catalog.StageLearn, Subject: catalog.SubjectReading}
	s := DetermineStrategy(m, p, LevelProficient, catalog.StageExperience, catalog.SubjectMath)

	if s.Hints != HintsNone {
		t.Errorf("Hints = %s, want %s", s.Hints, HintsNone)
	}
	if !strings.Contains(s.Reasoning, "reduced support") {
		t.Errorf("Reasoning %q does not record the de-escalation", s.Reasoning)
	}
}

func TestSlowVelocityOverride(t *testing.T) {
	// Long unit times force slow velocity without a weak subject average.
	p := BuildProfile("s1", []Metrics{
		unit(catalog.SubjectMath, 75, 2, 800),
		unit(catalog.SubjectReading, 78, 2, 900),
	})
	if p.Velocity != VelocitySlow {
		t.Fatalf("fixture velocity = %s, want %s", p.Velocity, VelocitySlow)
	}

	m := Metrics{Score: 78, Attempts: 2, Stage: catalog.StageLearn, Subject: catalog.SubjectMath}
	s := DetermineStrategy(m, p, LevelProficient, catalog.StageExperience, catalog.SubjectScience)

	if !s.SuggestBreaks {
		t.Error("expected SuggestBreaks for slow velocity")
	}
	if s.Feedback != FeedbackPerItem {
		t.Errorf("Feedback = %s, want %s", s.Feedback, FeedbackPerItem)
	}
	if !strings.Contains(s.Reasoning, "slow pace") {
		t.Errorf("Reasoning %q does not record the velocity override", s.Reasoning)
	}
}

func TestFastVelocityReducesPractice(t *testing.T) {
	p := BuildProfile("s1", []Metrics{
		unit(catalog.SubjectMath, 90, 1, 200),
		unit(catalog.SubjectReading, 88, 1, 220),
	})
	if p.Velocity != VelocityFast {
		t.Fatalf("fixture velocity = %s, want %s", p.Velocity, VelocityFast)
	}

	m := Metrics{Score: 85, Attempts: 2, Stage: catalog.StageLearn, Subject: catalog.SubjectScience}
	s := DetermineStrategy(m, p, LevelProficient, catalog.StageExperience, catalog.SubjectScience)

	if s.Practice != PracticeReduced {
		t.Errorf("Practice = %s, want %s", s.Practice, PracticeReduced)
	}
	if !strings.Contains(s.Reasoning, "fast pace") {
		t.Errorf("Reasoning %q does not record the velocity override", s.Reasoning)
	}
}

func TestFastVelocitySkippedForAdvanced(t *testing.T) {
	p := BuildProfile("s1", []Metrics{unit(catalog.SubjectMath, 95, 1, 200)})

	m := Metrics{Score: 95, Attempts: 1, Stage: catalog.StageLearn, Subject: catalog.SubjectReading}
	s := DetermineStrategy(m, p, LevelAdvanced, catalog.StageExperience, catalog.SubjectReading)

	// Advanced base is already reduced; nothing further to cut.
	if strings.Contains(s.Reasoning, "fast pace") {
		t.Errorf("velocity override applied to advanced learner: %q", s.Reasoning)
	}
}

// Overrides append in declaration order so the reasoning trail reads as
// base, subject history, velocity.
func TestOverrideOrderInReasoning(t *testing.T) {
	p := BuildProfile("s1", []Metrics{
		unit(catalog.SubjectScience, 62, 3, 700),
		unit(catalog.SubjectScience, 66, 3, 800),
	})

	m := Metrics{Score: 80, Attempts: 2, Stage: catalog.StageLearn, Subject: catalog.SubjectMath}
	s := DetermineStrategy(m, p, LevelProficient, catalog.StageExperience, catalog.SubjectScience)

	esc := strings.Index(s.Reasoning, "escalated support")
	slow := strings.Index(s.Reasoning, "slow pace")
	if esc == -1 || slow == -1 {
		t.Fatalf("expected both overrides in reasoning, got %q", s.Reasoning)
	}
	if esc > slow {
		t.Errorf("subject override should precede velocity override: %q", s.Reasoning)
	}
}

func TestStandardStrategy(t *testing.T) {
	s := StandardStrategy("engine exploded")

	if s.Complexity != OrdinalStandard || s.Support != SupportModerate {
		t.Errorf("fallback is not the standard template: %+v", s)
	}
	if !strings.Contains(s.Reasoning, "fallback") || !strings.Contains(s.Reasoning, "engine exploded") {
		t.Errorf("Reasoning = %q, want fallback marker and cause", s.Reasoning)
	}
}
