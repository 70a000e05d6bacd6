package adaptive

import "github.com/questdeck/questdeck/internal/catalog"

// Metrics captures a learner's observed performance on one completed unit.
type Metrics struct {
	Score          int             `json:"score"` // 0-100
	Attempts       int             `json:"attempts"`
	TimeSpentSec   int             `json:"time_spent_sec"`
	StruggledItems []string        `json:"struggled_items,omitempty"`
	Stage          catalog.Stage   `json:"stage"`
	Subject        catalog.Subject `json:"subject"`
}

// Level classifies a single unit's performance.
type Level string

const (
	LevelStruggling Level = "struggling"
	LevelDeveloping Level = "developing"
	LevelProficient Level = "proficient"
	LevelAdvanced   Level = "advanced"
)

// Velocity classifies how quickly the learner is moving through material.
type Velocity string

const (
	VelocitySlow     Velocity = "slow"
	VelocityModerate Velocity = "moderate"
	VelocityFast     Velocity = "fast"
)

// Pattern classifies score consistency across the session so far.
type Pattern string

const (
	PatternConsistent Pattern = "consistent"
	PatternVariable   Pattern = "variable"
	PatternImproving  Pattern = "improving"
	PatternDeclining  Pattern = "declining"
)

// UnitStats aggregates metrics for a rollup bucket (per subject or per stage).
type UnitStats struct {
	Units        int     `json:"units"`
	MeanScore    float64 `json:"mean_score"`
	MeanAttempts float64 `json:"mean_attempts"`
	MeanTimeSec  float64 `json:"mean_time_sec"`
}

// Profile is the session-scoped performance rollup. It is rebuilt from all
// completed units on demand, never patched incrementally.
type Profile struct {
	SessionID    string                          `json:"session_id"`
	Units        int                             `json:"units"`
	MeanScore    float64                         `json:"mean_score"`
	MeanAttempts float64                         `json:"mean_attempts"`
	MeanTimeSec  float64                         `json:"mean_time_sec"`
	BySubject    map[catalog.Subject]UnitStats   `json:"by_subject"`
	ByStage      map[catalog.Stage]UnitStats     `json:"by_stage"`
	Velocity     Velocity                        `json:"velocity"`
	Pattern      Pattern                         `json:"pattern"`
	Strengths    []catalog.Subject               `json:"strengths"`
	Challenges   []catalog.Subject               `json:"challenges"`
}

// Ordinal denotes a three-step intensity scale used by several strategy
// fields (content complexity, vocabulary, concept density).
type Ordinal string

const (
	OrdinalSimplified Ordinal = "simplified"
	OrdinalStandard   Ordinal = "standard"
	OrdinalEnriched   Ordinal = "enriched"
)

// SupportLevel is how much guidance the generated content should build in.
type SupportLevel string

const (
	SupportMinimal    SupportLevel = "minimal-guidance"
	SupportModerate   SupportLevel = "moderate-guidance"
	SupportStepByStep SupportLevel = "step-by-step"
)

// HintAvailability is when the learner may ask for hints.
type HintAvailability string

const (
	HintsNone      HintAvailability = "none"
	HintsOnRequest HintAvailability = "on-request"
	HintsAlways    HintAvailability = "always-available"
)

// FeedbackFrequency is how often the learner receives feedback.
type FeedbackFrequency string

const (
	FeedbackPerItem    FeedbackFrequency = "per-item"
	FeedbackPerSection FeedbackFrequency = "per-section"
	FeedbackEndOfUnit  FeedbackFrequency = "end-of-unit"
)

// Tone is the encouragement register the companion should use.
type Tone string

const (
	ToneReassuring  Tone = "reassuring"
	ToneEncouraging Tone = "encouraging"
	ToneCelebratory Tone = "celebratory"
)

// Focus is the skill-application emphasis of the generated content.
type Focus string

const (
	FocusFundamentals Focus = "fundamentals"
	FocusApplication  Focus = "standard-application"
	FocusCreative     Focus = "creative-application"
	FocusExtension    Focus = "extension"
)

// PracticeQuantity is how much practice the generated content should carry.
type PracticeQuantity string

const (
	PracticeReduced  PracticeQuantity = "reduced"
	PracticeStandard PracticeQuantity = "standard"
	PracticeExtended PracticeQuantity = "extended"
)

// Strategy is the computed difficulty/support adaptation applied to
// not-yet-generated rubrics. Immutable once produced: a fresh Strategy is
// computed per transition, never mutated in place.
type Strategy struct {
	Complexity     Ordinal           `json:"complexity"`
	Vocabulary     Ordinal           `json:"vocabulary"`
	ConceptDensity Ordinal           `json:"concept_density"`
	Support        SupportLevel      `json:"support"`
	Hints          HintAvailability  `json:"hints"`
	Feedback       FeedbackFrequency `json:"feedback"`
	Tone           Tone              `json:"tone"`
	Focus          Focus             `json:"focus"`
	Practice       PracticeQuantity  `json:"practice"`
	TimeLimitSec   int               `json:"time_limit_sec"` // 0 = untimed
	SuggestBreaks  bool              `json:"suggest_breaks"`

	// Reasoning records which rules fired, one line per rule, in the
	// order they were applied.
	Reasoning string `json:"reasoning"`
}
