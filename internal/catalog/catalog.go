package catalog

// Stage represents a delivery phase a learner passes through within a session.
type Stage string

const (
	// StageLearn is the instruction phase: guided teaching plus practice.
	StageLearn Stage = "LEARN"

	// StageExperience is the applied-scenario phase: workplace decisions.
	StageExperience Stage = "EXPERIENCE"

	// StageExplore is the cross-subject exploration phase: rotating stations.
	StageExplore Stage = "EXPLORE"
)

// DefaultStages returns the stages in delivery order.
func DefaultStages() []Stage {
	return []Stage{StageLearn, StageExperience, StageExplore}
}

// NextStage returns the stage that follows s in the given ordering.
// Returns false if s is the last stage or is not in the list.
func NextStage(stages []Stage, s Stage) (Stage, bool) {
	for i, st := range stages {
		if st == s && i+1 < len(stages) {
			return stages[i+1], true
		}
	}
	return "", false
}

// StageDisplayName returns a human-readable name for a stage.
func StageDisplayName(s Stage) string {
	switch s {
	case StageLearn:
		return "Learn"
	case StageExperience:
		return "Experience"
	case StageExplore:
		return "Explore"
	default:
		return string(s)
	}
}

// Subject represents an academic domain tracked per session.
type Subject string

const (
	SubjectMath    Subject = "math"
	SubjectReading Subject = "reading"
	SubjectScience Subject = "science"
)

// DefaultSubjects returns all subjects in display order.
func DefaultSubjects() []Subject {
	return []Subject{SubjectMath, SubjectReading, SubjectScience}
}

// SubjectDisplayName returns a human-readable name for a subject.
func SubjectDisplayName(s Subject) string {
	switch s {
	case SubjectMath:
		return "Math"
	case SubjectReading:
		return "Reading"
	case SubjectScience:
		return "Science"
	default:
		return string(s)
	}
}

// Archetype identifies the content shape contract a stage demands.
type Archetype string

const (
	// ArchetypeInstruction requires practice items plus one assessment item.
	ArchetypeInstruction Archetype = "instruction"

	// ArchetypeScenario requires example, practice, and assessment scenarios.
	ArchetypeScenario Archetype = "scenario"

	// ArchetypeStation requires one cross-subject synthesis plus one
	// station per subject.
	ArchetypeStation Archetype = "station"
)

// ArchetypeFor maps a stage to its content archetype.
// The mapping is fixed: every stage has exactly one archetype.
func ArchetypeFor(s Stage) (Archetype, bool) {
	switch s {
	case StageLearn:
		return ArchetypeInstruction, true
	case StageExperience:
		return ArchetypeScenario, true
	case StageExplore:
		return ArchetypeStation, true
	default:
		return "", false
	}
}
