package rubric

import (
	"fmt"

	"github.com/questdeck/questdeck/internal/catalog"
)

// Fixed item counts per archetype. These are the shape contract the
// synthesizer must satisfy exactly; they are not learner-configurable.
const (
	InstructionPracticeItems   = 3
	InstructionAssessmentItems = 1

	ScenarioExampleCount    = 1
	ScenarioPracticeCount   = 2
	ScenarioAssessmentCount = 1

	StationSynthesisCount    = 1
	StationActivitiesPerSubj = 1
)

// ContentShape is the declarative schema for what the synthesizer must
// return. Tagged by archetype: exactly one variant field is non-nil,
// matching Archetype.
type ContentShape struct {
	Archetype   catalog.Archetype `json:"archetype"`
	Instruction *InstructionShape `json:"instruction,omitempty"`
	Scenario    *ScenarioShape    `json:"scenario,omitempty"`
	Station     *StationShape     `json:"station,omitempty"`
}

// InstructionShape is the instruction-plus-practice contract.
type InstructionShape struct {
	PracticeItems   int `json:"practice_items"`
	AssessmentItems int `json:"assessment_items"`
}

// ScenarioShape is the scenario-decision contract.
type ScenarioShape struct {
	ExampleScenarios    int `json:"example_scenarios"`
	PracticeScenarios   int `json:"practice_scenarios"`
	AssessmentScenarios int `json:"assessment_scenarios"`
}

// StationShape is the multi-subject-station contract: one cross-subject
// synthesis plus one station per subject in the session catalog.
type StationShape struct {
	SynthesisCount int               `json:"synthesis_count"`
	Subjects       []catalog.Subject `json:"subjects"`
}

// ShapeFor returns the content shape for a stage. Station shapes depend
// on the session's subject catalog (one station per subject).
func ShapeFor(stage catalog.Stage, subjects []catalog.Subject) (ContentShape, error) {
	arch, ok := catalog.ArchetypeFor(stage)
	if !ok {
		return ContentShape{}, fmt.Errorf("no archetype defined for stage %q", stage)
	}

	switch arch {
	case catalog.ArchetypeInstruction:
		return ContentShape{
			Archetype: arch,
			Instruction: &InstructionShape{
				PracticeItems:   InstructionPracticeItems,
				AssessmentItems: InstructionAssessmentItems,
			},
		}, nil
	case catalog.ArchetypeScenario:
		return ContentShape{
			Archetype: arch,
			Scenario: &ScenarioShape{
				ExampleScenarios:    ScenarioExampleCount,
				PracticeScenarios:   ScenarioPracticeCount,
				AssessmentScenarios: ScenarioAssessmentCount,
			},
		}, nil
	case catalog.ArchetypeStation:
		subjCopy := make([]catalog.Subject, len(subjects))
		copy(subjCopy, subjects)
		return ContentShape{
			Archetype: arch,
			Station: &StationShape{
				SynthesisCount: StationSynthesisCount,
				Subjects:       subjCopy,
			},
		}, nil
	default:
		return ContentShape{}, fmt.Errorf("unhandled archetype %q", arch)
	}
}
