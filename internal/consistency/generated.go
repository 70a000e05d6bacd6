package consistency

import (
	"github.com/questdeck/questdeck/internal/catalog"
	"github.com/questdeck/questdeck/internal/rubric"
)

// ValidateGenerated checks that a rubric's generated content satisfies
// the counts its shape declares. The shape contract is non-negotiable, so
// every count mismatch is an error; the core never coerces malformed
// content into the expected shape.
func ValidateGenerated(r *rubric.DataRubric) *Report {
	rep := &Report{}

	gc := r.Generated
	if gc == nil {
		rep.addError("no-content", r.Stage, r.Subject, "rubric has no generated content")
		return rep
	}

	if gc.Archetype != r.Shape.Archetype {
		rep.addError("content-archetype", r.Stage, r.Subject,
			"content archetype %q does not match shape archetype %q", gc.Archetype, r.Shape.Archetype)
		return rep
	}

	switch r.Shape.Archetype {
	case catalog.ArchetypeInstruction:
		checkInstruction(rep, r, r.Shape.Instruction, gc.Instruction)
	case catalog.ArchetypeScenario:
		checkScenario(rep, r, r.Shape.Scenario, gc.Scenario)
	case catalog.ArchetypeStation:
		checkStation(rep, r, r.Shape.Station, gc.Station)
	}

	return rep
}

func checkInstruction(rep *Report, r *rubric.DataRubric, shape *rubric.InstructionShape, c *rubric.InstructionContent) {
	if c == nil {
		rep.addError("content-variant", r.Stage, r.Subject, "instruction content is missing")
		return
	}
	if c.Introduction == "" {
		rep.addError("count-introduction", r.Stage, r.Subject, "introduction is empty")
	}
	if len(c.Practice) != shape.PracticeItems {
		rep.addError("count-practice", r.Stage, r.Subject,
			"got %d practice items, want %d", len(c.Practice), shape.PracticeItems)
	}
	if len(c.Assessment) != shape.AssessmentItems {
		rep.addError("count-assessment", r.Stage, r.Subject,
			"got %d assessment items, want %d", len(c.Assessment), shape.AssessmentItems)
	}
}

func checkScenario(rep *Report, r *rubric.DataRubric, shape *rubric.ScenarioShape, c *rubric.ScenarioContent) {
	if c == nil {
		rep.addError("content-variant", r.Stage, r.Subject, "scenario content is missing")
		return
	}
	if len(c.Examples) != shape.ExampleScenarios {
		rep.addError("count-examples", r.Stage, r.Subject,
			"got %d example scenarios, want %d", len(c.Examples), shape.ExampleScenarios)
	}
	if len(c.Practice) != shape.PracticeScenarios {
		rep.addError("count-practice", r.Stage, r.Subject,
			"got %d practice scenarios, want %d", len(c.Practice), shape.PracticeScenarios)
	}
	if len(c.Assessment) != shape.AssessmentScenarios {
		rep.addError("count-assessment", r.Stage, r.Subject,
			"got %d assessment scenarios, want %d", len(c.Assessment), shape.AssessmentScenarios)
	}
}

func checkStation(rep *Report, r *rubric.DataRubric, shape *rubric.StationShape, c *rubric.StationContent) {
	if c == nil {
		rep.addError("content-variant", r.Stage, r.Subject, "station content is missing")
		return
	}
	if c.Synthesis == "" {
		rep.addError("count-synthesis", r.Stage, r.Subject, "synthesis is empty")
	}
	if len(c.Stations) != len(shape.Subjects) {
		rep.addError("count-stations", r.Stage, r.Subject,
			"got %d stations, want %d (one per subject)", len(c.Stations), len(shape.Subjects))
	}
}
