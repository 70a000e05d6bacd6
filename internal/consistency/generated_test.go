package consistency

import (
	"testing"

	"github.com/questdeck/questdeck/internal/catalog"
	"github.com/questdeck/questdeck/internal/rubric"
)

func instructionRubric(t *testing.T) *rubric.DataRubric {
	t.Helper()
	_, rubrics := builtSet(t)
	for _, r := range rubrics {
		if r.Stage == catalog.StageLearn && r.Subject == catalog.SubjectMath {
			return r
		}
	}
	t.Fatal("no LEARN/math rubric in built set")
	return nil
}

func conformingInstruction(shape *rubric.InstructionShape) *rubric.GeneratedContent {
	c := &rubric.InstructionContent{Introduction: "intro"}
	for i := 0; i < shape.PracticeItems; i++ {
		c.Practice = append(c.Practice, rubric.ContentItem{Prompt: "p", Answer: "a", Explanation: "e"})
	}
	for i := 0; i < shape.AssessmentItems; i++ {
		c.Assessment = append(c.Assessment, rubric.ContentItem{Prompt: "p", Answer: "a", Explanation: "e"})
	}
	return &rubric.GeneratedContent{Archetype: catalog.ArchetypeInstruction, Instruction: c}
}

func TestValidateGeneratedAccepts(t *testing.T) {
	r := instructionRubric(t)
	r.Generated = conformingInstruction(r.Shape.Instruction)

	if rep := ValidateGenerated(r); !rep.Valid() {
		t.Errorf("expected clean report, got %v", rep.Errors)
	}
}

func TestValidateGeneratedNoContent(t *testing.T) {
	r := instructionRubric(t)
	r.Generated = nil

	rep := ValidateGenerated(r)
	if !hasIssue(rep.Errors, "no-content") {
		t.Errorf("expected no-content error, got %v", rep.Errors)
	}
}

func TestValidateGeneratedArchetypeMismatch(t *testing.T) {
	r := instructionRubric(t)
	r.Generated = &rubric.GeneratedContent{
		Archetype: catalog.ArchetypeScenario,
		Scenario:  &rubric.ScenarioContent{Setting: "somewhere"},
	}

	rep := ValidateGenerated(r)
	if !hasIssue(rep.Errors, "content-archetype") {
		t.Errorf("expected content-archetype error, got %v", rep.Errors)
	}
}

func TestValidateGeneratedCountMismatch(t *testing.T) {
	r := instructionRubric(t)
	gc := conformingInstruction(r.Shape.Instruction)
	gc.Instruction.Practice = gc.Instruction.Practice[:1]
	gc.Instruction.Assessment = nil
	gc.Instruction.Introduction = ""
	r.Generated = gc

	rep := ValidateGenerated(r)
	for _, code := range []string{"count-practice", "count-assessment", "count-introduction"} {
		if !hasIssue(rep.Errors, code) {
			t.Errorf("expected %s error, got %v", code, rep.Errors)
		}
	}
}

func TestValidateGeneratedStationCounts(t *testing.T) {
	_, rubrics := builtSet(t)
	var r *rubric.DataRubric
	for _, rb := range rubrics {
		if rb.Stage == catalog.StageExplore {
			r = rb
			break
		}
	}
	if r == nil {
		t.Fatal("no EXPLORE rubric in built set")
	}

	// One station short of the subject catalog.
	r.Generated = &rubric.GeneratedContent{
		Archetype: catalog.ArchetypeStation,
		Station: &rubric.StationContent{
			Synthesis: "it all comes together",
			Stations: []rubric.StationActivity{
				{Subject: "math", Title: "t", Activity: "a"},
				{Subject: "reading", Title: "t", Activity: "a"},
			},
		},
	}

	rep := ValidateGenerated(r)
	if !hasIssue(rep.Errors, "count-stations") {
		t.Errorf("expected count-stations error, got %v", rep.Errors)
	}
}
