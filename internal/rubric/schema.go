package rubric

import (
	"fmt"

	"github.com/questdeck/questdeck/internal/catalog"
	"github.com/questdeck/questdeck/internal/synth"
)

// ContentSchema returns the JSON schema the synthesizer's response must
// conform to for the given shape. Item counts are pinned with
// minItems/maxItems so a malformed payload is rejected at the provider
// boundary before the consistency validator ever sees it.
func ContentSchema(shape ContentShape) *synth.Schema {
	switch shape.Archetype {
	case catalog.ArchetypeScenario:
		return scenarioSchema(shape.Scenario)
	case catalog.ArchetypeStation:
		return stationSchema(shape.Station)
	default:
		return instructionSchema(shape.Instruction)
	}
}

func instructionSchema(s *InstructionShape) *synth.Schema {
	return &synth.Schema{
		Name:        "instruction-content",
		Description: "Teaching introduction plus practice and assessment items",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"introduction": map[string]any{
					"type":        "string",
					"description": "Teaches the skill inside the story setting",
				},
				"practice": map[string]any{
					"type":     "array",
					"items":    contentItemSchema(),
					"minItems": s.PracticeItems,
					"maxItems": s.PracticeItems,
				},
				"assessment": map[string]any{
					"type":     "array",
					"items":    contentItemSchema(),
					"minItems": s.AssessmentItems,
					"maxItems": s.AssessmentItems,
				},
			},
			"required":             []any{"introduction", "practice", "assessment"},
			"additionalProperties": false,
		},
	}
}

func contentItemSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"prompt":      map[string]any{"type": "string"},
			"answer":      map[string]any{"type": "string"},
			"explanation": map[string]any{"type": "string"},
		},
		"required":             []any{"prompt", "answer", "explanation"},
		"additionalProperties": false,
	}
}

func scenarioSchema(s *ScenarioShape) *synth.Schema {
	return &synth.Schema{
		Name:        "scenario-content",
		Description: "Workplace decision scenarios: examples, practice, assessment",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"setting": map[string]any{
					"type":        "string",
					"description": "One-line description of the scenario setting",
				},
				"examples": map[string]any{
					"type":     "array",
					"items":    scenarioItemSchema(),
					"minItems": s.ExampleScenarios,
					"maxItems": s.ExampleScenarios,
				},
				"practice": map[string]any{
					"type":     "array",
					"items":    scenarioItemSchema(),
					"minItems": s.PracticeScenarios,
					"maxItems": s.PracticeScenarios,
				},
				"assessment": map[string]any{
					"type":     "array",
					"items":    scenarioItemSchema(),
					"minItems": s.AssessmentScenarios,
					"maxItems": s.AssessmentScenarios,
				},
			},
			"required":             []any{"setting", "examples", "practice", "assessment"},
			"additionalProperties": false,
		},
	}
}

func scenarioItemSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"situation": map[string]any{"type": "string"},
			"decision":  map[string]any{"type": "string"},
			"outcome":   map[string]any{"type": "string"},
		},
		"required":             []any{"situation", "decision", "outcome"},
		"additionalProperties": false,
	}
}

func stationSchema(s *StationShape) *synth.Schema {
	n := len(s.Subjects)
	return &synth.Schema{
		// Station count varies with the subject catalog, and compiled
		// schemas are cached by name.
		Name:        fmt.Sprintf("station-content-%d", n),
		Description: "Cross-subject synthesis plus one station per subject",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"synthesis": map[string]any{
					"type":        "string",
					"description": "Ties every subject's contribution back to the mission",
				},
				"stations": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"subject":  map[string]any{"type": "string"},
							"title":    map[string]any{"type": "string"},
							"activity": map[string]any{"type": "string"},
						},
						"required":             []any{"subject", "title", "activity"},
						"additionalProperties": false,
					},
					"minItems": n,
					"maxItems": n,
				},
			},
			"required":             []any{"synthesis", "stations"},
			"additionalProperties": false,
		},
	}
}
