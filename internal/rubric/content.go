package rubric

import (
	"encoding/json"
	"fmt"

	"github.com/questdeck/questdeck/internal/catalog"
)

// GeneratedContent is the synthesizer's payload, tagged by archetype like
// ContentShape: exactly one variant field is non-nil.
type GeneratedContent struct {
	Archetype   catalog.Archetype   `json:"archetype"`
	Instruction *InstructionContent `json:"instruction,omitempty"`
	Scenario    *ScenarioContent    `json:"scenario,omitempty"`
	Station     *StationContent     `json:"station,omitempty"`
}

// ContentItem is one practice or assessment item in instruction content.
type ContentItem struct {
	Prompt      string `json:"prompt"`
	Answer      string `json:"answer"`
	Explanation string `json:"explanation"`
}

// InstructionContent is the instruction-plus-practice payload.
type InstructionContent struct {
	Introduction string        `json:"introduction"`
	Practice     []ContentItem `json:"practice"`
	Assessment   []ContentItem `json:"assessment"`
}

// ScenarioItem is one workplace scenario with a decision point.
type ScenarioItem struct {
	Situation string `json:"situation"`
	Decision  string `json:"decision"`
	Outcome   string `json:"outcome"`
}

// ScenarioContent is the scenario-decision payload.
type ScenarioContent struct {
	Setting    string         `json:"setting"`
	Examples   []ScenarioItem `json:"examples"`
	Practice   []ScenarioItem `json:"practice"`
	Assessment []ScenarioItem `json:"assessment"`
}

// StationActivity is one subject station on the exploration floor.
type StationActivity struct {
	Subject  string `json:"subject"`
	Title    string `json:"title"`
	Activity string `json:"activity"`
}

// StationContent is the multi-subject-station payload.
type StationContent struct {
	Synthesis string            `json:"synthesis"`
	Stations  []StationActivity `json:"stations"`
}

// DecodeGenerated parses a synthesizer payload into the tagged variant
// matching the shape's archetype. It only decodes; count checks against
// the shape belong to the consistency validator.
func DecodeGenerated(shape ContentShape, raw json.RawMessage) (*GeneratedContent, error) {
	gc := &GeneratedContent{Archetype: shape.Archetype}

	switch shape.Archetype {
	case catalog.ArchetypeInstruction:
		var c InstructionContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decode instruction content: %w", err)
		}
		gc.Instruction = &c
	case catalog.ArchetypeScenario:
		var c ScenarioContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decode scenario content: %w", err)
		}
		gc.Scenario = &c
	case catalog.ArchetypeStation:
		var c StationContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decode station content: %w", err)
		}
		gc.Station = &c
	default:
		return nil, fmt.Errorf("unknown archetype %q", shape.Archetype)
	}

	return gc, nil
}
