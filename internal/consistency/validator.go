package consistency

import (
	"fmt"
	"strings"

	"github.com/questdeck/questdeck/internal/catalog"
	"github.com/questdeck/questdeck/internal/narrative"
	"github.com/questdeck/questdeck/internal/rubric"
)

// Validator checks a rubric set against the narrative it was derived
// from. Validation is read-only: it never mutates a rubric, and it runs
// every pass even when an earlier one fails, so all defects are reported
// in a single call.
type Validator struct {
	stages   []catalog.Stage
	subjects []catalog.Subject
}

// NewValidator creates a Validator over the given catalogs. An empty
// catalog is a caller bug, not a data-quality issue, and is rejected
// immediately rather than reported in a Report.
func NewValidator(stages []catalog.Stage, subjects []catalog.Subject) (*Validator, error) {
	if len(stages) == 0 {
		return nil, fmt.Errorf("stage catalog is empty")
	}
	if len(subjects) == 0 {
		return nil, fmt.Errorf("subject catalog is empty")
	}
	return &Validator{stages: stages, subjects: subjects}, nil
}

// Validate runs the lineage, completeness, and intra-rubric passes and
// returns the accumulated report.
func (v *Validator) Validate(nc *narrative.Context, rubrics []*rubric.DataRubric) *Report {
	rep := &Report{}
	v.checkLineage(rep, nc, rubrics)
	v.checkCompleteness(rep, rubrics)
	v.checkIntraRubric(rep, rubrics)
	return rep
}

// checkLineage verifies every rubric traces back to this narrative: same
// session id and a story context that matches the projection recomputed
// from the source field-for-field. A stale or hand-edited story context
// is an error, not silently accepted.
func (v *Validator) checkLineage(rep *Report, nc *narrative.Context, rubrics []*rubric.DataRubric) {
	for _, r := range rubrics {
		if r.SessionID != nc.SessionID {
			rep.addError("lineage-session", r.Stage, r.Subject,
				"rubric session %q does not match narrative session %q", r.SessionID, nc.SessionID)
		}

		want, err := rubric.ProjectStory(nc, r.Stage, r.Subject)
		if err != nil {
			rep.addError("lineage-projection", r.Stage, r.Subject,
				"cannot recompute story context: %v", err)
			continue
		}
		if r.Story != want {
			rep.addError("lineage-story", r.Stage, r.Subject,
				"story context has drifted from the narrative")
		}
	}
}

// checkCompleteness verifies exactly one rubric per (stage, subject)
// pair: no duplicates, no missing pairs, total count |stages|×|subjects|.
func (v *Validator) checkCompleteness(rep *Report, rubrics []*rubric.DataRubric) {
	seen := make(map[string]int)
	for _, r := range rubrics {
		seen[r.Key()]++
	}

	for key, count := range seen {
		if count > 1 {
			stage, subject := splitKey(key)
			rep.addError("duplicate-pair", stage, subject,
				"%d rubrics exist for this pair, want exactly 1", count)
		}
	}

	for _, stage := range v.stages {
		for _, subject := range v.subjects {
			key := fmt.Sprintf("%s/%s", stage, subject)
			if seen[key] == 0 {
				rep.addError("missing-pair", stage, subject, "no rubric exists for this pair")
			}
		}
	}

	want := len(v.stages) * len(v.subjects)
	if len(rubrics) != want {
		rep.addError("set-size", "", "",
			"rubric set has %d entries, want %d", len(rubrics), want)
	}
}

// checkIntraRubric verifies each rubric is internally coherent: shape
// archetype matches the declared stage, required parts are present, and
// the prompt mentions the skill by name. The last is a heuristic, since
// prompts may paraphrase, so its absence is a warning rather than an error.
func (v *Validator) checkIntraRubric(rep *Report, rubrics []*rubric.DataRubric) {
	for _, r := range rubrics {
		wantArch, ok := catalog.ArchetypeFor(r.Stage)
		if ok && r.Shape.Archetype != wantArch {
			rep.addError("archetype-mismatch", r.Stage, r.Subject,
				"shape archetype %q does not match stage archetype %q", r.Shape.Archetype, wantArch)
		}

		if r.Skill.ID == "" || r.Skill.Name == "" {
			rep.addError("missing-skill", r.Stage, r.Subject, "rubric has no skill reference")
		}
		if !shapePresent(r.Shape) {
			rep.addError("missing-shape", r.Stage, r.Subject, "rubric has no content shape variant")
		}
		if r.Prompt.System == "" || r.Prompt.User == "" {
			rep.addError("missing-prompt", r.Stage, r.Subject, "rubric has no generation prompt")
		}

		if r.Skill.Name != "" && r.Prompt.User != "" &&
			!strings.Contains(r.Prompt.User, r.Skill.Name) {
			rep.addWarning("prompt-skill-name", r.Stage, r.Subject,
				"prompt does not mention skill %q by name", r.Skill.Name)
		}
	}
}

func shapePresent(s rubric.ContentShape) bool {
	switch s.Archetype {
	case catalog.ArchetypeInstruction:
		return s.Instruction != nil
	case catalog.ArchetypeScenario:
		return s.Scenario != nil
	case catalog.ArchetypeStation:
		return s.Station != nil
	default:
		return false
	}
}

func splitKey(key string) (catalog.Stage, catalog.Subject) {
	parts := strings.SplitN(key, "/", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return catalog.Stage(parts[0]), catalog.Subject(parts[1])
}
