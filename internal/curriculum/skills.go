package curriculum

import "github.com/questdeck/questdeck/internal/catalog"

// SkillReference identifies the one skill targeted per subject for a
// session. Supplied by the external curriculum source at initialization
// and immutable thereafter.
type SkillReference struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	GradeLevel  int    `json:"grade_level"`
}

// DefaultSkills returns a built-in skill per subject, used by the demo
// and preview commands when no curriculum source is wired up.
func DefaultSkills() map[catalog.Subject]SkillReference {
	return map[catalog.Subject]SkillReference{
		catalog.SubjectMath: {
			ID:          "M.3.NBT.2",
			Name:        "Three-Digit Addition",
			Description: "Add numbers up to 1000 using place value strategies",
			GradeLevel:  3,
		},
		catalog.SubjectReading: {
			ID:          "R.3.RI.1",
			Name:        "Finding Key Details",
			Description: "Answer questions using explicit details from an informational text",
			GradeLevel:  3,
		},
		catalog.SubjectScience: {
			ID:          "S.3.ESS.2",
			Name:        "Weather Patterns",
			Description: "Describe typical weather conditions and how they are measured",
			GradeLevel:  3,
		},
	}
}
