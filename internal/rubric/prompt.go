package rubric

import (
	"fmt"
	"strings"

	"github.com/questdeck/questdeck/internal/catalog"
	"github.com/questdeck/questdeck/internal/curriculum"
)

const instructionSystemPrompt = `You are writing teaching content for an elementary learner inside a career-themed story adventure.

Rules:
- Stay inside the story: the learner is playing a role at a real workplace. Every item must reference the setting and the mission.
- Teach the given skill directly. Do not drift to adjacent skills.
- Use plain, age-appropriate language. Short sentences. No jargon without an in-story explanation.
- Practice items build up gradually; the assessment item stands alone and checks the skill without hints.
- Every answer must be correct and every explanation must show the steps.
- Return exactly the requested number of items. No extras, no omissions.`

const scenarioSystemPrompt = `You are writing workplace decision scenarios for an elementary learner inside a career-themed story adventure.

Rules:
- Each scenario puts the learner at a decision point in the workplace where the given skill decides the outcome.
- Example scenarios walk through the decision; practice scenarios ask the learner to decide; assessment scenarios check the skill with no walkthrough.
- Keep the stakes story-sized: a wrong decision delays the mission, it never hurts anyone.
- Use plain, age-appropriate language tied to the setting.
- Return exactly the requested number of scenarios of each kind.`

const stationSystemPrompt = `You are writing a cross-subject exploration for an elementary learner closing out a career-themed story adventure.

Rules:
- The synthesis ties every subject's contribution back to the mission in one short narrative beat.
- Each station is a hands-on activity for one subject at the workplace, usable without an adult reading along.
- Use plain, age-appropriate language tied to the setting.
- Return exactly one station per listed subject, in the listed order.`

// ComposePrompt builds the generation prompt for one rubric. It is a pure
// function of its inputs: fixed field order, no randomness, no clock, so
// identical inputs produce byte-identical text.
func ComposePrompt(story StoryContext, skill curriculum.SkillReference, shape ContentShape) GenerationPrompt {
	var b strings.Builder

	fmt.Fprintf(&b, "Story setup: %s\n", story.Setup)
	fmt.Fprintf(&b, "Workplace setting: %s\n", story.WorkplaceSetting)
	fmt.Fprintf(&b, "Why this subject matters here: %s\n", story.CareerContext)
	fmt.Fprintf(&b, "Companion voice: %s\n", story.CompanionVoice)

	b.WriteString("\n")
	fmt.Fprintf(&b, "Skill: %s\n", skill.Name)
	fmt.Fprintf(&b, "Description: %s\n", skill.Description)
	fmt.Fprintf(&b, "Grade: %d\n", skill.GradeLevel)

	b.WriteString("\nContent requirements:\n")
	b.WriteString(shapeRequirements(shape))

	return GenerationPrompt{
		System:   systemPromptFor(shape.Archetype),
		User:     b.String(),
		Bindings: promptBindings(story, skill, shape),
	}
}

func systemPromptFor(arch catalog.Archetype) string {
	switch arch {
	case catalog.ArchetypeScenario:
		return scenarioSystemPrompt
	case catalog.ArchetypeStation:
		return stationSystemPrompt
	default:
		return instructionSystemPrompt
	}
}

func shapeRequirements(shape ContentShape) string {
	var b strings.Builder
	switch {
	case shape.Instruction != nil:
		fmt.Fprintf(&b, "- An introduction that teaches the skill in the story setting.\n")
		fmt.Fprintf(&b, "- Exactly %d practice items, each with prompt, answer, and explanation.\n", shape.Instruction.PracticeItems)
		fmt.Fprintf(&b, "- Exactly %d assessment item(s), same fields, no hints in the prompt.\n", shape.Instruction.AssessmentItems)
	case shape.Scenario != nil:
		fmt.Fprintf(&b, "- A one-line description of the scenario setting.\n")
		fmt.Fprintf(&b, "- Exactly %d example scenario(s) with the decision walked through.\n", shape.Scenario.ExampleScenarios)
		fmt.Fprintf(&b, "- Exactly %d practice scenario(s) where the learner decides.\n", shape.Scenario.PracticeScenarios)
		fmt.Fprintf(&b, "- Exactly %d assessment scenario(s) with no walkthrough.\n", shape.Scenario.AssessmentScenarios)
	case shape.Station != nil:
		fmt.Fprintf(&b, "- Exactly %d cross-subject synthesis paragraph tying the mission together.\n", shape.Station.SynthesisCount)
		fmt.Fprintf(&b, "- Exactly one station per subject, in this order: %s.\n", joinSubjects(shape.Station.Subjects))
	}
	return b.String()
}

func joinSubjects(subjects []catalog.Subject) string {
	names := make([]string, len(subjects))
	for i, s := range subjects {
		names[i] = catalog.SubjectDisplayName(s)
	}
	return strings.Join(names, ", ")
}

// promptBindings records the variables the prompt was composed from, for
// the audit trail and for downstream template substitution.
func promptBindings(story StoryContext, skill curriculum.SkillReference, shape ContentShape) map[string]string {
	return map[string]string{
		"archetype":         string(shape.Archetype),
		"career_context":    story.CareerContext,
		"companion_voice":   story.CompanionVoice,
		"skill_id":          skill.ID,
		"skill_name":        skill.Name,
		"story_setup":       story.Setup,
		"workplace_setting": story.WorkplaceSetting,
	}
}
