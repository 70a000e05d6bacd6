package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/questdeck/questdeck/internal/catalog"
	"github.com/questdeck/questdeck/internal/curriculum"
	"github.com/questdeck/questdeck/internal/narrative"
	"github.com/questdeck/questdeck/internal/rubric"
	"github.com/questdeck/questdeck/internal/ui/theme"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview the generation prompt for a stage and subject (no database)",
	Long: `Build a single rubric against the sample narrative and print its
story projection, content shape, and composed generation prompt.

This is a stateless developer tool: no database, no synthesizer calls.
Useful for inspecting how narrative fields flow into the prompt.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("stage", "LEARN", "Stage: LEARN, EXPERIENCE, or EXPLORE")
	previewCmd.Flags().String("subject", "math", "Subject: math, reading, or science")
	previewCmd.Flags().Bool("bindings", false, "Also print the prompt bindings")
}

func runPreview(cmd *cobra.Command, args []string) error {
	stageVal, _ := cmd.Flags().GetString("stage")
	subjectVal, _ := cmd.Flags().GetString("subject")
	showBindings, _ := cmd.Flags().GetBool("bindings")

	stage, err := resolveStage(stageVal)
	if err != nil {
		return err
	}
	subject, err := resolveSubject(subjectVal)
	if err != nil {
		return err
	}

	builder, err := rubric.NewBuilder(catalog.DefaultStages(), catalog.DefaultSubjects())
	if err != nil {
		return err
	}

	nc := narrative.Sample("preview")
	skill, ok := curriculum.DefaultSkills()[subject]
	if !ok {
		return fmt.Errorf("no default skill for subject %q", subject)
	}

	rb, err := builder.BuildOne(nc, stage, subject, skill)
	if err != nil {
		return fmt.Errorf("build rubric: %w", err)
	}

	fmt.Println(theme.Title.Render(fmt.Sprintf("%s / %s", catalog.StageDisplayName(stage), catalog.SubjectDisplayName(subject))))
	fmt.Println()

	fmt.Println(theme.Heading.Render("Story projection"))
	fmt.Printf("  %s %s\n", theme.Label.Render("Setup:"), rb.Story.Setup)
	fmt.Printf("  %s %s\n", theme.Label.Render("Career context:"), rb.Story.CareerContext)
	fmt.Printf("  %s %s\n", theme.Label.Render("Workplace setting:"), rb.Story.WorkplaceSetting)
	fmt.Printf("  %s %s\n", theme.Label.Render("Companion voice:"), rb.Story.CompanionVoice)
	fmt.Println()

	fmt.Println(theme.Heading.Render("Content shape"))
	fmt.Printf("  %s\n", describeShape(rb.Shape))
	fmt.Println()

	fmt.Println(theme.Heading.Render("System prompt"))
	fmt.Println(indent(rb.Prompt.System, "  "))
	fmt.Println()

	fmt.Println(theme.Heading.Render("User message"))
	fmt.Println(indent(rb.Prompt.User, "  "))

	if showBindings {
		fmt.Println()
		fmt.Println(theme.Heading.Render("Bindings"))
		keys := make([]string, 0, len(rb.Prompt.Bindings))
		for k := range rb.Prompt.Bindings {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("  %s %s\n", theme.Label.Render(k+":"), rb.Prompt.Bindings[k])
		}
	}

	return nil
}

func describeShape(s rubric.ContentShape) string {
	switch {
	case s.Instruction != nil:
		return fmt.Sprintf("instruction: %d practice, %d assessment",
			s.Instruction.PracticeItems, s.Instruction.AssessmentItems)
	case s.Scenario != nil:
		return fmt.Sprintf("scenario: %d example, %d practice, %d assessment",
			s.Scenario.ExampleScenarios, s.Scenario.PracticeScenarios, s.Scenario.AssessmentScenarios)
	case s.Station != nil:
		return fmt.Sprintf("station: %d synthesis, %d stations", s.Station.SynthesisCount, len(s.Station.Subjects))
	default:
		return "(empty)"
	}
}

func resolveStage(val string) (catalog.Stage, error) {
	s := catalog.Stage(strings.ToUpper(val))
	for _, known := range catalog.DefaultStages() {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("invalid stage %q: must be LEARN, EXPERIENCE, or EXPLORE", val)
}

func resolveSubject(val string) (catalog.Subject, error) {
	s := catalog.Subject(strings.ToLower(val))
	for _, known := range catalog.DefaultSubjects() {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("invalid subject %q: must be math, reading, or science", val)
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}
