package cmd

import (
	"fmt"

	"github.com/questdeck/questdeck/internal/catalog"
	"github.com/questdeck/questdeck/internal/consistency"
	"github.com/questdeck/questdeck/internal/rubric"
	"github.com/questdeck/questdeck/internal/session"
	"github.com/questdeck/questdeck/internal/store"
	"github.com/questdeck/questdeck/internal/synth"
	"github.com/questdeck/questdeck/internal/ui/theme"
	"github.com/spf13/cobra"
)

var synthesizeRegenerate bool

var synthesizeCmd = &cobra.Command{
	Use:   "synthesize <session-id> <stage> <subject>",
	Short: "Generate content for one stored rubric",
	Long: `Send one rubric's generation prompt to the configured synthesizer and
store the resulting content. The backend is selected with
QUESTDECK_SYNTH_PROVIDER (anthropic, openai, gemini, or mock) and the
matching QUESTDECK_*_API_KEY variable; every call lands in the session's
audit trail.

A rubric that already has content is refused unless --regenerate is set.`,
	Args: cobra.ExactArgs(3),
	RunE: runSynthesize,
}

func init() {
	synthesizeCmd.Flags().BoolVar(&synthesizeRegenerate, "regenerate", false,
		"replace existing content instead of refusing")
}

func runSynthesize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sessionID := args[0]

	stage, err := resolveStage(args[1])
	if err != nil {
		return err
	}
	subject, err := resolveSubject(args[2])
	if err != nil {
		return err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	repo, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer repo.Close()

	provider, err := synth.NewProviderFromEnv(ctx, repo)
	if err != nil {
		return fmt.Errorf("configure synthesizer: %w", err)
	}

	builder, err := rubric.NewBuilder(catalog.DefaultStages(), catalog.DefaultSubjects())
	if err != nil {
		return err
	}
	validator, err := consistency.NewValidator(catalog.DefaultStages(), catalog.DefaultSubjects())
	if err != nil {
		return err
	}
	orch := session.New(builder, validator, repo, provider, synth.ConfigFromEnv())

	gc, err := orch.SynthesizeContent(ctx, sessionID, stage, subject, synthesizeRegenerate)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s/%s via %s\n", theme.Label.Render("Synthesized:"), stage, subject, provider.ModelID())
	fmt.Println(theme.Body.Render(describeGenerated(gc)))
	return nil
}

func describeGenerated(gc *rubric.GeneratedContent) string {
	switch {
	case gc.Instruction != nil:
		return fmt.Sprintf("  instruction: %d practice, %d assessment item(s)",
			len(gc.Instruction.Practice), len(gc.Instruction.Assessment))
	case gc.Scenario != nil:
		return fmt.Sprintf("  scenario: %d practice, %d assessment scenario(s)",
			len(gc.Scenario.Practice), len(gc.Scenario.Assessment))
	case gc.Station != nil:
		return fmt.Sprintf("  station: %d station(s)", len(gc.Station.Stations))
	}
	return "  (empty)"
}
