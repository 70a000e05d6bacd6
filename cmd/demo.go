package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/questdeck/questdeck/internal/adaptive"
	"github.com/questdeck/questdeck/internal/catalog"
	"github.com/questdeck/questdeck/internal/consistency"
	"github.com/questdeck/questdeck/internal/curriculum"
	"github.com/questdeck/questdeck/internal/narrative"
	"github.com/questdeck/questdeck/internal/rubric"
	"github.com/questdeck/questdeck/internal/session"
	"github.com/questdeck/questdeck/internal/store"
	"github.com/questdeck/questdeck/internal/synth"
	"github.com/questdeck/questdeck/internal/ui/theme"
	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted end-to-end session against a throwaway database",
	Long: `Walk one session through the whole pipeline: build and validate the
rubric set, synthesize content for the first unit with a canned mock
synthesizer, complete the LEARN stage with scripted performance, and show
the adaptation strategies pushed onto the EXPERIENCE rubrics.

Everything runs against a temporary database that is removed on exit.`,
	RunE: runDemo,
}

func runDemo(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	tmpDir, err := os.MkdirTemp("", "questdeck-demo-")
	if err != nil {
		return fmt.Errorf("temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	repo, err := store.Open(filepath.Join(tmpDir, "demo.db"))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer repo.Close()

	mock := synth.NewMockProvider(synth.MockResponse{
		Content: demoInstructionPayload(),
		Usage:   synth.Usage{InputTokens: 412, OutputTokens: 655},
	})
	provider := synth.WithAudit(mock, "mock", repo)

	builder, err := rubric.NewBuilder(catalog.DefaultStages(), catalog.DefaultSubjects())
	if err != nil {
		return err
	}
	validator, err := consistency.NewValidator(catalog.DefaultStages(), catalog.DefaultSubjects())
	if err != nil {
		return err
	}
	orch := session.New(builder, validator, repo, provider, synth.DefaultConfig())

	sessionID := uuid.NewString()
	nc := narrative.Sample(sessionID)

	fmt.Println(theme.Title.Render("QuestDeck demo session"))
	fmt.Printf("%s %s\n\n", theme.Label.Render("Session:"), sessionID)

	// 1. Initialize: build the full rubric set and validate it.
	rubrics, rep, err := orch.Initialize(ctx, session.Params{
		Narrative: nc,
		Skills:    curriculum.DefaultSkills(),
	})
	if err != nil {
		return fmt.Errorf("initialize session: %w", err)
	}

	fmt.Println(theme.Heading.Render(fmt.Sprintf("Built %d rubrics (%d warnings)", len(rubrics), len(rep.Warnings))))
	for _, rb := range rubrics {
		fmt.Printf("  %-22s %-10s phase=%s\n",
			catalog.StageDisplayName(rb.Stage), rb.Subject, rb.Adaptation.Phase)
	}
	fmt.Println()

	// 2. Synthesize content for the first unit.
	gc, err := orch.SynthesizeContent(ctx, sessionID, catalog.StageLearn, catalog.SubjectMath, false)
	if err != nil {
		return fmt.Errorf("synthesize content: %w", err)
	}
	fmt.Println(theme.Heading.Render("Synthesized LEARN/math content"))
	fmt.Printf("  %s %s\n", theme.Label.Render("Introduction:"), gc.Instruction.Introduction)
	fmt.Printf("  %s %d practice, %d assessment\n\n",
		theme.Label.Render("Items:"), len(gc.Instruction.Practice), len(gc.Instruction.Assessment))

	// 3. Complete the LEARN stage with scripted performance: one strong
	// subject, one middling, one struggling.
	completions := []struct {
		subject catalog.Subject
		metrics adaptive.Metrics
	}{
		{catalog.SubjectMath, adaptive.Metrics{Score: 95, Attempts: 1, TimeSpentSec: 240}},
		{catalog.SubjectReading, adaptive.Metrics{Score: 72, Attempts: 3, TimeSpentSec: 420}},
		{catalog.SubjectScience, adaptive.Metrics{Score: 58, Attempts: 5, TimeSpentSec: 700,
			StruggledItems: []string{"cloud types", "reading a rain gauge"}}},
	}

	fmt.Println(theme.Heading.Render("Completing LEARN units"))
	for _, c := range completions {
		if err := orch.OnUnitCompleted(ctx, sessionID, catalog.StageLearn, c.subject, c.metrics); err != nil {
			return fmt.Errorf("complete %s: %w", c.subject, err)
		}
		level := adaptive.ClassifyPerformance(c.metrics)
		line := fmt.Sprintf("  %-10s score=%d attempts=%d -> %s", c.subject, c.metrics.Score, c.metrics.Attempts, level)
		switch level {
		case adaptive.LevelAdvanced, adaptive.LevelProficient:
			fmt.Println(theme.Good.Render(line))
		case adaptive.LevelStruggling:
			fmt.Println(theme.Bad.Render(line))
		default:
			fmt.Println(line)
		}
	}
	fmt.Println()

	// 4. Show the strategies now attached to the EXPERIENCE rubrics.
	rubrics, err = repo.GetRubrics(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("reload rubrics: %w", err)
	}
	fmt.Println(theme.Heading.Render("EXPERIENCE stage strategies"))
	for _, rb := range rubrics {
		if rb.Stage != catalog.StageExperience {
			continue
		}
		s := rb.Adaptation.Strategy
		if s == nil {
			fmt.Printf("  %-10s (no strategy)\n", rb.Subject)
			continue
		}
		fmt.Printf("  %s\n", theme.Body.Render(string(rb.Subject)))
		fmt.Printf("    complexity=%s support=%s hints=%s practice=%s\n",
			s.Complexity, s.Support, s.Hints, s.Practice)
		fmt.Printf("    %s %s\n", theme.Label.Render("reasoning:"), s.Reasoning)
	}
	fmt.Println()

	// 5. Audit trail.
	events, err := orch.Audit(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("load audit trail: %w", err)
	}
	fmt.Println(theme.Heading.Render(fmt.Sprintf("Audit trail (%d events)", len(events))))
	for _, ev := range events {
		fmt.Printf("  [%s] %s: %s\n", ev.Kind, ev.Code, ev.Message)
	}
	if len(events) == 0 {
		fmt.Println(theme.Hint.Render("  clean run, nothing recorded"))
	}

	return nil
}

// demoInstructionPayload is the canned synthesizer output for the
// LEARN/math unit, matching the instruction shape exactly.
func demoInstructionPayload() json.RawMessage {
	content := rubric.InstructionContent{
		Introduction: "Nova pulls up the station's supply ledger. Keeping the observatory running means adding three-digit part counts without losing a single bolt.",
		Practice: []rubric.ContentItem{
			{Prompt: "The parts locker holds 247 bolts and a shipment adds 138 more. How many bolts now?", Answer: "385", Explanation: "Add the ones (7+8=15, carry 1), tens (4+3+1=8), hundreds (2+1=3)."},
			{Prompt: "Dish A logged 316 signal pings and Dish B logged 425. What is the total?", Answer: "741", Explanation: "6+5=11, carry 1; 1+2+1=4; 3+4=7."},
			{Prompt: "The morning shift packed 189 sample tubes and the evening shift packed 204. How many tubes in all?", Answer: "393", Explanation: "9+4=13, carry 1; 8+0+1=9; 1+2=3."},
		},
		Assessment: []rubric.ContentItem{
			{Prompt: "Two telescopes collected 356 and 278 star images tonight. How many images were collected in total?", Answer: "634", Explanation: "6+8=14, carry 1; 5+7+1=13, carry 1; 3+2+1=6."},
		},
	}
	raw, err := json.Marshal(content)
	if err != nil {
		panic(err)
	}
	return raw
}
