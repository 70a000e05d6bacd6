package cmd

import (
	"fmt"

	"github.com/questdeck/questdeck/internal/catalog"
	"github.com/questdeck/questdeck/internal/consistency"
	"github.com/questdeck/questdeck/internal/store"
	"github.com/questdeck/questdeck/internal/ui/theme"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <session-id>",
	Short: "Re-run consistency validation on a stored session",
	Long: `Load a session's narrative context and rubric set from the database and
re-run the full consistency validator: lineage, completeness, and
intra-rubric checks, plus generated-content shape checks for any rubric
that already has content.

Exits non-zero if any errors are found; warnings alone pass.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sessionID := args[0]

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	repo, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer repo.Close()

	nc, err := repo.GetSession(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("load session %q: %w", sessionID, err)
	}
	rubrics, err := repo.GetRubrics(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("load rubrics: %w", err)
	}

	validator, err := consistency.NewValidator(catalog.DefaultStages(), catalog.DefaultSubjects())
	if err != nil {
		return err
	}

	rep := validator.Validate(nc, rubrics)
	for _, rb := range rubrics {
		if rb.Generated == nil {
			continue
		}
		sub := consistency.ValidateGenerated(rb)
		rep.Errors = append(rep.Errors, sub.Errors...)
		rep.Warnings = append(rep.Warnings, sub.Warnings...)
	}

	fmt.Printf("%s %d rubrics checked\n", theme.Label.Render("Session:"), len(rubrics))
	for _, w := range rep.Warnings {
		fmt.Println(theme.Warning.Render("  warn  " + w.String()))
	}
	for _, e := range rep.Errors {
		fmt.Println(theme.Bad.Render("  error " + e.String()))
	}

	if !rep.Valid() {
		return fmt.Errorf("%d consistency error(s)", len(rep.Errors))
	}
	fmt.Println(theme.Good.Render("  OK"))
	return nil
}
