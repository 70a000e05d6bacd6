package cmd

import (
	"github.com/questdeck/questdeck/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "questdeck",
	Short: "Career-quest curriculum rubric engine",
	Long:  "QuestDeck builds, validates, and adapts the content rubrics behind career-story learning sessions.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUESTDECK_DB env var)")

	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(synthesizeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then QUESTDECK_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
