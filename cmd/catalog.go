package cmd

import (
	"fmt"
	"org_diagnostics/internal/catalog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Catalog utilities",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and validate the catalog, then list its categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		color.NoColor = color.NoColor || noColor

		cat, err := catalog.NewLoader().LoadFile(cfg.Catalog.Path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", color.RedString("✗"), err)
			return err
		}

		out := cmd.OutOrStdout()
		for i, c := range cat.Categories {
			fmt.Fprintf(out, "%d. %s – %s\n", i+1, color.New(color.Bold).Sprint(c.Name), c.CoreGoal)
			for _, s := range c.Subtopics {
				fmt.Fprintf(out, "   - %s\n", s.Title)
			}
		}
		fmt.Fprintf(out, "%s %d categories, %d subtopics\n", color.GreenString("✓"), len(cat.Categories), cat.SubtopicCount())
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd)
}
