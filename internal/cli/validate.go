package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parnell/pi-haiku/internal/manifest"
)

var validateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Validate a pyproject.toml against the Poetry schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := manifest.ValidateFile(args[0])
		if err != nil {
			return err
		}
		if result.Valid {
			fmt.Fprintln(cmd.OutOrStdout(), "✓ manifest is valid")
			return nil
		}
		for _, issue := range result.Issues {
			fmt.Fprintf(cmd.OutOrStdout(), "  ✗ %s: %s\n", issue.Path, issue.Message)
		}
		return fmt.Errorf("manifest has %d validation issues", len(result.Issues))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
