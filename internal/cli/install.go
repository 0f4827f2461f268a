package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parnell/pi-haiku/internal/pyenv"
)

var (
	installVenvPath  string
	installCondaBase string
)

var installCmd = &cobra.Command{
	Use:   "install <project>",
	Short: "Install a project's dependencies with poetry",
	Long: `Detect the project's Python environment (virtualenv or conda), creating a
conda environment named after the project when none exists, then run
poetry install inside it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		helper, err := newHelper(args[0], installVenvPath, installCondaBase)
		if err != nil {
			return err
		}
		helper.Out = cmd.OutOrStdout()

		if err := helper.EnsureEnv(cmd.Context()); err != nil {
			return err
		}
		_, changed, err := helper.Install(cmd.Context())
		if err != nil {
			return err
		}
		if !changed {
			fmt.Fprintf(cmd.OutOrStdout(), "No dependencies to install or update for %s\n", helper.Package.Name)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Installed %s v%s\n", helper.Package.Name, helper.Package.Version)
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <project>",
	Short: "Update a project's dependencies with poetry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		helper, err := newHelper(args[0], installVenvPath, installCondaBase)
		if err != nil {
			return err
		}
		helper.Out = cmd.OutOrStdout()

		_, changed, err := helper.Update(cmd.Context())
		if err != nil {
			return err
		}
		if !changed {
			fmt.Fprintf(cmd.OutOrStdout(), "No dependencies to install or update for %s\n", helper.Package.Name)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s v%s\n", helper.Package.Name, helper.Package.Version)
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{installCmd, updateCmd} {
		cmd.Flags().StringVar(&installVenvPath, "venv", "", "explicit virtualenv path")
		cmd.Flags().StringVar(&installCondaBase, "conda-base", "", "conda installation path (default ~/miniforge3)")
	}
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(updateCmd)
}

// newHelper builds a pyenv.Helper for a project path, applying flag and
// config overrides for the environment search.
func newHelper(path, venvPath, condaBaseFlag string) (*pyenv.Helper, error) {
	helper, err := pyenv.FromPath(path)
	if err != nil {
		return nil, err
	}
	helper.VenvPath = venvPath
	if condaBaseFlag != "" {
		helper.CondaBasePath = condaBaseFlag
	} else if base := condaBase(); base != "" {
		helper.CondaBasePath = base
	}
	return helper, nil
}
