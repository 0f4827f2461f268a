package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parnell/pi-haiku/internal/haiku"
	"github.com/parnell/pi-haiku/internal/project"
)

var (
	convertExclude    []string
	convertInclude    []string
	convertOnlyChange []string
	convertDryRun     bool
	convertVerbose    bool
	convertBackupDir  string
	convertSort       bool
	convertReport     string
	remoteUpdate      bool
)

var localCmd = &cobra.Command{
	Use:   "local <dir>",
	Short: "Convert sibling dependencies to local path form",
	Long: `Convert every project under <dir> to depend on its sibling projects via
local path dependencies ({develop = true, path = "../pkg"}). Projects are
processed in dependency order.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd, args[0], haiku.ToLocal)
	},
}

var remoteCmd = &cobra.Command{
	Use:   "remote <dir>",
	Short: "Convert sibling dependencies to published versions",
	Long: `Convert every project under <dir> to depend on its sibling projects via
their published versions (pkg = "^1.2.3"). With --update, poetry update runs
in each changed project afterwards.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd, args[0], haiku.ToRemote)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{localCmd, remoteCmd} {
		cmd.Flags().StringSliceVar(&convertExclude, "exclude", nil, "project names to skip")
		cmd.Flags().StringSliceVar(&convertInclude, "include", nil, "restrict conversion to these projects")
		cmd.Flags().StringSliceVar(&convertOnlyChange, "only-change", nil, "restrict which dependency names may be rewritten")
		cmd.Flags().BoolVar(&convertDryRun, "dry-run", false, "report changes without writing")
		cmd.Flags().BoolVarP(&convertVerbose, "verbose", "v", false, "print each change")
		cmd.Flags().StringVar(&convertBackupDir, "backup-dir", "", "also write converted manifests into this directory")
		cmd.Flags().BoolVar(&convertSort, "sort", false, "sort keys within each TOML table after rewriting")
		cmd.Flags().StringVar(&convertReport, "report", "", "write a YAML change report to this path")
	}
	remoteCmd.Flags().BoolVar(&remoteUpdate, "update", false, "run poetry update in each changed project")

	rootCmd.AddCommand(localCmd)
	rootCmd.AddCommand(remoteCmd)
}

func runConvert(cmd *cobra.Command, dir string, direction haiku.Direction) error {
	opts := haiku.Options{
		Exclude:    convertExclude,
		Include:    convertInclude,
		OnlyChange: convertOnlyChange,
		DryRun:     convertDryRun,
		Verbose:    convertVerbose,
		Update:     remoteUpdate,
		BackupDir:  convertBackupDir,
		Sort:       convertSort,
		Discovery:  project.Options{ExcludeDirs: excludeDirs()},
		Out:        cmd.OutOrStdout(),
	}

	results, err := haiku.ConvertAll(cmd.Context(), dir, direction, opts)
	if err != nil {
		return err
	}

	total := 0
	for _, r := range results {
		total += len(r.Changes)
	}
	if convertDryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "Dry run: %d changes across %d projects.\n", total, len(results))
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Converted %d dependencies across %d projects.\n", total, len(results))
	}

	if convertReport != "" {
		if err := haiku.WriteReport(convertReport, direction, results); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", convertReport)
	}
	return nil
}
