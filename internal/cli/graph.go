package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/parnell/pi-haiku/internal/depgraph"
	"github.com/parnell/pi-haiku/internal/project"
)

var graphCmd = &cobra.Command{
	Use:   "graph <dir>",
	Short: "Show the project dependency graph in topological order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		packages, err := project.Load(args[0], project.Options{ExcludeDirs: excludeDirs()})
		if err != nil {
			return err
		}

		dag := depgraph.Build(packages)
		order, err := depgraph.TopoSort(dag)
		if err != nil {
			return err
		}

		for _, name := range order {
			pkg, ok := packages[name]
			if !ok {
				continue // external dependency
			}
			var siblings []string
			for _, dep := range pkg.DependencyNames() {
				if _, ok := packages[dep]; ok && dep != name {
					siblings = append(siblings, dep)
				}
			}
			if len(siblings) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", name, strings.Join(siblings, ", "))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
