package cli

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/parnell/pi-haiku/internal/manifest"
	"github.com/parnell/pi-haiku/internal/project"
)

var listDrift bool

var listCmd = &cobra.Command{
	Use:   "list <dir>",
	Short: "List Poetry projects under a directory",
	Long: `List every Poetry project discovered under <dir> with its version and the
sibling projects it depends on. With --drift, remote version constraints on
sibling projects are checked against the siblings' actual versions and
unsatisfied constraints are flagged.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		packages, err := project.Load(args[0], project.Options{ExcludeDirs: excludeDirs()})
		if err != nil {
			return err
		}

		names := make([]string, 0, len(packages))
		for name := range packages {
			names = append(names, name)
		}
		sort.Strings(names)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tVERSION\tSIBLING DEPS")
		for _, name := range names {
			pkg := packages[name]
			fmt.Fprintf(w, "%s\t%s\t%s\n", pkg.Name, pkg.Version, siblingDeps(pkg, packages))
		}
		w.Flush()

		if listDrift {
			return printDrift(cmd, names, packages)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listDrift, "drift", false, "flag sibling constraints unsatisfied by sibling versions")
	rootCmd.AddCommand(listCmd)
}

// siblingDeps summarizes a package's dependencies on other discovered
// packages, marking local path deps.
func siblingDeps(pkg *manifest.Package, packages map[string]*manifest.Package) string {
	var parts []string
	for _, dep := range pkg.DependencyNames() {
		if _, ok := packages[dep]; !ok || dep == pkg.Name {
			continue
		}
		if pkg.Dependencies[dep].IsLocal() {
			parts = append(parts, dep+" (local)")
		} else {
			parts = append(parts, dep)
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

// printDrift reports sibling version constraints that the sibling's current
// version no longer satisfies.
func printDrift(cmd *cobra.Command, names []string, packages map[string]*manifest.Package) error {
	drifted := 0
	for _, name := range names {
		pkg := packages[name]
		for _, depName := range pkg.DependencyNames() {
			sibling, ok := packages[depName]
			if !ok {
				continue
			}
			dep := pkg.Dependencies[depName]
			constraint := dep.Constraint
			if constraint == "" {
				constraint = dep.Version
			}
			if constraint == "" {
				continue // local path dep, nothing to check
			}
			ok, err := manifest.Satisfies(constraint, sibling.Version)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "drift: %s -> %s: cannot check %q against %q: %v\n",
					name, depName, constraint, sibling.Version, err)
				continue
			}
			if !ok {
				drifted++
				fmt.Fprintf(cmd.OutOrStdout(), "drift: %s requires %s %s but %s is at %s\n",
					name, depName, constraint, depName, sibling.Version)
			}
		}
	}
	if drifted == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No constraint drift detected.")
	}
	return nil
}
