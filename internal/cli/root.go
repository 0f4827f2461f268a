package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/parnell/pi-haiku/internal/config"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var debugFlag bool

var rootCmd = &cobra.Command{
	Use:   "haiku",
	Short: "Manage local and remote dependencies across a Poetry monorepo",
	Long: `haiku discovers every Poetry project in a directory tree and rewrites
their pyproject.toml dependencies between local path form
(pkg = {develop = true, path = "../pkg"}) and published version form
(pkg = "^1.2.3"), in dependency order. It can also detect each project's
virtualenv or conda environment and run poetry inside it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		if debugFlag {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
		config.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	if err := rootCmd.Execute(); err != nil {
		log.Error().Msg(err.Error())
		return err
	}
	return nil
}

// condaBase returns the configured conda base path, or empty to let pyenv
// fall back to its default.
func condaBase() string {
	return config.Get(config.KeyCondaBasePath)
}

// excludeDirs returns configured discovery exclusions, or nil for defaults.
func excludeDirs() []string {
	return config.GetStringSlice(config.KeyExcludeDirs)
}
