package cli

import (
	"os"

	"github.com/fairway-tools/fairway/internal"
	"github.com/fairway-tools/fairway/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

var log = logger.Get("CLI")

// Exit codes shared by the subcommands. These are part of the tool's
// contract with wrapping scripts, so keep them stable.
const (
	ExitInputMissing   = 2
	ExitMapFetchFailed = 3
	ExitOverlayMissing = 4
	ExitNoMapboxToken  = 5
)

var (
	configPath     string
	verboseLogging bool

	fairwayConfig internal.FairwayConfig
)

var rootCmd = &cobra.Command{
	Use:   "fairway",
	Short: "Salvage GPS coordinates from golf round recordings and map them",
	Long: `Fairway recovers GPS coordinates embedded in the raw bytes of media
files, even when the container metadata is damaged, and turns them into
location artifacts, annotated videos and shot maps.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A .env alongside the binary may carry secrets such as the
		// Mapbox token; missing files are fine.
		godotenv.Load()

		if verboseLogging {
			logger.Log.SetMinStatus(logger.DEBUG)
		}

		expanded, err := homedir.Expand(configPath)
		if err != nil {
			return err
		}

		return fairwayConfig.Load(expanded)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "~/.config/fairway/fairway.yaml", "path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verboseLogging, "verbose", "v", false, "enable debug logging")
}

// Execute runs the CLI. Errors are logged, not returned; commands that
// exit with a specific code call os.Exit themselves.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Emit(logger.FATAL, "%s\n", err.Error())
		os.Exit(1)
	}
}

// expandPath resolves a leading ~ in user-supplied paths.
func expandPath(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}

	return expanded
}

// fail logs the message and terminates the process with the given code.
func fail(code int, format string, args ...interface{}) {
	log.Emit(logger.ERROR, format, args...)
	os.Exit(code)
}
