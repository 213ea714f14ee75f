package cli

import (
	"os"

	"github.com/fairway-tools/fairway/internal/roster"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Create a player profile interactively",
	Long: `Walk through creating a player profile in the roster directory. Names
closely matching an existing profile must be confirmed, to catch
near-duplicate entries.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		config := fairwayConfig.Roster
		config.Dir = expandPath(config.Dir)

		manager := roster.NewManager(config)
		if err := manager.RunInteractive(os.Stdin, os.Stdout); err != nil {
			fail(1, "%s\n", err.Error())
		}
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
}
