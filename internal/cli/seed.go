package cli

import (
	"os"

	"github.com/fairway-tools/fairway/internal/export"
	"github.com/fairway-tools/fairway/pkg/logger"
	"github.com/spf13/cobra"
)

var seedOutputPath string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write a sample shot-tracking CSV",
	Long:  "Write a small example shot CSV so the shot map can be tried without real tracking data.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		outputPath := expandPath(seedOutputPath)
		file, err := os.Create(outputPath)
		if err != nil {
			fail(1, "Failed to create '%s': %s\n", outputPath, err.Error())
		}
		defer file.Close()

		if err := export.WriteShotsCSV(file, export.SampleShots()); err != nil {
			fail(1, "Failed to write sample shots: %s\n", err.Error())
		}

		log.Emit(logger.SUCCESS, "Sample shots written to '%s'\n", outputPath)
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedOutputPath, "output", "o", "shots.csv", "path of the shot CSV to write")
	rootCmd.AddCommand(seedCmd)
}
