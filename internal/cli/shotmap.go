package cli

import (
	"os"

	"github.com/fairway-tools/fairway/internal/export"
	"github.com/fairway-tools/fairway/pkg/logger"
	"github.com/spf13/cobra"
)

var shotMapOutputPath string

var shotMapCmd = &cobra.Command{
	Use:   "shotmap <shots.csv>",
	Short: "Render a shot-tracking CSV as an interactive map",
	Long: `Read a shot-tracking CSV and render it as a self-contained HTML page
with one marker per stroke and a line tracing the round.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputPath := expandPath(args[0])
		file, err := os.Open(inputPath)
		if err != nil {
			fail(ExitInputMissing, "Shot CSV '%s' cannot be read: %s\n", inputPath, err.Error())
		}
		defer file.Close()

		shots, err := export.ReadShots(file)
		if err != nil {
			fail(1, "Failed to read shots: %s\n", err.Error())
		}

		outputPath := expandPath(shotMapOutputPath)
		output, err := os.Create(outputPath)
		if err != nil {
			fail(1, "Failed to create '%s': %s\n", outputPath, err.Error())
		}
		defer output.Close()

		if err := export.WriteShotMapHTML(output, shots); err != nil {
			fail(1, "Failed to render shot map: %s\n", err.Error())
		}

		log.Emit(logger.SUCCESS, "Shot map with %d strokes written to '%s'\n", len(shots), outputPath)
	},
}

func init() {
	shotMapCmd.Flags().StringVarP(&shotMapOutputPath, "output", "o", "shotmap.html", "path of the HTML map to write")
	rootCmd.AddCommand(shotMapCmd)
}
