package cli

import (
	"os"

	"github.com/fairway-tools/fairway/internal/export"
	"github.com/fairway-tools/fairway/internal/swapi"
	"github.com/fairway-tools/fairway/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	planetsOutputPath string
	planetsURL        string
)

var planetsCmd = &cobra.Command{
	Use:   "planets",
	Short: "Export planet API data to a flattened CSV",
	Long: `Fetch JSON from the planet API and flatten it into a CSV, one row per
planet, with nested objects dotted into column names and lists joined
with pipes. Mostly a demonstration of the CSV export layer.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		config := fairwayConfig.Planets
		if planetsURL != "" {
			config.PlanetURL = planetsURL
		}

		data, err := swapi.NewClient(config).FetchPlanets()
		if err != nil {
			fail(1, "Failed to fetch planet data: %s\n", err.Error())
		}

		rows, err := export.RowsFromJSON(data, export.DefaultKeySeparator)
		if err != nil {
			fail(1, "Failed to flatten planet data: %s\n", err.Error())
		}

		outputPath := expandPath(planetsOutputPath)
		file, err := os.Create(outputPath)
		if err != nil {
			fail(1, "Failed to create '%s': %s\n", outputPath, err.Error())
		}
		defer file.Close()

		if err := export.WriteRowsCSV(file, rows); err != nil {
			fail(1, "Failed to write planet CSV: %s\n", err.Error())
		}

		log.Emit(logger.SUCCESS, "%d planet row(s) written to '%s'\n", len(rows), outputPath)
	},
}

func init() {
	planetsCmd.Flags().StringVarP(&planetsOutputPath, "output", "o", "planets.csv", "path of the CSV to write")
	planetsCmd.Flags().StringVarP(&planetsURL, "url", "u", "", "planet API URL (defaults to the configured resource)")
	rootCmd.AddCommand(planetsCmd)
}
