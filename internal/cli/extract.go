package cli

import (
	"os"

	"github.com/fairway-tools/fairway/internal/geoscan"
	"github.com/fairway-tools/fairway/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	extractOutputPath string
	extractWindow     int
	extractTargetLat  float64
	extractTargetLon  float64
	extractTolerance  float64
)

var extractCmd = &cobra.Command{
	Use:   "extract <media-file>",
	Short: "Scan a media file's bytes for GPS coordinates",
	Long: `Scan the raw bytes of a media file for float tokens that pair up into
plausible longitude/latitude coordinates, and write the best candidate
to a location artifact. When nothing plausible is found the artifact
records that instead.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputPath := expandPath(args[0])
		if _, err := os.Stat(inputPath); err != nil {
			fail(ExitInputMissing, "Input file '%s' cannot be read: %s\n", inputPath, err.Error())
		}

		scanConfig := fairwayConfig.GeoScan
		if cmd.Flags().Changed("window") {
			scanConfig.WindowBytes = extractWindow
		}
		if cmd.Flags().Changed("target-lat") {
			scanConfig.TargetLatitude = extractTargetLat
		}
		if cmd.Flags().Changed("target-lon") {
			scanConfig.TargetLongitude = extractTargetLon
		}
		if cmd.Flags().Changed("tolerance") {
			scanConfig.ToleranceDegrees = extractTolerance
		}

		service := geoscan.NewExtractService(scanConfig)
		found, err := service.ExtractToFile(inputPath, expandPath(extractOutputPath))
		if err != nil {
			fail(1, "Extraction failed: %s\n", err.Error())
		}

		if found {
			log.Emit(logger.SUCCESS, "Location written to '%s'\n", extractOutputPath)
		} else {
			log.Emit(logger.WARNING, "No longitude/latitude found in '%s'\n", inputPath)
		}
	},
}

func init() {
	extractCmd.Flags().StringVarP(&extractOutputPath, "output", "o", "location.csv", "path of the location artifact to write")
	extractCmd.Flags().IntVar(&extractWindow, "window", geoscan.DefaultWindowBytes, "maximum byte distance between the two floats of a pair")
	extractCmd.Flags().Float64Var(&extractTargetLat, "target-lat", 0, "latitude preferred when a candidate lies within tolerance")
	extractCmd.Flags().Float64Var(&extractTargetLon, "target-lon", 0, "longitude preferred when a candidate lies within tolerance")
	extractCmd.Flags().Float64Var(&extractTolerance, "tolerance", geoscan.DefaultTolerance, "per-axis tolerance, in degrees, for the target match")
	rootCmd.AddCommand(extractCmd)
}
