package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fairway-tools/fairway/internal/geoscan"
	"github.com/fairway-tools/fairway/internal/overlay"
	"github.com/fairway-tools/fairway/internal/probe"
	"github.com/fairway-tools/fairway/internal/staticmap"
	"github.com/fairway-tools/fairway/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	overlayOutputPath   string
	overlayLocationPath string
	overlayImagePath    string
)

var overlayCmd = &cobra.Command{
	Use:   "overlay <media-file>",
	Short: "Burn a location map into the corner of a video",
	Long: `Resolve the capture location of a video, fetch a static map image of
it, and burn that image into the bottom-right corner of the video with
the audio stream copied untouched.

The location is resolved in order of preference: the container's own
location metadata, a previously written location artifact, and finally
a fresh byte-level scan of the video. A pre-rendered map image can be
supplied with --image to skip the fetch.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputPath := expandPath(args[0])
		if _, err := os.Stat(inputPath); err != nil {
			fail(ExitInputMissing, "Input file '%s' cannot be read: %s\n", inputPath, err.Error())
		}

		imagePath := expandPath(overlayImagePath)
		if imagePath == "" {
			coordinates := resolveCoordinates(inputPath)
			imagePath = fetchMapImage(coordinates)
			defer os.Remove(imagePath)
		} else if _, err := os.Stat(imagePath); err != nil {
			fail(ExitOverlayMissing, "Overlay image '%s' cannot be read: %s\n", imagePath, err.Error())
		}

		task := overlay.NewTask(fairwayConfig.Overlay, inputPath, imagePath, expandPath(overlayOutputPath))
		err := task.Run(context.Background(), func(progress *overlay.Progress) {
			log.Emit(logger.DEBUG, "Overlay progress: %.1f%% (speed %s)\n", progress.Progress, progress.Speed)
		})
		if err != nil {
			fail(1, "Overlay failed: %s\n", err.Error())
		}

		log.Emit(logger.SUCCESS, "Annotated video written to '%s'\n", overlayOutputPath)
	},
}

// resolveCoordinates finds the video's capture location, preferring the
// container metadata, then an existing location artifact, then a fresh
// byte-level scan.
func resolveCoordinates(inputPath string) geoscan.Target {
	if probed, err := probe.FileLocation(probe.Config(fairwayConfig.Overlay), inputPath); err != nil {
		log.Emit(logger.WARNING, "Failed to probe '%s' for location metadata: %s\n", inputPath, err.Error())
	} else if probed != nil {
		log.Emit(logger.INFO, "Using location %.7f,%.7f from container metadata\n", probed.Lon, probed.Lat)
		return geoscan.Target{Lat: probed.Lat, Lon: probed.Lon}
	}

	locationPath := expandPath(overlayLocationPath)
	if data, err := os.ReadFile(locationPath); err == nil {
		if pair := geoscan.ParseReport(data); pair != nil {
			log.Emit(logger.INFO, "Using location %.7f,%.7f from artifact '%s'\n", pair.Lon, pair.Lat, locationPath)
			return geoscan.Target{Lat: pair.Lat, Lon: pair.Lon}
		}
	}

	log.Emit(logger.INFO, "No location metadata or artifact available, scanning '%s'\n", inputPath)
	service := geoscan.NewExtractService(fairwayConfig.GeoScan)
	pair, err := service.Extract(inputPath)
	if err != nil {
		fail(1, "Failed to scan '%s' for a location: %s\n", inputPath, err.Error())
	}
	if pair == nil {
		fail(1, "No location could be resolved for '%s'\n", inputPath)
	}

	return geoscan.Target{Lat: pair.Lat, Lon: pair.Lon}
}

// fetchMapImage downloads a static map centred on the coordinates and
// writes it to a temporary file, returning its path.
func fetchMapImage(coordinates geoscan.Target) string {
	fetcher := staticmap.NewFetcher(fairwayConfig.StaticMap)
	image, err := fetcher.FetchImage(coordinates.Lon, coordinates.Lat)
	if err != nil {
		switch err.(type) {
		case *staticmap.MissingTokenError:
			fail(ExitNoMapboxToken, "%s\n", err.Error())
		default:
			fail(ExitMapFetchFailed, "Failed to fetch map image: %s\n", err.Error())
		}
	}

	imagePath := filepath.Join(os.TempDir(), "fairway-map-overlay.png")
	if err := os.WriteFile(imagePath, image, 0644); err != nil {
		fail(ExitMapFetchFailed, "Failed to write map image to '%s': %s\n", imagePath, err.Error())
	}

	return imagePath
}

func init() {
	overlayCmd.Flags().StringVarP(&overlayOutputPath, "output", "o", "annotated.mov", "path of the annotated video to write")
	overlayCmd.Flags().StringVarP(&overlayLocationPath, "location", "l", "location.csv", "location artifact consulted when the container has no location tag")
	overlayCmd.Flags().StringVarP(&overlayImagePath, "image", "i", "", "pre-rendered overlay image to use instead of fetching one")
	rootCmd.AddCommand(overlayCmd)
}
