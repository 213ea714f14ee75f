package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/fairway-tools/fairway/internal/geoscan"
	"github.com/fairway-tools/fairway/internal/watch"
	"github.com/fairway-tools/fairway/pkg/logger"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a directory and extract locations from new media files",
	Long: `Watch the configured directory for new media files and run the
byte-level location scan over each one, writing a location artifact per
file. Runs until interrupted.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		config := fairwayConfig.Watch
		config.WatchPath = expandPath(config.WatchPath)
		config.OutputPath = expandPath(config.OutputPath)

		service, err := watch.New(config, geoscan.NewExtractService(fairwayConfig.GeoScan))
		if err != nil {
			fail(1, "Failed to start watch service: %s\n", err.Error())
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log.Emit(logger.NEW, "Watching '%s' for new media files\n", config.WatchPath)
		if err := service.Run(ctx); err != nil {
			fail(1, "Watch service failed: %s\n", err.Error())
		}

		log.Emit(logger.STOP, "Watch service stopped\n")
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
