package overlay

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fairway-tools/fairway/pkg/logger"
	"github.com/floostack/transcoder/ffmpeg"
	"github.com/google/uuid"
)

var log = logger.Get("Overlay")

type Config struct {
	FfmpegBinPath  string `yaml:"ffmpeg_binary" env:"FFMPEG_BIN"`
	FfprobeBinPath string `yaml:"ffprobe_binary" env:"FFPROBE_BIN"`
}

type TaskStatus int

const (
	WAITING TaskStatus = iota
	WORKING
	TROUBLED
	COMPLETE
)

func (s TaskStatus) String() string {
	switch s {
	case WAITING:
		return fmt.Sprintf("WAITING[%d]", s)
	case WORKING:
		return fmt.Sprintf("WORKING[%d]", s)
	case TROUBLED:
		return fmt.Sprintf("TROUBLED[%d]", s)
	case COMPLETE:
		return fmt.Sprintf("COMPLETE[%d]", s)
	}

	return fmt.Sprintf("UNKNOWN[%d]", s)
}

type Progress struct {
	FramesProcessed string
	CurrentTime     string
	CurrentBitrate  string
	Progress        float64
	Speed           string
}

// Task burns an image into the bottom-right corner of a video using
// ffmpeg, copying the audio stream untouched. The overlay image is pulled
// in through a movie filter source so a single ffmpeg input suffices.
type Task struct {
	id          uuid.UUID
	config      Config
	inputPath   string
	overlayPath string
	outputPath  string

	status       TaskStatus
	lastProgress *Progress
}

func NewTask(config Config, inputPath string, overlayPath string, outputPath string) *Task {
	return &Task{
		id:          uuid.New(),
		config:      config,
		inputPath:   inputPath,
		overlayPath: overlayPath,
		outputPath:  outputPath,
		status:      WAITING,
	}
}

// Run starts the ffmpeg command and blocks until it completes or the
// context is cancelled. Progress updates from ffmpeg are forwarded to the
// handler as they arrive.
func (task *Task) Run(ctx context.Context, updateHandler func(*Progress)) error {
	transcoder := ffmpeg.
		New(&ffmpeg.Config{
			ProgressEnabled: true,
			FfmpegBinPath:   task.config.FfmpegBinPath,
			FfprobeBinPath:  task.config.FfprobeBinPath,
		}).
		Input(task.inputPath).
		Output(task.outputPath).
		WithContext(&ctx)

	if err := os.MkdirAll(filepath.Dir(task.outputPath), os.ModePerm); err != nil {
		task.status = TROUBLED
		return fmt.Errorf("failed to create output directory for '%s': %w", task.outputPath, err)
	}

	filter := OverlayFilter(task.overlayPath)
	audioCodec := "copy"
	overwrite := true
	options := ffmpeg.Options{
		AudioCodec: &audioCodec,
		Overwrite:  &overwrite,
		ExtraArgs:  map[string]interface{}{"-filter_complex": filter},
	}

	log.Emit(logger.INFO, "Overlaying '%s' onto '%s' -> '%s'\n", task.overlayPath, task.inputPath, task.outputPath)
	task.status = WORKING

	progressChannel, err := transcoder.Start(options)
	if err != nil {
		task.status = TROUBLED
		return fmt.Errorf("overlay task failed due to command error: %w", err)
	}

	for {
		prog, ok := <-progressChannel
		if !ok {
			task.status = COMPLETE
			return nil
		}

		progress := &Progress{
			FramesProcessed: prog.GetFramesProcessed(),
			CurrentTime:     prog.GetCurrentTime(),
			CurrentBitrate:  prog.GetCurrentBitrate(),
			Progress:        prog.GetProgress(),
			Speed:           prog.GetSpeed(),
		}

		task.lastProgress = progress
		if updateHandler != nil {
			updateHandler(progress)
		}
	}
}

// LastProgress returns the latest progress report from the underlying
// ffmpeg command, or nil if none has arrived yet.
func (task *Task) LastProgress() *Progress { return task.lastProgress }
func (task *Task) Id() uuid.UUID           { return task.id }
func (task *Task) Status() TaskStatus      { return task.status }
func (task *Task) String() string {
	return fmt.Sprintf("Task{ID=%s Input=%s Output=%s Status=%s}", task.id, task.inputPath, task.outputPath, task.status)
}

// OverlayFilter builds the filtergraph that loads the overlay image via a
// movie source and composites it bottom-right with a 10px margin. The
// image path is escaped for ffmpeg's filter argument grammar.
func OverlayFilter(overlayPath string) string {
	return fmt.Sprintf("movie=%s[ov];[0:v][ov]overlay=W-w-10:H-h-10", escapeFilterArgument(overlayPath))
}

// Filter arguments terminate on ':' and may be quoted with single quotes,
// both legal in paths, so escape them along with the escape character.
func escapeFilterArgument(path string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `:`, `\:`, `'`, `\'`)
	return replacer.Replace(path)
}
