package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fairway-tools/fairway/pkg/logger"
	"github.com/fairway-tools/fairway/pkg/worker"
	"github.com/google/uuid"
	"github.com/rjeczalik/notify"
)

var log = logger.Get("WatchServ")

type ItemState int

const (
	IDLE ItemState = iota
	EXTRACTING
	COMPLETE
	TROUBLED
)

func (state ItemState) String() string {
	switch state {
	case IDLE:
		return "IDLE"
	case EXTRACTING:
		return "EXTRACTING"
	case COMPLETE:
		return "COMPLETE"
	case TROUBLED:
		return "TROUBLED"
	}

	return "UNKNOWN"
}

// Item is one media file queued for coordinate extraction.
type Item struct {
	ID    uuid.UUID
	Path  string
	State ItemState
	Err   error
}

// Config controls the directory watched for new media files and how the
// extraction workers behave. Files younger than MinModtimeAgeSeconds are
// skipped until a later sync so partially written files are not read.
type Config struct {
	WatchPath            string `yaml:"watch_path" env:"FAIRWAY_WATCH_PATH" env-default:"media" validate:"required"`
	OutputPath           string `yaml:"output_path" env:"FAIRWAY_WATCH_OUTPUT" env-default:"locations" validate:"required"`
	ForceSyncSeconds     int    `yaml:"force_sync_seconds" env-default:"30" validate:"gte=1"`
	MinModtimeAgeSeconds int    `yaml:"min_modtime_age_seconds" env-default:"2" validate:"gte=0"`
	Parallelism          int    `yaml:"parallelism" env-default:"2" validate:"gte=1"`
}

func (config Config) minModtimeAge() time.Duration {
	return time.Duration(config.MinModtimeAgeSeconds) * time.Second
}

type extractor interface {
	ExtractToFile(inputPath string, outputPath string) (bool, error)
}

// watchService watches a directory for new media files and runs the
// coordinate extraction over each one it finds, writing the location
// artifact next to the configured output path. Detection is event
// driven with a periodic force-sync as a safety net.
type watchService struct {
	*sync.Mutex
	extractor

	config     Config
	items      []*Item
	workerPool *worker.WorkerPool
}

// New creates a watch service using the provided config for subsequent
// calls to Run.
//
// The config's WatchPath is validated to be an existing directory. If
// the directory is missing it will be created; if the path points to an
// existing FILE, an error is returned.
func New(config Config, extract extractor) (*watchService, error) {
	if info, err := os.Stat(config.WatchPath); err == nil {
		if !info.IsDir() {
			return nil, fmt.Errorf("watch path '%s' is not a directory", config.WatchPath)
		}
	} else if errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(config.WatchPath, os.ModeDir|os.ModePerm); err != nil {
			return nil, fmt.Errorf("watch path '%s' could not be created: %w", config.WatchPath, err)
		}
	} else {
		return nil, fmt.Errorf("watch path '%s' could not be accessed: %w", config.WatchPath, err)
	}

	service := &watchService{
		Mutex:      &sync.Mutex{},
		extractor:  extract,
		config:     config,
		items:      make([]*Item, 0),
		workerPool: worker.NewWorkerPool(),
	}

	for i := 0; i < config.Parallelism; i++ {
		label := fmt.Sprintf("extract-worker-%d", i)
		service.workerPool.PushWorker(worker.NewWorker(label, service.processItems))
	}

	return service, nil
}

// Run is the main entry point of this service. It listens to file
// system change events under the watch path, and regularly polls the
// directory irrespective of the watcher. To kill the service, the
// calling code should cancel the context provided.
func (service *watchService) Run(ctx context.Context) error {
	fsNotifyChannel := make(chan notify.EventInfo, 16)
	if err := notify.Watch(filepath.Join(service.config.WatchPath, "..."), fsNotifyChannel, notify.Create, notify.Rename, notify.Write); err != nil {
		return fmt.Errorf("failed to watch '%s': %w", service.config.WatchPath, err)
	}
	defer notify.Stop(fsNotifyChannel)

	if err := service.workerPool.Start(); err != nil {
		return err
	}
	defer service.workerPool.Close()

	forceSyncTicker := time.NewTicker(time.Second * time.Duration(service.config.ForceSyncSeconds))
	defer forceSyncTicker.Stop()

	service.DiscoverNewFiles()

	for {
		select {
		case <-fsNotifyChannel:
			service.DiscoverNewFiles()
		case <-forceSyncTicker.C:
			service.DiscoverNewFiles()
		case <-ctx.Done():
			return nil
		}
	}
}

// processItems is the worker task for this service. It drains the IDLE
// items from the queue, extracting coordinates from each, then sleeps
// until the pool signals that new items have arrived.
func (service *watchService) processItems(w worker.Worker) error {
	for {
		for item := service.claimIdleItem(); item != nil; item = service.claimIdleItem() {
			service.extractItem(item)
		}

		if !w.Sleep() {
			return nil
		}
	}
}

func (service *watchService) extractItem(item *Item) {
	outputPath := service.outputPathFor(item.Path)
	found, err := service.ExtractToFile(item.Path, outputPath)

	service.Lock()
	defer service.Unlock()

	if err != nil {
		item.State = TROUBLED
		item.Err = err
		log.Emit(logger.ERROR, "Extraction for '%s' failed: %s\n", item.Path, err.Error())
		return
	}

	item.State = COMPLETE
	if found {
		log.Emit(logger.SUCCESS, "Extracted location from '%s' to '%s'\n", item.Path, outputPath)
	} else {
		log.Emit(logger.INFO, "No location found in '%s'\n", item.Path)
	}
}

// DiscoverNewFiles scans the watch path for files not yet represented by
// an item in the queue. Files modified too recently are left for a later
// sync.
//
// Note: this function takes ownership of the mutex, and releases it when returning
func (service *watchService) DiscoverNewFiles() {
	service.Lock()
	defer service.Unlock()

	known := make(map[string]bool, len(service.items))
	for _, item := range service.items {
		known[item.Path] = true
	}

	newPaths, err := walkWatchDirectory(service.config.WatchPath, known)
	if err != nil {
		log.Emit(logger.ERROR, "File system polling failed: %s\n", err.Error())
		return
	}

	minModtimeAge := service.config.minModtimeAge()
	dirty := false
	for path, info := range newPaths {
		if time.Since(info.ModTime()) < minModtimeAge {
			continue
		}

		service.items = append(service.items, &Item{
			ID:    uuid.New(),
			Path:  path,
			State: IDLE,
		})
		dirty = true
	}

	if dirty {
		service.workerPool.WakeupWorkers()
	}
}

// Items returns a snapshot of the queue.
func (service *watchService) Items() []Item {
	service.Lock()
	defer service.Unlock()

	snapshot := make([]Item, 0, len(service.items))
	for _, item := range service.items {
		snapshot = append(snapshot, *item)
	}

	return snapshot
}

// claimIdleItem finds an IDLE item and marks it EXTRACTING so no other
// worker claims it once the lock is released.
//
// Note: this function takes ownership of the mutex, and releases it when returning
func (service *watchService) claimIdleItem() *Item {
	service.Lock()
	defer service.Unlock()

	for _, item := range service.items {
		if item.State == IDLE {
			item.State = EXTRACTING
			return item
		}
	}

	return nil
}

func (service *watchService) outputPathFor(inputPath string) string {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	return filepath.Join(service.config.OutputPath, base+".location.csv")
}

// walkWatchDirectory walks the directory and returns every file inside,
// nested directories included, whose path is not in the 'known' map.
func walkWatchDirectory(rootDirPath string, known map[string]bool) (map[string]fs.FileInfo, error) {
	found := make(map[string]fs.FileInfo)
	err := filepath.WalkDir(rootDirPath, func(path string, dir fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if dir.IsDir() {
			return nil
		}

		info, err := dir.Info()
		if err != nil {
			return err
		}

		if _, ok := known[path]; !ok {
			found[path] = info
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk file system: %s", err.Error())
	}

	return found, nil
}
