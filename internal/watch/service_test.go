package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fairway-tools/fairway/internal/watch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingExtractor struct {
	mu    sync.Mutex
	calls []string
}

func (r *recordingExtractor) ExtractToFile(inputPath string, outputPath string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, inputPath)
	return true, nil
}

func (r *recordingExtractor) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.calls)
}

func testConfig(t *testing.T) watch.Config {
	t.Helper()

	dir := t.TempDir()
	return watch.Config{
		WatchPath:            filepath.Join(dir, "media"),
		OutputPath:           filepath.Join(dir, "locations"),
		ForceSyncSeconds:     1,
		MinModtimeAgeSeconds: 0,
		Parallelism:          2,
	}
}

func Test_New_CreatesMissingWatchPath(t *testing.T) {
	config := testConfig(t)

	_, err := watch.New(config, &recordingExtractor{})
	require.NoError(t, err)

	info, err := os.Stat(config.WatchPath)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func Test_New_RejectsFileWatchPath(t *testing.T) {
	config := testConfig(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(config.WatchPath), 0755))
	require.NoError(t, os.WriteFile(config.WatchPath, []byte("not a dir"), 0644))

	_, err := watch.New(config, &recordingExtractor{})
	assert.Error(t, err)
}

func Test_DiscoverNewFiles(t *testing.T) {
	config := testConfig(t)
	service, err := watch.New(config, &recordingExtractor{})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(config.WatchPath, "round.mov"), []byte("data"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(config.WatchPath, "nested"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(config.WatchPath, "nested", "clip.mp4"), []byte("data"), 0644))

	service.DiscoverNewFiles()
	require.Len(t, service.Items(), 2)

	// A second pass must not duplicate the queue.
	service.DiscoverNewFiles()
	assert.Len(t, service.Items(), 2)
}

func Test_DiscoverNewFiles_HoldsRecentlyModified(t *testing.T) {
	config := testConfig(t)
	config.MinModtimeAgeSeconds = 60

	service, err := watch.New(config, &recordingExtractor{})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(config.WatchPath, "round.mov"), []byte("data"), 0644))

	service.DiscoverNewFiles()
	assert.Empty(t, service.Items())
}

func Test_Run_ExtractsDiscoveredFiles(t *testing.T) {
	config := testConfig(t)
	extractor := &recordingExtractor{}

	service, err := watch.New(config, extractor)
	require.NoError(t, err)

	mediaPath := filepath.Join(config.WatchPath, "round.mov")
	require.NoError(t, os.WriteFile(mediaPath, []byte("data"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- service.Run(ctx) }()

	require.Eventually(t, func() bool {
		return extractor.callCount() == 1
	}, time.Second*5, time.Millisecond*50)

	items := service.Items()
	require.Len(t, items, 1)
	assert.Equal(t, mediaPath, items[0].Path)

	cancel()
	require.NoError(t, <-done)
}
