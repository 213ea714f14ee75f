package overlay_test

import (
	"testing"

	"github.com/fairway-tools/fairway/internal/overlay"
	"github.com/stretchr/testify/assert"
)

func Test_OverlayFilter(t *testing.T) {
	tests := []struct {
		summary  string
		path     string
		expected string
	}{
		{
			summary:  "Plain path",
			path:     "/tmp/map.png",
			expected: "movie=/tmp/map.png[ov];[0:v][ov]overlay=W-w-10:H-h-10",
		},
		{
			summary:  "Colon in path is escaped",
			path:     "C:/maps/map.png",
			expected: `movie=C\:/maps/map.png[ov];[0:v][ov]overlay=W-w-10:H-h-10`,
		},
		{
			summary:  "Quote in path is escaped",
			path:     "/tmp/mark's map.png",
			expected: `movie=/tmp/mark\'s map.png[ov];[0:v][ov]overlay=W-w-10:H-h-10`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.summary, func(t *testing.T) {
			assert.Equal(t, tt.expected, overlay.OverlayFilter(tt.path))
		})
	}
}

func Test_NewTask_StartsWaiting(t *testing.T) {
	task := overlay.NewTask(overlay.Config{}, "in.mov", "map.png", "out.mov")
	assert.Equal(t, overlay.WAITING, task.Status())
	assert.Nil(t, task.LastProgress())
	assert.NotEmpty(t, task.Id())
}
