package staticmap_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fairway-tools/fairway/internal/staticmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fetcherConfig(baseURL string, token string) staticmap.Config {
	return staticmap.Config{
		BaseURL:     baseURL,
		AccessToken: token,
		Style:       "mapbox/streets-v12",
		Zoom:        16.5,
		Width:       300,
		Height:      350,
	}
}

func Test_ImageURL(t *testing.T) {
	fetcher := staticmap.NewFetcher(fetcherConfig("https://api.mapbox.com/styles/v1", "tok"))
	imageURL := fetcher.ImageURL(-122.0591, 37.9361)

	assert.True(t, strings.HasPrefix(imageURL, "https://api.mapbox.com/styles/v1/mapbox/streets-v12/static/geojson("))
	assert.Contains(t, imageURL, "/-122.059100,37.936100,16.5/300x350?access_token=tok")

	// The GeoJSON point must be URL-escaped and ordered [lon, lat].
	assert.Contains(t, imageURL, "%22coordinates%22%3A%5B-122.059100%2C37.936100%5D")
	assert.NotContains(t, imageURL, `{"type"`)
}

func Test_FetchImage(t *testing.T) {
	t.Run("Successful fetch returns image bytes", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "tok", r.URL.Query().Get("access_token"))
			_, _ = w.Write([]byte("png-bytes"))
		}))
		defer server.Close()

		fetcher := staticmap.NewFetcher(fetcherConfig(server.URL, "tok"))
		body, err := fetcher.FetchImage(-122.0591, 37.9361)
		require.NoError(t, err)
		assert.Equal(t, []byte("png-bytes"), body)
	})

	t.Run("Unauthorized token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		fetcher := staticmap.NewFetcher(fetcherConfig(server.URL, "bad"))
		_, err := fetcher.FetchImage(-122.0591, 37.9361)

		var unauthorized *staticmap.UnauthorizedError
		require.ErrorAs(t, err, &unauthorized)
	})

	t.Run("Server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		fetcher := staticmap.NewFetcher(fetcherConfig(server.URL, "tok"))
		_, err := fetcher.FetchImage(-122.0591, 37.9361)

		var failed *staticmap.FailedRequestError
		require.ErrorAs(t, err, &failed)
	})

	t.Run("Missing token short-circuits before any request", func(t *testing.T) {
		fetcher := staticmap.NewFetcher(fetcherConfig("http://127.0.0.1:1", ""))
		_, err := fetcher.FetchImage(-122.0591, 37.9361)

		var missing *staticmap.MissingTokenError
		require.ErrorAs(t, err, &missing)
	})
}
