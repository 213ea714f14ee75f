package staticmap

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fairway-tools/fairway/pkg/logger"
)

var log = logger.Get("StaticMap")

const staticImageTemplate = "%s/%s/static/geojson(%s)/%.6f,%.6f,%.1f/%dx%d?access_token=%s"

// Config controls the style and framing of fetched map images. The
// access token can come from config, the MAPBOX_TOKEN environment
// variable, or a .env file loaded at startup.
type Config struct {
	BaseURL     string  `yaml:"base_url" env:"MAPBOX_BASE_URL" env-default:"https://api.mapbox.com/styles/v1"`
	AccessToken string  `yaml:"access_token" env:"MAPBOX_TOKEN"`
	Style       string  `yaml:"style" env-default:"mapbox/streets-v12"`
	Zoom        float64 `yaml:"zoom" env-default:"16.5" validate:"gt=0"`
	Width       int     `yaml:"width" env-default:"300" validate:"gte=1"`
	Height      int     `yaml:"height" env-default:"350" validate:"gte=1"`
}

// imageFetcher retrieves static map images centred on a coordinate, with
// a GeoJSON point marker at that coordinate, from the Mapbox Static
// Images API.
type imageFetcher struct {
	config Config
	client *http.Client
}

func NewFetcher(config Config) *imageFetcher {
	return &imageFetcher{
		config: config,
		client: &http.Client{Timeout: time.Second * 15},
	}
}

// ImageURL builds the request URL for a marker-annotated static map
// centred on (lon, lat). GeoJSON ordering is [longitude, latitude].
func (fetcher *imageFetcher) ImageURL(lon float64, lat float64) string {
	point := fmt.Sprintf(`{"type":"Point","coordinates":[%.6f,%.6f]}`, lon, lat)

	return fmt.Sprintf(staticImageTemplate,
		fetcher.config.BaseURL, fetcher.config.Style, url.QueryEscape(point),
		lon, lat, fetcher.config.Zoom,
		fetcher.config.Width, fetcher.config.Height,
		fetcher.config.AccessToken)
}

// FetchImage downloads the map image for (lon, lat) and returns its raw
// bytes. An error will be raised if:
//   - no access token is configured
//   - Mapbox rejects the token (401)
//   - the request fails for any other reason
func (fetcher *imageFetcher) FetchImage(lon float64, lat float64) ([]byte, error) {
	if fetcher.config.AccessToken == "" {
		return nil, &MissingTokenError{}
	}

	imageURL := fetcher.ImageURL(lon, lat)
	log.Emit(logger.DEBUG, "Fetching static map image for %.6f,%.6f\n", lon, lat)

	resp, err := fetcher.client.Get(imageURL)
	if err != nil {
		return nil, &UnknownRequestError{fmt.Sprintf("failed to perform GET to Mapbox: %s", err.Error())}
	}

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, &UnauthorizedError{}
	} else if resp.StatusCode != http.StatusOK {
		return nil, &FailedRequestError{httpCode: resp.StatusCode}
	}

	if err != nil {
		return nil, &UnknownRequestError{fmt.Sprintf("failed to read response body: %s", err.Error())}
	}

	return body, nil
}

type (
	MissingTokenError  struct{}
	UnauthorizedError  struct{}
	FailedRequestError struct {
		httpCode int
	}
	UnknownRequestError struct{ reason string }
)

func (err *MissingTokenError) Error() string {
	return "no Mapbox access token configured (set MAPBOX_TOKEN or static_map.access_token)"
}
func (err *UnauthorizedError) Error() string {
	return "Mapbox returned 401 Unauthorized - the token may be invalid or expired"
}
func (err *FailedRequestError) Error() string {
	return fmt.Sprintf("Mapbox request failure (HTTP %d)", err.httpCode)
}
func (err *UnknownRequestError) Error() string {
	return fmt.Sprintf("unknown error occurred while communicating with Mapbox: %s", err.reason)
}
