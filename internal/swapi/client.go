package swapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fairway-tools/fairway/pkg/logger"
)

var log = logger.Get("SWAPI")

// DefaultPlanetURL is the resource fetched when no URL is given. Planet 3
// (Yavin IV) has a nicely varied payload for CSV flattening demos.
const DefaultPlanetURL = "https://swapi.dev/api/planets/3/"

// Config controls the planet API client. The URL may point at a single
// resource or a paginated listing; both decode to shapes the CSV export
// layer understands.
type Config struct {
	PlanetURL      string `yaml:"planet_url" env:"SWAPI_PLANET_URL" env-default:"https://swapi.dev/api/planets/3/"`
	RequestTimeout int    `yaml:"request_timeout_seconds" env-default:"10" validate:"gte=1"`
}

type planetClient struct {
	config Config
	client *http.Client
}

func NewClient(config Config) *planetClient {
	if config.PlanetURL == "" {
		config.PlanetURL = DefaultPlanetURL
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = 10
	}

	return &planetClient{
		config: config,
		client: &http.Client{Timeout: time.Duration(config.RequestTimeout) * time.Second},
	}
}

// FetchPlanets retrieves the configured resource and decodes the JSON
// document without imposing a schema on it. An error will be raised if:
//   - the request cannot be performed
//   - the API answers with a non-200 status
//   - the body is not valid JSON
func (c *planetClient) FetchPlanets() (interface{}, error) {
	log.Emit(logger.DEBUG, "Fetching planet data from %s\n", c.config.PlanetURL)

	req, err := http.NewRequest(http.MethodGet, c.config.PlanetURL, nil)
	if err != nil {
		return nil, &UnknownRequestError{fmt.Sprintf("failed to construct request: %s", err.Error())}
	}
	req.Header.Set("User-Agent", "fairway/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &UnknownRequestError{fmt.Sprintf("failed to perform GET to planet API: %s", err.Error())}
	}

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusNotFound {
		return nil, &NoSuchPlanetError{url: c.config.PlanetURL}
	} else if resp.StatusCode != http.StatusOK {
		return nil, &FailedRequestError{httpCode: resp.StatusCode}
	}

	if err != nil {
		return nil, &UnknownRequestError{fmt.Sprintf("failed to read response body: %s", err.Error())}
	}

	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, &UnknownRequestError{fmt.Sprintf("failed to decode response body: %s", err.Error())}
	}

	return data, nil
}

type (
	NoSuchPlanetError  struct{ url string }
	FailedRequestError struct {
		httpCode int
	}
	UnknownRequestError struct{ reason string }
)

func (err *NoSuchPlanetError) Error() string {
	return fmt.Sprintf("planet resource %s does not exist", err.url)
}
func (err *FailedRequestError) Error() string {
	return fmt.Sprintf("planet API request failure (HTTP %d)", err.httpCode)
}
func (err *UnknownRequestError) Error() string {
	return fmt.Sprintf("unknown error occurred while communicating with planet API: %s", err.reason)
}
