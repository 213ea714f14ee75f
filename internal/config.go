package internal

import (
	"fmt"
	"os"

	"github.com/fairway-tools/fairway/internal/geoscan"
	"github.com/fairway-tools/fairway/internal/overlay"
	"github.com/fairway-tools/fairway/internal/roster"
	"github.com/fairway-tools/fairway/internal/staticmap"
	"github.com/fairway-tools/fairway/internal/swapi"
	"github.com/fairway-tools/fairway/internal/watch"
	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// FairwayConfig is the struct used to contain the various user config
// supplied by file, environment, or manually inside the code.
type FairwayConfig struct {
	GeoScan   geoscan.Config   `yaml:"geoscan"`
	Overlay   overlay.Config   `yaml:"overlay"`
	StaticMap staticmap.Config `yaml:"static_map"`
	Planets   swapi.Config     `yaml:"planets"`
	Roster    roster.Config    `yaml:"roster"`
	Watch     watch.Config     `yaml:"watch"`
}

// LoadFromFile loads a YAML configuration file into the config,
// applying environment variable overrides and defaults, then validates
// the result.
func (config *FairwayConfig) LoadFromFile(configPath string) error {
	if err := cleanenv.ReadConfig(configPath, config); err != nil {
		return fmt.Errorf("failed to load configuration from '%s' - %v", configPath, err.Error())
	}

	return config.validate()
}

// LoadFromEnv populates the config from environment variables and
// defaults only, for running without a config file.
func (config *FairwayConfig) LoadFromEnv() error {
	if err := cleanenv.ReadEnv(config); err != nil {
		return fmt.Errorf("failed to load configuration from environment - %v", err.Error())
	}

	return config.validate()
}

// Load reads the config file at configPath when one exists there,
// falling back to environment variables and defaults when it does not.
func (config *FairwayConfig) Load(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return config.LoadFromFile(configPath)
	}

	return config.LoadFromEnv()
}

func (config *FairwayConfig) validate() error {
	if err := validator.New().Struct(config); err != nil {
		return fmt.Errorf("configuration is invalid - %v", err.Error())
	}

	return nil
}
