package geoscan

import (
	"fmt"
	"os"
	"path/filepath"

	geohash "github.com/TomiHiltunen/geohash-golang"
	"github.com/fairway-tools/fairway/pkg/logger"
	"github.com/golang/geo/s2"
)

var log = logger.Get("GeoScan")

const earthRadiusMetres = 6371000

// Config carries the tunables of the heuristic scan. The defaults are the
// values the original workflow was built around; every one of them can be
// overridden by file, environment or flag.
type Config struct {
	WindowBytes      int     `yaml:"window_bytes" env:"SCAN_WINDOW_BYTES" env-default:"300" validate:"gte=1"`
	TargetLatitude   float64 `yaml:"target_latitude" env:"SCAN_TARGET_LAT" env-default:"37.9361" validate:"gte=-90,lte=90"`
	TargetLongitude  float64 `yaml:"target_longitude" env:"SCAN_TARGET_LON" env-default:"-122.0591" validate:"gte=-180,lte=180"`
	ToleranceDegrees float64 `yaml:"tolerance_degrees" env:"SCAN_TOLERANCE" env-default:"0.0001" validate:"gt=0"`
}

func (config Config) Target() Target {
	return Target{Lat: config.TargetLatitude, Lon: config.TargetLongitude}
}

// ExtractService runs the full salvage pipeline over a media file:
// scan for floats, pair the nearby ones, deduplicate, select.
// The whole input is read into memory before scanning begins, so memory
// cost is proportional to file size.
type ExtractService struct {
	config Config
}

func NewExtractService(config Config) *ExtractService {
	return &ExtractService{config: config}
}

// ExtractFromBytes runs the pipeline stages over an in-memory buffer and
// returns the chosen candidate, or nil when no valid pair was found.
func (service *ExtractService) ExtractFromBytes(data []byte) *CoordinatePair {
	tokens := Scan(data)
	matches := Matches(tokens)
	if dropped := len(tokens) - len(matches); dropped > 0 {
		log.Emit(logger.DEBUG, "Discarded %d numeric-looking tokens which failed to parse\n", dropped)
	}

	pairs := FindPairs(matches, service.config.WindowBytes)
	unique := Dedupe(pairs)
	log.Emit(logger.DEBUG, "Scanned %d bytes: %d floats -> %d candidate pairs -> %d unique\n",
		len(data), len(matches), len(pairs), len(unique))

	target := service.config.Target()
	chosen := Select(unique, target, service.config.ToleranceDegrees)
	if chosen != nil {
		log.Emit(logger.INFO, "Selected %.7f,%.7f (geohash %s, %.0fm from target) from offsets %d/%d\n",
			chosen.Lon, chosen.Lat, geohash.Encode(chosen.Lat, chosen.Lon),
			metresToTarget(*chosen, target), chosen.Pos1, chosen.Pos2)
	}

	return chosen
}

// Extract reads the file at inputPath into memory and runs the pipeline
// over its bytes. Any failure to read the input is fatal to the run.
func (service *ExtractService) Extract(inputPath string) (*CoordinatePair, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file '%s': %w", inputPath, err)
	}

	return service.ExtractFromBytes(data), nil
}

// ExtractToFile runs Extract and writes the report artifact to outputPath,
// creating the parent directory if it's missing. The not-found outcome is
// a success; 'found' distinguishes the two artifact shapes for callers.
func (service *ExtractService) ExtractToFile(inputPath string, outputPath string) (found bool, err error) {
	chosen, err := service.Extract(inputPath)
	if err != nil {
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), os.ModePerm); err != nil {
		return false, fmt.Errorf("failed to create output directory for '%s': %w", outputPath, err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return false, fmt.Errorf("failed to create output file '%s': %w", outputPath, err)
	}
	defer file.Close()

	if err := WriteReport(file, chosen, inputPath); err != nil {
		return false, fmt.Errorf("failed to write report to '%s': %w", outputPath, err)
	}

	return chosen != nil, nil
}

func metresToTarget(pair CoordinatePair, target Target) float64 {
	chosen := s2.LatLngFromDegrees(pair.Lat, pair.Lon)
	goal := s2.LatLngFromDegrees(target.Lat, target.Lon)

	return chosen.Distance(goal).Radians() * earthRadiusMetres
}
