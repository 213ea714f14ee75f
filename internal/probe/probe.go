package probe

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"

	"github.com/fairway-tools/fairway/pkg/logger"
)

var log = logger.Get("Probe")

// QuickTime records the capture location in ISO6709 form under the first
// tag; some muxers use the bare 'location' key instead.
const (
	locationTagISO6709 = "com.apple.quicktime.location.ISO6709"
	locationTagPlain   = "location"
)

// ISO6709 packs latitude then longitude as signed decimal degrees with no
// separator, e.g. "+37.9361-122.0591+021.000/". The second group must be
// signed or the split would be ambiguous.
var iso6709Matcher = regexp.MustCompile(`([-+]?\d+(?:\.\d+)?)([-+]\d+(?:\.\d+)?)`)

type Coordinates struct {
	Lat float64
	Lon float64
}

type Config struct {
	FfmpegBinPath  string `yaml:"ffmpeg_binary" env:"FFMPEG_BIN"`
	FfprobeBinPath string `yaml:"ffprobe_binary" env:"FFPROBE_BIN"`
}

type ffprobeOutput struct {
	Format struct {
		Tags map[string]string `json:"tags"`
	} `json:"format"`
	Streams []struct {
		Tags map[string]string `json:"tags"`
	} `json:"streams"`
}

// FileLocation asks ffprobe for the container metadata of the file at
// 'path' and looks for a location tag on the format or any stream. A file
// with no location tag returns (nil, nil); only a failure to probe at all
// is an error.
func FileLocation(config Config, path string) (*Coordinates, error) {
	binary := config.FfprobeBinPath
	if binary == "" {
		binary = "ffprobe"
	}

	output, err := exec.Command(binary, "-v", "quiet", "-print_format", "json", "-show_format", "-show_streams", path).Output()
	if err != nil {
		return nil, fmt.Errorf("failed to extract file metadata information using ffprobe: %s", err.Error())
	}

	var probed ffprobeOutput
	if err := json.Unmarshal(output, &probed); err != nil {
		return nil, fmt.Errorf("failed to decode ffprobe output for '%s': %w", path, err)
	}

	for _, candidate := range locationCandidates(probed) {
		if coordinates := ParseISO6709(candidate); coordinates != nil {
			log.Emit(logger.DEBUG, "Found location tag '%s' on %s\n", candidate, path)
			return coordinates, nil
		}
	}

	return nil, nil
}

func locationCandidates(probed ffprobeOutput) []string {
	candidates := make([]string, 0)
	appendTags := func(tags map[string]string) {
		if value, ok := tags[locationTagISO6709]; ok {
			candidates = append(candidates, value)
		} else if value, ok := tags[locationTagPlain]; ok {
			candidates = append(candidates, value)
		}
	}

	appendTags(probed.Format.Tags)
	for _, stream := range probed.Streams {
		appendTags(stream.Tags)
	}

	return candidates
}

// ParseISO6709 extracts (lat, lon) from an ISO6709 location string.
// Returns nil if the string does not contain a parseable coordinate pair.
func ParseISO6709(value string) *Coordinates {
	groups := iso6709Matcher.FindStringSubmatch(value)
	if len(groups) != 3 {
		return nil
	}

	lat, latErr := strconv.ParseFloat(groups[1], 64)
	lon, lonErr := strconv.ParseFloat(groups[2], 64)
	if latErr != nil || lonErr != nil {
		return nil
	}

	return &Coordinates{Lat: lat, Lon: lon}
}
