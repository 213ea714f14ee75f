package roster

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/fairway-tools/fairway/pkg/logger"
)

var log = logger.Get("Roster")

// similarityThreshold is the name similarity above which an existing
// profile is flagged as a likely duplicate of the one being created.
const similarityThreshold = 0.8

// Config holds the on-disk location of the player roster. Each profile
// is a directory under Dir named after the player.
type Config struct {
	Dir string `yaml:"dir" env:"FAIRWAY_ROSTER_DIR" env-default:"profiles"`
}

// Profile describes one player in the roster.
type Profile struct {
	Name       string
	Hand       string
	HomeCourse string
}

type rosterManager struct {
	config Config
}

func NewManager(config Config) *rosterManager {
	return &rosterManager{config: config}
}

// Profiles lists the names of every profile currently in the roster.
func (mgr *rosterManager) Profiles() ([]string, error) {
	entries, err := os.ReadDir(mgr.config.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read roster directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}

	return names, nil
}

// SimilarProfiles returns existing profile names that closely resemble
// the given name, to catch near-duplicate entries ('Jon' vs 'John')
// before a new profile is created.
func (mgr *rosterManager) SimilarProfiles(name string) ([]string, error) {
	existing, err := mgr.Profiles()
	if err != nil {
		return nil, err
	}

	metric := metrics.NewJaroWinkler()
	similar := make([]string, 0)
	for _, candidate := range existing {
		score := strutil.Similarity(strings.ToLower(name), strings.ToLower(candidate), metric)
		if score >= similarityThreshold {
			similar = append(similar, candidate)
		}
	}

	return similar, nil
}

// Create writes the profile directory with its info file and, when a
// picture path is given, a copy of the picture. An error is returned if
// a profile of the same name already exists.
func (mgr *rosterManager) Create(profile Profile, picturePath string) error {
	if strings.TrimSpace(profile.Name) == "" {
		return fmt.Errorf("profile name cannot be empty")
	}

	profileDir := filepath.Join(mgr.config.Dir, profile.Name)
	if _, err := os.Stat(profileDir); err == nil {
		return fmt.Errorf("profile '%s' already exists", profile.Name)
	}

	if err := os.MkdirAll(profileDir, 0755); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}

	info := fmt.Sprintf("Name: %s\nHand: %s\nHome course: %s\n",
		profile.Name, profile.Hand, profile.HomeCourse)
	if err := os.WriteFile(filepath.Join(profileDir, "info.txt"), []byte(info), 0644); err != nil {
		return fmt.Errorf("failed to write profile info: %w", err)
	}

	if picturePath != "" {
		if err := copyPicture(picturePath, profileDir); err != nil {
			return err
		}
	}

	log.Emit(logger.SUCCESS, "Created profile '%s' in %s\n", profile.Name, profileDir)
	return nil
}

func copyPicture(picturePath string, profileDir string) error {
	source, err := os.Open(picturePath)
	if err != nil {
		return fmt.Errorf("failed to open profile picture: %w", err)
	}
	defer source.Close()

	destPath := filepath.Join(profileDir, "picture"+filepath.Ext(picturePath))
	dest, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create profile picture copy: %w", err)
	}
	defer dest.Close()

	if _, err := io.Copy(dest, source); err != nil {
		return fmt.Errorf("failed to copy profile picture: %w", err)
	}

	return nil
}

// RunInteractive walks the user through creating a profile, reading
// answers from in and writing prompts to out. If the chosen name closely
// matches an existing profile the user must confirm before it is created.
func (mgr *rosterManager) RunInteractive(in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	name, err := prompt(reader, out, "Player name: ")
	if err != nil {
		return err
	}

	similar, err := mgr.SimilarProfiles(name)
	if err != nil {
		return err
	}

	if len(similar) > 0 {
		log.Emit(logger.WARNING, "Profile name '%s' is similar to existing profile(s): %s\n", name, strings.Join(similar, ", "))
		answer, err := prompt(reader, out, "Create anyway? [y/N]: ")
		if err != nil {
			return err
		}
		if !strings.EqualFold(answer, "y") {
			return fmt.Errorf("profile creation aborted")
		}
	}

	hand, err := prompt(reader, out, "Dominant hand (left/right): ")
	if err != nil {
		return err
	}

	course, err := prompt(reader, out, "Home course: ")
	if err != nil {
		return err
	}

	picture, err := prompt(reader, out, "Profile picture path (blank for none): ")
	if err != nil {
		return err
	}

	return mgr.Create(Profile{Name: name, Hand: hand, HomeCourse: course}, picture)
}

func prompt(reader *bufio.Reader, out io.Writer, question string) (string, error) {
	if _, err := fmt.Fprint(out, question); err != nil {
		return "", err
	}

	answer, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}

	return strings.TrimSpace(answer), nil
}
