package core

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFilename is searched in the current directory and its parents.
const ConfigFilename = ".sprout.toml"

// How many parent directories to traverse before using the default configuration
const maxDepth = 10

// Default .sprout.toml content
const DefaultConfig = `
[presentation]
preset = "flashcard"

[engine]
debounce = "100ms"
frame_delay = "16ms"
animation_duration = "200ms"
`

var (
	// Lazy-load configuration and ensure a single read
	configOnce      sync.Once
	configSingleton *Config
)

// Preset selects which sections are visible and how they are initially displayed.
type Preset string

const (
	PresetFlashcard Preset = "flashcard"
	PresetAccordion Preset = "accordion"
	PresetMinimal   Preset = "minimal"
	PresetGuidebook Preset = "guidebook"
	PresetMarkdown  Preset = "markdown"
)

// Presets lists the supported presets. The first one is the default.
var Presets = []Preset{
	PresetFlashcard,
	PresetAccordion,
	PresetMinimal,
	PresetGuidebook,
	PresetMarkdown,
}

func ParsePreset(value string) (Preset, error) {
	if value == "" {
		return PresetFlashcard, nil
	}
	for _, preset := range Presets {
		if strings.EqualFold(string(preset), value) {
			return preset, nil
		}
	}
	return "", fmt.Errorf("unknown preset %q", value)
}

// AlwaysExpanded returns if cards using this preset ignore the collapsed setting.
func (p Preset) AlwaysExpanded() bool {
	return p == PresetGuidebook || p == PresetMarkdown
}

// PresentationConfig is fully populated. No field is optional at the point of use.
type PresentationConfig struct {
	Preset      Preset
	ShowTitle   bool
	ShowInfo    bool
	ShowGroups  bool
	ShowAnswer  bool
	Collapsed   bool // Multi-part sections start collapsed
	RichContent bool // Render Markdown into HTML
	Columns     int  // Number of columns for a run of cards
}

// Defaults returns the configuration of the preset before overrides.
func (p Preset) Defaults() PresentationConfig {
	switch p {
	case PresetAccordion:
		return PresentationConfig{Preset: p, ShowTitle: true, ShowInfo: true, ShowGroups: false, ShowAnswer: true, Collapsed: true, RichContent: true, Columns: 1}
	case PresetMinimal:
		return PresentationConfig{Preset: p, ShowTitle: false, ShowInfo: false, ShowGroups: false, ShowAnswer: true, Collapsed: true, RichContent: true, Columns: 2}
	case PresetGuidebook:
		return PresentationConfig{Preset: p, ShowTitle: true, ShowInfo: true, ShowGroups: true, ShowAnswer: true, Collapsed: false, RichContent: true, Columns: 1}
	case PresetMarkdown:
		return PresentationConfig{Preset: p, ShowTitle: true, ShowInfo: true, ShowGroups: true, ShowAnswer: true, Collapsed: false, RichContent: false, Columns: 1}
	default:
		return PresentationConfig{Preset: PresetFlashcard, ShowTitle: true, ShowInfo: true, ShowGroups: true, ShowAnswer: true, Collapsed: true, RichContent: true, Columns: 2}
	}
}

// Note: Fields must be public for toml package to unmarshall
type Settings struct {
	Presentation SettingsPresentation `toml:"presentation"`
	Engine       SettingsEngine       `toml:"engine"`
}
type SettingsPresentation struct {
	Preset      string `toml:"preset"`
	ShowTitle   *bool  `toml:"show_title"`
	ShowInfo    *bool  `toml:"show_info"`
	ShowGroups  *bool  `toml:"show_groups"`
	ShowAnswer  *bool  `toml:"show_answer"`
	Collapsed   *bool  `toml:"collapsed"`
	RichContent *bool  `toml:"rich_content"`
	Columns     *int   `toml:"columns"`
}
type SettingsEngine struct {
	Debounce          string `toml:"debounce"`
	FrameDelay        string `toml:"frame_delay"`
	AnimationDuration string `toml:"animation_duration"`
}

// Config is the normalized configuration consumed by every component.
type Config struct {
	Presentation      PresentationConfig
	Debounce          time.Duration
	FrameDelay        time.Duration
	AnimationDuration time.Duration
}

// DefaultConfiguration returns the configuration when no file exists.
func DefaultConfiguration() Config {
	settings := MustParseSettings(DefaultConfig)
	config, err := settings.Normalize()
	if err != nil {
		panic(err)
	}
	return config
}

// ParseSettings reads the TOML content. Unknown fields are rejected.
func ParseSettings(content string) (Settings, error) {
	var settings Settings
	decoder := toml.NewDecoder(bytes.NewBufferString(content))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&settings); err != nil {
		return Settings{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return settings, nil
}

func MustParseSettings(content string) Settings {
	settings, err := ParseSettings(content)
	if err != nil {
		panic(err)
	}
	return settings
}

// Normalize resolves overrides once. The result contains no optional value.
func (s Settings) Normalize() (Config, error) {
	preset, err := ParsePreset(s.Presentation.Preset)
	if err != nil {
		return Config{}, err
	}

	presentation := preset.Defaults()
	override := func(target *bool, value *bool) {
		if value != nil {
			*target = *value
		}
	}
	override(&presentation.ShowTitle, s.Presentation.ShowTitle)
	override(&presentation.ShowInfo, s.Presentation.ShowInfo)
	override(&presentation.ShowGroups, s.Presentation.ShowGroups)
	override(&presentation.ShowAnswer, s.Presentation.ShowAnswer)
	override(&presentation.Collapsed, s.Presentation.Collapsed)
	override(&presentation.RichContent, s.Presentation.RichContent)
	if s.Presentation.Columns != nil {
		if *s.Presentation.Columns < 1 {
			return Config{}, fmt.Errorf("invalid columns %d", *s.Presentation.Columns)
		}
		presentation.Columns = *s.Presentation.Columns
	}
	// Some presets ignore overrides
	if preset.AlwaysExpanded() {
		presentation.Collapsed = false
	}
	if preset == PresetMarkdown {
		presentation.RichContent = false
	}

	config := Config{
		Presentation:      presentation,
		Debounce:          100 * time.Millisecond,
		FrameDelay:        16 * time.Millisecond,
		AnimationDuration: 200 * time.Millisecond,
	}
	durations := []struct {
		name   string
		value  string
		target *time.Duration
	}{
		{"debounce", s.Engine.Debounce, &config.Debounce},
		{"frame_delay", s.Engine.FrameDelay, &config.FrameDelay},
		{"animation_duration", s.Engine.AnimationDuration, &config.AnimationDuration},
	}
	for _, duration := range durations {
		if duration.value == "" {
			continue
		}
		d, err := time.ParseDuration(duration.value)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", duration.name, err)
		}
		if d < 0 {
			return Config{}, fmt.Errorf("invalid %s: negative duration %s", duration.name, d)
		}
		*duration.target = d
	}

	return config, nil
}

// ReadConfigFromDirectory searches the configuration file in the directory or its parents.
func ReadConfigFromDirectory(dir string) (Config, error) {
	settings, err := ReadSettingsFromDirectory(dir)
	if err != nil {
		return Config{}, err
	}
	return settings.Normalize()
}

// ReadConfigFromFile reads the given configuration file.
func ReadConfigFromFile(path string) (Config, error) {
	settings, err := ReadSettingsFromFile(path)
	if err != nil {
		return Config{}, err
	}
	return settings.Normalize()
}

// ReadSettingsFromDirectory is similar to ReadConfigFromDirectory but returns the settings before normalization.
func ReadSettingsFromDirectory(dir string) (Settings, error) {
	path, err := locateConfigFile(dir)
	if err != nil {
		return Settings{}, err
	}
	if path == "" {
		return MustParseSettings(DefaultConfig), nil
	}
	return ReadSettingsFromFile(path)
}

// ReadSettingsFromFile is similar to ReadConfigFromFile but returns the settings before normalization.
func ReadSettingsFromFile(path string) (Settings, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("unable to read configuration %q: %w", path, err)
	}
	settings, err := ParseSettings(string(content))
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return settings, nil
}

func locateConfigFile(dir string) (string, error) {
	currentDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for i := 0; i < maxDepth; i++ {
		path := filepath.Join(currentDir, ConfigFilename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Root reached
			break
		}
		currentDir = parentDir
	}
	return "", nil
}

// HomeDir returns the directory where the configuration is searched.
func HomeDir() string {
	if dir, ok := os.LookupEnv("SPROUT_HOME"); ok {
		return dir
	}
	dir, err := os.Getwd()
	if err != nil {
		CurrentLogger().Fatalf("Unable to determine current directory: %v", err)
	}
	return dir
}

// CurrentConfig returns the configuration used by the command line.
func CurrentConfig() *Config {
	configOnce.Do(func() {
		config, err := ReadConfigFromDirectory(HomeDir())
		if err != nil {
			CurrentLogger().Fatal(err)
		}
		configSingleton = &config
	})
	return configSingleton
}
