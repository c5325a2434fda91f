// Package config loads telly application configuration from TOML or YAML
// files.
//
// The layout mirrors the widget tree: options for a widget type live under
// widgets.<type>. For example, to disable the component container fade:
//
//	[widgets.componentcontainer]
//	fade = false
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/BrandonKowalski/telly/pkg/telly/constants"
)

// Config is the root configuration document.
type Config struct {
	Locale  string        `toml:"locale" yaml:"locale"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
	Widgets WidgetsConfig `toml:"widgets" yaml:"widgets"`
	Device  DeviceConfig  `toml:"device" yaml:"device"`
	I18n    I18nConfig    `toml:"i18n" yaml:"i18n"`
}

// LoggingConfig controls the package logger.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"` // debug, info, warn, error
	Path  string `toml:"path" yaml:"path"`   // Optional log file
}

// WidgetsConfig groups per widget type options.
type WidgetsConfig struct {
	ComponentContainer ComponentContainerConfig `toml:"componentcontainer" yaml:"componentcontainer"`
}

// ComponentContainerConfig configures every ComponentContainer.
type ComponentContainerConfig struct {
	// Fade animates components in when shown. Nil means enabled.
	Fade *bool `toml:"fade" yaml:"fade"`
}

// DeviceConfig configures the output backend.
type DeviceConfig struct {
	Backend  string      `toml:"backend" yaml:"backend"` // term or sdl
	Width    int32       `toml:"width" yaml:"width"`
	Height   int32       `toml:"height" yaml:"height"`
	FontPath string      `toml:"font_path" yaml:"font_path"`
	FontSize int         `toml:"font_size" yaml:"font_size"`
	Input    string      `toml:"input" yaml:"input"` // evdev device path, optional
	Theme    ThemeConfig `toml:"theme" yaml:"theme"`
}

// ThemeConfig overrides theme colours with 0xRRGGBB values.
type ThemeConfig struct {
	Preset         string `toml:"preset" yaml:"preset"`
	HighlightColor uint32 `toml:"highlight" yaml:"highlight"`
	AccentColor    uint32 `toml:"accent" yaml:"accent"`
	TextColor      uint32 `toml:"text" yaml:"text"`
	Background     uint32 `toml:"background" yaml:"background"`
}

// I18nConfig lists message files for label localisation.
type I18nConfig struct {
	MessageFiles []string `toml:"message_files" yaml:"message_files"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Locale:  "en",
		Logging: LoggingConfig{Level: "warn"},
		Device: DeviceConfig{
			Backend:  "term",
			Width:    1280,
			Height:   720,
			FontSize: 28,
		},
	}
}

// FadeEnabled reports whether component containers should animate shows.
func (c Config) FadeEnabled() bool {
	return c.Widgets.ComponentContainer.Fade == nil || *c.Widgets.ComponentContainer.Fade
}

// Load reads a configuration file, choosing the decoder by extension.
// Values not present in the file keep their defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return Parse(data, FormatTOML)
	case ".yaml", ".yml":
		return Parse(data, FormatYAML)
	default:
		return Config{}, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
}

// Format identifies a configuration encoding.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// Parse decodes configuration bytes on top of Default.
func Parse(data []byte, format Format) (Config, error) {
	cfg := Default()

	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("decode toml config: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode yaml config: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("unknown config format %d", format)
	}

	return cfg, nil
}

// LoadFromEnv loads the file named by TELLY_CONFIG, or returns Default when
// the variable is unset. TELLY_LOG_LEVEL and TELLY_LOCALE override the file.
func LoadFromEnv() (Config, error) {
	cfg := Default()

	if path := os.Getenv(constants.ConfigPathEnvVar); path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return Config{}, err
		}
	}

	ApplyEnv(&cfg)
	return cfg, nil
}

// ApplyEnv applies environment overrides to cfg.
func ApplyEnv(cfg *Config) {
	if level := os.Getenv(constants.LogLevelEnvVar); level != "" {
		cfg.Logging.Level = level
	}
	if locale := os.Getenv(constants.LocaleEnvVar); locale != "" {
		cfg.Locale = locale
	}
}

// Bool returns a pointer to b, for building configs in code.
func Bool(b bool) *bool {
	return &b
}
