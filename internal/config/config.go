// Package config loads the runner settings: which presenter to use, window
// scale and tick rates, and the optional overlay and sound.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// Presenter names where frames go.
type Presenter string

const (
	PresenterWindow   Presenter = "window"
	PresenterHeadless Presenter = "headless"
	PresenterTerminal Presenter = "term"
)

// Config is the runner configuration read from YAML.
type Config struct {
	Presenter Presenter `yaml:"presenter"`
	Title     string    `yaml:"title"`
	Scale     int       `yaml:"scale"`
	TPS       int       `yaml:"tps"`
	HUD       bool      `yaml:"hud"`
	Sound     bool      `yaml:"sound"`
	Volume    uint8     `yaml:"volume"`
	LogLevel  string    `yaml:"log_level"`

	Headless HeadlessConfig `yaml:"headless"`
	Terminal TerminalConfig `yaml:"terminal"`
}

// HeadlessConfig sets the tick rate and optional tick limit of headless runs.
type HeadlessConfig struct {
	Hz    int    `yaml:"hz"`
	Ticks uint64 `yaml:"ticks"`
}

// TerminalConfig sets the redraw rate of the terminal presenter.
type TerminalConfig struct {
	Hz int `yaml:"hz"`
}

//go:embed default.yaml
var defaultYAML []byte

const fileName = "config.yaml"

// Default returns the embedded defaults.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded default.yaml: %v", err))
	}
	return cfg
}

// Load returns the defaults overlaid with the first config file found.
// Search order: customPath -> user config dir (boxdemo/config.yaml) ->
// ./boxdemo.yaml. A missing customPath is an error; missing implicit files
// are skipped. Load does not validate: callers apply their overrides first
// and then call Validate.
func Load(customPath string) (Config, string, error) {
	cfg := Default()

	if customPath != "" {
		if err := readInto(customPath, &cfg); err != nil {
			return cfg, "", err
		}
		return cfg, customPath, nil
	}

	for _, p := range []string{userConfigPath(), "boxdemo.yaml"} {
		if p == "" {
			continue
		}
		err := readInto(p, &cfg)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return cfg, "", err
		}
		return cfg, p, nil
	}
	return cfg, "", nil
}

func readInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func userConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "boxdemo", fileName)
}

// Validate rejects values no runner can use.
func (c Config) Validate() error {
	switch c.Presenter {
	case PresenterWindow, PresenterHeadless, PresenterTerminal:
	default:
		return fmt.Errorf("config: unknown presenter %q", c.Presenter)
	}
	if c.Scale < 1 {
		return fmt.Errorf("config: scale must be >= 1, got %d", c.Scale)
	}
	if c.TPS < 1 {
		return fmt.Errorf("config: tps must be >= 1, got %d", c.TPS)
	}
	if c.Headless.Hz < 1 {
		return fmt.Errorf("config: headless.hz must be >= 1, got %d", c.Headless.Hz)
	}
	if c.Terminal.Hz < 1 {
		return fmt.Errorf("config: terminal.hz must be >= 1, got %d", c.Terminal.Hz)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: log_level %q: %w", c.LogLevel, err)
	}
	return nil
}

// Level returns the parsed log level; Validate guarantees it parses.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
