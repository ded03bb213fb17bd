package lumen

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// RunConfig configures the window and loop started by Run. It can be loaded
// from YAML with LoadRunConfig; zero fields take defaults.
type RunConfig struct {
	Title         string `yaml:"title"`
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	Resizable     bool   `yaml:"resizable"`
	TPS           int    `yaml:"tps"`
	ShowFPS       bool   `yaml:"show_fps"`
	Debug         bool   `yaml:"debug"`
	ScreenshotDir string `yaml:"screenshot_dir"`

	// Logger receives loop and render logs. Defaults to the logrus
	// standard logger.
	Logger logrus.FieldLogger `yaml:"-"`
	// TestRunner, if set, injects scripted input.
	TestRunner *TestRunner `yaml:"-"`
}

// Defaults used by RunConfig.
const (
	DefaultWidth         = 800
	DefaultHeight        = 600
	DefaultScreenshotDir = "screenshots"
)

func (c RunConfig) withDefaults() RunConfig {
	if c.Title == "" {
		c.Title = "lumen"
	}
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.TPS <= 0 {
		c.TPS = 60
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = DefaultScreenshotDir
	}
	if c.Logger == nil {
		c.Logger = logrus.StandardLogger()
	}
	return c
}

// LoadRunConfig parses YAML over base, so fields missing from data keep
// base's values.
func LoadRunConfig(data []byte, base RunConfig) (RunConfig, error) {
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("lumen: parse run config: %w", err)
	}
	if cfg.Width < 0 || cfg.Height < 0 {
		return base, fmt.Errorf("lumen: parse run config: negative window size %dx%d", cfg.Width, cfg.Height)
	}
	return cfg, nil
}

// LoadRunConfigFile reads and parses a YAML config file over base.
func LoadRunConfigFile(path string, base RunConfig) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("lumen: read run config: %w", err)
	}
	return LoadRunConfig(data, base)
}
