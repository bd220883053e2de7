package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// MaxConfigFileBytes bounds the size of a config file read by Load.
const MaxConfigFileBytes = 64 * 1024

// Camera and display implementations selectable from the config file.
const (
	CameraOpenCV    = "opencv"
	CameraMock      = "mock"
	DisplayOpenCV   = "opencv"
	DisplayHeadless = "headless"
)

// CameraConfig selects the video input device.
type CameraConfig struct {
	Type          string `yaml:"type"`            // "opencv" or "mock"
	DeviceID      int    `yaml:"device_id"`       // video device index (0 = first camera)
	MockWidth     int    `yaml:"mock_width"`      // synthetic frame width (mock only)
	MockHeight    int    `yaml:"mock_height"`     // synthetic frame height (mock only)
	MockFailAfter int    `yaml:"mock_fail_after"` // mock reads before frames become unavailable. 0 = never.
}

// DisplayConfig describes the preview surface.
type DisplayConfig struct {
	Type        string `yaml:"type"`         // "opencv" or "headless"
	WindowTitle string `yaml:"window_title"` // preview window title
	PollMs      int    `yaml:"poll_ms"`      // key poll timeout per frame (ms)
}

// BurstConfig describes the still-image burst triggered by SPACE.
type BurstConfig struct {
	Count       int    `yaml:"count"`        // number of images per burst
	IntervalMs  int    `yaml:"interval_ms"`  // blocking delay between two images (ms)
	FilePattern string `yaml:"file_pattern"` // file name pattern, one %d for the index
	OutputDir   string `yaml:"output_dir"`   // directory receiving the images
}

// TriggerConfig holds optional hardware trigger settings.
type TriggerConfig struct {
	ButtonPin int  `yaml:"button_pin"` // BCM pin of a push button (active LOW). 0 = not used.
	MockGPIO  bool `yaml:"mock_gpio"`  // use mock GPIO (true=dev/test, false=real Raspberry Pi)
}

// DefaultsConfig contains generic parameters.
type DefaultsConfig struct {
	DebugLevel int `yaml:"debug_level"` // debug level 0-4 (0=status only, 1=info, 2=live, 3=verbose, 4=trace)
}

// Config aggregates all application configuration.
type Config struct {
	Camera   CameraConfig   `yaml:"camera"`
	Display  DisplayConfig  `yaml:"display"`
	Burst    BurstConfig    `yaml:"burst"`
	Trigger  TriggerConfig  `yaml:"trigger"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// ValidateConfigPath checks that path names a .yaml file inside a configs/
// directory and does not use parent-directory traversal.
func ValidateConfigPath(path string) error {
	if path == "" {
		return fmt.Errorf("config path is empty")
	}
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".." {
			return fmt.Errorf("config path %q must not contain '..'", path)
		}
	}
	if filepath.Ext(path) != ".yaml" {
		return fmt.Errorf("config path %q must end with .yaml", path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}
	if filepath.Base(filepath.Dir(abs)) != "configs" {
		return fmt.Errorf("config file %q must live in a configs/ directory", path)
	}
	return nil
}

// Load reads a YAML file and returns the configuration.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxConfigFileBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if len(data) > MaxConfigFileBytes {
		return nil, fmt.Errorf("config file exceeds %d bytes", MaxConfigFileBytes)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Camera.Type == "" {
		c.Camera.Type = CameraOpenCV
	}
	if c.Camera.MockWidth <= 0 {
		c.Camera.MockWidth = 640
	}
	if c.Camera.MockHeight <= 0 {
		c.Camera.MockHeight = 480
	}
	if c.Display.Type == "" {
		c.Display.Type = DisplayOpenCV
	}
	if c.Display.WindowTitle == "" {
		c.Display.WindowTitle = "Python Webcam Screenshot App"
	}
	if c.Display.PollMs <= 0 {
		c.Display.PollMs = 1 // effectively non-blocking
	}
	if c.Burst.Count <= 0 {
		c.Burst.Count = 4
	}
	if c.Burst.IntervalMs <= 0 {
		c.Burst.IntervalMs = 5000
	}
	if c.Burst.FilePattern == "" {
		c.Burst.FilePattern = "opencv_frame_%d.png"
	}
	if c.Burst.OutputDir == "" {
		c.Burst.OutputDir = "."
	}
}

// Validate checks values that have no sensible default.
func (c *Config) Validate() error {
	switch c.Camera.Type {
	case CameraOpenCV, CameraMock:
	default:
		return fmt.Errorf("unsupported camera.type: %q", c.Camera.Type)
	}
	if c.Camera.DeviceID < 0 {
		return fmt.Errorf("camera.device_id must be >= 0, got %d", c.Camera.DeviceID)
	}
	if c.Camera.MockFailAfter < 0 {
		return fmt.Errorf("camera.mock_fail_after must be >= 0, got %d", c.Camera.MockFailAfter)
	}
	switch c.Display.Type {
	case DisplayOpenCV, DisplayHeadless:
	default:
		return fmt.Errorf("unsupported display.type: %q", c.Display.Type)
	}
	if c.Burst.Count > 100 {
		return fmt.Errorf("burst.count must be between 1 and 100, got %d", c.Burst.Count)
	}
	if strings.Count(c.Burst.FilePattern, "%d") != 1 || strings.Count(c.Burst.FilePattern, "%") != 1 {
		return fmt.Errorf("burst.file_pattern must contain exactly one %%d verb, got %q", c.Burst.FilePattern)
	}
	if strings.ContainsAny(c.Burst.FilePattern, `/\`) {
		return fmt.Errorf("burst.file_pattern must be a file name, got %q", c.Burst.FilePattern)
	}
	if c.Trigger.ButtonPin < 0 || c.Trigger.ButtonPin > 27 {
		return fmt.Errorf("trigger.button_pin must be a BCM pin between 0 and 27, got %d", c.Trigger.ButtonPin)
	}
	if c.Defaults.DebugLevel < 0 || c.Defaults.DebugLevel > 4 {
		return fmt.Errorf("defaults.debug_level must be between 0 and 4, got %d", c.Defaults.DebugLevel)
	}
	return nil
}

// PollTimeout returns the key poll timeout per preview frame.
func (c *Config) PollTimeout() time.Duration {
	return time.Duration(c.Display.PollMs) * time.Millisecond
}

// BurstInterval returns the delay between two burst images.
func (c *Config) BurstInterval() time.Duration {
	return time.Duration(c.Burst.IntervalMs) * time.Millisecond
}

// FileName returns the output file name for burst index i.
func (c *Config) FileName(i int) string {
	return fmt.Sprintf(c.Burst.FilePattern, i)
}

// FilePath returns the output path for burst index i.
func (c *Config) FilePath(i int) string {
	return filepath.Join(c.Burst.OutputDir, c.FileName(i))
}

// ButtonEnabled reports whether a GPIO shutter button is configured.
func (c *Config) ButtonEnabled() bool {
	return c.Trigger.ButtonPin > 0
}
