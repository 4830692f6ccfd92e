package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config represents the main configuration
type Config struct {
	Graphics GraphicsConfig    `yaml:"graphics"`
	Audio    AudioConfig       `yaml:"audio"`
	Console  ConsoleConfig     `yaml:"console"`
	Log      LogConfig         `yaml:"log"`
	Vars     map[string]string `yaml:"vars"` // persisted effect variables
}

// GraphicsConfig contains window and frame pacing configuration
type GraphicsConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	FrameRate  int    `yaml:"framerate"` // 0 disables the cap
	Title      string `yaml:"title"`
}

// AudioConfig contains tape hiss configuration
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// ConsoleConfig contains the debug console configuration
type ConsoleConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Bind            string `yaml:"bind"`
	Metrics         bool   `yaml:"metrics"`
	PublishInterval int    `yaml:"publish_interval_ms"`
	QueueSize       int    `yaml:"queue_size"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // empty logs to stdout only
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FrameRate:  60,
			Title:      "VCR",
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.6,
		},
		Console: ConsoleConfig{
			Enabled:         false,
			Bind:            "127.0.0.1:8765",
			Metrics:         true,
			PublishInterval: 250,
			QueueSize:       64,
		},
		Log: LogConfig{
			Level: "info",
		},
		Vars: map[string]string{},
	}
}

// Validate checks values the host cannot clamp on its own
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	if c.Graphics.FrameRate < 0 {
		return fmt.Errorf("invalid framerate %d", c.Graphics.FrameRate)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio volume %.2f out of range [0,1]", c.Audio.Volume)
	}
	if c.Console.Enabled && c.Console.Bind == "" {
		return fmt.Errorf("console enabled without a bind address")
	}
	if c.Console.PublishInterval <= 0 {
		return fmt.Errorf("invalid console publish interval %dms", c.Console.PublishInterval)
	}
	if c.Console.QueueSize <= 0 {
		return fmt.Errorf("invalid console queue size %d", c.Console.QueueSize)
	}
	return nil
}

// LoadConfig loads the configuration from a file
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return config, fmt.Errorf("config file not found, using defaults: %v", err)
	}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return config, fmt.Errorf("error parsing config: %v", err)
	}
	if config.Vars == nil {
		config.Vars = map[string]string{}
	}

	return config, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %v", err)
	}

	err = os.WriteFile(filePath, data, 0644)
	if err != nil {
		return fmt.Errorf("error writing config file: %v", err)
	}

	return nil
}
