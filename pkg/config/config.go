// Package config provides configuration loading and management for
// screwplanner. It handles loading configuration from YAML files and
// provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"screwplanner/internal/models"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Snapshot store parameters
	Store struct {
		// MaxSnapshots caps how many snapshots the store keeps before
		// evicting the oldest
		MaxSnapshots int `yaml:"maxSnapshots"`
	} `yaml:"store"`

	// Viewport layout parameters
	Viewports struct {
		// IDs lists the tracked 2D viewports in display order
		IDs []string `yaml:"ids"`
	} `yaml:"viewports"`

	// Placement parameters used when converting snapshots for the viewer
	Placement struct {
		// CameraDistance is how far the camera sits from the focal point (mm)
		CameraDistance float64 `yaml:"cameraDistance"`

		// ParallelScale is the orthographic zoom factor of exported cameras
		ParallelScale float64 `yaml:"parallelScale"`

		// DefaultRadius substitutes for an unspecified screw radius (mm)
		DefaultRadius float64 `yaml:"defaultRadius"`

		// DefaultLength substitutes for an unspecified screw length (mm)
		DefaultLength float64 `yaml:"defaultLength"`
	} `yaml:"placement"`

	// Tracking simulator parameters
	Tracking struct {
		// Mode selects the simulated motion path
		Mode string `yaml:"mode"`

		// RateHz is the sample publishing rate
		RateHz float64 `yaml:"rateHz"`

		// Center is the path center in patient coordinates (mm)
		Center [3]float64 `yaml:"center"`

		// Radius is the circular path radius (mm)
		Radius float64 `yaml:"radius"`

		// Speed is the angular speed of the circular path
		Speed float64 `yaml:"speed"`
	} `yaml:"tracking"`

	// Output parameters
	Output struct {
		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default store parameters
	cfg.Store.MaxSnapshots = 10

	// Set default viewport layout
	cfg.Viewports.IDs = models.DefaultViewportIDs()

	// Set default placement parameters; distance and scale match the
	// viewer's stock MPR layout
	cfg.Placement.CameraDistance = 352
	cfg.Placement.ParallelScale = 234.20727282007405
	cfg.Placement.DefaultRadius = 0
	cfg.Placement.DefaultLength = 0

	// Set default tracking parameters (20Hz circular path around the
	// volume center)
	cfg.Tracking.Mode = "circular"
	cfg.Tracking.RateHz = 20
	cfg.Tracking.Center = [3]float64{102.4, 102.4, 70}
	cfg.Tracking.Radius = 50
	cfg.Tracking.Speed = 0.5

	// Set default output parameters
	cfg.Output.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
