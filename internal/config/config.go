// Package config handles meshedit configuration loading and management.
package config

import "time"

// Config holds all meshedit settings.
type Config struct {
	Logging   LoggingConfig  `yaml:"logging"`
	Brush     BrushConfig    `yaml:"brush"`
	Landmarks LandmarkConfig `yaml:"landmarks"`
	Window    WindowConfig   `yaml:"window"`
	Batch     BatchConfig    `yaml:"batch"`
	Watch     WatchConfig    `yaml:"watch"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// BrushConfig scales the brush from the loaded mesh.
type BrushConfig struct {
	RadiusDivisor float64 `yaml:"radius_divisor"`  // initial radius = median point radius / divisor
	StepDivisor   float64 `yaml:"step_divisor"`    // step = median point radius / divisor
	MinEdgeFactor float64 `yaml:"min_edge_factor"` // minimum radius = min edge length * factor
}

// LandmarkConfig holds landmark display settings.
type LandmarkConfig struct {
	Size float64 `yaml:"size"` // marker sphere radius in mesh units, 0 derives it from the mesh
}

// WindowConfig holds viewer window settings.
type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`
}

// BatchConfig holds batch run settings.
type BatchConfig struct {
	Extension          string `yaml:"extension"`
	Overwrite          bool   `yaml:"overwrite"`
	PreserveSubfolders bool   `yaml:"preserve_subfolders"`
	Preload            bool   `yaml:"preload"`
}

// WatchConfig controls reloading the source file when it changes on disk.
type WatchConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Debounce time.Duration `yaml:"debounce"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		Brush: BrushConfig{
			RadiusDivisor: 1.2,
			StepDivisor:   20,
			MinEdgeFactor: 0.5,
		},
		Landmarks: LandmarkConfig{
			Size: 4,
		},
		Window: WindowConfig{
			Width:  1400,
			Height: 900,
			FPS:    60,
		},
		Batch: BatchConfig{
			Extension:          ".obj",
			PreserveSubfolders: true,
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: 500 * time.Millisecond,
		},
	}
}
