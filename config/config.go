// Package config loads the garden application configuration from TOML.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Window      WindowConfig      `toml:"window"`
	Camera      CameraConfig      `toml:"camera"`
	Lighting    LightingConfig    `toml:"lighting"`
	Interaction InteractionConfig `toml:"interaction"`
	Assets      AssetsConfig      `toml:"assets"`
	Scene       SceneConfig       `toml:"scene"`
	Logging     LoggingConfig     `toml:"logging"`
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

type CameraConfig struct {
	FovY     float64    `toml:"fov"` // vertical, degrees
	Near     float64    `toml:"near"`
	Far      float64    `toml:"far"`
	Position [3]float64 `toml:"position"`
	Target   [3]float64 `toml:"target"`
	// OrbitSpeed is radians per pixel of drag.
	OrbitSpeed float64 `toml:"orbit_speed"`
	// ZoomStep is the distance factor per wheel notch.
	ZoomStep float64 `toml:"zoom_step"`
}

type LightingConfig struct {
	AmbientColor         uint32     `toml:"ambient_color"` // 0xRRGGBB
	AmbientIntensity     float64    `toml:"ambient_intensity"`
	DirectionalColor     uint32     `toml:"directional_color"`
	DirectionalIntensity float64    `toml:"directional_intensity"`
	DirectionalPosition  [3]float64 `toml:"directional_position"`
	EnvMap               string     `toml:"env_map"`
	EnvMapIntensity      float64    `toml:"env_map_intensity"`
	Background           uint32     `toml:"background"`
}

type InteractionConfig struct {
	// DragDeadZone is the pointer travel in pixels before an orbit drag starts.
	DragDeadZone float64 `toml:"drag_dead_zone"`
	// HoverFade is the button color fade in seconds.
	HoverFade float64 `toml:"hover_fade"`
	// FlyDuration is the camera fly-to time in seconds.
	FlyDuration float64 `toml:"fly_duration"`
}

type AssetsConfig struct {
	MeshCells int  `toml:"mesh_cells"`
	Preload   bool `toml:"preload"`
}

type SceneConfig struct {
	Layout     string `toml:"layout"`      // YAML layout path, relative to the config file
	ScriptsDir string `toml:"scripts_dir"` // Lua scripts, relative to the config file
	TestScript string `toml:"test_script"` // optional JSON input script
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes TOML data over the defaults. name is used in errors.
func Parse(data []byte, name string) (*Config, error) {
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", name, err)
	}
	return cfg, nil
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "arbor garden",
			Width:  1280,
			Height: 720,
		},
		Camera: CameraConfig{
			FovY:       45,
			Near:       1,
			Far:        500,
			Position:   [3]float64{7.5, 3, 14},
			Target:     [3]float64{0, 0, 0},
			OrbitSpeed: 0.01,
			ZoomStep:   0.9,
		},
		Lighting: LightingConfig{
			AmbientColor:         0xffffff,
			AmbientIntensity:     0.3,
			DirectionalColor:     0xffffff,
			DirectionalIntensity: 3,
			DirectionalPosition:  [3]float64{0.25, 15, -10},
			EnvMap:               "default",
			EnvMapIntensity:      1.5,
			Background:           0x87ceeb,
		},
		Interaction: InteractionConfig{
			DragDeadZone: 4,
			HoverFade:    0.15,
			FlyDuration:  0.6,
		},
		Assets: AssetsConfig{
			MeshCells: 24,
			Preload:   true,
		},
		Scene: SceneConfig{
			Layout:     "scene.yaml",
			ScriptsDir: "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
