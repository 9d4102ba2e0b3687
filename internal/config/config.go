// Package config provides Viper-based configuration loading for SortRoom.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/piwi3910/SortRoom/internal/model"
	"github.com/piwi3910/SortRoom/internal/room"
)

// StageConfig describes the drawing surface in pixels.
type StageConfig struct {
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
	// Margin is the minimum distance between a room corner and the stage edge.
	Margin float64 `mapstructure:"margin"`
}

// RectConfig is a rectangle in stage pixels.
type RectConfig struct {
	X      float64 `mapstructure:"x"`
	Y      float64 `mapstructure:"y"`
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
}

// RoomConfig holds room editing limits and the initial outline.
type RoomConfig struct {
	MinWidth  float64 `mapstructure:"min_width"`
	MinHeight float64 `mapstructure:"min_height"`
	// Scale converts stage pixels to meters.
	Scale   float64    `mapstructure:"scale"`
	Initial RectConfig `mapstructure:"initial"`
}

// OrientationConfig holds the wall-proximity orientation settings.
type OrientationConfig struct {
	// WallTolerance is the distance in pixels within which an object is turned away from a wall.
	WallTolerance float64 `mapstructure:"wall_tolerance"`
}

// ObjectsConfig holds default object sizes.
type ObjectsConfig struct {
	BinWidth  float64 `mapstructure:"bin_width"`
	BinHeight float64 `mapstructure:"bin_height"`
}

// HistoryConfig holds undo settings.
type HistoryConfig struct {
	MaxDepth int `mapstructure:"max_depth"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// CatalogConfig points at an external object catalog.
type CatalogConfig struct {
	// Path is a CSV, XLSX or YAML catalog file. Empty selects the built-in catalog.
	Path string `mapstructure:"path"`
}

// UIConfig holds desktop UI preferences.
type UIConfig struct {
	// Theme is "system", "light" or "dark".
	Theme string `mapstructure:"theme"`
}

// Config is the top-level application configuration.
type Config struct {
	Stage       StageConfig       `mapstructure:"stage"`
	Room        RoomConfig        `mapstructure:"room"`
	Orientation OrientationConfig `mapstructure:"orientation"`
	Objects     ObjectsConfig     `mapstructure:"objects"`
	History     HistoryConfig     `mapstructure:"history"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Catalog     CatalogConfig     `mapstructure:"catalog"`
	UI          UIConfig          `mapstructure:"ui"`
}

// Limits returns the corner limits for the room editor.
func (c Config) Limits() room.Limits {
	return room.Limits{
		StageWidth:  c.Stage.Width,
		StageHeight: c.Stage.Height,
		Margin:      c.Stage.Margin,
		MinWidth:    c.Room.MinWidth,
		MinHeight:   c.Room.MinHeight,
	}
}

// InitialRoom returns the room a new plan starts with.
func (c Config) InitialRoom() model.Room {
	r := c.Room.Initial
	return model.RoomFromRect(model.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height})
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateStage(c.Stage); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateRoom(c); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Orientation.WallTolerance < 0 {
		errs = append(errs, fmt.Sprintf("orientation.wall_tolerance must be >= 0, got %g", c.Orientation.WallTolerance))
	}
	if c.Objects.BinWidth <= 0 || c.Objects.BinHeight <= 0 {
		errs = append(errs, "objects.bin_width and objects.bin_height must be > 0")
	}
	if c.History.MaxDepth < 1 {
		errs = append(errs, fmt.Sprintf("history.max_depth must be >= 1, got %d", c.History.MaxDepth))
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	switch c.UI.Theme {
	case "system", "light", "dark":
	default:
		errs = append(errs, fmt.Sprintf("ui.theme must be one of [system, light, dark], got %q", c.UI.Theme))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateStage(s StageConfig) error {
	var errs []string
	if s.Width <= 0 || s.Height <= 0 {
		errs = append(errs, fmt.Sprintf("stage size must be positive, got %gx%g", s.Width, s.Height))
	}
	if s.Margin < 0 {
		errs = append(errs, "stage.margin must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateRoom(c Config) error {
	r := c.Room
	var errs []string
	if r.MinWidth <= 0 || r.MinHeight <= 0 {
		errs = append(errs, "room.min_width and room.min_height must be > 0")
	}
	if r.Scale <= 0 {
		errs = append(errs, fmt.Sprintf("room.scale must be > 0, got %g", r.Scale))
	}
	if 2*c.Stage.Margin+r.MinWidth > c.Stage.Width || 2*c.Stage.Margin+r.MinHeight > c.Stage.Height {
		errs = append(errs, "stage is too small for the minimum room size")
	}
	if len(errs) == 0 {
		if err := room.Validate(c.InitialRoom(), c.Limits()); err != nil {
			errs = append(errs, "room.initial: "+strings.ReplaceAll(err.Error(), "\n", ", "))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given YAML file, applies environment
// variable overrides and validates the result. An empty path or a missing
// file yields the defaults.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with SORTROOM_ prefix
	v.SetEnvPrefix("SORTROOM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !isMissing(err) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

func isMissing(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewViper returns a Viper instance carrying only the defaults.
func NewViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// Default returns the built-in configuration.
func Default() Config {
	cfg, err := LoadFromViper(NewViper())
	if err != nil {
		panic(fmt.Sprintf("default configuration is invalid: %v", err))
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("stage.width", 800)
	v.SetDefault("stage.height", 600)
	v.SetDefault("stage.margin", 20)

	v.SetDefault("room.min_width", 100)
	v.SetDefault("room.min_height", 100)
	v.SetDefault("room.scale", 0.02)
	v.SetDefault("room.initial.x", 100)
	v.SetDefault("room.initial.y", 100)
	v.SetDefault("room.initial.width", 400)
	v.SetDefault("room.initial.height", 300)

	v.SetDefault("orientation.wall_tolerance", 60)

	v.SetDefault("objects.bin_width", model.DefaultBinSize)
	v.SetDefault("objects.bin_height", model.DefaultBinSize)

	v.SetDefault("history.max_depth", 100)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("catalog.path", "")

	v.SetDefault("ui.theme", "system")
}
