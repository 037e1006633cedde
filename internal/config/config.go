package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/OCharnyshevich/cavegen/internal/telemetry"
	"github.com/OCharnyshevich/cavegen/pkg/dungeon"
)

// Config holds the generator configuration.
type Config struct {
	Width         int     `json:"width" env:"WIDTH"`
	Height        int     `json:"height" env:"HEIGHT"`
	Seed          string  `json:"seed" env:"SEED"`
	UseRandomSeed bool    `json:"use_random_seed" env:"RANDOM_SEED"`
	FillPercent   int     `json:"fill_percent" env:"FILL_PERCENT"`
	NoiseScale    float64 `json:"noise_scale" env:"NOISE_SCALE"`

	SmoothingIterations     int `json:"smoothing_iterations" env:"SMOOTHING_ITERATIONS"`
	SmoothingThreshold      int `json:"smoothing_threshold" env:"SMOOTHING_THRESHOLD"`
	RoomSmoothingIterations int `json:"room_smoothing_iterations" env:"ROOM_SMOOTHING_ITERATIONS"`
	RoomSmoothingThreshold  int `json:"room_smoothing_threshold" env:"ROOM_SMOOTHING_THRESHOLD"`

	WallSizeThreshold int  `json:"wall_size_threshold" env:"WALL_SIZE_THRESHOLD"`
	RoomSizeThreshold int  `json:"room_size_threshold" env:"ROOM_SIZE_THRESHOLD"`
	PassageRadius     int  `json:"passage_radius" env:"PASSAGE_RADIUS"`
	BorderSize        int  `json:"border_size" env:"BORDER_SIZE"`
	Diagonal          bool `json:"diagonal_passages" env:"DIAGONAL_PASSAGES"`

	ChestRoomPercent int `json:"chest_room_percent" env:"CHEST_ROOM_PERCENT"`
	EnemiesPerRoom   int `json:"enemies_per_room" env:"ENEMIES_PER_ROOM"`

	// Output locations, never read from a config file.
	DataDir string `json:"-" env:"DATA_DIR"`
	DBPath  string `json:"-" env:"DB_PATH"`

	// Tracing, environment only.
	OTelEndpoint     string  `json:"-" env:"OTEL_ENDPOINT"`
	OTelEnabled      bool    `json:"-" env:"OTEL_ENABLED"`
	TraceSampleRatio float64 `json:"-" env:"OTEL_SAMPLE_RATIO"`
}

// EnvPrefix is prepended to every env tag.
const EnvPrefix = "CAVEGEN_"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	p := dungeon.DefaultParams()
	return &Config{
		Width:                   p.Width,
		Height:                  p.Height,
		Seed:                    p.Seed,
		FillPercent:             p.FillPercent,
		SmoothingIterations:     p.SmoothingIterations,
		SmoothingThreshold:      p.SmoothingThreshold,
		RoomSmoothingIterations: p.RoomSmoothingIterations,
		RoomSmoothingThreshold:  p.RoomSmoothingThreshold,
		WallSizeThreshold:       p.WallSizeThreshold,
		RoomSizeThreshold:       p.RoomSizeThreshold,
		PassageRadius:           p.PassageRadius,
		BorderSize:              p.BorderSize,
		ChestRoomPercent:        20,
		EnemiesPerRoom:          5,
		DataDir:                 "data",
		OTelEnabled:             true,
		TraceSampleRatio:        1,
	}
}

// Params converts the configuration into generation parameters.
func (c *Config) Params() dungeon.Params {
	return dungeon.Params{
		Width:                   c.Width,
		Height:                  c.Height,
		Seed:                    c.Seed,
		UseRandomSeed:           c.UseRandomSeed,
		FillPercent:             c.FillPercent,
		NoiseScale:              c.NoiseScale,
		SmoothingIterations:     c.SmoothingIterations,
		SmoothingThreshold:      c.SmoothingThreshold,
		RoomSmoothingIterations: c.RoomSmoothingIterations,
		RoomSmoothingThreshold:  c.RoomSmoothingThreshold,
		WallSizeThreshold:       c.WallSizeThreshold,
		RoomSizeThreshold:       c.RoomSizeThreshold,
		PassageRadius:           c.PassageRadius,
		BorderSize:              c.BorderSize,
		Diagonal:                c.Diagonal,
	}
}

// Telemetry returns the tracing options.
func (c *Config) Telemetry() telemetry.Options {
	return telemetry.Options{
		Endpoint:    c.OTelEndpoint,
		Enabled:     c.OTelEnabled,
		SampleRatio: c.TraceSampleRatio,
	}
}

// ParseEnv overlays CAVEGEN_* environment variables onto cfg. Unset
// variables leave fields untouched.
func ParseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["width"] {
		cfg.Width = fromFile.Width
	}
	if !explicitFlags["height"] {
		cfg.Height = fromFile.Height
	}
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["random-seed"] {
		cfg.UseRandomSeed = fromFile.UseRandomSeed
	}
	if !explicitFlags["fill"] {
		cfg.FillPercent = fromFile.FillPercent
	}
	if !explicitFlags["noise-scale"] {
		cfg.NoiseScale = fromFile.NoiseScale
	}
	if !explicitFlags["smooth"] {
		cfg.SmoothingIterations = fromFile.SmoothingIterations
	}
	if !explicitFlags["smooth-threshold"] {
		cfg.SmoothingThreshold = fromFile.SmoothingThreshold
	}
	if !explicitFlags["room-smooth"] {
		cfg.RoomSmoothingIterations = fromFile.RoomSmoothingIterations
	}
	if !explicitFlags["room-smooth-threshold"] {
		cfg.RoomSmoothingThreshold = fromFile.RoomSmoothingThreshold
	}
	if !explicitFlags["wall-size"] {
		cfg.WallSizeThreshold = fromFile.WallSizeThreshold
	}
	if !explicitFlags["room-size"] {
		cfg.RoomSizeThreshold = fromFile.RoomSizeThreshold
	}
	if !explicitFlags["passage"] {
		cfg.PassageRadius = fromFile.PassageRadius
	}
	if !explicitFlags["border"] {
		cfg.BorderSize = fromFile.BorderSize
	}
	if !explicitFlags["diagonal"] {
		cfg.Diagonal = fromFile.Diagonal
	}
	if !explicitFlags["chest-percent"] {
		cfg.ChestRoomPercent = fromFile.ChestRoomPercent
	}
	if !explicitFlags["enemies"] {
		cfg.EnemiesPerRoom = fromFile.EnemiesPerRoom
	}
}
