package dungeon

import (
	"fmt"
	"math"
)

// Documented parameter ranges.
const (
	MinSmoothingThreshold  = 3
	MaxSmoothingThreshold  = 5
	MaxSmoothingIterations = 20
	MinPassageRadius       = 1
	MaxPassageRadius       = 20
	MaxDimension           = 4096
	MaxBorderSize          = 20
)

// Params controls one generation run.
type Params struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Seed is hashed into the generator state. Ignored when UseRandomSeed is set.
	Seed          string `json:"seed"`
	UseRandomSeed bool   `json:"use_random_seed"`

	// FillPercent is the chance, 0..100, that an interior tile starts as wall.
	FillPercent int `json:"fill_percent"`

	// NoiseScale switches the initial fill to coherent noise with features
	// of roughly this many tiles. Zero keeps independent per-tile draws.
	NoiseScale float64 `json:"noise_scale,omitempty"`

	SmoothingIterations int `json:"smoothing_iterations"`
	SmoothingThreshold  int `json:"smoothing_threshold"`

	RoomSmoothingIterations int `json:"room_smoothing_iterations"`
	RoomSmoothingThreshold  int `json:"room_smoothing_threshold"`

	// Wall regions below WallSizeThreshold become floor; floor regions below
	// RoomSizeThreshold become wall.
	WallSizeThreshold int `json:"wall_size_threshold"`
	RoomSizeThreshold int `json:"room_size_threshold"`

	PassageRadius int `json:"passage_radius"`
	BorderSize    int `json:"border_size"`

	// Diagonal carves passages along a straight line instead of two legs.
	Diagonal bool `json:"diagonal"`
}

// DefaultParams returns the stock tuning for a medium cave.
func DefaultParams() Params {
	return Params{
		Width:                   64,
		Height:                  48,
		Seed:                    "cavegen",
		FillPercent:             47,
		SmoothingIterations:     4,
		SmoothingThreshold:      4,
		RoomSmoothingIterations: 4,
		RoomSmoothingThreshold:  4,
		WallSizeThreshold:       5,
		RoomSizeThreshold:       50,
		PassageRadius:           2,
		BorderSize:              3,
	}
}

// Validate checks every parameter against its range.
func (p Params) Validate() error {
	switch {
	case p.Width <= 0 || p.Height <= 0:
		return invalid("size must be positive, got %dx%d", p.Width, p.Height)
	case p.Width > MaxDimension || p.Height > MaxDimension:
		return invalid("size %dx%d exceeds %d", p.Width, p.Height, MaxDimension)
	case p.FillPercent < 0 || p.FillPercent > 100:
		return invalid("fill percent %d not in 0..100", p.FillPercent)
	case p.NoiseScale < 0 || math.IsNaN(p.NoiseScale) || math.IsInf(p.NoiseScale, 0):
		return invalid("noise scale %v must be a finite non-negative number", p.NoiseScale)
	case p.SmoothingIterations < 0 || p.SmoothingIterations > MaxSmoothingIterations:
		return invalid("smoothing iterations %d not in 0..%d", p.SmoothingIterations, MaxSmoothingIterations)
	case p.RoomSmoothingIterations < 0 || p.RoomSmoothingIterations > MaxSmoothingIterations:
		return invalid("room smoothing iterations %d not in 0..%d", p.RoomSmoothingIterations, MaxSmoothingIterations)
	case !inRange(p.SmoothingThreshold, MinSmoothingThreshold, MaxSmoothingThreshold):
		return invalid("smoothing threshold %d not in %d..%d", p.SmoothingThreshold, MinSmoothingThreshold, MaxSmoothingThreshold)
	case !inRange(p.RoomSmoothingThreshold, MinSmoothingThreshold, MaxSmoothingThreshold):
		return invalid("room smoothing threshold %d not in %d..%d", p.RoomSmoothingThreshold, MinSmoothingThreshold, MaxSmoothingThreshold)
	case p.WallSizeThreshold < 0:
		return invalid("wall size threshold %d is negative", p.WallSizeThreshold)
	case p.RoomSizeThreshold < 0:
		return invalid("room size threshold %d is negative", p.RoomSizeThreshold)
	case !inRange(p.PassageRadius, MinPassageRadius, MaxPassageRadius):
		return invalid("passage radius %d not in %d..%d", p.PassageRadius, MinPassageRadius, MaxPassageRadius)
	case !inRange(p.BorderSize, 0, MaxBorderSize):
		return invalid("border size %d not in 0..%d", p.BorderSize, MaxBorderSize)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidParameters}, args...)...)
}

func inRange(v, lo, hi int) bool {
	return v >= lo && v <= hi
}
