package dungeon

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/OCharnyshevich/cavegen/pkg/dungeon"

// RNG stream salts, one per consumer of the seed.
const (
	SaltFill uint64 = iota
	SaltCarve
	SaltPlacement
)

// now is swapped in tests.
var now = time.Now

// Layout is the result of one generation run. It must be treated as
// read-only once returned.
type Layout struct {
	// Grid is the bordered tile grid.
	Grid *Grid
	// Rooms are sorted by size, largest first. Coordinates are in Grid space.
	Rooms []*Room
	// MainRoom indexes Rooms.
	MainRoom int
	// Seed is the seed actually used, including a time-derived one.
	Seed     string
	Passages []Passage
	Params   Params
}

// Generate runs the full pipeline synchronously.
func Generate(p Params) (*Layout, error) {
	return GenerateContext(context.Background(), p)
}

// GenerateContext is Generate with a context used for tracing spans.
// A run is never cancelled part way through.
func GenerateContext(ctx context.Context, p Params) (*Layout, error) {
	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "dungeon.Generate")
	defer span.End()

	layout, err := generate(ctx, tracer, p)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.String("dungeon.seed", layout.Seed),
		attribute.Int("dungeon.rooms", len(layout.Rooms)),
		attribute.Int("dungeon.passages", len(layout.Passages)),
	)
	return layout, nil
}

func generate(ctx context.Context, tracer trace.Tracer, p Params) (*Layout, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	seed := p.Seed
	if p.UseRandomSeed {
		seed = now().UTC().Format(time.RFC3339Nano)
	}
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.Int("dungeon.width", p.Width),
		attribute.Int("dungeon.height", p.Height),
	)

	g := NewGrid(p.Width, p.Height)

	stage(ctx, tracer, "fill", func() {
		rng := NewRNG(seed, SaltFill)
		if p.NoiseScale > 0 {
			FillNoise(g, NewNoise(rng), p.FillPercent, p.NoiseScale)
			return
		}
		Fill(g, rng, p.FillPercent)
	})
	stage(ctx, tracer, "smooth", func() {
		Smooth(g, p.SmoothingThreshold, p.SmoothingIterations)
	})
	stage(ctx, tracer, "prune_walls", func() {
		PruneWalls(g, Regions(g, Wall), p.WallSizeThreshold)
	})
	stage(ctx, tracer, "smooth_rooms", func() {
		SmoothRegions(g, Regions(g, Floor), p.RoomSmoothingThreshold, p.RoomSmoothingIterations)
	})

	var rooms []*Room
	stage(ctx, tracer, "build_rooms", func() {
		rooms = BuildRooms(g, Regions(g, Floor), p.RoomSizeThreshold)
	})
	if len(rooms) == 0 {
		return nil, fmt.Errorf("seed %q: %w", seed, ErrNoRoomsSurvived)
	}

	var passages []Passage
	stage(ctx, tracer, "connect", func() {
		carveRNG := NewRNG(seed, SaltCarve)
		passages = Connect(rooms, func(ps Passage) {
			Carve(g, ps.From, ps.To, p.PassageRadius, carveRNG, p.Diagonal)
		})
	})

	if err := verifyConnected(rooms); err != nil {
		return nil, fmt.Errorf("seed %q: %w", seed, err)
	}

	for _, r := range rooms {
		r.translate(p.BorderSize, p.BorderSize)
	}
	for i := range passages {
		passages[i].From.X += p.BorderSize
		passages[i].From.Y += p.BorderSize
		passages[i].To.X += p.BorderSize
		passages[i].To.Y += p.BorderSize
	}

	return &Layout{
		Grid:     g.Bordered(p.BorderSize),
		Rooms:    rooms,
		MainRoom: 0,
		Seed:     seed,
		Passages: passages,
		Params:   p,
	}, nil
}

func stage(ctx context.Context, tracer trace.Tracer, name string, fn func()) {
	_, span := tracer.Start(ctx, "dungeon."+name)
	defer span.End()
	fn()
}

func verifyConnected(rooms []*Room) error {
	for _, r := range rooms {
		if !r.IsAccessibleFromMainRoom {
			return fmt.Errorf("room %d not accessible from main room: %w", r.Index, ErrDisconnectedRoomGraph)
		}
	}
	if n := reachableFrom(rooms, 0); n != len(rooms) {
		return fmt.Errorf("%d of %d rooms reachable: %w", n, len(rooms), ErrDisconnectedRoomGraph)
	}
	return nil
}

// Room returns the room containing c, or nil.
func (l *Layout) Room(c Coord) *Room {
	for _, r := range l.Rooms {
		if r.Contains(c) {
			return r
		}
	}
	return nil
}

// Main returns the main room.
func (l *Layout) Main() *Room {
	return l.Rooms[l.MainRoom]
}
