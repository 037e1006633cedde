// Package placement assigns gameplay categories to generated rooms and picks
// spawn tiles for the entities that populate them.
package placement

import (
	"github.com/OCharnyshevich/cavegen/pkg/dungeon"
)

// Kind identifies what spawns on a tile.
type Kind int

const (
	KindPlayer Kind = iota
	KindShield
	KindEnemy
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindShield:
		return "shield"
	case KindEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for _, k := range []Kind{KindPlayer, KindShield, KindEnemy} {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// Spawn is one entity placement in grid coordinates.
type Spawn struct {
	Kind Kind
	Room int
	Tile dungeon.Coord
}

// Options tunes room categories and spawn counts.
type Options struct {
	ChestRoomPercent int // chance for a non-main room to hold a shield
	EnemiesPerRoom   int
	ShieldRange      int // max distance between the player and the starting shield
}

// DefaultOptions returns the stock placement tuning.
func DefaultOptions() Options {
	return Options{
		ChestRoomPercent: 20,
		EnemiesPerRoom:   5,
		ShieldRange:      2,
	}
}

// Assign sets every room's Type and returns the spawns for the layout.
// The main room becomes the start room; the others are chest or enemy rooms.
// Results depend only on the layout seed and opts.
func Assign(layout *dungeon.Layout, opts Options) []Spawn {
	rng := dungeon.NewRNG(layout.Seed, dungeon.SaltPlacement)

	for i, r := range layout.Rooms {
		switch {
		case i == layout.MainRoom:
			r.Type = dungeon.RoomTypeStart
		case rng.Percent(opts.ChestRoomPercent):
			r.Type = dungeon.RoomTypeChest
		default:
			r.Type = dungeon.RoomTypeEnemy
		}
	}

	var spawns []Spawn
	for _, r := range layout.Rooms {
		switch r.Type {
		case dungeon.RoomTypeStart:
			player := r.RandomTile(rng)
			shield := r.TileNear(rng, player, opts.ShieldRange)
			spawns = append(spawns,
				Spawn{Kind: KindPlayer, Room: r.Index, Tile: player},
				Spawn{Kind: KindShield, Room: r.Index, Tile: shield},
			)
		case dungeon.RoomTypeChest:
			spawns = append(spawns, Spawn{Kind: KindShield, Room: r.Index, Tile: r.RandomTile(rng)})
		case dungeon.RoomTypeEnemy:
			for _, c := range r.RandomTiles(rng, opts.EnemiesPerRoom) {
				spawns = append(spawns, Spawn{Kind: KindEnemy, Room: r.Index, Tile: c})
			}
		}
	}
	return spawns
}

// Count returns how many spawns are of kind k.
func Count(spawns []Spawn, k Kind) int {
	n := 0
	for _, s := range spawns {
		if s.Kind == k {
			n++
		}
	}
	return n
}
