package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/OCharnyshevich/cavegen/internal/placement"
	"github.com/OCharnyshevich/cavegen/pkg/dungeon"
)

// LayoutData is the serializable representation of a generated layout.
type LayoutData struct {
	ID        string            `json:"id"`
	Seed      string            `json:"seed"`
	CreatedAt time.Time         `json:"created_at"`
	Params    dungeon.Params    `json:"params"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Rows      []string          `json:"rows"` // '#' wall, '.' floor, top row first
	MainRoom  int               `json:"main_room"`
	Rooms     []RoomData        `json:"rooms"`
	Passages  []dungeon.Passage `json:"passages"`
	Spawns    []SpawnData       `json:"spawns,omitempty"`
}

// RoomData holds one room.
type RoomData struct {
	Index     int             `json:"index"`
	Type      string          `json:"type"`
	Tiles     []dungeon.Coord `json:"tiles"`
	EdgeTiles []dungeon.Coord `json:"edge_tiles"`
	Connected []int           `json:"connected"`
}

// SpawnData is the serializable representation of a placement.Spawn.
type SpawnData struct {
	Kind string `json:"kind"`
	Room int    `json:"room"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// LayoutDataFromLayout extracts serializable data from a generated layout.
// A fresh ID is assigned.
func LayoutDataFromLayout(l *dungeon.Layout, spawns []placement.Spawn) *LayoutData {
	ld := &LayoutData{
		ID:        uuid.NewString(),
		Seed:      l.Seed,
		CreatedAt: time.Now().UTC(),
		Params:    l.Params,
		Width:     l.Grid.Width,
		Height:    l.Grid.Height,
		Rows:      strings.Split(strings.TrimSuffix(l.Grid.String(), "\n"), "\n"),
		MainRoom:  l.MainRoom,
		Passages:  l.Passages,
	}
	for _, r := range l.Rooms {
		ld.Rooms = append(ld.Rooms, RoomData{
			Index:     r.Index,
			Type:      r.Type.String(),
			Tiles:     r.Tiles,
			EdgeTiles: r.EdgeTiles,
			Connected: r.Neighbours(),
		})
	}
	for _, s := range spawns {
		ld.Spawns = append(ld.Spawns, SpawnData{
			Kind: s.Kind.String(),
			Room: s.Room,
			X:    s.Tile.X,
			Y:    s.Tile.Y,
		})
	}
	return ld
}

// Layout rebuilds the runtime layout and its spawns.
func (ld *LayoutData) Layout() (*dungeon.Layout, []placement.Spawn, error) {
	if len(ld.Rows) != ld.Height {
		return nil, nil, fmt.Errorf("layout %s: %d rows, want %d", ld.ID, len(ld.Rows), ld.Height)
	}
	for i, row := range ld.Rows {
		if len(row) != ld.Width {
			return nil, nil, fmt.Errorf("layout %s: row %d has width %d, want %d", ld.ID, i, len(row), ld.Width)
		}
	}
	if ld.MainRoom < 0 || ld.MainRoom >= len(ld.Rooms) {
		return nil, nil, fmt.Errorf("layout %s: main room %d out of range", ld.ID, ld.MainRoom)
	}

	l := &dungeon.Layout{
		Grid:     dungeon.ParseGrid(ld.Rows...),
		MainRoom: ld.MainRoom,
		Seed:     ld.Seed,
		Passages: ld.Passages,
		Params:   ld.Params,
	}
	for i, rd := range ld.Rooms {
		r := dungeon.RestoreRoom(i, rd.Tiles, rd.EdgeTiles, rd.Connected)
		r.Type = parseRoomType(rd.Type)
		r.IsMainRoom = i == ld.MainRoom
		r.IsAccessibleFromMainRoom = true
		l.Rooms = append(l.Rooms, r)
	}

	var spawns []placement.Spawn
	for _, sd := range ld.Spawns {
		kind, ok := placement.ParseKind(sd.Kind)
		if !ok {
			return nil, nil, fmt.Errorf("layout %s: unknown spawn kind %q", ld.ID, sd.Kind)
		}
		spawns = append(spawns, placement.Spawn{
			Kind: kind,
			Room: sd.Room,
			Tile: dungeon.Coord{X: sd.X, Y: sd.Y},
		})
	}
	return l, spawns, nil
}

func parseRoomType(s string) dungeon.RoomType {
	switch s {
	case dungeon.RoomTypeStart.String():
		return dungeon.RoomTypeStart
	case dungeon.RoomTypeChest.String():
		return dungeon.RoomTypeChest
	default:
		return dungeon.RoomTypeEnemy
	}
}
