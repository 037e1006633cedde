package dungeon

import (
	"slices"

	"github.com/zyedidia/generic/mapset"
)

// RoomType is the gameplay category assigned to a room after generation.
type RoomType int

const (
	RoomTypeEnemy RoomType = iota
	RoomTypeChest
	RoomTypeStart
)

func (t RoomType) String() string {
	switch t {
	case RoomTypeEnemy:
		return "enemy"
	case RoomTypeChest:
		return "chest"
	case RoomTypeStart:
		return "start"
	default:
		return "unknown"
	}
}

// maxSampleTries bounds rejection sampling in TileNear.
const maxSampleTries = 2000

// Room is a floor region that survived size filtering.
// Rooms live in Layout.Rooms and refer to each other by index.
type Room struct {
	Index     int
	Tiles     []Coord
	EdgeTiles []Coord
	Size      int

	IsMainRoom               bool
	IsAccessibleFromMainRoom bool

	// Connected holds the indices of rooms linked to this one by a passage.
	Connected mapset.Set[int]

	Type RoomType

	members mapset.Set[Coord]
}

// NewRoom builds a room from a floor region of g. Edge tiles are the region
// tiles with at least one orthogonal wall neighbour.
func NewRoom(index int, region Region, g *Grid) *Room {
	r := &Room{
		Index:     index,
		Tiles:     region,
		Size:      len(region),
		Connected: mapset.New[int](),
		members:   mapset.New[Coord](),
	}
	for _, c := range region {
		r.members.Put(c)
		for _, d := range orthogonal {
			if g.IsWall(c.X+d.X, c.Y+d.Y) {
				r.EdgeTiles = append(r.EdgeTiles, c)
				break
			}
		}
	}
	return r
}

// RestoreRoom rebuilds a room from previously generated data.
func RestoreRoom(index int, tiles, edgeTiles []Coord, connected []int) *Room {
	r := &Room{
		Index:     index,
		Tiles:     tiles,
		EdgeTiles: edgeTiles,
		Size:      len(tiles),
		Connected: mapset.New[int](),
		members:   mapset.New[Coord](),
	}
	for _, c := range tiles {
		r.members.Put(c)
	}
	for _, n := range connected {
		r.Connected.Put(n)
	}
	return r
}

// IsConnected reports whether a passage links this room to room other.
func (r *Room) IsConnected(other int) bool {
	return r.Connected.Has(other)
}

// Neighbours returns the connected room indices in ascending order.
func (r *Room) Neighbours() []int {
	out := make([]int, 0, r.Connected.Size())
	r.Connected.Each(func(i int) {
		out = append(out, i)
	})
	slices.Sort(out)
	return out
}

// Contains reports whether c is one of the room's tiles.
func (r *Room) Contains(c Coord) bool {
	return r.members.Has(c)
}

// RandomTile returns a uniformly chosen tile of the room.
func (r *Room) RandomTile(rng *RNG) Coord {
	return r.Tiles[rng.Intn(len(r.Tiles))]
}

// RandomTiles returns n distinct random tiles. n is capped at the room size.
func (r *Room) RandomTiles(rng *RNG, n int) []Coord {
	n = min(n, len(r.Tiles))
	picked := mapset.New[Coord]()
	out := make([]Coord, 0, n)
	for len(out) < n {
		c := r.RandomTile(rng)
		if picked.Has(c) {
			continue
		}
		picked.Put(c)
		out = append(out, c)
	}
	return out
}

// TileNear samples room tiles until one lies within dist of target.
// After maxSampleTries misses the closest candidate seen is returned.
func (r *Room) TileNear(rng *RNG, target Coord, dist int) Coord {
	best := r.RandomTile(rng)
	bestDist := squaredDistance(best, target)
	limit := dist * dist
	for tries := 0; bestDist > limit && tries < maxSampleTries; tries++ {
		c := r.RandomTile(rng)
		if d := squaredDistance(c, target); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// translate shifts every coordinate of the room by (dx, dy).
func (r *Room) translate(dx, dy int) {
	members := mapset.New[Coord]()
	for i, c := range r.Tiles {
		r.Tiles[i] = Coord{X: c.X + dx, Y: c.Y + dy}
		members.Put(r.Tiles[i])
	}
	for i, c := range r.EdgeTiles {
		r.EdgeTiles[i] = Coord{X: c.X + dx, Y: c.Y + dy}
	}
	r.members = members
}

func squaredDistance(a, b Coord) int {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}
