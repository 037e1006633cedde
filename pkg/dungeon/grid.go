package dungeon

import "strings"

// Tile is the state of one grid cell.
type Tile uint8

const (
	Floor Tile = 0
	Wall  Tile = 1
)

// Coord identifies a grid cell by its column and row.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Grid is a width×height tile field.
// Index = y*Width + x.
type Grid struct {
	Width  int
	Height int
	Tiles  []Tile
}

// NewGrid creates a grid with every tile set to floor.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		Tiles:  make([]Tile, width*height),
	}
}

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the tile at (x, y). Out-of-bounds positions read as wall.
func (g *Grid) At(x, y int) Tile {
	if !g.InBounds(x, y) {
		return Wall
	}
	return g.Tiles[y*g.Width+x]
}

// Set stores a tile at (x, y). Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y int, t Tile) {
	if !g.InBounds(x, y) {
		return
	}
	g.Tiles[y*g.Width+x] = t
}

// IsWall reports whether the tile at (x, y) is a wall.
func (g *Grid) IsWall(x, y int) bool {
	return g.At(x, y) == Wall
}

// SurroundingWallCount counts walls in the 8-neighbourhood of (x, y).
// Positions outside the grid count as walls.
func (g *Grid) SurroundingWallCount(x, y int) int {
	count := 0
	for ny := y - 1; ny <= y+1; ny++ {
		for nx := x - 1; nx <= x+1; nx++ {
			if nx == x && ny == y {
				continue
			}
			if g.At(nx, ny) == Wall {
				count++
			}
		}
	}
	return count
}

// Count returns the number of tiles equal to t.
func (g *Grid) Count(t Tile) int {
	n := 0
	for _, v := range g.Tiles {
		if v == t {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{Width: g.Width, Height: g.Height, Tiles: make([]Tile, len(g.Tiles))}
	copy(c.Tiles, g.Tiles)
	return c
}

// Bordered returns a new grid with a ring of border walls around g.
func (g *Grid) Bordered(border int) *Grid {
	b := &Grid{
		Width:  g.Width + border*2,
		Height: g.Height + border*2,
	}
	b.Tiles = make([]Tile, b.Width*b.Height)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if x >= border && x < g.Width+border && y >= border && y < g.Height+border {
				b.Tiles[y*b.Width+x] = g.Tiles[(y-border)*g.Width+(x-border)]
			} else {
				b.Tiles[y*b.Width+x] = Wall
			}
		}
	}
	return b
}

// String renders the grid with '#' for walls and '.' for floors, one row per line.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.Width + 1) * g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Tiles[y*g.Width+x] == Wall {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseGrid builds a grid from rows of '#' (wall) and any other byte (floor).
// All rows must have the same length.
func ParseGrid(rows ...string) *Grid {
	if len(rows) == 0 {
		return NewGrid(0, 0)
	}
	g := NewGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		for x := 0; x < g.Width && x < len(row); x++ {
			if row[x] == '#' {
				g.Tiles[y*g.Width+x] = Wall
			}
		}
	}
	return g
}
