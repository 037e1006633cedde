// Package render draws generated layouts as text or onto a terminal screen.
package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/OCharnyshevich/cavegen/internal/placement"
	"github.com/OCharnyshevich/cavegen/pkg/dungeon"
)

// Glyphs used by both the text and the terminal output.
const (
	GlyphWall   = '#'
	GlyphFloor  = '.'
	GlyphPlayer = '@'
	GlyphShield = 's'
	GlyphEnemy  = 'e'
)

var (
	styleWall   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFloor  = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	styleStart  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleChest  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleEnemy  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	stylePlayer = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleStatus = tcell.StyleDefault.Reverse(true)
)

func spawnGlyph(k placement.Kind) rune {
	switch k {
	case placement.KindPlayer:
		return GlyphPlayer
	case placement.KindShield:
		return GlyphShield
	default:
		return GlyphEnemy
	}
}

func spawnIndex(spawns []placement.Spawn) map[dungeon.Coord]placement.Kind {
	idx := make(map[dungeon.Coord]placement.Kind, len(spawns))
	for _, s := range spawns {
		// Player wins over anything sharing its tile.
		if prev, ok := idx[s.Tile]; ok && prev == placement.KindPlayer {
			continue
		}
		idx[s.Tile] = s.Kind
	}
	return idx
}

// Text renders the layout grid in the same orientation as dungeon.Grid.String,
// with spawn glyphs over the floor.
func Text(layout *dungeon.Layout, spawns []placement.Spawn) string {
	g := layout.Grid
	idx := spawnIndex(spawns)

	var b strings.Builder
	b.Grow((g.Width + 1) * g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if k, ok := idx[dungeon.Coord{X: x, Y: y}]; ok {
				b.WriteRune(spawnGlyph(k))
				continue
			}
			if g.IsWall(x, y) {
				b.WriteRune(GlyphWall)
			} else {
				b.WriteRune(GlyphFloor)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func roomStyle(t dungeon.RoomType) tcell.Style {
	switch t {
	case dungeon.RoomTypeStart:
		return styleStart
	case dungeon.RoomTypeChest:
		return styleChest
	default:
		return styleEnemy
	}
}

// Draw paints the layout onto screen with its top-left corner at (offX, offY)
// in layout space. Cells outside the layout are cleared. The last screen row
// is left for the status line.
func Draw(screen tcell.Screen, layout *dungeon.Layout, spawns []placement.Spawn, offX, offY int) {
	g := layout.Grid
	idx := spawnIndex(spawns)
	sw, sh := screen.Size()
	rows := sh - 1

	roomOf := make(map[dungeon.Coord]*dungeon.Room, g.Width*g.Height)
	for _, r := range layout.Rooms {
		for _, c := range r.Tiles {
			roomOf[c] = r
		}
	}

	for sy := 0; sy < rows; sy++ {
		y := sy + offY
		for sx := 0; sx < sw; sx++ {
			x := sx + offX
			if !g.InBounds(x, y) {
				screen.SetContent(sx, sy, ' ', nil, tcell.StyleDefault)
				continue
			}
			c := dungeon.Coord{X: x, Y: y}
			if k, ok := idx[c]; ok {
				style := stylePlayer
				if r := roomOf[c]; r != nil && k != placement.KindPlayer {
					style = roomStyle(r.Type).Bold(true)
				}
				screen.SetContent(sx, sy, spawnGlyph(k), nil, style)
				continue
			}
			if g.IsWall(x, y) {
				screen.SetContent(sx, sy, GlyphWall, nil, styleWall)
				continue
			}
			style := styleFloor
			if r := roomOf[c]; r != nil {
				style = roomStyle(r.Type)
			}
			screen.SetContent(sx, sy, GlyphFloor, nil, style)
		}
	}
}

func drawStatus(screen tcell.Screen, text string) {
	sw, sh := screen.Size()
	if sh == 0 {
		return
	}
	runes := []rune(text)
	for x := 0; x < sw; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		screen.SetContent(x, sh-1, r, nil, styleStatus)
	}
}
