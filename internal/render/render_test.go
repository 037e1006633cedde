package render

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/OCharnyshevich/cavegen/internal/placement"
	"github.com/OCharnyshevich/cavegen/pkg/dungeon"
)

func fixture() (*dungeon.Layout, []placement.Spawn) {
	g := dungeon.ParseGrid(
		"######",
		"#..#.#",
		"#..#.#",
		"######",
	)
	start := dungeon.RestoreRoom(0,
		[]dungeon.Coord{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}}, nil, nil)
	start.Type = dungeon.RoomTypeStart
	enemy := dungeon.RestoreRoom(1, []dungeon.Coord{{X: 4, Y: 1}, {X: 4, Y: 2}}, nil, nil)
	enemy.Type = dungeon.RoomTypeEnemy

	layout := &dungeon.Layout{
		Grid:  g,
		Rooms: []*dungeon.Room{start, enemy},
		Seed:  "fixture",
	}
	spawns := []placement.Spawn{
		{Kind: placement.KindPlayer, Room: 0, Tile: dungeon.Coord{X: 1, Y: 1}},
		{Kind: placement.KindShield, Room: 0, Tile: dungeon.Coord{X: 2, Y: 2}},
		{Kind: placement.KindEnemy, Room: 1, Tile: dungeon.Coord{X: 4, Y: 2}},
	}
	return layout, spawns
}

func TestText(t *testing.T) {
	layout, spawns := fixture()

	want := "######\n" +
		"#@.#.#\n" +
		"#.s#e#\n" +
		"######\n"
	if got := Text(layout, spawns); got != want {
		t.Fatalf("Text =\n%s\nwant\n%s", got, want)
	}
}

func TestTextWithoutSpawnsMatchesGrid(t *testing.T) {
	layout, _ := fixture()
	if got, want := Text(layout, nil), layout.Grid.String(); got != want {
		t.Fatalf("Text =\n%s\nwant\n%s", got, want)
	}
}

func TestPlayerWinsSharedTile(t *testing.T) {
	layout, _ := fixture()
	tile := dungeon.Coord{X: 2, Y: 1}
	spawns := []placement.Spawn{
		{Kind: placement.KindPlayer, Tile: tile},
		{Kind: placement.KindShield, Tile: tile},
	}
	got := Text(layout, spawns)
	if got[1*7+2] != GlyphPlayer {
		t.Fatalf("shared tile glyph = %q, want %q", got[1*7+2], GlyphPlayer)
	}
}

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)
	return screen
}

func TestDraw(t *testing.T) {
	layout, spawns := fixture()
	screen := newScreen(t, 10, 5)

	Draw(screen, layout, spawns, 0, 0)

	tests := []struct {
		x, y  int
		glyph rune
		style tcell.Style
	}{
		{0, 0, GlyphWall, styleWall},
		{1, 1, GlyphPlayer, stylePlayer},
		{2, 1, GlyphFloor, styleStart},
		{2, 2, GlyphShield, styleStart.Bold(true)},
		{4, 1, GlyphFloor, styleEnemy},
		{4, 2, GlyphEnemy, styleEnemy.Bold(true)},
		{8, 0, ' ', tcell.StyleDefault},
	}
	for _, tt := range tests {
		glyph, _, style, _ := screen.GetContent(tt.x, tt.y)
		if glyph != tt.glyph {
			t.Errorf("(%d,%d) glyph = %q, want %q", tt.x, tt.y, glyph, tt.glyph)
		}
		if style != tt.style {
			t.Errorf("(%d,%d) style mismatch", tt.x, tt.y)
		}
	}
}

func TestDrawOffset(t *testing.T) {
	layout, spawns := fixture()
	screen := newScreen(t, 4, 3)

	Draw(screen, layout, spawns, 1, 1)

	if glyph, _, _, _ := screen.GetContent(0, 0); glyph != GlyphPlayer {
		t.Fatalf("glyph at origin = %q, want %q", glyph, GlyphPlayer)
	}
}

func runPreview(t *testing.T, ctx context.Context, screen tcell.Screen, regen Regenerate) <-chan error {
	t.Helper()
	layout, spawns := fixture()
	done := make(chan error, 1)
	go func() {
		done <- Preview(ctx, screen, layout, spawns, regen)
	}()
	return done
}

func wait(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("preview did not return")
		return nil
	}
}

func TestPreviewRegenerateThenQuit(t *testing.T) {
	screen := newScreen(t, 20, 8)

	calls := 0
	regen := func(context.Context) (*dungeon.Layout, []placement.Spawn, error) {
		calls++
		layout, spawns := fixture()
		return layout, spawns, nil
	}
	done := runPreview(t, context.Background(), screen, regen)

	screen.InjectKey(tcell.KeyRune, 'r', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	if err := wait(t, done); err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if calls != 1 {
		t.Fatalf("regenerate called %d times, want 1", calls)
	}
}

func TestPreviewRegenerateErrorKeepsRunning(t *testing.T) {
	screen := newScreen(t, 20, 8)

	regen := func(context.Context) (*dungeon.Layout, []placement.Spawn, error) {
		return nil, nil, dungeon.ErrNoRoomsSurvived
	}
	done := runPreview(t, context.Background(), screen, regen)

	screen.InjectKey(tcell.KeyRune, 'r', tcell.ModNone)
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	if err := wait(t, done); err != nil {
		t.Fatalf("Preview: %v", err)
	}
}

func TestPreviewContextCancel(t *testing.T) {
	screen := newScreen(t, 20, 8)

	ctx, cancel := context.WithCancel(context.Background())
	done := runPreview(t, ctx, screen, nil)
	cancel()

	if err := wait(t, done); !errors.Is(err, context.Canceled) {
		t.Fatalf("Preview error = %v, want context.Canceled", err)
	}
}
