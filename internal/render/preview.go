package render

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/OCharnyshevich/cavegen/internal/placement"
	"github.com/OCharnyshevich/cavegen/pkg/dungeon"
)

// Regenerate produces a fresh layout for the preview's r key.
type Regenerate func(ctx context.Context) (*dungeon.Layout, []placement.Spawn, error)

const scrollStep = 4

// Preview runs an interactive loop on an initialised screen until the user
// quits with q or Esc, or ctx is done. Arrow keys scroll, r calls regen when
// it is non-nil. The caller owns screen and must Fini it.
func Preview(ctx context.Context, screen tcell.Screen, layout *dungeon.Layout, spawns []placement.Spawn, regen Regenerate) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-stop:
		}
	}()

	offX, offY := 0, 0
	status := ""
	for {
		screen.Clear()
		Draw(screen, layout, spawns, offX, offY)
		line := fmt.Sprintf("seed %s | rooms %d | passages %d | arrows scroll, r regenerate, q quit",
			layout.Seed, len(layout.Rooms), len(layout.Passages))
		if status != "" {
			line = status + " | " + line
		}
		drawStatus(screen, line)
		screen.Show()

		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}
		switch ev := ev.(type) {
		case *tcell.EventInterrupt:
			return ctx.Err()
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return nil
			case tcell.KeyLeft:
				offX = max(offX-scrollStep, 0)
			case tcell.KeyRight:
				offX += scrollStep
			case tcell.KeyUp:
				offY = max(offY-scrollStep, 0)
			case tcell.KeyDown:
				offY += scrollStep
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'q':
					return nil
				case 'r':
					if regen == nil {
						continue
					}
					l, s, err := regen(ctx)
					if err != nil {
						status = "regenerate failed: " + err.Error()
						continue
					}
					layout, spawns, status = l, s, ""
					offX, offY = 0, 0
				}
			}
		}
	}
}
