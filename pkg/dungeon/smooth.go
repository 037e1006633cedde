package dungeon

// Smooth runs the cellular automaton over the whole grid for the given number
// of iterations. A tile with more than threshold wall neighbours becomes wall,
// fewer becomes floor, and exactly threshold keeps its state.
//
// Every iteration reads from a snapshot of the previous state and writes into
// a second buffer, so the result does not depend on scan order.
func Smooth(g *Grid, threshold, iterations int) {
	if iterations <= 0 {
		return
	}
	next := g.Clone()
	for it := 0; it < iterations; it++ {
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				walls := g.SurroundingWallCount(x, y)
				idx := y*g.Width + x
				switch {
				case walls > threshold:
					next.Tiles[idx] = Wall
				case walls < threshold:
					next.Tiles[idx] = Floor
				default:
					next.Tiles[idx] = g.Tiles[idx]
				}
			}
		}
		g.Tiles, next.Tiles = next.Tiles, g.Tiles
	}
}

// SmoothRegions runs the room variant of the automaton, touching only the
// tiles listed in regions. Here a count equal to threshold becomes floor, which
// rounds room interiors out more aggressively than Smooth.
func SmoothRegions(g *Grid, regions []Region, threshold, iterations int) {
	for it := 0; it < iterations; it++ {
		snapshot := g.Clone()
		for _, region := range regions {
			for _, c := range region {
				if snapshot.SurroundingWallCount(c.X, c.Y) > threshold {
					g.Set(c.X, c.Y, Wall)
				} else {
					g.Set(c.X, c.Y, Floor)
				}
			}
		}
	}
}
