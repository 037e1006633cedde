package dungeon

// Fill initialises every tile of g from rng. The outermost ring is always
// wall; interior tiles become wall with probability fillPercent/100.
func Fill(g *Grid, rng *RNG, fillPercent int) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if x == 0 || x == g.Width-1 || y == 0 || y == g.Height-1 {
				g.Tiles[y*g.Width+x] = Wall
				continue
			}
			if rng.Percent(fillPercent) {
				g.Tiles[y*g.Width+x] = Wall
			} else {
				g.Tiles[y*g.Width+x] = Floor
			}
		}
	}
}
