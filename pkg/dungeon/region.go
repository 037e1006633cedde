package dungeon

// Region is a maximal 4-connected set of same-state tiles.
type Region []Coord

// Regions partitions every tile equal to target into 4-connected regions.
// Tiles are scanned row by row; regions come back in discovery order.
func Regions(g *Grid, target Tile) []Region {
	visited := make([]bool, len(g.Tiles))
	var regions []Region
	queue := make([]Coord, 0, len(g.Tiles))

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			idx := y*g.Width + x
			if visited[idx] || g.Tiles[idx] != target {
				continue
			}

			var region Region
			visited[idx] = true
			queue = append(queue[:0], Coord{X: x, Y: y})
			for len(queue) > 0 {
				c := queue[0]
				queue = queue[1:]
				region = append(region, c)

				for _, d := range orthogonal {
					nx, ny := c.X+d.X, c.Y+d.Y
					if !g.InBounds(nx, ny) {
						continue
					}
					nidx := ny*g.Width + nx
					if visited[nidx] || g.Tiles[nidx] != target {
						continue
					}
					visited[nidx] = true
					queue = append(queue, Coord{X: nx, Y: ny})
				}
			}
			regions = append(regions, region)
		}
	}
	return regions
}

var orthogonal = [4]Coord{
	{X: 0, Y: -1},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
	{X: 0, Y: 1},
}
