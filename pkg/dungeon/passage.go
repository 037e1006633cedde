package dungeon

// Passage records one carved corridor between two rooms.
type Passage struct {
	RoomA int   `json:"room_a"`
	RoomB int   `json:"room_b"`
	From  Coord `json:"from"`
	To    Coord `json:"to"`
}

// Carve opens a corridor of the given radius from one tile to another.
// The default path is two axis-aligned legs whose order is picked by rng;
// with diagonal set the brush follows Line instead.
func Carve(g *Grid, from, to Coord, radius int, rng *RNG, diagonal bool) {
	if diagonal {
		for _, c := range Line(from, to) {
			DrawCircle(g, c, radius)
		}
		DrawCircle(g, to, radius)
		return
	}

	xs := StraightLine(from.X, to.X)
	ys := StraightLine(from.Y, to.Y)
	if rng.Coin() {
		for _, x := range xs {
			DrawCircle(g, Coord{X: x, Y: from.Y}, radius)
		}
		for _, y := range ys {
			DrawCircle(g, Coord{X: to.X, Y: y}, radius)
		}
	} else {
		for _, x := range xs {
			DrawCircle(g, Coord{X: x, Y: to.Y}, radius)
		}
		for _, y := range ys {
			DrawCircle(g, Coord{X: from.X, Y: y}, radius)
		}
	}
	DrawCircle(g, to, radius)
}

// StraightLine returns the values from start towards end, end excluded.
func StraightLine(start, end int) []int {
	length := end - start
	step := 1
	if length < 0 {
		step = -1
		length = -length
	}
	line := make([]int, 0, length)
	for i := 0; i < length; i++ {
		line = append(line, start+step*i)
	}
	return line
}

// Line rasterises the segment between two tiles, end excluded.
func Line(from, to Coord) []Coord {
	x, y := from.X, from.Y
	dx := to.X - from.X
	dy := to.Y - from.Y

	inverted := false
	step := sign(dx)
	gradientStep := sign(dy)
	longest := abs(dx)
	shortest := abs(dy)

	if longest < shortest {
		inverted = true
		longest, shortest = shortest, longest
		step, gradientStep = gradientStep, step
	}

	line := make([]Coord, 0, longest)
	acc := longest / 2
	for i := 0; i < longest; i++ {
		line = append(line, Coord{X: x, Y: y})
		if inverted {
			y += step
		} else {
			x += step
		}

		acc += shortest
		if acc >= longest {
			if inverted {
				x += gradientStep
			} else {
				y += gradientStep
			}
			acc -= longest
		}
	}
	return line
}

// DrawCircle sets every in-bounds tile with dx²+dy² ≤ r² around c to floor.
func DrawCircle(g *Grid, c Coord, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				g.Set(c.X+dx, c.Y+dy, Floor)
			}
		}
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
