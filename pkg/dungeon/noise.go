package dungeon

// Simplex noise over a permutation table shuffled by the run's RNG.
// Produces values in the range [-1, 1].

// grad2 are the gradient directions used for 2D noise.
var grad2 = [12][2]float64{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {1, 0}, {-1, 0},
	{0, 1}, {0, -1}, {0, 1}, {0, -1},
}

// Octaves and persistence used by FillNoise.
const (
	noiseOctaves     = 4
	noisePersistence = 0.5
)

// Noise produces deterministic 2D simplex noise.
type Noise struct {
	perm [512]int
}

// NewNoise builds a noise source whose permutation is shuffled by rng.
func NewNoise(rng *RNG) *Noise {
	n := &Noise{}

	var p [256]int
	for i := range p {
		p[i] = i
	}
	for i := 255; i > 0; i-- {
		j := rng.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	for i := range n.perm {
		n.perm[i] = p[i&255]
	}
	return n
}

// At returns simplex noise at (x, y).
func (n *Noise) At(x, y float64) float64 {
	const (
		f2 = 0.36602540378443864676 // (sqrt(3) - 1) / 2
		g2 = 0.21132486540518711775 // (3 - sqrt(3)) / 6
	)

	s := (x + y) * f2
	i := fastFloor(x + s)
	j := fastFloor(y + s)

	t := float64(i+j) * g2
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)

	var i1, j1 int
	if x0 > y0 {
		i1 = 1
	} else {
		j1 = 1
	}

	x1 := x0 - float64(i1) + g2
	y1 := y0 - float64(j1) + g2
	x2 := x0 - 1.0 + 2.0*g2
	y2 := y0 - 1.0 + 2.0*g2

	ii := i & 255
	jj := j & 255
	corners := [3]struct {
		x, y float64
		gi   int
	}{
		{x0, y0, n.perm[ii+n.perm[jj]] % 12},
		{x1, y1, n.perm[ii+i1+n.perm[jj+j1]] % 12},
		{x2, y2, n.perm[ii+1+n.perm[jj+1]] % 12},
	}

	var sum float64
	for _, c := range corners {
		t := 0.5 - c.x*c.x - c.y*c.y
		if t < 0 {
			continue
		}
		t *= t
		g := grad2[c.gi]
		sum += t * t * (g[0]*c.x + g[1]*c.y)
	}
	return 70.0 * sum
}

// Octave layers octaves of noise, each at double the frequency of the last.
// Returns a value in [-1, 1].
func (n *Noise) Octave(x, y float64, octaves int, persistence float64) float64 {
	var total, maxVal float64
	frequency, amplitude := 1.0, 1.0

	for o := 0; o < octaves; o++ {
		total += n.At(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2.0
	}
	return total / maxVal
}

// FillNoise is Fill driven by coherent noise instead of independent coin
// flips. scale is the feature size in tiles. fillPercent maps linearly onto
// the noise range, so the wall share only approximates it.
func FillNoise(g *Grid, n *Noise, fillPercent int, scale float64) {
	threshold := float64(fillPercent)/50 - 1
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if x == 0 || x == g.Width-1 || y == 0 || y == g.Height-1 {
				g.Tiles[y*g.Width+x] = Wall
				continue
			}
			v := n.Octave(float64(x)/scale, float64(y)/scale, noiseOctaves, noisePersistence)
			if fillPercent >= 100 || v < threshold {
				g.Tiles[y*g.Width+x] = Wall
			} else {
				g.Tiles[y*g.Width+x] = Floor
			}
		}
	}
}

func fastFloor(x float64) int {
	xi := int(x)
	if x < float64(xi) {
		return xi - 1
	}
	return xi
}
