package dungeon

import "testing"

// referenceSmooth computes one iteration strictly from a snapshot.
func referenceSmooth(g *Grid, threshold int) *Grid {
	out := g.Clone()
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			walls := g.SurroundingWallCount(x, y)
			if walls > threshold {
				out.Set(x, y, Wall)
			} else if walls < threshold {
				out.Set(x, y, Floor)
			}
		}
	}
	return out
}

func TestSmoothReadsSnapshot(t *testing.T) {
	g := NewGrid(32, 24)
	Fill(g, NewRNG("snapshot", SaltFill), 48)

	want := g.Clone()
	for n := 0; n < 3; n++ {
		want = referenceSmooth(want, 4)
	}

	Smooth(g, 4, 3)
	if g.String() != want.String() {
		t.Fatalf("Smooth differs from snapshot reference:\ngot:\n%s\nwant:\n%s", g, want)
	}
}

func TestSmoothTieKeepsState(t *testing.T) {
	// (2,2) is a wall with exactly four wall neighbours.
	g := ParseGrid(
		".....",
		".###.",
		".##..",
		".....",
		".....",
	)
	Smooth(g, 4, 1)
	if g.At(2, 2) != Wall {
		t.Fatal("global smoothing should keep a tile whose count equals the threshold")
	}
}

func TestSmoothRegionsTieBecomesFloor(t *testing.T) {
	g := ParseGrid(
		".....",
		".###.",
		".##..",
		".....",
		".....",
	)
	SmoothRegions(g, []Region{{{X: 2, Y: 2}}}, 4, 1)
	if g.At(2, 2) != Floor {
		t.Fatal("room smoothing should turn a tile whose count equals the threshold into floor")
	}
	if g.At(1, 1) != Wall || g.At(3, 1) != Wall {
		t.Fatal("room smoothing touched tiles outside the region")
	}
}

func TestSmoothZeroIterations(t *testing.T) {
	g := ParseGrid("#.#", ".#.", "#.#")
	before := g.String()
	Smooth(g, 4, 0)
	SmoothRegions(g, Regions(g, Floor), 4, 0)
	if g.String() != before {
		t.Fatal("zero iterations should not change the grid")
	}
}

func TestFillBorderAndExtremes(t *testing.T) {
	g := NewGrid(10, 8)
	Fill(g, NewRNG("x", SaltFill), 0)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			edge := x == 0 || y == 0 || x == g.Width-1 || y == g.Height-1
			if edge && g.At(x, y) != Wall {
				t.Fatalf("edge tile (%d,%d) is floor", x, y)
			}
			if !edge && g.At(x, y) != Floor {
				t.Fatalf("interior tile (%d,%d) is wall with 0%% fill", x, y)
			}
		}
	}

	Fill(g, NewRNG("x", SaltFill), 100)
	if g.Count(Floor) != 0 {
		t.Fatalf("100%% fill left %d floor tiles", g.Count(Floor))
	}
}

func TestFillDeterministic(t *testing.T) {
	a := NewGrid(40, 30)
	b := NewGrid(40, 30)
	Fill(a, NewRNG("same", SaltFill), 45)
	Fill(b, NewRNG("same", SaltFill), 45)
	if a.String() != b.String() {
		t.Fatal("same seed produced different fills")
	}

	Fill(b, NewRNG("other", SaltFill), 45)
	if a.String() == b.String() {
		t.Fatal("different seeds produced identical fills")
	}
}
