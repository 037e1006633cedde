package dungeon

import (
	"slices"
	"testing"
)

func TestStraightLine(t *testing.T) {
	tests := []struct {
		start, end int
		want       []int
	}{
		{0, 3, []int{0, 1, 2}},
		{3, 0, []int{3, 2, 1}},
		{4, 4, []int{}},
	}
	for _, tt := range tests {
		if got := StraightLine(tt.start, tt.end); !slices.Equal(got, tt.want) {
			t.Errorf("StraightLine(%d,%d) = %v, want %v", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestLine(t *testing.T) {
	got := Line(Coord{X: 0, Y: 0}, Coord{X: 4, Y: 2})
	want := []Coord{{0, 0}, {1, 1}, {2, 1}, {3, 2}}
	if !slices.Equal(got, want) {
		t.Fatalf("Line = %v, want %v", got, want)
	}

	steep := Line(Coord{X: 0, Y: 0}, Coord{X: 1, Y: -3})
	if len(steep) != 3 || steep[0] != (Coord{0, 0}) {
		t.Fatalf("steep Line = %v", steep)
	}
	for i := 1; i < len(steep); i++ {
		if steep[i].Y != steep[i-1].Y-1 {
			t.Fatalf("steep line should step one row at a time: %v", steep)
		}
	}
}

func TestDrawCircle(t *testing.T) {
	g := NewGrid(5, 5)
	Fill(g, NewRNG("solid", SaltFill), 100)
	DrawCircle(g, Coord{X: 2, Y: 2}, 1)
	want := "#####\n" +
		"##.##\n" +
		"#...#\n" +
		"##.##\n" +
		"#####\n"
	if got := g.String(); got != want {
		t.Fatalf("radius 1 disk:\n%s\nwant:\n%s", got, want)
	}
}

func TestDrawCircleClipsToBounds(t *testing.T) {
	g := NewGrid(3, 3)
	Fill(g, NewRNG("solid", SaltFill), 100)
	DrawCircle(g, Coord{X: 0, Y: 0}, 2)
	if g.At(2, 2) != Wall {
		t.Error("(2,2) is outside radius 2 of the corner")
	}
	if g.At(2, 0) != Floor || g.At(0, 2) != Floor || g.At(1, 1) != Floor {
		t.Error("tiles within radius should be floor")
	}
}

func TestCarveConnectsEndpoints(t *testing.T) {
	for _, diagonal := range []bool{false, true} {
		for i := 0; i < 8; i++ {
			g := NewGrid(20, 20)
			Fill(g, NewRNG("solid", SaltFill), 100)
			from := Coord{X: 2, Y: 3}
			to := Coord{X: 15, Y: 17}
			g.Set(from.X, from.Y, Floor)
			g.Set(to.X, to.Y, Floor)

			Carve(g, from, to, 1, NewRNG(string(rune('a'+i)), SaltCarve), diagonal)
			if n := len(Regions(g, Floor)); n != 1 {
				t.Fatalf("diagonal=%v run %d: %d floor regions after carving:\n%s", diagonal, i, n, g)
			}
		}
	}
}
