package dungeon

import "testing"

func carveWith(g *Grid, radius int, rng *RNG) func(Passage) {
	return func(p Passage) {
		Carve(g, p.From, p.To, radius, rng, false)
	}
}

func TestConnectBridgesSeparatedRooms(t *testing.T) {
	g := ParseGrid(
		"################",
		"#...######....##",
		"#...######....##",
		"#...######....##",
		"################",
	)
	rooms := BuildRooms(g, Regions(g, Floor), 1)
	if len(rooms) != 2 {
		t.Fatalf("got %d rooms, want 2", len(rooms))
	}

	passages := Connect(rooms, carveWith(g, 1, NewRNG("bridge", SaltCarve)))
	if len(passages) != 1 {
		t.Fatalf("got %d passages, want 1", len(passages))
	}
	p := passages[0]
	if p.RoomA != 0 || p.RoomB != 1 {
		t.Errorf("passage joins rooms %d,%d, want 0,1", p.RoomA, p.RoomB)
	}
	if d := squaredDistance(p.From, p.To); d != 49 {
		t.Errorf("passage endpoints %v-%v are %d apart, want 49", p.From, p.To, d)
	}
	for _, r := range rooms {
		if !r.IsAccessibleFromMainRoom {
			t.Errorf("room %d not accessible from main room", r.Index)
		}
	}
	if !rooms[0].IsConnected(1) || !rooms[1].IsConnected(0) {
		t.Error("connection should be symmetric")
	}
	if n := len(Regions(g, Floor)); n != 1 {
		t.Fatalf("after carving there are %d floor regions, want 1:\n%s", n, g)
	}
}

func TestConnectForcesReachability(t *testing.T) {
	// Two pairs of close rooms far apart: the first pass links each pair,
	// the second pass must join the pairs.
	g := ParseGrid(
		"##############################",
		"#....#....############....#..#",
		"#....#....############....#..#",
		"#....#....############....#..#",
		"##############################",
	)
	rooms := BuildRooms(g, Regions(g, Floor), 1)
	if len(rooms) != 4 {
		t.Fatalf("got %d rooms, want 4", len(rooms))
	}

	passages := Connect(rooms, carveWith(g, 1, NewRNG("pairs", SaltCarve)))
	if len(passages) < 3 {
		t.Fatalf("got %d passages, want at least 3", len(passages))
	}
	for _, r := range rooms {
		if !r.IsAccessibleFromMainRoom {
			t.Errorf("room %d not accessible", r.Index)
		}
	}
	if n := reachableFrom(rooms, 0); n != len(rooms) {
		t.Fatalf("%d of %d rooms reachable through connections", n, len(rooms))
	}
	if n := len(Regions(g, Floor)); n != 1 {
		t.Fatalf("carved grid has %d floor regions, want 1:\n%s", n, g)
	}
}

func TestConnectSingleRoom(t *testing.T) {
	g := ParseGrid(
		"#####",
		"#...#",
		"#####",
	)
	rooms := BuildRooms(g, Regions(g, Floor), 1)
	passages := Connect(rooms, func(Passage) { t.Fatal("nothing to carve") })
	if len(passages) != 0 {
		t.Fatalf("got %d passages for a single room", len(passages))
	}
	if !rooms[0].IsAccessibleFromMainRoom {
		t.Fatal("main room is always accessible")
	}
}

func TestMarkAccessiblePropagatesThroughChain(t *testing.T) {
	rooms := make([]*Room, 5)
	for i := range rooms {
		rooms[i] = NewRoom(i, Region{{X: i, Y: 0}}, NewGrid(5, 1))
	}
	rooms[0].IsAccessibleFromMainRoom = true

	link(rooms, 3, 4)
	link(rooms, 2, 3)
	link(rooms, 1, 2)
	for i := 1; i < 5; i++ {
		if rooms[i].IsAccessibleFromMainRoom {
			t.Fatalf("room %d accessible before touching the main room", i)
		}
	}

	link(rooms, 0, 1)
	for i, r := range rooms {
		if !r.IsAccessibleFromMainRoom {
			t.Errorf("room %d not reached by propagation", i)
		}
	}
}
