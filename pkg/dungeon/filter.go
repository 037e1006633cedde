package dungeon

import "slices"

// PruneWalls turns wall regions smaller than threshold into floor and returns
// how many regions were removed.
func PruneWalls(g *Grid, regions []Region, threshold int) int {
	removed := 0
	for _, region := range regions {
		if len(region) >= threshold {
			continue
		}
		for _, c := range region {
			g.Set(c.X, c.Y, Floor)
		}
		removed++
	}
	return removed
}

// BuildRooms fills floor regions smaller than threshold with wall and turns
// the rest into rooms, largest first. The first room is flagged as the main
// room. Small regions are filled before any edge tiles are computed, so edge
// tiles always reflect the final walls.
func BuildRooms(g *Grid, regions []Region, threshold int) []*Room {
	kept := make([]Region, 0, len(regions))
	for _, region := range regions {
		if len(region) < threshold {
			for _, c := range region {
				g.Set(c.X, c.Y, Wall)
			}
			continue
		}
		kept = append(kept, region)
	}

	rooms := make([]*Room, 0, len(kept))
	for _, region := range kept {
		rooms = append(rooms, NewRoom(len(rooms), region, g))
	}

	slices.SortStableFunc(rooms, func(a, b *Room) int {
		return b.Size - a.Size
	})
	for i, r := range rooms {
		r.Index = i
	}
	if len(rooms) > 0 {
		rooms[0].IsMainRoom = true
		rooms[0].IsAccessibleFromMainRoom = true
	}
	return rooms
}
