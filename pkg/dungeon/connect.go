package dungeon

// candidate is the closest edge-tile pair found between two rooms.
type candidate struct {
	roomA, roomB int
	tileA, tileB Coord
	dist         int
	found        bool
}

// consider keeps the first strict minimum seen during a scan.
func (c *candidate) consider(a, b *Room) {
	for _, ta := range a.EdgeTiles {
		for _, tb := range b.EdgeTiles {
			d := squaredDistance(ta, tb)
			if !c.found || d < c.dist {
				*c = candidate{
					roomA: a.Index,
					roomB: b.Index,
					tileA: ta,
					tileB: tb,
					dist:  d,
					found: true,
				}
			}
		}
	}
}

// Connect links rooms until every room is reachable from the main room.
// carve is called once per new passage, after the rooms have been linked.
//
// The first pass gives each isolated room a passage to its nearest room.
// The second pass repeatedly joins the closest pair between the accessible
// and inaccessible sets; every join moves at least one room across, so it
// ends after at most len(rooms)-1 passages.
func Connect(rooms []*Room, carve func(Passage)) []Passage {
	var passages []Passage
	join := func(c candidate) {
		link(rooms, c.roomA, c.roomB)
		p := Passage{RoomA: c.roomA, RoomB: c.roomB, From: c.tileA, To: c.tileB}
		passages = append(passages, p)
		if carve != nil {
			carve(p)
		}
	}

	for _, a := range rooms {
		if a.Connected.Size() > 0 {
			continue
		}
		var best candidate
		for _, b := range rooms {
			if a.Index == b.Index || a.IsConnected(b.Index) {
				continue
			}
			best.consider(a, b)
		}
		if best.found {
			join(best)
		}
	}

	for {
		var reachable, unreachable []*Room
		for _, r := range rooms {
			if r.IsAccessibleFromMainRoom {
				reachable = append(reachable, r)
			} else {
				unreachable = append(unreachable, r)
			}
		}
		if len(reachable) == 0 || len(unreachable) == 0 {
			break
		}

		var best candidate
		for _, a := range unreachable {
			for _, b := range reachable {
				if a.IsConnected(b.Index) {
					continue
				}
				best.consider(a, b)
			}
		}
		if !best.found {
			break
		}
		join(best)
	}
	return passages
}

// link records a symmetric connection and spreads main-room accessibility
// across the newly joined component.
func link(rooms []*Room, a, b int) {
	rooms[a].Connected.Put(b)
	rooms[b].Connected.Put(a)
	switch {
	case rooms[a].IsAccessibleFromMainRoom:
		markAccessible(rooms, b)
	case rooms[b].IsAccessibleFromMainRoom:
		markAccessible(rooms, a)
	}
}

func markAccessible(rooms []*Room, start int) {
	if rooms[start].IsAccessibleFromMainRoom {
		return
	}
	rooms[start].IsAccessibleFromMainRoom = true
	stack := []int{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		rooms[cur].Connected.Each(func(n int) {
			if !rooms[n].IsAccessibleFromMainRoom {
				rooms[n].IsAccessibleFromMainRoom = true
				stack = append(stack, n)
			}
		})
	}
}

// reachableFrom counts rooms reachable from start through Connected.
func reachableFrom(rooms []*Room, start int) int {
	seen := make([]bool, len(rooms))
	seen[start] = true
	queue := []int{start}
	n := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		n++
		for _, next := range rooms[cur].Neighbours() {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return n
}
