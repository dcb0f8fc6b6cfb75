package mesher

// edge is a directed pair of welded vertex indices.
type edge [2]int

func (e edge) reverse() edge { return edge{e[1], e[0]} }

// BoundaryLoops returns the closed loops of boundary edges in the triangle
// set. A boundary edge belongs to exactly one triangle; any such edge marks
// a hole in what should be a watertight surface.
//
// Counting is orientation-aware: a directed edge and its reverse share one
// counter, keyed by whichever direction was seen first, so the count equals
// how many triangles reference the undirected edge from either side. The
// directed form kept in the census is the one owned by the first triangle
// to reference it, which for a count-1 edge is the winding direction of the
// missing surface's border.
//
// Loops are traced by walking forward through boundary-edge adjacency from
// each unconsumed boundary edge. A walk that cannot return to its start
// (a malformed border) is abandoned silently; only closed loops of at least
// three distinct vertices are returned, with the repeated closing vertex
// dropped.
func BoundaryLoops(tris [][3]int) [][]int {
	count := make(map[edge]int)
	for _, t := range tris {
		for _, e := range triEdges(t) {
			if _, ok := count[e.reverse()]; ok {
				count[e.reverse()]++
			} else {
				count[e]++
			}
		}
	}

	// Collect boundary edges in triangle order so loop seeding, and with it
	// the output, is deterministic.
	var boundary []edge
	for _, t := range tris {
		for _, e := range triEdges(t) {
			if count[e] == 1 {
				boundary = append(boundary, e)
			}
		}
	}
	if len(boundary) == 0 {
		return nil
	}

	adj := make(map[int][]int, len(boundary))
	for _, e := range boundary {
		adj[e[0]] = append(adj[e[0]], e[1])
	}

	used := make(map[edge]bool, 2*len(boundary))
	var loops [][]int
	for _, start := range boundary {
		if used[start] {
			continue
		}
		loop := []int{start[0], start[1]}
		used[start] = true
		used[start.reverse()] = true

		for loop[len(loop)-1] != loop[0] {
			curr := loop[len(loop)-1]
			found := false
			for _, next := range adj[curr] {
				e := edge{curr, next}
				if used[e] || used[e.reverse()] {
					continue
				}
				loop = append(loop, next)
				used[e] = true
				used[e.reverse()] = true
				found = true
				break
			}
			if !found {
				break
			}
		}

		// A closed loop stores its start twice and needs at least three
		// distinct vertices to bound a fillable hole.
		if len(loop) >= 4 && loop[len(loop)-1] == loop[0] {
			loops = append(loops, loop[:len(loop)-1])
		}
	}
	return loops
}

func triEdges(t [3]int) [3]edge {
	return [3]edge{
		{t[0], t[1]},
		{t[1], t[2]},
		{t[2], t[0]},
	}
}
