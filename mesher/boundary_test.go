package mesher

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// octahedron returns a closed mesh of 6 vertices and 8 outward-wound
// triangles.
func octahedron() ([]r3.Vec, [][3]int) {
	verts := []r3.Vec{
		{X: 1}, {X: -1},
		{Y: 1}, {Y: -1},
		{Z: 1}, {Z: -1},
	}
	tris := [][3]int{
		{0, 2, 4}, {2, 1, 4}, {1, 3, 4}, {3, 0, 4},
		{2, 0, 5}, {1, 2, 5}, {3, 1, 5}, {0, 3, 5},
	}
	return verts, tris
}

func TestBoundaryLoopsWatertight(t *testing.T) {
	_, tris := octahedron()
	if loops := BoundaryLoops(tris); len(loops) != 0 {
		t.Errorf("watertight mesh reported %d boundary loops: %v", len(loops), loops)
	}
}

func TestBoundaryLoopsSingleMissingTriangle(t *testing.T) {
	_, tris := octahedron()
	removed := tris[0]
	open := tris[1:]

	loops := BoundaryLoops(open)
	if len(loops) != 1 {
		t.Fatalf("got %d loops, want 1", len(loops))
	}
	loop := loops[0]
	if len(loop) != 3 {
		t.Fatalf("loop length %d, want 3", len(loop))
	}
	inLoop := map[int]bool{loop[0]: true, loop[1]: true, loop[2]: true}
	for _, v := range removed {
		if !inLoop[v] {
			t.Errorf("loop %v does not cover removed triangle %v", loop, removed)
		}
	}

	fill := FillLoop(loop)
	if len(fill) != 1 {
		t.Fatalf("fill produced %d triangles, want 1", len(fill))
	}
	if !sameCycle(fill[0], removed) {
		t.Errorf("fill triangle %v does not match removed winding %v", fill[0], removed)
	}

	if loops := BoundaryLoops(append(open, fill...)); len(loops) != 0 {
		t.Errorf("mesh still open after fill: %v", loops)
	}
}

// Two holes meeting at a shared apex vertex trace as one merged loop that
// visits the apex twice. The fan fill of that loop still leaves no boundary
// edges, though the surface pinches at the apex.
func TestBoundaryLoopsSharedVertexHoles(t *testing.T) {
	_, tris := octahedron()
	// Remove two top faces that share only the apex (vertex 4).
	open := [][3]int{
		tris[1], tris[3],
		tris[4], tris[5], tris[6], tris[7],
	}
	loops := BoundaryLoops(open)
	if len(loops) != 1 {
		t.Fatalf("got %d loops, want 1 merged loop: %v", len(loops), loops)
	}
	loop := loops[0]
	if len(loop) != 6 {
		t.Fatalf("merged loop length %d, want 6: %v", len(loop), loop)
	}
	apexVisits := 0
	for _, v := range loop {
		if v == 4 {
			apexVisits++
		}
	}
	if apexVisits != 2 {
		t.Errorf("apex visited %d times in %v, want 2", apexVisits, loop)
	}

	repaired := append(open, FillLoop(loop)...)
	if loops := BoundaryLoops(repaired); len(loops) != 0 {
		t.Errorf("mesh still open after filling merged loop: %v", loops)
	}
}

func TestBoundaryLoopsDeterministic(t *testing.T) {
	_, tris := octahedron()
	open := tris[2:]
	first := BoundaryLoops(open)
	for i := 0; i < 10; i++ {
		again := BoundaryLoops(open)
		if len(again) != len(first) {
			t.Fatalf("loop count changed between runs: %d vs %d", len(again), len(first))
		}
		for j := range first {
			for k := range first[j] {
				if first[j][k] != again[j][k] {
					t.Fatalf("loops differ between runs: %v vs %v", first, again)
				}
			}
		}
	}
}

// sameCycle reports whether b is a cyclic rotation of a.
func sameCycle(a, b [3]int) bool {
	for s := 0; s < 3; s++ {
		if a[0] == b[s] && a[1] == b[(s+1)%3] && a[2] == b[(s+2)%3] {
			return true
		}
	}
	return false
}
