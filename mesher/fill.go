package mesher

// FillLoop fan-triangulates a closed boundary loop, anchoring every triangle
// at the loop's first vertex. Boundary edges are recorded in the winding
// direction of the missing surface, so the fan winds opposite to the loop
// order to face the same way as the surrounding mesh.
//
// The fill is a flat polygon fan: adequate for the small, roughly planar
// gaps left by vertex welding and skipped faces, not a general non-convex
// polygon triangulator. Loops shorter than three vertices produce nothing.
func FillLoop(loop []int) [][3]int {
	if len(loop) < 3 {
		return nil
	}
	tris := make([][3]int, 0, len(loop)-2)
	for i := 1; i < len(loop)-1; i++ {
		tris = append(tris, [3]int{loop[0], loop[i+1], loop[i]})
	}
	return tris
}
