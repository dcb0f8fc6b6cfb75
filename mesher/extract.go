package mesher

import (
	"github.com/coredump/keycap-legends/brep"
	"gonum.org/v1/gonum/spatial/r3"
)

// Extract triggers the kernel's incremental meshing on the whole shape and
// collects every face's triangulation into flat vertex and triangle buffers.
// Node positions are placed in the solid's frame and triangle indices are
// offset to address the cumulative vertex buffer.
//
// A face for which the kernel reports no triangulation is skipped entirely:
// an exact-zero-area or otherwise degenerate face that survived boolean
// operations must not take the rest of the mesh down with it. Triangles
// whose indices are not pairwise distinct are dropped.
func Extract(s brep.Solid, opts Options) ([]r3.Vec, [][3]int, error) {
	err := s.Triangulate(brep.MeshOptions{
		LinearDeflection:  opts.LinearDeflection,
		AngularDeflection: opts.AngularDeflection,
		Relative:          opts.Relative,
		Parallel:          opts.Parallel,
	})
	if err != nil {
		return nil, nil, err
	}

	var (
		verts  []r3.Vec
		tris   [][3]int
		offset int
	)
	for _, face := range s.Faces() {
		poly := face.Triangulation()
		if poly == nil {
			// Kernel failed to mesh this face. Skip it; the hole filler
			// closes the gap downstream.
			continue
		}
		trsf := poly.Transform
		for _, n := range poly.Nodes {
			verts = append(verts, trsf.Apply(n))
		}
		// Reversed faces wind their triangles against the surface normal.
		// Swapping two indices restores outward-facing winding.
		i, j, k := 0, 1, 2
		if face.Reversed() {
			j, k = 2, 1
		}
		for _, t := range poly.Triangles {
			tris = append(tris, [3]int{t[i] + offset, t[j] + offset, t[k] + offset})
		}
		offset += len(poly.Nodes)
	}
	return verts, dropDegenerate(tris), nil
}

// dropDegenerate filters out triangles with repeated indices.
func dropDegenerate(tris [][3]int) [][3]int {
	kept := tris[:0]
	for _, t := range tris {
		if t[0] != t[1] && t[1] != t[2] && t[2] != t[0] {
			kept = append(kept, t)
		}
	}
	return kept
}
