package brep

import (
	"math"

	"github.com/coredump/keycap-legends/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// FacetSolid is a Solid whose geometry is held directly as per-face
// triangulations. It backs the standalone mesh repair mode, kernel bindings
// that hand over pre-faceted shapes, and tests.
type FacetSolid struct {
	faces []*FacetFace
}

// FacetFace is a single face of a FacetSolid.
type FacetFace struct {
	tri      *Triangulation
	reversed bool
}

// NewFacetFace wraps a face triangulation. A nil triangulation models a
// face the kernel failed to mesh.
func NewFacetFace(tri *Triangulation, reversed bool) *FacetFace {
	return &FacetFace{tri: tri, reversed: reversed}
}

func (f *FacetFace) Triangulation() *Triangulation { return f.tri }

func (f *FacetFace) Reversed() bool { return f.reversed }

// Area returns the summed area of the face's triangles.
func (f *FacetFace) Area() float64 {
	if f.tri == nil {
		return 0
	}
	var area float64
	f.eachTriangle(func(a, b, c r3.Vec) {
		area += 0.5 * r3.Norm(r3.Cross(r3.Sub(b, a), r3.Sub(c, a)))
	})
	return area
}

// Center returns the area-weighted centroid of the face.
func (f *FacetFace) Center() r3.Vec {
	if f.tri == nil {
		return r3.Vec{}
	}
	var sum r3.Vec
	var area float64
	f.eachTriangle(func(a, b, c r3.Vec) {
		w := 0.5 * r3.Norm(r3.Cross(r3.Sub(b, a), r3.Sub(c, a)))
		centroid := r3.Scale(1.0/3.0, r3.Add(a, r3.Add(b, c)))
		sum = r3.Add(sum, r3.Scale(w, centroid))
		area += w
	})
	if area == 0 {
		return r3.Vec{}
	}
	return r3.Scale(1/area, sum)
}

// Normal returns the area-weighted outward unit normal of the face.
func (f *FacetFace) Normal() r3.Vec {
	if f.tri == nil {
		return r3.Vec{}
	}
	var n r3.Vec
	f.eachTriangle(func(a, b, c r3.Vec) {
		n = r3.Add(n, r3.Cross(r3.Sub(b, a), r3.Sub(c, a)))
	})
	if f.reversed {
		n = r3.Scale(-1, n)
	}
	if r3.Norm(n) == 0 {
		return r3.Vec{}
	}
	return r3.Unit(n)
}

// eachTriangle visits the face's triangles with nodes placed in the solid's
// frame, in the triangulation's stored winding.
func (f *FacetFace) eachTriangle(fn func(a, b, c r3.Vec)) {
	trsf := f.tri.Transform
	for _, t := range f.tri.Triangles {
		fn(
			trsf.Apply(f.tri.Nodes[t[0]]),
			trsf.Apply(f.tri.Nodes[t[1]]),
			trsf.Apply(f.tri.Nodes[t[2]]),
		)
	}
}

// NewFacetSolid builds a solid from faces.
func NewFacetSolid(faces ...*FacetFace) *FacetSolid {
	return &FacetSolid{faces: faces}
}

// Soup wraps an unstructured triangle soup, such as the contents of an STL
// file, as a single-face solid.
func Soup(nodes []r3.Vec, triangles [][3]int) *FacetSolid {
	return NewFacetSolid(NewFacetFace(&Triangulation{
		Nodes:     nodes,
		Triangles: triangles,
	}, false))
}

// Triangulate is a no-op: facet solids are born meshed, so the deflection
// parameters have no further effect.
func (s *FacetSolid) Triangulate(MeshOptions) error { return nil }

func (s *FacetSolid) Faces() []Face {
	faces := make([]Face, len(s.faces))
	for i, f := range s.faces {
		faces[i] = f
	}
	return faces
}

// Vertices returns every triangulation node in the solid's frame.
func (s *FacetSolid) Vertices() []r3.Vec {
	var verts []r3.Vec
	for _, f := range s.faces {
		if f.tri == nil {
			continue
		}
		for _, n := range f.tri.Nodes {
			verts = append(verts, f.tri.Transform.Apply(n))
		}
	}
	return verts
}

func (s *FacetSolid) Bounds() r3.Box {
	bb := d3.Box{Min: d3.Elem(math.MaxFloat64), Max: d3.Elem(-math.MaxFloat64)}
	for _, v := range s.Vertices() {
		bb = bb.Include(v)
	}
	return r3.Box(bb)
}

// Volume returns the enclosed volume computed by the divergence theorem.
// The result is only meaningful for closed solids with outward windings.
func (s *FacetSolid) Volume() float64 {
	var v float64
	for _, f := range s.faces {
		if f.tri == nil {
			continue
		}
		sign := 1.0
		if f.reversed {
			sign = -1
		}
		f.eachTriangle(func(a, b, c r3.Vec) {
			v += sign * r3.Dot(a, r3.Cross(b, c)) / 6
		})
	}
	return v
}

// ClearTriangulation drops face i's triangulation, reproducing the kernel
// failure mode where a face reports no mesh.
func (s *FacetSolid) ClearTriangulation(i int) {
	s.faces[i].tri = nil
}

// Transformed returns a copy of the solid with t applied. A reflecting
// transform toggles every face's orientation flag so windings stay outward.
func (s *FacetSolid) Transformed(t Transform) *FacetSolid {
	flip := t.Det() < 0
	faces := make([]*FacetFace, len(s.faces))
	for i, f := range s.faces {
		nf := &FacetFace{reversed: f.reversed != flip}
		if f.tri != nil {
			nf.tri = &Triangulation{
				Nodes:     f.tri.Nodes,
				Triangles: f.tri.Triangles,
				Transform: t.Mul(f.tri.Transform),
			}
		}
		faces[i] = nf
	}
	return &FacetSolid{faces: faces}
}

// Box returns an axis-aligned box of the given size centered at the origin.
// Each of the six faces carries its own four corner nodes, as a kernel face
// mesher would produce, so adjoining faces duplicate vertices.
func Box(size r3.Vec) *FacetSolid {
	x := size.X / 2
	y := size.Y / 2
	z := size.Z / 2
	quads := [6][4]r3.Vec{
		{{X: x, Y: -y, Z: -z}, {X: x, Y: y, Z: -z}, {X: x, Y: y, Z: z}, {X: x, Y: -y, Z: z}},     // +X
		{{X: -x, Y: -y, Z: -z}, {X: -x, Y: -y, Z: z}, {X: -x, Y: y, Z: z}, {X: -x, Y: y, Z: -z}}, // -X
		{{X: -x, Y: y, Z: -z}, {X: -x, Y: y, Z: z}, {X: x, Y: y, Z: z}, {X: x, Y: y, Z: -z}},     // +Y
		{{X: -x, Y: -y, Z: -z}, {X: x, Y: -y, Z: -z}, {X: x, Y: -y, Z: z}, {X: -x, Y: -y, Z: z}}, // -Y
		{{X: -x, Y: -y, Z: z}, {X: x, Y: -y, Z: z}, {X: x, Y: y, Z: z}, {X: -x, Y: y, Z: z}},     // +Z
		{{X: -x, Y: -y, Z: -z}, {X: -x, Y: y, Z: -z}, {X: x, Y: y, Z: -z}, {X: x, Y: -y, Z: -z}}, // -Z
	}
	faces := make([]*FacetFace, 0, 6)
	for _, q := range quads {
		faces = append(faces, NewFacetFace(&Triangulation{
			Nodes:     []r3.Vec{q[0], q[1], q[2], q[3]},
			Triangles: [][3]int{{0, 1, 2}, {0, 2, 3}},
		}, false))
	}
	return NewFacetSolid(faces...)
}
