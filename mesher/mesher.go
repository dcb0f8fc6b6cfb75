// Package mesher turns boundary-represented solids into watertight triangle
// meshes ready for export.
//
// CAD kernels triangulate each face independently, so the raw result
// duplicates vertices along shared edges and, when a degenerate face fails
// to mesh at all, leaves holes in the surface. The pipeline here extracts
// the per-face triangulations (skipping faces the kernel could not mesh),
// welds coincident vertices within a tolerance, finds the open boundary
// loops that welding exposes, and fan-fills them so the exported mesh is
// closed.
//
// The pipeline is strictly linear and stateless: Extract → Weld →
// BoundaryLoops → FillLoop → Mesh. Each invocation of Repair uses fresh
// buffers.
package mesher

import (
	"github.com/coredump/keycap-legends/brep"
	"gonum.org/v1/gonum/spatial/r3"
)

// Default pipeline parameters. The deflections suit printed parts a few
// centimetres across; small engraved details want finer values.
const (
	DefaultTolerance         = 1e-6
	DefaultLinearDeflection  = 0.06
	DefaultAngularDeflection = 0.3
)

// Options parameterize the repair pipeline.
type Options struct {
	// Tolerance is the vertex welding distance. Vertices whose coordinates
	// round to the same value at this precision merge into one.
	// Zero selects DefaultTolerance.
	Tolerance float64
	// LinearDeflection bounds the chordal error of the kernel's face
	// meshing. Zero selects DefaultLinearDeflection.
	LinearDeflection float64
	// AngularDeflection bounds the angular error of the kernel's face
	// meshing, in radians. Zero selects DefaultAngularDeflection.
	AngularDeflection float64
	// Relative interprets LinearDeflection relative to edge lengths.
	Relative bool
	// Parallel lets the kernel mesh faces concurrently.
	Parallel bool
}

// DefaultOptions returns the options used when no tuning is required.
func DefaultOptions() Options {
	return Options{
		Tolerance:         DefaultTolerance,
		LinearDeflection:  DefaultLinearDeflection,
		AngularDeflection: DefaultAngularDeflection,
		Relative:          true,
		Parallel:          true,
	}
}

func (o Options) withDefaults() Options {
	if o.Tolerance == 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.LinearDeflection == 0 {
		o.LinearDeflection = DefaultLinearDeflection
	}
	if o.AngularDeflection == 0 {
		o.AngularDeflection = DefaultAngularDeflection
	}
	return o
}

// Mesh is a deduplicated indexed triangle mesh. Every triangle references
// three distinct vertices.
type Mesh struct {
	Vertices  []r3.Vec
	Triangles [][3]int
}

// Report summarizes what a Repair run did to the mesh.
type Report struct {
	// RawVertices is the vertex count before welding.
	RawVertices int
	// WeldedVertices is the vertex count after welding.
	WeldedVertices int
	// DroppedTriangles counts triangles discarded because welding
	// collapsed two or more of their vertices.
	DroppedTriangles int
	// HolesFilled counts boundary loops closed by fan triangulation.
	HolesFilled int
	// FillTriangles counts triangles added to close holes.
	FillTriangles int
}

// Repair meshes the solid and returns a welded, hole-filled triangle mesh.
//
// Faces the kernel fails to triangulate are skipped rather than failing the
// whole mesh; the gaps they leave are closed by the hole filler along with
// the seams opened by vertex welding. Only a kernel error for the entire
// shape is returned as an error.
func Repair(s brep.Solid, opts Options) (Mesh, Report, error) {
	opts = opts.withDefaults()
	verts, tris, err := Extract(s, opts)
	if err != nil {
		return Mesh{}, Report{}, err
	}
	welded, remap := Weld(verts, opts.Tolerance)
	kept := RemapTriangles(tris, remap)
	report := Report{
		RawVertices:      len(verts),
		WeldedVertices:   len(welded),
		DroppedTriangles: len(tris) - len(kept),
	}
	for _, loop := range BoundaryLoops(kept) {
		fill := FillLoop(loop)
		kept = append(kept, fill...)
		report.HolesFilled++
		report.FillTriangles += len(fill)
	}
	return Mesh{Vertices: welded, Triangles: kept}, report, nil
}
