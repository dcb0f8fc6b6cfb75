// Package brep describes boundary-represented solids the way the meshing
// pipeline consumes them: a set of faces, each carrying the node positions
// and index triangles produced by the CAD kernel's face mesher.
//
// The interfaces here are the seam between this repository and the external
// CAD kernel. A kernel binding wraps its native shape handles to satisfy
// Solid and Face; nothing downstream touches kernel types.
package brep

import "gonum.org/v1/gonum/spatial/r3"

// MeshOptions control the kernel's incremental meshing pass.
type MeshOptions struct {
	// LinearDeflection bounds the distance between a face's surface
	// and its flat triangular approximation.
	LinearDeflection float64
	// AngularDeflection bounds the angle between a curved surface and
	// its approximation, in radians.
	AngularDeflection float64
	// Relative interprets LinearDeflection relative to edge lengths.
	Relative bool
	// Parallel lets the kernel mesh faces concurrently.
	Parallel bool
}

// Triangulation is the mesh a kernel computed for a single face.
// Node positions are stored in the face's local frame and Transform places
// them in the solid's frame. The zero value Transform is the identity.
type Triangulation struct {
	Nodes     []r3.Vec
	Triangles [][3]int
	Transform Transform
}

// Face is a single bounded surface of a solid.
type Face interface {
	// Triangulation returns the face's mesh from the last Triangulate call
	// on the owning solid, or nil when the kernel produced none. A nil
	// result is a kernel failure mode, not an error: numerically degenerate
	// faces can survive boolean operations and then refuse to mesh.
	Triangulation() *Triangulation
	// Reversed reports whether the face's orientation is opposite to its
	// underlying surface normal. Triangle windings of reversed faces must
	// be flipped to keep outward-facing normals.
	Reversed() bool
	// Area returns the face's surface area.
	Area() float64
	// Center returns the face's center of mass.
	Center() r3.Vec
	// Normal returns the outward unit normal at the face center.
	Normal() r3.Vec
}

// Solid is a boundary-represented solid.
//
// The meshing pipeline only calls Triangulate and Faces; the remaining
// queries serve the keycap generator's plane finding.
type Solid interface {
	// Triangulate runs the kernel's incremental meshing over the whole
	// shape. Safe to call more than once.
	Triangulate(opts MeshOptions) error
	Faces() []Face
	// Vertices returns the solid's corner vertices.
	Vertices() []r3.Vec
	Bounds() r3.Box
	// Volume returns the enclosed volume.
	Volume() float64
}
