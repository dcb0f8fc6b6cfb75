package keycap

import (
	"errors"
	"math"

	"github.com/coredump/keycap-legends/brep"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// legendCenterRadius bounds the X and Y distance from the cap center
	// within which vertices count as legend surface candidates.
	legendCenterRadius = 3.0
	// legendHeightFraction excludes the lower part of the cap from the
	// candidate search, keeping skirt and stem vertices out.
	legendHeightFraction = 0.4
	// legendPlaneDrop sinks the sketch plane below the found surface so the
	// extruded text always pierces it.
	legendPlaneDrop = 0.4
)

// LegendPlane returns the plane legends are sketched on: horizontal,
// centered on the Z axis, just below the lowest top-surface point near the
// cap center. Scanning for the lowest central vertex handles concave,
// convex and flat cap profiles alike. When no vertex qualifies the cap top
// is used.
func LegendPlane(cap brep.Solid) Plane {
	bb := cap.Bounds()
	threshold := bb.Min.Z + (bb.Max.Z-bb.Min.Z)*legendHeightFraction

	z := math.Inf(1)
	for _, v := range cap.Vertices() {
		if math.Abs(v.X) >= legendCenterRadius || math.Abs(v.Y) >= legendCenterRadius {
			continue
		}
		if v.Z > threshold && v.Z < z {
			z = v.Z
		}
	}
	if math.IsInf(z, 1) {
		z = bb.Max.Z
	}
	return Plane{
		Origin: r3.Vec{Z: z - legendPlaneDrop},
		XDir:   r3.Vec{X: 1},
		ZDir:   r3.Vec{Z: 1},
	}
}

// StemPlane returns the plane the switch stem is attached to, derived from
// the cap's largest face: the inside bottom surface on every cap profile.
// The plane faces into the cap (its normal is the face normal negated) so
// stem geometry modeled hanging below z=0 ends up inside the cap.
func StemPlane(cap brep.Solid) (Plane, error) {
	var inner brep.Face
	bestArea := 0.0
	for _, f := range cap.Faces() {
		if a := f.Area(); inner == nil || a > bestArea {
			inner = f
			bestArea = a
		}
	}
	if inner == nil || bestArea == 0 {
		return Plane{}, errors.New("keycap: cap has no faces to attach a stem to")
	}
	return Plane{
		Origin: r3.Vec{Z: inner.Center().Z},
		XDir:   r3.Vec{X: 1},
		ZDir:   r3.Scale(-1, inner.Normal()),
	}, nil
}
