package keycap

import (
	"math"
	"testing"

	"github.com/coredump/keycap-legends/brep"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestLegendPlaneFallback(t *testing.T) {
	// A plain box has no vertices near the Z axis, so the plane falls back
	// to the cap top.
	box := brep.Box(r3.Vec{X: 18, Y: 18, Z: 5}).Transformed(brep.Translate(r3.Vec{Z: 2.5}))
	pln := LegendPlane(box)
	if got, want := pln.Origin.Z, 5-0.4; math.Abs(got-want) > 1e-12 {
		t.Errorf("plane z = %v, want %v", got, want)
	}
	if pln.ZDir != (r3.Vec{Z: 1}) || pln.XDir != (r3.Vec{X: 1}) {
		t.Errorf("plane axes = %+v", pln)
	}
}

func TestLegendPlaneDishedCap(t *testing.T) {
	// A dished cap: tall corners with the surface sagging near the center.
	// The plane must track the lowest central vertex above the height
	// threshold, not the cap top.
	nodes := []r3.Vec{
		{X: -9, Y: -9}, {X: 9, Y: -9}, {X: 9, Y: 9}, {X: -9, Y: 9},
		{X: -9, Y: -9, Z: 5}, {X: 9, Y: -9, Z: 5}, {X: 9, Y: 9, Z: 5}, {X: -9, Y: 9, Z: 5},
		{X: 0, Y: 0, Z: 4},   // dish low point
		{X: 1, Y: 1, Z: 4.5}, // higher central vertex, must lose
		{X: 2, Y: 2, Z: 1},   // central but below the 40% threshold
	}
	cap := brep.Soup(nodes, [][3]int{{0, 1, 8}})
	pln := LegendPlane(cap)
	if got, want := pln.Origin.Z, 4-0.4; math.Abs(got-want) > 1e-12 {
		t.Errorf("plane z = %v, want %v", got, want)
	}
}

func TestStemPlane(t *testing.T) {
	// The box's largest faces are the Z-normal pair; the first wins, so the
	// stem plane points down from the box top.
	box := brep.Box(r3.Vec{X: 18, Y: 18, Z: 5})
	pln, err := StemPlane(box)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := pln.Origin.Z, 2.5; math.Abs(got-want) > 1e-9 {
		t.Errorf("plane z = %v, want %v", got, want)
	}
	if d := r3.Norm(r3.Sub(pln.ZDir, r3.Vec{Z: -1})); d > 1e-9 {
		t.Errorf("plane zdir = %+v, want -Z", pln.ZDir)
	}
}

func TestStemPlaneNoFaces(t *testing.T) {
	if _, err := StemPlane(brep.NewFacetSolid()); err == nil {
		t.Error("expected error for solid without faces")
	}
}

func TestPlaneShiftAndLocation(t *testing.T) {
	pln := Plane{
		Origin: r3.Vec{Z: 3},
		XDir:   r3.Vec{X: 1},
		ZDir:   r3.Vec{Z: 1},
	}
	if y := pln.YDir(); r3.Norm(r3.Sub(y, r3.Vec{Y: 1})) > 1e-12 {
		t.Errorf("ydir = %+v, want +Y", y)
	}
	shifted := pln.Shift(2, -1)
	want := r3.Vec{X: 2, Y: -1, Z: 3}
	if r3.Norm(r3.Sub(shifted.Origin, want)) > 1e-12 {
		t.Errorf("shifted origin = %+v, want %+v", shifted.Origin, want)
	}

	// Location maps plane-local points into the solid frame.
	got := pln.Location().Apply(r3.Vec{X: 1, Y: 2, Z: 3})
	want = r3.Vec{X: 1, Y: 2, Z: 6}
	if r3.Norm(r3.Sub(got, want)) > 1e-12 {
		t.Errorf("location maps to %+v, want %+v", got, want)
	}
}
