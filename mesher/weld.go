package mesher

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Weld merges vertices that are numerically distinct but coincident within
// tol. It returns the deduplicated vertex table in first-occurrence order
// and, for every input index, the welded index it maps to.
//
// Coordinates are quantized by rounding to the decimal precision implied by
// tol, so two vertices merge exactly when their rounded coordinates agree.
// The welded table stores the rounded coordinates. Two vertices closer than
// tol whose unrounded values straddle a rounding boundary will not merge;
// that is a known limitation of fixed-precision quantization, left to the
// boundary-loop pass to clean up after.
func Weld(vertices []r3.Vec, tol float64) (welded []r3.Vec, remap []int) {
	digits := weldDigits(tol)
	index := make(map[[3]float64]int, len(vertices))
	remap = make([]int, len(vertices))
	for i, v := range vertices {
		key := [3]float64{
			roundTo(v.X, digits),
			roundTo(v.Y, digits),
			roundTo(v.Z, digits),
		}
		j, ok := index[key]
		if !ok {
			j = len(welded)
			index[key] = j
			welded = append(welded, r3.Vec{X: key[0], Y: key[1], Z: key[2]})
		}
		remap[i] = j
	}
	return welded, remap
}

// RemapTriangles rewrites triangle indices through the weld remap and drops
// triangles that welding collapsed onto fewer than three distinct vertices.
func RemapTriangles(tris [][3]int, remap []int) [][3]int {
	kept := make([][3]int, 0, len(tris))
	for _, t := range tris {
		a, b, c := remap[t[0]], remap[t[1]], remap[t[2]]
		if a == b || b == c || c == a {
			continue
		}
		kept = append(kept, [3]int{a, b, c})
	}
	return kept
}

// weldDigits converts a tolerance such as 1e-6 to its decimal digit count.
func weldDigits(tol float64) int {
	digits := int(math.Round(-math.Log10(tol)))
	if digits < 0 {
		digits = 0
	}
	if digits > 12 {
		digits = 12
	}
	return digits
}

func roundTo(x float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(x*p) / p
}
