package brep

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Transform is an affine 3D transformation placing face-local geometry in
// the solid's frame. The zero value of Transform is the identity transform.
type Transform struct {
	// The diagonal is stored with the identity matrix subtracted so the
	// zero value represents identity:
	//  d00 = x00-1, d11 = x11-1, d22 = x22-1
	// Identity can then be tested with t == (Transform{}).
	d00, x01, x02, x03 float64
	x10, d11, x12, x13 float64
	x20, x21, d22, x23 float64
}

// Apply transforms the argument point and returns the result.
func (t Transform) Apply(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: (t.d00+1)*v.X + t.x01*v.Y + t.x02*v.Z + t.x03,
		Y: t.x10*v.X + (t.d11+1)*v.Y + t.x12*v.Z + t.x13,
		Z: t.x20*v.X + t.x21*v.Y + (t.d22+1)*v.Z + t.x23,
	}
}

// ApplyDir transforms the argument direction, ignoring translation.
func (t Transform) ApplyDir(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: (t.d00+1)*v.X + t.x01*v.Y + t.x02*v.Z,
		Y: t.x10*v.X + (t.d11+1)*v.Y + t.x12*v.Z,
		Z: t.x20*v.X + t.x21*v.Y + (t.d22+1)*v.Z,
	}
}

// Translate returns a translation by v.
func Translate(v r3.Vec) Transform {
	return Transform{x03: v.X, x13: v.Y, x23: v.Z}
}

// RotateZ returns a rotation about the Z axis by deg degrees,
// counterclockwise looking down the axis.
func RotateZ(deg float64) Transform {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Transform{d00: c - 1, x01: -s, x10: s, d11: c - 1}
}

// MirrorX returns a reflection about the YZ plane.
func MirrorX() Transform {
	return Transform{d00: -2}
}

// Frame returns the transform mapping local coordinates into the frame with
// the given origin and orthonormal basis directions.
func Frame(origin, xdir, ydir, zdir r3.Vec) Transform {
	return Transform{
		d00: xdir.X - 1, x01: ydir.X, x02: zdir.X, x03: origin.X,
		x10: xdir.Y, d11: ydir.Y - 1, x12: zdir.Y, x13: origin.Y,
		x20: xdir.Z, x21: ydir.Z, d22: zdir.Z - 1, x23: origin.Z,
	}
}

// Mul returns the composed transform applying u first, then t.
func (t Transform) Mul(u Transform) Transform {
	a := t.rows()
	b := u.rows()
	var c [3][4]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			c[i][j] = a[i][0]*b[0][j] + a[i][1]*b[1][j] + a[i][2]*b[2][j]
		}
		c[i][3] += a[i][3]
	}
	return Transform{
		d00: c[0][0] - 1, x01: c[0][1], x02: c[0][2], x03: c[0][3],
		x10: c[1][0], d11: c[1][1] - 1, x12: c[1][2], x13: c[1][3],
		x20: c[2][0], x21: c[2][1], d22: c[2][2] - 1, x23: c[2][3],
	}
}

// Det returns the determinant of the linear part. Negative determinants
// indicate a reflection, which flips face orientation.
func (t Transform) Det() float64 {
	a := t.rows()
	return a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
		a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
		a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
}

func (t Transform) rows() [3][4]float64 {
	return [3][4]float64{
		{t.d00 + 1, t.x01, t.x02, t.x03},
		{t.x10, t.d11 + 1, t.x12, t.x13},
		{t.x20, t.x21, t.d22 + 1, t.x23},
	}
}
