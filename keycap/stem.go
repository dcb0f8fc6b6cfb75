package keycap

import (
	"fmt"

	"github.com/coredump/keycap-legends/brep"
	"gonum.org/v1/gonum/spatial/r3"
)

// Kailh Choc stem dimensions, millimetres. Two posts 5.7 apart, each a thin
// box with its long sides hollowed by cylinder cuts so the switch slider
// clips in.
const (
	stemPostWidth   = 1.3
	stemPostDepth   = 3.0
	stemPostHeight  = 3.1
	stemCutRadius   = 3.4
	stemCutOffset   = 3.9
	stemFilletR     = 0.15
	stemPostSpacing = 2.85
)

// BuildChocStem builds the Kailh Choc switch stem, hanging below z=0 so
// placing it on a cap's stem plane leaves the posts inside the cap.
func BuildChocStem(k Kernel) (brep.Solid, error) {
	post, err := stemPost(k)
	if err != nil {
		return nil, err
	}
	left, err := k.Transformed(post, brep.Translate(r3.Vec{X: -stemPostSpacing}))
	if err != nil {
		return nil, err
	}
	right, err := k.Transformed(post, brep.Translate(r3.Vec{X: stemPostSpacing}))
	if err != nil {
		return nil, err
	}
	return k.Union(left, right)
}

// stemPost builds a single stem post with its top face at z=0.
func stemPost(k Kernel) (brep.Solid, error) {
	box, err := k.Box(stemPostWidth, stemPostDepth, stemPostHeight)
	if err != nil {
		return nil, fmt.Errorf("stem post box: %w", err)
	}
	topAlign := brep.Translate(r3.Vec{Z: -stemPostHeight / 2})
	post, err := k.Transformed(box, topAlign)
	if err != nil {
		return nil, err
	}

	for _, side := range []float64{stemCutOffset, -stemCutOffset} {
		cyl, err := k.Cylinder(stemCutRadius, stemPostHeight)
		if err != nil {
			return nil, fmt.Errorf("stem cut cylinder: %w", err)
		}
		cut, err := k.Transformed(cyl, brep.Translate(r3.Vec{X: side, Z: -stemPostHeight / 2}))
		if err != nil {
			return nil, err
		}
		remains, err := k.Subtract(post, cut)
		if err != nil {
			return nil, fmt.Errorf("stem post cut: %w", err)
		}
		post = largestSolid(remains)
		if post == nil {
			return nil, fmt.Errorf("stem post cut left no solid")
		}
	}

	post, err = k.Fillet(post, stemFilletR)
	if err != nil {
		return nil, fmt.Errorf("stem post fillet: %w", err)
	}
	return post, nil
}
