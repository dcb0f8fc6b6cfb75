// Package keycap drives keycap generation: it turns configured rows and
// legend entries into cap body, engraved legend and switch stem solids via
// an external CAD kernel, repairs their triangulations and exports one 3MF
// file per variant.
package keycap

import (
	"fmt"
	"sort"
	"sync"

	"github.com/coredump/keycap-legends/brep"
	"gonum.org/v1/gonum/spatial/r3"
)

// FontStyle selects the typeface weight used for a legend.
type FontStyle uint8

const (
	FontRegular FontStyle = iota
	FontBold
)

// Plane is an oriented work plane: text is sketched on it and extruded
// along ZDir.
type Plane struct {
	Origin r3.Vec
	XDir   r3.Vec
	ZDir   r3.Vec
}

// YDir completes the plane's right-handed basis.
func (p Plane) YDir() r3.Vec {
	return r3.Cross(p.ZDir, p.XDir)
}

// Shift returns the plane moved by dx along XDir and dy along YDir.
func (p Plane) Shift(dx, dy float64) Plane {
	p.Origin = r3.Add(p.Origin, r3.Add(r3.Scale(dx, p.XDir), r3.Scale(dy, p.YDir())))
	return p
}

// Location returns the transform placing geometry modeled in the plane's
// local frame into the solid's frame.
func (p Plane) Location() brep.Transform {
	return brep.Frame(p.Origin, p.XDir, p.YDir(), p.ZDir)
}

// TextSpec describes a legend text solid: the string rendered in the given
// font on Plane and extruded Depth along the plane normal.
type TextSpec struct {
	Text  string
	Font  string
	Style FontStyle
	Size  float64
	Depth float64
	Plane Plane
}

// Kernel abstracts the external CAD kernel. A binding wraps the kernel's
// shape handles as brep.Solid; all solid modeling happens behind this
// interface and the rest of the package never sees kernel types.
type Kernel interface {
	// ImportSTEP loads a STEP file as a single solid.
	ImportSTEP(path string) (brep.Solid, error)
	// Box returns an axis-aligned box of the given dimensions centered at
	// the origin.
	Box(x, y, z float64) (brep.Solid, error)
	// Cylinder returns a Z-axis cylinder of radius r and height h centered
	// at the origin.
	Cylinder(r, h float64) (brep.Solid, error)
	// ExtrudeText renders and extrudes a legend text solid.
	ExtrudeText(spec TextSpec) (brep.Solid, error)
	// Fillet rounds the solid's side edges with the given radius.
	Fillet(s brep.Solid, radius float64) (brep.Solid, error)
	Union(a, b brep.Solid) (brep.Solid, error)
	// Subtract returns a minus b. Boolean subtraction can split the result
	// into several disjoint solids.
	Subtract(a, b brep.Solid) ([]brep.Solid, error)
	Intersect(a, b brep.Solid) (brep.Solid, error)
	// Transformed applies an affine transform to the solid.
	Transformed(s brep.Solid, t brep.Transform) (brep.Solid, error)
}

var (
	kernelsMu sync.Mutex
	kernels   = make(map[string]Kernel)
)

// RegisterKernel makes a CAD kernel binding available under the given name.
// Bindings call it from an init function, mirroring database/sql drivers.
func RegisterKernel(name string, k Kernel) {
	kernelsMu.Lock()
	defer kernelsMu.Unlock()
	if k == nil {
		panic("keycap: RegisterKernel with nil kernel")
	}
	if _, dup := kernels[name]; dup {
		panic("keycap: RegisterKernel called twice for kernel " + name)
	}
	kernels[name] = k
}

// OpenKernel returns the registered kernel with the given name.
func OpenKernel(name string) (Kernel, error) {
	kernelsMu.Lock()
	defer kernelsMu.Unlock()
	k, ok := kernels[name]
	if !ok {
		available := make([]string, 0, len(kernels))
		for n := range kernels {
			available = append(available, n)
		}
		sort.Strings(available)
		if len(available) == 0 {
			return nil, fmt.Errorf("keycap: unknown CAD kernel %q (no kernel bindings linked into this build)", name)
		}
		return nil, fmt.Errorf("keycap: unknown CAD kernel %q (available: %v)", name, available)
	}
	return k, nil
}

// largestSolid picks the solid with the greatest volume, the usual survivor
// of a boolean subtraction that sheds slivers.
func largestSolid(solids []brep.Solid) brep.Solid {
	var best brep.Solid
	bestVol := 0.0
	for _, s := range solids {
		if v := s.Volume(); best == nil || v > bestVol {
			best = s
			bestVol = v
		}
	}
	return best
}
