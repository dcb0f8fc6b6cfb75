package keycap

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/coredump/keycap-legends/brep"
	"github.com/coredump/keycap-legends/config"
	"github.com/coredump/keycap-legends/mesher"
	"gonum.org/v1/gonum/spatial/r3"
)

// stubKernel satisfies Kernel with facet solids. Booleans are faked: a
// subtraction returns the left operand and an intersection returns the text
// body, which is enough to drive the generator's control flow and produce
// closed meshes for export.
type stubKernel struct {
	imports  []string
	failText string
}

func (k *stubKernel) ImportSTEP(path string) (brep.Solid, error) {
	k.imports = append(k.imports, path)
	return brep.Box(r3.Vec{X: 18, Y: 18, Z: 6}), nil
}

func (k *stubKernel) Box(x, y, z float64) (brep.Solid, error) {
	return brep.Box(r3.Vec{X: x, Y: y, Z: z}), nil
}

func (k *stubKernel) Cylinder(r, h float64) (brep.Solid, error) {
	return brep.Box(r3.Vec{X: 2 * r, Y: 2 * r, Z: h}), nil
}

func (k *stubKernel) ExtrudeText(spec TextSpec) (brep.Solid, error) {
	if k.failText != "" && spec.Text == k.failText {
		return nil, errors.New("glyph outline failed")
	}
	block := brep.Box(r3.Vec{X: spec.Size, Y: spec.Size, Z: spec.Depth})
	return block.Transformed(spec.Plane.Location()), nil
}

func (k *stubKernel) Fillet(s brep.Solid, radius float64) (brep.Solid, error) {
	return s, nil
}

func (k *stubKernel) Union(a, b brep.Solid) (brep.Solid, error) {
	var faces []*brep.FacetFace
	for _, s := range []brep.Solid{a, b} {
		for _, f := range s.Faces() {
			faces = append(faces, f.(*brep.FacetFace))
		}
	}
	return brep.NewFacetSolid(faces...), nil
}

func (k *stubKernel) Subtract(a, b brep.Solid) ([]brep.Solid, error) {
	return []brep.Solid{a}, nil
}

func (k *stubKernel) Intersect(a, b brep.Solid) (brep.Solid, error) {
	return b, nil
}

func (k *stubKernel) Transformed(s brep.Solid, t brep.Transform) (brep.Solid, error) {
	return s.(*brep.FacetSolid).Transformed(t), nil
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.StepFiles["row_2"] = config.StepFile{Path: "caps/row2.step"}
	cfg.StepFiles["thumb"] = config.StepFile{Path: "caps/thumb.step", HasStem: true}
	cfg.Legends["row_2"] = []config.Legend{
		{Primary: "A", Secondary: "1"},
		{Primary: "<", MirrorX: true},
	}
	cfg.Legends["thumb"] = []config.Legend{
		{Secondary: "Fn"},
	}
	return cfg
}

func TestGeneratorRun(t *testing.T) {
	kernel := &stubKernel{}
	dir := t.TempDir()
	g := &Generator{Kernel: kernel, Config: testConfig(), ResultsDir: dir}

	stats, err := g.Run()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Rows != 2 || stats.Written != 3 || stats.Failed != 0 || stats.Skipped != 0 {
		t.Errorf("stats = %+v", stats)
	}
	for _, name := range []string{
		"K_A_1_row_2.3mf",
		"K_less_row_2.3mf",
		"K_Fn_thumb.3mf",
	} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}
	if len(kernel.imports) != 2 {
		t.Errorf("imported %d step files, want 2", len(kernel.imports))
	}
}

func TestGeneratorContinuesAfterVariantFailure(t *testing.T) {
	kernel := &stubKernel{failText: "<"}
	g := &Generator{Kernel: kernel, Config: testConfig(), ResultsDir: t.TempDir()}

	stats, err := g.Run()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Failed != 1 {
		t.Errorf("failed = %d, want 1", stats.Failed)
	}
	if stats.Written != 2 {
		t.Errorf("written = %d, want 2 despite one failure", stats.Written)
	}
}

func TestGeneratorOnlyRows(t *testing.T) {
	g := &Generator{
		Kernel:     &stubKernel{},
		Config:     testConfig(),
		ResultsDir: t.TempDir(),
		OnlyRows:   []string{"thumb"},
	}
	stats, err := g.Run()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Rows != 1 || stats.Written != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestGeneratorSkipsEmptyLegend(t *testing.T) {
	cfg := testConfig()
	cfg.Legends["row_2"] = []config.Legend{{Tertiary: "F1"}}
	g := &Generator{Kernel: &stubKernel{}, Config: cfg, ResultsDir: t.TempDir()}
	stats, err := g.Run()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", stats.Skipped)
	}
}

// recordingSolid captures the meshing options the repair pipeline hands to
// the kernel.
type recordingSolid struct {
	*brep.FacetSolid
	got brep.MeshOptions
}

func (s *recordingSolid) Triangulate(opts brep.MeshOptions) error {
	s.got = opts
	return s.FacetSolid.Triangulate(opts)
}

func TestMeshPresetsDriveKernelFlags(t *testing.T) {
	for _, tc := range []struct {
		name    string
		opts    mesher.Options
		linear  float64
		angular float64
	}{
		{"cap", CapMeshOptions, 0.06, 0.3},
		{"legend", LegendMeshOptions, 0.01, 0.05},
	} {
		s := &recordingSolid{FacetSolid: brep.Box(r3.Vec{X: 1, Y: 1, Z: 1})}
		if _, _, err := mesher.Repair(s, tc.opts); err != nil {
			t.Fatal(err)
		}
		if s.got.LinearDeflection != tc.linear || s.got.AngularDeflection != tc.angular {
			t.Errorf("%s preset meshed with deflections %v/%v, want %v/%v",
				tc.name, s.got.LinearDeflection, s.got.AngularDeflection, tc.linear, tc.angular)
		}
		// The kernel's incremental mesher is driven with relative deflection
		// and parallel face meshing, the same flags every preset must carry.
		if !s.got.Relative || !s.got.Parallel {
			t.Errorf("%s preset meshed with Relative=%v Parallel=%v, want both true",
				tc.name, s.got.Relative, s.got.Parallel)
		}
	}
}

func TestKernelRegistry(t *testing.T) {
	if _, err := OpenKernel("no-such-kernel"); err == nil {
		t.Error("expected error for unregistered kernel")
	}
	RegisterKernel("stub-registry-test", &stubKernel{})
	if _, err := OpenKernel("stub-registry-test"); err != nil {
		t.Errorf("registered kernel not found: %v", err)
	}
}
