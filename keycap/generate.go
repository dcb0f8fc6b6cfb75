package keycap

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/coredump/keycap-legends/brep"
	"github.com/coredump/keycap-legends/config"
	"github.com/coredump/keycap-legends/mesher"
	"github.com/coredump/keycap-legends/render"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh quality presets. Cap bodies and stems print fine at coarse
// deflection; engraved legends carry sub-millimetre glyph detail and need a
// much finer pass.
var (
	CapMeshOptions = mesher.Options{
		LinearDeflection:  0.06,
		AngularDeflection: 0.3,
		Relative:          true,
		Parallel:          true,
	}
	LegendMeshOptions = mesher.Options{
		LinearDeflection:  0.01,
		AngularDeflection: 0.05,
		Relative:          true,
		Parallel:          true,
	}
)

// Text extrusion depths in millimetres. Tertiary legends sit off-center
// where taller cap profiles need a deeper cut to be reached at all.
const (
	textDepth         = 4
	tertiaryTextDepth = 6
)

// Generator runs the keycap batch: one exported 3MF per configured legend
// entry per row.
type Generator struct {
	Kernel Kernel
	Config *config.Config
	// ResultsDir receives the exported files. Created if missing.
	ResultsDir string
	// OnlyRows restricts generation to the named rows. Empty means all.
	OnlyRows []string
	Log      *zap.Logger
}

// Stats counts the outcome of a batch run.
type Stats struct {
	Rows    int
	Written int
	Skipped int
	Failed  int
}

// row is a prepared cap body with its derived planes and optional stem,
// shared by all legend variants of the row.
type row struct {
	name       string
	cap        brep.Solid
	stem       brep.Solid
	legendPln  Plane
	mirrorCap  brep.Solid
	mirrorStem brep.Solid
}

// Run generates every configured keycap variant. A variant that fails to
// build or export is logged and counted, and the batch continues; Run only
// returns an error for faults that invalidate the whole batch, like an
// unreadable STEP file or an unwritable results directory.
func (g *Generator) Run() (Stats, error) {
	var stats Stats
	log := g.Log
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(g.ResultsDir, 0o755); err != nil {
		return stats, fmt.Errorf("creating results dir: %w", err)
	}

	stemBase, err := BuildChocStem(g.Kernel)
	if err != nil {
		return stats, fmt.Errorf("building stem: %w", err)
	}

	rows := make([]string, 0, len(g.Config.Legends))
	for name := range g.Config.Legends {
		rows = append(rows, name)
	}
	sort.Strings(rows)

	for _, name := range rows {
		if !g.rowSelected(name) {
			log.Debug("skipping row", zap.String("row", name))
			continue
		}
		log.Info("processing row", zap.String("row", name))
		stats.Rows++

		r, err := g.prepareRow(name, stemBase)
		if err != nil {
			return stats, fmt.Errorf("row %s: %w", name, err)
		}

		for _, entry := range g.Config.Legends[name] {
			desc := Description(entry)
			if desc == "" {
				log.Warn("skipping entry with no legend", zap.String("row", name))
				stats.Skipped++
				continue
			}
			log.Info("creating keycap",
				zap.String("row", name),
				zap.String("legend", desc),
				zap.Bool("mirrored", entry.MirrorX))

			path, err := g.buildVariant(r, entry)
			if err != nil {
				log.Error("keycap failed",
					zap.String("row", name),
					zap.String("legend", desc),
					zap.Error(err))
				stats.Failed++
				continue
			}
			log.Info("wrote keycap", zap.String("file", path))
			stats.Written++
		}
	}
	return stats, nil
}

func (g *Generator) rowSelected(name string) bool {
	if len(g.OnlyRows) == 0 {
		return true
	}
	for _, r := range g.OnlyRows {
		if r == name {
			return true
		}
	}
	return false
}

// prepareRow imports and positions the row's cap body and derives the
// geometry every variant of the row shares.
func (g *Generator) prepareRow(name string, stemBase brep.Solid) (row, error) {
	step, ok := g.Config.StepFiles[name]
	if !ok {
		return row{}, fmt.Errorf("no step file configured")
	}
	cap, err := g.Kernel.ImportSTEP(step.Path)
	if err != nil {
		return row{}, fmt.Errorf("importing %s: %w", step.Path, err)
	}
	if step.Rotation != 0 {
		cap, err = g.Kernel.Transformed(cap, brep.RotateZ(step.Rotation))
		if err != nil {
			return row{}, err
		}
	}

	// Center on the Z axis and rest the cap on z=0.
	bb := cap.Bounds()
	cap, err = g.Kernel.Transformed(cap, brep.Translate(r3.Vec{
		X: -(bb.Min.X + bb.Max.X) / 2,
		Y: -(bb.Min.Y + bb.Max.Y) / 2,
		Z: -bb.Min.Z,
	}))
	if err != nil {
		return row{}, err
	}

	r := row{name: name, cap: cap, legendPln: LegendPlane(cap)}

	if !step.HasStem {
		pln, err := StemPlane(cap)
		if err != nil {
			return row{}, err
		}
		r.stem, err = g.Kernel.Transformed(stemBase, pln.Location())
		if err != nil {
			return row{}, err
		}
	}

	// Mirrored cap and stem are built once per row; boolean work against the
	// mirrored cap keeps legends aligned on right-hand variants.
	r.mirrorCap, err = g.Kernel.Transformed(cap, brep.MirrorX())
	if err != nil {
		return row{}, err
	}
	if r.stem != nil {
		r.mirrorStem, err = g.Kernel.Transformed(r.stem, brep.MirrorX())
		if err != nil {
			return row{}, err
		}
	}
	return r, nil
}

// buildVariant engraves one legend entry into the row's cap and exports the
// result. Returns the path written.
func (g *Generator) buildVariant(r row, entry config.Legend) (string, error) {
	cap, stem := r.cap, r.stem
	if entry.MirrorX {
		cap, stem = r.mirrorCap, r.mirrorStem
	}

	text, err := g.buildTextSolid(entry, r.legendPln)
	if err != nil {
		return "", fmt.Errorf("building text: %w", err)
	}

	bodies, err := g.Kernel.Subtract(cap, text)
	if err != nil {
		return "", fmt.Errorf("engraving cap: %w", err)
	}
	capBody := largestSolid(bodies)
	if capBody == nil {
		return "", fmt.Errorf("engraving cap left no solid")
	}

	// Intersection recovers exactly the glyph volume inside the cap, far
	// cheaper than subtracting the cap from the text.
	legend, err := g.Kernel.Intersect(cap, text)
	if err != nil {
		return "", fmt.Errorf("building legend body: %w", err)
	}

	var parts []render.Part
	capMesh, _, err := mesher.Repair(capBody, CapMeshOptions)
	if err != nil {
		return "", fmt.Errorf("meshing cap body: %w", err)
	}
	parts = append(parts, render.Part{Name: "cap body", Mesh: capMesh})

	legendMesh, _, err := mesher.Repair(legend, LegendMeshOptions)
	if err != nil {
		return "", fmt.Errorf("meshing legend: %w", err)
	}
	parts = append(parts, render.Part{Name: "legend", Mesh: legendMesh})

	if stem != nil {
		stemMesh, _, err := mesher.Repair(stem, CapMeshOptions)
		if err != nil {
			return "", fmt.Errorf("meshing stem: %w", err)
		}
		parts = append(parts, render.Part{Name: "stem", Mesh: stemMesh})
	}

	path := filepath.Join(g.ResultsDir, Filename(entry, r.name))
	if err := render.Create3MF(path, parts...); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// buildTextSolid composes the extruded text solids for a legend entry on
// the given plane.
//
// With both a primary and a secondary legend the two stack vertically as a
// group, bold, with the configured gap and shift; a tertiary legend then
// joins at the configured X offset with a deeper extrusion. A lone primary
// or secondary legend sits centered in regular weight. A tertiary legend
// without the pair is not rendered.
func (g *Generator) buildTextSolid(entry config.Legend, pln Plane) (brep.Solid, error) {
	s := g.Config.Settings
	f := resolveFonts(entry, s)

	switch {
	case entry.Primary != "" && entry.Secondary != "":
		total := s.PrimaryFontSize + s.LegendGap + s.SecondaryFontSize
		primaryOffset := -total/2 + s.PrimaryFontSize/2 + s.VerticalShift
		secondaryOffset := total/2 - s.SecondaryFontSize/2 + s.VerticalShift

		text, err := g.Kernel.ExtrudeText(TextSpec{
			Text:  entry.Primary,
			Font:  f.primary,
			Style: FontBold,
			Size:  s.PrimaryFontSize,
			Depth: textDepth,
			Plane: pln.Shift(0, primaryOffset),
		})
		if err != nil {
			return nil, err
		}
		secondary, err := g.Kernel.ExtrudeText(TextSpec{
			Text:  entry.Secondary,
			Font:  f.secondary,
			Style: FontBold,
			Size:  s.SecondaryFontSize,
			Depth: textDepth,
			Plane: pln.Shift(0, secondaryOffset),
		})
		if err != nil {
			return nil, err
		}
		text, err = g.Kernel.Union(text, secondary)
		if err != nil {
			return nil, err
		}

		if entry.Tertiary != "" {
			tertiary, err := g.Kernel.ExtrudeText(TextSpec{
				Text:  entry.Tertiary,
				Font:  f.tertiary,
				Style: FontBold,
				Size:  s.TertiaryFontSize,
				Depth: tertiaryTextDepth,
				Plane: pln.Shift(s.TertiaryXOffset, 0),
			})
			if err != nil {
				return nil, err
			}
			text, err = g.Kernel.Union(text, tertiary)
			if err != nil {
				return nil, err
			}
		}
		return text, nil

	case entry.Primary != "":
		return g.Kernel.ExtrudeText(TextSpec{
			Text:  entry.Primary,
			Font:  f.primary,
			Size:  s.PrimaryFontSize,
			Depth: textDepth,
			Plane: pln,
		})

	default:
		return g.Kernel.ExtrudeText(TextSpec{
			Text:  entry.Secondary,
			Font:  f.secondary,
			Size:  s.SecondaryFontSize,
			Depth: textDepth,
			Plane: pln,
		})
	}
}
