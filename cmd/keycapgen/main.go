// Command keycapgen generates 3D-printable keycap models from STEP cap
// bodies and a TOML legend configuration, writing one 3MF file per keycap
// variant. With -repair it instead runs the mesh repair pipeline over an
// existing STL file and re-exports it as 3MF.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/coredump/keycap-legends/brep"
	"github.com/coredump/keycap-legends/config"
	"github.com/coredump/keycap-legends/internal/logger"
	"github.com/coredump/keycap-legends/keycap"
	"github.com/coredump/keycap-legends/mesher"
	"github.com/coredump/keycap-legends/render"
	"go.uber.org/zap"
)

func main() {
	var (
		configPath = flag.String("config", "config.toml", "TOML configuration file")
		resultsDir = flag.String("results", "results", "output directory for generated files")
		onlyRows   = flag.String("only-rows", "", "comma-separated row names to generate (default all)")
		kernelName = flag.String("kernel", "occt", "registered CAD kernel binding to use")
		logLevel   = flag.String("log-level", "info", "log level: debug, info, warn or error")
		logFile    = flag.String("log-file", "", "also log to this file, with rotation")

		repairIn   = flag.String("repair", "", "repair the given STL file instead of generating keycaps")
		outPath    = flag.String("o", "", "output 3MF path for -repair (default: input with .3mf extension)")
		previewOut = flag.String("preview", "", "write a shaded PNG preview of the repaired mesh")
		tolerance  = flag.Float64("tolerance", mesher.DefaultTolerance, "vertex weld tolerance for -repair")
	)
	flag.Parse()

	log, err := logger.New(*logLevel, *logFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger setup:", err)
		os.Exit(1)
	}
	defer log.Sync()

	if *repairIn != "" {
		if err := repairSTL(log, *repairIn, *outPath, *previewOut, *tolerance); err != nil {
			log.Fatal("repair failed", zap.String("file", *repairIn), zap.Error(err))
		}
		return
	}

	if err := generate(log, *configPath, *resultsDir, *onlyRows, *kernelName); err != nil {
		log.Fatal("generation failed", zap.Error(err))
	}
}

func generate(log *zap.Logger, configPath, resultsDir, onlyRows, kernelName string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	kernel, err := keycap.OpenKernel(kernelName)
	if err != nil {
		return err
	}

	g := &keycap.Generator{
		Kernel:     kernel,
		Config:     cfg,
		ResultsDir: resultsDir,
		OnlyRows:   splitRows(onlyRows),
		Log:        log,
	}
	stats, err := g.Run()
	if err != nil {
		return err
	}
	log.Info("batch done",
		zap.Int("rows", stats.Rows),
		zap.Int("written", stats.Written),
		zap.Int("skipped", stats.Skipped),
		zap.Int("failed", stats.Failed))
	if stats.Failed > 0 {
		return fmt.Errorf("%d keycap variants failed", stats.Failed)
	}
	return nil
}

func splitRows(s string) []string {
	if s == "" {
		return nil
	}
	var rows []string
	for _, r := range strings.Split(s, ",") {
		if r = strings.TrimSpace(r); r != "" {
			rows = append(rows, r)
		}
	}
	return rows
}

func repairSTL(log *zap.Logger, in, out, preview string, tolerance float64) error {
	if out == "" {
		out = strings.TrimSuffix(in, filepath.Ext(in)) + ".3mf"
	}

	fp, err := os.Open(in)
	if err != nil {
		return err
	}
	verts, tris, err := render.ReadSTL(fp)
	fp.Close()
	if err != nil {
		return err
	}
	log.Info("read STL", zap.String("file", in), zap.Int("triangles", len(tris)))

	mesh, report, err := mesher.Repair(brep.Soup(verts, tris), mesher.Options{Tolerance: tolerance})
	if err != nil {
		return err
	}
	log.Info("repaired mesh",
		zap.Int("rawVertices", report.RawVertices),
		zap.Int("weldedVertices", report.WeldedVertices),
		zap.Int("droppedTriangles", report.DroppedTriangles),
		zap.Int("holesFilled", report.HolesFilled),
		zap.Int("fillTriangles", report.FillTriangles))

	name := strings.TrimSuffix(filepath.Base(out), filepath.Ext(out))
	if err := render.Create3MF(out, render.Part{Name: name, Mesh: mesh}); err != nil {
		return err
	}
	log.Info("wrote 3MF", zap.String("file", out))

	if preview != "" {
		if err := render.SavePreviewPNG(preview, 800, 600, mesh); err != nil {
			return err
		}
		log.Info("wrote preview", zap.String("file", preview))
	}
	return nil
}
