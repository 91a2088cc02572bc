// meshtool is a CLI utility for loading, welding and exporting polygon models.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/meshweld/internal/assets"
	"github.com/Faultbox/meshweld/internal/config"
	"github.com/Faultbox/meshweld/internal/export"
	"github.com/Faultbox/meshweld/internal/logger"
	"github.com/Faultbox/meshweld/internal/model"
	"github.com/Faultbox/meshweld/internal/picking"
)

var errUsage = errors.New("invalid usage")

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	args := config.Args()
	if len(args) < 1 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(newApp(cfg, logger.Log), args, os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
			printUsage(os.Stderr)
		} else {
			logger.Error("command failed", zap.String("command", args[0]), zap.Error(err))
		}
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `meshtool - polygon model loading and welding utility

Usage:
  meshtool [flags] <command> [args]

Commands:
  info <file.obj>...                  Load models and show welded statistics
  sphere <output.obj|output.stl>      Generate a sphere from the sphere config
  export <file.obj> <output.obj|.stl> Weld a model and write it back out
  pick <file.obj> <ox,oy,oz> <dx,dy,dz> Cast a ray against a model
  config                              Write the effective config to the config dir

Flags:
  -config <path>        Config file (default ./config.yaml, then the OS config dir)
  -debug                Enable debug logging
  -log-file <path>      Also write logs to this file
  -workers <n>          Concurrent loads for info
  -material-dir <dir>   Resolve material libraries in dir
  -out-dir <dir>        Directory for generated and exported files

Examples:
  meshtool info cube.obj teapot.obj
  meshtool -out-dir build sphere ball.stl
  meshtool export scan.obj scan.stl
  meshtool pick cube.obj 0,0,-5 0,0,1`)
}

// app bundles the collaborators commands share.
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	assets *assets.Manager
}

func newApp(cfg *config.Config, log *zap.Logger) *app {
	loader := &model.Loader{
		Logger:      log.Named("loader"),
		Diagnostics: logger.NewSink(log.Named("diagnostics")),
		MaterialDir: cfg.Import.MaterialDir,
	}
	return &app{
		cfg:    cfg,
		log:    log,
		assets: assets.NewManager(loader),
	}
}

func run(a *app, args []string, out io.Writer) error {
	defer a.assets.Close()

	command, rest := args[0], args[1:]
	switch command {
	case "info":
		return a.cmdInfo(rest, out)
	case "sphere":
		return a.cmdSphere(rest, out)
	case "export":
		return a.cmdExport(rest, out)
	case "pick":
		return a.cmdPick(rest, out)
	case "config":
		return a.cmdConfig(out)
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

func (a *app) cmdInfo(args []string, out io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: info needs at least one model file", errUsage)
	}

	entries, err := a.assets.LoadAll(args, a.cfg.Import.Workers)
	for _, e := range entries {
		if e == nil {
			continue
		}
		m := e.Model
		b := m.Bounds()
		fmt.Fprintf(out, "%s\n", e.Path)
		fmt.Fprintf(out, "  ID:        %s\n", e.ID)
		fmt.Fprintf(out, "  Vertices:  %d\n", m.NumberOfVertices())
		fmt.Fprintf(out, "  Triangles: %d\n", m.NumberOfIndices()/3)
		fmt.Fprintf(out, "  Materials: %d\n", m.NumberOfMaterials())
		for i, mat := range m.Materials() {
			fmt.Fprintf(out, "    [%d] %-12s diffuse=%v\n", i, mat.Kind, mat.Diffuse)
		}
		fmt.Fprintf(out, "  Bounds:    %v - %v\n", b.Min, b.Max)
	}
	return err
}

func (a *app) cmdSphere(args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: sphere needs one output file", errUsage)
	}

	s := a.cfg.Sphere
	m := model.CreateSphere(
		mgl32.Vec3(s.Center),
		s.Radius,
		s.Subdivision,
		model.Lambertian(mgl32.Vec3(s.Diffuse)),
		s.Analytic,
	)
	a.log.Info("generated sphere",
		zap.Float32("radius", s.Radius),
		zap.Int("subdivision", s.Subdivision),
		zap.Int("vertices", m.NumberOfVertices()),
	)

	return a.write(a.outputPath(args[0]), m, out)
}

func (a *app) cmdExport(args []string, out io.Writer) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: export needs an input and an output file", errUsage)
	}

	e, err := a.assets.Load(args[0])
	if err != nil {
		return err
	}
	return a.write(a.outputPath(args[1]), e.Model, out)
}

func (a *app) cmdPick(args []string, out io.Writer) error {
	if len(args) != 3 {
		return fmt.Errorf("%w: pick needs a model file, an origin and a direction", errUsage)
	}

	origin, err := parseVec3(args[1])
	if err != nil {
		return fmt.Errorf("%w: origin: %v", errUsage, err)
	}
	dir, err := parseVec3(args[2])
	if err != nil {
		return fmt.Errorf("%w: direction: %v", errUsage, err)
	}
	if dir.Len() == 0 {
		return fmt.Errorf("%w: direction must not be zero", errUsage)
	}

	e, err := a.assets.Load(args[0])
	if err != nil {
		return err
	}

	hit, ok := picking.PickModel(picking.NewRay(origin, dir), e.Model)
	if !ok {
		fmt.Fprintln(out, "miss")
		return nil
	}
	fmt.Fprintf(out, "hit triangle %d at distance %g, point %v\n", hit.Triangle, hit.Distance, hit.Point)
	return nil
}

func (a *app) cmdConfig(out io.Writer) error {
	path := config.ConfigPath()
	if path == "" {
		path = filepath.Join(config.ConfigDir(), "config.yaml")
	}
	if err := a.cfg.SaveTo(path); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s\n", path)
	return nil
}

// outputPath places relative names under the configured output directory.
func (a *app) outputPath(name string) string {
	if filepath.IsAbs(name) || a.cfg.Export.OutputDir == "" {
		return name
	}
	return filepath.Join(a.cfg.Export.OutputDir, name)
}

func (a *app) write(path string, m *model.Model, out io.Writer) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		err = export.WriteSTL(path, m)
	case ".obj":
		err = export.WriteOBJ(path, m)
	default:
		return fmt.Errorf("%w: unsupported output format %q", errUsage, ext)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "wrote %s (%d vertices, %d triangles)\n", path, m.NumberOfVertices(), m.NumberOfIndices()/3)
	return nil
}

func parseVec3(s string) (mgl32.Vec3, error) {
	var v mgl32.Vec3
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return v, fmt.Errorf("expected x,y,z, got %q", s)
	}
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return v, fmt.Errorf("bad component %q", p)
		}
		v[i] = float32(f)
	}
	return v, nil
}
