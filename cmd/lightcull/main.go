// lightcull is a CLI utility for assigning spot lights to lightmap grid cells.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"go.uber.org/zap"

	"github.com/Faultbox/sectorcull/internal/config"
	"github.com/Faultbox/sectorcull/internal/engine/lighting"
	"github.com/Faultbox/sectorcull/internal/lightgrid"
	"github.com/Faultbox/sectorcull/internal/logger"
	"github.com/Faultbox/sectorcull/pkg/geom"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "cull":
		err = runCull(args, os.Stdout)
	case "query", "q":
		err = runQuery(args, os.Stdout)
	case "init":
		err = runInit(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if errors.Is(err, flag.ErrHelp) {
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`lightcull - spot light to lightmap grid culling

Usage:
  lightcull <command> [options]

Commands:
  cull [-config file] [-workers N] [-cell-size S] [-debug]
                                     Cull configured lights against the grid
  query [options]                    Test one spot light against one sphere
  init [path]                        Write a sample config

Examples:
  lightcull init sectorcull.yaml
  lightcull cull -config sectorcull.yaml -debug
  lightcull query -pos 0,0,0 -dir 0,0,1 -range 10 -angle 17 -center 0,0,5 -radius 1`)
}

func runCull(args []string, w io.Writer) error {
	if err := config.ParseFlags(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	lights, err := cfg.SpotLights()
	if err != nil {
		return err
	}

	buf := lighting.NewSpotLightBuffer()
	buf.SetLights(lights)
	if len(lights) > buf.Count {
		logger.Warn("too many spot lights, extra lights ignored",
			zap.Int("configured", len(lights)),
			zap.Int("max", lighting.MaxSpotLights))
	}

	cones, err := buf.Cones()
	if err != nil {
		return err
	}

	g := cfg.Grid
	grid, err := lightgrid.NewGrid(r3.Vector{X: g.Origin[0], Y: g.Origin[1], Z: g.Origin[2]}, g.CellSize, g.Dims)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if cfg.Culling.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Culling.Timeout)
		defer cancel()
	}

	culler := lightgrid.NewCuller(grid, cfg.Culling.Workers, logger.Named("lightgrid"))
	res, err := culler.Cull(ctx, cones)
	if err != nil {
		logger.Error("culling failed", zap.Error(err))
		return err
	}

	cells := grid.CellCount()
	fmt.Fprintf(w, "Grid:   %d x %d x %d (%d cells, size %g)\n", g.Dims[0], g.Dims[1], g.Dims[2], cells, g.CellSize)
	fmt.Fprintf(w, "Lights: %d\n", len(cones))
	fmt.Fprintln(w)
	for i, n := range res.CellsPerLight {
		name := cfg.Lights[i].Name
		if name == "" {
			name = fmt.Sprintf("light-%d", i)
		}
		fmt.Fprintf(w, "  %-20s %8d cells  %6.2f%%\n", name, n, float64(n)*100/float64(cells))
	}
	fmt.Fprintln(w)
	if res.Tested > 0 {
		fmt.Fprintf(w, "Culled %d of %d pairs (%.2f%%)\n", res.Culled, res.Tested, float64(res.Culled)*100/float64(res.Tested))
	}
	return nil
}

func runQuery(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	pos := fs.String("pos", "0,0,0", "Light position x,y,z")
	dir := fs.String("dir", "0,0,1", "Light direction x,y,z (normalized)")
	rng := fs.Float64("range", 10, "Light range")
	angle := fs.Float64("angle", 30, "Half-angle in degrees")
	center := fs.String("center", "0,0,5", "Sphere center x,y,z")
	radius := fs.Float64("radius", 1, "Sphere radius")
	if err := fs.Parse(args); err != nil {
		return err
	}

	origin, err := parseVec(*pos)
	if err != nil {
		return fmt.Errorf("-pos: %w", err)
	}
	forward, err := parseVec(*dir)
	if err != nil {
		return fmt.Errorf("-dir: %w", err)
	}
	sc, err := parseVec(*center)
	if err != nil {
		return fmt.Errorf("-center: %w", err)
	}

	cone := geom.SphericalCone{
		Origin:    origin,
		Forward:   forward.Normalize(),
		Range:     *rng,
		HalfAngle: s1.Angle(*angle) * s1.Degree,
	}
	sphere := geom.Sphere{Origin: sc, Radius: *radius}

	if err := cone.Validate(); err != nil {
		return err
	}
	if err := sphere.Validate(); err != nil {
		return err
	}

	ref := geom.Intersects(cone, sphere)
	opt := geom.IntersectsOptimized(cone, sphere)

	fmt.Fprintf(w, "Distance:  %.4f\n", sphere.Origin.Distance(cone.Origin))
	fmt.Fprintf(w, "Reference: %v\n", ref)
	fmt.Fprintf(w, "Optimized: %v\n", opt)
	if ref != opt {
		fmt.Fprintln(w, "Warning: results differ (sphere is on the sector boundary)")
	}
	return nil
}

func runInit(args []string) error {
	cfg := config.Default()
	cfg.Lights = []config.LightConfig{
		{
			Name:       "ceiling",
			Position:   [3]float32{0, 14, 0},
			Direction:  []float32{0, -1, 0},
			Color:      [3]float32{1, 0.95, 0.85},
			Range:      18,
			OuterAngle: 35,
			Intensity:  1,
		},
		{
			Name:       "wall-wash",
			Position:   [3]float32{-20, 6, 10},
			Yaw:        60,
			Pitch:      -20,
			Color:      [3]float32{0.6, 0.7, 1},
			Range:      25,
			OuterAngle: 50,
			Intensity:  0.8,
		},
	}

	if len(args) > 0 {
		return cfg.SaveTo(args[0])
	}
	return cfg.Save()
}

// parseVec parses "x,y,z".
func parseVec(s string) (r3.Vector, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return r3.Vector{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return r3.Vector{}, err
		}
		v[i] = f
	}
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}, nil
}
