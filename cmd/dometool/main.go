package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/idralyuk/GradienTea-sub001/internal/anim"
	"github.com/idralyuk/GradienTea-sub001/internal/color"
	"github.com/idralyuk/GradienTea-sub001/internal/config"
	"github.com/idralyuk/GradienTea-sub001/internal/dmx"
	"github.com/idralyuk/GradienTea-sub001/internal/dome"
	"github.com/idralyuk/GradienTea-sub001/internal/projection"
	"github.com/idralyuk/GradienTea-sub001/internal/viz"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]
	out := os.Stdout

	switch cmd {
	case "validate":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: dometool validate <config>")
			os.Exit(1)
		}
		os.Exit(runValidate(out, args[0]))
	case "stats":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: dometool stats <config>")
			os.Exit(1)
		}
		os.Exit(runStats(out, args[0]))
	case "viz":
		if len(args) < 2 || len(args) > 3 {
			fmt.Fprintln(os.Stderr, "Usage: dometool viz <config> <out.png> [azimuthal|mercator]")
			os.Exit(1)
		}
		proj := "azimuthal"
		if len(args) == 3 {
			proj = args[2]
		}
		os.Exit(runViz(out, args[0], args[1], proj))
	case "frame":
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, "Usage: dometool frame <config> <fraction>")
			os.Exit(1)
		}
		os.Exit(runFrame(out, args[0], args[1]))
	case "all":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: dometool all <config>")
			os.Exit(1)
		}
		os.Exit(runAll(out, args[0]))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: dometool <command> <config> [args]

Commands:
  validate <config>                      Cross-check predicted and built face counts
  stats    <config>                      Show dome measures and faces per ring
  viz      <config> <out.png> [proj]     Render lighted faces to PNG (azimuthal|mercator)
  frame    <config> <fraction>           Hex dump one rendered frame
  all      <config>                      Run validate + stats

Use "" as <config> for the built-in defaults; DOME_* variables apply.`)
}

// loadDome reads the config and builds its dome. Errors are reported to w.
func loadDome(w io.Writer, path string) (config.Config, *dome.Dome, bool) {
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(w, "FAIL: %v\n", err)
		return cfg, nil, false
	}
	d, err := dome.New(cfg.Dome)
	if err != nil {
		fmt.Fprintf(w, "FAIL: %v\n", err)
		return cfg, nil, false
	}
	return cfg, d, true
}

// --- validate ---

func runValidate(w io.Writer, path string) int {
	cfg, d, ok := loadDome(w, path)
	if !ok {
		return 1
	}
	s := cfg.Dome
	fmt.Fprintf(w, "Validating %dV dome, %d layers (%d lighted)...\n", s.Frequency, s.TotalLayers, s.LightedLayers)

	errors := 0
	rings := d.Geometry().DefaultRings()
	built := 0
	for layers := 0; layers <= len(rings); layers++ {
		want, err := dome.PredictedFaceCount(s.Frequency, layers)
		if err != nil {
			fmt.Fprintf(w, "  ERROR: %v\n", err)
			errors++
			continue
		}
		if want != built {
			fmt.Fprintf(w, "  ERROR: %d layers: predicted %d faces, built %d\n", layers, want, built)
			errors++
		}
		if layers < len(rings) {
			built += len(rings[layers])
		}
	}

	if !s.FitsPanelHeight() {
		fmt.Fprintf(w, "  WARN: panel height %.2f exceeds %.2f\n", s.PanelHeight(), s.MaxPanelHeight)
	}
	if _, err := d.Layout(cfg.Output.PixelsPerFace, cfg.Output.StartChannel); err != nil {
		fmt.Fprintf(w, "  ERROR: %v\n", err)
		errors++
	}

	if errors > 0 {
		fmt.Fprintf(w, "\n%d error(s) found\n", errors)
		return 1
	}
	fmt.Fprintf(w, "  OK (%d faces, %d lighted)\n", len(d.Faces()), len(d.LightedFaces()))
	return 0
}

// --- stats ---

func runStats(w io.Writer, path string) int {
	cfg, d, ok := loadDome(w, path)
	if !ok {
		return 1
	}
	s := cfg.Dome
	g := d.Geometry()

	fmt.Fprintf(w, "%dV geodesic sphere: %d vertices, %d edges, %d faces\n",
		s.Frequency, g.VertexCount(), len(g.Edges()), len(g.Faces()))
	fmt.Fprintf(w, "dome: %d of %d layers, %d faces, %d lighted\n",
		s.TotalLayers, s.MaxLayers(), len(d.Faces()), len(d.LightedFaces()))
	fmt.Fprintf(w, "panel: side %.3f, height %.3f (max %.3f), area %.3f\n",
		s.PanelSideLength(), s.PanelHeight(), s.MaxPanelHeight, s.AveragePanelArea())
	fmt.Fprintf(w, "radius %.3f, inner radius %.3f\n", s.Radius, s.InnerRadius())
	fmt.Fprintf(w, "pixels: %d from channel %d (room for %d)\n\n",
		len(d.LightedFaces())*cfg.Output.PixelsPerFace, cfg.Output.StartChannel, dmx.Capacity(cfg.Output.StartChannel))

	rings := g.DefaultRings()
	series := make([]float64, len(rings))
	for i, r := range rings {
		series[i] = float64(len(r))
		mark := " "
		switch {
		case i < s.LightedLayers:
			mark = "*"
		case i < s.TotalLayers:
			mark = "+"
		}
		fmt.Fprintf(w, "  ring %2d %s %4d %s\n", i, mark, len(r), strings.Repeat("█", len(r)/5))
	}
	fmt.Fprintln(w, "  (* lighted, + structural)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, asciigraph.Plot(series, asciigraph.Height(8), asciigraph.Caption("faces per ring")))
	return 0
}

// --- viz ---

func runViz(w io.Writer, path, outPath, projName string) int {
	cfg, d, ok := loadDome(w, path)
	if !ok {
		return 1
	}
	proj, err := projection.ByName(projName)
	if err != nil {
		fmt.Fprintf(w, "FAIL: %v (have %s)\n", err, strings.Join(projection.Names(), ", "))
		return 1
	}
	layout, err := d.Layout(cfg.Output.PixelsPerFace, cfg.Output.StartChannel)
	if err != nil {
		fmt.Fprintf(w, "FAIL: %v\n", err)
		return 1
	}
	img, err := viz.Render(d.Geometry(), layout, viz.Options{Width: 800, Projection: proj})
	if err != nil {
		fmt.Fprintf(w, "FAIL: %v\n", err)
		return 1
	}

	f, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(w, "FAIL: %v\n", err)
		return 1
	}
	if err := viz.WritePNG(f, img); err != nil {
		f.Close()
		fmt.Fprintf(w, "FAIL: %v\n", err)
		return 1
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(w, "FAIL: %v\n", err)
		return 1
	}
	b := img.Bounds()
	fmt.Fprintf(w, "Wrote %s (%dx%d, %s, %d faces)\n", outPath, b.Dx(), b.Dy(), proj.Name(), len(layout.Faces))
	return 0
}

// --- frame ---

func runFrame(w io.Writer, path, fraction string) int {
	f, err := strconv.ParseFloat(fraction, 64)
	if err != nil {
		fmt.Fprintf(w, "FAIL: fraction %q: %v\n", fraction, err)
		return 1
	}
	cfg, d, ok := loadDome(w, path)
	if !ok {
		return 1
	}
	layout, err := d.Layout(cfg.Output.PixelsPerFace, cfg.Output.StartChannel)
	if err != nil {
		fmt.Fprintf(w, "FAIL: %v\n", err)
		return 1
	}
	comp, err := color.CompositorByName(cfg.Show.Compositor)
	if err != nil {
		fmt.Fprintf(w, "FAIL: %v\n", err)
		return 1
	}
	r, err := dmx.NewRenderer(layout.Pixels(), comp)
	if err != nil {
		fmt.Fprintf(w, "FAIL: %v\n", err)
		return 1
	}
	a, err := anim.ByName(cfg.Show.Animation, layout)
	if err != nil {
		fmt.Fprintf(w, "FAIL: %v\n", err)
		return 1
	}
	frame, err := r.Render(a.Render(f))
	if err != nil {
		fmt.Fprintf(w, "FAIL: %v\n", err)
		return 1
	}
	data, err := frame.PixelBytes(r.Pixels())
	if err != nil {
		fmt.Fprintf(w, "FAIL: %v\n", err)
		return 1
	}
	fmt.Fprintf(w, "%s at %.4f: %d pixels, %d bytes\n", cfg.Show.Animation, f, len(r.Pixels()), len(data))
	fmt.Fprint(w, hex.Dump(data))
	return 0
}

// --- all ---

func runAll(w io.Writer, path string) int {
	code := runValidate(w, path)
	fmt.Fprintln(w)
	if c := runStats(w, path); c > code {
		code = c
	}
	return code
}
