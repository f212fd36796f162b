// uvtool is a CLI utility for inspecting UV islands of OBJ meshes.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/uvisland/internal/config"
	"github.com/Faultbox/uvisland/internal/logger"
	"github.com/Faultbox/uvisland/pkg/island"
	"github.com/Faultbox/uvisland/pkg/mesh"
	"github.com/Faultbox/uvisland/pkg/selection"
)

func main() {
	config.ParseFlags()
	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := args[0]
	rest := args[1:]

	switch command {
	case "info":
		cmdInfo(cfg, rest)
	case "islands", "ls":
		cmdIslands(cfg, rest)
	case "mask":
		cmdMask(cfg, rest)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`uvtool - UV island inspection utility

Usage:
  uvtool [flags] <command> [options]

Commands:
  info <mesh.obj>                     Show mesh statistics
  islands <mesh.obj> [-submesh n]     List UV islands
  mask <mesh.obj> -select s:id,...    Resolve a selection to vertex/triangle masks

Flags (before the command):
  -config <path>     Config file
  -debug             Debug logging
  -weld <eps>        UV weld epsilon override
  -tolerance <tol>   Pick tolerance override

Examples:
  uvtool info character.obj
  uvtool islands character.obj -submesh 0
  uvtool -weld 0.0005 mask character.obj -select 0:1,0:3,1:0`)
}

func loadMesh(path string) *mesh.Mesh {
	m, err := mesh.LoadOBJ(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return m
}

func cmdInfo(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: uvtool info <mesh.obj>")
		os.Exit(1)
	}

	m := loadMesh(fs.Arg(0))

	totalTris := 0
	for s := range m.Submeshes {
		totalTris += m.TriangleCount(s)
	}

	fmt.Printf("Mesh:      %s\n", fs.Arg(0))
	fmt.Printf("Vertices:  %d\n", len(m.Positions))
	fmt.Printf("Triangles: %d\n", totalTris)
	fmt.Printf("Submeshes: %d\n", len(m.Submeshes))
	for s, sub := range m.Submeshes {
		name := sub.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Printf("  [%d] %-20s %d triangles\n", s, name, m.TriangleCount(s))
	}
}

func cmdIslands(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("islands", flag.ExitOnError)
	submesh := fs.Int("submesh", -1, "Only analyze this submesh (-1 = all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: uvtool islands <mesh.obj> [-submesh n]")
		os.Exit(1)
	}

	m := loadMesh(fs.Arg(0))

	var filter []int
	if *submesh >= 0 {
		filter = append(filter, *submesh)
	}

	islands, err := island.Analyze(m, cfg.Params(), filter...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("analysis complete", zap.Int("islands", len(islands)))

	fmt.Printf("%-8s %-4s %-6s %-6s %-28s %s\n", "submesh", "id", "tris", "verts", "uv bounds", "color")
	for _, is := range islands {
		bounds := fmt.Sprintf("[%.3f,%.3f]-[%.3f,%.3f]",
			is.Bounds.Min.X(), is.Bounds.Min.Y(), is.Bounds.Max.X(), is.Bounds.Max.Y())
		fmt.Printf("%-8d %-4d %-6d %-6d %-28s #%02x%02x%02x\n",
			is.Submesh, is.ID, len(is.Triangles), len(is.Vertices), bounds,
			is.Color.R, is.Color.G, is.Color.B)
	}
	fmt.Printf("\n(%d islands)\n", len(islands))
}

func cmdMask(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("mask", flag.ExitOnError)
	sel := fs.String("select", "", "Comma-separated submesh:id pairs")
	dumpVerts := fs.Bool("verts", false, "Print every masked vertex index")
	fs.Parse(args)

	if fs.NArg() < 1 || *sel == "" {
		fmt.Fprintln(os.Stderr, "Usage: uvtool mask <mesh.obj> -select s:id,s:id,...")
		os.Exit(1)
	}

	m := loadMesh(fs.Arg(0))

	islands, err := island.Analyze(m, cfg.Params())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	perSubmesh, err := parseSelection(*sel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := selection.NewStore()
	store.SetIslands(islands, len(m.Submeshes))
	for s, ids := range perSubmesh {
		if err := store.SetSelected(s, ids); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	vmask := store.VertexMask()
	fmt.Printf("Vertex mask: %d vertices\n", len(vmask))
	if *dumpVerts {
		for _, v := range vmask {
			fmt.Println(v)
		}
	}
	for s := range m.Submeshes {
		tmask := store.TriangleMask(s)
		if len(tmask) > 0 {
			fmt.Printf("Triangle mask [submesh %d]: %d triangles\n", s, len(tmask))
		}
	}
}

// parseSelection parses "0:1,0:3,1:0" into per-submesh ID lists.
func parseSelection(s string) (map[int][]int, error) {
	out := make(map[int][]int)
	for _, pair := range strings.Split(s, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("bad selection %q: want submesh:id", pair)
		}
		sm, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("bad submesh in %q: %w", pair, err)
		}
		id, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("bad island id in %q: %w", pair, err)
		}
		out[sm] = append(out[sm], id)
	}
	return out, nil
}
