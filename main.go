package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/jamespanton93/terratools/config"
	"github.com/jamespanton93/terratools/core"
)

func main() {
	var (
		level      = flag.Int("level", -1, "Icosahedron refinement level k (overrides config)")
		inner      = flag.Float64("inner", 0, "Inner shell radius in km (overrides config)")
		outer      = flag.Float64("outer", 0, "Outer shell radius in km (overrides config)")
		configPath = flag.String("config", "", "Path to a config file")
		serve      = flag.Bool("serve", false, "Serve the mesh over websocket after building")
		port       = flag.Int("port", 0, "Server port (overrides config)")
	)
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *level >= 0 {
		settings.Mesh.Level = *level
	}
	if *inner > 0 {
		settings.Mesh.InnerRadius = *inner
	}
	if *outer > 0 {
		settings.Mesh.OuterRadius = *outer
	}
	if *port > 0 {
		settings.Server.Port = *port
	}
	if err := settings.Validate(); err != nil {
		log.Fatalf("Invalid mesh resolution: %v", err)
	}

	fmt.Println("=== Spherical Shell Mesh Generator ===")
	fmt.Printf("Refinement level: %d (~%d vertices/layer)\n",
		settings.Mesh.Level, settings.VertexCountPerLayer())
	fmt.Printf("Shell radii: %.0f-%.0f km\n", settings.Mesh.InnerRadius, settings.Mesh.OuterRadius)

	mesh, err := core.BuildMesh(settings.Mesh.Level, settings.Mesh.InnerRadius, settings.Mesh.OuterRadius, nil)
	if err != nil {
		log.Fatalf("Mesh build failed: %v", err)
	}

	fmt.Println(mesh)
	fmt.Printf("Layers: %d, triangles/layer: %d, unknown scalars: %d\n",
		mesh.LayerCount(), mesh.TriangleCount(), len(mesh.Slots()))
	for i := 0; i < mesh.LayerCount(); i++ {
		fmt.Printf("  Layer %d: r=%.1f km\n", i, mesh.Radius(i))
	}

	if *serve {
		startServer(mesh, settings.Server.Port)
	}
}
