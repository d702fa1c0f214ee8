package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"screwplanner/internal/models"
	"screwplanner/pkg/config"
	"screwplanner/pkg/geometry"
	"screwplanner/pkg/snapshot"
	"screwplanner/pkg/tracking"
)

// printSink is a stand-in model layer: it logs the placement instead of
// moving an actual rendered mesh.
type printSink struct{}

func (printSink) ApplyTransform(ctx context.Context, modelID string, transform []float64, length float64) (bool, error) {
	fmt.Printf("Applied placement to model %q (length %.1f mm):\n", modelID, length)
	for r := 0; r < 4; r++ {
		fmt.Printf("  [%8.3f %8.3f %8.3f %8.3f]\n",
			transform[r*4], transform[r*4+1], transform[r*4+2], transform[r*4+3])
	}
	return true, nil
}

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "screwplanner.yaml", "Path to YAML configuration")
	name := flag.String("name", "Demo screw", "Snapshot name to save under")
	radius := flag.Float64("radius", 3.5, "Screw radius in mm")
	length := flag.Float64("length", 40, "Screw length in mm")
	steps := flag.Int("steps", 10, "Tracking simulator steps to run before planning")
	mode := flag.String("mode", "", "Tracking mode override (circular, linear-axial, linear-sagittal, linear-coronal, random-walk)")
	exportPath := flag.String("export", "", "Write the store to this snapshot JSON file")
	importPath := flag.String("import", "", "Merge snapshots from this JSON file before planning")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *mode != "" {
		cfg.Tracking.Mode = *mode
	}

	logLevel := slog.LevelWarn
	if cfg.Output.Verbose {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	fmt.Println("================================")
	fmt.Println("SCREW PLACEMENT PLANNER - VIEWPORT SNAPSHOT DEMO")
	fmt.Println("================================")

	// Simulated tracking device standing in for the crosshair tool
	sim := tracking.NewSimulator(
		tracking.Mode(cfg.Tracking.Mode),
		tracking.WithCenter(geometry.Vec3(cfg.Tracking.Center)),
		tracking.WithRadius(cfg.Tracking.Radius),
		tracking.WithSpeed(cfg.Tracking.Speed),
	)
	sim.Start()

	bus := tracking.NewBus()
	samples := make(chan models.TrackingSample, *steps)
	bus.Subscribe("demo", samples)

	fmt.Printf("Running tracking simulator (%s) for %d steps...\n", cfg.Tracking.Mode, *steps)
	for i := 0; i < *steps; i++ {
		bus.Publish(sim.Step())
	}
	var last models.TrackingSample
	for len(samples) > 0 {
		last = <-samples
	}
	fmt.Printf("Reference point: [%.2f %.2f %.2f]\n",
		last.Position[0], last.Position[1], last.Position[2])
	direction := last.Orientation

	point, active := sim.ReferencePoint()
	if !active {
		log.Fatalf("Tracking source reported no reference point")
	}

	// Orient the local frame so the model's long axis follows the tracked
	// instrument direction; -Y is the canonical screw axis.
	rot := geometry.RotationBetween(geometry.V(0, -1, 0), direction)
	axialNormal := rot.MulVec(geometry.V(1, 0, 0))
	longAxis := rot.MulVec(geometry.V(0, -1, 0))
	sagittalNormal := rot.MulVec(geometry.V(0, 0, 1))

	placement := geometry.BuildCenteredPlacement(axialNormal, longAxis, sagittalNormal, point, *length)

	// Demo camera source with the configured viewport layout
	cameras := snapshot.NewMapCameraSource(cfg.Viewports.IDs...)
	for i, id := range cfg.Viewports.IDs {
		state, err := demoCameraState(placement, i, point, cfg.Placement.CameraDistance, cfg.Placement.ParallelScale)
		if err != nil {
			log.Fatalf("Failed to build demo camera state: %v", err)
		}
		if err := cameras.SetCameraState(id, state); err != nil {
			log.Fatalf("Failed to seed viewport %s: %v", id, err)
		}
	}

	store := snapshot.New(cameras,
		snapshot.WithCapacity(cfg.Store.MaxSnapshots),
		snapshot.WithModelSink(printSink{}),
		snapshot.WithLogger(logger),
	)

	if *importPath != "" {
		n, err := store.ImportFile(*importPath)
		if err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		fmt.Printf("Imported %d snapshot(s) from %s\n", n, *importPath)
	}

	rec, err := store.Save(*name, *radius, *length, placement.Slice())
	if err != nil {
		log.Fatalf("Save failed: %v", err)
	}
	fmt.Printf("Saved snapshot %q with %d viewport(s)\n", rec.Name, len(rec.Viewports))
	fmt.Printf("Store: %d/%d used, %d slot(s) remaining\n",
		store.Len(), store.MaxSnapshots(), store.RemainingSlots())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Restore(ctx, rec.Name); err != nil {
		log.Fatalf("Restore failed: %v", err)
	}

	if *exportPath != "" {
		data, err := store.ExportJSON()
		if err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		if err := os.WriteFile(*exportPath, data, 0644); err != nil {
			log.Fatalf("Failed to write export: %v", err)
		}
		fmt.Printf("Exported %d snapshot(s) to %s\n", store.Len(), *exportPath)
	}

	stats := bus.Stats()
	fmt.Printf("Tracking bus: %d sample(s) published\n", stats.Published)
}

// demoCameraState builds a camera payload the way the viewer lays out its
// MPR cameras around a placement: focal point at the reference point,
// camera pulled back along the view-plane normal. Each viewport reads its
// view-plane normal and view up from different columns of the placement.
func demoCameraState(placement geometry.Mat4, viewport int, focal geometry.Vec3, distance, parallelScale float64) (snapshot.CameraState, error) {
	var viewNormal, viewUp geometry.Vec3
	switch viewport {
	case 1: // sagittal
		viewNormal, viewUp = placement.Col(2), placement.Col(0)
	case 2: // coronal
		viewNormal, viewUp = placement.Col(1), placement.Col(0)
	default: // axial
		viewNormal, viewUp = placement.Col(0), placement.Col(1)
	}
	position := geometry.CameraPosition(focal, viewNormal, distance)

	payload := map[string]any{
		"viewUp":             viewUp[:],
		"viewPlaneNormal":    viewNormal[:],
		"position":           position[:],
		"focalPoint":         focal[:],
		"parallelProjection": true,
		"parallelScale":      parallelScale,
		"viewAngle":          90,
		"flipHorizontal":     false,
		"flipVertical":       false,
		"rotation":           0,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return snapshot.CameraState(data), nil
}
