// Package main is the entry point for the isomesh viewer: a live
// dual-contouring and simplification viewer for the super-primitive SDF
// family.
package main

import (
	"fmt"
	"os"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/duskforge/isomesh/internal/config"
	"github.com/duskforge/isomesh/internal/engine/camera"
	"github.com/duskforge/isomesh/internal/engine/debug"
	"github.com/duskforge/isomesh/internal/engine/renderer"
	"github.com/duskforge/isomesh/internal/engine/ui"
	"github.com/duskforge/isomesh/internal/logger"
	"github.com/duskforge/isomesh/pkg/isomesh"
	isomath "github.com/duskforge/isomesh/pkg/math"
)

// app holds the viewer's live state across frames.
type app struct {
	cfg      *config.Config
	backend  *ui.Backend
	renderer *renderer.Renderer
	cam      *camera.OrbitCamera
	panel    ui.ControlPanel
	shots    *debug.ScreenshotCapture

	lastMousePos imgui.Vec2
}

func shapeByName(name string) isomesh.Shape {
	switch name {
	case "cylinder":
		return isomesh.ShapeCylinder
	case "pill":
		return isomesh.ShapePill
	case "corridor":
		return isomesh.ShapeCorridor
	case "torus":
		return isomesh.ShapeTorus
	default:
		return isomesh.ShapeCube
	}
}

func simplifyOptions(s config.SimplifyConfig) isomesh.Options {
	return isomesh.Options{
		EdgeFraction:     s.EdgeFraction,
		MaxIterations:    s.MaxIterations,
		TargetPercentage: s.TargetPercentage,
		MaxError:         s.MaxError,
		MaxEdgeSize:      s.MaxEdgeSize,
		MinAngleCosine:   s.MinAngleCosine,
	}
}

// regenerate rebuilds the mesh from the current shape, runs the
// simplifier, and re-uploads to the GPU.
func (a *app) regenerate() {
	primCfg := isomesh.SuperPrimitiveConfig{
		S: isomath.Vec4{X: a.cfg.Shape.S[0], Y: a.cfg.Shape.S[1], Z: a.cfg.Shape.S[2], W: a.cfg.Shape.S[3]},
		R: isomath.Vec2{X: a.cfg.Shape.R[0], Y: a.cfg.Shape.R[1]},
	}

	mesh := isomesh.GenerateMesh(primCfg)
	isomesh.Simplify(mesh, isomath.Vec4{}, simplifyOptions(a.cfg.Simplify))

	a.renderer.UploadMesh(mesh)
	a.panel.NumVertices = len(mesh.Vertices)
	a.panel.NumTriangles = len(mesh.Triangles)

	logger.Info("mesh regenerated",
		zap.String("shape", a.cfg.Shape.Name),
		zap.Int("vertices", a.panel.NumVertices),
		zap.Int("triangles", a.panel.NumTriangles),
	)
}

func (a *app) render() {
	io := imgui.CurrentIO()

	if !io.WantCaptureMouse() {
		mousePos := imgui.MousePos()
		if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
			a.cam.HandleDrag(mousePos.X-a.lastMousePos.X, mousePos.Y-a.lastMousePos.Y)
		}
		a.lastMousePos = mousePos

		if wheel := io.MouseWheel(); wheel != 0 {
			a.cam.HandleZoom(wheel)
		}
	}

	width, height := a.backend.GetWindowSize()
	aspect := float32(width) / float32(height)

	proj := isomath.Perspective(0.9, aspect, 0.1, 5000)
	view := a.cam.ViewMatrix()
	viewProj := proj.Mul(view)
	viewProjArr := [16]float32(viewProj)

	a.renderer.SetWireframe(a.cfg.Graphics.Wireframe)
	a.renderer.SetShowBBox(a.cfg.Graphics.ShowBBox)
	a.renderer.Begin()
	a.renderer.DrawMesh(viewProjArr)
	a.renderer.DrawBBox(viewProjArr)
	a.renderer.End()

	if ui.IsKeyPressed(imgui.KeyF12) {
		a.captureScreenshot(int(width), int(height))
	}

	result := a.panel.Draw(a.cfg)
	if result.ShapeChanged || result.SimplifyChanged {
		a.regenerate()
	}
}

// captureScreenshot reads back the just-drawn frame and saves it under the
// working directory's screenshots folder.
func (a *app) captureScreenshot(width, height int) {
	pixels := a.renderer.CapturePixels(width, height)
	path, err := a.shots.CaptureFromPixels(pixels, width, height)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== isomesh viewer ===")
	logger.Sugar.Debugf("config: %+v", cfg)

	backend, err := ui.NewBackend("isomesh viewer", int32(cfg.Graphics.Width), int32(cfg.Graphics.Height))
	if err != nil {
		logger.Error("failed to create UI backend", zap.Error(err))
		os.Exit(1)
	}

	r, err := renderer.New(renderer.Config{
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
		VSync:  cfg.Graphics.VSync,
	})
	if err != nil {
		logger.Error("failed to create renderer", zap.Error(err))
		os.Exit(1)
	}
	defer r.Close()

	if cfg.Shape.Name == "" {
		cfg.Shape.Name = "cube"
	}
	seed := isomesh.ConfigForShape(shapeByName(cfg.Shape.Name))
	defaultShape := config.Default().Shape
	if cfg.Shape.S == ([4]float32{}) || (cfg.Shape.S == defaultShape.S && cfg.Shape.R == defaultShape.R) {
		cfg.Shape.S = [4]float32{seed.S.X, seed.S.Y, seed.S.Z, seed.S.W}
		cfg.Shape.R = [2]float32{seed.R.X, seed.R.Y}
	}

	a := &app{
		cfg:      cfg,
		backend:  backend,
		renderer: r,
		cam:      camera.NewOrbitCamera(),
		shots:    debug.NewScreenshotCapture("screenshots", "isomesh"),
	}
	a.regenerate()

	backend.Run(a.render)

	logger.Info("viewer closed normally")
}
