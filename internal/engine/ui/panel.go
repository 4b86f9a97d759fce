package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/duskforge/isomesh/internal/config"
	"github.com/duskforge/isomesh/internal/logger"
	"github.com/duskforge/isomesh/pkg/isomesh"
)

// shapeNames lists the super-primitive gallery entries offered by the panel.
var shapeNames = []string{"cube", "cylinder", "pill", "corridor", "torus"}

// ControlPanel renders the shape gallery, SDF parameters, simplifier
// options, and render toggles, and reports which buckets of state the
// user touched this frame so the caller knows what to recompute.
type ControlPanel struct {
	NumVertices  int
	NumTriangles int
}

// PanelResult reports which stages the control panel asked the caller to
// re-run this frame.
type PanelResult struct {
	ShapeChanged    bool
	SimplifyChanged bool
}

// Draw renders the control panel into the current ImGui frame, mutating
// cfg in place, and returns what changed.
func (p *ControlPanel) Draw(cfg *config.Config) PanelResult {
	var result PanelResult

	imgui.SetNextWindowPos(imgui.NewVec2(10, 10))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 0), imgui.CondFirstUseEver)

	if !imgui.BeginV("Isosurface Controls", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return result
	}

	imgui.Text(fmt.Sprintf("Vertices: %d  Triangles: %d", p.NumVertices, p.NumTriangles))
	imgui.Separator()

	if imgui.CollapsingHeaderTreeNodeFlagsV("Shape", imgui.TreeNodeFlagsDefaultOpen) {
		for i, name := range shapeNames {
			if i > 0 {
				imgui.SameLine()
			}
			if imgui.Button(name) {
				// shapeNames is in isomesh.Shape order.
				seed := isomesh.ConfigForShape(isomesh.Shape(i))
				cfg.Shape.Name = name
				cfg.Shape.S = [4]float32{seed.S.X, seed.S.Y, seed.S.Z, seed.S.W}
				cfg.Shape.R = [2]float32{seed.R.X, seed.R.Y}
				result.ShapeChanged = true
			}
		}

		if imgui.SliderFloatV("S.x", &cfg.Shape.S[0], 0.1, 4, "%.2f", imgui.SliderFlagsNone) {
			result.ShapeChanged = true
		}
		if imgui.SliderFloatV("S.y", &cfg.Shape.S[1], 0.1, 4, "%.2f", imgui.SliderFlagsNone) {
			result.ShapeChanged = true
		}
		if imgui.SliderFloatV("S.z", &cfg.Shape.S[2], 0.1, 4, "%.2f", imgui.SliderFlagsNone) {
			result.ShapeChanged = true
		}
		if imgui.SliderFloatV("S.w", &cfg.Shape.S[3], 0.1, 4, "%.2f", imgui.SliderFlagsNone) {
			result.ShapeChanged = true
		}
		if imgui.SliderFloatV("R.x", &cfg.Shape.R[0], 0, 2, "%.2f", imgui.SliderFlagsNone) {
			result.ShapeChanged = true
		}
		if imgui.SliderFloatV("R.y", &cfg.Shape.R[1], 0, 2, "%.2f", imgui.SliderFlagsNone) {
			result.ShapeChanged = true
		}
	}

	if imgui.CollapsingHeaderTreeNodeFlagsV("Simplification", imgui.TreeNodeFlagsDefaultOpen) {
		if imgui.SliderFloatV("Edge fraction", &cfg.Simplify.EdgeFraction, 0.01, 1.0, "%.3f", imgui.SliderFlagsNone) {
			result.SimplifyChanged = true
		}
		if imgui.SliderFloatV("Target %%", &cfg.Simplify.TargetPercentage, 0.01, 1.0, "%.2f", imgui.SliderFlagsNone) {
			result.SimplifyChanged = true
		}
		if imgui.SliderFloatV("Max error", &cfg.Simplify.MaxError, 0.01, 5.0, "%.2f", imgui.SliderFlagsNone) {
			result.SimplifyChanged = true
		}
		if imgui.SliderFloatV("Max edge size", &cfg.Simplify.MaxEdgeSize, 0.05, 5.0, "%.2f", imgui.SliderFlagsNone) {
			result.SimplifyChanged = true
		}
		if imgui.SliderFloatV("Min angle cos", &cfg.Simplify.MinAngleCosine, 0, 1, "%.2f", imgui.SliderFlagsNone) {
			result.SimplifyChanged = true
		}

		iterations := int32(cfg.Simplify.MaxIterations)
		if imgui.SliderIntV("Max iterations", &iterations, 1, 200, "%d", imgui.SliderFlagsNone) {
			cfg.Simplify.MaxIterations = int(iterations)
			result.SimplifyChanged = true
		}

		if imgui.ButtonV("Re-run simplifier", imgui.NewVec2(-1, 0)) {
			result.SimplifyChanged = true
		}
	}

	if imgui.CollapsingHeaderTreeNodeFlagsV("Render", imgui.TreeNodeFlagsDefaultOpen) {
		imgui.Checkbox("Wireframe overlay", &cfg.Graphics.Wireframe)
		imgui.Checkbox("Bounding box", &cfg.Graphics.ShowBBox)
		imgui.Text("F12: save screenshot")
	}

	imgui.Separator()
	if imgui.Button("Save config") {
		if err := cfg.Save(); err != nil {
			logger.Error("failed to save config", zap.Error(err))
		} else {
			logger.Info("config saved", zap.String("dir", config.ConfigDir()))
		}
	}

	imgui.End()
	return result
}
