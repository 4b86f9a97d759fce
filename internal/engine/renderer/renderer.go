// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/duskforge/isomesh/internal/engine/debug"
	"github.com/duskforge/isomesh/internal/engine/shader"
	"github.com/duskforge/isomesh/internal/logger"
	"github.com/duskforge/isomesh/pkg/isomesh"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	VSync  bool
}

// Renderer handles all OpenGL rendering for the current mesh.
type Renderer struct {
	config Config

	shaderProgram uint32
	uViewProjLoc  int32
	uWireframeLoc int32

	meshVAO    uint32
	meshVBO    uint32
	meshEBO    uint32
	indexCount int32

	bboxVAO         uint32
	bboxVBO         uint32
	bboxVertexCount int32
	showBBox        bool

	wireframe bool
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)

	var err error
	r.shaderProgram, err = createShaderProgram()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.uViewProjLoc = shader.MustGetUniform(r.shaderProgram, "uViewProj")
	r.uWireframeLoc = shader.MustGetUniform(r.shaderProgram, "uWireframe")

	gl.GenVertexArrays(1, &r.meshVAO)
	gl.GenBuffers(1, &r.meshVBO)
	gl.GenBuffers(1, &r.meshEBO)

	gl.GenVertexArrays(1, &r.bboxVAO)
	gl.GenBuffers(1, &r.bboxVBO)

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.meshVAO != 0 {
		gl.DeleteVertexArrays(1, &r.meshVAO)
	}
	if r.meshVBO != 0 {
		gl.DeleteBuffers(1, &r.meshVBO)
	}
	if r.meshEBO != 0 {
		gl.DeleteBuffers(1, &r.meshEBO)
	}
	if r.bboxVAO != 0 {
		gl.DeleteVertexArrays(1, &r.bboxVAO)
	}
	if r.bboxVBO != 0 {
		gl.DeleteBuffers(1, &r.bboxVBO)
	}
	if r.shaderProgram != 0 {
		gl.DeleteProgram(r.shaderProgram)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// SetWireframe toggles the wireframe overlay pass.
func (r *Renderer) SetWireframe(enabled bool) {
	r.wireframe = enabled
}

// SetShowBBox toggles the bounding-box overlay pass.
func (r *Renderer) SetShowBBox(enabled bool) {
	r.showBBox = enabled
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	// Nothing to do for now - batched draws would be flushed here.
}

// UploadMesh replaces the GPU-side copy of the mesh with buf's current
// contents. Vertices are interleaved as position (vec3) + normal (vec3);
// the homogeneous W component of each is dropped on upload.
func (r *Renderer) UploadMesh(buf *isomesh.Buffer) {
	const floatsPerVertex = 6

	data := make([]float32, 0, len(buf.Vertices)*floatsPerVertex)
	for _, v := range buf.Vertices {
		data = append(data,
			v.Position.X, v.Position.Y, v.Position.Z,
			v.Normal.X, v.Normal.Y, v.Normal.Z,
		)
	}

	indices := make([]uint32, 0, len(buf.Triangles)*3)
	for _, tri := range buf.Triangles {
		indices = append(indices, tri.Indices[0], tri.Indices[1], tri.Indices[2])
	}
	r.indexCount = int32(len(indices))

	r.uploadBBox(buf)

	gl.BindVertexArray(r.meshVAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.meshVBO)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.DYNAMIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
	}

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.meshEBO)
	if len(indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.DYNAMIC_DRAW)
	} else {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
	}

	stride := int32(floatsPerVertex * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	logger.Debug("mesh uploaded",
		zap.Int("vertices", len(buf.Vertices)),
		zap.Int("triangles", len(buf.Triangles)),
	)
}

// uploadBBox recomputes buf's axis-aligned bounds and re-uploads the
// wireframe box line geometry that outlines them.
func (r *Renderer) uploadBBox(buf *isomesh.Buffer) {
	if len(buf.Vertices) == 0 {
		r.bboxVertexCount = 0
		return
	}

	min := buf.Vertices[0].Position
	max := buf.Vertices[0].Position
	for _, v := range buf.Vertices[1:] {
		p := v.Position
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.Z < min.Z {
			min.Z = p.Z
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
		if p.Z > max.Z {
			max.Z = p.Z
		}
	}

	verts := debug.GenerateBBoxWireframeVertices(min.X, min.Y, min.Z, max.X, max.Y, max.Z)
	r.bboxVertexCount = int32(len(verts) / 3)

	gl.BindVertexArray(r.bboxVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.bboxVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, unsafe.Pointer(&verts[0]), gl.DYNAMIC_DRAW)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// DrawBBox draws the current mesh's bounding-box overlay, when enabled,
// using the shaded program's flat wireframe colour path.
func (r *Renderer) DrawBBox(viewProj [16]float32) {
	if !r.showBBox || r.bboxVertexCount == 0 {
		return
	}

	gl.UseProgram(r.shaderProgram)
	gl.UniformMatrix4fv(r.uViewProjLoc, 1, false, &viewProj[0])
	gl.Uniform1i(r.uWireframeLoc, 1)

	gl.BindVertexArray(r.bboxVAO)
	gl.DrawArrays(gl.LINES, 0, r.bboxVertexCount)
	gl.BindVertexArray(0)
}

// CapturePixels reads back the current framebuffer's colour buffer as
// tightly packed RGBA8 rows, bottom-to-top as OpenGL delivers them.
func (r *Renderer) CapturePixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels
}

// DrawMesh issues the shaded pass, and a depth-biased wireframe overlay
// pass when enabled, for a view-projection matrix supplied as 16
// column-major floats.
func (r *Renderer) DrawMesh(viewProj [16]float32) {
	if r.indexCount == 0 {
		return
	}

	gl.UseProgram(r.shaderProgram)
	gl.UniformMatrix4fv(r.uViewProjLoc, 1, false, &viewProj[0])

	gl.BindVertexArray(r.meshVAO)

	gl.Uniform1i(r.uWireframeLoc, 0)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	gl.DrawElements(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, nil)

	if r.wireframe {
		gl.Uniform1i(r.uWireframeLoc, 1)
		gl.Enable(gl.POLYGON_OFFSET_LINE)
		gl.PolygonOffset(-1.0, -1.0)
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		gl.DrawElements(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, nil)
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
		gl.Disable(gl.POLYGON_OFFSET_LINE)
	}

	gl.BindVertexArray(0)
}

// createShaderProgram creates the mesh shading program: a directional-light
// diffuse term over the vertex normal, with a uniform flag that flattens the
// output to a solid overlay color for the wireframe pass.
func createShaderProgram() (uint32, error) {
	vertexShaderSource := `
		#version 410 core

		layout (location = 0) in vec3 aPos;
		layout (location = 1) in vec3 aNormal;

		uniform mat4 uViewProj;

		out vec3 vertexNormal;

		void main() {
			gl_Position = uViewProj * vec4(aPos, 1.0);
			vertexNormal = aNormal;
		}
	`

	fragmentShaderSource := `
		#version 410 core

		in vec3 vertexNormal;
		out vec4 FragColor;

		uniform bool uWireframe;

		void main() {
			if (uWireframe) {
				FragColor = vec4(0.05, 0.85, 0.95, 1.0);
				return;
			}
			vec3 lightDir = normalize(vec3(0.4, 0.8, 0.5));
			float diffuse = max(dot(normalize(vertexNormal), lightDir), 0.0);
			vec3 base = vec3(0.65, 0.68, 0.72);
			vec3 color = base * (0.25 + 0.75 * diffuse);
			FragColor = vec4(color, 1.0);
		}
	`

	program, err := shader.CompileProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return 0, err
	}

	logger.Debug("shader program created", zap.Uint32("program", program))
	return program, nil
}
