// Package renderer draws scene graphs with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/eternal-forest/internal/engine/lighting"
	"github.com/Faultbox/eternal-forest/internal/engine/scene"
	"github.com/Faultbox/eternal-forest/internal/engine/shader"
	"github.com/Faultbox/eternal-forest/internal/logger"
	"github.com/Faultbox/eternal-forest/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [4]float32
	Sun        lighting.Sun
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config  Config
	log     *zap.Logger
	program *shader.Program

	// Uploaded meshes, keyed by the scene mesh they mirror.
	meshes map[*scene.Mesh]*gpuMesh

	// Scratch buffers for immediate geometry such as debug lines.
	streamVAO uint32
	streamVBO uint32
}

type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
}

const vertexShaderSource = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec4 aColor;

uniform mat4 uMVP;

uniform mat4 uModel;

out vec4 vColor;
out vec3 vWorld;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	vWorld = (uModel * vec4(aPos, 1.0)).xyz;
	vColor = aColor;
}
`

const fragmentShaderSource = `
#version 410 core

in vec4 vColor;
in vec3 vWorld;

uniform vec4 uTint;
uniform vec3 uSunDir;
uniform vec3 uSunDiffuse;
uniform vec3 uAmbient;
uniform float uLit;

out vec4 FragColor;

void main() {
	// Flat face normal from screen-space derivatives.
	vec3 n = normalize(cross(dFdx(vWorld), dFdy(vWorld)));
	float diffuse = abs(dot(n, uSunDir));
	vec3 light = mix(vec3(1.0), uAmbient + uSunDiffuse * diffuse, uLit);
	FragColor = vec4(vColor.rgb * light, vColor.a) * uTint;
}
`

// New creates a new renderer.
// Must be called after the OpenGL context exists.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
		meshes: make(map[*scene.Mesh]*gpuMesh),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.New(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	gl.GenVertexArrays(1, &r.streamVAO)
	gl.GenBuffers(1, &r.streamVBO)
	gl.BindVertexArray(r.streamVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.streamVBO)
	setVertexLayout()
	gl.BindVertexArray(0)

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer", zap.Int("meshes", len(r.meshes)))
	for mesh := range r.meshes {
		r.Release(mesh)
	}
	if r.streamVAO != 0 {
		gl.DeleteVertexArrays(1, &r.streamVAO)
	}
	if r.streamVBO != 0 {
		gl.DeleteBuffers(1, &r.streamVBO)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Aspect returns the viewport width over height.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.program.Use()
	r.program.SetVec4("uTint", [4]float32{1, 1, 1, 1})

	sun := r.config.Sun
	d := sun.Direction()
	gl.Uniform3f(r.program.Uniform("uSunDir"), d.X, d.Y, d.Z)
	gl.Uniform3f(r.program.Uniform("uSunDiffuse"), sun.Diffuse[0], sun.Diffuse[1], sun.Diffuse[2])
	gl.Uniform3f(r.program.Uniform("uAmbient"), sun.Ambient[0], sun.Ambient[1], sun.Ambient[2])
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
}

// Render draws every attached entity of graph and returns the number of
// draw calls issued.
func (r *Renderer) Render(graph *scene.Graph, viewProj math.Mat4) int {
	draws := 0
	r.program.SetFloat("uLit", 1)
	graph.VisitEntities(func(e *scene.Entity) {
		gm := r.upload(e.Mesh())
		if gm.count == 0 {
			return
		}
		model := e.Node().WorldMatrix()
		r.program.SetMat4("uModel", model)
		r.program.SetMat4("uMVP", viewProj.Mul(model))
		gl.BindVertexArray(gm.vao)
		gl.DrawElements(gl.TRIANGLES, gm.count, gl.UNSIGNED_INT, nil)
		draws++
	})
	return draws
}

// DrawLines draws a world-space line list.
func (r *Renderer) DrawLines(vertices []scene.Vertex, viewProj math.Mat4) {
	r.drawImmediate(gl.LINES, vertices, viewProj)
}

// DrawTriangles draws a world-space triangle list.
func (r *Renderer) DrawTriangles(vertices []scene.Vertex, viewProj math.Mat4) {
	r.drawImmediate(gl.TRIANGLES, vertices, viewProj)
}

func (r *Renderer) drawImmediate(mode uint32, vertices []scene.Vertex, viewProj math.Mat4) {
	if len(vertices) == 0 {
		return
	}
	r.program.SetFloat("uLit", 0)
	r.program.SetMat4("uModel", math.Identity())
	r.program.SetMat4("uMVP", viewProj)
	gl.BindVertexArray(r.streamVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.streamVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*scene.VertexStride, unsafe.Pointer(&vertices[0]), gl.STREAM_DRAW)
	gl.DrawArrays(mode, 0, int32(len(vertices)))
}

// Release frees the GPU copy of mesh, if any.
func (r *Renderer) Release(mesh *scene.Mesh) {
	gm, ok := r.meshes[mesh]
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &gm.vao)
	gl.DeleteBuffers(1, &gm.vbo)
	gl.DeleteBuffers(1, &gm.ebo)
	delete(r.meshes, mesh)
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

// upload returns the GPU copy of mesh, creating it on first use.
func (r *Renderer) upload(mesh *scene.Mesh) *gpuMesh {
	if gm, ok := r.meshes[mesh]; ok {
		return gm
	}

	gm := &gpuMesh{count: int32(len(mesh.Indices))}
	r.meshes[mesh] = gm
	if len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		gm.count = 0
		return gm
	}

	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*scene.VertexStride, unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &gm.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	setVertexLayout()
	gl.BindVertexArray(0)

	r.log.Debug("mesh uploaded",
		zap.String("mesh", mesh.Name),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", mesh.TriangleCount()),
	)
	return gm
}

// setVertexLayout describes scene.Vertex to the bound VAO.
func setVertexLayout() {
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, scene.VertexStride, scene.VertexPositionOffset)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, scene.VertexStride, scene.VertexColorOffset)
	gl.EnableVertexAttribArray(1)
}
