// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/pcdview/internal/engine/pointcloud"
	"github.com/Faultbox/pcdview/internal/engine/shader"
	"github.com/Faultbox/pcdview/internal/logger"
	"github.com/Faultbox/pcdview/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background pointcloud.Color
	PointColor pointcloud.Color // Used for clouds without per-point colors
	PointSize  float32          // World-space size, attenuated with distance
}

// Renderer draws point clouds as GL_POINTS.
type Renderer struct {
	config  Config
	log     *zap.Logger
	program *shader.Program

	vao    uint32
	vbo    uint32
	points int32
}

const pointVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;

uniform mat4 uView;
uniform mat4 uProjection;
uniform float uPointSize;
uniform float uScale;

out vec3 vColor;

void main() {
	vec4 viewPos = uView * vec4(aPos, 1.0);
	gl_Position = uProjection * viewPos;
	gl_PointSize = max(1.0, uPointSize * uScale / -viewPos.z);
	vColor = aColor;
}
`

const pointFragmentShader = `
#version 410 core

in vec3 vColor;
out vec4 FragColor;

void main() {
	FragColor = vec4(vColor, 1.0);
}
`

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
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
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	bg := cfg.Background
	gl.ClearColor(bg.R, bg.G, bg.B, 1.0)

	var err error
	r.program, err = shader.Compile(pointVertexShader, pointFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create point shader: %w", err)
	}
	r.log.Debug("shader program created", zap.Uint32("program", r.program.ID))

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, nil)
	gl.EnableVertexAttribArray(0)

	// Color attribute (location = 1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Upload replaces the vertex buffer contents with cloud.
func (r *Renderer) Upload(cloud *pointcloud.Cloud) {
	data := cloud.Interleaved(r.config.PointColor)
	r.points = int32(cloud.Len())

	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.log.Debug("point cloud uploaded",
		zap.String("name", cloud.Name),
		zap.Int32("points", r.points),
		zap.Uint32("vbo", r.vbo),
	)
}

// Resize handles window resize. width and height are in framebuffer pixels.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders the uploaded cloud.
func (r *Renderer) Draw(view, projection math.Mat4) {
	if r.points == 0 {
		return
	}
	r.program.Use()
	r.program.SetMat4("uView", view)
	r.program.SetMat4("uProjection", projection)
	r.program.SetFloat("uPointSize", r.config.PointSize)
	r.program.SetFloat("uScale", float32(r.config.Height)/2)

	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.POINTS, 0, r.points)
	gl.BindVertexArray(0)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.Flush()
}

// ReadPixels returns the framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	if width <= 0 || height <= 0 {
		return nil, 0, 0
	}
	pixels = make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, width, height
}
