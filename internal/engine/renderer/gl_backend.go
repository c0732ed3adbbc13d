package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/tractview/internal/engine/shader"
	"github.com/Faultbox/tractview/pkg/fiber"
)

const vertexStride = fiber.FloatsPerVertex * 4

// GLBackend implements Backend with OpenGL 4.1 core.
type GLBackend struct{}

// NewGLBackend returns the OpenGL backend. gl.Init must have been called.
func NewGLBackend() *GLBackend {
	return &GLBackend{}
}

// NewProgram compiles and links a shader program.
func (b *GLBackend) NewProgram(vertexSrc, fragmentSrc string) (Program, error) {
	p, err := shader.NewProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// NewVertexArray creates a VAO/VBO pair with position at location 0 and
// direction at location 1.
func (b *GLBackend) NewVertexArray() (VertexArray, error) {
	va := &glVertexArray{}

	gl.GenVertexArrays(1, &va.vao)
	gl.BindVertexArray(va.vao)

	gl.GenBuffers(1, &va.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, va.vbo)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, vertexStride, nil)
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, vertexStride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return va, nil
}

// SetBlending toggles alpha blending.
func (b *GLBackend) SetBlending(enabled bool) {
	if enabled {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		return
	}
	gl.Disable(gl.BLEND)
}

// SetLineWidth sets the rasterized line width. Core profiles may clamp it to 1.
func (b *GLBackend) SetLineWidth(width float32) {
	gl.LineWidth(width)
}

type glVertexArray struct {
	vao uint32
	vbo uint32
}

func (va *glVertexArray) Upload(vertices []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, va.vbo)
	if len(vertices) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (va *glVertexArray) DrawLineStrips(starts, counts []int32) {
	if len(starts) == 0 {
		return
	}
	gl.BindVertexArray(va.vao)
	gl.MultiDrawArrays(gl.LINE_STRIP, &starts[0], &counts[0], int32(len(starts)))
	gl.BindVertexArray(0)
}

func (va *glVertexArray) DrawLines(first, count int32) {
	gl.BindVertexArray(va.vao)
	gl.DrawArrays(gl.LINES, first, count)
	gl.BindVertexArray(0)
}

func (va *glVertexArray) Delete() {
	if va.vbo != 0 {
		gl.DeleteBuffers(1, &va.vbo)
		va.vbo = 0
	}
	if va.vao != 0 {
		gl.DeleteVertexArrays(1, &va.vao)
		va.vao = 0
	}
}
