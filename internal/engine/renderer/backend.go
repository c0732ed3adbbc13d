package renderer

import "github.com/Faultbox/tractview/pkg/math"

// Backend creates and drives the GPU resources the fiber renderer needs.
// All calls must be made on the thread owning the GL context.
type Backend interface {
	NewProgram(vertexSrc, fragmentSrc string) (Program, error)
	NewVertexArray() (VertexArray, error)
	SetBlending(enabled bool)
	SetLineWidth(width float32)
}

// Program is a linked shader program. Setters ignore unknown uniform names.
type Program interface {
	Use()
	SetMat4(name string, m math.Mat4)
	SetInt(name string, v int32)
	SetFloat(name string, v float32)
	SetVec3(name string, x, y, z float32)
	Delete()
}

// VertexArray owns a vertex buffer of interleaved position/direction floats.
type VertexArray interface {
	// Upload replaces the buffer contents.
	Upload(vertices []float32)
	// DrawLineStrips issues one batched draw of len(starts) line strips.
	DrawLineStrips(starts, counts []int32)
	// DrawLines draws count vertices as independent segments.
	DrawLines(first, count int32)
	Delete()
}
