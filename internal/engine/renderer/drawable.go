package renderer

import (
	"github.com/Faultbox/terraview/internal/engine/gpu"
)

// Drawable is one group of geometry owned by a pass.
// The set of implementations is closed: Elements and Arrays.
type Drawable interface {
	draw(gl gpu.Functions)
	release(gl gpu.Functions)
}

// Attrib describes one float vertex attribute.
type Attrib struct {
	Index uint32
	Size  int32
}

// Elements is indexed geometry drawn as triangles with one call.
type Elements struct {
	VAO, VBO, EBO uint32
	IndexCount    int32
}

// Arrays is non-indexed geometry drawn as Len runs of Count vertices,
// run i starting at vertex i*Offset.
type Arrays struct {
	VAO, VBO uint32
	Len      int
	Offset   int32
	Count    int32
	Mode     uint32
}

func (e *Elements) draw(gl gpu.Functions) {
	gl.BindVertexArray(e.VAO)
	gl.BindBuffer(gpu.ArrayBuffer, e.VBO)
	gl.BindBuffer(gpu.ElementArrayBuffer, e.EBO)
	gl.DrawElements(gpu.Triangles, e.IndexCount)
}

func (e *Elements) release(gl gpu.Functions) {
	gl.DeleteBuffer(e.EBO)
	gl.DeleteBuffer(e.VBO)
	gl.DeleteVertexArray(e.VAO)
}

func (a *Arrays) draw(gl gpu.Functions) {
	gl.BindVertexArray(a.VAO)
	gl.BindBuffer(gpu.ArrayBuffer, a.VBO)
	for i := 0; i < a.Len; i++ {
		gl.DrawArrays(a.Mode, int32(i)*a.Offset, a.Count)
	}
}

func (a *Arrays) release(gl gpu.Functions) {
	gl.DeleteBuffer(a.VBO)
	gl.DeleteVertexArray(a.VAO)
}

// NewElements uploads interleaved vertices and indices.
func NewElements(gl gpu.Functions, vertices []float32, indices []uint32, attribs []Attrib) *Elements {
	vao, vbo := uploadVertices(gl, vertices, attribs, gpu.StaticDraw)

	ebo := gl.GenBuffer()
	gl.BindBuffer(gpu.ElementArrayBuffer, ebo)
	gl.BufferDataUint32(gpu.ElementArrayBuffer, indices, gpu.StaticDraw)

	gl.BindVertexArray(0)
	return &Elements{VAO: vao, VBO: vbo, EBO: ebo, IndexCount: int32(len(indices))}
}

// NewArrays uploads interleaved vertices made of runs of perRun vertices.
func NewArrays(gl gpu.Functions, vertices []float32, attribs []Attrib, usage, mode uint32, perRun int32) *Arrays {
	vao, vbo := uploadVertices(gl, vertices, attribs, usage)
	gl.BindVertexArray(0)

	n := 0
	if stride := floatsPerVertex(attribs); stride > 0 && perRun > 0 {
		n = len(vertices) / stride / int(perRun)
	}
	return &Arrays{VAO: vao, VBO: vbo, Len: n, Offset: perRun, Count: perRun, Mode: mode}
}

// uploadVertices creates a VAO and VBO and describes the attributes.
// The VAO is left bound.
func uploadVertices(gl gpu.Functions, vertices []float32, attribs []Attrib, usage uint32) (vao, vbo uint32) {
	vao = gl.GenVertexArray()
	gl.BindVertexArray(vao)

	vbo = gl.GenBuffer()
	gl.BindBuffer(gpu.ArrayBuffer, vbo)
	gl.BufferDataFloat32(gpu.ArrayBuffer, vertices, usage)

	stride := int32(floatsPerVertex(attribs) * 4)
	offset := 0
	for _, a := range attribs {
		gl.VertexAttribPointer(a.Index, a.Size, stride, offset)
		gl.EnableVertexAttribArray(a.Index)
		offset += int(a.Size) * 4
	}
	return vao, vbo
}

func floatsPerVertex(attribs []Attrib) int {
	n := 0
	for _, a := range attribs {
		n += int(a.Size)
	}
	return n
}
