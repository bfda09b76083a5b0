// Package gputest provides an in-memory gpu.Functions for tests.
package gputest

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Faultbox/terraview/internal/engine/gpu"
)

// Call is one recorded GL call.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string { return fmt.Sprintf("%s%v", c.Name, c.Args) }

// Draw captures the state a draw call was issued with.
type Draw struct {
	Mode    uint32
	First   int32
	Count   int32
	Indexed bool
	Program uint32
	VAO     uint32
	Texture uint32
}

type uniformKey struct {
	program  uint32
	location int32
}

// Recorder is a fake GL context. It hands out increasing handles, keeps
// buffer contents and uniform values, and records every call in order.
//
// Only uniform names passed to Declare resolve to a location; everything
// else resolves to -1, like an inactive uniform on a real driver.
type Recorder struct {
	Calls []Call
	Draws []Draw

	// FailCompile makes every shader whose source contains the string fail to compile.
	FailCompile string
	// FailLink makes every program link fail.
	FailLink bool

	declared map[string]bool
	values   map[uniformKey]any
	locs     map[uint32]map[string]int32

	nextHandle uint32
	live       map[uint32]string
	doubleFree int

	program  uint32
	vao      uint32
	texture  uint32
	bound    map[uint32]uint32
	buffers  map[uint32][]float32
	indices  map[uint32][]uint32
	sources  map[uint32]string
	enabled  map[uint32]bool
	viewport [4]int32
	clear    [4]float32
}

var _ gpu.Functions = (*Recorder)(nil)

// New returns an empty recorder that resolves the given uniform names.
func New(uniforms ...string) *Recorder {
	r := &Recorder{
		declared: map[string]bool{},
		values:   map[uniformKey]any{},
		locs:     map[uint32]map[string]int32{},
		live:     map[uint32]string{},
		bound:    map[uint32]uint32{},
		buffers:  map[uint32][]float32{},
		indices:  map[uint32][]uint32{},
		sources:  map[uint32]string{},
		enabled:  map[uint32]bool{},
	}
	r.Declare(uniforms...)
	return r
}

// Declare makes the given uniform names resolvable in every program.
func (r *Recorder) Declare(names ...string) {
	for _, n := range names {
		r.declared[n] = true
	}
}

// Reset forgets recorded calls and draws but keeps GL state.
func (r *Recorder) Reset() {
	r.Calls = nil
	r.Draws = nil
}

// Count returns how many times the named call was recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Names returns the recorded call names in order.
func (r *Recorder) Names() []string {
	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.Name
	}
	return out
}

// Uniform returns the last value written to the named uniform of program.
// Values are int32, float32, [3]float32 or [16]float32.
func (r *Recorder) Uniform(program uint32, name string) (any, bool) {
	loc, ok := r.locs[program][name]
	if !ok {
		return nil, false
	}
	v, ok := r.values[uniformKey{program, loc}]
	return v, ok
}

// Buffer returns the float contents of a buffer object.
func (r *Recorder) Buffer(buffer uint32) []float32 { return r.buffers[buffer] }

// Indices returns the index contents of a buffer object.
func (r *Recorder) Indices(buffer uint32) []uint32 { return r.indices[buffer] }

// Live returns the handles that were created and not yet deleted, by kind.
func (r *Recorder) Live() map[string]int {
	out := map[string]int{}
	for _, kind := range r.live {
		out[kind]++
	}
	return out
}

// DoubleFrees counts deletions of handles that were not live.
func (r *Recorder) DoubleFrees() int { return r.doubleFree }

// Enabled reports whether a capability was enabled.
func (r *Recorder) Enabled(capability uint32) bool { return r.enabled[capability] }

// ViewportRect returns the last viewport rectangle.
func (r *Recorder) ViewportRect() [4]int32 { return r.viewport }

// CurrentProgram returns the program bound by the last UseProgram.
func (r *Recorder) CurrentProgram() uint32 { return r.program }

func (r *Recorder) record(name string, args ...any) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

func (r *Recorder) alloc(kind string) uint32 {
	r.nextHandle++
	r.live[r.nextHandle] = kind
	return r.nextHandle
}

func (r *Recorder) free(kind string, handle uint32) {
	if got, ok := r.live[handle]; ok && got == kind {
		delete(r.live, handle)
		return
	}
	r.doubleFree++
}

func (r *Recorder) GetString(name uint32) string {
	r.record("GetString", name)
	switch name {
	case gpu.Vendor:
		return "gputest"
	case gpu.Renderer:
		return "recorder"
	case gpu.Version:
		return "4.1 fake"
	case gpu.ShadingLanguageVersion:
		return "4.10"
	}
	return ""
}

func (r *Recorder) Enable(capability uint32) {
	r.record("Enable", capability)
	r.enabled[capability] = true
}

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.record("Viewport", x, y, width, height)
	r.viewport = [4]int32{x, y, width, height}
}

func (r *Recorder) ClearColor(cr, cg, cb, ca float32) {
	r.record("ClearColor", cr, cg, cb, ca)
	r.clear = [4]float32{cr, cg, cb, ca}
}

func (r *Recorder) Clear(mask uint32) { r.record("Clear", mask) }

func (r *Recorder) CreateShader(kind uint32) uint32 {
	h := r.alloc("shader")
	r.record("CreateShader", kind)
	return h
}

func (r *Recorder) ShaderSource(shader uint32, source string) {
	r.record("ShaderSource", shader)
	r.sources[shader] = source
}

func (r *Recorder) CompileShader(shader uint32) { r.record("CompileShader", shader) }

func (r *Recorder) ShaderStatus(shader uint32) (bool, string) {
	r.record("ShaderStatus", shader)
	if r.FailCompile != "" && strings.Contains(r.sources[shader], r.FailCompile) {
		return false, "0:1(1): error: syntax error"
	}
	return true, ""
}

func (r *Recorder) DeleteShader(shader uint32) {
	r.record("DeleteShader", shader)
	r.free("shader", shader)
}

func (r *Recorder) CreateProgram() uint32 {
	h := r.alloc("program")
	r.record("CreateProgram")
	return h
}

func (r *Recorder) AttachShader(program, shader uint32) { r.record("AttachShader", program, shader) }
func (r *Recorder) LinkProgram(program uint32)          { r.record("LinkProgram", program) }

func (r *Recorder) ProgramStatus(program uint32) (bool, string) {
	r.record("ProgramStatus", program)
	if r.FailLink {
		return false, "error: linking failed"
	}
	return true, ""
}

func (r *Recorder) UseProgram(program uint32) {
	r.record("UseProgram", program)
	r.program = program
}

func (r *Recorder) DeleteProgram(program uint32) {
	r.record("DeleteProgram", program)
	r.free("program", program)
}

func (r *Recorder) GetUniformLocation(program uint32, name string) int32 {
	r.record("GetUniformLocation", program, name)
	if !r.declared[name] {
		return -1
	}
	locs := r.locs[program]
	if locs == nil {
		locs = map[string]int32{}
		r.locs[program] = locs
	}
	loc, ok := locs[name]
	if !ok {
		loc = int32(len(locs))
		locs[name] = loc
	}
	return loc
}

func (r *Recorder) setUniform(call string, location int32, v any) {
	r.record(call, location, v)
	if location < 0 {
		return
	}
	r.values[uniformKey{r.program, location}] = v
}

func (r *Recorder) Uniform1i(location int32, v int32)   { r.setUniform("Uniform1i", location, v) }
func (r *Recorder) Uniform1f(location int32, v float32) { r.setUniform("Uniform1f", location, v) }

func (r *Recorder) Uniform3f(location int32, x, y, z float32) {
	r.setUniform("Uniform3f", location, [3]float32{x, y, z})
}

func (r *Recorder) UniformMatrix4fv(location int32, m [16]float32) {
	r.setUniform("UniformMatrix4fv", location, m)
}

func (r *Recorder) GenVertexArray() uint32 {
	h := r.alloc("vao")
	r.record("GenVertexArray")
	return h
}

func (r *Recorder) BindVertexArray(vao uint32) {
	r.record("BindVertexArray", vao)
	r.vao = vao
}

func (r *Recorder) DeleteVertexArray(vao uint32) {
	r.record("DeleteVertexArray", vao)
	r.free("vao", vao)
}

func (r *Recorder) GenBuffer() uint32 {
	h := r.alloc("buffer")
	r.record("GenBuffer")
	return h
}

func (r *Recorder) BindBuffer(target, buffer uint32) {
	r.record("BindBuffer", target, buffer)
	r.bound[target] = buffer
}

func (r *Recorder) BufferDataFloat32(target uint32, data []float32, usage uint32) {
	r.record("BufferDataFloat32", target, len(data), usage)
	r.buffers[r.bound[target]] = slices.Clone(data)
}

func (r *Recorder) BufferDataUint32(target uint32, data []uint32, usage uint32) {
	r.record("BufferDataUint32", target, len(data), usage)
	r.indices[r.bound[target]] = slices.Clone(data)
}

func (r *Recorder) BufferSubDataFloat32(target uint32, offset int, data []float32) {
	r.record("BufferSubDataFloat32", target, offset, len(data))
	buf := r.buffers[r.bound[target]]
	copy(buf[offset/4:], data)
}

func (r *Recorder) DeleteBuffer(buffer uint32) {
	r.record("DeleteBuffer", buffer)
	r.free("buffer", buffer)
}

func (r *Recorder) VertexAttribPointer(index uint32, size int32, stride int32, offset int) {
	r.record("VertexAttribPointer", index, size, stride, offset)
}

func (r *Recorder) EnableVertexAttribArray(index uint32) {
	r.record("EnableVertexAttribArray", index)
}

func (r *Recorder) GenTexture() uint32 {
	h := r.alloc("texture")
	r.record("GenTexture")
	return h
}

func (r *Recorder) BindTexture(target, texture uint32) {
	r.record("BindTexture", target, texture)
	r.texture = texture
}

func (r *Recorder) TexImage2DRGBA(target uint32, width, height int32, pixels []byte) {
	r.record("TexImage2DRGBA", target, width, height, len(pixels))
}

func (r *Recorder) TexParameteri(target, name uint32, value int32) {
	r.record("TexParameteri", target, name, value)
}

func (r *Recorder) GenerateMipmap(target uint32) { r.record("GenerateMipmap", target) }

func (r *Recorder) DeleteTexture(texture uint32) {
	r.record("DeleteTexture", texture)
	r.free("texture", texture)
}

func (r *Recorder) DrawArrays(mode uint32, first, count int32) {
	r.record("DrawArrays", mode, first, count)
	r.Draws = append(r.Draws, Draw{Mode: mode, First: first, Count: count,
		Program: r.program, VAO: r.vao, Texture: r.texture})
}

func (r *Recorder) DrawElements(mode uint32, count int32) {
	r.record("DrawElements", mode, count)
	r.Draws = append(r.Draws, Draw{Mode: mode, Count: count, Indexed: true,
		Program: r.program, VAO: r.vao, Texture: r.texture})
}

// ReadPixels returns a buffer filled with the clear color.
func (r *Recorder) ReadPixels(x, y, width, height int32) []byte {
	r.record("ReadPixels", x, y, width, height)
	px := make([]byte, int(width)*int(height)*4)
	for i := 0; i < len(px); i += 4 {
		px[i] = byte(r.clear[0] * 255)
		px[i+1] = byte(r.clear[1] * 255)
		px[i+2] = byte(r.clear[2] * 255)
		px[i+3] = byte(r.clear[3] * 255)
	}
	return px
}
