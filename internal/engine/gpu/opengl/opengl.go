// Package opengl implements gpu.Functions on top of the go-gl 4.1 core bindings.
package opengl

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/terraview/internal/engine/gpu"
)

// Functions forwards every call to the bound OpenGL context.
type Functions struct{}

var _ gpu.Functions = Functions{}

// New loads the GL function pointers.
// IMPORTANT: Must be called AFTER the OpenGL context is current!
func New() (Functions, error) {
	if err := gl.Init(); err != nil {
		return Functions{}, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	return Functions{}, nil
}

func (Functions) GetString(name uint32) string {
	p := gl.GetString(name)
	if p == nil {
		return ""
	}
	return gl.GoStr(p)
}

func (Functions) Enable(capability uint32)            { gl.Enable(capability) }
func (Functions) Viewport(x, y, width, height int32)  { gl.Viewport(x, y, width, height) }
func (Functions) ClearColor(r, g, b, a float32)       { gl.ClearColor(r, g, b, a) }
func (Functions) Clear(mask uint32)                   { gl.Clear(mask) }
func (Functions) CreateShader(kind uint32) uint32     { return gl.CreateShader(kind) }
func (Functions) CompileShader(shader uint32)         { gl.CompileShader(shader) }
func (Functions) DeleteShader(shader uint32)          { gl.DeleteShader(shader) }
func (Functions) CreateProgram() uint32               { return gl.CreateProgram() }
func (Functions) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }
func (Functions) LinkProgram(program uint32)          { gl.LinkProgram(program) }
func (Functions) UseProgram(program uint32)           { gl.UseProgram(program) }
func (Functions) DeleteProgram(program uint32)        { gl.DeleteProgram(program) }

func (Functions) ShaderSource(shader uint32, source string) {
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
}

func (Functions) ShaderStatus(shader uint32) (bool, string) {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status != gl.FALSE {
		return true, ""
	}
	var logLen int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
	return false, readLog(logLen, func(buf *uint8) { gl.GetShaderInfoLog(shader, logLen, nil, buf) })
}

func (Functions) ProgramStatus(program uint32) (bool, string) {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status != gl.FALSE {
		return true, ""
	}
	var logLen int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
	return false, readLog(logLen, func(buf *uint8) { gl.GetProgramInfoLog(program, logLen, nil, buf) })
}

func readLog(logLen int32, fill func(*uint8)) string {
	if logLen <= 0 {
		return ""
	}
	log := make([]byte, logLen)
	fill(&log[0])
	return strings.TrimRight(string(log), "\x00")
}

func (Functions) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (Functions) Uniform1i(location int32, v int32)         { gl.Uniform1i(location, v) }
func (Functions) Uniform1f(location int32, v float32)       { gl.Uniform1f(location, v) }
func (Functions) Uniform3f(location int32, x, y, z float32) { gl.Uniform3f(location, x, y, z) }

func (Functions) UniformMatrix4fv(location int32, m [16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (Functions) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (Functions) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (Functions) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (Functions) GenBuffer() uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return buf
}

func (Functions) BindBuffer(target, buffer uint32) { gl.BindBuffer(target, buffer) }

func (Functions) BufferDataFloat32(target uint32, data []float32, usage uint32) {
	if len(data) == 0 {
		gl.BufferData(target, 0, nil, usage)
		return
	}
	gl.BufferData(target, len(data)*4, unsafe.Pointer(&data[0]), usage)
}

func (Functions) BufferDataUint32(target uint32, data []uint32, usage uint32) {
	if len(data) == 0 {
		gl.BufferData(target, 0, nil, usage)
		return
	}
	gl.BufferData(target, len(data)*4, unsafe.Pointer(&data[0]), usage)
}

func (Functions) BufferSubDataFloat32(target uint32, offset int, data []float32) {
	if len(data) == 0 {
		return
	}
	gl.BufferSubData(target, offset, len(data)*4, unsafe.Pointer(&data[0]))
}

func (Functions) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (Functions) VertexAttribPointer(index uint32, size int32, stride int32, offset int) {
	gl.VertexAttribPointerWithOffset(index, size, gl.FLOAT, false, stride, uintptr(offset))
}

func (Functions) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (Functions) GenTexture() uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	return tex
}

func (Functions) BindTexture(target, texture uint32) { gl.BindTexture(target, texture) }

func (Functions) TexImage2DRGBA(target uint32, width, height int32, pixels []byte) {
	var ptr unsafe.Pointer
	if len(pixels) > 0 {
		ptr = unsafe.Pointer(&pixels[0])
	}
	gl.TexImage2D(target, 0, gl.RGBA, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, ptr)
}

func (Functions) TexParameteri(target, name uint32, value int32) {
	gl.TexParameteri(target, name, value)
}

func (Functions) GenerateMipmap(target uint32) { gl.GenerateMipmap(target) }

func (Functions) DeleteTexture(texture uint32) { gl.DeleteTextures(1, &texture) }

func (Functions) DrawArrays(mode uint32, first, count int32) { gl.DrawArrays(mode, first, count) }

func (Functions) DrawElements(mode uint32, count int32) {
	gl.DrawElementsWithOffset(mode, count, gl.UNSIGNED_INT, 0)
}

func (Functions) ReadPixels(x, y, width, height int32) []byte {
	pixels := make([]byte, int(width)*int(height)*4)
	if len(pixels) == 0 {
		return pixels
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(x, y, width, height, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels
}
