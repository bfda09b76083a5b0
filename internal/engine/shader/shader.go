// Package shader provides OpenGL shader compilation and uniform utilities.
package shader

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/terraview/internal/engine/gpu"
	"github.com/Faultbox/terraview/internal/logger"
)

var (
	// ErrCompile is returned when a shader stage fails to compile.
	ErrCompile = errors.New("shader compile failed")
	// ErrLink is returned when a program fails to link.
	ErrLink = errors.New("program link failed")
)

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// Returns the program ID or an error if compilation/linking fails. The info
// log is logged at error level before returning.
func CompileProgram(gl gpu.Functions, vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(gl, vertexSrc, gpu.VertexShader, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(gl, fragmentSrc, gpu.FragmentShader, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	if ok, log := gl.ProgramStatus(program); !ok {
		logger.Error("program link failed", zap.Uint32("program", program), zap.String("log", log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("%w: %s", ErrLink, log)
	}

	logger.Debug("shader program created", zap.Uint32("program", program))
	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(gl gpu.Functions, source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	gl.ShaderSource(shader, source)
	gl.CompileShader(shader)

	if ok, log := gl.ShaderStatus(shader); !ok {
		logger.Error("shader compile failed", zap.String("stage", name), zap.String("log", log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %w: %s", name, ErrCompile, log)
	}

	return shader, nil
}

// Location returns the uniform location for the given name.
// Returns -1 if the uniform is not found or inactive.
func Location(gl gpu.Functions, program uint32, name string) int32 {
	return gl.GetUniformLocation(program, name)
}

// SetInt sets an int uniform on the active program. Missing uniforms are ignored.
func SetInt(gl gpu.Functions, program uint32, name string, v int32) {
	if loc := Location(gl, program, name); loc >= 0 {
		gl.Uniform1i(loc, v)
	}
}

// SetFloat sets a float uniform on the active program. Missing uniforms are ignored.
func SetFloat(gl gpu.Functions, program uint32, name string, v float32) {
	if loc := Location(gl, program, name); loc >= 0 {
		gl.Uniform1f(loc, v)
	}
}

// SetVec3 sets a vec3 uniform on the active program. Missing uniforms are ignored.
func SetVec3(gl gpu.Functions, program uint32, name string, v mgl32.Vec3) {
	if loc := Location(gl, program, name); loc >= 0 {
		gl.Uniform3f(loc, v.X(), v.Y(), v.Z())
	}
}

// SetMat4 sets a mat4 uniform on the active program. Missing uniforms are ignored.
func SetMat4(gl gpu.Functions, program uint32, name string, m mgl32.Mat4) {
	if loc := Location(gl, program, name); loc >= 0 {
		gl.UniformMatrix4fv(loc, m)
	}
}
