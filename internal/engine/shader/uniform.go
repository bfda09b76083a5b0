package shader

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/terraview/internal/engine/gpu"
)

// Uniform names shared by the scene shaders.
const (
	UniformAmbient         = "uAmbientStrength"
	UniformSpecular        = "uSpecularStrength"
	UniformLightPos        = "uLightPos"
	UniformEyePos          = "uEyePos"
	UniformFogNear         = "uFogNear"
	UniformFogFar          = "uFogFar"
	UniformFogColor        = "uFogColor"
	UniformLightingEnabled = "uLightingEnabled"
	UniformFogEnabled      = "uFogEnabled"
)

// Uniform is a shader input value that knows how to push itself into a program.
//
// The program must already be active. A program that does not declare the
// uniform ignores it.
type Uniform interface {
	Set(gl gpu.Functions, program uint32)
}

// Apply sets every uniform in order. Later values of the same uniform win.
func Apply(gl gpu.Functions, program uint32, uniforms []Uniform) {
	for _, u := range uniforms {
		u.Set(gl, program)
	}
}

// Lighting holds the Phong ambient and specular coefficients.
type Lighting struct {
	Ambient  float32
	Specular float32
}

func (l Lighting) Set(gl gpu.Functions, program uint32) {
	SetFloat(gl, program, UniformAmbient, l.Ambient)
	SetFloat(gl, program, UniformSpecular, l.Specular)
}

// LightPos is the light world position.
type LightPos struct{ Pos mgl32.Vec3 }

func (l LightPos) Set(gl gpu.Functions, program uint32) {
	SetVec3(gl, program, UniformLightPos, l.Pos)
}

// EyePos is the camera world position.
type EyePos struct{ Pos mgl32.Vec3 }

func (e EyePos) Set(gl gpu.Functions, program uint32) {
	SetVec3(gl, program, UniformEyePos, e.Pos)
}

// Fog holds linear fog distances and the color fragments fade into.
type Fog struct {
	Near  float32
	Far   float32
	Color mgl32.Vec3
}

func (f Fog) Set(gl gpu.Functions, program uint32) {
	SetFloat(gl, program, UniformFogNear, f.Near)
	SetFloat(gl, program, UniformFogFar, f.Far)
	SetVec3(gl, program, UniformFogColor, f.Color)
}

// LightingToggle switches diffuse and specular terms on or off.
type LightingToggle struct{ Enabled bool }

func (t LightingToggle) Set(gl gpu.Functions, program uint32) {
	SetInt(gl, program, UniformLightingEnabled, boolToInt(t.Enabled))
}

// FogToggle switches distance fog on or off.
type FogToggle struct{ Enabled bool }

func (t FogToggle) Set(gl gpu.Functions, program uint32) {
	SetInt(gl, program, UniformFogEnabled, boolToInt(t.Enabled))
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
