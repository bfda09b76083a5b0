// Package entity holds the scene objects the viewer draws. Each one is a
// render pass that owns its program, geometry and optional texture.
package entity

import (
	_ "embed"
)

var (
	//go:embed shaders/color.vert.glsl
	colorVertexShader string
	//go:embed shaders/color.frag.glsl
	colorFragmentShader string

	//go:embed shaders/textured.vert.glsl
	texturedVertexShader string
	//go:embed shaders/textured.frag.glsl
	texturedFragmentShader string

	//go:embed shaders/teapot.vert.glsl
	teapotVertexShader string
	//go:embed shaders/teapot.frag.glsl
	teapotFragmentShader string
)
