package entity

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/terraview/internal/engine/gpu"
	"github.com/Faultbox/terraview/internal/engine/renderer"
	"github.com/Faultbox/terraview/internal/engine/shader"
	"github.com/Faultbox/terraview/internal/engine/texture"
)

// SquareVertexFloats is the interleaved layout: position (3), uv (2), normal (3).
const SquareVertexFloats = 8

var squareAttribs = []renderer.Attrib{
	{Index: 0, Size: 3}, // position
	{Index: 1, Size: 2}, // textureCoord
	{Index: 2, Size: 3}, // normal
}

// SquareVertex is one corner of a square.
type SquareVertex struct {
	Position mgl32.Vec3
	UV       mgl32.Vec2
	Normal   mgl32.Vec3
}

// Square is an axis-aligned quad given by two opposite corners. Exactly one
// axis must be equal in both corners.
type Square struct {
	BottomLeft mgl32.Vec3
	TopRight   mgl32.Vec3
}

// Corners returns the four corners in triangle strip order, before any
// winding correction.
func (s Square) Corners() [4]mgl32.Vec3 {
	lo := mgl32.Vec3{min(s.BottomLeft[0], s.TopRight[0]), min(s.BottomLeft[1], s.TopRight[1]), min(s.BottomLeft[2], s.TopRight[2])}
	hi := mgl32.Vec3{max(s.BottomLeft[0], s.TopRight[0]), max(s.BottomLeft[1], s.TopRight[1]), max(s.BottomLeft[2], s.TopRight[2])}

	switch {
	case s.BottomLeft[0] == s.TopRight[0]:
		return [4]mgl32.Vec3{
			{lo[0], lo[1], lo[2]},
			{lo[0], hi[1], lo[2]},
			{lo[0], lo[1], hi[2]},
			{lo[0], hi[1], hi[2]},
		}
	case s.BottomLeft[1] == s.TopRight[1]:
		return [4]mgl32.Vec3{
			{lo[0], lo[1], lo[2]},
			{lo[0], lo[1], hi[2]},
			{hi[0], lo[1], lo[2]},
			{hi[0], lo[1], hi[2]},
		}
	default:
		return [4]mgl32.Vec3{
			{lo[0], lo[1], hi[2]},
			{lo[0], hi[1], hi[2]},
			{hi[0], lo[1], hi[2]},
			{hi[0], hi[1], hi[2]},
		}
	}
}

// Vertices returns the strip vertices with texture coordinates and a shared
// normal. The middle two corners swap when the corner order describes a face
// that would otherwise point inward, so the normal follows the winding.
func (s Square) Vertices() [4]SquareVertex {
	c := s.Corners()
	bl, tl, br, tr := c[0], c[1], c[2], c[3]

	var flip bool
	switch {
	case s.BottomLeft[0] == s.TopRight[0], s.BottomLeft[1] == s.TopRight[1]:
		flip = s.BottomLeft[2] < s.TopRight[2]
	default:
		flip = s.BottomLeft[1] > s.TopRight[1]
	}
	if flip {
		tl, br = br, tl
	}

	n := tl.Sub(bl).Cross(br.Sub(bl)).Normalize()
	return [4]SquareVertex{
		{bl, mgl32.Vec2{0, 0}, n},
		{tl, mgl32.Vec2{0, 1}, n},
		{br, mgl32.Vec2{1, 0}, n},
		{tr, mgl32.Vec2{1, 1}, n},
	}
}

func (v SquareVertex) appendTo(dst []float32) []float32 {
	return append(dst,
		v.Position[0], v.Position[1], v.Position[2],
		v.UV[0], v.UV[1],
		v.Normal[0], v.Normal[1], v.Normal[2],
	)
}

// TexSquares draws a set of textured squares as 4-vertex strips.
type TexSquares struct {
	renderer.Handle

	squares []Square
	image   *image.RGBA
}

// NewTexSquares decodes the texture, if any, at construction so a missing
// asset fails before any GPU work.
func NewTexSquares(name string, squares []Square, texturePath string) (*TexSquares, error) {
	ts := &TexSquares{
		Handle:  renderer.Handle{Name: name},
		squares: squares,
	}
	if texturePath != "" {
		img, err := texture.Load(texturePath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		ts.image = img
	}
	return ts, nil
}

// Len returns the number of squares.
func (ts *TexSquares) Len() int { return len(ts.squares) }

func (ts *TexSquares) Init(gl gpu.Functions, t renderer.Transforms, uniforms []shader.Uniform) error {
	return ts.Handle.Init(gl, t, uniforms, func(gl gpu.Functions) (renderer.Resources, error) {
		program, err := shader.CompileProgram(gl, texturedVertexShader, texturedFragmentShader)
		if err != nil {
			return renderer.Resources{}, err
		}
		arrays := renderer.NewArrays(gl, ts.vertexData(), squareAttribs, gpu.StaticDraw, gpu.TriangleStrip, 4)

		var tex uint32
		if ts.image != nil {
			tex = texture.Upload(gl, ts.image)
		}
		return renderer.Resources{Program: program, Texture: tex, Drawables: []renderer.Drawable{arrays}}, nil
	})
}

func (ts *TexSquares) vertexData() []float32 {
	data := make([]float32, 0, len(ts.squares)*4*SquareVertexFloats)
	for _, s := range ts.squares {
		for _, v := range s.Vertices() {
			data = v.appendTo(data)
		}
	}
	return data
}
