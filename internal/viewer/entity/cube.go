package entity

import (
	"github.com/go-gl/mathgl/mgl32"
)

// TexCube draws textured cubes, each as six squares.
type TexCube struct {
	*TexSquares
}

// NewTexCube builds one cube of the given side centered on every position.
func NewTexCube(positions []mgl32.Vec3, side float32, texturePath string) (*TexCube, error) {
	squares := make([]Square, 0, len(positions)*6)
	for _, p := range positions {
		faces := CubeFaces(p, side)
		squares = append(squares, faces[:]...)
	}
	ts, err := NewTexSquares("cubes", squares, texturePath)
	if err != nil {
		return nil, err
	}
	return &TexCube{TexSquares: ts}, nil
}

// CubeFaces returns the six faces of a cube centered on pos, ordered front
// (+Z), back (-Z), right (+X), left (-X), top (+Y), bottom (-Y). Corner
// order is chosen so every face normal points outward.
func CubeFaces(pos mgl32.Vec3, side float32) [6]Square {
	h := side / 2
	x, y, z := pos[0], pos[1], pos[2]
	return [6]Square{
		{BottomLeft: mgl32.Vec3{x + h, y + h, z + h}, TopRight: mgl32.Vec3{x - h, y - h, z + h}},
		{BottomLeft: mgl32.Vec3{x + h, y - h, z - h}, TopRight: mgl32.Vec3{x - h, y + h, z - h}},
		{BottomLeft: mgl32.Vec3{x + h, y - h, z + h}, TopRight: mgl32.Vec3{x + h, y + h, z - h}},
		{BottomLeft: mgl32.Vec3{x - h, y - h, z - h}, TopRight: mgl32.Vec3{x - h, y + h, z + h}},
		{BottomLeft: mgl32.Vec3{x - h, y + h, z + h}, TopRight: mgl32.Vec3{x + h, y + h, z - h}},
		{BottomLeft: mgl32.Vec3{x - h, y - h, z - h}, TopRight: mgl32.Vec3{x + h, y - h, z + h}},
	}
}
