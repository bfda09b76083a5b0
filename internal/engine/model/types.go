// Package model loads triangle meshes for rendering.
package model

import "github.com/go-gl/mathgl/mgl32"

// FloatsPerVertex is the interleaved layout: position (3) then normal (3).
const FloatsPerVertex = 6

// Group is one named index range of a mesh.
type Group struct {
	Name    string
	Indices []uint32
}

// Mesh holds vertex data shared by its groups, ready for GPU upload.
type Mesh struct {
	Vertices []float32
	Groups   []Group
	Bounds   Bounds
}

// VertexCount returns the number of interleaved vertices.
func (m *Mesh) VertexCount() int { return len(m.Vertices) / FloatsPerVertex }

// IndexCount returns the total number of indices across groups.
func (m *Mesh) IndexCount() int {
	n := 0
	for _, g := range m.Groups {
		n += len(g.Indices)
	}
	return n
}

// Bounds holds the axis-aligned bounding box of the model.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Center returns the middle of the box.
func (b Bounds) Center() mgl32.Vec3 { return b.Min.Add(b.Max).Mul(0.5) }
