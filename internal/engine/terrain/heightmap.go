package terrain

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Heightmap is a square grid of column heights sampled once from a HeightFn.
type Heightmap struct {
	Heights  [][]int // [x][z]
	Side     int     // columns per axis
	CubeSize float32 // world size of one voxel
}

// Bounds holds the axis-aligned bounding box of the terrain.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Sample evaluates fn over side x side columns starting at the origin.
func Sample(fn HeightFn, side int, cubeSize float32) *Heightmap {
	if side < 0 {
		side = 0
	}
	heights := make([][]int, side)
	for x := range side {
		heights[x] = make([]int, side)
		for z := range side {
			heights[x][z] = fn(x, z)
		}
	}
	return &Heightmap{Heights: heights, Side: side, CubeSize: cubeSize}
}

// HeightAt returns the column height, clamping the coordinates into the grid.
func (h *Heightmap) HeightAt(x, z int) int {
	if h.Side == 0 {
		return 0
	}
	x = clampIndex(x, h.Side)
	z = clampIndex(z, h.Side)
	return h.Heights[x][z]
}

// SurfaceY returns the world height of the top face of the column under (x, z).
// Voxels are centered on their grid point, so the top face sits half a cube
// above the highest one.
func (h *Heightmap) SurfaceY(x, z float32) float32 {
	col := func(v float32) int { return int(v / h.CubeSize) }
	return (float32(h.HeightAt(col(x), col(z))) + 0.5) * h.CubeSize
}

// Voxels returns the world position of every voxel, each column filled
// from y=0 up to and including its height.
func (h *Heightmap) Voxels() []mgl32.Vec3 {
	var out []mgl32.Vec3
	for x := range h.Side {
		for z := range h.Side {
			for y := 0; y <= h.Heights[x][z]; y++ {
				out = append(out, mgl32.Vec3{float32(x), float32(y), float32(z)}.Mul(h.CubeSize))
			}
		}
	}
	return out
}

// Bounds returns the box enclosing every voxel. Voxels are centered on their
// grid point, so the box starts half a cube before the origin.
func (h *Heightmap) Bounds() Bounds {
	b := Bounds{}
	if h.Side == 0 {
		return b
	}
	top := 0
	for x := range h.Side {
		for z := range h.Side {
			top = max(top, h.Heights[x][z])
		}
	}
	s := h.CubeSize
	half := mgl32.Vec3{s, s, s}.Mul(0.5)
	b.Min = half.Mul(-1)
	b.Max = mgl32.Vec3{float32(h.Side) * s, float32(top+1) * s, float32(h.Side) * s}.Sub(half)
	return b
}

func clampIndex(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
