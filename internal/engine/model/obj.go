package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/udhos/gwob"
	"go.uber.org/zap"

	"github.com/Faultbox/terraview/internal/logger"
)

// ErrNoNormals is returned for meshes without vertex normals.
var ErrNoNormals = errors.New("mesh has no normals")

// LoadOBJ reads a Wavefront OBJ file into a Mesh. Vertex normals are required
// since the mesh is lit.
func LoadOBJ(path string) (*Mesh, error) {
	obj, err := gwob.NewObjFromFile(path, &gwob.ObjParserOptions{
		Logger: func(msg string) { logger.Debug("obj parser", zap.String("file", path), zap.String("msg", msg)) },
	})
	if err != nil {
		return nil, fmt.Errorf("load obj %s: %w", path, err)
	}
	mesh, err := fromObj(obj)
	if err != nil {
		return nil, fmt.Errorf("load obj %s: %w", path, err)
	}

	logger.Info("mesh loaded",
		zap.String("file", path),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("indices", mesh.IndexCount()),
		zap.Int("groups", len(mesh.Groups)),
	)
	return mesh, nil
}

func fromObj(obj *gwob.Obj) (*Mesh, error) {
	if !obj.NormCoordFound {
		return nil, ErrNoNormals
	}
	stride := obj.StrideSize / 4
	if stride == 0 {
		return nil, errors.New("empty vertex stride")
	}
	posOff := obj.StrideOffsetPosition / 4
	normOff := obj.StrideOffsetNormal / 4

	count := len(obj.Coord) / stride
	mesh := &Mesh{Vertices: make([]float32, 0, count*FloatsPerVertex)}
	lo := mgl32.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	hi := mgl32.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}

	for v := range count {
		base := v * stride
		p := obj.Coord[base+posOff : base+posOff+3]
		n := obj.Coord[base+normOff : base+normOff+3]
		mesh.Vertices = append(mesh.Vertices, p[0], p[1], p[2], n[0], n[1], n[2])
		for i := range 3 {
			lo[i] = min(lo[i], p[i])
			hi[i] = max(hi[i], p[i])
		}
	}
	if count > 0 {
		mesh.Bounds = Bounds{Min: lo, Max: hi}
	}

	addGroup := func(name string, begin, n int) error {
		if n <= 0 {
			return nil
		}
		if begin < 0 || begin+n > len(obj.Indices) {
			return fmt.Errorf("group %q index range [%d,%d) out of bounds", name, begin, begin+n)
		}
		indices := make([]uint32, n)
		for i, idx := range obj.Indices[begin : begin+n] {
			if idx < 0 || idx >= count {
				return fmt.Errorf("group %q: index %d out of range", name, idx)
			}
			indices[i] = uint32(idx)
		}
		mesh.Groups = append(mesh.Groups, Group{Name: name, Indices: indices})
		return nil
	}

	for _, g := range obj.Groups {
		if err := addGroup(g.Name, g.IndexBegin, g.IndexCount); err != nil {
			return nil, err
		}
	}
	if len(mesh.Groups) == 0 {
		if err := addGroup("default", 0, len(obj.Indices)); err != nil {
			return nil, err
		}
	}
	if len(mesh.Groups) == 0 {
		return nil, errors.New("mesh has no faces")
	}
	return mesh, nil
}
