package viewer

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/terraview/internal/config"
	"github.com/Faultbox/terraview/internal/engine/gpu"
	"github.com/Faultbox/terraview/internal/engine/model"
	"github.com/Faultbox/terraview/internal/engine/renderer"
	"github.com/Faultbox/terraview/internal/engine/shader"
	"github.com/Faultbox/terraview/internal/engine/terrain"
	"github.com/Faultbox/terraview/internal/logger"
	"github.com/Faultbox/terraview/internal/viewer/entity"
)

var teapotColor = mgl32.Vec3{1, 0, 0}

// Scene owns every entity of the world. Passes are destroyed together by
// Destroy, which must run before the GL context goes away.
type Scene struct {
	Heightmap *terrain.Heightmap
	Middle    float32

	Triangle *entity.Triangle
	Cubes    *entity.TexCube
	Teapots  []*entity.Teapot
	Sun      *entity.Sun

	passes    []renderer.Pass
	destroyed bool
}

// BuildScene samples the terrain and constructs the entities. Assets are
// decoded here; no GPU work happens until Init.
func BuildScene(cfg *config.Config) (*Scene, error) {
	sc := cfg.Scene
	heights := terrain.Build(sc.Seed, sc.Height,
		terrain.WithScale(sc.NoiseScale),
		terrain.WithOctaves(sc.NoiseOctaves),
	)
	hm := terrain.Sample(heights, sc.FloorSide, sc.CubeSize)
	middle := float32(sc.FloorSide) * sc.CubeSize / 2
	top := float32(sc.Height)

	s := &Scene{Heightmap: hm, Middle: middle}

	s.Triangle = entity.NewTriangle(entity.TriangleInstance{
		Center:       mgl32.Vec3{middle + 3, top + 1, middle + 3},
		Circumradius: sc.CubeSize,
	})

	voxels := hm.Voxels()
	cubes, err := entity.NewTexCube(voxels, sc.CubeSize, cfg.Assets.DirtTexture)
	if err != nil {
		return nil, fmt.Errorf("build floor: %w", err)
	}
	s.Cubes = cubes

	if len(sc.Teapots) > 0 {
		mesh, err := model.LoadOBJ(cfg.Assets.TeapotMesh)
		if err != nil {
			return nil, fmt.Errorf("build teapots: %w", err)
		}
		for _, off := range sc.Teapots {
			x, z := middle+off[0], middle+off[1]
			pos := mgl32.Vec3{x, hm.SurfaceY(x, z), z}
			s.Teapots = append(s.Teapots, entity.NewTeapot(mesh, pos, teapotColor))
			logger.Debug("teapot placed",
				zap.Any("position", pos),
				zap.Any("mesh_center", mesh.Bounds.Center()),
				zap.Any("mesh_size", mesh.Bounds.Max.Sub(mesh.Bounds.Min).Mul(entity.TeapotScale)),
			)
		}
	}

	sun, err := entity.NewSun(
		mgl32.Vec3{middle, top + cfg.Sun.HeightOffset, middle},
		cfg.Sun.Size,
		entity.Orbit{Radius: cfg.Sun.OrbitRadius, Period: cfg.Sun.OrbitPeriod.Duration},
		cfg.Assets.SunTexture,
	)
	if err != nil {
		return nil, fmt.Errorf("build sun: %w", err)
	}
	s.Sun = sun

	s.passes = append(s.passes, s.Triangle, s.Cubes)
	for _, tp := range s.Teapots {
		s.passes = append(s.passes, tp)
	}

	logger.Info("scene built",
		zap.Uint32("seed", sc.Seed),
		zap.Int("floor_side", sc.FloorSide),
		zap.Int("voxels", len(voxels)),
		zap.Any("bounds", hm.Bounds()),
		zap.Int("teapots", len(s.Teapots)),
	)
	return s, nil
}

// Passes returns every entity except the sun, in draw order.
func (s *Scene) Passes() []renderer.Pass { return slices.Clip(s.passes) }

// InitialUniforms returns the uniforms every lit entity starts with.
func InitialUniforms(cfg *config.Config) []shader.Uniform {
	return []shader.Uniform{
		shader.Lighting{Ambient: cfg.Lighting.Ambient, Specular: cfg.Lighting.Specular},
		shader.Fog{Near: cfg.Fog.Near, Far: cfg.Fog.Far, Color: mgl32.Vec3(cfg.Scene.ClearColor)},
		shader.LightingToggle{Enabled: cfg.Lighting.Enabled},
		shader.FogToggle{Enabled: cfg.Fog.Enabled},
	}
}

// Init initializes the entities with initial and the sun with no uniforms,
// which leaves it unlit and unfogged. On failure everything already
// initialized is destroyed.
func (s *Scene) Init(gl gpu.Functions, t renderer.Transforms, initial []shader.Uniform) error {
	var errs []error
	for _, p := range s.passes {
		if err := p.Init(gl, t, initial); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.Sun.Init(gl, t, nil); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		s.Destroy()
		return err
	}
	return nil
}

// Destroy releases every entity. Later calls do nothing.
func (s *Scene) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	for _, p := range s.passes {
		p.Destroy()
	}
	s.Sun.Destroy()
	logger.Debug("scene destroyed", zap.Int("passes", len(s.passes)+1))
}
