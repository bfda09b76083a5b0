// Package terrain provides procedural height fields and voxel column layout.
package terrain

import (
	"github.com/aquilax/go-perlin"
)

// Noise parameters.
const (
	DefaultScale   = 0.01 // smaller = larger, smoother hills
	DefaultOctaves = 1

	// go-perlin weighting between successive octaves.
	alpha = 2.0
	beta  = 2.0
)

// HeightFn returns the integer terrain height of column (x, z).
type HeightFn func(x, z int) int

type options struct {
	scale   float64
	octaves int
}

// Option configures Build.
type Option func(*options)

// WithScale sets the sampling frequency. Non-positive values are ignored.
func WithScale(scale float64) Option {
	return func(o *options) {
		if scale > 0 {
			o.scale = scale
		}
	}
}

// WithOctaves sets how many noise octaves are summed. Values below 1 are ignored.
func WithOctaves(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.octaves = n
		}
	}
}

// Build returns a deterministic height function seeded with seed.
//
// The noise is centered on a midline of amplitudeBasis/2 with the same
// amplitude, so heights span roughly 0..amplitudeBasis. Results are clamped
// into [0, amplitudeBasis] and truncated toward zero. A non-positive basis
// yields a flat field at 0.
func Build(seed uint32, amplitudeBasis int, opts ...Option) HeightFn {
	o := options{scale: DefaultScale, octaves: DefaultOctaves}
	for _, opt := range opts {
		opt(&o)
	}
	if amplitudeBasis <= 0 {
		return func(int, int) int { return 0 }
	}

	noise := perlin.NewPerlin(alpha, beta, int32(o.octaves), int64(seed))
	amplitude := float64(amplitudeBasis) / 2
	top := float64(amplitudeBasis)

	return func(x, z int) int {
		h := noise.Noise2D(float64(x)*o.scale, float64(z)*o.scale)*amplitude + amplitude
		switch {
		case h < 0:
			h = 0
		case h > top:
			h = top
		}
		return int(h)
	}
}
