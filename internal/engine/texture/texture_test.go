package texture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/Faultbox/terraview/internal/engine/gpu"
	"github.com/Faultbox/terraview/internal/engine/gpu/gputest"
)

func writeImage(t *testing.T, name string, encode func(*os.File, image.Image) error) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(3, 1, color.NRGBA{B: 255, A: 255})

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, encode(f, img))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		encode func(*os.File, image.Image) error
	}{
		{"png", "dirt.png", func(f *os.File, img image.Image) error { return png.Encode(f, img) }},
		{"bmp", "dirt.bmp", func(f *os.File, img image.Image) error { return bmp.Encode(f, img) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeImage(t, tt.file, tt.encode)

			img, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 4, 2), img.Bounds())
			assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(0, 0))
			assert.Equal(t, color.RGBA{B: 255, A: 255}, img.RGBAAt(3, 1))
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)

	garbage := filepath.Join(t.TempDir(), "garbage.webp")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0644))
	_, err = Load(garbage)
	assert.Error(t, err)
}

func TestToRGBAOffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 12, 13))
	src.SetRGBA(10, 10, color.RGBA{G: 200, A: 255})

	out := ToRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 2, 3), out.Bounds())
	assert.Equal(t, color.RGBA{G: 200, A: 255}, out.RGBAAt(0, 0))
}

func TestUpload(t *testing.T) {
	gl := gputest.New()
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))

	tex := Upload(gl, img)
	assert.NotZero(t, tex)
	assert.Equal(t, map[string]int{"texture": 1}, gl.Live())
	assert.Equal(t, 1, gl.Count("GenerateMipmap"))
	assert.Equal(t, 4, gl.Count("TexParameteri"))

	for _, c := range gl.Calls {
		if c.Name == "TexImage2DRGBA" {
			assert.Equal(t, []any{gpu.Texture2D, int32(8), int32(4), 8 * 4 * 4}, c.Args)
		}
	}
}
