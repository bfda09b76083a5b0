// Package texture provides image decoding and GPU texture upload.
package texture

import (
	"bufio"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/Faultbox/terraview/internal/engine/gpu"
)

// Load decodes a PNG, JPEG, WebP or BMP file into RGBA.
func Load(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	rgba := ToRGBA(img)
	if rgba.Bounds().Empty() {
		return nil, fmt.Errorf("decode texture %s: empty %s image", path, format)
	}
	return rgba, nil
}

// ToRGBA converts any image.Image to *image.RGBA with its origin at (0, 0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// Upload creates a mipmapped, repeating 2D texture from img and leaves it bound.
func Upload(gl gpu.Functions, img *image.RGBA) uint32 {
	tex := gl.GenTexture()
	gl.BindTexture(gpu.Texture2D, tex)

	b := img.Bounds()
	gl.TexImage2DRGBA(gpu.Texture2D, int32(b.Dx()), int32(b.Dy()), img.Pix)

	gl.GenerateMipmap(gpu.Texture2D)
	gl.TexParameteri(gpu.Texture2D, gpu.TextureMinFilter, gpu.LinearMipmapLinear)
	gl.TexParameteri(gpu.Texture2D, gpu.TextureMagFilter, gpu.Linear)
	gl.TexParameteri(gpu.Texture2D, gpu.TextureWrapS, gpu.Repeat)
	gl.TexParameteri(gpu.Texture2D, gpu.TextureWrapT, gpu.Repeat)

	return tex
}
