package graphics

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// TextureDir is the asset directory textures are resolved from
const TextureDir = "textures"

// textureExtensions are tried in order when resolving a texture name
var textureExtensions = []string{".png", ".bmp", ".webp"}

// Texture is a GPU texture and its pixel dimensions
type Texture struct {
	Handle uint32
	Width  int
	Height int
}

// DecodeTexture resolves textures/<name>.<ext> in fsys and decodes it into
// row-major RGBA8 pixels with straight (non-premultiplied) alpha.
func DecodeTexture(fsys fs.FS, name string) (*image.NRGBA, error) {
	for _, ext := range textureExtensions {
		path := TextureDir + "/" + name + ext
		file, err := fsys.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to open texture file %s: %w", path, err)
		}

		img, _, err := image.Decode(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
		}
		return ToNRGBA(img), nil
	}
	return nil, fmt.Errorf("texture %q: %w", name, fs.ErrNotExist)
}

// ToNRGBA returns img as *image.NRGBA with its origin moved to (0, 0).
// Colour channels are not premultiplied by alpha.
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if nrgba, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return nrgba
	}
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	return nrgba
}
