// Package texture decodes material texture images and caches their GPU
// handles with reference counting.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"io"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/tiff" // TIFF decoder registration
)

// Decode reads an image, choosing the TGA decoder by file extension since
// TGA has no magic number, and the registered decoders otherwise.
func Decode(r io.Reader, name string) (image.Image, string, error) {
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		img, err := DecodeTGA(r)
		return img, "tga", err
	}
	return image.Decode(r)
}

// Prepare converts img into the layout the GPU upload expects: RGBA, rows
// bottom-to-top, and no side longer than maxSize (0 disables downscaling).
func Prepare(img image.Image, maxSize int) *image.RGBA {
	b := img.Bounds()
	if maxSize > 0 && (b.Dx() > maxSize || b.Dy() > maxSize) {
		img = resize.Thumbnail(uint(maxSize), uint(maxSize), img, resize.Lanczos3)
	}
	rgba := ToRGBA(img)
	FlipVertical(rgba)
	return rgba
}

// ToRGBA converts any image to *image.RGBA anchored at the origin.
// An RGBA image already at the origin is returned as-is.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	return rgba
}

// FlipVertical mirrors img top-to-bottom in place. OpenGL samples texture
// row 0 as the bottom of the image.
func FlipVertical(img *image.RGBA) {
	h := img.Rect.Dy()
	row := img.Rect.Dx() * 4
	tmp := make([]byte, row)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : y*img.Stride+row]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-1-y)*img.Stride+row]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}

// DecodeBytes is Decode followed by Prepare for in-memory data.
func DecodeBytes(data []byte, name string, maxSize int) (*image.RGBA, error) {
	img, _, err := Decode(bytes.NewReader(data), name)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return Prepare(img, maxSize), nil
}
