package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
)

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x), uint8(y), 0, 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeRegisteredFormats(t *testing.T) {
	src := gradient(4, 2)

	var bmpBuf bytes.Buffer
	if err := bmp.Encode(&bmpBuf, src); err != nil {
		t.Fatalf("bmp.Encode: %v", err)
	}

	tests := []struct {
		name       string
		data       []byte
		wantFormat string
	}{
		{"wood.png", encodePNG(t, src), "png"},
		{"wood.bmp", bmpBuf.Bytes(), "bmp"},
		{"WOOD.TGA", append(tgaHeader(TGATypeGray, 1, 1, 8, 0), 9), "tga"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, format, err := Decode(bytes.NewReader(tt.data), tt.name)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if format != tt.wantFormat {
				t.Errorf("format = %q, want %q", format, tt.wantFormat)
			}
		})
	}
}

func TestFlipVertical(t *testing.T) {
	img := gradient(2, 3)
	FlipVertical(img)

	for y := 0; y < 3; y++ {
		if got := img.RGBAAt(1, y).G; got != uint8(2-y) {
			t.Errorf("row %d green = %d, want %d", y, got, 2-y)
		}
	}
}

func TestPrepareDownscales(t *testing.T) {
	out := Prepare(gradient(64, 16), 32)
	if got := out.Rect; got != image.Rect(0, 0, 32, 8) {
		t.Errorf("bounds = %v, want 32x8", got)
	}

	same := Prepare(gradient(8, 8), 0)
	if same.Rect.Dx() != 8 || same.Rect.Dy() != 8 {
		t.Errorf("maxSize 0 changed size to %v", same.Rect)
	}
}

func TestToRGBAOffsetImage(t *testing.T) {
	sub := gradient(4, 4).SubImage(image.Rect(2, 2, 4, 4))
	out := ToRGBA(sub)

	if out.Rect.Min != (image.Point{}) || out.Rect.Dx() != 2 {
		t.Fatalf("bounds = %v, want origin-anchored 2x2", out.Rect)
	}
	if got := out.RGBAAt(0, 0); got.R != 2 || got.G != 2 {
		t.Errorf("origin pixel = %v, want source (2,2)", got)
	}
}

func TestDecodeBytesError(t *testing.T) {
	if _, err := DecodeBytes([]byte("not an image"), "x.png", 0); err == nil {
		t.Error("expected decode error")
	}
}
