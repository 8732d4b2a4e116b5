package texture

import (
	"bytes"
	"image/color"
	"testing"
)

func tgaHeader(imageType byte, width, height int, bpp byte, descriptor byte) []byte {
	h := make([]byte, tgaHeaderSize)
	h[2] = imageType
	h[12] = byte(width)
	h[13] = byte(width >> 8)
	h[14] = byte(height)
	h[15] = byte(height >> 8)
	h[16] = bpp
	h[17] = descriptor
	return h
}

func TestDecodeTGAUncompressed(t *testing.T) {
	// 2x2, 24-bit BGR, rows stored bottom-to-top.
	data := tgaHeader(TGATypeUncompressed, 2, 2, 24, 0)
	data = append(data,
		// bottom row: red, green
		0, 0, 255, 0, 255, 0,
		// top row: blue, white
		255, 0, 0, 255, 255, 255,
	)

	img, err := DecodeTGA(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 1, color.RGBA{255, 0, 0, 255}},
		{1, 1, color.RGBA{0, 255, 0, 255}},
		{0, 0, color.RGBA{0, 0, 255, 255}},
		{1, 0, color.RGBA{255, 255, 255, 255}},
	}
	for _, tt := range tests {
		if got := img.At(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDecodeTGARLETopToBottom(t *testing.T) {
	// 3x1, 32-bit: a run of two translucent red pixels and one raw green.
	data := tgaHeader(TGATypeRLE, 3, 1, 32, tgaDescriptorTopToBottom)
	data = append(data,
		0x81, 0, 0, 255, 128,
		0x00, 0, 255, 0, 255,
	)

	img, err := DecodeTGA(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	want := []color.RGBA{{255, 0, 0, 128}, {255, 0, 0, 128}, {0, 255, 0, 255}}
	for x, w := range want {
		if got := img.At(x, 0); got != w {
			t.Errorf("pixel %d = %v, want %v", x, got, w)
		}
	}
}

func TestDecodeTGAGray(t *testing.T) {
	data := tgaHeader(TGATypeGray, 1, 1, 8, 0)
	data = append(data, 77)

	img, err := DecodeTGA(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	if got, want := img.At(0, 0), (color.RGBA{77, 77, 77, 255}); got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
}

func TestDecodeTGAErrors(t *testing.T) {
	colorMapped := tgaHeader(1, 1, 1, 8, 0)
	colorMapped[1] = 1

	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, 2}},
		{"color mapped", colorMapped},
		{"unsupported type", tgaHeader(9, 1, 1, 8, 0)},
		{"bad bit depth", tgaHeader(TGATypeUncompressed, 1, 1, 16, 0)},
		{"bad gray depth", tgaHeader(TGATypeGray, 1, 1, 24, 0)},
		{"truncated pixels", append(tgaHeader(TGATypeUncompressed, 2, 2, 24, 0), 1, 2, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTGA(bytes.NewReader(tt.data)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
