package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

// TGA image types.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeGray         = 3  // Uncompressed grayscale
	TGATypeRLE          = 10 // RLE compressed true-color
	TGATypeRLEGray      = 11 // RLE compressed grayscale
)

const (
	tgaHeaderSize            = 18
	tgaDescriptorTopToBottom = 0x20
)

var errTGATruncated = errors.New("TGA pixel data truncated")

// DecodeTGA decodes a TGA image. Supports true-color (24/32 bit) and
// grayscale (8 bit) images, uncompressed or RLE compressed, which covers the
// files exporters commonly reference from MTL libraries.
func DecodeTGA(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&tgaDescriptorTopToBottom != 0

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}

	gray := imageType == TGATypeGray || imageType == TGATypeRLEGray
	switch {
	case imageType != TGATypeUncompressed && imageType != TGATypeRLE && !gray:
		return nil, fmt.Errorf("unsupported TGA type %d", imageType)
	case gray && bpp != 8:
		return nil, fmt.Errorf("unsupported grayscale TGA bit depth %d", bpp)
	case !gray && bpp != 24 && bpp != 32:
		return nil, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", bpp)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}

	px := tgaPixels{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		data:        data[offset:],
		size:        bpp / 8,
		width:       width,
		height:      height,
		topToBottom: topToBottom,
	}
	if imageType == TGATypeRLE || imageType == TGATypeRLEGray {
		err = px.decodeRLE()
	} else {
		err = px.decodeRaw()
	}
	if err != nil {
		return nil, err
	}
	return px.img, nil
}

// tgaPixels walks TGA pixel data in file order and writes it into img.
type tgaPixels struct {
	img           *image.RGBA
	data          []byte
	pos           int // Read offset into data
	size          int // Bytes per pixel
	width, height int
	topToBottom   bool
	written       int
}

func (p *tgaPixels) next() (color.RGBA, error) {
	if p.pos+p.size > len(p.data) {
		return color.RGBA{}, errTGATruncated
	}
	d := p.data[p.pos : p.pos+p.size]
	p.pos += p.size

	switch p.size {
	case 1:
		return color.RGBA{R: d[0], G: d[0], B: d[0], A: 255}, nil
	case 3:
		return color.RGBA{R: d[2], G: d[1], B: d[0], A: 255}, nil
	default:
		return color.RGBA{R: d[2], G: d[1], B: d[0], A: d[3]}, nil
	}
}

// put stores c at the next pixel position. TGA rows run bottom-to-top
// unless the descriptor says otherwise.
func (p *tgaPixels) put(c color.RGBA) {
	x := p.written % p.width
	y := p.written / p.width
	if !p.topToBottom {
		y = p.height - 1 - y
	}
	p.img.SetRGBA(x, y, c)
	p.written++
}

func (p *tgaPixels) total() int { return p.width * p.height }

func (p *tgaPixels) decodeRaw() error {
	for p.written < p.total() {
		c, err := p.next()
		if err != nil {
			return err
		}
		p.put(c)
	}
	return nil
}

// decodeRLE stops quietly at the end of data; missing pixels stay transparent.
func (p *tgaPixels) decodeRLE() error {
	for p.written < p.total() && p.pos < len(p.data) {
		packet := p.data[p.pos]
		p.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			c, err := p.next()
			if err != nil {
				return nil
			}
			for i := 0; i < count && p.written < p.total(); i++ {
				p.put(c)
			}
			continue
		}

		for i := 0; i < count && p.written < p.total(); i++ {
			c, err := p.next()
			if err != nil {
				return nil
			}
			p.put(c)
		}
	}
	return nil
}
