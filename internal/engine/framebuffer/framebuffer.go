// Package framebuffer provides the offscreen render target the model
// browser draws its preview into.
package framebuffer

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/objview/internal/texture"
)

// Framebuffer is an RGBA8 colour texture plus a 24-bit depth renderbuffer.
// The colour texture can be handed to ImGui as an image.
type Framebuffer struct {
	fbo   uint32
	color uint32
	depth uint32

	width, height int32
}

// New creates a framebuffer of at least 1x1 pixels.
func New(width, height int32) (*Framebuffer, error) {
	fb := &Framebuffer{}
	fb.width, fb.height = clampSize(width, height)

	gl.GenFramebuffers(1, &fb.fbo)
	gl.GenTextures(1, &fb.color)
	gl.GenRenderbuffers(1, &fb.depth)

	gl.BindTexture(gl.TEXTURE_2D, fb.color)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	fb.allocate()

	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fb.color, 0)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, fb.depth)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		fb.Destroy()
		return nil, fmt.Errorf("creating framebuffer: incomplete (0x%x)", status)
	}
	return fb, nil
}

// allocate (re)creates attachment storage at the current size.
func (fb *Framebuffer) allocate() {
	gl.BindTexture(gl.TEXTURE_2D, fb.color)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, fb.width, fb.height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.BindRenderbuffer(gl.RENDERBUFFER, fb.depth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, fb.width, fb.height)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
}

// clampSize keeps both dimensions at 1 or more.
func clampSize(width, height int32) (int32, int32) {
	return max(width, 1), max(height, 1)
}

// BindWithViewport makes the framebuffer the render target and sizes the
// viewport to it. The returned function restores the previous target and
// viewport.
func (fb *Framebuffer) BindWithViewport() (restore func()) {
	var prevFBO int32
	var prevViewport [4]int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prevFBO)
	gl.GetIntegerv(gl.VIEWPORT, &prevViewport[0])

	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.Viewport(0, 0, fb.width, fb.height)

	return func() {
		gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prevFBO))
		gl.Viewport(prevViewport[0], prevViewport[1], prevViewport[2], prevViewport[3])
	}
}

// ColorTexture returns the colour attachment's texture name.
func (fb *Framebuffer) ColorTexture() uint32 { return fb.color }

// Size returns the framebuffer dimensions.
func (fb *Framebuffer) Size() (width, height int32) { return fb.width, fb.height }

// Resize reallocates the attachments when the size changes.
func (fb *Framebuffer) Resize(width, height int32) {
	width, height = clampSize(width, height)
	if width == fb.width && height == fb.height {
		return
	}
	fb.width, fb.height = width, height
	fb.allocate()
}

// ReadImage reads the colour attachment into an image with the origin at
// the top-left.
func (fb *Framebuffer) ReadImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(fb.width), int(fb.height)))

	restore := fb.BindWithViewport()
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, fb.width, fb.height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	restore()

	texture.FlipVertical(img)
	return img
}

// Snapshot writes the colour attachment to w as PNG.
func (fb *Framebuffer) Snapshot(w io.Writer) error {
	if err := png.Encode(w, fb.ReadImage()); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return nil
}

// Destroy releases the GL objects. It is safe to call more than once.
func (fb *Framebuffer) Destroy() {
	if fb.fbo != 0 {
		gl.DeleteFramebuffers(1, &fb.fbo)
		fb.fbo = 0
	}
	if fb.color != 0 {
		gl.DeleteTextures(1, &fb.color)
		fb.color = 0
	}
	if fb.depth != 0 {
		gl.DeleteRenderbuffers(1, &fb.depth)
		fb.depth = 0
	}
}
