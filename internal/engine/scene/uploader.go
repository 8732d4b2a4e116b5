package scene

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/objview/internal/texture"
)

// GLUploader creates mipmapped, repeating 2D textures. It implements
// texture.Uploader and must be used on the GL thread.
type GLUploader struct {
	Anisotropy float32 // 0 leaves anisotropic filtering off
}

// Upload copies img into a new texture object.
func (u GLUploader) Upload(img *image.RGBA) (texture.Handle, error) {
	w, h := int32(img.Rect.Dx()), int32(img.Rect.Dy())
	if w == 0 || h == 0 {
		return 0, errors.New("empty image")
	}

	var id uint32
	gl.GenTextures(1, &id)
	if id == 0 {
		return 0, errors.New("glGenTextures returned no name")
	}
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	if u.Anisotropy > 0 {
		gl.TexParameterf(gl.TEXTURE_2D, gl.TEXTURE_MAX_ANISOTROPY, u.Anisotropy)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteTextures(1, &id)
		return 0, fmt.Errorf("texture upload: GL error 0x%x", code)
	}
	return texture.Handle(id), nil
}

// Delete frees a texture created by Upload.
func (GLUploader) Delete(h texture.Handle) {
	id := uint32(h)
	if id != 0 {
		gl.DeleteTextures(1, &id)
	}
}
