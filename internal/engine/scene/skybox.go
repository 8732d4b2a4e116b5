package scene

import (
	"fmt"
	"image"
	"path"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/engine/shader"
	"github.com/Faultbox/objview/internal/texture"
)

// Skybox draws a cube-mapped background centred on the camera.
type Skybox struct {
	program *shader.Program
	vao     uint32
	vbo     uint32
	cubeMap uint32
}

// NewSkybox loads the six SkyboxFaces from dir and uploads them as a cube map.
func NewSkybox(src texture.Source, dir string, maxSize int, log *zap.Logger) (*Skybox, error) {
	if log == nil {
		log = zap.NewNop()
	}
	faces, err := readCubeFaces(src, dir, maxSize)
	if err != nil {
		return nil, err
	}
	program, err := shader.Load(shader.SkyboxProgram)
	if err != nil {
		return nil, fmt.Errorf("skybox shader: %w", err)
	}

	s := &Skybox{program: program}
	s.cubeMap = uploadCubeMap(faces)

	gl.GenVertexArrays(1, &s.vao)
	gl.BindVertexArray(s.vao)
	gl.GenBuffers(1, &s.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(skyboxVertices)*4, gl.Ptr(&skyboxVertices[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.BindVertexArray(0)

	log.Info("skybox loaded", zap.String("dir", dir), zap.Int("faceSize", faces[0].Rect.Dx()))
	return s, nil
}

// readCubeFaces decodes the six face images in cube-map order.
func readCubeFaces(src texture.Source, dir string, maxSize int) ([6]*image.RGBA, error) {
	var faces [6]*image.RGBA
	for i, name := range SkyboxFaces {
		p := path.Join(dir, name)
		f, err := src.Open(p)
		if err != nil {
			return faces, fmt.Errorf("skybox face %s: %w", p, err)
		}
		img, _, err := texture.Decode(f, p)
		f.Close()
		if err != nil {
			return faces, fmt.Errorf("skybox face %s: %w", p, err)
		}
		rgba := texture.Prepare(img, maxSize)
		texture.FlipVertical(rgba) // Cube-map faces are sampled top-down
		faces[i] = rgba
	}
	return faces, nil
}

func uploadCubeMap(faces [6]*image.RGBA) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	for i, img := range faces {
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA,
			int32(img.Rect.Dx()), int32(img.Rect.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return id
}

// Render draws the skybox without writing depth, so it must come before
// the rest of the scene.
func (s *Skybox) Render(view, projection mgl32.Mat4) {
	gl.DepthMask(false)
	s.program.Use()
	s.program.SetInt("uCubeMap", 0)
	s.program.SetMat4("uProjection", projection)
	s.program.SetMat4("uView", skyboxView(view))

	gl.BindVertexArray(s.vao)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, s.cubeMap)
	gl.DrawArrays(gl.TRIANGLES, 0, 36)
	gl.BindVertexArray(0)
	gl.DepthMask(true)
}

// Destroy releases all resources.
func (s *Skybox) Destroy() {
	if s.vao != 0 {
		gl.DeleteVertexArrays(1, &s.vao)
	}
	if s.vbo != 0 {
		gl.DeleteBuffers(1, &s.vbo)
	}
	if s.cubeMap != 0 {
		gl.DeleteTextures(1, &s.cubeMap)
	}
	s.program.Delete()
}
