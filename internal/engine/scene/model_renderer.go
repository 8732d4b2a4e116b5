// Package scene draws a loaded OBJ model with its reference grid and skybox.
package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/engine/shader"
	"github.com/Faultbox/objview/internal/texture"
	"github.com/Faultbox/objview/pkg/objmodel"
)

// Texture units bound per material slot.
var slotUniforms = [objmodel.TextureSlotCount]struct {
	sampler string
	has     string
}{
	objmodel.DiffuseTexture:  {"uDiffuseTexture", "uHasDiffuse"},
	objmodel.SpecularTexture: {"uSpecularTexture", "uHasSpecular"},
	objmodel.NormalTexture:   {"uNormalTexture", "uHasNormal"},
}

// gpuMesh is one objmodel.Mesh uploaded to vertex and index buffers.
type gpuMesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
	material   int
	name       string
}

// ModelRenderer uploads an objmodel.Model to the GPU and draws it with the
// obj program.
type ModelRenderer struct {
	program  *shader.Program
	textures *texture.Manager
	log      *zap.Logger

	model  *objmodel.Model
	meshes []gpuMesh
	sets   []texture.TextureSet

	LightDir mgl32.Vec3
}

// NewModelRenderer compiles the obj program. Textures are resolved through
// textures, which the caller owns.
func NewModelRenderer(textures *texture.Manager, log *zap.Logger) (*ModelRenderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	program, err := shader.Load(shader.ObjProgram)
	if err != nil {
		return nil, fmt.Errorf("model shader: %w", err)
	}
	return &ModelRenderer{
		program:  program,
		textures: textures,
		log:      log,
		LightDir: mgl32.Vec3{-1, -1, -1}.Normalize(),
	}, nil
}

// SetModel replaces the drawn model, uploading its meshes and loading the
// textures its materials reference. A nil or unloaded model clears the
// renderer.
func (mr *ModelRenderer) SetModel(m *objmodel.Model) {
	mr.Clear()
	if m == nil || !m.IsLoaded() {
		return
	}
	mr.model = m
	for i := 0; i < m.MeshCount(); i++ {
		mesh := m.MeshByIndex(i)
		if len(mesh.Indices) == 0 {
			continue
		}
		mr.meshes = append(mr.meshes, uploadMesh(mesh))
	}
	if mr.textures != nil {
		mr.sets = mr.textures.BindMaterials(m)
	}
	mr.log.Debug("model uploaded",
		zap.String("file", m.Filename()),
		zap.Int("meshes", len(mr.meshes)),
		zap.Int("materials", len(mr.sets)))
}

// Model returns the model being drawn, or nil.
func (mr *ModelRenderer) Model() *objmodel.Model {
	return mr.model
}

func uploadMesh(mesh *objmodel.Mesh) gpuMesh {
	gm := gpuMesh{
		indexCount: int32(len(mesh.Indices)),
		material:   mesh.MaterialIndex,
		name:       mesh.Name,
	}

	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*objmodel.VertexStride, unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 4, gl.FLOAT, false, objmodel.VertexStride, objmodel.PositionOffset)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, objmodel.VertexStride, objmodel.NormalOffset)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, objmodel.VertexStride, objmodel.UVOffset)

	gl.GenBuffers(1, &gm.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return gm
}

// Render draws every mesh. projView is Projection * View and cameraPos the
// camera's world position.
func (mr *ModelRenderer) Render(projView mgl32.Mat4, cameraPos mgl32.Vec3) {
	if mr.model == nil || len(mr.meshes) == 0 {
		return
	}

	p := mr.program
	p.Use()
	p.SetMat4("uProjectionView", projView)
	p.SetMat4("uModel", mr.model.WorldMatrix())
	p.SetVec4("uCameraPos", cameraPos.Vec4(1))
	p.SetVec3("uLightDir", mr.LightDir)
	for slot, u := range slotUniforms {
		p.SetInt(u.sampler, int32(slot))
	}

	for _, gm := range mr.meshes {
		mat := mr.model.MaterialByIndex(gm.material)
		ka, kd, ks := materialColors(mat)
		p.SetVec4("kA", ka)
		p.SetVec4("kD", kd)
		p.SetVec4("kS", ks)

		var set texture.TextureSet
		if mat != nil && gm.material < len(mr.sets) {
			set = mr.sets[gm.material]
		}
		for slot, u := range slotUniforms {
			gl.ActiveTexture(gl.TEXTURE0 + uint32(slot))
			gl.BindTexture(gl.TEXTURE_2D, uint32(set[slot]))
			p.SetBool(u.has, set[slot] != 0)
		}

		gl.BindVertexArray(gm.vao)
		gl.DrawElements(gl.TRIANGLES, gm.indexCount, gl.UNSIGNED_INT, nil)
	}

	gl.BindVertexArray(0)
	gl.ActiveTexture(gl.TEXTURE0)
}

// Clear releases the uploaded meshes and the texture references of the
// current model.
func (mr *ModelRenderer) Clear() {
	for i := range mr.meshes {
		gm := &mr.meshes[i]
		gl.DeleteVertexArrays(1, &gm.vao)
		gl.DeleteBuffers(1, &gm.vbo)
		gl.DeleteBuffers(1, &gm.ebo)
	}
	mr.meshes = nil
	if mr.textures != nil {
		mr.textures.ReleaseSets(mr.sets)
	}
	mr.sets = nil
	mr.model = nil
}

// Destroy releases all resources.
func (mr *ModelRenderer) Destroy() {
	mr.Clear()
	if mr.program != nil {
		mr.program.Delete()
	}
}
