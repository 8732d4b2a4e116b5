package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/objview/internal/engine/debug"
	"github.com/Faultbox/objview/pkg/objmodel"
)

// Grid layout: 21 lines per axis from -10 to 10.
const (
	GridHalfExtent   = 10
	GridLinesPerAxis = 2*GridHalfExtent + 1
	GridVertexCount  = 2 * 2 * GridLinesPerAxis
)

// lineVertex is one end of a grid line: position then colour.
type lineVertex struct {
	Position mgl32.Vec4
	Color    mgl32.Vec4
}

const lineVertexStride = 32

var (
	gridCenterColor = mgl32.Vec4{1, 1, 1, 1}
	gridLineColor   = mgl32.Vec4{0, 0, 0, 1}
)

// gridVertices builds the XZ reference grid. Lines through the origin are
// white, the rest black.
func gridVertices() []lineVertex {
	verts := make([]lineVertex, 0, GridVertexCount)
	for i := 0; i < GridLinesPerAxis; i++ {
		color := gridLineColor
		if i == GridHalfExtent {
			color = gridCenterColor
		}
		offset := float32(i - GridHalfExtent)
		verts = append(verts,
			lineVertex{mgl32.Vec4{offset, 0, GridHalfExtent, 1}, color},
			lineVertex{mgl32.Vec4{offset, 0, -GridHalfExtent, 1}, color},
			lineVertex{mgl32.Vec4{GridHalfExtent, 0, offset, 1}, color},
			lineVertex{mgl32.Vec4{-GridHalfExtent, 0, offset, 1}, color},
		)
	}
	return verts
}

// selectionVertices builds the padded wireframe around a selected mesh.
func selectionVertices(minB, maxB mgl32.Vec3) []lineVertex {
	lo, hi := debug.PaddedBBox(minB, maxB, debug.DefaultBBoxPadding)
	corners := debug.BBoxWireframe(lo, hi)
	verts := make([]lineVertex, len(corners))
	for i, c := range corners {
		verts[i] = lineVertex{c.Vec4(1), SelectionColor}
	}
	return verts
}

// skyboxVertices is a unit cube as 36 positions.
var skyboxVertices = [36 * 3]float32{
	-1, 1, -1, -1, -1, -1, 1, -1, -1,
	1, -1, -1, 1, 1, -1, -1, 1, -1,

	-1, -1, 1, -1, -1, -1, -1, 1, -1,
	-1, 1, -1, -1, 1, 1, -1, -1, 1,

	1, -1, -1, 1, -1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, -1, 1, -1, -1,

	-1, -1, 1, -1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, -1, 1, -1, -1, 1,

	-1, 1, -1, 1, 1, -1, 1, 1, 1,
	1, 1, 1, -1, 1, 1, -1, 1, -1,

	-1, -1, -1, -1, -1, 1, 1, -1, -1,
	1, -1, -1, -1, -1, 1, 1, -1, 1,
}

// SkyboxFaces are the cube-map face files in GL_TEXTURE_CUBE_MAP_POSITIVE_X
// order.
var SkyboxFaces = [6]string{"right.jpg", "left.jpg", "top.jpg", "bottom.jpg", "front.jpg", "back.jpg"}

// skyboxView strips the translation from a view matrix so the cube stays
// centred on the camera.
func skyboxView(view mgl32.Mat4) mgl32.Mat4 {
	return view.Mat3().Mat4()
}

// Lighting used for meshes without a material.
var (
	DefaultAmbient  = mgl32.Vec4{0.25, 0.25, 0.25, 1}
	DefaultDiffuse  = mgl32.Vec4{1, 1, 1, 1}
	DefaultSpecular = mgl32.Vec4{1, 1, 1, 64}
)

// materialColors returns the kA, kD and kS uniforms for mat, falling back to
// the defaults when mat is nil.
func materialColors(mat *objmodel.Material) (ka, kd, ks mgl32.Vec4) {
	if mat == nil {
		return DefaultAmbient, DefaultDiffuse, DefaultSpecular
	}
	return mat.Ambient, mat.Diffuse, mat.Specular
}

// ModelBounds returns the model-space bounding box of every mesh in m.
func ModelBounds(m *objmodel.Model) (minB, maxB mgl32.Vec3) {
	for i := 0; i < m.MeshCount(); i++ {
		lo, hi := m.MeshByIndex(i).Bounds()
		if i == 0 {
			minB, maxB = lo, hi
			continue
		}
		for k := 0; k < 3; k++ {
			minB[k] = min(minB[k], lo[k])
			maxB[k] = max(maxB[k], hi[k])
		}
	}
	return minB, maxB
}
