package objmodel

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Interleaved vertex layout shared with GPU buffer setup.
const (
	PositionOffset = 0
	NormalOffset   = PositionOffset + 16
	UVOffset       = NormalOffset + 16
	VertexStride   = UVOffset + 8
)

// NoMaterial marks a mesh without an assigned material.
const NoMaterial = -1

// Vertex is one face-vertex instance of a mesh.
type Vertex struct {
	Position mgl32.Vec4 // w is 1
	Normal   mgl32.Vec4 // w is 0
	UV       mgl32.Vec2
}

// newVertex returns a vertex at the origin with w=1 and no normal or UV.
func newVertex() Vertex {
	return Vertex{Position: mgl32.Vec4{0, 0, 0, 1}}
}

// Equal reports whether every component of v and o matches exactly.
func (v Vertex) Equal(o Vertex) bool {
	return v == o
}

// Mesh is a triangulated group of faces sharing one material.
type Mesh struct {
	Name          string
	Vertices      []Vertex
	Indices       []uint32 // Triangle list, len is a multiple of 3
	MaterialIndex int      // Index into the owning model's materials, or NoMaterial
}

func newMesh(name string) *Mesh {
	return &Mesh{Name: name, MaterialIndex: NoMaterial}
}

// TriangleCount returns the number of triangles in the index list.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// HasMaterial reports whether a material was assigned to the mesh.
func (m *Mesh) HasMaterial() bool {
	return m.MaterialIndex != NoMaterial
}

// Bounds returns the axis-aligned bounding box of the mesh positions.
// An empty mesh returns two zero vectors.
func (m *Mesh) Bounds() (minB, maxB mgl32.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	inf := float32(math.Inf(1))
	minB = mgl32.Vec3{inf, inf, inf}
	maxB = mgl32.Vec3{-inf, -inf, -inf}
	for _, v := range m.Vertices {
		for i := 0; i < 3; i++ {
			if v.Position[i] < minB[i] {
				minB[i] = v.Position[i]
			}
			if v.Position[i] > maxB[i] {
				maxB[i] = v.Position[i]
			}
		}
	}
	return minB, maxB
}

// faceNormal returns cross(normalize(b-a), normalize(c-a)) with w=0.
// The result is not renormalized.
func faceNormal(a, b, c mgl32.Vec4) mgl32.Vec4 {
	ab := normalize(b.Vec3().Sub(a.Vec3()))
	ac := normalize(c.Vec3().Sub(a.Vec3()))
	return ab.Cross(ac).Vec4(0)
}

// normalize returns a unit vector, or the zero vector for degenerate input.
func normalize(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() == 0 {
		return mgl32.Vec3{}
	}
	return v.Normalize()
}

// synthesizeNormals walks the triangle list in order and writes each
// triangle's face normal onto its three vertices. Later triangles overwrite
// earlier ones where they share the fan's first vertex.
func (m *Mesh) synthesizeNormals() {
	for i := 0; i+2 < len(m.Indices); i += 3 {
		ia, ib, ic := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		n := faceNormal(m.Vertices[ia].Position, m.Vertices[ib].Position, m.Vertices[ic].Position)
		m.Vertices[ia].Normal = n
		m.Vertices[ib].Normal = n
		m.Vertices[ic].Normal = n
	}
}
