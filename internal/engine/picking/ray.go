// Package picking provides ray casting against the grid plane and model
// meshes.
package picking

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/objview/pkg/objmodel"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3 // Normalized direction
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates from the top-left corner,
// viewportW/H are viewport dimensions and invProjView is the inverse of
// Projection * View.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invProjView mgl32.Mat4) Ray {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	nearWorld := unproject(invProjView, mgl32.Vec4{ndcX, ndcY, -1, 1})
	farWorld := unproject(invProjView, mgl32.Vec4{ndcX, ndcY, 1, 1})

	dir := farWorld.Sub(nearWorld)
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	return Ray{Origin: nearWorld, Direction: dir}
}

func unproject(inv mgl32.Mat4, ndc mgl32.Vec4) mgl32.Vec3 {
	p := inv.Mul4x1(ndc)
	if p[3] != 0 {
		return p.Vec3().Mul(1 / p[3])
	}
	return p.Vec3()
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Transform returns the ray in the space mapped by m.
func (r Ray) Transform(m mgl32.Mat4) Ray {
	origin := m.Mul4x1(r.Origin.Vec4(1)).Vec3()
	dir := m.Mul4x1(r.Direction.Vec4(0)).Vec3()
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	return Ray{Origin: origin, Direction: dir}
}

// IntersectPlaneY intersects a ray with a horizontal plane at the given Y level.
// Returns the intersection point (X, Z) and whether the intersection is valid.
func (r Ray) IntersectPlaneY(planeY float32) (x, z float32, ok bool) {
	if gomath.Abs(float64(r.Direction[1])) < 0.001 {
		return 0, 0, false // Ray parallel to plane
	}

	t := (planeY - r.Origin[1]) / r.Direction[1]
	if t < 0 {
		return 0, 0, false // Intersection behind ray origin
	}

	p := r.At(t)
	return p[0], p[2], true
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(minB, maxB mgl32.Vec3) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		if r.Direction[axis] == 0 {
			if r.Origin[axis] < minB[axis] || r.Origin[axis] > maxB[axis] {
				return 0, false
			}
			continue
		}
		t1 := (minB[axis] - r.Origin[axis]) / r.Direction[axis]
		t2 := (maxB[axis] - r.Origin[axis]) / r.Direction[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectTriangle tests the ray against triangle abc from either side
// (Möller-Trumbore).
func (r Ray) IntersectTriangle(a, b, c mgl32.Vec3) (t float32, hit bool) {
	const epsilon = 1e-7

	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if det > -epsilon && det < epsilon {
		return 0, false
	}
	inv := 1 / det

	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t = e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}

// Hit describes the closest mesh under a ray.
type Hit struct {
	Mesh     int        // Index into the model's meshes
	Distance float32    // Along the world-space ray
	Point    mgl32.Vec3 // World-space hit point
}

// PickMesh returns the nearest mesh of m hit by the world-space ray. Meshes
// are culled by their bounds before their triangles are tested.
func PickMesh(m *objmodel.Model, r Ray) (Hit, bool) {
	world := m.WorldMatrix()
	local := r.Transform(world.Inv())

	best := Hit{Mesh: -1}
	bestT := float32(gomath.MaxFloat32)
	for i := 0; i < m.MeshCount(); i++ {
		mesh := m.MeshByIndex(i)
		minB, maxB := mesh.Bounds()
		if t, ok := local.IntersectAABB(minB, maxB); !ok || t > bestT {
			continue
		}
		for k := 0; k+2 < len(mesh.Indices); k += 3 {
			a := mesh.Vertices[mesh.Indices[k]].Position.Vec3()
			b := mesh.Vertices[mesh.Indices[k+1]].Position.Vec3()
			c := mesh.Vertices[mesh.Indices[k+2]].Position.Vec3()
			if t, ok := local.IntersectTriangle(a, b, c); ok && t < bestT {
				bestT = t
				best.Mesh = i
			}
		}
	}
	if best.Mesh < 0 {
		return best, false
	}

	best.Point = world.Mul4x1(local.At(bestT).Vec4(1)).Vec3()
	best.Distance = best.Point.Sub(r.Origin).Len()
	return best, true
}
