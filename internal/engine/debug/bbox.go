// Package debug provides debug visualization utilities.
package debug

import "github.com/go-gl/mathgl/mgl32"

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// DefaultBBoxPadding is the default padding for selection boxes, as a
// fraction of the box diagonal.
const DefaultBBoxPadding = 0.02

// BBoxWireframe returns the line-list endpoints of the box spanned by minB
// and maxB. Corners may be given in any order.
func BBoxWireframe(minB, maxB mgl32.Vec3) [BBoxWireframeVertexCount]mgl32.Vec3 {
	for i := 0; i < 3; i++ {
		if minB[i] > maxB[i] {
			minB[i], maxB[i] = maxB[i], minB[i]
		}
	}
	minX, minY, minZ := minB.Elem()
	maxX, maxY, maxZ := maxB.Elem()

	return [BBoxWireframeVertexCount]mgl32.Vec3{
		// Bottom face (4 edges)
		{minX, minY, minZ}, {maxX, minY, minZ},
		{maxX, minY, minZ}, {maxX, minY, maxZ},
		{maxX, minY, maxZ}, {minX, minY, maxZ},
		{minX, minY, maxZ}, {minX, minY, minZ},
		// Top face (4 edges)
		{minX, maxY, minZ}, {maxX, maxY, minZ},
		{maxX, maxY, minZ}, {maxX, maxY, maxZ},
		{maxX, maxY, maxZ}, {minX, maxY, maxZ},
		{minX, maxY, maxZ}, {minX, maxY, minZ},
		// Vertical edges (4 edges)
		{minX, minY, minZ}, {minX, maxY, minZ},
		{maxX, minY, minZ}, {maxX, maxY, minZ},
		{maxX, minY, maxZ}, {maxX, maxY, maxZ},
		{minX, minY, maxZ}, {minX, maxY, maxZ},
	}
}

// PaddedBBox grows the box on every side by padding times its diagonal, so
// the wireframe does not z-fight with the faces it outlines. Flat boxes still
// get a visible margin.
func PaddedBBox(minB, maxB mgl32.Vec3, padding float32) (mgl32.Vec3, mgl32.Vec3) {
	pad := maxB.Sub(minB).Len() * padding
	if pad == 0 {
		pad = padding
	}
	grow := mgl32.Vec3{pad, pad, pad}
	return minB.Sub(grow), maxB.Add(grow)
}
