// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/Faultbox/eternal-forest/internal/engine/picking"
	"github.com/Faultbox/eternal-forest/internal/engine/scene"
)

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// DefaultBBoxPadding is the default padding for selection boxes.
const DefaultBBoxPadding = 0.05

// GenerateBBoxWireframeVertices creates line-list vertices for the twelve
// edges of a box. A null box yields nothing.
func GenerateBBoxWireframeVertices(box picking.AABB, padding float32, color [4]float32) []scene.Vertex {
	if box.IsNull() {
		return nil
	}
	lo, hi := box.Min, box.Max
	minX, minY, minZ := lo.X-padding, lo.Y-padding, lo.Z-padding
	maxX, maxY, maxZ := hi.X+padding, hi.Y+padding, hi.Z+padding

	points := [BBoxWireframeVertexCount][3]float32{
		// Bottom face
		{minX, minY, minZ}, {maxX, minY, minZ},
		{maxX, minY, minZ}, {maxX, minY, maxZ},
		{maxX, minY, maxZ}, {minX, minY, maxZ},
		{minX, minY, maxZ}, {minX, minY, minZ},
		// Top face
		{minX, maxY, minZ}, {maxX, maxY, minZ},
		{maxX, maxY, minZ}, {maxX, maxY, maxZ},
		{maxX, maxY, maxZ}, {minX, maxY, maxZ},
		{minX, maxY, maxZ}, {minX, maxY, minZ},
		// Vertical edges
		{minX, minY, minZ}, {minX, maxY, minZ},
		{maxX, minY, minZ}, {maxX, maxY, minZ},
		{maxX, minY, maxZ}, {maxX, maxY, maxZ},
		{minX, minY, maxZ}, {minX, maxY, maxZ},
	}

	out := make([]scene.Vertex, len(points))
	for i, p := range points {
		out[i] = scene.Vertex{Position: p, Color: color}
	}
	return out
}

// GenerateBBoxesWireframe concatenates the wireframes of several boxes.
func GenerateBBoxesWireframe(boxes []picking.AABB, padding float32, color [4]float32) []scene.Vertex {
	out := make([]scene.Vertex, 0, len(boxes)*BBoxWireframeVertexCount)
	for _, b := range boxes {
		out = append(out, GenerateBBoxWireframeVertices(b, padding, color)...)
	}
	return out
}
