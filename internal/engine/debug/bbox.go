// Package debug provides debug visualization utilities.
package debug

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// GenerateBBoxWireframeVertices creates line vertices for a wireframe bounding box.
// Returns 24 vertices (12 edges × 2 endpoints), format: [x, y, z] per vertex.
func GenerateBBoxWireframeVertices(minX, minY, minZ, maxX, maxY, maxZ float32) []float32 {
	return []float32{
		// Bottom face (4 edges)
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face (4 edges)
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges (4 edges)
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// GenerateBBoxLineVertices creates wireframe vertices for bbox
// ([minX, minY, minZ, maxX, maxY, maxZ]) in the fiber vertex layout:
// position followed by a zero direction, 6 floats per vertex.
// padding expands the box on all sides.
func GenerateBBoxLineVertices(bbox [6]float32, padding float32) []float32 {
	pos := GenerateBBoxWireframeVertices(
		bbox[0]-padding, bbox[1]-padding, bbox[2]-padding,
		bbox[3]+padding, bbox[4]+padding, bbox[5]+padding,
	)

	out := make([]float32, 0, BBoxWireframeVertexCount*6)
	for i := 0; i < len(pos); i += 3 {
		out = append(out, pos[i], pos[i+1], pos[i+2], 0, 0, 0)
	}
	return out
}
