package renderer

// referenceScene builds the vertex and index data for the fixed demo scene:
// a unit-ish colored cube centered at the origin sitting on a dark ground
// quad. Vertex layout is interleaved position (3 float32) + color (3 float32).
//
// Returns:
//   - []float32: interleaved vertex data
//   - []uint32: triangle list indices
func referenceScene() ([]float32, []uint32) {
	vertices := []float32{
		// cube corners, colored by octant
		-1, -1, -1, 0.0, 0.0, 0.0,
		1, -1, -1, 1.0, 0.0, 0.0,
		1, 1, -1, 1.0, 1.0, 0.0,
		-1, 1, -1, 0.0, 1.0, 0.0,
		-1, -1, 1, 0.0, 0.0, 1.0,
		1, -1, 1, 1.0, 0.0, 1.0,
		1, 1, 1, 1.0, 1.0, 1.0,
		-1, 1, 1, 0.0, 1.0, 1.0,
		// ground quad
		-8, -1.01, -8, 0.15, 0.15, 0.18,
		8, -1.01, -8, 0.15, 0.15, 0.18,
		8, -1.01, 8, 0.22, 0.22, 0.26,
		-8, -1.01, 8, 0.22, 0.22, 0.26,
	}

	indices := []uint32{
		// cube faces
		0, 1, 2, 2, 3, 0, // back
		4, 6, 5, 6, 4, 7, // front
		0, 3, 7, 7, 4, 0, // left
		1, 5, 6, 6, 2, 1, // right
		3, 2, 6, 6, 7, 3, // top
		0, 4, 5, 5, 1, 0, // bottom
		// ground
		8, 9, 10, 10, 11, 8,
	}

	return vertices, indices
}
