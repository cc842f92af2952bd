package scene

// Pyramid builds a square pyramid standing on the XZ plane at the origin,
// apex up +Y. All faces wind counter-clockwise seen from outside.
func Pyramid(base, height float32, color [4]float32) ([]Vertex, []uint32) {
	h := base / 2
	corners := [4][3]float32{
		{-h, 0, -h},
		{h, 0, -h},
		{h, 0, h},
		{-h, 0, h},
	}
	apex := [3]float32{0, height, 0}

	shade := func(f float32) [4]float32 {
		return [4]float32{color[0] * f, color[1] * f, color[2] * f, color[3]}
	}

	var vertices []Vertex
	var indices []uint32
	for i := range 4 {
		a := corners[i]
		b := corners[(i+1)%4]
		start := uint32(len(vertices))
		c := shade(0.7 + 0.1*float32(i))
		vertices = append(vertices,
			Vertex{Position: b, Color: c},
			Vertex{Position: a, Color: c},
			Vertex{Position: apex, Color: c},
		)
		indices = append(indices, start, start+1, start+2)
	}

	// Bottom faces -Y.
	start := uint32(len(vertices))
	c := shade(0.4)
	for _, p := range corners {
		vertices = append(vertices, Vertex{Position: p, Color: c})
	}
	indices = append(indices, start, start+1, start+2, start, start+2, start+3)

	return vertices, indices
}
