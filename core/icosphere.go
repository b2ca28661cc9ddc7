package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Triangle is an ordered triple of vertex IDs within one layer, wound
// counter-clockwise when viewed from outside the sphere.
type Triangle [3]int32

// BaseIcosahedron returns the 12 vertices and 20 faces of a regular
// icosahedron inscribed in the unit sphere. Each call returns fresh slices
// so concurrent builds never share mutable state.
func BaseIcosahedron() ([]mgl64.Vec3, []Triangle) {
	// Golden ratio construction; vertices are normalized before use.
	t := (1.0 + math.Sqrt(5.0)) / 2.0

	vertices := []mgl64.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	faces := []Triangle{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
	return vertices, faces
}

// VertexCount returns the vertex count of one layer at refinement level k:
// 2 + 10*m^2 with m = 2^k.
func VertexCount(level int) int {
	m := 1 << level
	return 2 + 10*m*m
}

// TriangleCount returns the triangle count of one layer at refinement
// level k: 20*m^2 with m = 2^k.
func TriangleCount(level int) int {
	m := 1 << level
	return 20 * m * m
}

// LayerCount returns the number of radial layers at refinement level k:
// m/2 + 1 with m = 2^k. Integer division resolves the k=0 case to a
// single layer.
func LayerCount(level int) int {
	m := 1 << level
	return m/2 + 1
}

// buildTopology produces the canonical layer for the given refinement
// level: unit-sphere vertex positions and the triangle list, with vertex
// IDs assigned in reproducible order (base icosahedron first, then edge
// midpoints in triangle-traversal order of each pass).
func buildTopology(level int) ([]mgl64.Vec3, []Triangle, error) {
	base, faces := BaseIcosahedron()

	vertices := make([]mgl64.Vec3, len(base))
	for i, v := range base {
		n, err := Normalize(v)
		if err != nil {
			return nil, nil, err
		}
		vertices[i] = n
	}
	triangles := faces

	for pass := 0; pass < level; pass++ {
		var err error
		vertices, triangles, err = subdividePass(vertices, triangles)
		if err != nil {
			return nil, nil, err
		}
	}

	if want := VertexCount(level); len(vertices) != want {
		return nil, nil, &InvariantViolationError{What: "vertex", Want: want, Got: len(vertices)}
	}
	if want := TriangleCount(level); len(triangles) != want {
		return nil, nil, &InvariantViolationError{What: "triangle", Want: want, Got: len(triangles)}
	}
	return vertices, triangles, nil
}

// subdividePass splits every triangle into four, bisecting each edge on
// the sphere. An edge shared by two triangles must contribute exactly one
// new vertex, so midpoints are deduplicated through an unordered edge-key
// map that lives only for this pass.
func subdividePass(vertices []mgl64.Vec3, triangles []Triangle) ([]mgl64.Vec3, []Triangle, error) {
	midpoints := make(map[[2]int32]int32, len(triangles)*3/2)
	out := make([]Triangle, 0, len(triangles)*4)

	midpoint := func(a, b int32) (int32, error) {
		key := [2]int32{a, b}
		if a > b {
			key = [2]int32{b, a}
		}
		if id, ok := midpoints[key]; ok {
			return id, nil
		}
		m, err := SlerpMidpoint(vertices[a], vertices[b])
		if err != nil {
			return 0, err
		}
		id := int32(len(vertices))
		vertices = append(vertices, m)
		midpoints[key] = id
		return id, nil
	}

	for _, tri := range triangles {
		m01, err := midpoint(tri[0], tri[1])
		if err != nil {
			return nil, nil, err
		}
		m12, err := midpoint(tri[1], tri[2])
		if err != nil {
			return nil, nil, err
		}
		m20, err := midpoint(tri[2], tri[0])
		if err != nil {
			return nil, nil, err
		}
		// Same winding as the parent: three corners, then the center.
		out = append(out,
			Triangle{tri[0], m01, m20},
			Triangle{tri[1], m12, m01},
			Triangle{tri[2], m20, m12},
			Triangle{m01, m12, m20},
		)
	}
	return vertices, out, nil
}
