package core

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// maxLevel keeps one layer's vertex IDs inside int32.
const maxLevel = 13

// Mesh is the immutable output of BuildMesh: an icosahedral discretization
// of a spherical shell. Every layer shares one horizontal topology; only
// the radius differs. Nodes are addressed by a flattened global ID
//
//	node = layer*VertexCount() + vertex
//
// which is stable across builds with identical parameters and intended as
// the row index of solver state vectors. The mesh itself is read-only
// after construction and safe for concurrent readers; the unknown-slot
// storage is the one exception, handed to solver collaborators for
// writing.
type Mesh struct {
	level     int
	radii     []float64
	vertices  []mgl64.Vec3 // unit sphere, canonical layer
	triangles []Triangle
	neighbors [][]int32 // per canonical-layer vertex, sorted
	slots     []float64 // SlotsPerNode scalars per node, zero until a solver fills them
}

// BuildMesh generates the full shell mesh for refinement level k between
// the given boundary radii. A nil dist selects UniformRadii. Parameters
// are validated before any construction work; on error no partial mesh is
// returned.
//
// The layer count is m/2+1 with m = 2^k, so k=0 yields a single layer.
// A single layer cannot span a radial range: it requires
// innerRadius == outerRadius and sits at the outer boundary. For more
// than one layer the radii must satisfy 0 < innerRadius < outerRadius.
func BuildMesh(level int, innerRadius, outerRadius float64, dist RadiusDistribution) (*Mesh, error) {
	if err := ValidateResolution(level, innerRadius, outerRadius); err != nil {
		return nil, err
	}
	if dist == nil {
		dist = UniformRadii
	}

	layers := LayerCount(level)
	radii, err := buildRadii(layers, innerRadius, outerRadius, dist)
	if err != nil {
		return nil, err
	}
	vertices, triangles, err := buildTopology(level)
	if err != nil {
		return nil, err
	}

	return &Mesh{
		level:     level,
		radii:     radii,
		vertices:  vertices,
		triangles: triangles,
		neighbors: buildVertexNeighbors(len(vertices), triangles),
		slots:     make([]float64, SlotsPerNode*layers*len(vertices)),
	}, nil
}

// ValidateResolution checks a (level, innerRadius, outerRadius) triple
// against the constraints BuildMesh enforces, without constructing
// anything. It returns nil or an InvalidResolutionError.
func ValidateResolution(level int, innerRadius, outerRadius float64) error {
	if level < 0 {
		return &InvalidResolutionError{Reason: fmt.Sprintf("refinement level %d is negative", level)}
	}
	if level > maxLevel {
		return &InvalidResolutionError{
			Reason: fmt.Sprintf("refinement level %d exceeds %d, the largest level with 32-bit vertex IDs", level, maxLevel),
		}
	}
	if innerRadius <= 0 {
		return &InvalidResolutionError{Reason: fmt.Sprintf("inner radius %g is not positive", innerRadius)}
	}
	if outerRadius < innerRadius {
		return &InvalidResolutionError{
			Reason: fmt.Sprintf("outer radius %g is smaller than inner radius %g", outerRadius, innerRadius),
		}
	}
	layers := LayerCount(level)
	if layers == 1 && outerRadius != innerRadius {
		return &InvalidResolutionError{
			Reason: fmt.Sprintf("a single layer cannot span the radial range [%g, %g]", innerRadius, outerRadius),
		}
	}
	if layers > 1 && outerRadius == innerRadius {
		return &InvalidResolutionError{
			Reason: fmt.Sprintf("%d layers cannot share the radius %g", layers, innerRadius),
		}
	}
	return nil
}

// Level returns the refinement level the mesh was built at.
func (m *Mesh) Level() int { return m.level }

// LayerCount returns the number of radial layers.
func (m *Mesh) LayerCount() int { return len(m.radii) }

// Radius returns the radius of layer i, counted from the inner boundary.
func (m *Mesh) Radius(layer int) float64 { return m.radii[layer] }

// Radii returns the layer radii in inner-to-outer order. The returned
// slice is a copy.
func (m *Mesh) Radii() []float64 {
	out := make([]float64, len(m.radii))
	copy(out, m.radii)
	return out
}

// VertexCount returns the vertex count of one layer.
func (m *Mesh) VertexCount() int { return len(m.vertices) }

// TriangleCount returns the triangle count of one layer.
func (m *Mesh) TriangleCount() int { return len(m.triangles) }

// Triangles returns the shared horizontal triangle set. The returned slice
// is a copy; vertex IDs refer to any single layer.
func (m *Mesh) Triangles() []Triangle {
	out := make([]Triangle, len(m.triangles))
	copy(out, m.triangles)
	return out
}

// NodeCount returns the total node count across all layers.
func (m *Mesh) NodeCount() int { return len(m.radii) * len(m.vertices) }

// NodeID flattens a (layer, vertex) pair into a global node ID.
func (m *Mesh) NodeID(layer int, vertex int32) int {
	return layer*len(m.vertices) + int(vertex)
}

// NodeLayer returns the layer index of a global node ID.
func (m *Mesh) NodeLayer(node int) int { return node / len(m.vertices) }

// NodeVertex returns the within-layer vertex ID of a global node ID.
func (m *Mesh) NodeVertex(node int) int32 { return int32(node % len(m.vertices)) }

// NodePosition returns the Cartesian position of a node: the canonical
// unit-sphere vertex scaled by its layer radius.
func (m *Mesh) NodePosition(node int) mgl64.Vec3 {
	return m.vertices[m.NodeVertex(node)].Mul(m.radii[m.NodeLayer(node)])
}

// NodeLonLat returns the geographic longitude and latitude of a node in
// degrees. All layers share lateral positions, so the result depends only
// on the node's vertex.
func (m *Mesh) NodeLonLat(node int) (lon, lat float64) {
	return CartesianToLonLat(m.vertices[m.NodeVertex(node)])
}

// VertexNeighbors returns the canonical-layer neighbor vertex IDs of a
// vertex, sorted ascending. The returned slice is shared and must not be
// modified.
func (m *Mesh) VertexNeighbors(vertex int32) []int32 {
	return m.neighbors[vertex]
}

// HorizontalNeighbors returns the global node IDs of a node's neighbors
// within its own layer, sorted ascending.
func (m *Mesh) HorizontalNeighbors(node int) []int {
	offset := m.NodeLayer(node) * len(m.vertices)
	vn := m.neighbors[m.NodeVertex(node)]
	out := make([]int, len(vn))
	for i, v := range vn {
		out[i] = offset + int(v)
	}
	return out
}

// RadialNeighbors returns the global node IDs of the nodes directly inward
// and outward of the given node, inward first. Nodes on the innermost or
// outermost layer have exactly one radial neighbor; with a single layer
// the list is empty.
func (m *Mesh) RadialNeighbors(node int) []int {
	layer := m.NodeLayer(node)
	out := make([]int, 0, 2)
	if layer > 0 {
		out = append(out, node-len(m.vertices))
	}
	if layer < len(m.radii)-1 {
		out = append(out, node+len(m.vertices))
	}
	return out
}

// Slots returns the raw unknown-slot storage: SlotsPerNode scalars per
// node, laid out node-major, addressable as slots[SlotsPerNode*node+slot].
// Solver collaborators write through this slice; the mesh core never does.
func (m *Mesh) Slots() []float64 { return m.slots }

// NodeSlots returns the slot record of one node as a mutable subslice of
// the raw storage.
func (m *Mesh) NodeSlots(node int) []float64 {
	return m.slots[SlotsPerNode*node : SlotsPerNode*(node+1)]
}

// NearestVertex returns the canonical-layer vertex ID laterally closest to
// the given geographic position, measured on the sphere.
func (m *Mesh) NearestVertex(lon, lat float64) int32 {
	target := LonLatToCartesian(lon, lat, 1)
	best := int32(0)
	bestDot := m.vertices[0].Dot(target)
	for i := 1; i < len(m.vertices); i++ {
		if d := m.vertices[i].Dot(target); d > bestDot {
			best, bestDot = int32(i), d
		}
	}
	return best
}

// String summarizes the mesh for logs and debugging.
func (m *Mesh) String() string {
	return fmt.Sprintf("Mesh: level %d, %d layers, radius limits (%g, %g), %d vertices/layer, %d nodes",
		m.level, len(m.radii), m.radii[0], m.radii[len(m.radii)-1], len(m.vertices), m.NodeCount())
}
