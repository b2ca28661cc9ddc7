package core

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	// Mantle shell radii in km, core-mantle boundary to surface.
	testInner = 3480.0
	testOuter = 6370.0
)

func TestBuildMeshRejectsBadParameters(t *testing.T) {
	tests := []struct {
		name         string
		level        int
		inner, outer float64
	}{
		{"NegativeLevel", -1, testInner, testOuter},
		{"LevelTooLarge", maxLevel + 1, testInner, testOuter},
		{"ZeroInnerRadius", 2, 0, testOuter},
		{"NegativeInnerRadius", 2, -10, testOuter},
		{"OuterBelowInner", 2, testOuter, testInner},
		{"EqualRadiiMultiLayer", 2, testOuter, testOuter},
		{"SingleLayerWithRange", 0, testInner, testOuter},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mesh, err := BuildMesh(tc.level, tc.inner, tc.outer, nil)
			if mesh != nil {
				t.Fatal("got a partial mesh alongside the error")
			}
			var resErr *InvalidResolutionError
			if !errors.As(err, &resErr) {
				t.Fatalf("error = %v, want InvalidResolutionError", err)
			}
		})
	}
}

func TestBuildMeshSingleLayer(t *testing.T) {
	// k=0 degenerates to one layer, which must sit exactly at the shared
	// boundary radius.
	mesh, err := BuildMesh(0, testOuter, testOuter, nil)
	require.NoError(t, err)
	require.Equal(t, 1, mesh.LayerCount())
	require.Equal(t, testOuter, mesh.Radius(0))
	require.Equal(t, 12, mesh.VertexCount())
	require.Equal(t, 20, mesh.TriangleCount())
	require.Equal(t, 12, mesh.NodeCount())
	require.Empty(t, mesh.RadialNeighbors(0))
}

func TestBuildMeshCountsAndRadii(t *testing.T) {
	tests := []struct {
		level      int
		wantLayers int
		wantVerts  int
		wantNodes  int
	}{
		{1, 2, 42, 84},
		{2, 3, 162, 486},
		{3, 5, 642, 3210},
		{4, 9, 2562, 23058},
	}

	for _, tc := range tests {
		mesh, err := BuildMesh(tc.level, testInner, testOuter, nil)
		require.NoError(t, err, "level %d", tc.level)
		require.Equal(t, tc.wantLayers, mesh.LayerCount(), "level %d layers", tc.level)
		require.Equal(t, tc.wantVerts, mesh.VertexCount(), "level %d vertices", tc.level)
		require.Equal(t, tc.wantNodes, mesh.NodeCount(), "level %d nodes", tc.level)
		require.Len(t, mesh.Slots(), SlotsPerNode*tc.wantNodes, "level %d slots", tc.level)

		radii := mesh.Radii()
		require.Equal(t, testInner, radii[0])
		require.Equal(t, testOuter, radii[len(radii)-1])
		for i := 1; i < len(radii); i++ {
			require.Greater(t, radii[i], radii[i-1], "level %d radii not increasing", tc.level)
		}
	}
}

// The k=6 production resolution is too heavy to assemble in a unit test,
// but its published counts must follow from the same closed forms the
// builder is checked against.
func TestProductionResolutionArithmetic(t *testing.T) {
	require.Equal(t, 40962, VertexCount(6))
	require.Equal(t, 81920, TriangleCount(6))
	require.Equal(t, 33, LayerCount(6))
	require.Equal(t, 1351746, VertexCount(6)*LayerCount(6))
	require.Equal(t, 6758730, SlotsPerNode*VertexCount(6)*LayerCount(6))
}

func TestBuildMeshIdempotent(t *testing.T) {
	m1, err := BuildMesh(3, testInner, testOuter, nil)
	require.NoError(t, err)
	m2, err := BuildMesh(3, testInner, testOuter, nil)
	require.NoError(t, err)

	require.Equal(t, m1.Radii(), m2.Radii())
	require.Equal(t, m1.Triangles(), m2.Triangles())
	for node := 0; node < m1.NodeCount(); node++ {
		if m1.NodePosition(node) != m2.NodePosition(node) {
			t.Fatalf("node %d position differs between builds", node)
		}
		require.Equal(t, m1.HorizontalNeighbors(node), m2.HorizontalNeighbors(node), "node %d", node)
		require.Equal(t, m1.RadialNeighbors(node), m2.RadialNeighbors(node), "node %d", node)
	}
}

func TestNodePositionsPinnedToLayerRadius(t *testing.T) {
	mesh, err := BuildMesh(2, testInner, testOuter, nil)
	require.NoError(t, err)
	for node := 0; node < mesh.NodeCount(); node++ {
		r := mesh.Radius(mesh.NodeLayer(node))
		if l := mesh.NodePosition(node).Len(); math.Abs(l-r) > 1e-9*r {
			t.Fatalf("node %d norm = %v, want layer radius %v", node, l, r)
		}
	}
}

func TestNodeIDRoundTrip(t *testing.T) {
	mesh, err := BuildMesh(2, testInner, testOuter, nil)
	require.NoError(t, err)
	n := mesh.VertexCount()
	for layer := 0; layer < mesh.LayerCount(); layer++ {
		for vertex := int32(0); vertex < int32(n); vertex += 37 {
			node := mesh.NodeID(layer, vertex)
			require.Equal(t, layer*n+int(vertex), node)
			require.Equal(t, layer, mesh.NodeLayer(node))
			require.Equal(t, vertex, mesh.NodeVertex(node))
		}
	}
}

func TestRadialNeighbors(t *testing.T) {
	mesh, err := BuildMesh(2, testInner, testOuter, nil)
	require.NoError(t, err)
	n := mesh.VertexCount()
	last := mesh.LayerCount() - 1

	for node := 0; node < mesh.NodeCount(); node++ {
		layer := mesh.NodeLayer(node)
		rn := mesh.RadialNeighbors(node)
		switch layer {
		case 0:
			require.Equal(t, []int{node + n}, rn, "inner boundary node %d", node)
		case last:
			require.Equal(t, []int{node - n}, rn, "outer boundary node %d", node)
		default:
			require.Equal(t, []int{node - n, node + n}, rn, "interior node %d", node)
		}
	}
}

func TestNodeSlotsAreWritableViews(t *testing.T) {
	mesh, err := BuildMesh(1, testInner, testOuter, nil)
	require.NoError(t, err)

	for _, v := range mesh.Slots() {
		require.Zero(t, v, "slot storage not zero-initialized")
	}

	node := mesh.NodeID(1, 7)
	slots := mesh.NodeSlots(node)
	require.Len(t, slots, SlotsPerNode)
	slots[SlotTemperature] = 1600.0
	require.Equal(t, 1600.0, mesh.Slots()[SlotsPerNode*node+SlotTemperature])
}

func TestSlotNames(t *testing.T) {
	want := []string{"Pressure", "Velocity_x", "Velocity_y", "Velocity_z", "Temperature"}
	for slot, name := range want {
		require.Equal(t, name, SlotName(slot))
	}
	require.Equal(t, "", SlotName(-1))
	require.Equal(t, "", SlotName(SlotsPerNode))
}

func TestCustomRadiusDistribution(t *testing.T) {
	// Quadratic spacing concentrates layers toward the outer boundary.
	quadratic := func(i, n int, inner, outer float64) float64 {
		f := float64(i) / float64(n-1)
		return inner + (outer-inner)*f*f
	}
	mesh, err := BuildMesh(2, testInner, testOuter, quadratic)
	require.NoError(t, err)
	require.Equal(t, testInner, mesh.Radius(0))
	require.Equal(t, testOuter, mesh.Radius(mesh.LayerCount()-1))
	// Spacing grows outward under the quadratic map.
	d01 := mesh.Radius(1) - mesh.Radius(0)
	d12 := mesh.Radius(2) - mesh.Radius(1)
	require.Greater(t, d12, d01)
}

func TestNonMonotoneDistributionRejected(t *testing.T) {
	reversed := func(i, n int, inner, outer float64) float64 {
		return UniformRadii(n-1-i, n, inner, outer)
	}
	_, err := BuildMesh(2, testInner, testOuter, reversed)
	var resErr *InvalidResolutionError
	require.ErrorAs(t, err, &resErr)
}

func TestNearestVertex(t *testing.T) {
	mesh, err := BuildMesh(3, testInner, testOuter, nil)
	require.NoError(t, err)

	// The nearest vertex to each vertex's own position is itself.
	for vertex := int32(0); vertex < int32(mesh.VertexCount()); vertex += 41 {
		lon, lat := mesh.NodeLonLat(int(vertex))
		require.Equal(t, vertex, mesh.NearestVertex(lon, lat), "vertex %d", vertex)
	}
}

func TestNodeLonLatSharedAcrossLayers(t *testing.T) {
	mesh, err := BuildMesh(1, testInner, testOuter, nil)
	require.NoError(t, err)
	n := mesh.VertexCount()
	for vertex := 0; vertex < n; vertex++ {
		lon0, lat0 := mesh.NodeLonLat(vertex)
		lon1, lat1 := mesh.NodeLonLat(n + vertex)
		require.Equal(t, lon0, lon1)
		require.Equal(t, lat0, lat1)
	}
}

func TestMeshString(t *testing.T) {
	mesh, err := BuildMesh(2, testInner, testOuter, nil)
	require.NoError(t, err)
	require.Equal(t,
		"Mesh: level 2, 3 layers, radius limits (3480, 6370), 162 vertices/layer, 486 nodes",
		mesh.String())
}

func BenchmarkBuildMesh(b *testing.B) {
	for _, level := range []int{3, 5} {
		b.Run(fmt.Sprintf("level%d", level), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := BuildMesh(level, testInner, testOuter, nil); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
