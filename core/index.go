package core

import "sort"

// Unknown-slot layout per node. Slot values are zero-initialized and owned
// by solver collaborators; the mesh core never populates them.
const (
	SlotPressure = iota
	SlotVelocityX
	SlotVelocityY
	SlotVelocityZ
	SlotTemperature
	SlotsPerNode
)

var slotNames = [SlotsPerNode]string{
	"Pressure",
	"Velocity_x",
	"Velocity_y",
	"Velocity_z",
	"Temperature",
}

// SlotName returns the variable name of an unknown slot, matching the
// names serializer collaborators use for solver output files. It returns
// "" for an out-of-range slot.
func SlotName(slot int) string {
	if slot < 0 || slot >= SlotsPerNode {
		return ""
	}
	return slotNames[slot]
}

// buildVertexNeighbors derives per-vertex neighbor lists from the triangle
// set: two vertices are neighbors iff they co-occur in at least one
// triangle. Lists are deduplicated, free of self references and sorted
// ascending, so repeated builds iterate identically.
func buildVertexNeighbors(vertexCount int, triangles []Triangle) [][]int32 {
	neighbors := make([][]int32, vertexCount)

	add := func(a, b int32) {
		if a == b {
			return
		}
		for _, n := range neighbors[a] {
			if n == b {
				return
			}
		}
		neighbors[a] = append(neighbors[a], b)
	}

	for _, tri := range triangles {
		add(tri[0], tri[1])
		add(tri[1], tri[0])
		add(tri[1], tri[2])
		add(tri[2], tri[1])
		add(tri[2], tri[0])
		add(tri[0], tri[2])
	}

	for _, list := range neighbors {
		sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	}
	return neighbors
}
