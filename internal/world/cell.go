package world

import "math"

// Cell identifies a terrain column in world space. Cells are valid when they
// fall inside the arena disk, even though generation iterates a bounding
// square.
type Cell struct {
	X int
	Z int
}

// Dist returns the cell's Euclidean distance from the arena centre.
func (c Cell) Dist() float64 {
	return math.Hypot(float64(c.X), float64(c.Z))
}

// InDisk reports whether the cell lies within a disk of the given radius.
func (c Cell) InDisk(radius int) bool {
	return c.Dist() <= float64(radius)
}

// HeightMap stores the terrain elevation of every valid cell.
type HeightMap map[Cell]int

// NeighborOffsets lists the 4-connected offsets used by height smoothing.
var NeighborOffsets = [4]Cell{{X: -1, Z: 0}, {X: 1, Z: 0}, {X: 0, Z: -1}, {X: 0, Z: 1}}
