package world

import "github.com/brentp/intintmap"

// Block coordinates pack into a single int64 key with a 26/12/26 bit split:
// x and z cover +/-2^25 and y covers +/-2^11, far beyond any arena the
// generator produces. Packing keeps the hot voxel map allocation-free compared
// to string keys, which only exist in the serialized artifact.
const (
	packXBits = 26
	packYBits = 12
	packZBits = 26

	packYMask = 1<<packYBits - 1
	packZMask = 1<<packZBits - 1
)

// PackCoord encodes a block position into its int64 grid key.
func PackCoord(x, y, z int) int64 {
	return int64(x)<<(packYBits+packZBits) |
		(int64(y)&packYMask)<<packZBits |
		int64(z)&packZMask
}

// UnpackCoord decodes a grid key back into a block position. The shifts are
// arithmetic so each field sign-extends from its own top bit.
func UnpackCoord(key int64) (x, y, z int) {
	x = int(key >> (packYBits + packZBits))
	y = int(key << packXBits >> (packXBits + packZBits))
	z = int(key << (packXBits + packYBits) >> (packXBits + packYBits))
	return x, y, z
}

// BlockGrid is the sparse voxel map assembled during a generation run. Later
// stages overwrite earlier ones, so a plain last-write-wins store is enough.
type BlockGrid struct {
	m *intintmap.Map
}

// NewBlockGrid allocates a grid sized for roughly capacity blocks.
func NewBlockGrid(capacity int) *BlockGrid {
	if capacity < 64 {
		capacity = 64
	}
	return &BlockGrid{m: intintmap.New(capacity, 0.6)}
}

// Set stores the block id at the given position, replacing any previous id.
func (g *BlockGrid) Set(x, y, z, id int) {
	g.m.Put(PackCoord(x, y, z), int64(id))
}

// Get returns the block id at the given position, if any.
func (g *BlockGrid) Get(x, y, z int) (int, bool) {
	v, ok := g.m.Get(PackCoord(x, y, z))
	return int(v), ok
}

// Len returns the number of stored blocks.
func (g *BlockGrid) Len() int {
	return g.m.Size()
}

// Each calls fn for every stored block in unspecified order. Returning false
// stops further callbacks; the underlying iterator is always drained so its
// goroutine never leaks.
func (g *BlockGrid) Each(fn func(x, y, z, id int) bool) {
	stopped := false
	for kv := range g.m.Items() {
		if stopped {
			continue
		}
		x, y, z := UnpackCoord(kv[0])
		if !fn(x, y, z, int(kv[1])) {
			stopped = true
		}
	}
}
