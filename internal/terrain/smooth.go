package terrain

import (
	"log"

	"github.com/gbusto/overseer/internal/world"
)

// smoothPasses bounds the neighbor relaxation. Two passes settle the single
// cell spikes raw noise produces; the one step ledges that remain read as
// natural terracing, so no fixed point is chased.
const smoothPasses = 2

// smoothHeights relaxes every cell toward its 4-neighborhood: the height is
// clamped into [min(neighbors)-1, max(neighbors)+1] and never below the
// terrain floor. Each pass reads only the previous pass's snapshot, so the
// result is independent of map iteration order.
func smoothHeights(heights world.HeightMap, minHeight, passes int) world.HeightMap {
	current := heights
	adjusted := 0
	for pass := 0; pass < passes; pass++ {
		next := make(world.HeightMap, len(current))
		for cell, h := range current {
			smoothed := h
			if lo, hi, ok := neighborBounds(current, cell); ok {
				smoothed = clampInt(h, lo-1, hi+1)
				if smoothed < minHeight {
					smoothed = minHeight
				}
			}
			if smoothed != h {
				adjusted++
			}
			next[cell] = smoothed
		}
		current = next
	}
	log.Printf("height smoothing: %d adjustments over %d passes", adjusted, passes)
	return current
}

// neighborBounds returns the extreme heights among the cell's present
// 4-neighbors. Rim cells have fewer than four; isolated cells have none and
// pass through unchanged.
func neighborBounds(heights world.HeightMap, cell world.Cell) (lo, hi int, ok bool) {
	for _, off := range world.NeighborOffsets {
		h, present := heights[world.Cell{X: cell.X + off.X, Z: cell.Z + off.Z}]
		if !present {
			continue
		}
		if !ok {
			lo, hi, ok = h, h, true
			continue
		}
		if h < lo {
			lo = h
		}
		if h > hi {
			hi = h
		}
	}
	return lo, hi, ok
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
