package terrain

import (
	"log"
	"math"

	"github.com/gbusto/overseer/internal/world"
)

// apexRadius is the fixed footprint of the platform capping the dome crown.
const apexRadius = 5

// buildDome raises the arena shell over the terrain: a shadowrock rim wall,
// randomly scattered ceiling panels projected onto the hemisphere, and the
// apex platform. Later writes overwrite earlier blocks, terrain included.
func (g *Generator) buildDome(heights world.HeightMap, grid *world.BlockGrid) {
	g.buildRimWall(heights, grid)
	g.buildCeilingPanels(grid)
	g.buildApexPlatform(grid)
}

// buildRimWall places a wall band on every valid cell within two blocks of
// the arena edge, sitting directly on the local surface.
func (g *Generator) buildRimWall(heights world.HeightMap, grid *world.BlockGrid) {
	radius := g.cfg.Radius
	wallHeight := g.cfg.Dome.WallHeight

	columns := 0
	for x := -radius; x <= radius; x++ {
		for z := -radius; z <= radius; z++ {
			cell := world.Cell{X: x, Z: z}
			if cell.Dist() <= float64(radius-2) {
				continue
			}
			h, ok := heights[cell]
			if !ok {
				continue
			}
			for y := h + 1; y <= h+wallHeight; y++ {
				grid.Set(x, y, z, world.BlockShadowrock)
			}
			columns++
		}
	}
	log.Printf("rim wall: %d columns", columns)
}

// buildCeilingPanels drops disc-shaped patches onto the dome ceiling. Each
// panel writes a three block thick slab following the hemisphere; any voxel
// that would land below the skip threshold near the rim is suppressed so
// panels never collide with the wall or terrain.
func (g *Generator) buildCeilingPanels(grid *world.BlockGrid) {
	d := g.cfg.Dome
	radius := g.cfg.Radius
	maxHeight := g.cfg.Terrain.MaxHeight
	skipBelow := maxHeight + d.WallHeight + d.SkipRows

	count := d.MinPanels + g.panelRand.Intn(d.MaxPanels-d.MinPanels+1)

	written := 0
	for i := 0; i < count; i++ {
		angle := g.panelRand.Float64() * 2 * math.Pi
		dist := (0.3 + 0.6*g.panelRand.Float64()) * float64(radius)
		centerX := int(dist * math.Cos(angle))
		centerZ := int(dist * math.Sin(angle))
		size := d.MinPanelSize + g.panelRand.Intn(d.MaxPanelSize-d.MinPanelSize+1)

		for dx := -size; dx <= size; dx++ {
			for dz := -size; dz <= size; dz++ {
				if math.Hypot(float64(dx), float64(dz)) > float64(size) {
					continue
				}
				cell := world.Cell{X: centerX + dx, Z: centerZ + dz}
				if !cell.InDisk(radius) {
					continue
				}
				ceiling := domeElevation(cell.Dist(), radius, d.Height, maxHeight)
				for y := ceiling - 2; y <= ceiling; y++ {
					if y < skipBelow {
						continue
					}
					grid.Set(cell.X, y, cell.Z, world.BlockShadowrock)
					written++
				}
			}
		}
	}
	log.Printf("ceiling panels: %d placed, %d blocks", count, written)
}

// buildApexPlatform caps the dome crown with a small unconditional disc.
func (g *Generator) buildApexPlatform(grid *world.BlockGrid) {
	apexY := g.cfg.Dome.Height + g.cfg.Terrain.MaxHeight
	for dx := -apexRadius; dx <= apexRadius; dx++ {
		for dz := -apexRadius; dz <= apexRadius; dz++ {
			if math.Hypot(float64(dx), float64(dz)) > apexRadius {
				continue
			}
			grid.Set(dx, apexY, dz, world.BlockShadowrock)
		}
	}
}

// domeElevation projects a distance from the arena centre onto the
// hemispherical ceiling. The radicand clamps at zero so float rounding at
// the rim cannot feed Sqrt a negative value.
func domeElevation(dist float64, radius, domeHeight, maxHeight int) int {
	ratio := dist / float64(radius)
	radicand := 1 - ratio*ratio
	if radicand < 0 {
		radicand = 0
	}
	return int(float64(domeHeight)*math.Sqrt(radicand)) + maxHeight
}
