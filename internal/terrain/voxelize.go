package terrain

import (
	"log"

	"github.com/gbusto/overseer/internal/world"
)

// patchCutoff is the vegetation threshold on the surface patch field. Kept
// at the value shipped arenas were generated with so regenerated maps keep
// their grass-to-soil balance.
const patchCutoff = -0.1

// voxelize converts the smoothed height field into blocks: a voidsoil column
// under a surface block chosen by the patch field, then voidwater filling
// every level between low terrain and the water line.
func (g *Generator) voxelize(heights world.HeightMap, grid *world.BlockGrid) {
	radius := g.cfg.Radius
	waterLevel := g.cfg.Terrain.WaterThreshold

	floodedColumns := 0
	for x := -radius; x <= radius; x++ {
		for z := -radius; z <= radius; z++ {
			h, ok := heights[world.Cell{X: x, Z: z}]
			if !ok {
				continue
			}

			for y := 0; y < h; y++ {
				grid.Set(x, y, z, world.BlockVoidsoil)
			}

			surface := world.BlockVoidsoil
			if g.patch.Sample(float64(x), float64(z)) > patchCutoff {
				surface = world.BlockVoidgrass
			}
			grid.Set(x, h, z, surface)

			if h < waterLevel {
				for y := h + 1; y <= waterLevel; y++ {
					grid.Set(x, y, z, world.BlockVoidwater)
				}
				floodedColumns++
			}
		}
	}
	log.Printf("voxelized terrain: %d blocks, %d flooded columns", grid.Len(), floodedColumns)
}
