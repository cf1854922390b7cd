package terrain

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gbusto/overseer/internal/world"
)

// scatterMargin keeps decorative entities clear of the rim wall footing.
const scatterMargin = 5

// scatterEntities walks the arena in fixed row-major order and rolls one
// Bernoulli trial per eligible cell, so the draw sequence is a function of
// the seed alone. The cluster field biases the per-cell probability, pulling
// placements into organic clumps instead of uniform speckle.
func (g *Generator) scatterEntities(heights world.HeightMap) []world.Placement {
	s := g.cfg.Scatter
	if len(s.Models) == 0 {
		return nil
	}

	radius := g.cfg.Radius
	waterLevel := g.cfg.Terrain.WaterThreshold

	var placements []world.Placement
	for x := -radius; x <= radius; x++ {
		for z := -radius; z <= radius; z++ {
			cell := world.Cell{X: x, Z: z}
			h, ok := heights[cell]
			if !ok || h <= waterLevel {
				continue
			}
			if cell.Dist() >= float64(radius-scatterMargin) {
				continue
			}

			clusterBias := (g.cluster.Sample(float64(x), float64(z)) + 1) / 2
			if g.scatterRand.Float64() >= clusterBias*s.Density {
				continue
			}

			model := s.Models[g.scatterRand.Intn(len(s.Models))]
			scale := model.MinScale + g.scatterRand.Float64()*(model.MaxScale-model.MinScale)
			yaw := g.scatterRand.Float64() * 2 * math.Pi

			name := model.Name
			if name == "" {
				name = world.ModelDisplayName(model.URI)
			}

			placements = append(placements, world.Placement{
				Position: mgl64.Vec3{float64(x) + 0.5, float64(h) + 1 + scale/2, float64(z) + 0.5},
				Entity: world.Entity{
					ModelURI:         model.URI,
					Name:             name,
					ModelScale:       scale,
					Opacity:          1,
					LoopedAnimations: []string{"idle"},
					RigidBodyOptions: world.RigidBody{Type: "fixed"},
					Rotation:         world.YawRotation(yaw),
				},
			})
		}
	}
	log.Printf("scattered %d entities across %d models", len(placements), len(s.Models))
	return placements
}
