// Package terrain implements the map generation pipeline: height synthesis,
// smoothing, voxelization, dome construction and entity scattering.
package terrain

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"github.com/gbusto/overseer/internal/config"
	"github.com/gbusto/overseer/internal/noise"
	"github.com/gbusto/overseer/internal/world"
)

// Stream labels feed noise.DeriveSeed so every random consumer owns an
// isolated sub-seed. Changing terrain parameters therefore never reshuffles
// panel or entity placement, and vice versa.
const (
	streamElevationMicro  = "noise/elevation-micro"
	streamElevationMacro  = "noise/elevation-macro"
	streamSurfacePatch    = "noise/surface-patch"
	streamScatterCluster  = "noise/scatter-cluster"
	streamDomePanels      = "dome/panels"
	streamScatterEntities = "scatter/entities"
)

// Generator runs the arena pipeline for one configuration. It is single-use:
// the random streams advance as stages execute, so a fresh Generator is
// needed for every run.
type Generator struct {
	cfg *config.Config

	micro   noise.Field
	macro   noise.Field
	patch   noise.Field
	cluster noise.Field

	panelRand   *rand.Rand
	scatterRand *rand.Rand
}

// NewGenerator wires the noise fields and random streams for one run. Every
// stream derives its own seed from cfg.Seed, so the same configuration
// reproduces the same artifact bit for bit.
func NewGenerator(cfg *config.Config) (*Generator, error) {
	alg := noise.Algorithm(cfg.Noise.Algorithm)

	micro, err := noise.New(alg, cfg.Terrain.Micro.Params(), noise.DeriveSeed(cfg.Seed, streamElevationMicro))
	if err != nil {
		return nil, fmt.Errorf("elevation micro field: %w", err)
	}
	macro, err := noise.New(alg, cfg.Terrain.Macro.Params(), noise.DeriveSeed(cfg.Seed, streamElevationMacro))
	if err != nil {
		return nil, fmt.Errorf("elevation macro field: %w", err)
	}
	patch, err := noise.New(alg, cfg.Terrain.Patch.Params(), noise.DeriveSeed(cfg.Seed, streamSurfacePatch))
	if err != nil {
		return nil, fmt.Errorf("surface patch field: %w", err)
	}
	cluster, err := noise.New(alg, cfg.Scatter.Cluster.Params(), noise.DeriveSeed(cfg.Seed, streamScatterCluster))
	if err != nil {
		return nil, fmt.Errorf("scatter cluster field: %w", err)
	}

	return &Generator{
		cfg:         cfg,
		micro:       micro,
		macro:       macro,
		patch:       patch,
		cluster:     cluster,
		panelRand:   rand.New(rand.NewSource(noise.DeriveSeed(cfg.Seed, streamDomePanels))),
		scatterRand: rand.New(rand.NewSource(noise.DeriveSeed(cfg.Seed, streamScatterEntities))),
	}, nil
}

// Generate runs the pipeline to completion and returns the assembled
// artifact. Stages run strictly in order; cancellation between stages aborts
// the run without producing an artifact.
func (g *Generator) Generate(ctx context.Context) (*world.Artifact, error) {
	log.Printf("generating map: radius %d, seed %d, %s noise",
		g.cfg.Radius, g.cfg.Seed, g.cfg.Noise.Algorithm)

	heights, err := g.synthesizeHeights(ctx)
	if err != nil {
		return nil, err
	}
	smoothed := smoothHeights(heights, g.cfg.Terrain.MinHeight, smoothPasses)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	grid := world.NewBlockGrid(gridCapacityHint(len(smoothed), g.cfg))
	g.voxelize(smoothed, grid)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.buildDome(smoothed, grid)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entities := g.scatterEntities(smoothed)

	return &world.Artifact{
		BlockTypes: world.DefaultBlockTypes(),
		Blocks:     grid,
		Entities:   entities,
	}, nil
}

// gridCapacityHint sizes the voxel grid so terrain fill rarely forces a
// rehash. Columns dominate the block count; the wall and panels are noise on
// top.
func gridCapacityHint(columns int, cfg *config.Config) int {
	return columns * (cfg.Terrain.MaxHeight + 3)
}
