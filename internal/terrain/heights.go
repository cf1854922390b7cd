package terrain

import (
	"context"
	"fmt"
	"log"
	"math"
	"runtime"
	"sync"

	"github.com/gbusto/overseer/internal/world"
)

// diskCells enumerates the valid cells of the arena in row-major order, x
// ascending then z. Stages that consume randomness walk cells in exactly
// this order so draw sequences stay reproducible.
func diskCells(radius int) []world.Cell {
	capacity := int(math.Pi*float64(radius)*float64(radius)) + 4*radius + 4
	cells := make([]world.Cell, 0, capacity)
	for x := -radius; x <= radius; x++ {
		for z := -radius; z <= radius; z++ {
			c := world.Cell{X: x, Z: z}
			if c.InDisk(radius) {
				cells = append(cells, c)
			}
		}
	}
	return cells
}

type combinedSample struct {
	cell  world.Cell
	value float64
}

// synthesizeHeights blends the micro and macro elevation fields over every
// valid cell, then normalizes against the observed extrema so the configured
// height range is fully used no matter how much amplitude the noise delivers.
// Sampling is pure, so it fans out across workers without affecting the
// result.
func (g *Generator) synthesizeHeights(ctx context.Context) (world.HeightMap, error) {
	cells := diskCells(g.cfg.Radius)
	if len(cells) == 0 {
		return world.HeightMap{}, nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(cells) {
		workers = len(cells)
	}
	if workers < 1 {
		workers = 1
	}

	tasks := make(chan world.Cell, workers)
	results := make(chan combinedSample, workers)
	influence := g.cfg.Terrain.Macro.Influence

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for cell := range tasks {
				fx, fz := float64(cell.X), float64(cell.Z)
				value := g.micro.Sample(fx, fz) + g.macro.Sample(fx, fz)*influence
				select {
				case results <- combinedSample{cell: cell, value: value}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(tasks)
		for _, cell := range cells {
			select {
			case <-ctx.Done():
				return
			case tasks <- cell:
			}
		}
	}()

	combined := make(map[world.Cell]float64, len(cells))
	minV := math.Inf(1)
	maxV := math.Inf(-1)
	for s := range results {
		combined[s.cell] = s.value
		if s.value < minV {
			minV = s.value
		}
		if s.value > maxV {
			maxV = s.value
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("height synthesis interrupted: %w", err)
	}

	// Constant fields leave no span to stretch; every cell lands on the floor.
	span := maxV - minV
	if span == 0 {
		span = 1
	}
	minHeight := g.cfg.Terrain.MinHeight
	heightRange := g.cfg.Terrain.MaxHeight - minHeight

	heights := make(world.HeightMap, len(combined))
	for cell, v := range combined {
		t := (v - minV) / span
		heights[cell] = minHeight + int(math.Floor(t*float64(heightRange)))
	}

	log.Printf("height synthesis: %d cells, combined noise range [%.4f, %.4f]", len(heights), minV, maxV)
	return heights, nil
}
