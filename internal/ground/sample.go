// Package ground selects exposed surface blocks from a generated map
// artifact and maps them to their electrified texture variants.
package ground

import (
	"fmt"
	"log"
	"math/rand"
	"sort"

	"github.com/gbusto/overseer/internal/world"
)

// groundNames lists the registry names whose surface blocks are eligible for
// electrification. Water, structural shadowrock and anything under a dome
// panel never qualify because the column scan only sees the topmost block.
var groundNames = map[string]bool{
	"voidsoil":  true,
	"voidgrass": true,
}

// Coordinate is one electrified ground position in the sampler's output.
type Coordinate struct {
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Z          int    `json:"z"`
	TextureURI string `json:"textureUri"`
}

// Options control one sampling run.
type Options struct {
	Samples int
	Seed    int64
}

// Sample scans the artifact for columns whose topmost block is ground,
// derives the electrified texture for each, and returns a seeded random
// subset of at most opts.Samples positions.
func Sample(artifact *world.Artifact, opts Options) ([]Coordinate, error) {
	if opts.Samples < 1 {
		return nil, fmt.Errorf("sample count must be at least 1, got %d", opts.Samples)
	}
	if artifact == nil || artifact.Blocks == nil || artifact.Blocks.Len() == 0 {
		return nil, fmt.Errorf("artifact holds no blocks")
	}

	types := make(map[int]world.BlockType, len(artifact.BlockTypes))
	for _, bt := range artifact.BlockTypes {
		types[bt.ID] = bt
	}

	type surface struct {
		y  int
		id int
	}
	tops := make(map[world.Cell]surface)
	artifact.Blocks.Each(func(x, y, z, id int) bool {
		cell := world.Cell{X: x, Z: z}
		if top, ok := tops[cell]; ok && top.y >= y {
			return true
		}
		tops[cell] = surface{y: y, id: id}
		return true
	})

	candidates := make([]Coordinate, 0, len(tops))
	for cell, top := range tops {
		bt, ok := types[top.id]
		if !ok || !groundNames[bt.Name] {
			continue
		}
		candidates = append(candidates, Coordinate{
			X:          cell.X,
			Y:          top.y,
			Z:          cell.Z,
			TextureURI: "blocks/" + bt.Name + "-electrified",
		})
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("artifact has no exposed ground blocks")
	}

	// The candidate order must not depend on map iteration, or the seeded
	// subset below would change between runs.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].X != candidates[j].X {
			return candidates[i].X < candidates[j].X
		}
		return candidates[i].Z < candidates[j].Z
	})

	count := opts.Samples
	if count > len(candidates) {
		count = len(candidates)
	}
	rng := rand.New(rand.NewSource(opts.Seed))
	perm := rng.Perm(len(candidates))
	out := make([]Coordinate, count)
	for i := range out {
		out[i] = candidates[perm[i]]
	}

	log.Printf("ground sampling: %d candidates, %d selected", len(candidates), count)
	return out, nil
}
