package terrain

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"reflect"
	"testing"

	"github.com/gbusto/overseer/internal/config"
	"github.com/gbusto/overseer/internal/noise"
	"github.com/gbusto/overseer/internal/world"
)

// constantField stands in for coherent noise in tests that need exact
// control over heights and probabilities.
type constantField struct{ value float64 }

func (f constantField) Sample(x, z float64) float64 { return f.value }

// stubGenerator builds a Generator with fixed noise fields while the random
// streams stay seeded exactly like production.
func stubGenerator(cfg *config.Config, micro, macro, patch, cluster noise.Field) *Generator {
	return &Generator{
		cfg:         cfg,
		micro:       micro,
		macro:       macro,
		patch:       patch,
		cluster:     cluster,
		panelRand:   rand.New(rand.NewSource(noise.DeriveSeed(cfg.Seed, streamDomePanels))),
		scatterRand: rand.New(rand.NewSource(noise.DeriveSeed(cfg.Seed, streamScatterEntities))),
	}
}

func testConfig(radius int) *config.Config {
	cfg := config.Default()
	cfg.Radius = radius
	return cfg
}

func TestGenerateDeterministicArtifact(t *testing.T) {
	cfg := testConfig(16)

	run := func() []byte {
		gen, err := NewGenerator(cfg)
		if err != nil {
			t.Fatalf("NewGenerator: %v", err)
		}
		artifact, err := gen.Generate(context.Background())
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		data, err := json.Marshal(artifact)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		return data
	}

	if first, second := run(), run(); !bytes.Equal(first, second) {
		t.Fatalf("two runs with the same configuration produced different artifacts")
	}
}

func TestGenerateProducesAllLayers(t *testing.T) {
	cfg := testConfig(20)
	gen, err := NewGenerator(cfg)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	artifact, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(artifact.BlockTypes) != 4 {
		t.Fatalf("BlockTypes length = %d, want 4", len(artifact.BlockTypes))
	}
	if artifact.Blocks.Len() == 0 {
		t.Fatalf("artifact holds no blocks")
	}

	counts := make(map[int]int)
	artifact.Blocks.Each(func(x, y, z, id int) bool {
		counts[id]++
		return true
	})
	if counts[world.BlockVoidsoil]+counts[world.BlockVoidgrass] == 0 {
		t.Fatalf("no terrain surface blocks in artifact")
	}
	if counts[world.BlockShadowrock] == 0 {
		t.Fatalf("no structural blocks in artifact")
	}

	apexY := cfg.Dome.Height + cfg.Terrain.MaxHeight
	if id, ok := artifact.Blocks.Get(0, apexY, 0); !ok || id != world.BlockShadowrock {
		t.Fatalf("apex platform centre = (%d,%v), want shadowrock", id, ok)
	}
}

func TestGenerateHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen, err := NewGenerator(testConfig(24))
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	artifact, err := gen.Generate(ctx)
	if err == nil {
		t.Fatalf("Generate with cancelled context = nil error, want error")
	}
	if artifact != nil {
		t.Fatalf("Generate returned an artifact despite cancellation")
	}
}

func TestGenerateTerrainIndependentOfStructureAndScatter(t *testing.T) {
	base := testConfig(12)

	variant := testConfig(12)
	variant.Dome.MinPanels = 2
	variant.Dome.MaxPanels = 3
	variant.Dome.MinPanelSize = 4
	variant.Dome.MaxPanelSize = 5
	variant.Scatter.Density = 0.9

	terrainBlocks := func(cfg *config.Config) map[int64]int {
		gen, err := NewGenerator(cfg)
		if err != nil {
			t.Fatalf("NewGenerator: %v", err)
		}
		artifact, err := gen.Generate(context.Background())
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		blocks := make(map[int64]int)
		artifact.Blocks.Each(func(x, y, z, id int) bool {
			if id != world.BlockShadowrock {
				blocks[world.PackCoord(x, y, z)] = id
			}
			return true
		})
		return blocks
	}

	if !reflect.DeepEqual(terrainBlocks(base), terrainBlocks(variant)) {
		t.Fatalf("terrain blocks changed when only dome and scatter parameters differ")
	}
}

func TestNewGeneratorRejectsUnknownAlgorithm(t *testing.T) {
	cfg := testConfig(8)
	cfg.Noise.Algorithm = "triangle"
	if _, err := NewGenerator(cfg); err == nil {
		t.Fatalf("NewGenerator(unknown algorithm) = nil, want error")
	}
}
