// Package noise provides the seeded coherent noise fields that drive terrain
// shaping, surface patching and scatter clustering.
package noise

import (
	"fmt"

	"github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"
	"github.com/segmentio/fasthash/fnv1a"
)

// Algorithm selects the noise implementation backing a Field.
type Algorithm string

const (
	AlgorithmPerlin      Algorithm = "perlin"
	AlgorithmOpenSimplex Algorithm = "opensimplex"
)

// Params configure one coherent noise field. Scale converts cell coordinates
// into noise space; octaves, persistence and lacunarity shape the fractal
// sum.
type Params struct {
	Scale       float64
	Octaves     int
	Persistence float64
	Lacunarity  float64
}

// Field evaluates seeded 2D noise over cell coordinates. Implementations are
// pure: the same field yields the same value for the same coordinates, and
// concurrent sampling is safe.
type Field interface {
	Sample(x, z float64) float64
}

// DeriveSeed produces an independent sub-seed for a named random stream.
// Hashing the label keeps the elevation, patch, cluster and structural
// streams decorrelated even though they share one master seed, and adding a
// stream never shifts the draws of existing ones.
func DeriveSeed(master int64, label string) int64 {
	return master ^ int64(fnv1a.HashString64(label))
}

// New builds a Field with the requested algorithm. An empty algorithm falls
// back to Perlin.
func New(alg Algorithm, p Params, seed int64) (Field, error) {
	switch alg {
	case AlgorithmPerlin, "":
		return newPerlinField(p, seed), nil
	case AlgorithmOpenSimplex:
		return newSimplexField(p, seed), nil
	default:
		return nil, fmt.Errorf("unknown noise algorithm %q", alg)
	}
}

// perlinField wraps go-perlin, which folds the octave loop into Noise2D:
// alpha is the amplitude divisor between octaves (the inverse of
// persistence) and beta the frequency multiplier (lacunarity).
type perlinField struct {
	noise *perlin.Perlin
	scale float64
}

func newPerlinField(p Params, seed int64) *perlinField {
	alpha := 2.0
	if p.Persistence > 0 {
		alpha = 1 / p.Persistence
	}
	beta := p.Lacunarity
	if beta <= 0 {
		beta = 2.0
	}
	octaves := p.Octaves
	if octaves < 1 {
		octaves = 1
	}
	return &perlinField{
		noise: perlin.NewPerlin(alpha, beta, int32(octaves), seed),
		scale: p.Scale,
	}
}

func (f *perlinField) Sample(x, z float64) float64 {
	return f.noise.Noise2D(x*f.scale, z*f.scale)
}

// simplexField sums opensimplex octaves itself and normalizes by the total
// amplitude so results stay within [-1, 1] regardless of octave count.
type simplexField struct {
	noise       opensimplex.Noise
	scale       float64
	octaves     int
	persistence float64
	lacunarity  float64
}

func newSimplexField(p Params, seed int64) *simplexField {
	octaves := p.Octaves
	if octaves < 1 {
		octaves = 1
	}
	persistence := p.Persistence
	if persistence <= 0 {
		persistence = 0.5
	}
	lacunarity := p.Lacunarity
	if lacunarity <= 0 {
		lacunarity = 2.0
	}
	return &simplexField{
		noise:       opensimplex.New(seed),
		scale:       p.Scale,
		octaves:     octaves,
		persistence: persistence,
		lacunarity:  lacunarity,
	}
}

func (f *simplexField) Sample(x, z float64) float64 {
	frequency := 1.0
	amplitude := 1.0
	noiseSum := 0.0
	maxAmplitude := 0.0

	for i := 0; i < f.octaves; i++ {
		noiseSum += f.noise.Eval2(x*f.scale*frequency, z*f.scale*frequency) * amplitude
		maxAmplitude += amplitude
		amplitude *= f.persistence
		frequency *= f.lacunarity
	}

	if maxAmplitude == 0 {
		return 0
	}
	return noiseSum / maxAmplitude
}
