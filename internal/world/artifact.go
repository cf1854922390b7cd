package world

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Artifact is the complete generated map: the block registry, the sparse
// voxel grid and the entity placements. A generation run assembles it in
// memory and writes it to disk exactly once.
type Artifact struct {
	BlockTypes []BlockType
	Blocks     *BlockGrid
	Entities   []Placement
}

// artifactJSON mirrors the persisted layout consumed by the runtime: block
// positions keyed "x,y,z" with integer components, entity positions keyed
// with two-decimal components.
type artifactJSON struct {
	BlockTypes []BlockType       `json:"blockTypes"`
	Blocks     map[string]int    `json:"blocks"`
	Entities   map[string]Entity `json:"entities"`
}

// BlockKey renders a block position as its serialized map key.
func BlockKey(x, y, z int) string {
	return strconv.Itoa(x) + "," + strconv.Itoa(y) + "," + strconv.Itoa(z)
}

// ParseBlockKey parses a serialized block key back into a position.
func ParseBlockKey(key string) (x, y, z int, err error) {
	parts := strings.Split(key, ",")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("block key %q: want 3 components, got %d", key, len(parts))
	}
	coords := make([]int, 3)
	for i, part := range parts {
		coords[i], err = strconv.Atoi(part)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("block key %q: %w", key, err)
		}
	}
	return coords[0], coords[1], coords[2], nil
}

// MarshalJSON encodes the artifact in the runtime's map format. Both the
// block and entity objects marshal through Go maps, so keys come out sorted
// and the byte stream is reproducible for a given artifact.
func (a *Artifact) MarshalJSON() ([]byte, error) {
	out := artifactJSON{
		BlockTypes: a.BlockTypes,
		Blocks:     map[string]int{},
		Entities:   make(map[string]Entity, len(a.Entities)),
	}
	if a.Blocks != nil {
		out.Blocks = make(map[string]int, a.Blocks.Len())
		a.Blocks.Each(func(x, y, z, id int) bool {
			out.Blocks[BlockKey(x, y, z)] = id
			return true
		})
	}
	for _, p := range a.Entities {
		out.Entities[PositionKey(p.Position)] = p.Entity
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a persisted artifact back into grid form. Entity
// placements keep their encoded key precision, which is all downstream
// consumers need.
func (a *Artifact) UnmarshalJSON(data []byte) error {
	var in artifactJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	grid := NewBlockGrid(len(in.Blocks))
	for key, id := range in.Blocks {
		x, y, z, err := ParseBlockKey(key)
		if err != nil {
			return err
		}
		grid.Set(x, y, z, id)
	}
	entities := make([]Placement, 0, len(in.Entities))
	for key, e := range in.Entities {
		pos, err := parsePositionKey(key)
		if err != nil {
			return err
		}
		entities = append(entities, Placement{Position: pos, Entity: e})
	}
	a.BlockTypes = in.BlockTypes
	a.Blocks = grid
	a.Entities = entities
	return nil
}

// WriteFile persists the artifact atomically: encode, write to a uniquely
// named sibling temp file, fsync, then rename over the destination. Readers
// never observe a partial artifact.
func (a *Artifact) WriteFile(path string) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("encode map artifact: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create artifact directory: %w", err)
		}
	}
	tmp := path + ".tmp-" + uuid.NewString()
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write temp artifact: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("sync temp artifact: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close temp artifact: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename artifact into place: %w", err)
	}

	blocks := 0
	if a.Blocks != nil {
		blocks = a.Blocks.Len()
	}
	log.Printf("wrote map artifact %s: %d bytes, %d block types, %d blocks, %d entities, digest %016x",
		path, len(data), len(a.BlockTypes), blocks, len(a.Entities), xxhash.Sum64(data))
	return nil
}

// ReadFile loads a previously written artifact.
func ReadFile(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map artifact: %w", err)
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode map artifact %s: %w", path, err)
	}
	return &a, nil
}

func parsePositionKey(key string) (pos mgl64.Vec3, err error) {
	parts := strings.Split(key, ",")
	if len(parts) != 3 {
		return pos, fmt.Errorf("entity key %q: want 3 components, got %d", key, len(parts))
	}
	for i, part := range parts {
		pos[i], err = strconv.ParseFloat(part, 64)
		if err != nil {
			return pos, fmt.Errorf("entity key %q: %w", key, err)
		}
	}
	return pos, nil
}
