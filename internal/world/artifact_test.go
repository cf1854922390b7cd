package world

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func testArtifact() *Artifact {
	grid := NewBlockGrid(16)
	grid.Set(0, 0, 0, BlockVoidsoil)
	grid.Set(0, 1, 0, BlockVoidgrass)
	grid.Set(-2, 3, 5, BlockShadowrock)

	return &Artifact{
		BlockTypes: DefaultBlockTypes(),
		Blocks:     grid,
		Entities: []Placement{{
			Position: mgl64.Vec3{0.5, 4.5, 0.5},
			Entity: Entity{
				ModelURI:         "models/environment/voidtree.gltf",
				Name:             "voidtree",
				ModelScale:       1.25,
				Opacity:          1,
				LoopedAnimations: []string{"idle"},
				RigidBodyOptions: RigidBody{Type: "fixed"},
				Rotation:         YawRotation(1.5),
			},
		}},
	}
}

func TestArtifactMarshalShape(t *testing.T) {
	data, err := json.Marshal(testArtifact())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded artifactJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if len(decoded.BlockTypes) != 4 {
		t.Fatalf("blockTypes length = %d, want 4", len(decoded.BlockTypes))
	}
	if decoded.BlockTypes[1].TextureURI != "blocks/voidgrass" {
		t.Fatalf("voidgrass textureUri = %q, want %q", decoded.BlockTypes[1].TextureURI, "blocks/voidgrass")
	}
	if !decoded.BlockTypes[3].IsLiquid {
		t.Fatalf("voidwater isLiquid = false, want true")
	}

	wantBlocks := map[string]int{
		"0,0,0":  BlockVoidsoil,
		"0,1,0":  BlockVoidgrass,
		"-2,3,5": BlockShadowrock,
	}
	for key, id := range wantBlocks {
		if decoded.Blocks[key] != id {
			t.Fatalf("blocks[%q] = %d, want %d", key, decoded.Blocks[key], id)
		}
	}
	if len(decoded.Blocks) != len(wantBlocks) {
		t.Fatalf("blocks length = %d, want %d", len(decoded.Blocks), len(wantBlocks))
	}

	e, ok := decoded.Entities["0.50,4.50,0.50"]
	if !ok {
		t.Fatalf("entity key %q missing, got keys %v", "0.50,4.50,0.50", decoded.Entities)
	}
	if e.ModelURI != "models/environment/voidtree.gltf" || e.RigidBodyOptions.Type != "fixed" {
		t.Fatalf("entity = %+v, want voidtree with fixed body", e)
	}

	// isLiquid must be omitted for solids rather than emitted as false.
	if strings.Count(string(data), "isLiquid") != 1 {
		t.Fatalf("isLiquid appears %d times, want 1", strings.Count(string(data), "isLiquid"))
	}
}

func TestArtifactMarshalDeterministic(t *testing.T) {
	a := testArtifact()
	first, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	second, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("repeated Marshal produced different bytes")
	}
}

func TestArtifactWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "map.json")

	a := testArtifact()
	if err := a.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "map.json" {
		t.Fatalf("output dir entries = %v, want only map.json", entries)
	}

	loaded, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	wantJSON, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal original: %v", err)
	}
	gotJSON, err := json.Marshal(loaded)
	if err != nil {
		t.Fatalf("Marshal loaded: %v", err)
	}
	if !bytes.Equal(wantJSON, gotJSON) {
		t.Fatalf("round trip changed artifact:\n got %s\nwant %s", gotJSON, wantJSON)
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatalf("ReadFile(absent) = nil, want error")
	}
}

func TestParseBlockKeyRejectsMalformedKeys(t *testing.T) {
	for _, key := range []string{"", "1,2", "1,2,3,4", "a,b,c", "1, 2,3x"} {
		if _, _, _, err := ParseBlockKey(key); err == nil {
			t.Fatalf("ParseBlockKey(%q) = nil, want error", key)
		}
	}
}

func TestParseBlockKeyRoundTrip(t *testing.T) {
	x, y, z, err := ParseBlockKey(BlockKey(-12, 7, 300))
	if err != nil {
		t.Fatalf("ParseBlockKey: %v", err)
	}
	if x != -12 || y != 7 || z != 300 {
		t.Fatalf("ParseBlockKey(BlockKey(-12,7,300)) = (%d,%d,%d)", x, y, z)
	}
}
