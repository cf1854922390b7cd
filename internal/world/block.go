package world

// BlockType describes one entry of the block registry embedded in every map
// artifact. The runtime resolves grid ids against this registry, so the ids
// and names here are load-bearing and must stay stable across releases.
type BlockType struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	TextureURI string `json:"textureUri"`
	IsLiquid   bool   `json:"isLiquid,omitempty"`
}

// Block ids used by the generator. Id 0 is air and is never stored in the
// grid; absent keys mean air.
const (
	BlockVoidsoil   = 1
	BlockVoidgrass  = 2
	BlockShadowrock = 3
	BlockVoidwater  = 4
)

// DefaultBlockTypes returns the registry for arena maps. The voidgrass
// texture URI deliberately has no file extension; shipped clients already
// resolve it that way.
func DefaultBlockTypes() []BlockType {
	return []BlockType{
		{ID: BlockVoidsoil, Name: "voidsoil", TextureURI: "blocks/voidsoil.png"},
		{ID: BlockVoidgrass, Name: "voidgrass", TextureURI: "blocks/voidgrass"},
		{ID: BlockShadowrock, Name: "shadowrock", TextureURI: "blocks/shadowrock.png"},
		{ID: BlockVoidwater, Name: "voidwater", TextureURI: "blocks/voidwater.png", IsLiquid: true},
	}
}
