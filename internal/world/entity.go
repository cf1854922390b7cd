package world

import (
	"fmt"
	"path"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Rotation is a unit quaternion serialized in component order. The scatterer
// only ever produces rotations about the vertical axis, so x and z stay zero.
type Rotation struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// YawRotation builds the quaternion for a rotation of yaw radians about +Y.
func YawRotation(yaw float64) Rotation {
	q := mgl64.QuatRotate(yaw, mgl64.Vec3{0, 1, 0})
	return Rotation{X: q.X(), Y: q.Y(), Z: q.Z(), W: q.W}
}

// RigidBody selects the physics body the runtime attaches to an entity.
type RigidBody struct {
	Type string `json:"type"`
}

// Entity is one decorative placement in the artifact's entity map.
type Entity struct {
	ModelURI         string    `json:"modelUri"`
	Name             string    `json:"name"`
	ModelScale       float64   `json:"modelScale"`
	Opacity          float64   `json:"opacity"`
	LoopedAnimations []string  `json:"modelLoopedAnimations"`
	RigidBodyOptions RigidBody `json:"rigidBodyOptions"`
	Rotation         Rotation  `json:"rotation"`
}

// Placement ties an entity to its world position. Positions stay numeric in
// memory; the fixed-precision string key is produced only at encode time.
type Placement struct {
	Position mgl64.Vec3
	Entity   Entity
}

// PositionKey renders a position as the artifact's entity map key. Two
// decimals round-trip the half-block offsets and scale-derived heights the
// scatterer produces.
func PositionKey(pos mgl64.Vec3) string {
	return fmt.Sprintf("%.2f,%.2f,%.2f", pos.X(), pos.Y(), pos.Z())
}

// ModelDisplayName derives an entity name from the last segment of a model
// URI, without its file suffix.
func ModelDisplayName(uri string) string {
	base := path.Base(uri)
	return strings.TrimSuffix(base, path.Ext(base))
}
