package targets

import (
	"aimrange/internal/vmath"
	"time"
)

// ID identifies a target for the lifetime of its session. Zero is never issued.
type ID uint64

type Target struct {
	ID        ID         `json:"id"`
	Position  vmath.Vec3 `json:"position"`
	SpawnedAt time.Time  `json:"spawnedAt"`
}

// Bounds is the unit cube the target occupies.
func (t Target) Bounds() vmath.Box {
	return vmath.Box{
		Center: t.Position,
		Half:   vmath.V3(HalfSize, HalfSize, HalfSize),
	}
}
