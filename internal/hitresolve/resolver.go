// Package hitresolve decides which target, if any, the reticle ray strikes.
//
// The ray always leaves the camera along its forward axis, which is the
// center of the viewport. Every object in the scene is intersected, the
// hits are ordered by distance, and the nearest one tagged as a target
// wins. Non-target geometry never occludes a target.
package hitresolve

import (
	"aimrange/internal/targets"
	"aimrange/internal/vmath"
	"math"
	"sort"
)

type Tag string

const (
	TagTarget  = Tag("target")
	TagGround  = Tag("ground")
	TagCatcher = Tag("catcher")
)

// Shape is anything a ray can be tested against.
type Shape interface {
	Intersect(r vmath.Ray) (float64, bool)
}

// Prop is non-target scene geometry.
type Prop struct {
	Tag   Tag
	Shape Shape
}

// DefaultProps mirrors the arena: a 100x100 floor two units below the
// targets and the invisible 100x100 click-catcher plane through the origin.
func DefaultProps() []Prop {
	return []Prop{
		{Tag: TagGround, Shape: vmath.Rect{Center: vmath.V3(0, -2, 0), Normal: 1, HalfU: 50, HalfV: 50}},
		{Tag: TagCatcher, Shape: vmath.Rect{Center: vmath.V3(0, 0, 0), Normal: 2, HalfU: 50, HalfV: 50}},
	}
}

type Camera struct {
	Position vmath.Vec3
	Forward  vmath.Vec3
}

// CameraFromAngles builds a camera from pointer-lock style yaw and pitch in
// radians. Yaw 0 and pitch 0 look down -Z; positive yaw turns left and
// positive pitch looks up.
func CameraFromAngles(pos vmath.Vec3, yaw, pitch float64) Camera {
	cp := math.Cos(pitch)
	return Camera{
		Position: pos,
		Forward: vmath.V3(
			-math.Sin(yaw)*cp,
			math.Sin(pitch),
			-math.Cos(yaw)*cp,
		),
	}
}

// Ray is the reticle ray. ok is false for a degenerate camera.
func (c Camera) Ray() (vmath.Ray, bool) {
	return vmath.NewRay(c.Position, c.Forward)
}

// Intersection is one ray hit, in the order Resolve considers them.
type Intersection struct {
	Tag      Tag
	TargetID targets.ID
	Distance float64
}

// Intersect returns every hit along the camera ray, nearest first. Equal
// distances keep insertion order: targets in the order given, then props.
func Intersect(cam Camera, live []targets.Target, props []Prop) []Intersection {
	ray, ok := cam.Ray()
	if !ok {
		return nil
	}

	hits := make([]Intersection, 0, len(live)+len(props))
	for _, t := range live {
		if d, ok := t.Bounds().Intersect(ray); ok {
			hits = append(hits, Intersection{Tag: TagTarget, TargetID: t.ID, Distance: d})
		}
	}
	for _, p := range props {
		if p.Shape == nil {
			continue
		}
		if d, ok := p.Shape.Intersect(ray); ok {
			hits = append(hits, Intersection{Tag: p.Tag, Distance: d})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

// Resolve returns the nearest target on the reticle ray. ok is false on a
// miss, including when only props were hit or the camera is degenerate.
func Resolve(cam Camera, live []targets.Target, props []Prop) (targets.ID, bool) {
	for _, hit := range Intersect(cam, live, props) {
		if hit.Tag == TagTarget {
			return hit.TargetID, true
		}
	}
	return 0, false
}
