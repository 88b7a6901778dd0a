package vmath

import "math"

// Ray is a half-line. Dir is expected to be normalized, so the t returned
// by the intersection helpers is a distance.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// NewRay normalizes dir. ok is false for a zero-length or non-finite ray.
func NewRay(origin, dir Vec3) (Ray, bool) {
	if !origin.Finite() || !dir.Finite() {
		return Ray{}, false
	}
	n := dir.Normalize()
	if n.MagSq() == 0 {
		return Ray{}, false
	}
	return Ray{Origin: origin, Dir: n}, true
}

func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// Box is an axis-aligned box given by its center and half extent per axis.
type Box struct {
	Center Vec3
	Half   Vec3
}

// Intersect uses the slab method. It returns the entry distance, or the
// exit distance when the origin is inside the box. Hits behind the origin
// are rejected.
func (b Box) Intersect(r Ray) (float64, bool) {
	tmin := math.Inf(-1)
	tmax := math.Inf(1)
	for i := 0; i < 3; i++ {
		o := r.Origin.Axis(i)
		d := r.Dir.Axis(i)
		lo := b.Center.Axis(i) - b.Half.Axis(i)
		hi := b.Center.Axis(i) + b.Half.Axis(i)
		if math.Abs(d) < Epsilon {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	if tmax < 0 {
		return 0, false
	}
	if tmin >= 0 {
		return tmin, true
	}
	return tmax, true
}

// Rect is a finite flat rectangle perpendicular to one axis (Normal: 0=X,
// 1=Y, 2=Z). HalfU and HalfV are the half extents on the two remaining
// axes in X, Y, Z order.
type Rect struct {
	Center Vec3
	Normal int
	HalfU  float64
	HalfV  float64
}

// Intersect returns the distance to the rectangle, hitting either face.
func (q Rect) Intersect(r Ray) (float64, bool) {
	d := r.Dir.Axis(q.Normal)
	if math.Abs(d) < Epsilon {
		return 0, false
	}
	t := (q.Center.Axis(q.Normal) - r.Origin.Axis(q.Normal)) / d
	if t < 0 {
		return 0, false
	}
	p := r.At(t)
	u, v := (q.Normal+1)%3, (q.Normal+2)%3
	if u > v {
		u, v = v, u
	}
	if math.Abs(p.Axis(u)-q.Center.Axis(u)) > q.HalfU {
		return 0, false
	}
	if math.Abs(p.Axis(v)-q.Center.Axis(v)) > q.HalfV {
		return 0, false
	}
	return t, true
}
