// Package picking casts rays against models.
package picking

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshweld/internal/model"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3 // Normalized direction
}

// NewRay creates a ray, normalizing dir.
func NewRay(origin, dir mgl32.Vec3) Ray {
	return Ray{Origin: origin, Direction: dir.Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj mgl32.Mat4) Ray {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH // Flip Y

	near := invViewProj.Mul4x1(mgl32.Vec4{ndcX, ndcY, -1, 1})
	far := invViewProj.Mul4x1(mgl32.Vec4{ndcX, ndcY, 1, 1})

	// Perspective divide
	if near.W() != 0 {
		near = near.Mul(1 / near.W())
	}
	if far.W() != 0 {
		far = far.Mul(1 / far.W())
	}

	origin := near.Vec3()
	return NewRay(origin, far.Vec3().Sub(origin))
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box model.AABB) (t float32, hit bool) {
	tmin := float32(-math.MaxFloat32)
	tmax := float32(math.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		if r.Direction[axis] == 0 {
			if r.Origin[axis] < box.Min[axis] || r.Origin[axis] > box.Max[axis] {
				return 0, false
			}
			continue
		}
		t1 := (box.Min[axis] - r.Origin[axis]) / r.Direction[axis]
		t2 := (box.Max[axis] - r.Origin[axis]) / r.Direction[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}

	// Return entry point, or exit point if starting inside
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectSphere returns the nearest non-negative hit distance on s.
func (r Ray) IntersectSphere(s model.Sphere) (t float32, hit bool) {
	oc := r.Origin.Sub(s.Center)
	a := r.Direction.Dot(r.Direction)
	halfB := oc.Dot(r.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	disc := halfB*halfB - a*c
	if disc < 0 || a == 0 {
		return 0, false
	}
	sq := float32(math.Sqrt(float64(disc)))

	t = (-halfB - sq) / a
	if t < 0 {
		// Origin inside the sphere
		t = (-halfB + sq) / a
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

const triangleEpsilon = 1e-7

// IntersectTriangle tests the ray against triangle (a, b, c) with the
// Möller-Trumbore method. Both windings are hit.
func (r Ray) IntersectTriangle(a, b, c mgl32.Vec3) (t float32, hit bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if det > -triangleEpsilon && det < triangleEpsilon {
		return 0, false // Parallel to the triangle plane
	}
	inv := 1 / det

	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t = e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}

// Hit describes the closest intersection with a model.
type Hit struct {
	Distance float32
	Point    mgl32.Vec3
	Triangle int // -1 when the analytic sphere was hit
}

// PickModel returns the closest intersection of r with m. Models carrying an
// analytic sphere are tested against it exactly; others are rejected by their
// bounds before walking triangles.
func PickModel(r Ray, m *model.Model) (Hit, bool) {
	if s, ok := m.Sphere(); ok {
		t, hit := r.IntersectSphere(s)
		if !hit {
			return Hit{}, false
		}
		return Hit{Distance: t, Point: r.At(t), Triangle: -1}, true
	}

	if m.NumberOfIndices() == 0 {
		return Hit{}, false
	}
	if _, hit := r.IntersectAABB(m.Bounds()); !hit {
		return Hit{}, false
	}

	vertices := m.Vertices()
	indices := m.Indices()
	best := Hit{Distance: float32(math.MaxFloat32), Triangle: -1}
	for tri := 0; tri+2 < len(indices); tri += 3 {
		t, hit := r.IntersectTriangle(
			vertices[indices[tri]].Position,
			vertices[indices[tri+1]].Position,
			vertices[indices[tri+2]].Position,
		)
		if hit && t < best.Distance {
			best = Hit{Distance: t, Triangle: tri / 3}
		}
	}
	if best.Triangle < 0 {
		return Hit{}, false
	}
	best.Point = r.At(best.Distance)
	return best, true
}

// PickClosest returns the index of the model r hits first, or -1.
func PickClosest(r Ray, models []*model.Model) (int, Hit) {
	closest := -1
	var best Hit
	for i, m := range models {
		h, ok := PickModel(r, m)
		if ok && (closest < 0 || h.Distance < best.Distance) {
			closest, best = i, h
		}
	}
	return closest, best
}
