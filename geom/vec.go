package geom

import (
	"math"
)

// Vec is a three-dimensional vector. Particle velocities are stored as Vecs.
type Vec [3]float64

// Add returns v1 + v2.
func (v1 Vec) Add(v2 Vec) Vec {
	return Vec{v1[0] + v2[0], v1[1] + v2[1], v1[2] + v2[2]}
}

// Sub returns v1 - v2.
func (v1 Vec) Sub(v2 Vec) Vec {
	return Vec{v1[0] - v2[0], v1[1] - v2[1], v1[2] - v2[2]}
}

// Scale returns k * v.
func (v Vec) Scale(k float64) Vec {
	return Vec{k * v[0], k * v[1], k * v[2]}
}

// Dot returns the dot product of v1 and v2.
func (v1 Vec) Dot(v2 Vec) float64 {
	return v1[0]*v2[0] + v1[1]*v2[1] + v1[2]*v2[2]
}

// Cross returns the cross product v1 x v2.
func (v1 Vec) Cross(v2 Vec) Vec {
	return Vec{
		v1[1]*v2[2] - v1[2]*v2[1],
		v1[2]*v2[0] - v1[0]*v2[2],
		v1[0]*v2[1] - v1[1]*v2[0],
	}
}

// Norm2 returns |v|^2.
func (v Vec) Norm2() float64 { return v.Dot(v) }

// Norm returns |v|.
func (v Vec) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// IsFinite returns false if any component is NaN or infinite.
func (v Vec) IsFinite() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Rotate returns the unit vector obtained by deflecting the unit vector u by
// the polar angle chi (given as its cosine) and azimuthal angle phi around u.
//
// The azimuth is measured against the x axis, unless u is (nearly) parallel
// to it, in which case the y axis is used instead.
func (u Vec) Rotate(cosChi, phi float64) Vec {
	sinChi := math.Sqrt(math.Max(0, 1-cosChi*cosChi))
	sinPhi, cosPhi := math.Sincos(phi)

	ref := Vec{1, 0, 0}
	cosTheta := u[0]
	if 1-math.Abs(cosTheta) < 1e-10 {
		ref = Vec{0, 1, 0}
		cosTheta = u[1]
	}
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))

	// u x ref and ref - (u.ref) u are orthogonal to u and both have length
	// sinTheta.
	perp1 := u.Cross(ref)
	perp2 := ref.Sub(u.Scale(cosTheta))

	out := u.Scale(cosChi)
	out = out.Add(perp1.Scale(sinChi * sinPhi / sinTheta))
	out = out.Add(perp2.Scale(sinChi * cosPhi / sinTheta))
	return out
}
