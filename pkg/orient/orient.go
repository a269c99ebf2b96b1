// Package orient converts yaw/pitch orientations into direction vectors,
// navigation axes and combined view-projection matrices.
//
// Angles are radians. Yaw rotates around +Y starting at +Z, pitch lifts the
// direction towards +Y.
package orient

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// TwoPi is a full turn.
	TwoPi = 2 * gomath.Pi

	// PitchEpsilon keeps pitch away from the poles where LookAt degenerates.
	PitchEpsilon = 0.01

	// MaxPitch and MinPitch are the inclusive pitch bounds.
	MaxPitch = float32(gomath.Pi/2 - PitchEpsilon)
	MinPitch = -MaxPitch
)

// WorldUp is the up vector used for every view matrix.
var WorldUp = mgl32.Vec3{0, 1, 0}

// LookDirection returns the unit direction for a yaw/pitch pair.
func LookDirection(yaw, pitch float32) mgl32.Vec3 {
	sy, cy := gomath.Sincos(float64(yaw))
	sp, cp := gomath.Sincos(float64(pitch))
	return mgl32.Vec3{
		float32(sy * cp),
		float32(sp),
		float32(cy * cp),
	}
}

// Basis returns the navigation axes for a yaw/pitch pair.
//
// Forward and up take tan(pitch) as their vertical component, so moving
// "forward" while looking up drifts faster than the look direction would
// suggest. The axes are individually normalized but not orthogonal.
func Basis(yaw, pitch float32) (right, up, forward mgl32.Vec3) {
	sy, cy := gomath.Sincos(float64(yaw))
	sp, cp := gomath.Sincos(float64(pitch))
	tp := gomath.Tan(float64(pitch))

	forward = mgl32.Vec3{float32(sy), float32(tp), float32(cy)}.Normalize()
	right = mgl32.Vec3{-forward.Z(), 0, forward.X()}.Normalize()
	up = mgl32.Vec3{float32(sp), float32(tp), float32(cp)}.Normalize()
	return right, up, forward
}

// ViewProjection returns projection * view for an eye looking along dir.
// fovDeg is the vertical field of view in degrees.
func ViewProjection(eye, dir mgl32.Vec3, fovDeg, aspect, near, far float32) mgl32.Mat4 {
	view := mgl32.LookAtV(eye, eye.Add(dir), WorldUp)
	proj := mgl32.Perspective(mgl32.DegToRad(fovDeg), aspect, near, far)
	return proj.Mul4(view)
}

// WrapAngle maps a into [0, 2π).
func WrapAngle(a float32) float32 {
	w := gomath.Mod(float64(a), TwoPi)
	if w < 0 {
		w += TwoPi
	}
	r := float32(w)
	// float32 rounding can land exactly on 2π
	if r >= float32(TwoPi) {
		return 0
	}
	return r
}

// ClampPitch limits p to [MinPitch, MaxPitch].
func ClampPitch(p float32) float32 {
	if p > MaxPitch {
		return MaxPitch
	}
	if p < MinPitch {
		return MinPitch
	}
	return p
}
