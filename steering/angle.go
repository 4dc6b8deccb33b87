// Package steering holds the per-agent steering math and behavior state
// machines: rate-limited turning, wandering, pursuit and evasion.
// Everything here is pure; callers own the agent state.
package steering

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const twoPi = 2 * math.Pi

// WrapAngle maps radians into (-Pi, Pi].
func WrapAngle(radians float64) float64 {
	if radians > -math.Pi && radians <= math.Pi {
		return radians
	}
	// math.Mod keeps huge inputs from looping; result is in (-2Pi, 2Pi).
	radians = math.Mod(radians, twoPi)
	if radians > math.Pi {
		radians -= twoPi
	}
	if radians <= -math.Pi {
		radians += twoPi
	}
	return radians
}

// AngleBetween returns the signed shortest rotation from a to b, in (-Pi, Pi].
func AngleBetween(a, b float64) float64 {
	return WrapAngle(b - a)
}

// TurnToFace returns the orientation reached by turning from currentAngle
// toward target, seen from position, by at most maxTurnSpeed radians.
// A target on top of position gives no preferred direction and the
// orientation is returned unchanged.
func TurnToFace(position, target r2.Vec, currentAngle, maxTurnSpeed float64) float64 {
	d := r2.Sub(target, position)
	if d.X == 0 && d.Y == 0 {
		return WrapAngle(currentAngle)
	}
	desired := math.Atan2(d.Y, d.X)

	difference := WrapAngle(desired - currentAngle)
	// Exactly opposite: both arcs are equal, turn the negative way.
	if difference == math.Pi {
		difference = -math.Pi
	}

	limit := math.Abs(maxTurnSpeed)
	difference = clamp(difference, -limit, limit)

	return WrapAngle(currentAngle + difference)
}

// HeadingVector returns the unit vector pointing along orientation.
func HeadingVector(orientation float64) r2.Vec {
	sin, cos := math.Sincos(orientation)
	return r2.Vec{X: cos, Y: sin}
}

// Integrate moves position forward along orientation by speed.
func Integrate(position r2.Vec, orientation, speed float64) r2.Vec {
	return r2.Add(position, r2.Scale(speed, HeadingVector(orientation)))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
