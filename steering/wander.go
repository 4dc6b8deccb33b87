package steering

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// RandSource supplies uniform values in [0, 1). *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

// WanderParams tunes the wander behavior.
type WanderParams struct {
	Jitter       float64 // max per-tick change of each wander direction component
	FollowFactor float64 // fraction of turn speed used to follow the wander direction
	CenterPull   float64 // fraction of turn speed used to return to center at the rim
}

// DefaultWanderParams returns the stock wander tuning.
func DefaultWanderParams() WanderParams {
	return WanderParams{Jitter: 0.25, FollowFactor: 0.15, CenterPull: 0.3}
}

// WanderResult is the updated wander state of one agent.
type WanderResult struct {
	Direction   r2.Vec
	Orientation float64
}

// Wander drifts the agent's wander direction by a random amount, turns
// toward it, then turns back toward the arena center. The pull grows with
// the square of the distance from center, so agents curve home without walls.
//
// The total turn this tick is at most
// (FollowFactor + CenterPull*nd*nd) * turnSpeed, with nd the distance from
// center over arena.MaxRadius().
func Wander(position, direction r2.Vec, orientation, turnSpeed float64, arena Bounds, p WanderParams, rng RandSource) WanderResult {
	if rng != nil && p.Jitter > 0 {
		direction.X += lerp(-p.Jitter, p.Jitter, rng.Float64())
		direction.Y += lerp(-p.Jitter, p.Jitter, rng.Float64())
	}
	if n := r2.Norm(direction); n > 0 {
		direction = r2.Scale(1/n, direction)
		orientation = TurnToFace(position, r2.Add(position, direction), orientation, p.FollowFactor*turnSpeed)
	}

	center := arena.Center()
	nd := NormalizedDistance(position, center, arena.MaxRadius())
	turnToCenter := p.CenterPull * nd * nd * turnSpeed
	orientation = TurnToFace(position, center, orientation, turnToCenter)

	return WanderResult{Direction: direction, Orientation: orientation}
}

// NormalizedDistance returns |position-center| / maxRadius, or 0 for an
// arena with no size.
func NormalizedDistance(position, center r2.Vec, maxRadius float64) float64 {
	if maxRadius <= 0 || math.IsInf(maxRadius, 0) {
		return 0
	}
	return r2.Norm(r2.Sub(position, center)) / maxRadius
}

// MaxWanderTurn is the largest orientation change Wander can make at position.
func MaxWanderTurn(position r2.Vec, turnSpeed float64, arena Bounds, p WanderParams) float64 {
	nd := NormalizedDistance(position, arena.Center(), arena.MaxRadius())
	return (p.FollowFactor + p.CenterPull*nd*nd) * math.Abs(turnSpeed)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
