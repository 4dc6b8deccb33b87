// Package input turns controller state into the movement intent the
// simulation consumes, and checks it at the boundary.
package input

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

var (
	// ErrNonFinite is returned for NaN or infinite input values.
	ErrNonFinite = errors.New("input: non-finite value")
	// ErrOutOfRange is returned for finite values outside their allowed range.
	ErrOutOfRange = errors.New("input: value out of range")
)

// intentSlack absorbs rounding when a normalized intent is checked against 1.
const intentSlack = 1e-9

// DPad holds digital direction buttons.
type DPad struct {
	Up, Down, Left, Right bool
}

// Raw is controller state sampled once per frame.
type Raw struct {
	Stick       r2.Vec // left stick, each axis in [-1, 1], up is +Y
	DPad        DPad
	Pointer     r2.Vec // pointer position in world coordinates
	PointerDown bool
}

// Frame is what the simulation consumes once per tick.
type Frame struct {
	Elapsed float64 // seconds since the previous frame
	Move    r2.Vec  // movement intent in screen space (y down), |Move| <= 1
}

// Filter applies the circular deadzone to the stick, flips y into screen
// space, adds the d-pad, and normalizes any non-zero result.
func Filter(stick r2.Vec, pad DPad, deadzone float64) r2.Vec {
	if stick.X*stick.X+stick.Y*stick.Y < deadzone*deadzone {
		stick = r2.Vec{}
	}

	move := r2.Vec{X: stick.X, Y: -stick.Y}
	if pad.Left {
		move.X--
	}
	if pad.Right {
		move.X++
	}
	if pad.Up {
		move.Y--
	}
	if pad.Down {
		move.Y++
	}

	if n := r2.Norm(move); n > 0 {
		move = r2.Scale(1/n, move)
	}
	return move
}

// TowardPoint returns an intent that moves from toward pointer, slowing
// down linearly once within maxSpeed of it. Zero when the two coincide.
func TowardPoint(from, pointer r2.Vec, maxSpeed float64) r2.Vec {
	d := r2.Sub(pointer, from)
	dist := r2.Norm(d)
	if dist == 0 || maxSpeed <= 0 {
		return r2.Vec{}
	}

	delta := maxSpeed - math.Min(dist, maxSpeed)
	smoothStop := 1 - delta/maxSpeed
	return r2.Scale(smoothStop/dist, d)
}

// Resolve builds the frame for one tick. A held pointer overrides the stick.
func Resolve(raw Raw, elapsed float64, cat r2.Vec, deadzone, maxSpeed float64) Frame {
	f := Frame{Elapsed: elapsed}
	if raw.PointerDown {
		f.Move = TowardPoint(cat, raw.Pointer, maxSpeed)
	} else {
		f.Move = Filter(raw.Stick, raw.DPad, deadzone)
	}
	return f
}

// Validate checks the frame's preconditions.
func Validate(f Frame) error {
	if !finite(f.Elapsed) {
		return fmt.Errorf("%w: elapsed %v", ErrNonFinite, f.Elapsed)
	}
	if f.Elapsed < 0 {
		return fmt.Errorf("%w: elapsed %v is negative", ErrOutOfRange, f.Elapsed)
	}
	if !finite(f.Move.X) || !finite(f.Move.Y) {
		return fmt.Errorf("%w: move %v", ErrNonFinite, f.Move)
	}
	if n := r2.Norm(f.Move); n > 1+intentSlack {
		return fmt.Errorf("%w: |move| = %v exceeds 1", ErrOutOfRange, n)
	}
	return nil
}

// ValidateRaw checks controller state before it is filtered.
func ValidateRaw(raw Raw) error {
	for _, v := range []float64{raw.Stick.X, raw.Stick.Y, raw.Pointer.X, raw.Pointer.Y} {
		if !finite(v) {
			return fmt.Errorf("%w: raw %+v", ErrNonFinite, raw)
		}
	}
	if math.Abs(raw.Stick.X) > 1 || math.Abs(raw.Stick.Y) > 1 {
		return fmt.Errorf("%w: stick %v outside [-1, 1]", ErrOutOfRange, raw.Stick)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
