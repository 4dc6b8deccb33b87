package input

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func near(a, b r2.Vec) bool {
	return r2.Norm(r2.Sub(a, b)) < 1e-9
}

func TestFilter(t *testing.T) {
	s := 1 / math.Sqrt2
	tests := []struct {
		name  string
		stick r2.Vec
		pad   DPad
		want  r2.Vec
	}{
		{"idle", r2.Vec{}, DPad{}, r2.Vec{}},
		{"inside deadzone", r2.Vec{X: 0.2, Y: 0.1}, DPad{}, r2.Vec{}},
		{"deadzone is circular", r2.Vec{X: 0.2, Y: 0.2}, DPad{}, r2.Vec{X: s, Y: -s}},
		{"stick up is screen up", r2.Vec{X: 0.6, Y: 0.8}, DPad{}, r2.Vec{X: 0.6, Y: -0.8}},
		{"small tilt normalized", r2.Vec{X: 0.3}, DPad{}, r2.Vec{X: 1}},
		{"dpad diagonal", r2.Vec{}, DPad{Up: true, Left: true}, r2.Vec{X: -s, Y: -s}},
		{"dpad cancels", r2.Vec{}, DPad{Left: true, Right: true}, r2.Vec{}},
		{"dpad adds to stick", r2.Vec{X: 1}, DPad{Down: true}, r2.Vec{X: s, Y: s}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Filter(tt.stick, tt.pad, 0.25); !near(got, tt.want) {
				t.Errorf("Filter(%v, %+v) = %v, want %v", tt.stick, tt.pad, got, tt.want)
			}
		})
	}
}

func TestTowardPoint(t *testing.T) {
	tests := []struct {
		name    string
		pointer r2.Vec
		want    r2.Vec
	}{
		{"far pointer is full speed", r2.Vec{X: 100}, r2.Vec{X: 1}},
		{"close pointer slows down", r2.Vec{X: 3, Y: 4}, r2.Vec{X: 0.4, Y: 0.8 * 2 / 3}},
		{"on the pointer", r2.Vec{}, r2.Vec{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TowardPoint(r2.Vec{}, tt.pointer, 7.5); !near(got, tt.want) {
				t.Errorf("TowardPoint(%v) = %v, want %v", tt.pointer, got, tt.want)
			}
		})
	}
}

func TestResolvePointerOverridesStick(t *testing.T) {
	raw := Raw{
		Stick:       r2.Vec{X: -1},
		Pointer:     r2.Vec{X: 500, Y: 100},
		PointerDown: true,
	}
	f := Resolve(raw, 1.0/60, r2.Vec{X: 100, Y: 100}, 0.25, 7.5)
	if !near(f.Move, r2.Vec{X: 1}) {
		t.Errorf("move = %v, want toward pointer", f.Move)
	}

	raw.PointerDown = false
	f = Resolve(raw, 1.0/60, r2.Vec{X: 100, Y: 100}, 0.25, 7.5)
	if !near(f.Move, r2.Vec{X: -1}) {
		t.Errorf("move = %v, want stick", f.Move)
	}
}

func TestValidate(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name  string
		frame Frame
		want  error
	}{
		{"ok", Frame{Elapsed: 0.016, Move: r2.Vec{X: 0.6, Y: 0.8}}, nil},
		{"zero elapsed ok", Frame{}, nil},
		{"nan elapsed", Frame{Elapsed: nan}, ErrNonFinite},
		{"inf elapsed", Frame{Elapsed: math.Inf(1)}, ErrNonFinite},
		{"negative elapsed", Frame{Elapsed: -0.1}, ErrOutOfRange},
		{"nan move", Frame{Move: r2.Vec{X: nan}}, ErrNonFinite},
		{"inf move", Frame{Move: r2.Vec{Y: math.Inf(-1)}}, ErrNonFinite},
		{"move too long", Frame{Move: r2.Vec{X: 1, Y: 1}}, ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.frame)
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateRaw(t *testing.T) {
	if err := ValidateRaw(Raw{Stick: r2.Vec{X: 1, Y: -1}}); err != nil {
		t.Errorf("full tilt rejected: %v", err)
	}
	if err := ValidateRaw(Raw{Stick: r2.Vec{X: 1.5}}); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("stick 1.5: err = %v, want ErrOutOfRange", err)
	}
	if err := ValidateRaw(Raw{Pointer: r2.Vec{Y: math.NaN()}}); !errors.Is(err, ErrNonFinite) {
		t.Errorf("nan pointer: err = %v, want ErrNonFinite", err)
	}
}

func TestScript(t *testing.T) {
	right := Raw{Stick: r2.Vec{X: 1}}
	left := Raw{Stick: r2.Vec{X: -1}}
	s := NewScript(ScriptStep{Frames: 2, Raw: right}, ScriptStep{Frames: 1, Raw: left})

	want := []Raw{right, right, left, {}, {}}
	for i, w := range want {
		if raw := s.Poll(); raw != w {
			t.Errorf("poll %d = %+v, want %+v", i, raw, w)
		}
	}
	if !s.Done() {
		t.Error("script not done after all steps")
	}
}

func TestScriptSkipsEmptySteps(t *testing.T) {
	up := Raw{DPad: DPad{Up: true}}
	s := NewScript(ScriptStep{Frames: 0, Raw: Raw{PointerDown: true}}, ScriptStep{Frames: 1, Raw: up})

	if raw := s.Poll(); raw != up {
		t.Errorf("first poll = %+v, want %+v", raw, up)
	}
}

func TestIdle(t *testing.T) {
	if raw := Idle.Poll(); raw != (Raw{}) {
		t.Errorf("Idle.Poll() = %+v, want zero", raw)
	}
}

func TestProviderFunc(t *testing.T) {
	var p Provider = ProviderFunc(func() Raw {
		return Raw{PointerDown: true}
	})
	if raw := p.Poll(); !raw.PointerDown {
		t.Errorf("Poll() = %+v", raw)
	}
}
