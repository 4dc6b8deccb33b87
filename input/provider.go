package input

// Provider samples controller state once per frame.
type Provider interface {
	Poll() Raw
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func() Raw

// Poll calls f.
func (f ProviderFunc) Poll() Raw { return f() }

// Idle is a Provider whose controller is never touched.
var Idle Provider = ProviderFunc(func() Raw { return Raw{} })

// ScriptStep holds Raw for a number of polls.
type ScriptStep struct {
	Frames int
	Raw    Raw
}

// Script replays recorded controller state. After the last step it
// reports an idle controller.
type Script struct {
	steps []ScriptStep
	idx   int
	left  int
}

// NewScript creates a scripted provider.
func NewScript(steps ...ScriptStep) *Script {
	s := &Script{steps: steps}
	if len(steps) > 0 {
		s.left = steps[0].Frames
	}
	return s
}

// Poll implements Provider.
func (s *Script) Poll() Raw {
	for s.idx < len(s.steps) && s.left <= 0 {
		s.idx++
		if s.idx < len(s.steps) {
			s.left = s.steps[s.idx].Frames
		}
	}
	if s.idx >= len(s.steps) {
		return Raw{}
	}
	s.left--
	return s.steps[s.idx].Raw
}

// Done reports whether every step has been played.
func (s *Script) Done() bool {
	return s.idx >= len(s.steps) || (s.idx == len(s.steps)-1 && s.left <= 0)
}
