package arbor

import (
	"encoding/json"
	"fmt"
)

// scriptStep is one entry of a pointer session script. Coordinates are
// viewport pixels.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// scriptAction performs one step against w and returns how many further
// frames the runner idles before the next step.
type scriptAction func(w *World) (idle int)

// compile turns a decoded step into its action.
func (s scriptStep) compile() (scriptAction, error) {
	switch s.Action {
	case "move":
		return func(w *World) int {
			w.InjectMove(s.X, s.Y)
			return 0
		}, nil
	case "click":
		return func(w *World) int {
			w.InjectClick(s.X, s.Y)
			return 0
		}, nil
	case "drag":
		return func(w *World) int {
			w.InjectDrag(s.FromX, s.FromY, s.ToX, s.ToY, s.Frames)
			return 0
		}, nil
	case "screenshot":
		return func(w *World) int {
			w.Screenshot(s.Label)
			return 0
		}, nil
	case "wait":
		// The frame that runs the step is the first idle frame.
		return func(*World) int { return max(s.Frames-1, 0) }, nil
	default:
		return nil, fmt.Errorf("unknown action %q", s.Action)
	}
}

// TestRunner replays a scripted pointer session on a World. A step runs
// only once the injections of the previous step have been consumed, so each
// click or drag lands on the frames World.Update gives it.
type TestRunner struct {
	actions  []scriptAction
	next     int
	idle     int
	finished bool
}

// LoadTestScript decodes a JSON session of the form
//
//	{"steps": [{"action": "click", "x": 400, "y": 300}, ...]}
//
// Actions are move, click, drag, wait and screenshot.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var doc struct {
		Steps []scriptStep `json:"steps"`
	}
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(doc.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	r := &TestRunner{actions: make([]scriptAction, 0, len(doc.Steps))}
	for i, st := range doc.Steps {
		act, err := st.compile()
		if err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
		r.actions = append(r.actions, act)
	}
	return r, nil
}

// SetTestRunner makes World.Update drive runner. Pass nil to stop it.
func (w *World) SetTestRunner(runner *TestRunner) {
	w.testRunner = runner
}

// Done reports whether the session has played out completely.
func (r *TestRunner) Done() bool {
	return r.finished
}

// step is called once per World.Update, ahead of injected input.
func (r *TestRunner) step(w *World) {
	switch {
	case r.finished, len(w.injectQueue) > 0:
		return
	case r.idle > 0:
		r.idle--
		return
	case r.next == len(r.actions):
		r.finished = true
		return
	}
	r.idle = r.actions[r.next](w)
	r.next++
	r.finished = r.next == len(r.actions) && r.idle == 0 && len(w.injectQueue) == 0
}
