package lumen

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Steps  int     `json:"steps,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"screenshot":  true,
	"click":       true,
	"scroll-up":   true,
	"scroll-down": true,
	"wait":        true,
	"quit":        true,
}

// scriptHost is what a TestRunner drives: the running app loop.
type scriptHost interface {
	eventQueue() *EventQueue
	screenshot(label string)
	requestQuit()
}

// TestRunner sequences injected input events and screenshots across frames
// for automated visual testing. Pass it to Run via RunConfig.TestRunner.
//
// Actions: "scroll-up" / "scroll-down" (steps notches, default 1), "click"
// (x, y), "wait" (frames), "screenshot" (label) and "quit".
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame.
func (r *TestRunner) step(h scriptHost) {
	if r.done {
		return
	}
	q := h.eventQueue()
	// Wait for pending injections to drain before advancing.
	if q.Len() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	steps := max(st.Steps, 1)
	switch st.Action {
	case "screenshot":
		h.screenshot(st.Label)
	case "click":
		q.InjectClick(st.X, st.Y)
	case "scroll-up":
		q.InjectWheel(steps)
	case "scroll-down":
		q.InjectWheel(-steps)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "quit":
		h.requestQuit()
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && q.Len() == 0 {
		r.done = true
	}
}
