package chartview

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
)

// scriptStep represents a single action in a gesture script.
type scriptStep struct {
	Action   string  `json:"action"`
	Label    string  `json:"label,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	FromX    float64 `json:"fromX,omitempty"`
	FromY    float64 `json:"fromY,omitempty"`
	ToX      float64 `json:"toX,omitempty"`
	ToY      float64 `json:"toY,omitempty"`
	FromDist float64 `json:"fromDist,omitempty"`
	ToDist   float64 `json:"toDist,omitempty"`
	Value    float64 `json:"value,omitempty"`
	Frames   int     `json:"frames,omitempty"`
}

// gestureScript is the top-level JSON structure for a gesture script.
type gestureScript struct {
	Steps []scriptStep `json:"steps"`
}

var scriptActions = map[string]bool{
	"tap": true, "doubleTap": true, "drag": true, "pinch": true,
	"cancel": true, "wait": true, "zoomIn": true, "zoomOut": true,
	"fitScreen": true, "highlight": true, "clearHighlight": true,
	"rotate": true, "log": true,
}

// ScriptRunner sequences injected pointer input and chart commands across
// frames, for automated interaction tests and demos. Attach to a Chart via
// SetScriptRunner.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadGestureScript parses a JSON gesture script and returns a ScriptRunner
// ready to be attached to a Chart via SetScriptRunner.
func LoadGestureScript(jsonData []byte) (*ScriptRunner, error) {
	var script gestureScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("chartview: parse gesture script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, errors.New("chartview: parse gesture script: no steps")
	}
	for i, st := range script.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("chartview: parse gesture script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// SetScriptRunner attaches a ScriptRunner to the chart. The runner's step
// method is called from Chart.Update before injected input is processed.
func (c *Chart) SetScriptRunner(runner *ScriptRunner) {
	c.runner = runner
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Chart.Update.
func (r *ScriptRunner) step(c *Chart) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(c.injectQueue) > 0 {
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

	switch st.Action {
	case "tap":
		c.InjectTap(st.X, st.Y)
	case "doubleTap":
		c.InjectDoubleTap(st.X, st.Y)
	case "drag":
		c.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "pinch":
		c.InjectPinch(st.X, st.Y, st.FromDist, st.ToDist, st.Frames)
	case "cancel":
		c.InjectCancel()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "zoomIn":
		c.ZoomIn()
	case "zoomOut":
		c.ZoomOut()
	case "fitScreen":
		c.FitScreen()
	case "highlight":
		if h, ok := c.HighlightAt(st.X, st.Y); ok {
			c.HighlightValue(h)
		} else {
			c.ClearHighlight()
		}
	case "clearHighlight":
		c.ClearHighlight()
	case "rotate":
		c.SetRotation(st.Value)
	case "log":
		log.Printf("chartview: script: %s", st.Label)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(c.injectQueue) == 0 {
		r.done = true
	}
}
