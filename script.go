package canopy

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a pointer script.
type scriptStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// scriptFile is the top-level JSON structure for a pointer script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script is a parsed sequence of pointer actions used to drive interactions
// deterministically: scripted hover paths through (or out of) the safe
// corridor, click sequences, idle frames. Actions: "move", "press",
// "release", "click", "path" (linear from/to over frames), "wait" (hold
// position for frames).
type Script struct {
	steps []scriptStep
}

// LoadScript parses a JSON pointer script.
func LoadScript(data []byte) (*Script, error) {
	var file scriptFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse pointer script: %w", err)
	}
	for i, step := range file.Steps {
		switch step.Action {
		case "move", "press", "release", "click", "path", "wait":
		default:
			return nil, fmt.Errorf("pointer script step %d: unknown action %q", i, step.Action)
		}
	}
	return &Script{steps: file.Steps}, nil
}

// Len returns the number of steps.
func (s *Script) Len() int { return len(s.steps) }

// Feed queues the whole script on the manager. Each queued event is consumed
// one per frame by PointerManager.Update, so a fed script plays back over as
// many frames as it has events.
func (s *Script) Feed(m *PointerManager) {
	var cx, cy float64
	for _, step := range s.steps {
		switch step.Action {
		case "move":
			m.InjectMove(step.X, step.Y)
			cx, cy = step.X, step.Y
		case "press":
			m.InjectPress(step.X, step.Y)
			cx, cy = step.X, step.Y
		case "release":
			m.InjectRelease(step.X, step.Y)
			cx, cy = step.X, step.Y
		case "click":
			m.InjectClick(step.X, step.Y)
			cx, cy = step.X, step.Y
		case "path":
			m.InjectPath(step.FromX, step.FromY, step.ToX, step.ToY, step.Frames)
			cx, cy = step.ToX, step.ToY
		case "wait":
			frames := step.Frames
			if frames < 1 {
				frames = 1
			}
			for i := 0; i < frames; i++ {
				m.InjectMove(cx, cy)
			}
		}
	}
}
