package sequoia

import (
	"encoding/json"
	"fmt"
)

// walkStep represents a single action in a walkthrough script.
type walkStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	Yaw     float32 `json:"yaw,omitempty"`
	Pitch   float32 `json:"pitch,omitempty"`
	Forward bool    `json:"forward,omitempty"`
	Back    bool    `json:"back,omitempty"`
	Left    bool    `json:"left,omitempty"`
	Right   bool    `json:"right,omitempty"`
	Frames  int     `json:"frames,omitempty"`
}

// walkScript is the top-level JSON structure for a walkthrough script.
type walkScript struct {
	Steps []walkStep `json:"steps"`
}

// Walkthrough replays scripted first-person input across frames for
// automated visual testing: camera turns, held movement, jumps,
// interactions, and screenshots. Attach via RunConfig.Walkthrough.
type Walkthrough struct {
	steps      []walkStep
	cursor     int
	framesLeft int
	active     walkStep
	done       bool
}

// LoadWalkthrough parses a JSON walkthrough script.
func LoadWalkthrough(jsonData []byte) (*Walkthrough, error) {
	var script walkScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse walkthrough: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse walkthrough: no steps")
	}
	return &Walkthrough{steps: script.Steps}, nil
}

// Done reports whether all steps in the script have been executed.
func (r *Walkthrough) Done() bool {
	return r.done
}

// step produces one frame of scripted input. Held actions (move, look)
// spread across their Frames count; one-shot actions (jump, interact,
// screenshot) fire on their activation frame only.
func (r *Walkthrough) step(s *Scene) frameInput {
	var in frameInput
	if r.done {
		return in
	}

	if r.framesLeft == 0 {
		if r.cursor >= len(r.steps) {
			r.done = true
			return in
		}
		r.active = r.steps[r.cursor]
		r.cursor++
		r.framesLeft = r.active.Frames
		if r.framesLeft < 1 {
			r.framesLeft = 1
		}

		switch r.active.Action {
		case "screenshot":
			s.Screenshot(r.active.Label)
		case "interact":
			in.interact = true
		case "jump":
			in.intent.Jump = true
		}
	}

	st := r.active
	switch st.Action {
	case "look":
		n := float32(st.Frames)
		if n < 1 {
			n = 1
		}
		cam := s.camera
		cam.Yaw += st.Yaw / n
		cam.Pitch += st.Pitch / n
		if cam.Pitch > pitchLimit {
			cam.Pitch = pitchLimit
		}
		if cam.Pitch < -pitchLimit {
			cam.Pitch = -pitchLimit
		}
	case "move":
		in.intent.Forward = st.Forward
		in.intent.Back = st.Back
		in.intent.Left = st.Left
		in.intent.Right = st.Right
	}

	r.framesLeft--
	if r.framesLeft == 0 && r.cursor >= len(r.steps) {
		r.done = true
	}
	return in
}
