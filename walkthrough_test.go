package sequoia

import "testing"

func TestLoadWalkthroughBadJSON(t *testing.T) {
	if _, err := LoadWalkthrough([]byte("{nope")); err == nil {
		t.Fatal("expected parse error for malformed JSON")
	}
}

func TestLoadWalkthroughNoSteps(t *testing.T) {
	if _, err := LoadWalkthrough([]byte(`{"steps":[]}`)); err == nil {
		t.Fatal("expected error for empty script")
	}
}

func TestWalkthroughMoveHeldAcrossFrames(t *testing.T) {
	w, err := LoadWalkthrough([]byte(`{"steps":[{"action":"move","forward":true,"frames":3}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s := NewScene()

	for i := 0; i < 3; i++ {
		in := w.step(s)
		if !in.intent.Forward {
			t.Errorf("frame %d: Forward not held", i)
		}
	}
	if !w.Done() {
		t.Error("script should be done after its last frame")
	}
	if in := w.step(s); in.intent.Forward {
		t.Error("input after completion should be empty")
	}
}

func TestWalkthroughLookSpreadsRotation(t *testing.T) {
	w, err := LoadWalkthrough([]byte(`{"steps":[{"action":"look","yaw":30,"pitch":-15,"frames":3}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s := NewScene()

	w.step(s)
	assertNear(t, "yaw after one frame", s.Camera().Yaw, -80)
	w.step(s)
	w.step(s)
	assertNear(t, "final yaw", s.Camera().Yaw, -60)
	assertNear(t, "final pitch", s.Camera().Pitch, -15)
}

func TestWalkthroughLookClampsPitch(t *testing.T) {
	w, err := LoadWalkthrough([]byte(`{"steps":[{"action":"look","pitch":400,"frames":2}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s := NewScene()

	w.step(s)
	w.step(s)
	assertNear(t, "pitch", s.Camera().Pitch, pitchLimit)
}

func TestWalkthroughJumpFiresOnce(t *testing.T) {
	w, err := LoadWalkthrough([]byte(`{"steps":[{"action":"jump","frames":3}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s := NewScene()

	if in := w.step(s); !in.intent.Jump {
		t.Error("jump should fire on its activation frame")
	}
	for i := 1; i < 3; i++ {
		if in := w.step(s); in.intent.Jump {
			t.Errorf("frame %d: jump should not repeat", i)
		}
	}
}

func TestWalkthroughInteractFiresOnce(t *testing.T) {
	w, err := LoadWalkthrough([]byte(`{"steps":[{"action":"interact","frames":2}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s := NewScene()

	if in := w.step(s); !in.interact {
		t.Error("interact should fire on its activation frame")
	}
	if in := w.step(s); in.interact {
		t.Error("interact should not repeat on held frames")
	}
}

func TestWalkthroughScreenshotEnqueues(t *testing.T) {
	w, err := LoadWalkthrough([]byte(`{"steps":[{"action":"screenshot","label":"hall"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s := NewScene()

	w.step(s)
	if len(s.screenshotQueue) != 1 || s.screenshotQueue[0] != "hall" {
		t.Errorf("screenshot queue = %v, want [hall]", s.screenshotQueue)
	}
	if !w.Done() {
		t.Error("single-frame script should be done")
	}
}

func TestWalkthroughWaitIdles(t *testing.T) {
	w, err := LoadWalkthrough([]byte(`{"steps":[
		{"action":"wait","frames":2},
		{"action":"move","back":true}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s := NewScene()

	for i := 0; i < 2; i++ {
		in := w.step(s)
		if in.intent != (MoveIntent{}) || in.interact {
			t.Errorf("wait frame %d produced input %+v", i, in)
		}
		if w.Done() {
			t.Fatalf("done too early at wait frame %d", i)
		}
	}

	// A step without a frame count runs for exactly one frame.
	if in := w.step(s); !in.intent.Back {
		t.Error("move step after wait should hold Back")
	}
	if !w.Done() {
		t.Error("script should be done after final step")
	}
}
