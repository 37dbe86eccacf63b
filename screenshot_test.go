package sequoia

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-spawn", "after-spawn"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	s := NewScene()
	s.Screenshot("a")
	s.Screenshot("b")
	s.Screenshot("c")
	if len(s.screenshotQueue) != 3 {
		t.Fatalf("queue len = %d, want 3", len(s.screenshotQueue))
	}
	if s.screenshotQueue[0] != "a" || s.screenshotQueue[1] != "b" || s.screenshotQueue[2] != "c" {
		t.Errorf("queue = %v, want [a b c]", s.screenshotQueue)
	}
}

func TestScreenshotDirDefault(t *testing.T) {
	s := NewScene()
	if s.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want %q", s.ScreenshotDir, "screenshots")
	}
}

func TestFlushScreenshotsWritesPNG(t *testing.T) {
	s := NewScene()
	s.ScreenshotDir = t.TempDir()

	fb := NewFrameBuffer(8, 6)
	fb.Clear(Color{1, 0, 0, 1})

	s.Screenshot("front door")
	s.flushScreenshots(fb)

	if len(s.screenshotQueue) != 0 {
		t.Errorf("queue len = %d, want 0 after flush", len(s.screenshotQueue))
	}

	entries, err := os.ReadDir(s.ScreenshotDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("wrote %d files, want 1", len(entries))
	}

	name := entries[0].Name()
	if !strings.HasSuffix(name, ".png") {
		t.Errorf("filename %q should end in .png", name)
	}
	if !strings.Contains(name, "front_door") {
		t.Errorf("filename %q should contain the sanitized label", name)
	}

	f, err := os.Open(filepath.Join(s.ScreenshotDir, name))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 8 || bounds.Dy() != 6 {
		t.Errorf("image size = %dx%d, want 8x6", bounds.Dx(), bounds.Dy())
	}
	r, g, b, a := img.At(0, 0).RGBA()
	if r != 0xffff || g != 0 || b != 0 || a != 0xffff {
		t.Errorf("pixel (0,0) = (%d,%d,%d,%d), want opaque red", r, g, b, a)
	}
}

func TestFlushScreenshotsNoQueueNoDir(t *testing.T) {
	s := NewScene()
	s.ScreenshotDir = filepath.Join(t.TempDir(), "never-created")

	fb := NewFrameBuffer(2, 2)
	s.flushScreenshots(fb)

	if _, err := os.Stat(s.ScreenshotDir); !os.IsNotExist(err) {
		t.Error("flush with an empty queue should not create the directory")
	}
}

func TestFlushScreenshotsMultipleLabels(t *testing.T) {
	s := NewScene()
	s.ScreenshotDir = t.TempDir()

	fb := NewFrameBuffer(2, 2)
	s.Screenshot("one")
	s.Screenshot("two")
	s.flushScreenshots(fb)

	entries, err := os.ReadDir(s.ScreenshotDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("wrote %d files, want 2", len(entries))
	}
}
