package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jaswanthhitman45/storybuilder/domain"
)

func TestStateForStatus(t *testing.T) {
	cases := []struct {
		status string
		hasURL bool
		want   domain.VideoState
	}{
		{"completed", false, domain.VideoStateCompleted},
		{"Ready", false, domain.VideoStateCompleted},
		{"failed", false, domain.VideoStateFailed},
		{"cancelled", true, domain.VideoStateFailed},
		{"queued", false, domain.VideoStateProcessing},
		{"processing", true, domain.VideoStateProcessing},
		{"rendering", false, domain.VideoStateProcessing},
		{"rendering", true, domain.VideoStateCompleted},
		{"", true, domain.VideoStateCompleted},
	}

	for _, c := range cases {
		if got := StateForStatus(c.status, c.hasURL); got != c.want {
			t.Fatalf("StateForStatus(%q, %v) = %q, want %q", c.status, c.hasURL, got, c.want)
		}
	}
}

func TestDefaultProgressCurve_Buckets(t *testing.T) {
	curve := DefaultProgressCurve()

	cases := []struct {
		status  string
		elapsed time.Duration
		want    int
	}{
		{"queued", 0, 85},
		{"pending", 2 * time.Minute, 85},
		{"processing", 10 * time.Second, 87},
		{"processing", 45 * time.Second, 90},
		{"processing", 70 * time.Second, 93},
		{"processing", 100 * time.Second, 95},
		{"processing", 140 * time.Second, 97},
		{"processing", 170 * time.Second, 98},
		{"processing", 10 * time.Minute, 99},
		{"in_progress", 10 * time.Second, 87},
		{"completed", 0, 100},
		{"failed", 0, 0},
	}

	for _, c := range cases {
		point := curve(c.status, false, c.elapsed)
		if point.Progress != c.want {
			t.Fatalf("curve(%q, %v) = %d, want %d", c.status, c.elapsed, point.Progress, c.want)
		}
	}
}

func TestDefaultProgressCurve_UnknownStatus(t *testing.T) {
	curve := DefaultProgressCurve()

	point := curve("transcoding", false, 2*time.Minute)
	if point.Progress != 91 {
		t.Fatalf("Expected interpolated progress 91, got %d", point.Progress)
	}

	point = curve("transcoding", false, 30*time.Minute)
	if point.Progress != 99 {
		t.Fatalf("Expected interpolation capped at 99, got %d", point.Progress)
	}

	point = curve("transcoding", true, 0)
	if point.Progress != 100 {
		t.Fatalf("Expected resolved URL to force 100, got %d", point.Progress)
	}
}

func TestLoadProgressCurve_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curve.yaml")
	payload := `processing:
  - until_seconds: 10
    progress: 86
    estimated_time_left: 40
    message: "Warming up..."
  - until_seconds: 0
    progress: 95
    estimated_time_left: 5
    message: "Nearly there..."
`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatal("Failed to write curve file:", err)
	}

	curve, err := LoadProgressCurve(path)
	if err != nil {
		t.Fatal("Failed to load progress curve:", err)
	}

	if point := curve("processing", false, 5*time.Second); point.Progress != 86 {
		t.Fatalf("Expected overridden bucket 86, got %d", point.Progress)
	}
	if point := curve("processing", false, 5*time.Minute); point.Progress != 95 {
		t.Fatalf("Expected tail bucket 95, got %d", point.Progress)
	}
	// Terminal rows are not overridable.
	if point := curve("completed", false, 0); point.Progress != 100 {
		t.Fatalf("Expected terminal 100, got %d", point.Progress)
	}
}

func TestLoadProgressCurve_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, []byte("processing: []\n"), 0o600); err != nil {
		t.Fatal("Failed to write curve file:", err)
	}
	if _, err := LoadProgressCurve(empty); err == nil {
		t.Fatal("Expected error for empty bucket list")
	}

	outOfRange := filepath.Join(dir, "range.yaml")
	payload := "processing:\n  - until_seconds: 0\n    progress: 120\n"
	if err := os.WriteFile(outOfRange, []byte(payload), 0o600); err != nil {
		t.Fatal("Failed to write curve file:", err)
	}
	if _, err := LoadProgressCurve(outOfRange); err == nil {
		t.Fatal("Expected error for out-of-range progress")
	}

	if _, err := LoadProgressCurve(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("Expected error for missing file")
	}
}
