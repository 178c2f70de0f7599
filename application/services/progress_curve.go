package services

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jaswanthhitman45/storybuilder/domain"
	"gopkg.in/yaml.v3"
)

// ProgressPoint is one synthesized UI sample: a percentage, a remaining
// time guess in seconds and a human-readable message.
type ProgressPoint struct {
	Progress          int
	EstimatedTimeLeft int
	Message           string
}

// ProgressCurve fabricates a plausible progress sample from the provider's
// free-form status string and the elapsed wall-clock time. The provider
// exposes no real percentage, so this is a UX smoothing device, not a
// measurement.
type ProgressCurve func(status string, hasURL bool, elapsed time.Duration) ProgressPoint

// StateForStatus classifies the provider's status vocabulary into the
// three states the UI understands. hasURL promotes an unrecognized status
// to completed, since a resolved artifact is stronger evidence than the
// status string.
func StateForStatus(status string, hasURL bool) domain.VideoState {
	switch strings.ToLower(status) {
	case "completed", "ready", "finished", "success":
		return domain.VideoStateCompleted
	case "failed", "error", "cancelled":
		return domain.VideoStateFailed
	case "queued", "pending", "processing", "in_progress", "generating":
		return domain.VideoStateProcessing
	default:
		if hasURL {
			return domain.VideoStateCompleted
		}
		return domain.VideoStateProcessing
	}
}

type curveBucket struct {
	Until             time.Duration
	Progress          int
	EstimatedTimeLeft int
	Message           string
}

var defaultProcessingBuckets = []curveBucket{
	{Until: 30 * time.Second, Progress: 87, EstimatedTimeLeft: 75, Message: "Initializing AI video generation..."},
	{Until: 60 * time.Second, Progress: 90, EstimatedTimeLeft: 60, Message: "AI analyzing story content..."},
	{Until: 90 * time.Second, Progress: 93, EstimatedTimeLeft: 45, Message: "Creating visual elements..."},
	{Until: 120 * time.Second, Progress: 95, EstimatedTimeLeft: 30, Message: "Syncing audio with visuals..."},
	{Until: 150 * time.Second, Progress: 97, EstimatedTimeLeft: 20, Message: "Rendering video..."},
	{Until: 180 * time.Second, Progress: 98, EstimatedTimeLeft: 15, Message: "Final processing..."},
	{Until: 0, Progress: 99, EstimatedTimeLeft: 10, Message: "Almost ready!"},
}

// DefaultProgressCurve is the built-in elapsed-time bucket table.
func DefaultProgressCurve() ProgressCurve {
	return newBucketCurve(defaultProcessingBuckets)
}

func newBucketCurve(processing []curveBucket) ProgressCurve {
	return func(status string, hasURL bool, elapsed time.Duration) ProgressPoint {
		switch strings.ToLower(status) {
		case "queued", "pending":
			return ProgressPoint{Progress: 85, EstimatedTimeLeft: 90, Message: "Video queued for AI processing..."}
		case "processing", "in_progress", "generating":
			for _, b := range processing {
				if b.Until > 0 && elapsed < b.Until {
					return ProgressPoint{Progress: b.Progress, EstimatedTimeLeft: b.EstimatedTimeLeft, Message: b.Message}
				}
			}
			last := processing[len(processing)-1]
			return ProgressPoint{Progress: last.Progress, EstimatedTimeLeft: last.EstimatedTimeLeft, Message: last.Message}
		case "completed", "ready", "finished", "success":
			return ProgressPoint{Progress: 100, EstimatedTimeLeft: 0, Message: "Video generation completed!"}
		case "failed", "error", "cancelled":
			return ProgressPoint{Progress: 0, EstimatedTimeLeft: 0, Message: "Video generation failed"}
		default:
			if hasURL {
				return ProgressPoint{Progress: 100, EstimatedTimeLeft: 0, Message: "Video generation completed!"}
			}
			minutes := int(elapsed / time.Minute)
			progress := 85 + minutes*3
			if progress > 99 {
				progress = 99
			}
			eta := 60 - minutes*15
			if eta < 5 {
				eta = 5
			}
			label := strings.ToLower(status)
			if label == "" {
				label = "unknown status"
			}
			return ProgressPoint{Progress: progress, EstimatedTimeLeft: eta, Message: fmt.Sprintf("Processing video (%s)...", label)}
		}
	}
}

type curveFileBucket struct {
	UntilSeconds      int    `yaml:"until_seconds"`
	Progress          int    `yaml:"progress"`
	EstimatedTimeLeft int    `yaml:"estimated_time_left"`
	Message           string `yaml:"message"`
}

type curveFile struct {
	Processing []curveFileBucket `yaml:"processing"`
}

// LoadProgressCurve reads a YAML override for the processing buckets. The
// queued/terminal rows are fixed; only the interpolated middle of the
// curve is tunable.
func LoadProgressCurve(path string) (ProgressCurve, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read progress curve file: %w", err)
	}

	var spec curveFile
	if err := yaml.Unmarshal(payload, &spec); err != nil {
		return nil, fmt.Errorf("parse progress curve file: %w", err)
	}
	if len(spec.Processing) == 0 {
		return nil, fmt.Errorf("progress curve file %s has no processing buckets", path)
	}

	buckets := make([]curveBucket, 0, len(spec.Processing))
	for i, b := range spec.Processing {
		if b.Progress < 0 || b.Progress > 99 {
			return nil, fmt.Errorf("progress curve bucket %d: progress %d out of range", i, b.Progress)
		}
		buckets = append(buckets, curveBucket{
			Until:             time.Duration(b.UntilSeconds) * time.Second,
			Progress:          b.Progress,
			EstimatedTimeLeft: b.EstimatedTimeLeft,
			Message:           b.Message,
		})
	}
	// The last bucket is the open-ended tail.
	buckets[len(buckets)-1].Until = 0

	return newBucketCurve(buckets), nil
}
