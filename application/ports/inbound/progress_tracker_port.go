package inbound

import "github.com/jaswanthhitman45/storybuilder/domain"

// ProgressCallback receives every synthesized progress update, including
// terminal ones. It is the sole error-reporting channel for the tracker.
type ProgressCallback func(progress domain.VideoProgress)

type ProgressTrackerPort interface {
	// StartTracking begins polling the provider for the given job. A
	// tracker handles one job at a time; a second call while active
	// returns ErrTrackingInProgress.
	StartTracking(videoID, storyID string, onProgress ProgressCallback) error
	// StopTracking cancels polling and discards subscribers without a
	// final update. Safe to call at any time, including after terminal
	// cleanup already ran.
	StopTracking()
}
