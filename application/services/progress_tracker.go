package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sync"

	"github.com/jaswanthhitman45/storybuilder/application/ports/inbound"
	"github.com/jaswanthhitman45/storybuilder/application/ports/outbound"
	"github.com/jaswanthhitman45/storybuilder/domain"
)

// ErrTrackingInProgress is returned when StartTracking is called while a
// session is already active. One tracker handles one job at a time.
var ErrTrackingInProgress = errors.New("progress tracker already has an active session")

type TrackerConfig struct {
	PollInterval time.Duration
	// MaxTrackingTime is the hard ceiling: tracking always terminates by
	// then, with a synthetic completion if the provider never reported a
	// terminal state.
	MaxTrackingTime time.Duration
	// StuckAfter is how long progress may sit at 99 before the tracker
	// re-checks for a resolved URL.
	StuckAfter time.Duration
	// ForceCompleteAfter is when a still-unresolved job is optimistically
	// reported as completed without a URL.
	ForceCompleteAfter time.Duration
	FinalCheckDelay    time.Duration
}

func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		PollInterval:       3 * time.Second,
		MaxTrackingTime:    6 * time.Minute,
		StuckAfter:         4 * time.Minute,
		ForceCompleteAfter: 5 * time.Minute,
		FinalCheckDelay:    5 * time.Second,
	}
}

type progressTracker struct {
	logger  outbound.LoggerPort
	pool    outbound.TaskDispatcher
	video   outbound.AvatarVideoPort
	stories outbound.StoryRepositoryPort
	curve   ProgressCurve
	cfg     TrackerConfig
	now     func() time.Time

	mu                  sync.Mutex
	tracking            bool
	generation          uint64
	videoID             string
	storyID             string
	lastProgress        int
	startTime           time.Time
	callbacks           []inbound.ProgressCallback
	cancel              context.CancelFunc
	finalCheckScheduled bool
}

func NewProgressTracker(logger outbound.LoggerPort, pool outbound.TaskDispatcher, video outbound.AvatarVideoPort,
	stories outbound.StoryRepositoryPort, curve ProgressCurve, cfg TrackerConfig) inbound.ProgressTrackerPort {
	if curve == nil {
		curve = DefaultProgressCurve()
	}
	return &progressTracker{
		logger:  logger,
		pool:    pool,
		video:   video,
		stories: stories,
		curve:   curve,
		cfg:     cfg,
		now:     time.Now,
	}
}

func (t *progressTracker) StartTracking(videoID, storyID string, onProgress inbound.ProgressCallback) error {
	t.mu.Lock()
	if t.tracking {
		t.mu.Unlock()
		return ErrTrackingInProgress
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.tracking = true
	t.generation++
	gen := t.generation
	t.videoID = videoID
	t.storyID = storyID
	t.lastProgress = submittedProgress
	t.startTime = t.now()
	t.callbacks = []inbound.ProgressCallback{onProgress}
	t.cancel = cancel
	t.finalCheckScheduled = false
	t.mu.Unlock()

	t.logger.InfoWithFields("Started tracking video progress", map[string]interface{}{
		"video_id": videoID,
		"story_id": storyID,
	})

	if err := t.pool.Submit(func() { t.run(ctx, gen, videoID, storyID) }); err != nil {
		t.stop(gen)
		return fmt.Errorf("start tracking: %w", err)
	}
	return nil
}

// StopTracking cancels the active session without a final update. No
// callback fires after it returns.
func (t *progressTracker) StopTracking() {
	t.mu.Lock()
	gen := t.generation
	t.mu.Unlock()
	t.stop(gen)
}

func (t *progressTracker) run(ctx context.Context, gen uint64, videoID, storyID string) {
	if t.tick(ctx, gen, videoID, storyID) {
		return
	}

	ticker := time.NewTicker(t.cfg.PollInterval)
	defer ticker.Stop()
	deadline := time.NewTimer(t.cfg.MaxTrackingTime)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-deadline.C:
			t.forceCompletion(gen)
			return
		case <-ticker.C:
			if t.tick(ctx, gen, videoID, storyID) {
				return
			}
		}
	}
}

// tick performs one status poll and reports whether tracking terminated.
func (t *progressTracker) tick(ctx context.Context, gen uint64, videoID, storyID string) bool {
	status, err := t.video.GetStatus(ctx, videoID)
	if err != nil {
		if ctx.Err() != nil {
			return true
		}
		t.logger.ErrorWithFields(err, "Failed to check video status", map[string]interface{}{
			"video_id": videoID,
		})
		// A transient poll failure is a degraded tick, not a job
		// failure. Report it and keep the timers running.
		t.emit(gen, domain.VideoProgress{
			Status:   domain.VideoStateFailed,
			Progress: 0,
			Message:  "Failed to check video status",
		})
		return false
	}

	progress, elapsed := t.synthesize(gen, status)
	t.emit(gen, progress)

	switch progress.Status {
	case domain.VideoStateCompleted:
		if progress.VideoURL != "" {
			t.resolveStory(ctx, storyID, progress.VideoURL)
		}
		t.stop(gen)
		return true
	case domain.VideoStateFailed:
		t.stop(gen)
		return true
	}

	if progress.Progress >= 99 && elapsed > t.cfg.StuckAfter {
		t.scheduleFinalCheck(ctx, gen, videoID, storyID)
	}
	return false
}

// synthesize turns one raw provider status into the UI progress sample:
// curve lookup, terminal classification, stuck-at-99 recovery and the
// monotonic clamp.
func (t *progressTracker) synthesize(gen uint64, status domain.VideoStatus) (domain.VideoProgress, time.Duration) {
	now := t.now()
	t.mu.Lock()
	start := t.startTime
	t.mu.Unlock()

	elapsed := now.Sub(start)
	if !status.CreatedAt.IsZero() {
		elapsed = now.Sub(status.CreatedAt)
	}

	url := status.ResolvedURL()
	point := t.curve(status.Status, url != "", elapsed)
	progress := domain.VideoProgress{
		Status:            StateForStatus(status.Status, url != ""),
		Progress:          point.Progress,
		EstimatedTimeLeft: point.EstimatedTimeLeft,
		VideoURL:          url,
		Message:           point.Message,
	}

	// Plateaued near the top with no terminal report from the provider.
	if progress.Status == domain.VideoStateProcessing && progress.Progress >= 99 && elapsed > t.cfg.StuckAfter {
		if url != "" {
			progress = domain.VideoProgress{
				Status:   domain.VideoStateCompleted,
				Progress: 100,
				VideoURL: url,
				Message:  "Video generation completed!",
			}
		} else if elapsed > t.cfg.ForceCompleteAfter {
			progress = domain.VideoProgress{
				Status:   domain.VideoStateCompleted,
				Progress: 100,
				Message:  "Video processing completed (timeout)",
			}
		}
	}

	if progress.Status != domain.VideoStateCompleted {
		progress.VideoURL = ""
	}

	t.mu.Lock()
	if gen == t.generation && progress.Status != domain.VideoStateFailed {
		if progress.Progress > t.lastProgress {
			t.lastProgress = progress.Progress
		} else if progress.Progress < t.lastProgress && progress.Progress < 99 {
			// The UI never regresses: clamp to one step above the
			// last emitted value, capped below terminal.
			progress.Progress = t.lastProgress + 1
			if progress.Progress > 99 {
				progress.Progress = 99
			}
			t.lastProgress = progress.Progress
		}
	}
	t.mu.Unlock()

	return progress, elapsed
}

// scheduleFinalCheck runs one extra status check shortly after the stuck
// condition is first seen, in case the provider resolved the URL between
// regular ticks. Scheduled at most once per session.
func (t *progressTracker) scheduleFinalCheck(ctx context.Context, gen uint64, videoID, storyID string) {
	t.mu.Lock()
	if gen != t.generation || t.finalCheckScheduled {
		t.mu.Unlock()
		return
	}
	t.finalCheckScheduled = true
	t.mu.Unlock()

	err := t.pool.Submit(func() {
		timer := time.NewTimer(t.cfg.FinalCheckDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		status, err := t.video.GetStatus(ctx, videoID)
		if err != nil {
			t.logger.ErrorWithFields(err, "Final status check failed", map[string]interface{}{
				"video_id": videoID,
			})
			return
		}
		url := status.ResolvedURL()
		if StateForStatus(status.Status, url != "") != domain.VideoStateCompleted && url == "" {
			return
		}
		if url != "" {
			t.resolveStory(ctx, storyID, url)
		}
		t.emit(gen, domain.VideoProgress{
			Status:   domain.VideoStateCompleted,
			Progress: 100,
			VideoURL: url,
			Message:  "Video generation completed!",
		})
		t.stop(gen)
	})
	if err != nil {
		t.logger.Error(err, "Failed to schedule final status check")
	}
}

// forceCompletion is the hard-ceiling fallback: the UI is told generation
// completed even though the provider never confirmed it.
func (t *progressTracker) forceCompletion(gen uint64) {
	t.logger.WarnWithFields("Tracking timeout reached, forcing completion", map[string]interface{}{
		"video_id": t.currentVideoID(),
	})
	t.emit(gen, domain.VideoProgress{
		Status:   domain.VideoStateCompleted,
		Progress: 100,
		Message:  "Video processing completed (timeout)",
	})
	t.stop(gen)
}

func (t *progressTracker) resolveStory(ctx context.Context, storyID, url string) {
	if storyID == "" {
		return
	}
	if err := t.stories.ResolveVideoURL(ctx, storyID, url); err != nil {
		t.logger.ErrorWithFields(err, "Failed to write resolved video URL", map[string]interface{}{
			"story_id":  storyID,
			"video_url": url,
		})
	}
}

func (t *progressTracker) emit(gen uint64, progress domain.VideoProgress) {
	t.mu.Lock()
	if gen != t.generation {
		t.mu.Unlock()
		return
	}
	callbacks := make([]inbound.ProgressCallback, len(t.callbacks))
	copy(callbacks, t.callbacks)
	t.mu.Unlock()

	for _, callback := range callbacks {
		t.invoke(callback, progress)
	}
}

func (t *progressTracker) invoke(callback inbound.ProgressCallback, progress domain.VideoProgress) {
	defer func() {
		if p := recover(); p != nil {
			t.logger.Error(fmt.Errorf("%v", p), "Panic in progress callback")
		}
	}()
	callback(progress)
}

// stop tears down the session identified by gen. Stale generations are
// ignored, so a tick racing an explicit StopTracking cannot revive or
// double-free the session.
func (t *progressTracker) stop(gen uint64) {
	t.mu.Lock()
	if gen != t.generation || !t.tracking {
		t.mu.Unlock()
		return
	}
	cancel := t.cancel
	t.tracking = false
	t.generation++
	t.videoID = ""
	t.storyID = ""
	t.lastProgress = 0
	t.startTime = time.Time{}
	t.callbacks = nil
	t.cancel = nil
	t.finalCheckScheduled = false
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (t *progressTracker) currentVideoID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.videoID
}
