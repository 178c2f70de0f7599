package services

import (
	"context"
	"fmt"

	"github.com/jaswanthhitman45/storybuilder/application/ports/inbound"
	"github.com/jaswanthhitman45/storybuilder/application/ports/outbound"
	"github.com/jaswanthhitman45/storybuilder/channel_utils"
	"github.com/jaswanthhitman45/storybuilder/domain"
)

type videoLibrary struct {
	logger  outbound.LoggerPort
	pool    outbound.TaskDispatcher
	video   outbound.AvatarVideoPort
	stories outbound.StoryRepositoryPort
}

func NewVideoLibrary(logger outbound.LoggerPort, pool outbound.TaskDispatcher, video outbound.AvatarVideoPort,
	stories outbound.StoryRepositoryPort) inbound.VideoLibraryPort {
	return &videoLibrary{
		logger:  logger,
		pool:    pool,
		video:   video,
		stories: stories,
	}
}

func (l *videoLibrary) List(ctx context.Context, authorID string) ([]inbound.LibraryEntry, error) {
	stories, err := l.stories.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("list video library: %w", err)
	}

	entries := make([]inbound.LibraryEntry, 0, len(stories))
	for _, story := range stories {
		ref := domain.ParseVideoRef(story.VideoURL)
		entries = append(entries, inbound.LibraryEntry{
			Story:      story,
			VideoID:    ref.JobID,
			HasVideo:   ref.Playable(),
			HasAudio:   story.AudioURL != "",
			VideoStyle: ref.Style,
		})
	}
	return entries, nil
}

type resolvedVideo struct {
	storyID string
	url     string
}

// RefreshPending checks every job-marker story against the provider and
// resolves the ones whose videos finished. Checks fan out on the worker
// pool and fan back in through a merged channel.
func (l *videoLibrary) RefreshPending(ctx context.Context, authorID string) (int, error) {
	stories, err := l.stories.ListByAuthor(ctx, authorID)
	if err != nil {
		return 0, fmt.Errorf("refresh pending videos: %w", err)
	}

	channels := make([]<-chan resolvedVideo, 0, len(stories))
	for _, story := range stories {
		ref := domain.ParseVideoRef(story.VideoURL)
		if !ref.Pending() {
			continue
		}
		channels = append(channels, l.checkPending(ctx, story.ID, ref.JobID))
	}
	if len(channels) == 0 {
		return 0, nil
	}

	merged, err := channel_utils.MergeChannels(ctx, l.pool, channels...)
	if err != nil {
		return 0, fmt.Errorf("refresh pending videos: %w", err)
	}

	resolved := 0
	for r := range merged {
		if err := l.stories.ResolveVideoURL(ctx, r.storyID, r.url); err != nil {
			l.logger.ErrorWithFields(err, "Failed to resolve video URL", map[string]interface{}{
				"story_id": r.storyID,
			})
			continue
		}
		resolved++
	}
	return resolved, nil
}

func (l *videoLibrary) checkPending(ctx context.Context, storyID, videoID string) <-chan resolvedVideo {
	out := make(chan resolvedVideo, 1)
	err := l.pool.Submit(func() {
		defer close(out)
		status, err := l.video.GetStatus(ctx, videoID)
		if err != nil {
			l.logger.ErrorWithFields(err, "Failed to check pending video", map[string]interface{}{
				"story_id": storyID,
				"video_id": videoID,
			})
			return
		}
		url := status.ResolvedURL()
		if url == "" {
			return
		}
		out <- resolvedVideo{storyID: storyID, url: url}
	})
	if err != nil {
		l.logger.Error(err, "Failed to submit pending video check")
		close(out)
	}
	return out
}
