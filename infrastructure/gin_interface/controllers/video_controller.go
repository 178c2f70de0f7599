package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jaswanthhitman45/storybuilder/application/ports/inbound"
	"github.com/jaswanthhitman45/storybuilder/application/ports/outbound"
	"github.com/jaswanthhitman45/storybuilder/domain"
	"github.com/jaswanthhitman45/storybuilder/infrastructure/gin_interface/dto"
	"github.com/jaswanthhitman45/storybuilder/middleware"
)

// TrackerFactory hands each progress stream its own tracker, since a
// tracker carries exactly one session.
type TrackerFactory func() inbound.ProgressTrackerPort

type VideoController interface {
	RegisterRoutes(g *gin.Engine)
}

type videoController struct {
	logger           outbound.LoggerPort
	orchestrator     inbound.VideoOrchestratorPort
	stories          outbound.StoryRepositoryPort
	audio            outbound.AudioGeneratorPort
	video            outbound.AvatarVideoPort
	newTracker       TrackerFactory
	defaultPersonaID string
}

func NewVideoController(logger outbound.LoggerPort, orchestrator inbound.VideoOrchestratorPort,
	stories outbound.StoryRepositoryPort, audio outbound.AudioGeneratorPort, video outbound.AvatarVideoPort,
	newTracker TrackerFactory, defaultPersonaID string) VideoController {
	return &videoController{
		logger:           logger,
		orchestrator:     orchestrator,
		stories:          stories,
		audio:            audio,
		video:            video,
		newTracker:       newTracker,
		defaultPersonaID: defaultPersonaID,
	}
}

func (v *videoController) RegisterRoutes(g *gin.Engine) {
	g.POST("/stories/:id/video", v.GenerateVideo)
	g.GET("/stories/:id/video/progress", middleware.SSEHeaders(), v.StreamProgress)
	g.GET("/voices", v.ListVoices)
	g.GET("/personas", v.ListPersonas)
}

func (v *videoController) GenerateVideo(c *gin.Context) {
	var request dto.GenerateVideoRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&request); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	story, ok := v.ownedStory(c)
	if !ok {
		return
	}

	personaID := request.VideoSettings.PersonaID
	if personaID == "" {
		personaID = v.defaultPersonaID
	}
	useSpeakerBoost := true
	if request.VoiceSettings.UseSpeakerBoost != nil {
		useSpeakerBoost = *request.VoiceSettings.UseSpeakerBoost
	}

	result, err := v.orchestrator.Generate(c.Request.Context(), domain.VideoGenerationRequest{
		StoryID:      story.ID,
		StoryTitle:   story.Title,
		StoryContent: story.Content,
		VoiceSettings: domain.VoiceSettings{
			VoiceID:         request.VoiceSettings.VoiceID,
			Stability:       request.VoiceSettings.Stability,
			SimilarityBoost: request.VoiceSettings.SimilarityBoost,
			Style:           request.VoiceSettings.Style,
			UseSpeakerBoost: useSpeakerBoost,
		},
		VideoSettings: domain.VideoSettings{
			PersonaID:     personaID,
			BackgroundURL: request.VideoSettings.BackgroundURL,
		},
	})
	if err != nil {
		v.logger.ErrorWithFields(err, "Video generation failed", map[string]interface{}{
			"story_id": story.ID,
		})
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "failed to generate video, please retry"})
		return
	}

	c.JSON(http.StatusAccepted, result)
}

// StreamProgress subscribes the client to tracker updates over SSE. The
// stream ends on the first terminal update; closing the connection
// cancels tracking.
func (v *videoController) StreamProgress(c *gin.Context) {
	story, ok := v.ownedStory(c)
	if !ok {
		return
	}

	ref := domain.ParseVideoRef(story.VideoURL)
	if ref.Playable() {
		v.writeEvent(c, domain.VideoProgress{
			Status:   domain.VideoStateCompleted,
			Progress: 100,
			VideoURL: ref.URL,
			Message:  "Video generation completed!",
		})
		return
	}
	if !ref.Pending() {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "story has no video job"})
		return
	}

	updates := make(chan domain.VideoProgress, 16)
	tracker := v.newTracker()
	err := tracker.StartTracking(ref.JobID, story.ID, func(progress domain.VideoProgress) {
		select {
		case updates <- progress:
		default:
		}
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	defer tracker.StopTracking()

	clientGone := c.Request.Context().Done()
	for {
		select {
		case <-clientGone:
			return
		case progress := <-updates:
			if !v.writeEvent(c, progress) {
				return
			}
			if progress.Status != domain.VideoStateProcessing {
				return
			}
		}
	}
}

func (v *videoController) writeEvent(c *gin.Context, progress domain.VideoProgress) bool {
	payload, err := json.Marshal(progress)
	if err != nil {
		v.logger.Error(err, "Failed to marshal progress update")
		return false
	}
	if _, err := c.Writer.WriteString("data: " + string(payload) + "\n\n"); err != nil {
		return false
	}
	c.Writer.Flush()
	return true
}

func (v *videoController) ListVoices(c *gin.Context) {
	voices, err := v.audio.ListVoices(c.Request.Context())
	if err != nil {
		v.logger.Error(err, "Failed to list voices")
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "failed to list voices"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"voices": voices})
}

func (v *videoController) ListPersonas(c *gin.Context) {
	personas, err := v.video.ListPersonas(c.Request.Context())
	if err != nil {
		v.logger.Error(err, "Failed to list personas")
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "failed to list personas"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"personas": personas})
}

func (v *videoController) ownedStory(c *gin.Context) (domain.Story, bool) {
	story, err := v.stories.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "story not found"})
		return domain.Story{}, false
	}
	if story.AuthorID != c.GetString(middleware.ContextUserIDKey) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "story belongs to another user"})
		return domain.Story{}, false
	}
	return story, true
}
