package mock_generator

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jaswanthhitman45/storybuilder/application/ports/outbound"
)

// Scripted job timeline: queued, then processing, then completed with a
// download URL. Fast enough for frontend development, slow enough to see
// every progress phase.
const (
	queuedFor     = 6 * time.Second
	processingFor = 20 * time.Second
)

type stubJob struct {
	VideoID   string
	CreatedAt time.Time
}

type ProviderStub struct {
	logger outbound.LoggerPort

	mu   sync.Mutex
	jobs map[string]stubJob
}

func NewProviderStub(logger outbound.LoggerPort) *ProviderStub {
	return &ProviderStub{
		logger: logger,
		jobs:   make(map[string]stubJob),
	}
}

func (p *ProviderStub) RegisterRoutes(g *gin.Engine) {
	g.POST("/mock/tavus/v2/videos", p.createVideo)
	g.GET("/mock/tavus/v2/videos/:id", p.videoStatus)
	g.GET("/mock/tavus/v2/replicas", p.listReplicas)
	g.POST("/mock/elevenlabs/text-to-speech/:voice", p.textToSpeech)
	g.GET("/mock/elevenlabs/voices", p.listVoices)
	g.POST("/mock/gemini/models/*action", p.generateContent)
}

func (p *ProviderStub) createVideo(c *gin.Context) {
	var request struct {
		ReplicaId string `json:"replica_id"`
		Script    string `json:"script"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if request.ReplicaId == "" || request.Script == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "replica_id and script are required"})
		return
	}

	job := stubJob{
		VideoID:   uuid.NewString(),
		CreatedAt: time.Now(),
	}
	p.mu.Lock()
	p.jobs[job.VideoID] = job
	p.mu.Unlock()

	p.logger.InfoWithFields("Stub video job created", map[string]interface{}{
		"video_id": job.VideoID,
	})
	c.JSON(http.StatusOK, gin.H{"video_id": job.VideoID})
}

func (p *ProviderStub) videoStatus(c *gin.Context) {
	p.mu.Lock()
	job, ok := p.jobs[c.Param("id")]
	p.mu.Unlock()
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "video not found"})
		return
	}

	elapsed := time.Since(job.CreatedAt)
	response := gin.H{
		"video_id":   job.VideoID,
		"created_at": job.CreatedAt.Format(time.RFC3339),
	}
	switch {
	case elapsed < queuedFor:
		response["status"] = "queued"
	case elapsed < queuedFor+processingFor:
		response["status"] = "processing"
	default:
		response["status"] = "completed"
		response["download_url"] = fmt.Sprintf("https://mock.storybuilder.local/videos/%s.mp4", job.VideoID)
	}
	c.JSON(http.StatusOK, response)
}

func (p *ProviderStub) listReplicas(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"replicas": []gin.H{
			{"replica_id": "r-mock-anna", "replica_name": "Anna"},
			{"replica_id": "r-mock-jasper", "replica_name": "Jasper"},
		},
	})
}

func (p *ProviderStub) textToSpeech(c *gin.Context) {
	var request struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if request.Text == "" {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": "text is required"})
		return
	}
	// Not real MPEG, but enough bytes for the pipeline to carry around.
	c.Data(http.StatusOK, "audio/mpeg", []byte("mock-mpeg-audio:"+c.Param("voice")))
}

func (p *ProviderStub) listVoices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"voices": []gin.H{
			{"voice_id": "v-mock-aria", "name": "Aria"},
			{"voice_id": "v-mock-finn", "name": "Finn"},
		},
	})
}

func (p *ProviderStub) generateContent(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"candidates": []gin.H{
			{
				"content": gin.H{
					"parts": []gin.H{
						{"text": "Once upon a time, a stubbed storyteller produced this tale. It was short. It was cheap. Everyone was happy."},
					},
				},
			},
		},
	})
}
