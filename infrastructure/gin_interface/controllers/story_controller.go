package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jaswanthhitman45/storybuilder/application/ports/inbound"
	"github.com/jaswanthhitman45/storybuilder/application/ports/outbound"
	"github.com/jaswanthhitman45/storybuilder/domain"
	"github.com/jaswanthhitman45/storybuilder/infrastructure/gin_interface/dto"
	"github.com/jaswanthhitman45/storybuilder/middleware"
)

const defaultExploreLimit = 50

type StoryController interface {
	RegisterRoutes(g *gin.Engine)
}

type storyController struct {
	logger  outbound.LoggerPort
	stories inbound.StoryServicePort
	library inbound.VideoLibraryPort
}

func NewStoryController(logger outbound.LoggerPort, stories inbound.StoryServicePort,
	library inbound.VideoLibraryPort) StoryController {
	return &storyController{
		logger:  logger,
		stories: stories,
		library: library,
	}
}

func (s *storyController) RegisterRoutes(g *gin.Engine) {
	g.POST("/stories", s.CreateStory)
	g.GET("/stories", s.ListPublicStories)
	g.GET("/stories/:id", s.GetStory)
	g.GET("/library", s.GetLibrary)
	g.POST("/library/refresh", s.RefreshLibrary)
}

func (s *storyController) CreateStory(c *gin.Context) {
	var request dto.CreateStoryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !request.GenerateContent && request.Content == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "content is required unless generate_content is set"})
		return
	}
	if request.GenerateContent && request.Prompt == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "prompt is required when generate_content is set"})
		return
	}

	story, err := s.stories.Create(c.Request.Context(), inbound.CreateStoryParams{
		Title:           request.Title,
		Content:         request.Content,
		Genre:           request.Genre,
		Type:            domain.StoryType(request.Type),
		Length:          domain.StoryLength(request.Length),
		Prompt:          request.Prompt,
		IsPublic:        request.IsPublic,
		AuthorID:        c.GetString(middleware.ContextUserIDKey),
		AuthorName:      c.GetString(middleware.ContextUserNameKey),
		GenerateContent: request.GenerateContent,
		ForVideo:        request.ForVideo,
	})
	if err != nil {
		s.logger.Error(err, "Failed to create story")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to create story"})
		return
	}

	c.JSON(http.StatusCreated, story)
}

func (s *storyController) GetStory(c *gin.Context) {
	story, err := s.stories.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "story not found"})
		return
	}
	if !story.IsPublic && story.AuthorID != c.GetString(middleware.ContextUserIDKey) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "story is private"})
		return
	}

	c.JSON(http.StatusOK, story)
}

func (s *storyController) ListPublicStories(c *gin.Context) {
	limit := defaultExploreLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	stories, err := s.stories.ListPublic(c.Request.Context(), limit)
	if err != nil {
		s.logger.Error(err, "Failed to list public stories")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to list stories"})
		return
	}

	c.JSON(http.StatusOK, stories)
}

func (s *storyController) GetLibrary(c *gin.Context) {
	entries, err := s.library.List(c.Request.Context(), c.GetString(middleware.ContextUserIDKey))
	if err != nil {
		s.logger.Error(err, "Failed to list video library")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to list library"})
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (s *storyController) RefreshLibrary(c *gin.Context) {
	resolved, err := s.library.RefreshPending(c.Request.Context(), c.GetString(middleware.ContextUserIDKey))
	if err != nil {
		s.logger.Error(err, "Failed to refresh pending videos")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to refresh library"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"resolved": resolved})
}
