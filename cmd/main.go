package main

import (
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jaswanthhitman45/storybuilder/application/ports/inbound"
	"github.com/jaswanthhitman45/storybuilder/application/services"
	"github.com/jaswanthhitman45/storybuilder/config"
	"github.com/jaswanthhitman45/storybuilder/infrastructure/adapters"
	"github.com/jaswanthhitman45/storybuilder/infrastructure/gin_interface/controllers"
	"github.com/jaswanthhitman45/storybuilder/infrastructure/gin_interface/dto"
	"github.com/jaswanthhitman45/storybuilder/middleware"
	mockgenerator "github.com/jaswanthhitman45/storybuilder/mock"
	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, relying on the environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	geminiConfig, err := config.GetGeminiConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get gemini config")
	}

	elevenLabsConfig, err := config.GetElevenLabsConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get eleven labs config")
	}

	tavusConfig, err := config.GetTavusConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get tavus config")
	}

	s3Config, err := config.GetS3Config()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get s3 config")
	}

	dynamoConfig, err := config.GetDynamoConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get dynamo config")
	}

	videoConfig, err := config.GetVideoConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get video config")
	}

	jwksUrl := os.Getenv("JWKS_URL")
	if jwksUrl == "" {
		log.Fatal().Msg("JWKS_URL is not set!")
	}

	mockProviders := os.Getenv("MOCK_PROVIDERS") == "true"
	if mockProviders {
		base := "http://localhost:" + port
		geminiConfig.ApiUrl = base + "/mock/gemini"
		elevenLabsConfig.ApiUrl = base + "/mock/elevenlabs"
		tavusConfig.ApiUrl = base + "/mock/tavus"
	}

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(120, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	}))
	s3Client := s3.New(sess)
	dynamoClient := dynamodb.New(sess)

	geminiGenerator := adapters.NewGeminiStoryGenerator(adapters.NewContentFetcher("gemini", zeroLogger), geminiConfig)
	audioGenerator := adapters.NewElevenLabsAudioGenerator(adapters.NewContentFetcher("elevenlabs", zeroLogger), elevenLabsConfig)
	videoGenerator := adapters.NewTavusVideoGenerator(adapters.NewContentFetcher("tavus", zeroLogger), tavusConfig)

	audioStore := adapters.NewS3AudioStore(s3Client, s3Config)
	storyRepository := adapters.NewDynamoStoryRepository(zeroLogger, dynamoClient, dynamoConfig)

	progressCurve := services.DefaultProgressCurve()
	if videoConfig.ProgressCurveFile != "" {
		progressCurve, err = services.LoadProgressCurve(videoConfig.ProgressCurveFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load progress curve file")
		}
	}

	orchestratorConfig := services.DefaultOrchestratorConfig()
	orchestratorConfig.WordBudget = videoConfig.WordsPerVideo
	orchestrator := services.NewVideoOrchestrator(zeroLogger, audioGenerator, audioStore, videoGenerator, storyRepository, orchestratorConfig)

	trackerFactory := func() inbound.ProgressTrackerPort {
		return services.NewProgressTracker(zeroLogger, workerPool, videoGenerator, storyRepository, progressCurve, services.DefaultTrackerConfig())
	}

	storyService := services.NewStoryService(zeroLogger, geminiGenerator, storyRepository)
	videoLibrary := services.NewVideoLibrary(zeroLogger, workerPool, videoGenerator, storyRepository)

	storyController := controllers.NewStoryController(zeroLogger, storyService, videoLibrary)
	videoController := controllers.NewVideoController(zeroLogger, orchestrator, storyRepository, audioGenerator,
		videoGenerator, trackerFactory, tavusConfig.DefaultPersonaId)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidators(v); err != nil {
			log.Fatal().Err(err).Msg("Failed to register request validators")
		}
	}

	router := gin.Default()

	if err := router.SetTrustedProxies(nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	authHandler, err := middleware.NewAuthHandler(jwksUrl)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth handler!")
	}
	router.Use(authHandler.AuthMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if mockProviders {
		mockgenerator.Init(router, zeroLogger)
	}

	storyController.RegisterRoutes(router)
	videoController.RegisterRoutes(router)

	if err := router.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
