package mock_generator

import (
	"github.com/gin-gonic/gin"
	"github.com/jaswanthhitman45/storybuilder/application/ports/outbound"
)

// Init registers local stub provider endpoints so the service can run
// without live API keys. Enabled with MOCK_PROVIDERS=true; the provider
// configs are then pointed at these routes.
func Init(g *gin.Engine, logger outbound.LoggerPort) {
	stub := NewProviderStub(logger)
	stub.RegisterRoutes(g)
	logger.Info("Mock provider endpoints registered under /mock")
}
