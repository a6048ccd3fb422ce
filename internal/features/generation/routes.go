package generation

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/plategenie/server/internal/config"
	"github.com/plategenie/server/internal/pkg/gemini"
	"github.com/plategenie/server/internal/pkg/ratelimit"
)

// RegisterRoutes wires the generation endpoints. The recipe store is
// passed in so saved plans land in the same collection as manual
// entries. Plan generation is rate limited per client IP because every
// call costs an LLM request.
func RegisterRoutes(router *gin.RouterGroup, store RecipeStore, cfg *config.Config) {
	llm := gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel)
	handler := NewHandler(llm, store)

	limiter := ratelimit.New(cfg.GenerateRateLimit, time.Minute)
	limiter.StartCleanup(10 * time.Minute)

	router.POST("/generate-plan", ratelimit.Middleware(limiter), handler.GeneratePlan)
	router.POST("/save", handler.Save)
}
