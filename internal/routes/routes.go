package routes

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/plategenie/server/internal/config"
	"github.com/plategenie/server/internal/features/auth"
	"github.com/plategenie/server/internal/features/generation"
	"github.com/plategenie/server/internal/features/recipes"
)

func SetupRoutes(router *gin.Engine, db *mongo.Database, cfg *config.Config) {
	api := router.Group("/api")

	auth.RegisterRoutes(api, db, cfg)

	// The generation pipeline saves accepted plans through the same
	// repository manual entries use.
	recipesRepo := recipes.RegisterRoutes(api, db, cfg)
	generation.RegisterRoutes(api, recipesRepo, cfg)
}
