package recipes

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/plategenie/server/internal/config"
)

func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config) *Repository {
	repo := NewRepository(db)
	handler := NewHandler(repo)

	recipes := router.Group("/recipes")
	{
		recipes.POST("", handler.Create)
		recipes.GET("/user/:userId", handler.ListByUser)
		recipes.GET("/:recipeId", handler.Get)
		recipes.PUT("/:recipeId", handler.Update)
		recipes.DELETE("/:recipeId", handler.Delete)

		recipes.POST("/:recipeId/like", handler.ToggleLike)
		recipes.POST("/:recipeId/comments", handler.AddComment)
		recipes.PUT("/:recipeId/comments/:commentId", handler.EditComment)
		recipes.DELETE("/:recipeId/comments/:commentId", handler.DeleteComment)
	}

	return repo
}
