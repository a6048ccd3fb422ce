package auth

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/plategenie/server/internal/config"
	"github.com/plategenie/server/internal/middleware"
	"github.com/plategenie/server/internal/pkg/mailer"
)

// RegisterRoutes wires the auth endpoints with their production
// collaborators (mongo repository, SMTP mailer, Google OAuth client).
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	repo := NewRepository(db)
	mail := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.EmailFrom)
	google := NewGoogleVerifier(cfg.GoogleClientID, cfg.GoogleClientSecret)

	handler := NewHandler(repo, mail, google, cfg)

	router.POST("/register", handler.Register)
	router.POST("/verify-otp", handler.VerifyOTP)
	router.POST("/login", handler.Login)
	router.POST("/google-login", handler.GoogleLogin)
	router.PUT("/users/profile", handler.UpdateProfile)

	authed := router.Group("/auth")
	authed.GET("/me", middleware.Auth(cfg.JWTSecret), handler.Me)
}
