package recipes

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/plategenie/server/internal/pkg/response"
	apperrors "github.com/plategenie/server/pkg/errors"
)

// Store is the persistence contract the handler depends on, implemented
// by *Repository and by in-memory fakes in tests.
type Store interface {
	Insert(ctx context.Context, recipe *Recipe) error
	FindByUser(ctx context.Context, userID, typeFilter string) ([]Recipe, error)
	FindByID(ctx context.Context, recipeID string) (*Recipe, error)
	Update(ctx context.Context, recipeID string, upd RecipeUpdate) (*Recipe, error)
	Delete(ctx context.Context, recipeID string) error
	ToggleLike(ctx context.Context, recipeID, userID string) (*Recipe, error)
	AddComment(ctx context.Context, recipeID string, comment Comment) (*Recipe, error)
	UpdateComment(ctx context.Context, recipeID, commentID, userID, text string) (*Recipe, error)
	RemoveComment(ctx context.Context, recipeID, commentID, userID string) (*Recipe, error)
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// Create stores a manually authored recipe.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format")
		return
	}

	if req.UserID == "" || req.Title == "" || req.Description == "" {
		response.BadRequest(c, "Missing required recipe fields: userId, title, description.")
		return
	}

	recipe := &Recipe{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Likes:       []string{},
		Comments:    []Comment{},
		Type:        TypeCreated,
	}

	if err := h.store.Insert(c.Request.Context(), recipe); err != nil {
		response.ServerError(c, "Server error while creating recipe.")
		return
	}

	response.JSON(c, http.StatusCreated, gin.H{
		"message":  "Recipe created successfully!",
		"recipeId": recipe.ID,
		"recipe":   recipe,
	})
}

// ListByUser returns a user's recipes, optionally filtered by origin
// tag (?type=created|saved).
func (h *Handler) ListByUser(c *gin.Context) {
	userID := c.Param("userId")
	typeFilter := c.Query("type")

	recipes, err := h.store.FindByUser(c.Request.Context(), userID, typeFilter)
	if err != nil {
		response.ServerError(c, "Server error while fetching recipes.")
		return
	}

	response.JSON(c, http.StatusOK, recipes)
}

// Get returns a single recipe by id.
func (h *Handler) Get(c *gin.Context) {
	recipe, err := h.store.FindByID(c.Request.Context(), c.Param("recipeId"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Recipe not found.")
			return
		}
		response.ServerError(c, "Server error while fetching recipe.")
		return
	}

	response.JSON(c, http.StatusOK, recipe)
}

// Update overwrites title/description/imageUrl after an ownership check.
func (h *Handler) Update(c *gin.Context) {
	recipeID := c.Param("recipeId")

	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format")
		return
	}

	if req.UserID == "" || req.Title == "" || req.Description == "" {
		response.BadRequest(c, "Missing required fields for recipe update (title, description).")
		return
	}

	existing, err := h.store.FindByID(c.Request.Context(), recipeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Recipe not found.")
			return
		}
		response.ServerError(c, "Server error while updating recipe.")
		return
	}

	if existing.UserID != req.UserID {
		response.Forbidden(c, "You are not authorized to update this recipe.")
		return
	}

	updated, err := h.store.Update(c.Request.Context(), recipeID, RecipeUpdate{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		response.ServerError(c, "Server error while updating recipe.")
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"message": "Recipe updated successfully!",
		"recipe":  updated,
	})
}

// Delete removes a recipe. Deletion carries the same ownership guard as
// update.
func (h *Handler) Delete(c *gin.Context) {
	recipeID := c.Param("recipeId")

	var req DeleteRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format")
		return
	}
	if req.UserID == "" {
		response.BadRequest(c, "User ID is required.")
		return
	}

	existing, err := h.store.FindByID(c.Request.Context(), recipeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Recipe not found.")
			return
		}
		response.ServerError(c, "Server error while deleting recipe.")
		return
	}

	if existing.UserID != req.UserID {
		response.Forbidden(c, "You are not authorized to delete this recipe.")
		return
	}

	if err := h.store.Delete(c.Request.Context(), recipeID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Recipe not found.")
			return
		}
		response.ServerError(c, "Server error while deleting recipe.")
		return
	}

	response.Message(c, http.StatusOK, "Recipe deleted successfully.")
}

// ToggleLike adds the caller to the liker set, or removes them if
// already present.
func (h *Handler) ToggleLike(c *gin.Context) {
	recipeID := c.Param("recipeId")

	var req LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format")
		return
	}
	if req.UserID == "" {
		response.BadRequest(c, "User ID is required to like a recipe.")
		return
	}

	recipe, err := h.store.ToggleLike(c.Request.Context(), recipeID, req.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Recipe not found.")
			return
		}
		response.ServerError(c, "Server error while toggling like status.")
		return
	}

	response.JSON(c, http.StatusOK, recipe)
}

// AddComment appends a comment, defaulting the author display fields.
func (h *Handler) AddComment(c *gin.Context) {
	recipeID := c.Param("recipeId")

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format")
		return
	}
	if req.UserID == "" || req.CommentText == "" {
		response.BadRequest(c, "User ID and comment text are required.")
		return
	}

	comment := Comment{
		ID:                 primitive.NewObjectID(),
		UserID:             req.UserID,
		Username:           req.Username,
		UserProfilePicture: req.UserProfilePicture,
		CommentText:        req.CommentText,
		CreatedAt:          time.Now(),
	}
	if comment.Username == "" {
		comment.Username = AnonymousUsername
	}
	if comment.UserProfilePicture == "" {
		comment.UserProfilePicture = DefaultCommentAvatar
	}

	recipe, err := h.store.AddComment(c.Request.Context(), recipeID, comment)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Recipe not found.")
			return
		}
		response.ServerError(c, "Server error while adding comment.")
		return
	}

	response.JSON(c, http.StatusCreated, recipe)
}

// EditComment replaces a comment's text; only the comment author may do it.
func (h *Handler) EditComment(c *gin.Context) {
	recipeID := c.Param("recipeId")
	commentID := c.Param("commentId")

	var req EditCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format")
		return
	}
	if req.UserID == "" || req.CommentText == "" {
		response.BadRequest(c, "User ID and new comment text are required.")
		return
	}

	recipe, err := h.store.UpdateComment(c.Request.Context(), recipeID, commentID, req.UserID, req.CommentText)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			response.Forbidden(c, "Not authorized to edit this comment.")
		case errors.Is(err, apperrors.ErrNotFound):
			response.NotFound(c, "Recipe not found.")
		default:
			response.ServerError(c, "Server error while editing comment.")
		}
		return
	}

	response.JSON(c, http.StatusOK, recipe)
}

// DeleteComment removes a comment; only the comment author may do it.
func (h *Handler) DeleteComment(c *gin.Context) {
	recipeID := c.Param("recipeId")
	commentID := c.Param("commentId")

	var req DeleteRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format")
		return
	}
	if req.UserID == "" {
		response.BadRequest(c, "User ID is required.")
		return
	}

	recipe, err := h.store.RemoveComment(c.Request.Context(), recipeID, commentID, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			response.Forbidden(c, "Not authorized to delete this comment.")
		case errors.Is(err, apperrors.ErrNotFound):
			response.NotFound(c, "Recipe not found.")
		default:
			response.ServerError(c, "Server error while deleting comment.")
		}
		return
	}

	response.JSON(c, http.StatusOK, recipe)
}
