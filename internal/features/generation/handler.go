package generation

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plategenie/server/internal/features/recipes"
	"github.com/plategenie/server/internal/pkg/response"
	apperrors "github.com/plategenie/server/pkg/errors"
)

// Completer is the single-shot text-completion collaborator.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// RecipeStore persists an accepted candidate; satisfied by the recipes
// repository.
type RecipeStore interface {
	Insert(ctx context.Context, recipe *recipes.Recipe) error
}

type Handler struct {
	llm   Completer
	store RecipeStore
}

func NewHandler(llm Completer, store RecipeStore) *Handler {
	return &Handler{llm: llm, store: store}
}

// GeneratePlan builds a language-matched prompt from the ingredient
// list, runs one completion call and returns the filtered candidates.
// No retries: a malformed upstream payload is reported as a failure,
// while individually malformed candidates are silently dropped.
func (h *Handler) GeneratePlan(c *gin.Context) {
	var req GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format")
		return
	}

	if len(req.Ingredients) == 0 {
		response.BadRequest(c, "No ingredients provided")
		return
	}

	prompt := BuildPrompt(req.Ingredients)

	raw, err := h.llm.Complete(c.Request.Context(), prompt)
	if err != nil {
		response.ServerError(c, "Failed to generate recipes. Please try again with different ingredients.")
		return
	}

	candidates, err := ExtractCandidates(raw)
	if err != nil {
		if errors.Is(err, apperrors.ErrUpstreamFormat) {
			response.ServerError(c, "Failed to generate recipes. Please try again with different ingredients.")
			return
		}
		response.ServerError(c, "Server error.")
		return
	}

	response.JSON(c, http.StatusOK, candidates)
}

// Save persists a candidate the user accepted. The AI name becomes the
// title and the instructions double as the description; absent
// cookingTime/difficulty default to "N/A".
func (h *Handler) Save(c *gin.Context) {
	var req SaveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format")
		return
	}

	if req.UserID == "" || req.Name == "" || len(req.Ingredients) == 0 || req.Instructions == "" {
		response.BadRequest(c, "Missing required recipe fields for saving.")
		return
	}

	cookingTime := req.CookingTime
	if cookingTime == "" {
		cookingTime = "N/A"
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = "N/A"
	}

	recipe := &recipes.Recipe{
		UserID:       req.UserID,
		Title:        req.Name,
		Description:  req.Instructions,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		CookingTime:  cookingTime,
		Difficulty:   difficulty,
		Likes:        []string{},
		Comments:     []recipes.Comment{},
		Type:         recipes.TypeSaved,
	}

	if err := h.store.Insert(c.Request.Context(), recipe); err != nil {
		response.ServerError(c, "Server error while saving recipe.")
		return
	}

	response.JSON(c, http.StatusCreated, gin.H{
		"message":     "Recipe saved successfully!",
		"recipeId":    recipe.ID,
		"savedRecipe": recipe,
	})
}
