package recipes

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Origin tags distinguishing how a recipe entered the system.
const (
	TypeCreated = "created" // manual entry
	TypeSaved   = "saved"   // accepted from the generation pipeline
)

// Defaults applied to comments posted without author display data.
const (
	AnonymousUsername    = "Anonymous User"
	DefaultCommentAvatar = "https://static.vecteezy.com/system/resources/thumbnails/009/292/244/small_2x/default-avatar-icon-of-social-media-user-vector.jpg"
)

// Recipe is a user-authored or AI-saved recipe document. Likes is a set
// of user ids (the store guards against duplicates); Comments are
// embedded in insertion order.
type Recipe struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       string             `bson:"userId" json:"userId"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	ImageURL     string             `bson:"imageUrl" json:"imageUrl"`
	Ingredients  []string           `bson:"ingredients,omitempty" json:"ingredients,omitempty"`
	Instructions string             `bson:"instructions,omitempty" json:"instructions,omitempty"`
	CookingTime  string             `bson:"cookingTime,omitempty" json:"cookingTime,omitempty"`
	Difficulty   string             `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	Likes        []string           `bson:"likes" json:"likes"`
	Comments     []Comment          `bson:"comments" json:"comments"`
	Type         string             `bson:"type" json:"type"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Comment is embedded in its recipe and carries a denormalized author
// snapshot so the feed renders without a user lookup.
type Comment struct {
	ID                 primitive.ObjectID `bson:"_id" json:"id"`
	UserID             string             `bson:"userId" json:"userId"`
	Username           string             `bson:"username" json:"username"`
	UserProfilePicture string             `bson:"userProfilePicture" json:"userProfilePicture"`
	CommentText        string             `bson:"commentText" json:"commentText"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
}

// RecipeUpdate carries the owner-editable fields. An empty ImageURL
// leaves the stored image unchanged.
type RecipeUpdate struct {
	Title       string
	Description string
	ImageURL    string
}

type CreateRecipeRequest struct {
	UserID      string `json:"userId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

type UpdateRecipeRequest struct {
	UserID      string `json:"userId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

type DeleteRecipeRequest struct {
	UserID string `json:"userId"`
}

type LikeRequest struct {
	UserID string `json:"userId"`
}

type AddCommentRequest struct {
	UserID             string `json:"userId"`
	CommentText        string `json:"commentText"`
	Username           string `json:"username"`
	UserProfilePicture string `json:"userProfilePicture"`
}

type EditCommentRequest struct {
	UserID      string `json:"userId"`
	CommentText string `json:"commentText"`
}
