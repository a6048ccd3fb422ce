package recipes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	apperrors "github.com/plategenie/server/pkg/errors"
)

// Repository handles database interactions for recipes. Likes and
// comments are mutated with mongo's array operators ($addToSet, $pull,
// $push, positional $set) so concurrent requests on the same recipe
// cannot drop each other's writes.
type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("recipes")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "type", Value: 1}},
		},
	})

	return &Repository{collection: collection}
}

// Insert stores a new recipe and fills in its assigned id.
func (r *Repository) Insert(ctx context.Context, recipe *Recipe) error {
	recipe.CreatedAt = time.Now()
	recipe.UpdatedAt = recipe.CreatedAt
	if recipe.Likes == nil {
		recipe.Likes = []string{}
	}
	if recipe.Comments == nil {
		recipe.Comments = []Comment{}
	}

	result, err := r.collection.InsertOne(ctx, recipe)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		recipe.ID = oid
	}
	return nil
}

// FindByUser returns all recipes for an owner, optionally filtered by
// origin tag. Order is storage-native.
func (r *Repository) FindByUser(ctx context.Context, userID, typeFilter string) ([]Recipe, error) {
	filter := bson.M{"userId": userID}
	if typeFilter != "" {
		filter["type"] = typeFilter
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	recipes := []Recipe{}
	if err := cursor.All(ctx, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// FindByID returns a single recipe. A malformed id reads as not-found.
func (r *Repository) FindByID(ctx context.Context, recipeID string) (*Recipe, error) {
	oid, err := primitive.ObjectIDFromHex(recipeID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid recipe id", apperrors.ErrNotFound)
	}

	var recipe Recipe
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&recipe)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// Update overwrites title/description (and imageUrl when supplied) and
// stamps updatedAt. Likes and comments are untouched.
func (r *Repository) Update(ctx context.Context, recipeID string, upd RecipeUpdate) (*Recipe, error) {
	oid, err := primitive.ObjectIDFromHex(recipeID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid recipe id", apperrors.ErrNotFound)
	}

	set := bson.M{
		"title":       upd.Title,
		"description": upd.Description,
		"updatedAt":   time.Now(),
	}
	if upd.ImageURL != "" {
		set["imageUrl"] = upd.ImageURL
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, apperrors.ErrNotFound
	}

	return r.FindByID(ctx, recipeID)
}

// Delete removes a recipe and, with it, its embedded comments.
func (r *Repository) Delete(ctx context.Context, recipeID string) error {
	oid, err := primitive.ObjectIDFromHex(recipeID)
	if err != nil {
		return fmt.Errorf("%w: invalid recipe id", apperrors.ErrNotFound)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ToggleLike removes the user from the liker set when present and adds
// them when absent, then returns the updated recipe. $addToSet keeps
// the set duplicate-free even when two likes race.
func (r *Repository) ToggleLike(ctx context.Context, recipeID, userID string) (*Recipe, error) {
	recipe, err := r.FindByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	oid := recipe.ID
	liked := false
	for _, id := range recipe.Likes {
		if id == userID {
			liked = true
			break
		}
	}

	var update bson.M
	if liked {
		update = bson.M{"$pull": bson.M{"likes": userID}}
	} else {
		update = bson.M{"$addToSet": bson.M{"likes": userID}}
	}

	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update); err != nil {
		return nil, err
	}

	return r.FindByID(ctx, recipeID)
}

// AddComment appends a comment and returns the updated recipe.
func (r *Repository) AddComment(ctx context.Context, recipeID string, comment Comment) (*Recipe, error) {
	oid, err := primitive.ObjectIDFromHex(recipeID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid recipe id", apperrors.ErrNotFound)
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$push": bson.M{"comments": comment}},
	)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, apperrors.ErrNotFound
	}

	return r.FindByID(ctx, recipeID)
}

// UpdateComment replaces a comment's text in place. The filter matches
// recipe, comment and author together, so a non-author caller (or a
// stale comment id) reads as forbidden.
func (r *Repository) UpdateComment(ctx context.Context, recipeID, commentID, userID, text string) (*Recipe, error) {
	oid, err := primitive.ObjectIDFromHex(recipeID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid recipe id", apperrors.ErrNotFound)
	}
	cid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid comment id", apperrors.ErrForbidden)
	}

	filter := bson.M{
		"_id":             oid,
		"comments._id":    cid,
		"comments.userId": userID,
	}

	result, err := r.collection.UpdateOne(ctx, filter,
		bson.M{"$set": bson.M{"comments.$.commentText": text}},
	)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, apperrors.ErrForbidden
	}

	return r.FindByID(ctx, recipeID)
}

// RemoveComment deletes a comment under the same ownership filter as
// UpdateComment.
func (r *Repository) RemoveComment(ctx context.Context, recipeID, commentID, userID string) (*Recipe, error) {
	oid, err := primitive.ObjectIDFromHex(recipeID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid recipe id", apperrors.ErrNotFound)
	}
	cid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid comment id", apperrors.ErrForbidden)
	}

	filter := bson.M{
		"_id":             oid,
		"comments._id":    cid,
		"comments.userId": userID,
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperrors.ErrForbidden
	}

	_, err = r.collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$pull": bson.M{"comments": bson.M{"_id": cid}}},
	)
	if err != nil {
		return nil, err
	}

	return r.FindByID(ctx, recipeID)
}
