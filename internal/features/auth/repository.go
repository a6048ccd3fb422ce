package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/plategenie/server/pkg/errors"
)

// Repository handles database interactions for the auth feature. Verified
// accounts live in "users", in-flight registrations in "unverified_users".
type Repository struct {
	users   *mongo.Collection
	pending *mongo.Collection
}

// NewRepository initializes the repository and creates necessary indexes.
// The unique email index is what makes the pending-to-verified promotion
// safe to retry: a second insert for the same email is rejected.
func NewRepository(db *mongo.Database) *Repository {
	users := db.Collection("users")
	pending := db.Collection("unverified_users")

	_, _ = users.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	_, _ = pending.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})

	return &Repository{users: users, pending: pending}
}

// FindUserByEmail finds a verified user by email. Absence is not an error.
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindUserByID finds a user by their MongoDB ID.
func (r *Repository) FindUserByID(ctx context.Context, userID string) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", apperrors.ErrNotFound)
	}

	var user User
	err = r.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// InsertUser inserts a new verified user.
func (r *Repository) InsertUser(ctx context.Context, user *User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	result, err := r.users.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
		}
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

// UpdateProfile applies the supplied fields, stamps updatedAt, and
// returns the updated user.
func (r *Repository) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", apperrors.ErrNotFound)
	}

	set := bson.M{"updatedAt": time.Now()}
	if upd.Username != nil {
		set["username"] = *upd.Username
	}
	if upd.ProfilePicture != nil {
		set["profilePicture"] = *upd.ProfilePicture
	}
	if upd.Bio != nil {
		set["bio"] = *upd.Bio
	}

	result, err := r.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, apperrors.ErrNotFound
	}

	var user User
	if err := r.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// LinkGoogle backfills the Google subject id and picture onto an
// existing password-based account.
func (r *Repository) LinkGoogle(ctx context.Context, userID primitive.ObjectID, googleID, picture string) error {
	_, err := r.users.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$set": bson.M{
			"googleId":       googleID,
			"profilePicture": picture,
			"updatedAt":      time.Now(),
		},
	})
	return err
}

// UpsertPending writes the pending registration for an email, replacing
// any earlier attempt (last write wins).
func (r *Repository) UpsertPending(ctx context.Context, p *PendingUser) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.pending.ReplaceOne(ctx, bson.M{"email": p.Email}, p, opts)
	return err
}

// FindPendingByEmail finds an in-flight registration. Absence is not an error.
func (r *Repository) FindPendingByEmail(ctx context.Context, email string) (*PendingUser, error) {
	var p PendingUser
	err := r.pending.FindOne(ctx, bson.M{"email": email}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// DeletePendingByEmail consumes a pending registration.
func (r *Repository) DeletePendingByEmail(ctx context.Context, email string) error {
	_, err := r.pending.DeleteOne(ctx, bson.M{"email": email})
	return err
}
