package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a verified account. Password is empty for accounts
// created through Google login only.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GoogleID       string             `bson:"googleId,omitempty" json:"googleId,omitempty"`
	Username       string             `bson:"username" json:"username"`
	Email          string             `bson:"email" json:"email"`
	Password       string             `bson:"password,omitempty" json:"-"`
	IsVerified     bool               `bson:"isVerified" json:"isVerified"`
	ProfilePicture string             `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	Bio            string             `bson:"bio,omitempty" json:"bio,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// PendingUser is an in-flight registration waiting for OTP verification.
// At most one exists per email; re-registering replaces it.
type PendingUser struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Username   string             `bson:"username" json:"username"`
	Email      string             `bson:"email" json:"email"`
	Password   string             `bson:"password" json:"-"`
	OTP        string             `bson:"otp" json:"-"`
	OTPExpires time.Time          `bson:"otpExpires" json:"otpExpires"`
}

// PublicUser is the projection returned by every auth endpoint.
type PublicUser struct {
	ID             primitive.ObjectID `json:"id"`
	Username       string             `json:"username"`
	Email          string             `json:"email"`
	ProfilePicture *string            `json:"profilePicture"`
	Bio            *string            `json:"bio,omitempty"`
}

// Public returns the user fields safe to hand to clients. ProfilePicture
// is null rather than omitted when the user has none.
func (u *User) Public() PublicUser {
	p := PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
	if u.ProfilePicture != "" {
		p.ProfilePicture = &u.ProfilePicture
	}
	if u.Bio != "" {
		p.Bio = &u.Bio
	}
	return p
}

// ProfileUpdate carries the optional profile fields; nil means "leave unchanged".
type ProfileUpdate struct {
	Username       *string
	ProfilePicture *string
	Bio            *string
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleLoginRequest struct {
	Code string `json:"code"`
}

type UpdateProfileRequest struct {
	UserID         string  `json:"userId"`
	Username       *string `json:"username"`
	ProfilePicture *string `json:"profilePicture"`
	Bio            *string `json:"bio"`
}
