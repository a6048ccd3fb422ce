// ================== internal/features/auth/handler.go ==================
package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/plategenie/server/internal/config"
	"github.com/plategenie/server/internal/pkg/response"
	"github.com/plategenie/server/internal/pkg/token"
	apperrors "github.com/plategenie/server/pkg/errors"
)

// Store is the persistence contract the handler depends on, implemented
// by *Repository and by in-memory fakes in tests.
type Store interface {
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	FindUserByID(ctx context.Context, userID string) (*User, error)
	InsertUser(ctx context.Context, user *User) error
	UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*User, error)
	LinkGoogle(ctx context.Context, userID primitive.ObjectID, googleID, picture string) error
	UpsertPending(ctx context.Context, p *PendingUser) error
	FindPendingByEmail(ctx context.Context, email string) (*PendingUser, error)
	DeletePendingByEmail(ctx context.Context, email string) error
}

// Mailer delivers the OTP email.
type Mailer interface {
	SendOTP(ctx context.Context, to, otp string) error
}

type Handler struct {
	store  Store
	mail   Mailer
	google GoogleVerifier
	cfg    *config.Config
}

func NewHandler(store Store, mail Mailer, google GoogleVerifier, cfg *config.Config) *Handler {
	return &Handler{
		store:  store,
		mail:   mail,
		google: google,
		cfg:    cfg,
	}
}

// Register starts a registration: hashes the password, stores a pending
// record keyed by email (replacing any previous attempt) and emails the
// OTP. The pending record is kept even if delivery fails, so the user
// can simply register again.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format")
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		response.BadRequest(c, "All fields are required.")
		return
	}

	existing, err := h.store.FindUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.ServerError(c, "Server error.")
		return
	}
	if existing != nil {
		response.Conflict(c, "User with this email already exists.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		response.ServerError(c, "Failed to process password")
		return
	}

	pending := &PendingUser{
		Username:   req.Username,
		Email:      req.Email,
		Password:   string(hashed),
		OTP:        GenerateOTP(),
		OTPExpires: time.Now().Add(OTPTTL),
	}

	if err := h.store.UpsertPending(c.Request.Context(), pending); err != nil {
		response.ServerError(c, "Server error.")
		return
	}

	if err := h.mail.SendOTP(c.Request.Context(), pending.Email, pending.OTP); err != nil {
		response.ServerError(c, "Failed to send verification email.")
		return
	}

	response.Message(c, http.StatusCreated, "Registration successful! Please check your email for the OTP.")
}

// VerifyOTP promotes a pending registration to a verified user. The
// insert and the pending delete are two separate writes; the unique
// email index keeps a replayed promotion from creating a second user.
func (h *Handler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format")
		return
	}

	if req.Email == "" || req.OTP == "" {
		response.BadRequest(c, "Email and OTP are required.")
		return
	}

	ctx := c.Request.Context()

	pending, err := h.store.FindPendingByEmail(ctx, req.Email)
	if err != nil {
		response.ServerError(c, "Server error.")
		return
	}
	if pending == nil {
		response.NotFound(c, "User not found or already verified.")
		return
	}

	if err := ValidateOTP(pending, req.OTP, time.Now()); err != nil {
		response.BadRequest(c, "Invalid or expired OTP.")
		return
	}

	user := &User{
		Username:   pending.Username,
		Email:      pending.Email,
		Password:   pending.Password,
		IsVerified: true,
	}

	if err := h.store.InsertUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// A crash after a previous insert left the pending record
			// behind. Finish the promotion and report the conflict.
			_ = h.store.DeletePendingByEmail(ctx, req.Email)
			response.Conflict(c, "User with this email already exists.")
			return
		}
		response.ServerError(c, "Server error.")
		return
	}

	if err := h.store.DeletePendingByEmail(ctx, req.Email); err != nil {
		response.ServerError(c, "Server error.")
		return
	}

	accessToken, err := token.Generate(user.ID.Hex(), user.Email, h.cfg.JWTSecret, h.cfg.JWTExpireHours)
	if err != nil {
		response.ServerError(c, "Failed to generate token")
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"message":     "OTP verified successfully. You are now logged in.",
		"user":        user.Public(),
		"accessToken": accessToken,
	})
}

// Login authenticates a password-based account. Unknown email and wrong
// password share one message; an unverified account is reported
// distinctly so the client can prompt re-verification.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format")
		return
	}

	if req.Email == "" || req.Password == "" {
		response.BadRequest(c, "Email and password are required.")
		return
	}

	user, err := h.store.FindUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.ServerError(c, "Server error.")
		return
	}
	if user == nil {
		response.Unauthorized(c, "Invalid email or password.")
		return
	}

	if !user.IsVerified {
		response.Forbidden(c, "Please verify your email before logging in.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		response.Unauthorized(c, "Invalid email or password.")
		return
	}

	accessToken, err := token.Generate(user.ID.Hex(), user.Email, h.cfg.JWTSecret, h.cfg.JWTExpireHours)
	if err != nil {
		response.ServerError(c, "Failed to generate token")
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"message":     "Login successful!",
		"user":        user.Public(),
		"accessToken": accessToken,
	})
}

// GoogleLogin exchanges a frontend authorization code for a Google
// identity. A new email creates a verified account outright; an
// existing password account gets the Google id backfilled.
func (h *Handler) GoogleLogin(c *gin.Context) {
	var req GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format")
		return
	}

	if req.Code == "" {
		response.BadRequest(c, "Authorization code is missing.")
		return
	}

	ctx := c.Request.Context()

	identity, err := h.google.Exchange(ctx, req.Code)
	if err != nil {
		response.Unauthorized(c, "Authentication failed.")
		return
	}

	user, err := h.store.FindUserByEmail(ctx, identity.Email)
	if err != nil {
		response.ServerError(c, "Server error.")
		return
	}

	if user == nil {
		user = &User{
			GoogleID:       identity.ID,
			Username:       identity.Name,
			Email:          identity.Email,
			ProfilePicture: identity.Picture,
			IsVerified:     true,
		}
		if err := h.store.InsertUser(ctx, user); err != nil {
			response.ServerError(c, "Server error.")
			return
		}
	} else if user.GoogleID == "" {
		if err := h.store.LinkGoogle(ctx, user.ID, identity.ID, identity.Picture); err != nil {
			response.ServerError(c, "Server error.")
			return
		}
		user.GoogleID = identity.ID
		user.ProfilePicture = identity.Picture
	}

	accessToken, err := token.Generate(user.ID.Hex(), user.Email, h.cfg.JWTSecret, h.cfg.JWTExpireHours)
	if err != nil {
		response.ServerError(c, "Failed to generate token")
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"message":     "Login successful!",
		"user":        user.Public(),
		"accessToken": accessToken,
	})
}

// UpdateProfile applies any subset of username/profilePicture/bio.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format")
		return
	}

	if req.UserID == "" {
		response.BadRequest(c, "User ID is required.")
		return
	}
	if req.Username == nil && req.ProfilePicture == nil && req.Bio == nil {
		response.BadRequest(c, "No update data provided.")
		return
	}

	user, err := h.store.UpdateProfile(c.Request.Context(), req.UserID, ProfileUpdate{
		Username:       req.Username,
		ProfilePicture: req.ProfilePicture,
		Bio:            req.Bio,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "User not found.")
			return
		}
		response.ServerError(c, "Server error.")
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"message": "Profile updated successfully!",
		"user":    user.Public(),
	})
}

// Me returns the authenticated user's public projection.
func (h *Handler) Me(c *gin.Context) {
	userID := c.GetString("userID")

	user, err := h.store.FindUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "User not found.")
			return
		}
		response.ServerError(c, "Server error.")
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"user": user.Public()})
}
