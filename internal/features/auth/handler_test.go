package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/plategenie/server/internal/config"
	apperrors "github.com/plategenie/server/pkg/errors"
)

type fakeStore struct {
	users   map[string]*User
	pending map[string]*PendingUser
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:   make(map[string]*User),
		pending: make(map[string]*PendingUser),
	}
}

func (s *fakeStore) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.users[email], nil
}

func (s *fakeStore) FindUserByID(ctx context.Context, userID string) (*User, error) {
	for _, u := range s.users {
		if u.ID.Hex() == userID {
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *fakeStore) InsertUser(ctx context.Context, user *User) error {
	if _, ok := s.users[user.Email]; ok {
		return apperrors.ErrDuplicate
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	s.users[user.Email] = user
	return nil
}

func (s *fakeStore) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*User, error) {
	for _, u := range s.users {
		if u.ID.Hex() != userID {
			continue
		}
		if upd.Username != nil {
			u.Username = *upd.Username
		}
		if upd.ProfilePicture != nil {
			u.ProfilePicture = *upd.ProfilePicture
		}
		if upd.Bio != nil {
			u.Bio = *upd.Bio
		}
		return u, nil
	}
	return nil, apperrors.ErrNotFound
}

func (s *fakeStore) LinkGoogle(ctx context.Context, userID primitive.ObjectID, googleID, picture string) error {
	for _, u := range s.users {
		if u.ID == userID {
			u.GoogleID = googleID
			u.ProfilePicture = picture
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (s *fakeStore) UpsertPending(ctx context.Context, p *PendingUser) error {
	s.pending[p.Email] = p
	return nil
}

func (s *fakeStore) FindPendingByEmail(ctx context.Context, email string) (*PendingUser, error) {
	return s.pending[email], nil
}

func (s *fakeStore) DeletePendingByEmail(ctx context.Context, email string) error {
	delete(s.pending, email)
	return nil
}

type fakeMailer struct {
	sent []string // "to:otp" pairs in delivery order
	err  error
}

func (m *fakeMailer) SendOTP(ctx context.Context, to, otp string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to+":"+otp)
	return nil
}

type fakeGoogle struct {
	identity *GoogleUser
	err      error
}

func (g *fakeGoogle) Exchange(ctx context.Context, code string) (*GoogleUser, error) {
	return g.identity, g.err
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:      "test-secret",
		JWTExpireHours: 1,
	}
}

func newAuthRouter(store Store, mail Mailer, google GoogleVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(store, mail, google, testConfig())
	r.POST("/register", h.Register)
	r.POST("/verify-otp", h.VerifyOTP)
	r.POST("/login", h.Login)
	r.POST("/google-login", h.GoogleLogin)
	r.PUT("/users/profile", h.UpdateProfile)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func seedVerifiedUser(t *testing.T, store *fakeStore, email, password string) *User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &User{
		Username:   "seeded",
		Email:      email,
		Password:   string(hashed),
		IsVerified: true,
	}
	require.NoError(t, store.InsertUser(context.Background(), user))
	return user
}

func TestRegister_MissingFields(t *testing.T) {
	store := newFakeStore()
	r := newAuthRouter(store, &fakeMailer{}, &fakeGoogle{})

	w := doJSON(t, r, "POST", "/register", gin.H{"username": "alex", "email": "a@b.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "All fields are required.")
	require.Empty(t, store.pending)
}

func TestRegister_EmailTaken(t *testing.T) {
	store := newFakeStore()
	seedVerifiedUser(t, store, "a@b.com", "pw")
	r := newAuthRouter(store, &fakeMailer{}, &fakeGoogle{})

	w := doJSON(t, r, "POST", "/register", gin.H{
		"username": "alex", "email": "a@b.com", "password": "pw",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "User with this email already exists.")
}

func TestRegister_Success(t *testing.T) {
	store := newFakeStore()
	mail := &fakeMailer{}
	r := newAuthRouter(store, mail, &fakeGoogle{})

	w := doJSON(t, r, "POST", "/register", gin.H{
		"username": "alex", "email": "a@b.com", "password": "pw",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), "Registration successful!")

	pending := store.pending["a@b.com"]
	require.NotNil(t, pending)
	require.Equal(t, "alex", pending.Username)
	require.NotEqual(t, "pw", pending.Password, "password must be stored hashed")
	require.Len(t, mail.sent, 1)
	require.Equal(t, "a@b.com:"+pending.OTP, mail.sent[0])
}

func TestRegister_ReplacesPendingAttempt(t *testing.T) {
	store := newFakeStore()
	mail := &fakeMailer{}
	r := newAuthRouter(store, mail, &fakeGoogle{})

	doJSON(t, r, "POST", "/register", gin.H{"username": "alex", "email": "a@b.com", "password": "pw"})
	first := store.pending["a@b.com"]

	w := doJSON(t, r, "POST", "/register", gin.H{"username": "alexandra", "email": "a@b.com", "password": "pw2"})
	require.Equal(t, http.StatusCreated, w.Code)

	second := store.pending["a@b.com"]
	require.Equal(t, "alexandra", second.Username)
	require.NotSame(t, first, second)
	require.Len(t, mail.sent, 2)
}

func TestRegister_MailDeliveryFails(t *testing.T) {
	store := newFakeStore()
	r := newAuthRouter(store, &fakeMailer{err: errors.New("smtp down")}, &fakeGoogle{})

	w := doJSON(t, r, "POST", "/register", gin.H{
		"username": "alex", "email": "a@b.com", "password": "pw",
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "Failed to send verification email.")
}

func TestVerifyOTP_UnknownEmail(t *testing.T) {
	r := newAuthRouter(newFakeStore(), &fakeMailer{}, &fakeGoogle{})

	w := doJSON(t, r, "POST", "/verify-otp", gin.H{"email": "a@b.com", "otp": "123456"})
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "User not found or already verified.")
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	store := newFakeStore()
	store.pending["a@b.com"] = &PendingUser{
		Username:   "alex",
		Email:      "a@b.com",
		OTP:        "123456",
		OTPExpires: time.Now().Add(OTPTTL),
	}
	r := newAuthRouter(store, &fakeMailer{}, &fakeGoogle{})

	w := doJSON(t, r, "POST", "/verify-otp", gin.H{"email": "a@b.com", "otp": "000000"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Invalid or expired OTP.")
	require.NotNil(t, store.pending["a@b.com"], "pending record must survive a failed attempt")
}

func TestVerifyOTP_Expired(t *testing.T) {
	store := newFakeStore()
	store.pending["a@b.com"] = &PendingUser{
		Username:   "alex",
		Email:      "a@b.com",
		OTP:        "123456",
		OTPExpires: time.Now().Add(-time.Minute),
	}
	r := newAuthRouter(store, &fakeMailer{}, &fakeGoogle{})

	w := doJSON(t, r, "POST", "/verify-otp", gin.H{"email": "a@b.com", "otp": "123456"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyOTP_PromotesPendingUser(t *testing.T) {
	store := newFakeStore()
	store.pending["a@b.com"] = &PendingUser{
		Username:   "alex",
		Email:      "a@b.com",
		Password:   "hashed-pw",
		OTP:        "123456",
		OTPExpires: time.Now().Add(OTPTTL),
	}
	r := newAuthRouter(store, &fakeMailer{}, &fakeGoogle{})

	w := doJSON(t, r, "POST", "/verify-otp", gin.H{"email": "a@b.com", "otp": "123456"})
	require.Equal(t, http.StatusOK, w.Code)

	user := store.users["a@b.com"]
	require.NotNil(t, user)
	require.True(t, user.IsVerified)
	require.Equal(t, "hashed-pw", user.Password)
	require.Empty(t, store.pending, "pending record must be consumed")

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body["accessToken"])
	require.NotContains(t, w.Body.String(), "hashed-pw")

	// Replaying the same code must not create a second account.
	w = doJSON(t, r, "POST", "/verify-otp", gin.H{"email": "a@b.com", "otp": "123456"})
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Len(t, store.users, 1)
}

func TestVerifyOTP_DuplicateUserCleansPending(t *testing.T) {
	store := newFakeStore()
	seedVerifiedUser(t, store, "a@b.com", "pw")
	store.pending["a@b.com"] = &PendingUser{
		Username:   "alex",
		Email:      "a@b.com",
		OTP:        "123456",
		OTPExpires: time.Now().Add(OTPTTL),
	}
	r := newAuthRouter(store, &fakeMailer{}, &fakeGoogle{})

	w := doJSON(t, r, "POST", "/verify-otp", gin.H{"email": "a@b.com", "otp": "123456"})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Empty(t, store.pending)
}

func TestLogin_UnknownEmail(t *testing.T) {
	r := newAuthRouter(newFakeStore(), &fakeMailer{}, &fakeGoogle{})

	w := doJSON(t, r, "POST", "/login", gin.H{"email": "a@b.com", "password": "pw"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Invalid email or password.")
}

func TestLogin_WrongPassword(t *testing.T) {
	store := newFakeStore()
	seedVerifiedUser(t, store, "a@b.com", "correct")
	r := newAuthRouter(store, &fakeMailer{}, &fakeGoogle{})

	w := doJSON(t, r, "POST", "/login", gin.H{"email": "a@b.com", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Invalid email or password.")
}

func TestLogin_Unverified(t *testing.T) {
	store := newFakeStore()
	user := seedVerifiedUser(t, store, "a@b.com", "pw")
	user.IsVerified = false
	r := newAuthRouter(store, &fakeMailer{}, &fakeGoogle{})

	w := doJSON(t, r, "POST", "/login", gin.H{"email": "a@b.com", "password": "pw"})
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "Please verify your email before logging in.")
}

func TestLogin_Success(t *testing.T) {
	store := newFakeStore()
	seedVerifiedUser(t, store, "a@b.com", "pw")
	r := newAuthRouter(store, &fakeMailer{}, &fakeGoogle{})

	w := doJSON(t, r, "POST", "/login", gin.H{"email": "a@b.com", "password": "pw"})
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Login successful!", body["message"])
	require.NotEmpty(t, body["accessToken"])
}

func TestGoogleLogin_MissingCode(t *testing.T) {
	r := newAuthRouter(newFakeStore(), &fakeMailer{}, &fakeGoogle{})

	w := doJSON(t, r, "POST", "/google-login", gin.H{"code": ""})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Authorization code is missing.")
}

func TestGoogleLogin_ExchangeFails(t *testing.T) {
	r := newAuthRouter(newFakeStore(), &fakeMailer{}, &fakeGoogle{err: errors.New("bad code")})

	w := doJSON(t, r, "POST", "/google-login", gin.H{"code": "abc"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Authentication failed.")
}

func TestGoogleLogin_CreatesVerifiedUser(t *testing.T) {
	store := newFakeStore()
	google := &fakeGoogle{identity: &GoogleUser{
		ID:      "g-123",
		Email:   "a@b.com",
		Name:    "Alex",
		Picture: "https://example.com/alex.png",
	}}
	r := newAuthRouter(store, &fakeMailer{}, google)

	w := doJSON(t, r, "POST", "/google-login", gin.H{"code": "abc"})
	require.Equal(t, http.StatusOK, w.Code)

	user := store.users["a@b.com"]
	require.NotNil(t, user)
	require.True(t, user.IsVerified)
	require.Equal(t, "g-123", user.GoogleID)
	require.Empty(t, user.Password)
}

func TestGoogleLogin_BackfillsExistingAccount(t *testing.T) {
	store := newFakeStore()
	existing := seedVerifiedUser(t, store, "a@b.com", "pw")
	google := &fakeGoogle{identity: &GoogleUser{
		ID:      "g-123",
		Email:   "a@b.com",
		Name:    "Alex",
		Picture: "https://example.com/alex.png",
	}}
	r := newAuthRouter(store, &fakeMailer{}, google)

	w := doJSON(t, r, "POST", "/google-login", gin.H{"code": "abc"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.users, 1)
	require.Equal(t, "g-123", existing.GoogleID)
	require.NotEmpty(t, existing.Password, "password login must keep working")
}

func TestUpdateProfile_Validation(t *testing.T) {
	r := newAuthRouter(newFakeStore(), &fakeMailer{}, &fakeGoogle{})

	w := doJSON(t, r, "PUT", "/users/profile", gin.H{"bio": "hi"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "User ID is required.")

	w = doJSON(t, r, "PUT", "/users/profile", gin.H{"userId": primitive.NewObjectID().Hex()})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "No update data provided.")
}

func TestUpdateProfile_UnknownUser(t *testing.T) {
	r := newAuthRouter(newFakeStore(), &fakeMailer{}, &fakeGoogle{})

	w := doJSON(t, r, "PUT", "/users/profile", gin.H{
		"userId": primitive.NewObjectID().Hex(),
		"bio":    "hi",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "User not found.")
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	store := newFakeStore()
	user := seedVerifiedUser(t, store, "a@b.com", "pw")
	r := newAuthRouter(store, &fakeMailer{}, &fakeGoogle{})

	w := doJSON(t, r, "PUT", "/users/profile", gin.H{
		"userId": user.ID.Hex(),
		"bio":    "home cook",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "home cook", user.Bio)
	require.Equal(t, "seeded", user.Username, "unset fields must stay unchanged")
}

func TestMe_ReturnsCurrentUser(t *testing.T) {
	store := newFakeStore()
	user := seedVerifiedUser(t, store, "a@b.com", "pw")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(store, &fakeMailer{}, &fakeGoogle{}, testConfig())
	r.GET("/auth/me", func(c *gin.Context) {
		c.Set("userID", user.ID.Hex())
	}, h.Me)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "a@b.com")
	require.NotContains(t, w.Body.String(), user.Password)
}
