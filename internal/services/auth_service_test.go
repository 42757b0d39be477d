package services_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"campustrade/internal/models"
	"campustrade/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(userRepo *MockUserRepository, blobs *StubBlobStore) *services.AuthService {
	return services.NewAuthService(userRepo, blobs, services.AuthConfig{
		JWTSecret:   "test-secret",
		TokenTTL:    time.Hour,
		EmailDomain: "@edu.example.ac.jp",
	})
}

func TestAuthService_Register(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	service := newAuthService(mockUserRepo, &StubBlobStore{})

	mockUserRepo.On("GetByEmail", "alice@edu.example.ac.jp").Return(nil, fmt.Errorf("user: %w", models.ErrNotFound))
	mockUserRepo.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		args.Get(0).(*models.User).ID = "user-1"
	}).Return(nil)

	user, err := service.Register("alice@edu.example.ac.jp", "alice", "password123")
	assert.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "alice", user.Username)

	// The stored password is a bcrypt hash, never the plaintext.
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))

	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_Register_Rejections(t *testing.T) {
	t.Run("wrong email domain", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		service := newAuthService(mockUserRepo, &StubBlobStore{})

		_, err := service.Register("alice@gmail.com", "alice", "password123")
		assert.ErrorIs(t, err, models.ErrInvalidArgument)
		mockUserRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		service := newAuthService(mockUserRepo, &StubBlobStore{})

		existing := &models.User{ID: "user-1", Email: "alice@edu.example.ac.jp"}
		mockUserRepo.On("GetByEmail", "alice@edu.example.ac.jp").Return(existing, nil)

		_, err := service.Register("alice@edu.example.ac.jp", "alice2", "password123")
		assert.ErrorIs(t, err, models.ErrInvalidArgument)
		mockUserRepo.AssertNotCalled(t, "Create", mock.Anything)
	})
}

func TestAuthService_LoginAndValidateToken(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	service := newAuthService(mockUserRepo, &StubBlobStore{})

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	user := &models.User{ID: "user-1", Email: "alice@edu.example.ac.jp", Password: string(hashed)}
	mockUserRepo.On("GetByEmail", "alice@edu.example.ac.jp").Return(user, nil)
	mockUserRepo.On("GetByID", "user-1").Return(user, nil)

	token, err := service.Login("alice@edu.example.ac.jp", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 3, len(strings.Split(token, ".")))

	resolved, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", resolved.ID)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	service := newAuthService(mockUserRepo, &StubBlobStore{})

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	user := &models.User{ID: "user-1", Email: "alice@edu.example.ac.jp", Password: string(hashed)}
	mockUserRepo.On("GetByEmail", "alice@edu.example.ac.jp").Return(user, nil)
	mockUserRepo.On("GetByEmail", "ghost@edu.example.ac.jp").Return(nil, fmt.Errorf("user: %w", models.ErrNotFound))

	_, err = service.Login("alice@edu.example.ac.jp", "wrong-password")
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	// Unknown email yields the same error as a wrong password.
	_, err = service.Login("ghost@edu.example.ac.jp", "password123")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestAuthService_ValidateToken_Rejections(t *testing.T) {
	t.Run("garbage token", func(t *testing.T) {
		service := newAuthService(new(MockUserRepository), &StubBlobStore{})
		_, err := service.ValidateToken("not-a-jwt")
		assert.ErrorIs(t, err, models.ErrUnauthorized)
	})

	t.Run("user removed after issue", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		service := newAuthService(mockUserRepo, &StubBlobStore{})

		hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		assert.NoError(t, err)
		user := &models.User{ID: "user-1", Email: "alice@edu.example.ac.jp", Password: string(hashed)}
		mockUserRepo.On("GetByEmail", "alice@edu.example.ac.jp").Return(user, nil)
		mockUserRepo.On("GetByID", "user-1").Return(nil, fmt.Errorf("user: %w", models.ErrNotFound))

		token, err := service.Login("alice@edu.example.ac.jp", "password123")
		assert.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, models.ErrUnauthorized)
	})
}

func TestAuthService_UpdateAvatar(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	blobs := &StubBlobStore{}
	service := newAuthService(mockUserRepo, blobs)

	user := &models.User{ID: "user-1", AvatarURL: "/static/avatars/old.png"}
	mockUserRepo.On("GetByID", "user-1").Return(user, nil)
	mockUserRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil)

	updated, err := service.UpdateAvatar("user-1", "new.png", strings.NewReader("png bytes"))
	assert.NoError(t, err)
	assert.Equal(t, "/static/avatars/new.png", updated.AvatarURL)

	// The replaced blob is removed after the reference swap.
	assert.Equal(t, []string{"/static/avatars/new.png"}, blobs.Saved)
	assert.Equal(t, []string{"/static/avatars/old.png"}, blobs.Removed)
	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	service := newAuthService(mockUserRepo, &StubBlobStore{})

	user := &models.User{ID: "user-1", Username: "alice"}
	mockUserRepo.On("GetByID", "user-1").Return(user, nil)
	mockUserRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil)

	updated, err := service.UpdateProfile("user-1", "alice-renamed")
	assert.NoError(t, err)
	assert.Equal(t, "alice-renamed", updated.Username)
	mockUserRepo.AssertExpectations(t)
}
