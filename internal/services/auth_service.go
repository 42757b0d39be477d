package services

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"campustrade/internal/models"
	"campustrade/internal/repositories"
	"campustrade/internal/storage"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthConfig carries the identity verifier settings. It is built once
// at startup from the configuration and never mutated.
type AuthConfig struct {
	JWTSecret   string
	TokenTTL    time.Duration
	EmailDomain string // required suffix for registration emails, e.g. "@edu.example.ac.jp"
}

// AuthService handles registration, login, token validation and the
// current user's profile.
type AuthService struct {
	userRepo repositories.UserRepository
	blobs    storage.Store
	cfg      AuthConfig
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, blobs storage.Store, cfg AuthConfig) *AuthService {
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	return &AuthService{
		userRepo: userRepo,
		blobs:    blobs,
		cfg:      cfg,
	}
}

// Register creates a new user. Registration requires an email from the
// configured school domain and rejects duplicate emails.
func (s *AuthService) Register(email, username, password string) (*models.User, error) {
	if s.cfg.EmailDomain != "" && !strings.HasSuffix(email, s.cfg.EmailDomain) {
		return nil, fmt.Errorf("registration requires a %s email: %w", s.cfg.EmailDomain, models.ErrInvalidArgument)
	}
	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return nil, fmt.Errorf("email %s is already registered: %w", email, models.ErrInvalidArgument)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    email,
		Username: username,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// Login authenticates by email and password and returns a signed JWT.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		// Deliberately indistinguishable from a wrong password.
		return "", fmt.Errorf("invalid credentials: %w", models.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials: %w", models.ErrUnauthorized)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(s.cfg.TokenTTL).Unix(),
		"iat":     time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a JWT, returning the user it
// resolves to. A valid token for a since-removed user is rejected.
func (s *AuthService) ValidateToken(tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", models.ErrUnauthorized)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", models.ErrUnauthorized)
	}
	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, fmt.Errorf("token missing user_id: %w", models.ErrUnauthorized)
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("token user: %w", models.ErrUnauthorized)
	}
	return user, nil
}

// GetUser returns a user by ID.
func (s *AuthService) GetUser(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// UpdateProfile changes the user's display name.
func (s *AuthService) UpdateProfile(userID, username string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.Username = username
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateAvatar stores a new avatar blob and swaps the reference. The
// previous blob is removed best-effort; a failed removal is logged and
// never fails the update.
func (s *AuthService) UpdateAvatar(userID, filename string, file io.Reader) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	url, err := s.blobs.Save("avatars", filename, file)
	if err != nil {
		return nil, fmt.Errorf("failed to store avatar: %w", err)
	}

	oldURL := user.AvatarURL
	user.AvatarURL = url
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	if oldURL != "" {
		if err := s.blobs.Remove(oldURL); err != nil {
			log.Printf("Warning: failed to remove old avatar %s: %v", oldURL, err)
		}
	}
	return user, nil
}
