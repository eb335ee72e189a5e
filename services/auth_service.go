package services

import (
	"context"
	"log"
	"strings"
	"time"

	"gadget-store/config"
	"gadget-store/models"
	"gadget-store/utils"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type AuthService struct {
	users UserStore
	mail  *models.EmailService
}

// NewAuthService accepts a nil mail service; welcome emails are then skipped.
func NewAuthService(users UserStore, mail *models.EmailService) *AuthService {
	return &AuthService{users: users, mail: mail}
}

func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (*models.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, storageError("Server error while signing up", err)
	}
	if existing != nil {
		return nil, models.NewConflictError("Email already registered")
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, storageError("Server error while signing up", err)
	}

	role := req.Role
	if role == "" {
		role = "user"
	}

	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: hashed,
		Role:     role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, storageError("Server error while signing up", err)
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, storageError("Server error while signing up", err)
	}

	if s.mail != nil {
		if err := s.mail.SendWelcomeEmail(user.Email, user.Name); err != nil {
			log.Printf("Failed to send welcome email to %s: %v", user.Email, err)
		}
	}

	return &models.LoginResponse{Token: token, User: *user}, nil
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, storageError("Server error while logging in", err)
	}
	if user == nil {
		return nil, models.NewAuthError("Invalid email or password")
	}

	ok, err := utils.VerifyPassword(user.Password, req.Password)
	if err != nil || !ok {
		return nil, models.NewAuthError("Invalid email or password")
	}

	if !user.IsActive {
		return nil, models.NewAuthError("Account is deactivated")
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, storageError("Server error while logging in", err)
	}
	return &models.LoginResponse{Token: token, User: *user}, nil
}

// Authenticate resolves a bearer token to its user. Revoked tokens are
// rejected when Redis is available.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := utils.ValidateToken(token)
	if err != nil {
		return nil, models.NewAuthError("Invalid or expired token")
	}

	if config.RedisClient != nil {
		revoked, err := config.RedisClient.Exists(ctx, denylistKey(token)).Result()
		if err != nil {
			log.Printf("Redis denylist check failed: %v", err)
		} else if revoked > 0 {
			return nil, models.NewAuthError("Token has been revoked")
		}
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, storageError("Server error while authenticating", err)
	}
	if user == nil {
		return nil, models.NewAuthError("No user found with this token")
	}
	if !user.IsActive {
		return nil, models.NewAuthError("Account is deactivated")
	}
	return user, nil
}

// Logout denylists the token until its natural expiry. A no-op without Redis.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if config.RedisClient == nil {
		return nil
	}

	claims, err := utils.ValidateToken(token)
	if err != nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := config.RedisClient.Set(ctx, denylistKey(token), "revoked", ttl).Err(); err != nil {
		log.Printf("Failed to denylist token: %v", err)
	}
	return nil
}

func (s *AuthService) Me(ctx context.Context, userID int) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, storageError("Server error while fetching profile", err)
	}
	if user == nil {
		return nil, models.NewNotFoundError("User not found")
	}
	return user, nil
}

func denylistKey(token string) string {
	return "denylist:" + token
}
