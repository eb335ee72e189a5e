package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"gadget-store/config"
	"gadget-store/models"
)

type fakeUserStore struct {
	nextID int
	users  map[int]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, users: map[int]*models.User{}}
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	user.ID = f.nextID
	f.nextID++
	user.IsActive = true
	stored := *user
	f.users[stored.ID] = &stored
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func authTestConfig(t *testing.T) {
	t.Helper()
	prev := config.AppConfig
	config.AppConfig = &config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
	}
	t.Cleanup(func() { config.AppConfig = prev })
}

func TestSignupAndLogin(t *testing.T) {
	authTestConfig(t)
	users := newFakeUserStore()
	svc := NewAuthService(users, nil)
	ctx := context.Background()

	result, err := svc.Signup(ctx, models.SignupRequest{
		Name:     "Asep",
		Email:    "Asep@Example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if result.Token == "" {
		t.Error("Signup returned empty token")
	}
	if result.User.Email != "asep@example.com" {
		t.Errorf("Email = %q, want lowercased", result.User.Email)
	}
	if result.User.Role != "user" {
		t.Errorf("Role = %q, want default user", result.User.Role)
	}

	login, err := svc.Login(ctx, models.LoginRequest{Email: "asep@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if login.Token == "" {
		t.Error("Login returned empty token")
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	authTestConfig(t)
	users := newFakeUserStore()
	svc := NewAuthService(users, nil)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, models.SignupRequest{Name: "Asep", Email: "asep@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("first Signup failed: %v", err)
	}

	_, err := svc.Signup(ctx, models.SignupRequest{Name: "Other", Email: "ASEP@example.com", Password: "secret456"})
	appErr, ok := err.(*models.AppError)
	if !ok || appErr.Kind != models.ErrConflict {
		t.Fatalf("want conflict error, got %v", err)
	}
	if appErr.Message != "Email already registered" {
		t.Errorf("Message = %q", appErr.Message)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	authTestConfig(t)
	users := newFakeUserStore()
	svc := NewAuthService(users, nil)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, models.SignupRequest{Name: "Asep", Email: "asep@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	_, err := svc.Login(ctx, models.LoginRequest{Email: "asep@example.com", Password: "wrong"})
	appErr, ok := err.(*models.AppError)
	if !ok || appErr.Kind != models.ErrAuth {
		t.Fatalf("want auth error, got %v", err)
	}
	if appErr.Message != "Invalid email or password" {
		t.Errorf("Message = %q", appErr.Message)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	authTestConfig(t)
	svc := NewAuthService(newFakeUserStore(), nil)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@example.com", Password: "x"})
	appErr, ok := err.(*models.AppError)
	if !ok || appErr.Kind != models.ErrAuth {
		t.Fatalf("want auth error, got %v", err)
	}
}

func TestLoginDeactivatedAccount(t *testing.T) {
	authTestConfig(t)
	users := newFakeUserStore()
	svc := NewAuthService(users, nil)
	ctx := context.Background()

	result, err := svc.Signup(ctx, models.SignupRequest{Name: "Asep", Email: "asep@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	users.users[result.User.ID].IsActive = false

	_, err = svc.Login(ctx, models.LoginRequest{Email: "asep@example.com", Password: "secret123"})
	appErr, ok := err.(*models.AppError)
	if !ok || appErr.Kind != models.ErrAuth {
		t.Fatalf("want auth error, got %v", err)
	}
	if appErr.Message != "Account is deactivated" {
		t.Errorf("Message = %q", appErr.Message)
	}
	if appErr.Status() != 401 {
		t.Errorf("Status() = %d, want 401", appErr.Status())
	}
}

func TestAuthenticateDeactivatedAccount(t *testing.T) {
	authTestConfig(t)
	users := newFakeUserStore()
	svc := NewAuthService(users, nil)
	ctx := context.Background()

	result, err := svc.Signup(ctx, models.SignupRequest{Name: "Asep", Email: "asep@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	users.users[result.User.ID].IsActive = false

	// A valid token for a deactivated account is an auth failure, not a
	// permissions one.
	_, err = svc.Authenticate(ctx, result.Token)
	appErr, ok := err.(*models.AppError)
	if !ok || appErr.Kind != models.ErrAuth {
		t.Fatalf("want auth error, got %v", err)
	}
	if appErr.Status() != 401 {
		t.Errorf("Status() = %d, want 401", appErr.Status())
	}
	if appErr.Message != "Account is deactivated" {
		t.Errorf("Message = %q", appErr.Message)
	}
}

func TestAuthenticate(t *testing.T) {
	authTestConfig(t)
	users := newFakeUserStore()
	svc := NewAuthService(users, nil)
	ctx := context.Background()

	result, err := svc.Signup(ctx, models.SignupRequest{Name: "Asep", Email: "asep@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	user, err := svc.Authenticate(ctx, result.Token)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if user.ID != result.User.ID {
		t.Errorf("Authenticate resolved user %d, want %d", user.ID, result.User.ID)
	}
}

func TestAuthenticateGarbageToken(t *testing.T) {
	authTestConfig(t)
	svc := NewAuthService(newFakeUserStore(), nil)

	_, err := svc.Authenticate(context.Background(), "not-a-token")
	appErr, ok := err.(*models.AppError)
	if !ok || appErr.Kind != models.ErrAuth {
		t.Fatalf("want auth error, got %v", err)
	}
	if appErr.Message != "Invalid or expired token" {
		t.Errorf("Message = %q", appErr.Message)
	}
}

func TestAuthenticateDeletedUser(t *testing.T) {
	authTestConfig(t)
	users := newFakeUserStore()
	svc := NewAuthService(users, nil)
	ctx := context.Background()

	result, err := svc.Signup(ctx, models.SignupRequest{Name: "Asep", Email: "asep@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	delete(users.users, result.User.ID)

	_, err = svc.Authenticate(ctx, result.Token)
	appErr, ok := err.(*models.AppError)
	if !ok || appErr.Kind != models.ErrAuth {
		t.Fatalf("want auth error, got %v", err)
	}
	if appErr.Message != "No user found with this token" {
		t.Errorf("Message = %q", appErr.Message)
	}
}

func TestLogoutWithoutRedisIsNoop(t *testing.T) {
	authTestConfig(t)
	users := newFakeUserStore()
	svc := NewAuthService(users, nil)
	ctx := context.Background()

	result, err := svc.Signup(ctx, models.SignupRequest{Name: "Asep", Email: "asep@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	if err := svc.Logout(ctx, result.Token); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	// Without a revocation store the token keeps working.
	if _, err := svc.Authenticate(ctx, result.Token); err != nil {
		t.Fatalf("Authenticate after no-op logout failed: %v", err)
	}
}
