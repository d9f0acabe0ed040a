package service

import (
	"context"
	"testing"
	"time"

	"notable-server/internal/domain"
	"notable-server/internal/repository"
)

type mockUserRepo struct {
	users map[string]*domain.User // keyed by email
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*domain.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	if _, ok := m.users[user.Email]; ok {
		return repository.ErrDuplicate
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := m.users[email]
	return ok, nil
}

func (m *mockUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	for _, u := range m.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func newTestAuthService(repo *mockUserRepo) *AuthService {
	return NewAuthService(repo, "test-secret-key-32-characters!", 15*time.Minute, 24*time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(repo)

	err := svc.Register(context.Background(), &domain.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "SecurePass123!",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	user, err := repo.FindByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("expected user persisted, got %v", err)
	}
	if user.Password == "SecurePass123!" {
		t.Error("expected password to be hashed before storage")
	}
}

func TestAuthService_Register_Duplicates(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(repo)

	base := &domain.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "SecurePass123!",
	}
	if err := svc.Register(context.Background(), base); err != nil {
		t.Fatalf("setup register failed: %v", err)
	}

	tests := []struct {
		name string
		req  *domain.RegisterRequest
	}{
		{
			name: "duplicate email",
			req:  &domain.RegisterRequest{Username: "bob", Email: "alice@example.com", Password: "SecurePass123!"},
		},
		{
			name: "duplicate username",
			req:  &domain.RegisterRequest{Username: "alice", Email: "bob@example.com", Password: "SecurePass123!"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.Register(context.Background(), tt.req); err == nil {
				t.Error("expected error but got none")
			}
		})
	}
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())

	err := svc.Register(context.Background(), &domain.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "short",
	})
	if err == nil {
		t.Error("expected error for short password")
	}
}

func TestAuthService_Login(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(repo)

	svc.Register(context.Background(), &domain.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "SecurePass123!",
	})

	resp, err := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "SecurePass123!",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("expected tokens to be issued")
	}
	if resp.User.Password != "" {
		t.Error("expected password blanked in response")
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(repo)

	svc.Register(context.Background(), &domain.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "SecurePass123!",
	})

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "wrong password", email: "alice@example.com", password: "WrongPass123!"},
		{name: "unknown email", email: "nobody@example.com", password: "SecurePass123!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &domain.LoginRequest{Email: tt.email, Password: tt.password})
			if err == nil {
				t.Error("expected error but got none")
			}
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(repo)

	svc.Register(context.Background(), &domain.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "SecurePass123!",
	})

	login, err := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "SecurePass123!",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	resp, err := svc.RefreshToken(&domain.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("expected a new access token")
	}

	_, err = svc.RefreshToken(&domain.RefreshTokenRequest{RefreshToken: "invalid.token.here"})
	if err == nil {
		t.Error("expected error for invalid refresh token")
	}
}
