package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/claussm/barefoot-tees/internal/domain"
)

type mockUserRepository struct {
	users map[string]*domain.User // by email
	err   error
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

type mockHasher struct {
	password string
}

func (m *mockHasher) GenerateSalt() (string, error)    { return "salt", nil }
func (m *mockHasher) Hash(_, _ string) (string, error) { return "hash", nil }
func (m *mockHasher) Compare(_, _, password string) error {
	if password != m.password {
		return errors.New("mismatch")
	}
	return nil
}

type mockIssuer struct{}

func (m *mockIssuer) Issue(userID, email string, expiry time.Duration) (string, error) {
	return "token-for-" + userID, nil
}

func TestAuthService_Login(t *testing.T) {
	admin := &domain.User{ID: "u1", Email: "admin@example.com", Name: "Admin"}
	userRepo := &mockUserRepository{users: map[string]*domain.User{"admin@example.com": admin}}
	svc := NewAuthService(userRepo, &mockHasher{password: "correct"}, &mockIssuer{}, time.Hour)

	t.Run("success", func(t *testing.T) {
		token, user, err := svc.Login(context.Background(), "Admin@Example.com ", "correct")
		if err != nil {
			t.Fatal(err)
		}
		if token != "token-for-u1" || user.ID != "u1" {
			t.Errorf("got (%q, %+v)", token, user)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "admin@example.com", "wrong")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("got %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email gets the same error", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "nobody@example.com", "correct")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("got %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("blank input", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "", "")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("got %v, want ErrInvalidCredentials", err)
		}
	})
}
