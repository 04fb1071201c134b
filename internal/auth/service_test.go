package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hitoshi/hireman/internal/model"
)

// --- モック定義 ---

type mockUserRepository struct {
	findByIDFn    func(ctx context.Context, id string) (*model.User, error)
	findByEmailFn func(ctx context.Context, email string) (*model.User, error)
	createFn      func(ctx context.Context, user *model.User) error
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

type mockSessionRepository struct {
	createFn        func(ctx context.Context, session *model.Session) error
	findPrincipalFn func(ctx context.Context, sessionID string) (*model.Principal, error)
	deleteByIDFn    func(ctx context.Context, id string) error
	deleteExpiredFn func(ctx context.Context) (int64, error)
}

func (m *mockSessionRepository) Create(ctx context.Context, session *model.Session) error {
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return nil
}

func (m *mockSessionRepository) FindPrincipalBySession(ctx context.Context, sessionID string) (*model.Principal, error) {
	if m.findPrincipalFn != nil {
		return m.findPrincipalFn(ctx, sessionID)
	}
	return nil, nil
}

func (m *mockSessionRepository) DeleteByID(ctx context.Context, id string) error {
	if m.deleteByIDFn != nil {
		return m.deleteByIDFn(ctx, id)
	}
	return nil
}

func (m *mockSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx)
	}
	return 0, nil
}

// --- ヘルパー ---

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return string(hash)
}

func testService(userRepo *mockUserRepository, sessionRepo *mockSessionRepository) *Service {
	return NewService(userRepo, sessionRepo, nil, ServiceConfig{
		SessionMaxAge: 86400,
		BcryptCost:    bcrypt.MinCost,
	})
}

// --- テスト ---

func TestLogin_ValidCredentials_CreatesSession(t *testing.T) {
	hrUser := &model.User{
		ID:           "user-hr",
		Email:        "hr_v2@example.com",
		PasswordHash: hashFor(t, "password123"),
		Role:         model.RoleHR,
	}

	var createdSession *model.Session
	userRepo := &mockUserRepository{
		findByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			if email == hrUser.Email {
				return hrUser, nil
			}
			return nil, nil
		},
	}
	sessionRepo := &mockSessionRepository{
		createFn: func(ctx context.Context, session *model.Session) error {
			createdSession = session
			return nil
		},
	}

	svc := testService(userRepo, sessionRepo)
	user, session, err := svc.Login(context.Background(), "hr_v2@example.com", "password123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != model.RoleHR {
		t.Errorf("role = %q, want %q", user.Role, model.RoleHR)
	}
	if session == nil || session.ID == "" {
		t.Fatal("session should be issued")
	}
	if createdSession == nil || createdSession.ID != session.ID {
		t.Error("session should be persisted")
	}
	if session.UserID != "user-hr" {
		t.Errorf("session userID = %q, want user-hr", session.UserID)
	}

	wantExpiry := time.Now().Add(86400 * time.Second)
	if session.ExpiresAt.Before(wantExpiry.Add(-time.Minute)) || session.ExpiresAt.After(wantExpiry.Add(time.Minute)) {
		t.Errorf("expiresAt = %v, want ~%v", session.ExpiresAt, wantExpiry)
	}
}

func TestLogin_WrongPassword_ReturnsInvalidCredentials(t *testing.T) {
	userRepo := &mockUserRepository{
		findByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{
				ID:           "user-1",
				Email:        email,
				PasswordHash: hashFor(t, "correct-password"),
				Role:         model.RoleUser,
			}, nil
		},
	}

	svc := testService(userRepo, &mockSessionRepository{})
	_, _, err := svc.Login(context.Background(), "user@example.com", "wrong-password")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != "INVALID_CREDENTIALS" {
		t.Errorf("code = %q, want INVALID_CREDENTIALS", apiErr.Code)
	}
}

func TestLogin_UnknownEmail_ReturnsInvalidCredentials(t *testing.T) {
	svc := testService(&mockUserRepository{}, &mockSessionRepository{})
	_, _, err := svc.Login(context.Background(), "nobody@example.com", "password123")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != "INVALID_CREDENTIALS" {
		t.Errorf("code = %q, want INVALID_CREDENTIALS", apiErr.Code)
	}
}

func TestLogin_EmptyFields_ReturnsMissingField(t *testing.T) {
	svc := testService(&mockUserRepository{}, &mockSessionRepository{})
	_, _, err := svc.Login(context.Background(), "", "")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != "MISSING_FIELD" {
		t.Errorf("code = %q, want MISSING_FIELD", apiErr.Code)
	}
}

func TestLogout_DeletesSession(t *testing.T) {
	var deletedID string
	sessionRepo := &mockSessionRepository{
		deleteByIDFn: func(ctx context.Context, id string) error {
			deletedID = id
			return nil
		},
	}

	svc := testService(&mockUserRepository{}, sessionRepo)
	if err := svc.Logout(context.Background(), "session-abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deletedID != "session-abc" {
		t.Errorf("deleted session = %q, want session-abc", deletedID)
	}
}

func TestLogout_EmptySessionID_ReturnsError(t *testing.T) {
	svc := testService(&mockUserRepository{}, &mockSessionRepository{})
	if err := svc.Logout(context.Background(), ""); err == nil {
		t.Error("expected error for empty session ID")
	}
}

func TestCurrentUser_NotFound_ReturnsUserNotFound(t *testing.T) {
	svc := testService(&mockUserRepository{}, &mockSessionRepository{})
	_, err := svc.CurrentUser(context.Background(), "missing-user")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != "USER_NOT_FOUND" {
		t.Errorf("code = %q, want USER_NOT_FOUND", apiErr.Code)
	}
}

func TestCurrentUser_Found_ReturnsUser(t *testing.T) {
	userRepo := &mockUserRepository{
		findByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id, Email: "user@example.com", Role: model.RoleUser}, nil
		},
	}

	svc := testService(userRepo, &mockSessionRepository{})
	user, err := svc.CurrentUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "user-1" {
		t.Errorf("userID = %q, want user-1", user.ID)
	}
}
