package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/hireman/internal/model"
)

// --- モック定義 ---

type mockPrincipalFinder struct {
	findFn func(ctx context.Context, sessionID string) (*model.Principal, error)
}

func (m *mockPrincipalFinder) FindPrincipalBySession(ctx context.Context, sessionID string) (*model.Principal, error) {
	if m.findFn != nil {
		return m.findFn(ctx, sessionID)
	}
	return nil, nil
}

// --- テスト ---

func TestSessionMiddleware_ValidSession_InjectsPrincipal(t *testing.T) {
	finder := &mockPrincipalFinder{
		findFn: func(ctx context.Context, sessionID string) (*model.Principal, error) {
			if sessionID == "valid-session-id" {
				return &model.Principal{UserID: "user-123", Role: model.RoleHR}, nil
			}
			return nil, nil
		},
	}

	mw := NewSessionMiddleware(finder)

	var captured model.Principal
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := PrincipalFromContext(r.Context())
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		captured = principal
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "valid-session-id"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if captured.UserID != "user-123" {
		t.Errorf("userID = %q, want %q", captured.UserID, "user-123")
	}
	if captured.Role != model.RoleHR {
		t.Errorf("role = %q, want %q", captured.Role, model.RoleHR)
	}
}

func TestSessionMiddleware_NoSessionCookie_Returns401(t *testing.T) {
	finder := &mockPrincipalFinder{}
	mw := NewSessionMiddleware(finder)

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestSessionMiddleware_ExpiredSession_Returns401(t *testing.T) {
	finder := &mockPrincipalFinder{
		findFn: func(ctx context.Context, sessionID string) (*model.Principal, error) {
			// 期限切れセッションはリポジトリがnilを返す
			return nil, nil
		},
	}
	mw := NewSessionMiddleware(finder)

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "expired-session"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestSessionMiddleware_RepositoryError_Returns401(t *testing.T) {
	finder := &mockPrincipalFinder{
		findFn: func(ctx context.Context, sessionID string) (*model.Principal, error) {
			return nil, errors.New("db connection lost")
		},
	}
	mw := NewSessionMiddleware(finder)

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "any"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestPrincipalFromContext_Missing_ReturnsError(t *testing.T) {
	_, err := PrincipalFromContext(context.Background())
	if err == nil {
		t.Error("expected error for missing principal")
	}
}

func TestContextWithPrincipal_RoundTrip(t *testing.T) {
	want := model.Principal{UserID: "user-7", Role: model.RoleUser}
	ctx := ContextWithPrincipal(context.Background(), want)

	got, err := PrincipalFromContext(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("principal = %+v, want %+v", got, want)
	}
}
