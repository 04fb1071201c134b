package cleanup

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
)

type mockSessionDeleter struct {
	deleteExpiredFn func(ctx context.Context) (int64, error)
	calls           int
}

func (m *mockSessionDeleter) DeleteExpired(ctx context.Context) (int64, error) {
	m.calls++
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx)
	}
	return 0, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestRun_DeletesExpiredSessions(t *testing.T) {
	deleter := &mockSessionDeleter{
		deleteExpiredFn: func(ctx context.Context) (int64, error) {
			return 7, nil
		},
	}
	job := NewCleanupJob(deleter, testLogger())

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleter.calls != 1 {
		t.Errorf("calls = %d, want 1", deleter.calls)
	}
}

func TestRun_NoExpiredSessions_IsIdempotent(t *testing.T) {
	deleter := &mockSessionDeleter{}
	job := NewCleanupJob(deleter, testLogger())

	for i := 0; i < 3; i++ {
		if err := job.Run(context.Background()); err != nil {
			t.Fatalf("run %d: unexpected error: %v", i+1, err)
		}
	}
}

func TestRun_RepositoryError_IsWrapped(t *testing.T) {
	deleter := &mockSessionDeleter{
		deleteExpiredFn: func(ctx context.Context) (int64, error) {
			return 0, errors.New("deadlock detected")
		},
	}
	job := NewCleanupJob(deleter, testLogger())

	if err := job.Run(context.Background()); err == nil {
		t.Error("expected error")
	}
}

func TestStart_RunsImmediatelyAndStopsOnCancel(t *testing.T) {
	deleter := &mockSessionDeleter{}
	job := NewCleanupJob(deleter, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Start(ctx)
		close(done)
	}()

	cancel()
	<-done

	if deleter.calls < 1 {
		t.Errorf("calls = %d, want at least 1 immediate run", deleter.calls)
	}
}
