// Package application は応募管理のドメインロジックを提供する。
// 応募の作成・一覧取得と、選考ステータス・面接進捗のライフサイクル操作を扱う。
package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/hireman/internal/metrics"
	"github.com/hitoshi/hireman/internal/model"
	"github.com/hitoshi/hireman/internal/repository"
)

const (
	// defaultPage はページ番号が未指定・不正な場合のデフォルト。
	defaultPage = 1
	// defaultLimit は1ページあたりの件数のデフォルト。
	defaultLimit = 10
	// maxLimit は1ページあたりの件数の上限。
	maxLimit = 100
)

// ResumeValidator は履歴書URLの安全性を検証するインターフェース。
// security.ResumeURLGuardServiceの部分集合として定義する。
type ResumeValidator interface {
	ValidateURL(rawURL string) error
}

// Sanitizer は自由入力テキストからHTMLを除去するインターフェース。
type Sanitizer interface {
	SanitizeText(raw string) string
}

// Service は応募管理のサービス層。
type Service struct {
	appRepo     repository.ApplicationRepository
	jobRepo     repository.JobRepository
	resumeGuard ResumeValidator
	sanitizer   Sanitizer
	collector   metrics.MetricsCollector
}

// NewService はServiceの新しいインスタンスを生成する。
// resumeGuard・sanitizer・collectorはnil許容で、nilの場合は該当処理をスキップする。
func NewService(
	appRepo repository.ApplicationRepository,
	jobRepo repository.JobRepository,
	resumeGuard ResumeValidator,
	sanitizer Sanitizer,
	collector metrics.MetricsCollector,
) *Service {
	return &Service{
		appRepo:     appRepo,
		jobRepo:     jobRepo,
		resumeGuard: resumeGuard,
		sanitizer:   sanitizer,
		collector:   collector,
	}
}

// Page は応募一覧のページネーション結果。
// Totalはページングとは独立したスコープ内の全件数。
type Page struct {
	Applications []model.ApplicationWithJob
	Total        int
	Page         int
	Limit        int
}

// normalizePaging はページ番号と件数を正規化する。
// 1未満のページは1に、範囲外のlimitはデフォルトに落とす。
func normalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}
	return page, limit
}

// ListByJob は指定求人への応募をページネーション付きで返す。
// 存在しない求人IDの場合も空の結果（total=0）を返し、エラーにしない。
func (s *Service) ListByJob(ctx context.Context, jobID string, page, limit int) (*Page, error) {
	page, limit = normalizePaging(page, limit)
	offset := (page - 1) * limit

	apps, err := s.appRepo.ListByJob(ctx, jobID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("応募一覧の取得に失敗しました: %w", err)
	}

	total, err := s.appRepo.CountByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("応募件数の取得に失敗しました: %w", err)
	}

	return &Page{Applications: apps, Total: total, Page: page, Limit: limit}, nil
}

// ListByUser は指定ユーザーの応募をページネーション付きで返す。
// 応募のないユーザーの場合も空の結果（total=0）を返し、エラーにしない。
func (s *Service) ListByUser(ctx context.Context, userID string, page, limit int) (*Page, error) {
	page, limit = normalizePaging(page, limit)
	offset := (page - 1) * limit

	apps, err := s.appRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("応募一覧の取得に失敗しました: %w", err)
	}

	total, err := s.appRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("応募件数の取得に失敗しました: %w", err)
	}

	return &Page{Applications: apps, Total: total, Page: page, Limit: limit}, nil
}

// CreateApplicationInput は応募作成の入力。
type CreateApplicationInput struct {
	JobID          string
	UserID         string
	CandidateName  string
	CandidateEmail string
	Resume         string
}

// CreateApplication は新しい応募を作成する。
// 候補者名とメールアドレスは必須で、サニタイズしてから永続化する。
// 履歴書URLが指定されている場合はSSRF対策の安全性検証を行う。
// 参照先の求人が存在しない場合はJOB_NOT_FOUNDを返す。
// 初期ステータスはApplied、面接ラウンド数は0で固定。
func (s *Service) CreateApplication(ctx context.Context, input CreateApplicationInput) (*model.Application, error) {
	name := s.clean(input.CandidateName)
	email := s.clean(input.CandidateEmail)
	resume := strings.TrimSpace(input.Resume)

	if name == "" {
		return nil, model.NewMissingFieldError("candidateName")
	}
	if email == "" {
		return nil, model.NewMissingFieldError("candidateEmail")
	}

	if resume != "" && s.resumeGuard != nil {
		if err := s.resumeGuard.ValidateURL(resume); err != nil {
			return nil, model.NewInvalidResumeURLError(err.Error())
		}
	}

	job, err := s.jobRepo.FindByID(ctx, input.JobID)
	if err != nil {
		return nil, fmt.Errorf("求人の取得に失敗しました: %w", err)
	}
	if job == nil {
		return nil, model.NewJobNotFoundError(input.JobID)
	}

	now := time.Now()
	app := &model.Application{
		ID:              uuid.New().String(),
		JobID:           job.ID,
		UserID:          input.UserID,
		CandidateName:   name,
		CandidateEmail:  email,
		Resume:          resume,
		Status:          model.StatusApplied,
		InterviewRounds: 0,
		AppliedDate:     now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("応募の作成に失敗しました: %w", err)
	}

	slog.Info("application created",
		slog.String("application_id", app.ID),
		slog.String("job_id", app.JobID),
		slog.String("user_id", app.UserID),
	)

	return app, nil
}

// clean はサニタイザーを通した上で前後の空白を除去する。
func (s *Service) clean(raw string) string {
	if s.sanitizer != nil {
		return s.sanitizer.SanitizeText(raw)
	}
	return strings.TrimSpace(raw)
}
