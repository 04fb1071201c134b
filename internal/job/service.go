// Package job は求人カタログのドメインロジックを提供する。
package job

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/hireman/internal/model"
	"github.com/hitoshi/hireman/internal/repository"
)

// Sanitizer は自由入力テキストからHTMLを除去するインターフェース。
// security.FieldSanitizerServiceの部分集合として定義する。
type Sanitizer interface {
	SanitizeText(raw string) string
}

// Service は求人カタログのサービス層。
// 一覧取得と求人作成のビジネスロジックを提供する。
type Service struct {
	jobRepo   repository.JobRepository
	sanitizer Sanitizer
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(jobRepo repository.JobRepository, sanitizer Sanitizer) *Service {
	return &Service{
		jobRepo:   jobRepo,
		sanitizer: sanitizer,
	}
}

// ListJobs は検索・ソート条件に合致する求人を応募件数付きで全件返す。
// searchはtitle・department・locationに対する大文字小文字を区別しない
// 部分一致。sortByがサポート外の値の場合はエラーにせずデフォルト順
// （掲載日降順）に静かにフォールバックする。ページネーションは行わない。
// orderの未指定は昇順として扱い、asc・desc以外の値は降順として扱う。
func (s *Service) ListJobs(ctx context.Context, search, sortBy string, order model.SortOrder) ([]model.JobWithCount, error) {
	switch order {
	case model.SortAsc, model.SortDesc:
	case "":
		order = model.SortAsc
	default:
		order = model.SortDesc
	}

	jobs, err := s.jobRepo.ListWithCounts(ctx, strings.TrimSpace(search), sortBy, order)
	if err != nil {
		return nil, fmt.Errorf("求人一覧の取得に失敗しました: %w", err)
	}

	return jobs, nil
}

// GetJob は指定IDの求人を取得する。
func (s *Service) GetJob(ctx context.Context, jobID string) (*model.Job, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("求人の取得に失敗しました: %w", err)
	}
	if job == nil {
		return nil, model.NewJobNotFoundError(jobID)
	}
	return job, nil
}

// CreateJobInput は求人作成の入力。
type CreateJobInput struct {
	Title      string
	Department string
	Location   string
}

// CreateJob は新しい求人を作成する。
// タイトルと部署は必須。掲載日は作成時刻で固定される。
// 自由入力フィールドはサニタイズしてから永続化する。
func (s *Service) CreateJob(ctx context.Context, input CreateJobInput) (*model.Job, error) {
	title := s.clean(input.Title)
	department := s.clean(input.Department)
	location := s.clean(input.Location)

	if title == "" {
		return nil, model.NewMissingFieldError("title")
	}
	if department == "" {
		return nil, model.NewMissingFieldError("department")
	}

	now := time.Now()
	job := &model.Job{
		ID:         uuid.New().String(),
		Title:      title,
		Department: department,
		Location:   location,
		PostedDate: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("求人の作成に失敗しました: %w", err)
	}

	slog.Info("job created",
		slog.String("job_id", job.ID),
		slog.String("title", job.Title),
		slog.String("department", job.Department),
	)

	return job, nil
}

// clean はサニタイザーを通した上で前後の空白を除去する。
func (s *Service) clean(raw string) string {
	if s.sanitizer != nil {
		return s.sanitizer.SanitizeText(raw)
	}
	return strings.TrimSpace(raw)
}
