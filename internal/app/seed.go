package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hitoshi/hireman/internal/config"
	"github.com/hitoshi/hireman/internal/database"
	"github.com/hitoshi/hireman/internal/model"
	"github.com/hitoshi/hireman/internal/repository"
)

// seedPassword は開発用シードアカウントの共通パスワード。
const seedPassword = "password123"

// runSeed は開発・動作確認用の初期データを投入する。
// 人事担当者と応募者のアカウント、求人1件、応募2件を作成する。
// 既にシード済み（同じメールアドレスのユーザーが存在）の場合は何もしない。
func runSeed(cfg *config.Config) error {
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx := context.Background()
	userRepo := repository.NewPostgresUserRepo(db)
	jobRepo := repository.NewPostgresJobRepo(db)
	appRepo := repository.NewPostgresApplicationRepo(db)

	// 冪等性: シード済みなら何もしない
	existing, err := userRepo.FindByEmail(ctx, "hr_v2@example.com")
	if err != nil {
		return fmt.Errorf("シード状態の確認に失敗しました: %w", err)
	}
	if existing != nil {
		slog.Info("seed data already exists, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("パスワードのハッシュ化に失敗しました: %w", err)
	}

	now := time.Now()

	// 1. ユーザー
	hrUser := &model.User{
		ID:           uuid.New().String(),
		Email:        "hr_v2@example.com",
		PasswordHash: string(hash),
		Role:         model.RoleHR,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	applicant := &model.User{
		ID:           uuid.New().String(),
		Email:        "user@example.com",
		PasswordHash: string(hash),
		Role:         model.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, u := range []*model.User{hrUser, applicant} {
		if err := userRepo.Create(ctx, u); err != nil {
			return fmt.Errorf("ユーザーの作成に失敗しました: %w", err)
		}
	}

	// 2. 求人
	pmJob := &model.Job{
		ID:         uuid.New().String(),
		Title:      "Product Manager",
		Department: "Product",
		Location:   "On-site",
		PostedDate: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := jobRepo.Create(ctx, pmJob); err != nil {
		return fmt.Errorf("求人の作成に失敗しました: %w", err)
	}

	// 3. 応募
	applications := []*model.Application{
		{
			ID:              uuid.New().String(),
			JobID:           pmJob.ID,
			UserID:          applicant.ID,
			CandidateName:   "Chris Lee",
			CandidateEmail:  "chris.lee@example.com",
			Status:          model.StatusApplied,
			InterviewRounds: 0,
			AppliedDate:     now,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		{
			ID:              uuid.New().String(),
			JobID:           pmJob.ID,
			UserID:          applicant.ID,
			CandidateName:   "Diana Chen",
			CandidateEmail:  "diana.chen@example.com",
			Status:          model.StatusUnderReview,
			InterviewRounds: 1,
			AppliedDate:     now,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
	}
	for _, a := range applications {
		if err := appRepo.Create(ctx, a); err != nil {
			return fmt.Errorf("応募の作成に失敗しました: %w", err)
		}
	}

	slog.Info("seed data created",
		slog.String("hr_email", hrUser.Email),
		slog.String("user_email", applicant.Email),
		slog.String("job_id", pmJob.ID),
		slog.Int("applications", len(applications)),
	)

	return nil
}
