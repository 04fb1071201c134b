package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/hireman/internal/model"
)

// UpdateStatus は応募の選考ステータスを更新し、更新後の応募を求人情報付きで返す。
// ステータスは5値の列挙（Applied、Under Review、Interview、Rejected、Hired）の
// いずれかであること。列挙に含まれればどのステータスからどのステータスへも
// 遷移できる。遷移順序の制約は設けない。RejectedやHiredからの再更新も、
// 同一値への再設定も許可する。誤操作の訂正を担当者ができるようにするため。
// バリデーションはストアへのアクセスより先に行う。
func (s *Service) UpdateStatus(ctx context.Context, applicationID string, status model.ApplicationStatus) (*model.ApplicationWithJob, error) {
	if !status.IsValid() {
		return nil, model.NewInvalidStatusError(string(status))
	}

	updated, err := s.appRepo.UpdateStatus(ctx, applicationID, status)
	if err != nil {
		return nil, fmt.Errorf("ステータスの更新に失敗しました: %w", err)
	}
	if updated == nil {
		return nil, model.NewApplicationNotFoundError(applicationID)
	}

	if s.collector != nil {
		s.collector.RecordStatusUpdate(string(status))
	}

	slog.Info("application status updated",
		slog.String("application_id", applicationID),
		slog.String("status", string(status)),
	)

	return updated, nil
}

// UpdateInterviewRounds は応募の面接ラウンド数を更新し、更新後の応募を
// 求人情報付きで返す。ラウンド数は0以上4以下の整数であること。
// 減少方向の更新も許可する。進捗パーセンテージは永続化せず、
// ラウンド数から毎回算出する。バリデーションはストアへのアクセスより先に行う。
func (s *Service) UpdateInterviewRounds(ctx context.Context, applicationID string, rounds int) (*model.ApplicationWithJob, error) {
	if rounds < 0 || rounds > model.MaxInterviewRounds {
		return nil, model.NewInvalidInterviewRoundsError(rounds)
	}

	updated, err := s.appRepo.UpdateInterviewRounds(ctx, applicationID, rounds)
	if err != nil {
		return nil, fmt.Errorf("面接ラウンド数の更新に失敗しました: %w", err)
	}
	if updated == nil {
		return nil, model.NewApplicationNotFoundError(applicationID)
	}

	if s.collector != nil {
		s.collector.RecordInterviewRoundsUpdate()
	}

	slog.Info("interview rounds updated",
		slog.String("application_id", applicationID),
		slog.Int("rounds", rounds),
	)

	return updated, nil
}
