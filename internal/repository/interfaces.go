// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/hireman/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーを作成する。
	Create(ctx context.Context, user *model.User) error
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error

	// FindPrincipalBySession はセッションIDから認証主体（ユーザーIDとロール）を取得する。
	// セッションが存在しない、または期限切れの場合はnilを返す。
	FindPrincipalBySession(ctx context.Context, sessionID string) (*model.Principal, error)

	// DeleteByID は指定IDのセッションを削除する。
	DeleteByID(ctx context.Context, id string) error

	// DeleteExpired は期限切れの全セッションを削除し、削除件数を返す。
	DeleteExpired(ctx context.Context) (int64, error)
}

// JobRepository は求人データの永続化インターフェース。
type JobRepository interface {
	// FindByID は指定IDの求人を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Job, error)

	// Create は求人を作成する。
	Create(ctx context.Context, job *model.Job) error

	// ListWithCounts は検索・ソート条件に合致する全求人を応募件数付きで返す。
	// searchが空でない場合、title・department・locationに対する大文字小文字を
	// 区別しない部分一致で絞り込む。応募件数はクエリ時にLEFT JOINで毎回集計する。
	// sortByがサポート外のフィールドの場合はエラーにせずposted_date降順に落とす。
	// ページネーションは行わない（全件返却）。
	ListWithCounts(ctx context.Context, search, sortBy string, order model.SortOrder) ([]model.JobWithCount, error)
}

// ApplicationRepository は応募データの永続化インターフェース。
// 一覧はすべて参照先求人のtitle・departmentをJOINで付与して返す。
type ApplicationRepository interface {
	// FindByID は指定IDの応募を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Application, error)

	// Create は応募を作成する。
	Create(ctx context.Context, app *model.Application) error

	// ListByJob は指定求人への応募をapplied_date降順・id昇順で返す。
	// limit/offsetによるページネーションを行う。
	ListByJob(ctx context.Context, jobID string, limit, offset int) ([]model.ApplicationWithJob, error)

	// CountByJob は指定求人への応募総数を返す。ページネーションとは独立した全件数。
	CountByJob(ctx context.Context, jobID string) (int, error)

	// ListByUser は指定ユーザーの応募をapplied_date降順・id昇順で返す。
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.ApplicationWithJob, error)

	// CountByUser は指定ユーザーの応募総数を返す。
	CountByUser(ctx context.Context, userID string) (int, error)

	// UpdateStatus は応募のステータスのみを上書きし、更新後の応募を求人情報付きで返す。
	// 対象が存在しない場合はnilを返す。ステータス値の妥当性検証は呼び出し側の責務。
	UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) (*model.ApplicationWithJob, error)

	// UpdateInterviewRounds は応募の面接ラウンド数のみを上書きし、更新後の応募を
	// 求人情報付きで返す。対象が存在しない場合はnilを返す。
	UpdateInterviewRounds(ctx context.Context, id string, rounds int) (*model.ApplicationWithJob, error)
}
