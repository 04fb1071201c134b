package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/hireman/internal/model"
)

// PostgresApplicationRepo はPostgreSQLを使用した応募リポジトリ。
type PostgresApplicationRepo struct {
	db *sql.DB
}

// NewPostgresApplicationRepo はPostgresApplicationRepoを生成する。
func NewPostgresApplicationRepo(db *sql.DB) *PostgresApplicationRepo {
	return &PostgresApplicationRepo{db: db}
}

// FindByID は指定IDの応募を取得する。見つからない場合はnilを返す。
func (r *PostgresApplicationRepo) FindByID(ctx context.Context, id string) (*model.Application, error) {
	app := &model.Application{}
	var resume sql.NullString

	err := r.db.QueryRowContext(ctx,
		`SELECT id, job_id, user_id, candidate_name, candidate_email, resume,
		        status, interview_rounds, applied_date, created_at, updated_at
		 FROM applications WHERE id = $1`,
		id,
	).Scan(
		&app.ID, &app.JobID, &app.UserID, &app.CandidateName, &app.CandidateEmail,
		&resume, &app.Status, &app.InterviewRounds, &app.AppliedDate,
		&app.CreatedAt, &app.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("応募の取得に失敗しました: %w", err)
	}

	app.Resume = nullStringValue(resume)
	return app, nil
}

// Create は応募を作成する。
func (r *PostgresApplicationRepo) Create(ctx context.Context, app *model.Application) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO applications (id, job_id, user_id, candidate_name, candidate_email,
		                           resume, status, interview_rounds, applied_date,
		                           created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		app.ID, app.JobID, app.UserID, app.CandidateName, app.CandidateEmail,
		nullString(app.Resume), app.Status, app.InterviewRounds, app.AppliedDate,
		app.CreatedAt, app.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("応募の作成に失敗しました: %w", err)
	}
	return nil
}

// applicationSelectWithJob は応募と求人情報をJOINで取得する共通SELECT句。
const applicationSelectWithJob = `
	SELECT a.id, a.job_id, a.user_id, a.candidate_name, a.candidate_email, a.resume,
	       a.status, a.interview_rounds, a.applied_date, a.created_at, a.updated_at,
	       j.title, j.department
	FROM applications a
	JOIN jobs j ON a.job_id = j.id`

// ListByJob は指定求人への応募をapplied_date降順・id昇順で返す。
// 同一時刻の応募でも呼び出しごとに順序が変わらないようidを第2ソートキーにする。
func (r *PostgresApplicationRepo) ListByJob(ctx context.Context, jobID string, limit, offset int) ([]model.ApplicationWithJob, error) {
	rows, err := r.db.QueryContext(ctx,
		applicationSelectWithJob+`
		WHERE a.job_id = $1
		ORDER BY a.applied_date DESC, a.id ASC
		LIMIT $2 OFFSET $3`,
		jobID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("求人別応募一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	return scanApplicationRows(rows)
}

// CountByJob は指定求人への応募総数を返す。
func (r *PostgresApplicationRepo) CountByJob(ctx context.Context, jobID string) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM applications WHERE job_id = $1`, jobID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("求人別応募件数の取得に失敗しました: %w", err)
	}
	return total, nil
}

// ListByUser は指定ユーザーの応募をapplied_date降順・id昇順で返す。
func (r *PostgresApplicationRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.ApplicationWithJob, error) {
	rows, err := r.db.QueryContext(ctx,
		applicationSelectWithJob+`
		WHERE a.user_id = $1
		ORDER BY a.applied_date DESC, a.id ASC
		LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("ユーザー別応募一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	return scanApplicationRows(rows)
}

// CountByUser は指定ユーザーの応募総数を返す。
func (r *PostgresApplicationRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM applications WHERE user_id = $1`, userID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("ユーザー別応募件数の取得に失敗しました: %w", err)
	}
	return total, nil
}

// UpdateStatus は応募のステータスのみを上書きし、更新後の応募を求人情報付きで返す。
// 単一行のUPDATEであり、全体が適用されるか全く適用されないかのいずれか。
// 対象が存在しない場合はnilを返す。
func (r *PostgresApplicationRepo) UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) (*model.ApplicationWithJob, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE applications a SET status = $2, updated_at = now()
		 FROM jobs j
		 WHERE a.id = $1 AND j.id = a.job_id
		 RETURNING a.id, a.job_id, a.user_id, a.candidate_name, a.candidate_email,
		           a.resume, a.status, a.interview_rounds, a.applied_date,
		           a.created_at, a.updated_at, j.title, j.department`,
		id, status,
	)

	awj, err := scanApplicationRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ステータスの更新に失敗しました: %w", err)
	}
	return awj, nil
}

// UpdateInterviewRounds は応募の面接ラウンド数のみを上書きし、更新後の応募を
// 求人情報付きで返す。対象が存在しない場合はnilを返す。
func (r *PostgresApplicationRepo) UpdateInterviewRounds(ctx context.Context, id string, rounds int) (*model.ApplicationWithJob, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE applications a SET interview_rounds = $2, updated_at = now()
		 FROM jobs j
		 WHERE a.id = $1 AND j.id = a.job_id
		 RETURNING a.id, a.job_id, a.user_id, a.candidate_name, a.candidate_email,
		           a.resume, a.status, a.interview_rounds, a.applied_date,
		           a.created_at, a.updated_at, j.title, j.department`,
		id, rounds,
	)

	awj, err := scanApplicationRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("面接ラウンド数の更新に失敗しました: %w", err)
	}
	return awj, nil
}

// rowScanner は*sql.Rowと*sql.Rowsの共通Scanインターフェース。
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanApplicationRow は1行分の応募＋求人情報を読み取る。
func scanApplicationRow(row rowScanner) (*model.ApplicationWithJob, error) {
	awj := &model.ApplicationWithJob{}
	var resume sql.NullString

	if err := row.Scan(
		&awj.ID, &awj.JobID, &awj.UserID, &awj.CandidateName, &awj.CandidateEmail,
		&resume, &awj.Status, &awj.InterviewRounds, &awj.AppliedDate,
		&awj.CreatedAt, &awj.UpdatedAt, &awj.JobTitle, &awj.JobDepartment,
	); err != nil {
		return nil, err
	}

	awj.Resume = nullStringValue(resume)
	return awj, nil
}

// scanApplicationRows は一覧クエリの全行を読み取る。
func scanApplicationRows(rows *sql.Rows) ([]model.ApplicationWithJob, error) {
	apps := []model.ApplicationWithJob{}
	for rows.Next() {
		awj, err := scanApplicationRow(rows)
		if err != nil {
			return nil, fmt.Errorf("応募行の読み取りに失敗しました: %w", err)
		}
		apps = append(apps, *awj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("応募一覧の走査に失敗しました: %w", err)
	}
	return apps, nil
}

// compile-time interface check
var _ ApplicationRepository = (*PostgresApplicationRepo)(nil)
