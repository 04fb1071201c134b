package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/hireman/internal/model"
)

// PostgresJobRepo はPostgreSQLを使用した求人リポジトリ。
type PostgresJobRepo struct {
	db *sql.DB
}

// NewPostgresJobRepo はPostgresJobRepoを生成する。
func NewPostgresJobRepo(db *sql.DB) *PostgresJobRepo {
	return &PostgresJobRepo{db: db}
}

// jobSortColumns はListWithCountsで許可されるソートフィールドとSQL上の列の対応。
// ここに無いフィールドが指定された場合はエラーにせずデフォルトソートに落とす。
var jobSortColumns = map[string]string{
	"title":             "j.title",
	"department":        "j.department",
	"location":          "j.location",
	"postedDate":        "j.posted_date",
	"totalApplications": "total_applications",
}

// defaultJobOrder はソート未指定・サポート外時の既定順序（新しい求人が先頭）。
const defaultJobOrder = "j.posted_date DESC"

// FindByID は指定IDの求人を取得する。見つからない場合はnilを返す。
func (r *PostgresJobRepo) FindByID(ctx context.Context, id string) (*model.Job, error) {
	job := &model.Job{}
	var location sql.NullString

	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, department, location, posted_date, created_at, updated_at
		 FROM jobs WHERE id = $1`,
		id,
	).Scan(&job.ID, &job.Title, &job.Department, &location, &job.PostedDate, &job.CreatedAt, &job.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("求人の取得に失敗しました: %w", err)
	}

	job.Location = nullStringValue(location)
	return job, nil
}

// Create は求人を作成する。
func (r *PostgresJobRepo) Create(ctx context.Context, job *model.Job) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO jobs (id, title, department, location, posted_date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		job.ID, job.Title, job.Department, nullString(job.Location),
		job.PostedDate, job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("求人の作成に失敗しました: %w", err)
	}
	return nil
}

// ListWithCounts は検索・ソート条件に合致する全求人を応募件数付きで返す。
// 応募件数はLEFT JOINでクエリ時に毎回集計し、キャッシュしない。
// ページネーションは行わない（応募一覧との意図的な非対称）。
func (r *PostgresJobRepo) ListWithCounts(ctx context.Context, search, sortBy string, order model.SortOrder) ([]model.JobWithCount, error) {
	query := `
		SELECT j.id, j.title, j.department, j.location, j.posted_date,
		       j.created_at, j.updated_at,
		       COUNT(a.id) AS total_applications
		FROM jobs j
		LEFT JOIN applications a ON a.job_id = j.id`

	var args []interface{}
	if search != "" {
		query += `
		WHERE j.title ILIKE $1 OR j.department ILIKE $1 OR COALESCE(j.location, '') ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	query += `
		GROUP BY j.id`

	// ソートフィールドはホワイトリストで検証し、サポート外は黙ってデフォルトに落とす
	if col, ok := jobSortColumns[sortBy]; ok {
		dir := "ASC"
		if order == model.SortDesc {
			dir = "DESC"
		}
		query += fmt.Sprintf(" ORDER BY %s %s", col, dir)
	} else {
		query += " ORDER BY " + defaultJobOrder
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("求人一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	jobs := []model.JobWithCount{}
	for rows.Next() {
		var jwc model.JobWithCount
		var location sql.NullString

		if err := rows.Scan(
			&jwc.ID, &jwc.Title, &jwc.Department, &location, &jwc.PostedDate,
			&jwc.CreatedAt, &jwc.UpdatedAt, &jwc.TotalApplications,
		); err != nil {
			return nil, fmt.Errorf("求人行の読み取りに失敗しました: %w", err)
		}

		jwc.Location = nullStringValue(location)
		jobs = append(jobs, jwc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("求人一覧の走査に失敗しました: %w", err)
	}

	return jobs, nil
}

// compile-time interface check
var _ JobRepository = (*PostgresJobRepo)(nil)
