package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/hitoshi/hireman/internal/model"
)

// jobColumns はListWithCountsが返す列の並び。
var jobColumns = []string{
	"id", "title", "department", "location", "posted_date",
	"created_at", "updated_at", "total_applications",
}

// TestPostgresJobRepo_ListWithCounts_DefaultSort はソート未指定時に
// posted_date降順で取得されることを検証する。
func TestPostgresJobRepo_ListWithCounts_DefaultSort(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`ORDER BY j\.posted_date DESC`).
		WillReturnRows(sqlmock.NewRows(jobColumns).
			AddRow("job-1", "Product Manager", "Product", "On-site", now, now, now, 2).
			AddRow("job-2", "Backend Engineer", "Engineering", nil, now.Add(-time.Hour), now, now, 0))

	repo := NewPostgresJobRepo(db)
	jobs, err := repo.ListWithCounts(context.Background(), "", "", model.SortAsc)
	if err != nil {
		t.Fatalf("ListWithCounts returned error: %v", err)
	}

	if len(jobs) != 2 {
		t.Fatalf("len(jobs) = %d, want 2", len(jobs))
	}
	if jobs[0].TotalApplications != 2 {
		t.Errorf("jobs[0].TotalApplications = %d, want 2", jobs[0].TotalApplications)
	}
	if jobs[1].Location != "" {
		t.Errorf("jobs[1].Location = %q, want empty for NULL", jobs[1].Location)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// TestPostgresJobRepo_ListWithCounts_Search は検索文字列が部分一致パターンとして
// バインドされることを検証する。
func TestPostgresJobRepo_ListWithCounts_Search(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`ILIKE \$1`).
		WithArgs("%Product%").
		WillReturnRows(sqlmock.NewRows(jobColumns).
			AddRow("job-1", "Product Manager", "Product", "On-site", now, now, now, 2))

	repo := NewPostgresJobRepo(db)
	jobs, err := repo.ListWithCounts(context.Background(), "Product", "", model.SortAsc)
	if err != nil {
		t.Fatalf("ListWithCounts returned error: %v", err)
	}

	if len(jobs) != 1 {
		t.Fatalf("len(jobs) = %d, want 1", len(jobs))
	}
	if jobs[0].Title != "Product Manager" {
		t.Errorf("jobs[0].Title = %q, want %q", jobs[0].Title, "Product Manager")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// TestPostgresJobRepo_ListWithCounts_SortByCount はtotalApplicationsによる
// 昇順ソートが集計列エイリアスに対して行われることを検証する。
func TestPostgresJobRepo_ListWithCounts_SortByCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`ORDER BY total_applications ASC`).
		WillReturnRows(sqlmock.NewRows(jobColumns))

	repo := NewPostgresJobRepo(db)
	if _, err := repo.ListWithCounts(context.Background(), "", "totalApplications", model.SortAsc); err != nil {
		t.Fatalf("ListWithCounts returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// TestPostgresJobRepo_ListWithCounts_UnsupportedSortFallsBack はサポート外の
// ソートフィールドがエラーにならずデフォルトソートに落ちることを検証する。
func TestPostgresJobRepo_ListWithCounts_UnsupportedSortFallsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`ORDER BY j\.posted_date DESC`).
		WillReturnRows(sqlmock.NewRows(jobColumns))

	repo := NewPostgresJobRepo(db)
	if _, err := repo.ListWithCounts(context.Background(), "", "salary; DROP TABLE jobs", model.SortDesc); err != nil {
		t.Fatalf("ListWithCounts returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// TestPostgresJobRepo_FindByID_NotFound は未存在IDでnilが返ることを検証する。
func TestPostgresJobRepo_FindByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM jobs WHERE id`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewPostgresJobRepo(db)
	job, err := repo.FindByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if job != nil {
		t.Errorf("job = %+v, want nil", job)
	}
}

// TestPostgresJobRepo_ImplementsInterface はPostgresJobRepoがJobRepositoryを実装することを検証する。
func TestPostgresJobRepo_ImplementsInterface(t *testing.T) {
	var _ JobRepository = (*PostgresJobRepo)(nil)
}
