package application

import (
	"time"

	"github.com/hitoshi/hireman/internal/model"
)

// HRView は人事担当者向けの応募ビュー。候補者情報を含むすべての
// フィールドをそのまま返す。
type HRView struct {
	ID              string    `json:"id"`
	JobID           string    `json:"jobId"`
	JobTitle        string    `json:"jobTitle"`
	JobDepartment   string    `json:"jobDepartment"`
	CandidateName   string    `json:"candidateName"`
	CandidateEmail  string    `json:"candidateEmail"`
	Resume          string    `json:"resume,omitempty"`
	Status          string    `json:"status"`
	InterviewRounds int       `json:"interviewRounds"`
	Progress        float64   `json:"progress"`
	AppliedDate     time.Time `json:"appliedDate"`
}

// ApplicantView は応募者本人向けの応募ビュー。
type ApplicantView struct {
	ID              string    `json:"id"`
	JobID           string    `json:"jobId"`
	JobTitle        string    `json:"jobTitle"`
	JobDepartment   string    `json:"jobDepartment"`
	Status          string    `json:"status"`
	InterviewRounds int       `json:"interviewRounds"`
	Progress        float64   `json:"progress"`
	AppliedDate     time.Time `json:"appliedDate"`
}

// ProgressEntry は応募者向けレスポンスに添える面接進捗の要素。
// 応募一覧と同じ順序で並び、i番目の要素はi番目の応募に対応する。
type ProgressEntry struct {
	JobID    string  `json:"jobId"`
	Title    string  `json:"title"`
	Progress float64 `json:"progress"`
}

// AssembleHRViews は応募一覧を人事担当者向けビューに変換する。
// 進捗は面接ラウンド数からその場で算出する。
func AssembleHRViews(apps []model.ApplicationWithJob) []HRView {
	views := make([]HRView, 0, len(apps))
	for _, app := range apps {
		views = append(views, HRView{
			ID:              app.ID,
			JobID:           app.JobID,
			JobTitle:        app.JobTitle,
			JobDepartment:   app.JobDepartment,
			CandidateName:   app.CandidateName,
			CandidateEmail:  app.CandidateEmail,
			Resume:          app.Resume,
			Status:          string(app.Status),
			InterviewRounds: app.InterviewRounds,
			Progress:        app.Progress(),
			AppliedDate:     app.AppliedDate,
		})
	}
	return views
}

// AssembleApplicantViews は応募一覧を応募者向けビューと、それに位置で
// 対応する面接進捗の配列に変換する。2つのスライスは常に同じ長さになる。
func AssembleApplicantViews(apps []model.ApplicationWithJob) ([]ApplicantView, []ProgressEntry) {
	views := make([]ApplicantView, 0, len(apps))
	progress := make([]ProgressEntry, 0, len(apps))
	for _, app := range apps {
		pct := app.Progress()
		views = append(views, ApplicantView{
			ID:              app.ID,
			JobID:           app.JobID,
			JobTitle:        app.JobTitle,
			JobDepartment:   app.JobDepartment,
			Status:          string(app.Status),
			InterviewRounds: app.InterviewRounds,
			Progress:        pct,
			AppliedDate:     app.AppliedDate,
		})
		progress = append(progress, ProgressEntry{
			JobID:    app.JobID,
			Title:    app.JobTitle,
			Progress: pct,
		})
	}
	return views, progress
}

// AssembleHRView は単一の応募を人事担当者向けビューに変換する。
// ステータス・面接進捗の更新レスポンスで使用する。
func AssembleHRView(app *model.ApplicationWithJob) HRView {
	views := AssembleHRViews([]model.ApplicationWithJob{*app})
	return views[0]
}
