// Package model はドメインモデルを定義する。
package model

import "time"

// ApplicationStatus は応募の選考ステータスを表す。
type ApplicationStatus string

const (
	// StatusApplied は応募直後の初期ステータス。
	StatusApplied ApplicationStatus = "Applied"
	// StatusUnderReview は書類選考中のステータス。
	StatusUnderReview ApplicationStatus = "Under Review"
	// StatusInterview は面接中のステータス。
	StatusInterview ApplicationStatus = "Interview"
	// StatusRejected は不採用のステータス。再更新可能で終端ではない。
	StatusRejected ApplicationStatus = "Rejected"
	// StatusHired は採用のステータス。再更新可能で終端ではない。
	StatusHired ApplicationStatus = "Hired"
)

// IsValid はApplicationStatusが5値の列挙に含まれるかどうかを返す。
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case StatusApplied, StatusUnderReview, StatusInterview, StatusRejected, StatusHired:
		return true
	}
	return false
}

// MaxInterviewRounds は面接ラウンド数の上限。
const MaxInterviewRounds = 4

// Application は求人への応募を表す。
// jobIDとuserIDは作成後に変更されない。statusとinterviewRoundsのみが
// ライフサイクル操作で更新される。
type Application struct {
	ID              string
	JobID           string
	UserID          string
	CandidateName   string
	CandidateEmail  string
	Resume          string
	Status          ApplicationStatus
	InterviewRounds int
	AppliedDate     time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Progress は面接進捗をパーセンテージで返す。
// interviewRoundsから毎回算出される派生値であり、永続化しない。
func (a *Application) Progress() float64 {
	return ProgressPercent(a.InterviewRounds)
}

// ProgressPercent はラウンド数を進捗パーセンテージ（0〜100）に変換する。
func ProgressPercent(rounds int) float64 {
	return float64(rounds) / float64(MaxInterviewRounds) * 100
}

// ApplicationWithJob は応募と参照先求人の表示用情報を結合したモデル。
// jobsテーブルとJOINして取得される。
type ApplicationWithJob struct {
	Application
	JobTitle      string
	JobDepartment string
}
