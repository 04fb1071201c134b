// Package model はドメインモデルを定義する。
package model

import "time"

// Job は求人を表す。
// タイトルと部署は必須。postedDateは作成時に設定され、以後変更されない。
type Job struct {
	ID         string
	Title      string
	Department string
	Location   string
	PostedDate time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// JobWithCount は求人と応募件数の集計を結合したモデル。
// totalApplicationsはクエリ時に毎回算出され、キャッシュされない。
type JobWithCount struct {
	Job
	TotalApplications int
}

// SortOrder は一覧取得時のソート方向を表す。
type SortOrder string

const (
	// SortAsc は昇順ソート。
	SortAsc SortOrder = "asc"
	// SortDesc は降順ソート。
	SortDesc SortOrder = "desc"
)
