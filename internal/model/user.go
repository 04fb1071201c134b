// Package model はドメインモデルを定義する。
package model

import "time"

// Role はユーザーの役割を表す。
type Role string

const (
	// RoleHR は人事担当者。全求人の応募閲覧とステータス・面接進捗の更新が可能。
	RoleHR Role = "hr"
	// RoleUser は応募者。自分の応募のみ閲覧可能。
	RoleUser Role = "user"
)

// IsValid はRoleが定義済みの値かどうかを返す。
func (r Role) IsValid() bool {
	return r == RoleHR || r == RoleUser
}

// User はサービス利用ユーザー（人事担当者または応募者）を表す。
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session はユーザーのログインセッションを表す。
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Principal は認証済みリクエストの主体を表す。
// セッションミドルウェアがリクエストコンテキストに注入する。
type Principal struct {
	UserID string
	Role   Role
}
