// Package security はアプリケーションのセキュリティ機能を提供する。
//
// FieldSanitizerService は応募者が入力するテキストフィールド
// （氏名・メールアドレス・履歴書URL）をサニタイズし、
// HR画面でのXSSからユーザーを保護する。
// bluemondayのStrictPolicyにより、すべてのHTMLタグが除去される。
package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// FieldSanitizerService は入力フィールドのサニタイズ機能のインターフェースを定義する。
// 応募の保存前に使用される。
type FieldSanitizerService interface {
	// SanitizeText はテキストフィールドからHTMLタグをすべて除去し、
	// 前後の空白をトリムして返す。同一入力に対して常に同一出力を返す（冪等）。
	SanitizeText(raw string) string
}

// fieldSanitizer はFieldSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type fieldSanitizer struct {
	policy *bluemonday.Policy
}

// NewFieldSanitizer はFieldSanitizerServiceの新しいインスタンスを生成する。
// テキストフィールドにHTMLは不要なため、タグを一切許可しないStrictPolicyを使用する。
func NewFieldSanitizer() *fieldSanitizer {
	return &fieldSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// SanitizeText はテキストフィールドからHTMLタグをすべて除去して返す。
func (s *fieldSanitizer) SanitizeText(raw string) string {
	return strings.TrimSpace(s.policy.Sanitize(raw))
}
