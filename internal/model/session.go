// Package model はドメインモデルを定義する。
package model

import "time"

// AdminUser は管理画面にログインする管理者を表す。
// 本システムでは設定で定義された単一の管理者のみが存在する。
type AdminUser struct {
	Username string
}

// Session は管理者のログインセッションを表す。
// プロセス内メモリにのみ保持され、再起動で失われる（永続化しない設計）。
type Session struct {
	Token     string
	User      AdminUser
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired は指定時刻においてセッションが期限切れかどうかを返す。
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
