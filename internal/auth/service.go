// Package auth は管理者ログインとセッション管理を提供する。
package auth

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/hitoshi/launchpage/internal/model"
	"github.com/hitoshi/launchpage/internal/session"
)

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	AdminUsername     string
	AdminPasswordHash string // bcryptハッシュ
}

// Service は管理者認証に関するビジネスロジックを提供する。
// 管理者は設定で定義された単一の固定アイデンティティのみ。
type Service struct {
	sessions *session.Store
	config   ServiceConfig
}

// NewService はServiceを生成する。
func NewService(sessions *session.Store, config ServiceConfig) *Service {
	return &Service{
		sessions: sessions,
		config:   config,
	}
}

// Login は資格情報を検証し、成功時に新しいセッションを発行する。
// 失敗時はInvalidCredentialsエラーを返す。ユーザー名とパスワードの
// どちらが誤っているかはログにもレスポンスにも残さない。
func (s *Service) Login(username, password string) (*model.Session, error) {
	if username != s.config.AdminUsername {
		return nil, model.NewInvalidCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.config.AdminPasswordHash), []byte(password)); err != nil {
		return nil, model.NewInvalidCredentialsError()
	}

	sess := s.sessions.Create(model.AdminUser{Username: username})
	slog.Info("admin login", slog.String("username", username))
	return sess, nil
}

// Logout はセッションを破棄する。トークンが存在しなくてもエラーにしない。
func (s *Service) Logout(token string) {
	s.sessions.Destroy(token)
}

// CurrentUser はトークンを検証し、紐付く管理者を返す。
func (s *Service) CurrentUser(token string) (model.AdminUser, error) {
	return s.sessions.Validate(token)
}
