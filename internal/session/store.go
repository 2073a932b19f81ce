// Package session は管理者セッションのインメモリストアを提供する。
//
// セッションはプロセス内メモリにのみ保持され、再起動で失われる。
// 単一の管理者のみを想定しており、水平スケールの要件はない。
// 期限切れエントリはアクセス時に遅延削除されるため、バックグラウンド
// スイープは持たない。
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/launchpage/internal/model"
)

// Store は期限付きセッショントークンのインメモリストア。
// グローバル変数ではなく、依存として注入して使う。
// 複数goroutineからの同時アクセスに対して安全。
type Store struct {
	mu       sync.Mutex
	sessions map[string]*model.Session
	ttl      time.Duration

	// nowはテストで時刻を差し替えるためのフック。
	now func() time.Time
}

// NewStore は指定TTLのStoreを生成する。
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*model.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create は推測不能なトークンを生成してセッションを保存し、そのセッションを返す。
// トークンはUUIDv4（crypto/randベース）。
func (s *Store) Create(user model.AdminUser) *model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess := &model.Session{
		Token:     uuid.NewString(),
		User:      user,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	s.sessions[sess.Token] = sess
	return sess
}

// Validate はトークンを検証し、紐付く管理者を返す。
// ストアに存在しない場合はUnauthorizedエラー、期限切れの場合は
// SessionExpiredエラーを返し、副作用として期限切れエントリを削除する。
// 成功時はエントリを変更しない（スライディング有効期限は持たない）。
func (s *Store) Validate(token string) (model.AdminUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return model.AdminUser{}, model.NewUnauthorizedError()
	}

	if sess.Expired(s.now()) {
		delete(s.sessions, token)
		return model.AdminUser{}, model.NewSessionExpiredError()
	}

	return sess.User, nil
}

// Destroy はトークンを削除する。存在しないトークンでもエラーにしない（冪等）。
func (s *Store) Destroy(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// Len は現在保持しているセッション数を返す。テストおよびメトリクス用。
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
