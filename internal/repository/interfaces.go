// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/launchpage/internal/model"
)

// SubscriberRepository は購読者データの永続化インターフェース。
type SubscriberRepository interface {
	// FindByEmail はメールアドレスの完全一致で購読者を検索する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.Subscriber, error)

	// Create は購読者をstatus=activeで作成し、採番されたIDを返す。
	// emailの一意制約に違反した場合はErrDuplicateEmailを返す。
	Create(ctx context.Context, email string) (int64, error)

	// UpdateStatusByEmail は購読者のstatusを更新する。subscribed_atは変更しない。
	// 対象行が存在しない場合はfalseを返す。
	UpdateStatusByEmail(ctx context.Context, email string, status model.SubscriberStatus) (bool, error)

	// List は全購読者をsubscribed_at降順で返す。
	List(ctx context.Context) ([]*model.Subscriber, error)

	// DeleteByID は指定IDの購読者を削除する。対象行が存在しない場合はfalseを返す。
	DeleteByID(ctx context.Context, id int64) (bool, error)

	// DeleteByIDs は指定されたID群を単一の文で削除し、実際に削除した件数を返す。
	// 存在しないIDは黙って無視する。
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
}

// ConfigRepository はサイト設定の永続化インターフェース。
type ConfigRepository interface {
	// Get は指定キーの設定値を取得する。見つからない場合はnilを返す。
	Get(ctx context.Context, key string) (*model.ConfigEntry, error)

	// Set は設定値をUPSERTする。既存キーは値とupdated_atを置き換える。
	Set(ctx context.Context, key, value string) error
}
