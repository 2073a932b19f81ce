package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/launchpage/internal/model"
)

// PostgresConfigRepo はPostgreSQLを使用したサイト設定リポジトリ。
type PostgresConfigRepo struct {
	db *sql.DB
}

// NewPostgresConfigRepo はPostgresConfigRepoを生成する。
func NewPostgresConfigRepo(db *sql.DB) *PostgresConfigRepo {
	return &PostgresConfigRepo{db: db}
}

// Get は指定キーの設定値を取得する。見つからない場合はnilを返す。
func (r *PostgresConfigRepo) Get(ctx context.Context, key string) (*model.ConfigEntry, error) {
	entry := &model.ConfigEntry{}
	err := r.db.QueryRowContext(ctx,
		`SELECT key, value, updated_at FROM site_config WHERE key = $1`,
		key,
	).Scan(&entry.Key, &entry.Value, &entry.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("サイト設定の取得に失敗しました: %w", err)
	}

	return entry, nil
}

// Set は設定値をUPSERTする。既存キーは値とupdated_atを置き換え、重複は作らない。
func (r *PostgresConfigRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO site_config (key, value, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("サイト設定の保存に失敗しました: %w", err)
	}
	return nil
}

// compile-time interface check
var _ ConfigRepository = (*PostgresConfigRepo)(nil)
