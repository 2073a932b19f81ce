package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/hitoshi/launchpage/internal/model"
)

// ErrDuplicateEmail はemailの一意制約違反を表す。
// 同一メールアドレスの同時subscribeで負けた側がこのエラーを受け取り、
// 呼び出し側は再検索で解決する（ユーザー向けの失敗にはしない）。
var ErrDuplicateEmail = errors.New("email already exists")

// uniqueViolation はPostgreSQLの一意制約違反のエラーコード。
const uniqueViolation = "23505"

// PostgresSubscriberRepo はPostgreSQLを使用した購読者リポジトリ。
type PostgresSubscriberRepo struct {
	db *sql.DB
}

// NewPostgresSubscriberRepo はPostgresSubscriberRepoを生成する。
func NewPostgresSubscriberRepo(db *sql.DB) *PostgresSubscriberRepo {
	return &PostgresSubscriberRepo{db: db}
}

// FindByEmail はメールアドレスの完全一致で購読者を検索する。見つからない場合はnilを返す。
func (r *PostgresSubscriberRepo) FindByEmail(ctx context.Context, email string) (*model.Subscriber, error) {
	sub := &model.Subscriber{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, subscribed_at, status
		 FROM subscribers WHERE email = $1`,
		email,
	).Scan(&sub.ID, &sub.Email, &sub.SubscribedAt, &sub.Status)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("購読者の検索に失敗しました: %w", err)
	}

	return sub, nil
}

// Create は購読者をstatus=activeで作成し、採番されたIDを返す。
func (r *PostgresSubscriberRepo) Create(ctx context.Context, email string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO subscribers (email) VALUES ($1) RETURNING id`,
		email,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("購読者の作成に失敗しました: %w", err)
	}
	return id, nil
}

// UpdateStatusByEmail は購読者のstatusを更新する。
// subscribed_atは初回登録時刻を保持するため変更しない。
func (r *PostgresSubscriberRepo) UpdateStatusByEmail(ctx context.Context, email string, status model.SubscriberStatus) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE subscribers SET status = $2 WHERE email = $1`,
		email, string(status),
	)
	if err != nil {
		return false, fmt.Errorf("購読者ステータスの更新に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("更新結果の取得に失敗しました: %w", err)
	}
	return rowsAffected > 0, nil
}

// List は全購読者をsubscribed_at降順で返す。
func (r *PostgresSubscriberRepo) List(ctx context.Context) ([]*model.Subscriber, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, email, subscribed_at, status
		 FROM subscribers ORDER BY subscribed_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("購読者一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var subs []*model.Subscriber
	for rows.Next() {
		sub := &model.Subscriber{}
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.SubscribedAt, &sub.Status); err != nil {
			return nil, fmt.Errorf("購読者行の読み取りに失敗しました: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("購読者一覧の走査に失敗しました: %w", err)
	}
	return subs, nil
}

// DeleteByID は指定IDの購読者を削除する。対象行が存在しない場合はfalseを返す。
func (r *PostgresSubscriberRepo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM subscribers WHERE id = $1`,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("購読者の削除に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("削除結果の取得に失敗しました: %w", err)
	}
	return rowsAffected > 0, nil
}

// DeleteByIDs は指定されたID群を単一の文で削除し、実際に削除した件数を返す。
func (r *PostgresSubscriberRepo) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM subscribers WHERE id = ANY($1)`,
		pq.Array(ids),
	)
	if err != nil {
		return 0, fmt.Errorf("購読者の一括削除に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("一括削除結果の取得に失敗しました: %w", err)
	}
	return rowsAffected, nil
}

// compile-time interface check
var _ SubscriberRepository = (*PostgresSubscriberRepo)(nil)
