// Package subscriber は購読ライフサイクルのドメインロジックを提供する。
//
// 状態遷移: NonExistent → Active → Unsubscribed → Active → …
// 行の削除は管理者の明示的な削除操作のみで行われる。
package subscriber

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hitoshi/launchpage/internal/model"
	"github.com/hitoshi/launchpage/internal/repository"
)

// Service は購読ライフサイクルのサービス層。
// メールアドレスの一意性の最終的な保証はDBの一意制約に委ねる。
type Service struct {
	repo repository.SubscriberRepository
}

// NewService はServiceを生成する。
func NewService(repo repository.SubscriberRepository) *Service {
	return &Service{repo: repo}
}

// Subscribe はメールアドレスを購読登録する。
// 新規登録はCreated、active行への再登録はAlreadyActive（冪等な成功）、
// unsubscribed行の復帰はReactivatedを返す。復帰時もsubscribed_atは変更しない。
func (s *Service) Subscribe(ctx context.Context, email string) (*model.SubscribeResult, error) {
	if !ValidEmail(email) {
		return nil, model.NewInvalidEmailError()
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("購読者の事前検索に失敗しました: %w", err)
	}

	if existing == nil {
		id, err := s.repo.Create(ctx, email)
		if err == nil {
			return &model.SubscribeResult{Outcome: model.OutcomeCreated, ID: id}, nil
		}
		// 事前検索とINSERTの間に同一メールの同時subscribeが割り込んだ場合、
		// 負けた側は一意制約違反を受け取る。再検索して既存行として解決する。
		if !errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, fmt.Errorf("購読者の作成に失敗しました: %w", err)
		}
		existing, err = s.repo.FindByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("競合後の再検索に失敗しました: %w", err)
		}
		if existing == nil {
			return nil, fmt.Errorf("一意制約違反後に購読者が見つかりません: %s", email)
		}
	}

	return s.resolveExisting(ctx, existing)
}

// resolveExisting は既存行の状態に応じてsubscribe結果を決定する。
func (s *Service) resolveExisting(ctx context.Context, existing *model.Subscriber) (*model.SubscribeResult, error) {
	if existing.Status == model.StatusActive {
		return &model.SubscribeResult{Outcome: model.OutcomeAlreadyActive, ID: existing.ID}, nil
	}

	updated, err := s.repo.UpdateStatusByEmail(ctx, existing.Email, model.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("購読の復帰に失敗しました: %w", err)
	}
	if !updated {
		// 再検索と更新の間に管理者が行を削除した場合のみ到達する。
		return nil, model.NewEmailNotFoundError()
	}

	return &model.SubscribeResult{Outcome: model.OutcomeReactivated, ID: existing.ID}, nil
}

// CheckEmail はメールアドレスの登録有無と状態を返す。
// クライアントの事前確認用であり、Subscribeは結果に関わらず再検証する。
func (s *Service) CheckEmail(ctx context.Context, email string) (*model.EmailCheckResult, error) {
	if !ValidEmail(email) {
		return nil, model.NewInvalidEmailError()
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("購読者の検索に失敗しました: %w", err)
	}

	if existing == nil {
		return &model.EmailCheckResult{Exists: false}, nil
	}

	return &model.EmailCheckResult{
		Exists: true,
		Status: existing.Status,
		ID:     existing.ID,
	}, nil
}

// Unsubscribe は購読を解除する。対象行が存在しない場合はEmailNotFoundエラーを返す。
func (s *Service) Unsubscribe(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return model.NewEmailRequiredError()
	}

	updated, err := s.repo.UpdateStatusByEmail(ctx, email, model.StatusUnsubscribed)
	if err != nil {
		return fmt.Errorf("購読解除に失敗しました: %w", err)
	}
	if !updated {
		return model.NewEmailNotFoundError()
	}
	return nil
}

// List は全購読者をsubscribed_at降順で返す。管理画面用。
func (s *Service) List(ctx context.Context) ([]*model.Subscriber, error) {
	subs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("購読者一覧の取得に失敗しました: %w", err)
	}
	return subs, nil
}

// Delete は指定IDの購読者を削除する。存在しない場合はSubscriberNotFoundエラーを返す。
func (s *Service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("購読者の削除に失敗しました: %w", err)
	}
	if !deleted {
		return model.NewSubscriberNotFoundError(id)
	}
	return nil
}

// BulkDelete は指定されたID群を一括削除し、実際に削除した件数を返す。
// 存在しないIDは黙って無視する。空のID一覧はEmptyIDListエラーを返す。
func (s *Service) BulkDelete(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, model.NewEmptyIDListError()
	}

	count, err := s.repo.DeleteByIDs(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("購読者の一括削除に失敗しました: %w", err)
	}
	return count, nil
}

// ValidEmail はメールアドレスの構文チェックを行う。
// '@'を含み、ドメイン部が空でなく'.'を含むことを要求する。
// 厳密なRFC検証は行わない（確認メールを送らない登録フォームには過剰なため）。
func ValidEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return false
	}
	domain := email[at+1:]
	if domain == "" || !strings.Contains(domain, ".") {
		return false
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	return true
}
