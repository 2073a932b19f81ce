// Package siteconfig は公開ページ向けサイト設定のドメインロジックを提供する。
//
// 管理者が再デプロイなしに表示パラメータ（カウントダウン目標日時、
// プロジェクト名）を変更できるようにする。
package siteconfig

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/hitoshi/launchpage/internal/model"
	"github.com/hitoshi/launchpage/internal/repository"
)

// プロジェクト名の最大文字数（トリム後）。
const maxProjectNameLen = 50

// Service はサイト設定のサービス層。
type Service struct {
	repo repository.ConfigRepository

	// 公開ページへそのまま表示される値のため、保存前にHTMLタグを除去する。
	sanitizer *bluemonday.Policy
}

// NewService はServiceを生成する。
func NewService(repo repository.ConfigRepository) *Service {
	return &Service{
		repo:      repo,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Get はサイト設定一式を返す。
// キーが未設定の場合はデフォルト値をストレージへ書き込んでから返すため、
// 初回以降の読み取りは安定する。
func (s *Service) Get(ctx context.Context) (*model.SiteConfig, error) {
	projectName, err := s.getOrBootstrap(ctx, model.ConfigKeyProjectName, model.DefaultProjectName)
	if err != nil {
		return nil, err
	}

	targetDate, err := s.getOrBootstrap(ctx, model.ConfigKeyTargetDate, model.DefaultTargetDate)
	if err != nil {
		return nil, err
	}

	return &model.SiteConfig{
		ProjectName: projectName,
		TargetDate:  targetDate,
	}, nil
}

// getOrBootstrap はキーの値を取得し、未設定の場合はデフォルト値を書き込んで返す。
func (s *Service) getOrBootstrap(ctx context.Context, key, defaultVal string) (string, error) {
	entry, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("設定の取得に失敗しました: %w", err)
	}
	if entry != nil {
		return entry.Value, nil
	}

	if err := s.repo.Set(ctx, key, defaultVal); err != nil {
		return "", fmt.Errorf("デフォルト設定の書き込みに失敗しました: %w", err)
	}
	return defaultVal, nil
}

// UpdateTargetDate はカウントダウンの目標日時を更新する。
// RFC3339、または日付のみ（"2006-01-02"）を受け付け、RFC3339に正規化して保存する。
func (s *Service) UpdateTargetDate(ctx context.Context, value string) (string, error) {
	value = strings.TrimSpace(value)

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		d, dErr := time.Parse("2006-01-02", value)
		if dErr != nil {
			return "", model.NewInvalidDateError(value)
		}
		t = d
	}

	normalized := t.UTC().Format(time.RFC3339)
	if err := s.repo.Set(ctx, model.ConfigKeyTargetDate, normalized); err != nil {
		return "", fmt.Errorf("目標日時の保存に失敗しました: %w", err)
	}
	return normalized, nil
}

// UpdateProjectName は公開ページに表示するプロジェクト名を更新する。
// HTMLタグを除去し、トリム後に1〜50文字であることを要求する。
func (s *Service) UpdateProjectName(ctx context.Context, value string) (string, error) {
	cleaned := strings.TrimSpace(s.sanitizer.Sanitize(value))

	n := utf8.RuneCountInString(cleaned)
	if n == 0 || n > maxProjectNameLen {
		return "", model.NewInvalidProjectNameError()
	}

	if err := s.repo.Set(ctx, model.ConfigKeyProjectName, cleaned); err != nil {
		return "", fmt.Errorf("プロジェクト名の保存に失敗しました: %w", err)
	}
	return cleaned, nil
}
