// Package model はドメインモデルを定義する。
package model

import "time"

// サイト設定のキー定義。
const (
	// ConfigKeyTargetDate はカウントダウンの目標日時（RFC3339）。
	ConfigKeyTargetDate = "target_date"
	// ConfigKeyProjectName は公開ページに表示するプロジェクト名。
	ConfigKeyProjectName = "project_name"
)

// サイト設定のデフォルト値。キーが未設定の場合、初回読み取り時に
// この値がストレージへ書き込まれ、以降の読み取りは安定する。
const (
	DefaultProjectName = "LOGO"
	DefaultTargetDate  = "2025-10-01T00:00:00Z"
)

// ConfigEntry はサイト設定のキーと値の組を表す。
// 書き込みはUPSERT（同一キーの値を置き換え、重複は作らない）。
type ConfigEntry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// SiteConfig は公開ページへ返す設定一式を表す。
type SiteConfig struct {
	ProjectName string
	TargetDate  string
}
