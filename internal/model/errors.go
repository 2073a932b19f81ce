// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// クライアントへ返すエラーコードとメッセージ、原因カテゴリを含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // ユーザー向けメッセージ
	Category string // カテゴリ: auth, validation, subscriber, config, system
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeInvalidEmail       = "INVALID_EMAIL"
	ErrCodeEmailRequired      = "EMAIL_REQUIRED"
	ErrCodeEmailNotFound      = "EMAIL_NOT_FOUND"
	ErrCodeSubscriberNotFound = "SUBSCRIBER_NOT_FOUND"
	ErrCodeEmptyIDList        = "EMPTY_ID_LIST"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeSessionExpired     = "SESSION_EXPIRED"
	ErrCodeInvalidDate        = "INVALID_DATE"
	ErrCodeInvalidProjectName = "INVALID_PROJECT_NAME"
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// NewInvalidEmailError は不正なメールアドレスエラーを生成する。
func NewInvalidEmailError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidEmail,
		Message:  "正しいメールアドレスを入力してください。",
		Category: "validation",
	}
}

// NewEmailRequiredError はメールアドレス未指定エラーを生成する。
func NewEmailRequiredError() *APIError {
	return &APIError{
		Code:     ErrCodeEmailRequired,
		Message:  "メールアドレスは必須です。",
		Category: "validation",
	}
}

// NewEmailNotFoundError は購読一覧に存在しないメールアドレスへの操作エラーを生成する。
func NewEmailNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeEmailNotFound,
		Message:  "このメールアドレスは購読一覧に見つかりません。",
		Category: "subscriber",
	}
}

// NewSubscriberNotFoundError は指定IDの購読者が存在しない場合のエラーを生成する。
func NewSubscriberNotFoundError(id int64) *APIError {
	return &APIError{
		Code:     ErrCodeSubscriberNotFound,
		Message:  fmt.Sprintf("指定された購読者が見つかりません: %d", id),
		Category: "subscriber",
	}
}

// NewEmptyIDListError はbulk-deleteのID一覧が空の場合のエラーを生成する。
func NewEmptyIDListError() *APIError {
	return &APIError{
		Code:     ErrCodeEmptyIDList,
		Message:  "削除対象のID一覧を指定してください。",
		Category: "validation",
	}
}

// NewInvalidCredentialsError はログイン失敗エラーを生成する。
// ユーザー名とパスワードのどちらが誤っているかは区別しない。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "ユーザー名またはパスワードが正しくありません。",
		Category: "auth",
	}
}

// NewUnauthorizedError は未認証エラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "認証が必要です。",
		Category: "auth",
	}
}

// NewSessionExpiredError はセッション期限切れエラーを生成する。
// クライアントへは未認証（401）として扱われる。
func NewSessionExpiredError() *APIError {
	return &APIError{
		Code:     ErrCodeSessionExpired,
		Message:  "セッションの有効期限が切れました。再度ログインしてください。",
		Category: "auth",
	}
}

// NewInvalidDateError は目標日時のパース失敗エラーを生成する。
func NewInvalidDateError(value string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidDate,
		Message:  fmt.Sprintf("日時として解釈できません: %s", value),
		Category: "validation",
	}
}

// NewInvalidProjectNameError はプロジェクト名のバリデーション失敗エラーを生成する。
func NewInvalidProjectNameError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidProjectName,
		Message:  "プロジェクト名は1〜50文字で入力してください。",
		Category: "validation",
	}
}

// NewInvalidRequestError はリクエストボディの解析失敗エラーを生成する。
func NewInvalidRequestError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  "リクエストボディの解析に失敗しました。",
		Category: "validation",
	}
}

// NewInternalError は内部エラーを生成する。
// ストレージ障害の詳細はログのみに記録し、ユーザーには一般的なメッセージを返す。
func NewInternalError() *APIError {
	return &APIError{
		Code:     ErrCodeInternal,
		Message:  "サーバーエラーが発生しました。しばらく待ってから再度お試しください。",
		Category: "system",
	}
}
