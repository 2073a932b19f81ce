// Package model はドメインモデルを定義する。
package model

import "time"

// Subscriber は公開ページから登録されたメールアドレスを表す。
type Subscriber struct {
	ID           int64
	Email        string
	SubscribedAt time.Time
	Status       SubscriberStatus
}

// SubscriberStatus は購読者のライフサイクル状態を表す。
// NonExistent → Active → Unsubscribed → Active → … と遷移し、
// 行の削除は管理者の明示的な削除操作のみで行われる。
type SubscriberStatus string

const (
	// StatusActive は通知を受け取る状態。
	StatusActive SubscriberStatus = "active"
	// StatusUnsubscribed は購読を解除した状態。再subscribeで復帰する。
	StatusUnsubscribed SubscriberStatus = "unsubscribed"
)

// SubscribeOutcome はsubscribe操作の結果種別を表す。
// いずれも成功であり、クライアントが表示するメッセージの出し分けに使う。
type SubscribeOutcome string

const (
	// OutcomeCreated は新規に購読者が作成されたことを示す。
	OutcomeCreated SubscribeOutcome = "created"
	// OutcomeAlreadyActive は既にactiveな購読者が再度subscribeしたことを示す。
	OutcomeAlreadyActive SubscribeOutcome = "already_active"
	// OutcomeReactivated はunsubscribed状態の購読者がactiveに復帰したことを示す。
	OutcomeReactivated SubscribeOutcome = "reactivated"
)

// SubscribeResult はsubscribe操作の結果を表す。
type SubscribeResult struct {
	Outcome SubscribeOutcome
	ID      int64
}

// EmailCheckResult はcheck-email操作の結果を表す。
// 登録前のクライアント側の事前確認用であり、セキュリティ境界ではない。
type EmailCheckResult struct {
	Exists bool
	Status SubscriberStatus
	ID     int64
}
