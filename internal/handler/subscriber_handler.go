package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/launchpage/internal/model"
)

// SubscriberServiceInterface は購読ハンドラーが必要とするサービスインターフェース。
type SubscriberServiceInterface interface {
	// Subscribe はメールアドレスを購読登録する。
	Subscribe(ctx context.Context, email string) (*model.SubscribeResult, error)
	// CheckEmail はメールアドレスの登録有無と状態を返す。
	CheckEmail(ctx context.Context, email string) (*model.EmailCheckResult, error)
	// Unsubscribe は購読を解除する。
	Unsubscribe(ctx context.Context, email string) error
	// List は全購読者をsubscribed_at降順で返す。
	List(ctx context.Context) ([]*model.Subscriber, error)
	// Delete は指定IDの購読者を削除する。
	Delete(ctx context.Context, id int64) error
	// BulkDelete は指定されたID群を一括削除し、削除件数を返す。
	BulkDelete(ctx context.Context, ids []int64) (int64, error)
}

// SubscribeMetrics はsubscribe系メトリクスの記録に必要なインターフェース。
// metrics.Collectorの部分集合として定義する。
type SubscribeMetrics interface {
	RecordSubscribe(outcome string)
	RecordUnsubscribe()
}

// noopMetrics はメトリクス未設定時のフォールバック。
type noopMetrics struct{}

func (noopMetrics) RecordSubscribe(outcome string) {}
func (noopMetrics) RecordUnsubscribe()             {}

// SubscriberHandler は公開購読APIのHTTPハンドラー。
type SubscriberHandler struct {
	service SubscriberServiceInterface
	metrics SubscribeMetrics
}

// NewSubscriberHandler はSubscriberHandlerを生成する。
// metricsがnilの場合は記録しない。
func NewSubscriberHandler(service SubscriberServiceInterface, metrics SubscribeMetrics) *SubscriberHandler {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &SubscriberHandler{
		service: service,
		metrics: metrics,
	}
}

// emailRequest はメールアドレスのみを持つリクエストのボディ。
type emailRequest struct {
	Email string `json:"email"`
}

// subscribeResponse はsubscribe成功時のAPIレスポンス。
type subscribeResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	ID                int64  `json:"id"`
	AlreadySubscribed bool   `json:"alreadySubscribed,omitempty"`
	Reactivated       bool   `json:"reactivated,omitempty"`
}

// Subscribe はメールアドレスを購読登録する。
// POST /api/subscribe
func (h *SubscriberHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}

	result, err := h.service.Subscribe(r.Context(), req.Email)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordSubscribe(string(result.Outcome))

	resp := subscribeResponse{
		Success: true,
		ID:      result.ID,
	}
	switch result.Outcome {
	case model.OutcomeAlreadyActive:
		resp.AlreadySubscribed = true
		resp.Message = "すでに購読済みです。サイト公開時にお知らせします。"
	case model.OutcomeReactivated:
		resp.Reactivated = true
		resp.Message = "購読を再開しました。サイト公開時にお知らせします。"
	default:
		resp.Message = "ありがとうございます！サイト公開時にお知らせします。"
	}

	writeJSON(w, http.StatusOK, resp)
}

// checkEmailResponse はcheck-emailのAPIレスポンス。
type checkEmailResponse struct {
	Success bool   `json:"success"`
	Exists  bool   `json:"exists"`
	Status  string `json:"status,omitempty"`
	ID      int64  `json:"id,omitempty"`
}

// CheckEmail はメールアドレスの登録有無を返す。
// クライアントの事前確認用であり、Subscribeは結果に関わらず再検証する。
// POST /api/check-email
func (h *SubscriberHandler) CheckEmail(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}

	result, err := h.service.CheckEmail(r.Context(), req.Email)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, checkEmailResponse{
		Success: true,
		Exists:  result.Exists,
		Status:  string(result.Status),
		ID:      result.ID,
	})
}

// Unsubscribe は購読を解除する。
// POST /api/unsubscribe
func (h *SubscriberHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}

	if err := h.service.Unsubscribe(r.Context(), req.Email); err != nil {
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordUnsubscribe()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "購読を解除しました。",
	})
}
