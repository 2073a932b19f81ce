package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/launchpage/internal/model"
)

// AdminHandler は購読者管理（一覧・削除）のHTTPハンドラー。
// ルーティング側でセッションミドルウェアを通すことを前提とする。
type AdminHandler struct {
	service SubscriberServiceInterface
}

// NewAdminHandler はAdminHandlerを生成する。
func NewAdminHandler(service SubscriberServiceInterface) *AdminHandler {
	return &AdminHandler{
		service: service,
	}
}

// subscriberResponse は購読者情報のAPIレスポンス。
type subscriberResponse struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribed_at"`
	Status       string    `json:"status"`
}

// ListSubscriptions は全購読者を登録日時の新しい順で返す。
// GET /api/subscriptions
func (h *AdminHandler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	items := make([]subscriberResponse, len(subs))
	for i, sub := range subs {
		items[i] = subscriberResponse{
			ID:           sub.ID,
			Email:        sub.Email,
			SubscribedAt: sub.SubscribedAt,
			Status:       string(sub.Status),
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"subscriptions": items,
		"count":         len(items),
	})
}

// DeleteSubscription は指定IDの購読者を削除する。
// DELETE /api/subscriptions/{id}
func (h *AdminHandler) DeleteSubscription(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "購読者を削除しました。",
	})
}

// bulkDeleteRequest は一括削除リクエストのボディ。
type bulkDeleteRequest struct {
	IDs []int64 `json:"ids"`
}

// BulkDelete は指定されたID群の購読者を一括削除する。
// 存在しないIDは黙って無視し、実際に削除した件数を返す。
// POST /api/subscriptions/bulk-delete
func (h *AdminHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req bulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}

	count, err := h.service.BulkDelete(r.Context(), req.IDs)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"message":      fmt.Sprintf("%d件の購読者を削除しました。", count),
		"deletedCount": count,
	})
}
