package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/launchpage/internal/model"
)

// ConfigServiceInterface は設定ハンドラーが必要とするサービスインターフェース。
type ConfigServiceInterface interface {
	// Get はサイト設定一式を返す。未設定キーはデフォルト値で初期化される。
	Get(ctx context.Context) (*model.SiteConfig, error)
	// UpdateTargetDate はカウントダウンの目標日時を更新し、正規化後の値を返す。
	UpdateTargetDate(ctx context.Context, value string) (string, error)
	// UpdateProjectName はプロジェクト名を更新し、サニタイズ後の値を返す。
	UpdateProjectName(ctx context.Context, value string) (string, error)
}

// ConfigHandler はサイト設定のHTTPハンドラー。
// 取得は公開、更新はセッションミドルウェアを通すことを前提とする。
type ConfigHandler struct {
	service ConfigServiceInterface
}

// NewConfigHandler はConfigHandlerを生成する。
func NewConfigHandler(service ConfigServiceInterface) *ConfigHandler {
	return &ConfigHandler{
		service: service,
	}
}

// GetConfig は公開ページ向けのサイト設定を返す。
// GET /api/config
func (h *ConfigHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.service.Get(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"projectName": cfg.ProjectName,
		"siteTitle":   cfg.ProjectName,
		"targetDate":  cfg.TargetDate,
	})
}

// updateTargetDateRequest は目標日時更新リクエストのボディ。
type updateTargetDateRequest struct {
	TargetDate string `json:"targetDate"`
}

// UpdateTargetDate はカウントダウンの目標日時を更新する。
// POST /api/config/update-target-date
func (h *ConfigHandler) UpdateTargetDate(w http.ResponseWriter, r *http.Request) {
	var req updateTargetDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}

	normalized, err := h.service.UpdateTargetDate(r.Context(), req.TargetDate)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"message":    "目標日時を更新しました。",
		"targetDate": normalized,
	})
}

// updateProjectNameRequest はプロジェクト名更新リクエストのボディ。
type updateProjectNameRequest struct {
	ProjectName string `json:"projectName"`
}

// UpdateProjectName は公開ページに表示するプロジェクト名を更新する。
// POST /api/config/update-project-name
func (h *ConfigHandler) UpdateProjectName(w http.ResponseWriter, r *http.Request) {
	var req updateProjectNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}

	cleaned, err := h.service.UpdateProjectName(r.Context(), req.ProjectName)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"message":     "プロジェクト名を更新しました。",
		"projectName": cleaned,
	})
}
