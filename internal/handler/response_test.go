package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/launchpage/internal/model"
)

// エラーコードとHTTPステータスコードの対応を検証
func TestMapAPIErrorToHTTPStatus(t *testing.T) {
	tests := []struct {
		err  *model.APIError
		want int
	}{
		{model.NewInvalidEmailError(), http.StatusBadRequest},
		{model.NewEmailRequiredError(), http.StatusBadRequest},
		{model.NewEmptyIDListError(), http.StatusBadRequest},
		{model.NewInvalidDateError("x"), http.StatusBadRequest},
		{model.NewInvalidProjectNameError(), http.StatusBadRequest},
		{model.NewInvalidRequestError(), http.StatusBadRequest},
		{model.NewInvalidCredentialsError(), http.StatusUnauthorized},
		{model.NewUnauthorizedError(), http.StatusUnauthorized},
		{model.NewSessionExpiredError(), http.StatusUnauthorized},
		{model.NewEmailNotFoundError(), http.StatusNotFound},
		{model.NewSubscriberNotFoundError(1), http.StatusNotFound},
		{model.NewInternalError(), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Code, func(t *testing.T) {
			if got := mapAPIErrorToHTTPStatus(tt.err); got != tt.want {
				t.Errorf("mapAPIErrorToHTTPStatus(%s) = %d, want %d", tt.err.Code, got, tt.want)
			}
		})
	}
}

// fmt.Errorfでラップされた APIError も正しくマッピングされることを検証
func TestHandleServiceError_WrappedAPIError(t *testing.T) {
	rec := httptest.NewRecorder()
	handleServiceError(rec, fmt.Errorf("購読解除に失敗しました: %w", model.NewEmailNotFoundError()))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	body := decodeBody(t, rec)
	if body["code"] != model.ErrCodeEmailNotFound {
		t.Errorf("code = %v, want %q", body["code"], model.ErrCodeEmailNotFound)
	}
}

// APIError以外のエラーでは詳細を隠した500になることを検証
func TestHandleServiceError_OpaqueError(t *testing.T) {
	rec := httptest.NewRecorder()
	handleServiceError(rec, errors.New("pq: connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	body := decodeBody(t, rec)
	if body["code"] != model.ErrCodeInternal {
		t.Errorf("code = %v, want %q", body["code"], model.ErrCodeInternal)
	}
	// ストレージ障害の詳細がレスポンスに漏れない
	if msg, _ := body["message"].(string); msg == "pq: connection refused" {
		t.Error("internal error detail leaked to response body")
	}
}
