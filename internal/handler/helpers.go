// Package handler はREST APIのHTTPハンドラーを提供する。
package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/homecare/internal/model"
)

// apiErrorResponse はエラーレスポンスのボディ。
// fieldは検証エラーの場合のみ設定される。
type apiErrorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// flexInt64 はJSONの数値と数値文字列の両方を受け入れるint64。
// フロントエンドがIDを文字列で送るケースに対応する。
type flexInt64 int64

// UnmarshalJSON は数値または数値文字列からint64を解析する。
func (f *flexInt64) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	s := string(data)
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		s = string(data[1 : len(data)-1])
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return errors.New("数値を解析できません")
	}
	*f = flexInt64(v)
	return nil
}

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// writeAPIErrorResponse はエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	writeJSON(w, statusCode, apiErrorResponse{
		Message: apiErr.Message,
		Field:   apiErr.Field,
	})
}

// writeInvalidBodyResponse はJSONボディの解析失敗に対する400レスポンスを書き込む。
func writeInvalidBodyResponse(w http.ResponseWriter) {
	writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
		Code:    model.ErrCodeValidation,
		Message: "リクエストボディの解析に失敗しました。",
	})
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeAPIErrorResponse(w, mapAPIErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	writeAPIErrorResponse(w, http.StatusInternalServerError, &model.APIError{
		Code:    "INTERNAL_ERROR",
		Message: "内部エラーが発生しました。",
	})
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeValidation, model.ErrCodeInvalidTransition:
		return http.StatusBadRequest
	case model.ErrCodeUserNotFound, model.ErrCodeBookingNotFound, model.ErrCodeServiceNotFound:
		return http.StatusNotFound
	case model.ErrCodeNotAuthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// idURLParam はURLパスパラメータからIDを解析する。
// 解析できない場合はfalseを返す（レスポンスは書き込み済み）。
func idURLParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError(name, "IDの形式が不正です。"))
		return 0, false
	}
	return id, true
}
