package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// Field は入力検証エラーで最初に失敗したフィールド名を保持する（任意）。
type APIError struct {
	Code    string // エラーコード
	Message string // エラーメッセージ
	Field   string // 検証に失敗したフィールド名（検証エラーのみ）
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeValidation        = "VALIDATION_FAILED"
	ErrCodeInvalidTransition = "INVALID_TRANSITION"
	ErrCodeUserNotFound      = "USER_NOT_FOUND"
	ErrCodeBookingNotFound   = "BOOKING_NOT_FOUND"
	ErrCodeServiceNotFound   = "SERVICE_NOT_FOUND"
	ErrCodeNotAuthenticated  = "NOT_AUTHENTICATED"
)

// NewValidationError は入力検証エラーを生成する。
// field には最初に検証に失敗したフィールド名を指定する。
func NewValidationError(field, message string) *APIError {
	return &APIError{
		Code:    ErrCodeValidation,
		Message: message,
		Field:   field,
	}
}

// NewInvalidTransitionError は遷移表で許可されない状態遷移のエラーを生成する。
func NewInvalidTransitionError(from, to BookingStatus) *APIError {
	return &APIError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("予約状態を %s から %s へ変更することはできません。", from, to),
		Field:   "status",
	}
}

// NewUserNotFoundError はユーザー未検出エラーを生成する。
func NewUserNotFoundError(id int64) *APIError {
	return &APIError{
		Code:    ErrCodeUserNotFound,
		Message: fmt.Sprintf("指定されたユーザーが見つかりません: %d", id),
	}
}

// NewBookingNotFoundError は予約未検出エラーを生成する。
func NewBookingNotFoundError(id int64) *APIError {
	return &APIError{
		Code:    ErrCodeBookingNotFound,
		Message: fmt.Sprintf("指定された予約が見つかりません: %d", id),
	}
}

// NewServiceNotFoundError はサービス未検出エラーを生成する。
func NewServiceNotFoundError(id int64) *APIError {
	return &APIError{
		Code:    ErrCodeServiceNotFound,
		Message: fmt.Sprintf("指定されたサービスが見つかりません: %d", id),
	}
}

// NewNotAuthenticatedError は認証ユーザーが存在しない場合のエラーを生成する。
func NewNotAuthenticatedError() *APIError {
	return &APIError{
		Code:    ErrCodeNotAuthenticated,
		Message: "Not authenticated",
	}
}
