// Package booking は予約ライフサイクルのドメインロジックを提供する。
//
// 予約状態の遷移は設定で2つのモードを選択できる。
// strict（デフォルト）は model.CanTransitionTo の遷移表に基づき検証し、
// permissive は任意の状態変更を受け入れる（元実装と同等の挙動）。
package booking

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/homecare/internal/model"
	"github.com/hitoshi/homecare/internal/storage"
)

// TransitionMode は予約状態遷移の検証モードを表す。
type TransitionMode string

const (
	// TransitionModeStrict は遷移表に基づき状態遷移を検証する。
	TransitionModeStrict TransitionMode = "strict"
	// TransitionModePermissive は任意の状態遷移を受け入れる。
	TransitionModePermissive TransitionMode = "permissive"
)

// ParseTransitionMode は設定値からTransitionModeを解析する。
// 未知の値はstrictとして扱う。
func ParseTransitionMode(v string) TransitionMode {
	if v == string(TransitionModePermissive) {
		return TransitionModePermissive
	}
	return TransitionModeStrict
}

// Sanitizer は自由記述テキストのサニタイズインターフェース。
type Sanitizer interface {
	Sanitize(raw string) string
}

// MetricsRecorder は予約関連メトリクスの記録インターフェース。
type MetricsRecorder interface {
	RecordBookingCreated()
	RecordStatusTransition(from, to model.BookingStatus)
}

// Service は予約管理のサービス層。
// 作成時のデフォルト設定、状態遷移の検証、役割に応じた参照範囲の制御を提供する。
type Service struct {
	store     storage.Store
	sanitizer Sanitizer
	mode      TransitionMode
	metrics   MetricsRecorder
}

// NewService はServiceの新しいインスタンスを生成する。
// metricsはnilを許容する（テスト用）。
func NewService(store storage.Store, sanitizer Sanitizer, mode TransitionMode, metrics MetricsRecorder) *Service {
	return &Service{
		store:     store,
		sanitizer: sanitizer,
		mode:      mode,
		metrics:   metrics,
	}
}

// CreateInput は予約作成の入力。
type CreateInput struct {
	CustomerID    int64
	ProviderID    *int64
	ServiceID     int64
	Status        model.BookingStatus
	ScheduledDate time.Time
	Address       string
	Notes         string
	TotalPrice    int64
	PaymentStatus model.PaymentStatus
}

// Create は予約を作成する。
// Status/PaymentStatus 未指定時はストアが pending/unpaid を設定する。
// 参照先エンティティの存在は検証しない。
func (s *Service) Create(ctx context.Context, in CreateInput) (*model.Booking, error) {
	if in.CustomerID <= 0 {
		return nil, model.NewValidationError("customerId", "customerId は正の整数で指定してください。")
	}
	if in.ServiceID <= 0 {
		return nil, model.NewValidationError("serviceId", "serviceId は正の整数で指定してください。")
	}
	if in.ScheduledDate.IsZero() {
		return nil, model.NewValidationError("scheduledDate", "scheduledDate は必須です。")
	}
	if in.Address == "" {
		return nil, model.NewValidationError("address", "address は必須です。")
	}
	if in.TotalPrice < 0 {
		return nil, model.NewValidationError("totalPrice", "totalPrice は0以上で指定してください。")
	}
	if in.Status != "" && !in.Status.IsValid() {
		return nil, model.NewValidationError("status", fmt.Sprintf("無効な予約状態です: %s", in.Status))
	}
	if in.PaymentStatus != "" && !in.PaymentStatus.IsValid() {
		return nil, model.NewValidationError("paymentStatus", fmt.Sprintf("無効な決済状態です: %s", in.PaymentStatus))
	}

	booking := &model.Booking{
		CustomerID:    in.CustomerID,
		ProviderID:    in.ProviderID,
		ServiceID:     in.ServiceID,
		Status:        in.Status,
		ScheduledDate: in.ScheduledDate,
		Address:       in.Address,
		Notes:         s.sanitizer.Sanitize(in.Notes),
		TotalPrice:    in.TotalPrice,
		PaymentStatus: in.PaymentStatus,
	}

	if err := s.store.CreateBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("予約の作成に失敗しました: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordBookingCreated()
	}
	slog.Info("booking created",
		slog.Int64("booking_id", booking.ID),
		slog.Int64("customer_id", booking.CustomerID),
		slog.String("status", string(booking.Status)),
	)

	return booking, nil
}

// Update は予約の部分更新を適用する。
// 状態変更を含む場合、strictモードでは遷移表で検証し、
// 許可されない遷移は VALIDATION 系エラーとして拒否する。
func (s *Service) Update(ctx context.Context, id int64, update model.BookingUpdate) (*model.Booking, error) {
	if update.Status != nil && !update.Status.IsValid() {
		return nil, model.NewValidationError("status", fmt.Sprintf("無効な予約状態です: %s", *update.Status))
	}
	if update.PaymentStatus != nil && !update.PaymentStatus.IsValid() {
		return nil, model.NewValidationError("paymentStatus", fmt.Sprintf("無効な決済状態です: %s", *update.PaymentStatus))
	}
	if update.TotalPrice != nil && *update.TotalPrice < 0 {
		return nil, model.NewValidationError("totalPrice", "totalPrice は0以上で指定してください。")
	}
	if update.Notes != nil {
		sanitized := s.sanitizer.Sanitize(*update.Notes)
		update.Notes = &sanitized
	}

	var fromStatus model.BookingStatus
	if update.Status != nil {
		current, err := s.store.FindBookingByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("予約の取得に失敗しました: %w", err)
		}
		if current == nil {
			return nil, model.NewBookingNotFoundError(id)
		}
		fromStatus = current.Status

		if s.mode == TransitionModeStrict && !current.Status.CanTransitionTo(*update.Status) {
			return nil, model.NewInvalidTransitionError(current.Status, *update.Status)
		}
	}

	booking, err := s.store.UpdateBooking(ctx, id, update)
	if err != nil {
		return nil, err
	}

	if update.Status != nil && fromStatus != booking.Status {
		if s.metrics != nil {
			s.metrics.RecordStatusTransition(fromStatus, booking.Status)
		}
		slog.Info("booking status changed",
			slog.Int64("booking_id", booking.ID),
			slog.String("from", string(fromStatus)),
			slog.String("to", string(booking.Status)),
		)
	}

	return booking, nil
}

// ListForRequester は申告された役割と利用者IDに応じた予約一覧を返す。
// 役割と利用者IDの両方が指定された場合のみフィルタし、それ以外は全件を返す。
// 役割は呼び出し元の申告を信頼する（サーバー側の認可検証は範囲外）。
func (s *Service) ListForRequester(ctx context.Context, role model.Role, userID *int64) ([]*model.Booking, error) {
	if role != "" && userID != nil {
		return s.store.ListUserBookings(ctx, *userID, role)
	}
	return s.store.ListBookings(ctx)
}
