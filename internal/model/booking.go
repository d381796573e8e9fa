package model

import "time"

// BookingStatus は予約のライフサイクル上の状態を表す。
type BookingStatus string

const (
	// BookingStatusPending は作成直後の未確定状態。
	BookingStatusPending BookingStatus = "pending"
	// BookingStatusConfirmed は提供者が受諾した状態。
	BookingStatusConfirmed BookingStatus = "confirmed"
	// BookingStatusInProgress はサービス提供中の状態。
	BookingStatusInProgress BookingStatus = "in_progress"
	// BookingStatusCompleted はサービス提供が完了した状態。
	BookingStatusCompleted BookingStatus = "completed"
	// BookingStatusCancelled はキャンセルされた状態。終端状態。
	BookingStatusCancelled BookingStatus = "cancelled"
	// BookingStatusDisputed は顧客と提供者の間で争議中の状態。終端状態。
	BookingStatusDisputed BookingStatus = "disputed"
)

// IsValid は定義済みの予約状態かどうかを返す。
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusInProgress,
		BookingStatusCompleted, BookingStatusCancelled, BookingStatusDisputed:
		return true
	}
	return false
}

// bookingTransitions は予約状態の遷移表。
// disputed はサービス提供中または完了後にのみ到達できる。
// cancelled と disputed からの遷移は存在しない。
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:    {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed:  {BookingStatusInProgress, BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusInProgress: {BookingStatusCompleted, BookingStatusCancelled, BookingStatusDisputed},
	BookingStatusCompleted:  {BookingStatusDisputed},
	BookingStatusCancelled:  {},
	BookingStatusDisputed:   {},
}

// CanTransitionTo は遷移表に基づき next への状態遷移が許可されるかを返す。
// 同一状態への遷移（no-op）は常に許可される。
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PaymentStatus は決済の状態を表す。予約状態とは独立して管理される。
type PaymentStatus string

const (
	// PaymentStatusUnpaid は未決済状態。
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	// PaymentStatusPaid は決済済み状態。
	PaymentStatusPaid PaymentStatus = "paid"
	// PaymentStatusRefunded は返金済み状態。
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// IsValid は定義済みの決済状態かどうかを返す。
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPaid, PaymentStatusRefunded:
		return true
	}
	return false
}

// Booking は顧客・提供者・サービスを結ぶ予約を表す。
// ProviderID は提供者が割り当てられるまで nil。
// 他エンティティへの参照はIDのみで保持し、参照先の存在はストアでは検証しない。
// CreatedAt は作成時に一度だけ設定され、以後変更されない。
type Booking struct {
	ID            int64
	CustomerID    int64
	ProviderID    *int64
	ServiceID     int64
	Status        BookingStatus
	ScheduledDate time.Time
	Address       string
	Notes         string
	TotalPrice    int64
	PaymentStatus PaymentStatus
	CreatedAt     time.Time
}

// IsActive は進行中とみなされる状態（pending, confirmed, in_progress）かを返す。
// ダッシュボード統計のactiveBookings算出に使用する。
func (b *Booking) IsActive() bool {
	switch b.Status {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusInProgress:
		return true
	}
	return false
}

// BookingUpdate は予約の部分更新を表す。
// nilのフィールドは変更せず、既存の値を維持する。
type BookingUpdate struct {
	CustomerID    *int64
	ProviderID    *int64
	ServiceID     *int64
	Status        *BookingStatus
	ScheduledDate *time.Time
	Address       *string
	Notes         *string
	TotalPrice    *int64
	PaymentStatus *PaymentStatus
}
