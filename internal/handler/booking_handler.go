package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/hitoshi/homecare/internal/booking"
	"github.com/hitoshi/homecare/internal/model"
)

// BookingServiceInterface は予約ハンドラーが必要とするサービスインターフェース。
type BookingServiceInterface interface {
	// Create は予約を作成する。
	Create(ctx context.Context, in booking.CreateInput) (*model.Booking, error)
	// Update は予約を部分更新する。状態遷移の検証を含む。
	Update(ctx context.Context, id int64, update model.BookingUpdate) (*model.Booking, error)
	// ListForRequester は役割とユーザーIDに応じた範囲の予約一覧を返す。
	ListForRequester(ctx context.Context, role model.Role, userID *int64) ([]*model.Booking, error)
}

// BookingHandler は予約管理のHTTPハンドラー。
type BookingHandler struct {
	service BookingServiceInterface
}

// NewBookingHandler はBookingHandlerを生成する。
func NewBookingHandler(service BookingServiceInterface) *BookingHandler {
	return &BookingHandler{
		service: service,
	}
}

// createBookingRequest は予約作成リクエストのボディ。
// 参照IDは数値と数値文字列の両方を受け入れる。
type createBookingRequest struct {
	CustomerID    flexInt64  `json:"customerId"`
	ProviderID    *flexInt64 `json:"providerId"`
	ServiceID     flexInt64  `json:"serviceId"`
	Status        string     `json:"status"`
	ScheduledDate time.Time  `json:"scheduledDate"`
	Address       string     `json:"address"`
	Notes         string     `json:"notes"`
	TotalPrice    *int64     `json:"totalPrice"`
	PaymentStatus string     `json:"paymentStatus"`
}

// updateBookingRequest は予約更新リクエストのボディ。
// 省略されたフィールドは更新しない。
type updateBookingRequest struct {
	CustomerID    *flexInt64 `json:"customerId"`
	ProviderID    *flexInt64 `json:"providerId"`
	ServiceID     *flexInt64 `json:"serviceId"`
	Status        *string    `json:"status"`
	ScheduledDate *time.Time `json:"scheduledDate"`
	Address       *string    `json:"address"`
	Notes         *string    `json:"notes"`
	TotalPrice    *int64     `json:"totalPrice"`
	PaymentStatus *string    `json:"paymentStatus"`
}

// ListBookings は予約一覧を取得する。
// roleとuserIdクエリパラメータで参照範囲を絞り込める。
// 顧客は自分の予約、提供者は担当予約、管理者は全予約を参照できる。
// GET /api/bookings?role=customer&userId=1
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	role := model.Role(r.URL.Query().Get("role"))
	if role != "" && !role.IsValid() {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("role", "roleはcustomer、provider、adminのいずれかを指定してください。"))
		return
	}

	var userID *int64
	if raw := r.URL.Query().Get("userId"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("userId", "userIdは数値で指定してください。"))
			return
		}
		userID = &v
	}

	bookings, err := h.service.ListForRequester(r.Context(), role, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toBookingResponses(bookings))
}

// CreateBooking は予約を作成する。
// POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyResponse(w)
		return
	}

	if req.TotalPrice == nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("totalPrice", "totalPriceは必須です。"))
		return
	}

	in := booking.CreateInput{
		CustomerID:    int64(req.CustomerID),
		ServiceID:     int64(req.ServiceID),
		Status:        model.BookingStatus(req.Status),
		ScheduledDate: req.ScheduledDate,
		Address:       req.Address,
		Notes:         req.Notes,
		TotalPrice:    *req.TotalPrice,
		PaymentStatus: model.PaymentStatus(req.PaymentStatus),
	}
	if req.ProviderID != nil {
		providerID := int64(*req.ProviderID)
		in.ProviderID = &providerID
	}

	b, err := h.service.Create(r.Context(), in)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toBookingResponse(b))
}

// UpdateBooking は予約を部分更新する。
// PATCH /api/bookings/:id
func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := idURLParam(w, r, "id")
	if !ok {
		return
	}

	var req updateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyResponse(w)
		return
	}

	update := model.BookingUpdate{
		ScheduledDate: req.ScheduledDate,
		Address:       req.Address,
		Notes:         req.Notes,
		TotalPrice:    req.TotalPrice,
	}
	if req.CustomerID != nil {
		v := int64(*req.CustomerID)
		update.CustomerID = &v
	}
	if req.ProviderID != nil {
		v := int64(*req.ProviderID)
		update.ProviderID = &v
	}
	if req.ServiceID != nil {
		v := int64(*req.ServiceID)
		update.ServiceID = &v
	}
	if req.Status != nil {
		status := model.BookingStatus(*req.Status)
		update.Status = &status
	}
	if req.PaymentStatus != nil {
		paymentStatus := model.PaymentStatus(*req.PaymentStatus)
		update.PaymentStatus = &paymentStatus
	}

	b, err := h.service.Update(r.Context(), id, update)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toBookingResponse(b))
}
