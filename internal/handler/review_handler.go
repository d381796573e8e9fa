package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/hitoshi/homecare/internal/model"
	"github.com/hitoshi/homecare/internal/review"
)

// ReviewServiceInterface はレビューハンドラーが必要とするサービスインターフェース。
type ReviewServiceInterface interface {
	// Create はレビューを作成する。
	Create(ctx context.Context, in review.CreateInput) (*model.Review, error)
	// ListByProvider は提供者のレビュー一覧を返す。providerIDがnilの場合は空を返す。
	ListByProvider(ctx context.Context, providerID *int64) ([]*model.Review, error)
}

// ReviewHandler はレビュー管理のHTTPハンドラー。
type ReviewHandler struct {
	service ReviewServiceInterface
}

// NewReviewHandler はReviewHandlerを生成する。
func NewReviewHandler(service ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		service: service,
	}
}

// createReviewRequest はレビュー作成リクエストのボディ。
type createReviewRequest struct {
	BookingID  flexInt64 `json:"bookingId"`
	CustomerID flexInt64 `json:"customerId"`
	ProviderID flexInt64 `json:"providerId"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
}

// ListReviews はレビュー一覧を取得する。
// providerIdクエリパラメータがない場合は空の一覧を返す。
// GET /api/reviews?providerId=2
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	var providerID *int64
	if raw := r.URL.Query().Get("providerId"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("providerId", "providerIdは数値で指定してください。"))
			return
		}
		providerID = &v
	}

	reviews, err := h.service.ListByProvider(r.Context(), providerID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toReviewResponses(reviews))
}

// CreateReview はレビューを作成する。
// POST /api/reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyResponse(w)
		return
	}

	rv, err := h.service.Create(r.Context(), review.CreateInput{
		BookingID:  int64(req.BookingID),
		CustomerID: int64(req.CustomerID),
		ProviderID: int64(req.ProviderID),
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toReviewResponse(rv))
}
