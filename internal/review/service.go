// Package review はレビュー管理のドメインロジックを提供する。
package review

import (
	"context"
	"fmt"

	"github.com/hitoshi/homecare/internal/model"
	"github.com/hitoshi/homecare/internal/storage"
)

// 評価値の許容範囲。
const (
	minRating = 1
	maxRating = 5
)

// Sanitizer は自由記述テキストのサニタイズインターフェース。
type Sanitizer interface {
	Sanitize(raw string) string
}

// Service はレビュー管理のサービス層。
// レビューは作成後は変更されない。
type Service struct {
	store     storage.Store
	sanitizer Sanitizer
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(store storage.Store, sanitizer Sanitizer) *Service {
	return &Service{store: store, sanitizer: sanitizer}
}

// CreateInput はレビュー作成の入力。
type CreateInput struct {
	BookingID  int64
	CustomerID int64
	ProviderID int64
	Rating     int
	Comment    string
}

// Create はレビューを作成する。
// 参照先の予約・顧客・提供者の存在は検証しない。
func (s *Service) Create(ctx context.Context, in CreateInput) (*model.Review, error) {
	if in.BookingID <= 0 {
		return nil, model.NewValidationError("bookingId", "bookingId は正の整数で指定してください。")
	}
	if in.CustomerID <= 0 {
		return nil, model.NewValidationError("customerId", "customerId は正の整数で指定してください。")
	}
	if in.ProviderID <= 0 {
		return nil, model.NewValidationError("providerId", "providerId は正の整数で指定してください。")
	}
	if in.Rating < minRating || in.Rating > maxRating {
		return nil, model.NewValidationError("rating",
			fmt.Sprintf("rating は%dから%dの範囲で指定してください。", minRating, maxRating))
	}

	review := &model.Review{
		BookingID:  in.BookingID,
		CustomerID: in.CustomerID,
		ProviderID: in.ProviderID,
		Rating:     in.Rating,
		Comment:    s.sanitizer.Sanitize(in.Comment),
	}

	if err := s.store.CreateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("レビューの作成に失敗しました: %w", err)
	}

	return review, nil
}

// ListByProvider は指定提供者のレビューを作成日時の降順で返す。
// providerIDがnilの場合は空の一覧を返す（全件一覧は提供しない）。
func (s *Service) ListByProvider(ctx context.Context, providerID *int64) ([]*model.Review, error) {
	if providerID == nil {
		return []*model.Review{}, nil
	}
	return s.store.ListReviewsByProvider(ctx, *providerID)
}
