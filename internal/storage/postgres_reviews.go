package storage

import (
	"context"
	"fmt"

	"github.com/hitoshi/homecare/internal/model"
)

// CreateReview はレビューを作成し、採番したIDを設定する。
func (s *PostgresStore) CreateReview(ctx context.Context, review *model.Review) error {
	review.CreatedAt = s.now()

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO reviews (booking_id, customer_id, provider_id, rating, comment, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		review.BookingID, review.CustomerID, review.ProviderID,
		review.Rating, review.Comment, review.CreatedAt,
	).Scan(&review.ID)
	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}

	return nil
}

// ListReviewsByProvider は指定提供者のレビューを作成日時の降順で取得する。
func (s *PostgresStore) ListReviewsByProvider(ctx context.Context, providerID int64) ([]*model.Review, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, booking_id, customer_id, provider_id, rating, comment, created_at
		 FROM reviews WHERE provider_id = $1 ORDER BY created_at DESC, id DESC`,
		providerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews by provider: %w", err)
	}
	defer rows.Close()

	reviews := make([]*model.Review, 0)
	for rows.Next() {
		review := &model.Review{}
		if err := rows.Scan(&review.ID, &review.BookingID, &review.CustomerID,
			&review.ProviderID, &review.Rating, &review.Comment, &review.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}
	return reviews, nil
}
