package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/homecare/internal/model"
)

const serviceColumns = `id, name, description, category, price, duration_minutes, image_url, is_featured`

// ListServices は全サービスを取得する。
func (s *PostgresStore) ListServices(ctx context.Context) ([]*model.Service, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+serviceColumns+` FROM services ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	services := make([]*model.Service, 0)
	for rows.Next() {
		service := &model.Service{}
		if err := rows.Scan(&service.ID, &service.Name, &service.Description, &service.Category,
			&service.Price, &service.DurationMinutes, &service.ImageURL, &service.IsFeatured); err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, service)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate services: %w", err)
	}
	return services, nil
}

// FindServiceByID は指定IDのサービスを取得する。見つからない場合はnilを返す。
func (s *PostgresStore) FindServiceByID(ctx context.Context, id int64) (*model.Service, error) {
	service := &model.Service{}
	err := s.db.QueryRowContext(ctx,
		`SELECT `+serviceColumns+` FROM services WHERE id = $1`,
		id,
	).Scan(&service.ID, &service.Name, &service.Description, &service.Category,
		&service.Price, &service.DurationMinutes, &service.ImageURL, &service.IsFeatured)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find service by ID: %w", err)
	}

	return service, nil
}

// CreateService はサービスを作成し、採番したIDを設定する。
func (s *PostgresStore) CreateService(ctx context.Context, service *model.Service) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO services (name, description, category, price, duration_minutes, image_url, is_featured)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		service.Name, service.Description, service.Category,
		service.Price, service.DurationMinutes, service.ImageURL, service.IsFeatured,
	).Scan(&service.ID)
	if err != nil {
		return fmt.Errorf("failed to insert service: %w", err)
	}

	return nil
}
