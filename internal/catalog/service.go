// Package catalog は予約可能なサービスカタログのドメインロジックを提供する。
package catalog

import (
	"context"

	"github.com/hitoshi/homecare/internal/model"
	"github.com/hitoshi/homecare/internal/storage"
)

// Service はサービスカタログのサービス層。
// サービスは作成後は変更されないため、参照と作成のみを提供する。
type Service struct {
	store storage.Store
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// List は全サービスを返す。
func (s *Service) List(ctx context.Context) ([]*model.Service, error) {
	return s.store.ListServices(ctx)
}

// Get は指定IDのサービスを返す。見つからない場合はnilを返す。
func (s *Service) Get(ctx context.Context, id int64) (*model.Service, error) {
	return s.store.FindServiceByID(ctx, id)
}

// Create はサービスを作成する。シードデータ投入時に使用する。
func (s *Service) Create(ctx context.Context, in *model.Service) error {
	if in.Name == "" {
		return model.NewValidationError("name", "name は必須です。")
	}
	if in.Category == "" {
		return model.NewValidationError("category", "category は必須です。")
	}
	if in.Price < 0 {
		return model.NewValidationError("price", "price は0以上で指定してください。")
	}
	return s.store.CreateService(ctx, in)
}
