// Package user はユーザー管理のドメインロジックを提供する。
package user

import (
	"context"
	"fmt"

	"github.com/hitoshi/homecare/internal/model"
	"github.com/hitoshi/homecare/internal/storage"
)

// Sanitizer は自由記述テキストのサニタイズインターフェース。
type Sanitizer interface {
	Sanitize(raw string) string
}

// Service はユーザー管理のサービス層。
type Service struct {
	store     storage.Store
	sanitizer Sanitizer
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(store storage.Store, sanitizer Sanitizer) *Service {
	return &Service{store: store, sanitizer: sanitizer}
}

// List は全ユーザー、またはroleが指定された場合は該当する役割のユーザーを返す。
func (s *Service) List(ctx context.Context, role model.Role) ([]*model.User, error) {
	if role != "" {
		return s.store.ListUsersByRole(ctx, role)
	}
	return s.store.ListUsers(ctx)
}

// Me は認証代替として最初の顧客レコードを返す。
// 顧客が存在しない場合は NOT_AUTHENTICATED エラーを返す。
// 本来のセッション認証は範囲外（呼び出し元の役割申告を信頼するモデル）。
func (s *Service) Me(ctx context.Context) (*model.User, error) {
	customers, err := s.store.ListUsersByRole(ctx, model.RoleCustomer)
	if err != nil {
		return nil, fmt.Errorf("顧客の取得に失敗しました: %w", err)
	}
	if len(customers) == 0 {
		return nil, model.NewNotAuthenticatedError()
	}
	return customers[0], nil
}

// Update はユーザーの部分更新を適用する。
// 自己紹介はサニタイズし、役割が指定された場合は定義済みの値のみ受け入れる。
func (s *Service) Update(ctx context.Context, id int64, update model.UserUpdate) (*model.User, error) {
	if update.Role != nil && !update.Role.IsValid() {
		return nil, model.NewValidationError("role", fmt.Sprintf("無効な役割です: %s", *update.Role))
	}
	if update.Bio != nil {
		sanitized := s.sanitizer.Sanitize(*update.Bio)
		update.Bio = &sanitized
	}
	return s.store.UpdateUser(ctx, id, update)
}
