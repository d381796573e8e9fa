// Package storage はエンティティ永続化の契約と2種類の実装を提供する。
//
// Store はインメモリ実装（MemoryStore）とPostgreSQL実装（PostgresStore）の
// 共通契約。どちらを使用するかはプロセス起動時に設定で選択し、
// 実行中の切り替えは行わない。
package storage

import (
	"context"

	"github.com/hitoshi/homecare/internal/model"
)

// Store はエンティティ永続化の共通契約。
// 参照先エンティティの存在検証は行わない（呼び出し側の責務）。
type Store interface {
	// ListUsers は全ユーザーを取得する。
	ListUsers(ctx context.Context) ([]*model.User, error)

	// FindUserByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindUserByID(ctx context.Context, id int64) (*model.User, error)

	// ListUsersByRole は指定された役割のユーザーを取得する。
	ListUsersByRole(ctx context.Context, role model.Role) ([]*model.User, error)

	// CreateUser はユーザーを作成し、採番したIDを設定する。
	// Rating が未設定（0）の場合は model.DefaultRating を設定する。
	CreateUser(ctx context.Context, user *model.User) error

	// UpdateUser は指定されたフィールドのみを既存レコードにマージする。
	// IDが存在しない場合は model.ErrCodeUserNotFound のAPIErrorを返す。
	UpdateUser(ctx context.Context, id int64, update model.UserUpdate) (*model.User, error)

	// ListServices は全サービスを取得する。
	ListServices(ctx context.Context) ([]*model.Service, error)

	// FindServiceByID は指定IDのサービスを取得する。見つからない場合はnilを返す。
	FindServiceByID(ctx context.Context, id int64) (*model.Service, error)

	// CreateService はサービスを作成し、採番したIDを設定する。
	CreateService(ctx context.Context, service *model.Service) error

	// ListBookings は全予約を予定日時の降順で取得する。
	ListBookings(ctx context.Context) ([]*model.Booking, error)

	// ListUserBookings は役割に応じてフィルタした予約を予定日時の降順で取得する。
	// customer: customerIDが一致する予約のみ。
	// provider: providerIDが一致する予約のみ。
	// それ以外（admin）: 全予約。
	ListUserBookings(ctx context.Context, userID int64, role model.Role) ([]*model.Booking, error)

	// FindBookingByID は指定IDの予約を取得する。見つからない場合はnilを返す。
	FindBookingByID(ctx context.Context, id int64) (*model.Booking, error)

	// CreateBooking は予約を作成し、採番したIDを設定する。
	// Status 未設定時は pending、PaymentStatus 未設定時は unpaid を設定し、
	// CreatedAt に現在時刻を記録する。
	CreateBooking(ctx context.Context, booking *model.Booking) error

	// UpdateBooking は指定されたフィールドのみを既存レコードにマージする。
	// IDが存在しない場合は model.ErrCodeBookingNotFound のAPIErrorを返す。
	UpdateBooking(ctx context.Context, id int64, update model.BookingUpdate) (*model.Booking, error)

	// CreateReview はレビューを作成し、採番したIDを設定する。
	// CreatedAt に現在時刻を記録する。
	CreateReview(ctx context.Context, review *model.Review) error

	// ListReviewsByProvider は指定提供者のレビューを作成日時の降順で取得する。
	ListReviewsByProvider(ctx context.Context, providerID int64) ([]*model.Review, error)
}
