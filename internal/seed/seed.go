// Package seed は開発・デモ用の初期データ投入を提供する。
package seed

import (
	"context"
	"log/slog"
	"time"

	"github.com/hitoshi/homecare/internal/model"
	"github.com/hitoshi/homecare/internal/storage"
)

// Seed は初期データ（ユーザー、サービス、予約）を投入する。
// 既にユーザーが存在する場合は何もしない（冪等）。
func Seed(ctx context.Context, store storage.Store) error {
	existing, err := store.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		slog.Info("シードデータの投入をスキップしました", "existing_users", len(existing))
		return nil
	}

	customer := &model.User{Role: model.RoleCustomer, Name: "Alice Smith", Email: "alice@example.com", AvatarURL: "https://i.pravatar.cc/150?u=alice"}
	provider1 := &model.User{Role: model.RoleProvider, Name: "Dr. Sarah Jenkins", Email: "sarah@example.com", AvatarURL: "https://i.pravatar.cc/150?u=sarah"}
	provider2 := &model.User{Role: model.RoleProvider, Name: "Nurse Mark Don", Email: "mark@example.com", AvatarURL: "https://i.pravatar.cc/150?u=mark"}
	admin := &model.User{Role: model.RoleAdmin, Name: "Admin User", Email: "admin@example.com", AvatarURL: "https://i.pravatar.cc/150?u=admin"}
	for _, u := range []*model.User{customer, provider1, provider2, admin} {
		if err := store.CreateUser(ctx, u); err != nil {
			return err
		}
	}

	service1 := &model.Service{Name: "Home Nursing Care", Description: "Professional nursing care in the comfort of your home.", Category: "Nursing", Price: 15000, DurationMinutes: 120, ImageURL: "https://images.unsplash.com/photo-1579684385127-1ef15d508118?w=800&q=80"}
	service2 := &model.Service{Name: "Physiotherapy Session", Description: "Expert physiotherapy to help you recover faster.", Category: "Therapy", Price: 12000, DurationMinutes: 60, ImageURL: "https://images.unsplash.com/photo-1576091160399-112ba8d25d1d?w=800&q=80"}
	service3 := &model.Service{Name: "Post-Surgery Support", Description: "Comprehensive support after surgical procedures.", Category: "Recovery", Price: 20000, DurationMinutes: 240, ImageURL: "https://images.unsplash.com/photo-1581594693702-fbdc51b2763b?w=800&q=80"}
	for _, s := range []*model.Service{service1, service2, service3} {
		if err := store.CreateService(ctx, s); err != nil {
			return err
		}
	}

	tomorrow := time.Now().AddDate(0, 0, 1)
	nextWeek := time.Now().AddDate(0, 0, 7)

	bookings := []*model.Booking{
		{
			CustomerID:    customer.ID,
			ProviderID:    &provider1.ID,
			ServiceID:     service1.ID,
			Status:        model.BookingStatusConfirmed,
			ScheduledDate: tomorrow,
			Address:       "123 Health Ave, Wellness City",
			Notes:         "Please ring the bell twice.",
			TotalPrice:    service1.Price,
		},
		{
			CustomerID:    customer.ID,
			ProviderID:    &provider2.ID,
			ServiceID:     service2.ID,
			Status:        model.BookingStatusPending,
			ScheduledDate: nextWeek,
			Address:       "123 Health Ave, Wellness City",
			Notes:         "Looking forward to the session.",
			TotalPrice:    service2.Price,
		},
	}
	for _, b := range bookings {
		if err := store.CreateBooking(ctx, b); err != nil {
			return err
		}
	}

	slog.Info("シードデータを投入しました",
		"users", 4,
		"services", 3,
		"bookings", len(bookings),
	)
	return nil
}
