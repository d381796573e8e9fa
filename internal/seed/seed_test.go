package seed

import (
	"context"
	"testing"

	"github.com/hitoshi/homecare/internal/model"
	"github.com/hitoshi/homecare/internal/storage"
)

func TestSeed_PopulatesEmptyStore(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	if err := Seed(ctx, store); err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}

	users, err := store.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 4 {
		t.Errorf("expected 4 users, got %d", len(users))
	}

	providers, err := store.ListUsersByRole(ctx, model.RoleProvider)
	if err != nil {
		t.Fatalf("ListUsersByRole: %v", err)
	}
	if len(providers) != 2 {
		t.Errorf("expected 2 providers, got %d", len(providers))
	}

	services, err := store.ListServices(ctx)
	if err != nil {
		t.Fatalf("ListServices: %v", err)
	}
	if len(services) != 3 {
		t.Errorf("expected 3 services, got %d", len(services))
	}

	bookings, err := store.ListBookings(ctx)
	if err != nil {
		t.Fatalf("ListBookings: %v", err)
	}
	if len(bookings) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(bookings))
	}
	for _, b := range bookings {
		if b.ProviderID == nil {
			t.Error("seeded bookings should have a provider assigned")
		}
		if b.TotalPrice == 0 {
			t.Error("seeded bookings should carry the service price")
		}
	}
}

// 既にユーザーが存在する場合は何も追加しない
func TestSeed_Idempotent(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	if err := Seed(ctx, store); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(ctx, store); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	users, err := store.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 4 {
		t.Errorf("expected 4 users after reseeding, got %d", len(users))
	}
}
