package user

import (
	"context"
	"testing"

	"github.com/hitoshi/homecare/internal/model"
	"github.com/hitoshi/homecare/internal/storage"
)

type passthroughSanitizer struct{}

func (passthroughSanitizer) Sanitize(raw string) string { return raw }

func seedUsers(t *testing.T, store *storage.MemoryStore) {
	t.Helper()
	ctx := context.Background()
	users := []*model.User{
		{Role: model.RoleCustomer, Name: "Alice Smith", Email: "alice@example.com"},
		{Role: model.RoleProvider, Name: "Dr. Sarah Jenkins", Email: "sarah@example.com"},
		{Role: model.RoleAdmin, Name: "Admin User", Email: "admin@example.com"},
	}
	for _, u := range users {
		if err := store.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser returned error: %v", err)
		}
	}
}

// 役割なしでは全ユーザーが返ることを検証
func TestService_List_NoRole_ReturnsAll(t *testing.T) {
	store := storage.NewMemoryStore()
	seedUsers(t, store)
	svc := NewService(store, passthroughSanitizer{})

	users, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(users) != 3 {
		t.Errorf("expected 3 users, got %d", len(users))
	}
}

// 役割指定でフィルタされることを検証
func TestService_List_ByRole(t *testing.T) {
	store := storage.NewMemoryStore()
	seedUsers(t, store)
	svc := NewService(store, passthroughSanitizer{})

	users, err := svc.List(context.Background(), model.RoleProvider)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 provider, got %d", len(users))
	}
	if users[0].Name != "Dr. Sarah Jenkins" {
		t.Errorf("Name = %q, want %q", users[0].Name, "Dr. Sarah Jenkins")
	}
}

// Meが最初の顧客を返すことを検証
func TestService_Me_ReturnsFirstCustomer(t *testing.T) {
	store := storage.NewMemoryStore()
	seedUsers(t, store)
	svc := NewService(store, passthroughSanitizer{})

	me, err := svc.Me(context.Background())
	if err != nil {
		t.Fatalf("Me returned error: %v", err)
	}
	if me.Role != model.RoleCustomer {
		t.Errorf("Role = %q, want %q", me.Role, model.RoleCustomer)
	}
	if me.Name != "Alice Smith" {
		t.Errorf("Name = %q, want %q", me.Name, "Alice Smith")
	}
}

// 顧客が存在しない場合はNOT_AUTHENTICATEDエラーを返すことを検証
func TestService_Me_NoCustomers_ReturnsNotAuthenticated(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewService(store, passthroughSanitizer{})

	_, err := svc.Me(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	apiErr, ok := err.(*model.APIError)
	if !ok {
		t.Fatalf("expected *model.APIError, got %T", err)
	}
	if apiErr.Code != model.ErrCodeNotAuthenticated {
		t.Errorf("Code = %q, want %q", apiErr.Code, model.ErrCodeNotAuthenticated)
	}
}

// 無効な役割への更新が拒否されることを検証
func TestService_Update_InvalidRole(t *testing.T) {
	store := storage.NewMemoryStore()
	seedUsers(t, store)
	svc := NewService(store, passthroughSanitizer{})

	badRole := model.Role("superuser")
	_, err := svc.Update(context.Background(), 1, model.UserUpdate{Role: &badRole})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	apiErr, ok := err.(*model.APIError)
	if !ok {
		t.Fatalf("expected *model.APIError, got %T", err)
	}
	if apiErr.Field != "role" {
		t.Errorf("Field = %q, want %q", apiErr.Field, "role")
	}
}

// 自己紹介がサニタイズされることを検証
func TestService_Update_SanitizesBio(t *testing.T) {
	store := storage.NewMemoryStore()
	seedUsers(t, store)
	called := false
	svc := NewService(store, sanitizerFunc(func(raw string) string {
		called = true
		return raw
	}))

	bio := "Registered nurse with 10 years of experience."
	updated, err := svc.Update(context.Background(), 2, model.UserUpdate{Bio: &bio})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !called {
		t.Error("expected sanitizer to be called")
	}
	if updated.Bio != bio {
		t.Errorf("Bio = %q, want %q", updated.Bio, bio)
	}
}

type sanitizerFunc func(string) string

func (f sanitizerFunc) Sanitize(raw string) string { return f(raw) }
