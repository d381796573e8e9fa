package review

import (
	"context"
	"testing"

	"github.com/hitoshi/homecare/internal/model"
	"github.com/hitoshi/homecare/internal/storage"
)

type passthroughSanitizer struct{}

func (passthroughSanitizer) Sanitize(raw string) string { return raw }

func validCreateInput() CreateInput {
	return CreateInput{
		BookingID:  1,
		CustomerID: 1,
		ProviderID: 2,
		Rating:     5,
		Comment:    "Very professional and punctual.",
	}
}

// レビュー作成が成功し、IDと作成日時が設定されることを検証
func TestService_Create_Succeeds(t *testing.T) {
	svc := NewService(storage.NewMemoryStore(), passthroughSanitizer{})

	r, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if r.ID == 0 {
		t.Error("expected assigned ID")
	}
	if r.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if r.Comment != "Very professional and punctual." {
		t.Errorf("Comment = %q", r.Comment)
	}
}

// 評価値の範囲検証を検証
func TestService_Create_RatingOutOfRange(t *testing.T) {
	svc := NewService(storage.NewMemoryStore(), passthroughSanitizer{})
	ctx := context.Background()

	for _, rating := range []int{0, -1, 6, 100} {
		in := validCreateInput()
		in.Rating = rating

		_, err := svc.Create(ctx, in)
		if err == nil {
			t.Fatalf("rating %d: expected error, got nil", rating)
		}
		apiErr, ok := err.(*model.APIError)
		if !ok {
			t.Fatalf("expected *model.APIError, got %T", err)
		}
		if apiErr.Field != "rating" {
			t.Errorf("Field = %q, want %q", apiErr.Field, "rating")
		}
	}
}

// 必須参照IDの検証エラーを検証
func TestService_Create_MissingReferences(t *testing.T) {
	svc := NewService(storage.NewMemoryStore(), passthroughSanitizer{})
	ctx := context.Background()

	tests := []struct {
		name      string
		mutate    func(*CreateInput)
		wantField string
	}{
		{"missing bookingId", func(in *CreateInput) { in.BookingID = 0 }, "bookingId"},
		{"missing customerId", func(in *CreateInput) { in.CustomerID = 0 }, "customerId"},
		{"missing providerId", func(in *CreateInput) { in.ProviderID = 0 }, "providerId"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validCreateInput()
			tc.mutate(&in)

			_, err := svc.Create(ctx, in)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			apiErr, ok := err.(*model.APIError)
			if !ok {
				t.Fatalf("expected *model.APIError, got %T", err)
			}
			if apiErr.Field != tc.wantField {
				t.Errorf("Field = %q, want %q", apiErr.Field, tc.wantField)
			}
		})
	}
}

// providerIDなしの一覧は空配列を返すことを検証
func TestService_ListByProvider_NoFilter_ReturnsEmpty(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewService(store, passthroughSanitizer{})
	ctx := context.Background()

	if _, err := svc.Create(ctx, validCreateInput()); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	reviews, err := svc.ListByProvider(ctx, nil)
	if err != nil {
		t.Fatalf("ListByProvider returned error: %v", err)
	}
	if len(reviews) != 0 {
		t.Errorf("expected empty list, got %d reviews", len(reviews))
	}
}

// 提供者別の一覧取得を検証
func TestService_ListByProvider_FiltersByProvider(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewService(store, passthroughSanitizer{})
	ctx := context.Background()

	for _, providerID := range []int64{2, 3, 2} {
		in := validCreateInput()
		in.ProviderID = providerID
		if _, err := svc.Create(ctx, in); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	providerID := int64(2)
	reviews, err := svc.ListByProvider(ctx, &providerID)
	if err != nil {
		t.Fatalf("ListByProvider returned error: %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(reviews))
	}
	for _, r := range reviews {
		if r.ProviderID != 2 {
			t.Errorf("ProviderID = %d, want 2", r.ProviderID)
		}
	}
}

// コメントがサニタイズされることを検証
func TestService_Create_SanitizesComment(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewService(store, sanitizerFunc(func(raw string) string { return "clean" }))

	in := validCreateInput()
	in.Comment = `<script>alert(1)</script>`
	r, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if r.Comment != "clean" {
		t.Errorf("Comment = %q, want %q", r.Comment, "clean")
	}
}

type sanitizerFunc func(string) string

func (f sanitizerFunc) Sanitize(raw string) string { return f(raw) }
