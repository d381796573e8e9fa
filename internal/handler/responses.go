package handler

import (
	"time"

	"github.com/hitoshi/homecare/internal/model"
	"github.com/hitoshi/homecare/internal/stats"
)

// userResponse はユーザー情報のAPIレスポンス。
type userResponse struct {
	ID             int64  `json:"id"`
	Role           string `json:"role"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	AvatarURL      string `json:"avatarUrl"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Bio            string `json:"bio"`
	Specialization string `json:"specialization"`
	Rating         int    `json:"rating"`
}

// serviceResponse はサービス情報のAPIレスポンス。
type serviceResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	Price           int64  `json:"price"`
	DurationMinutes int    `json:"durationMinutes"`
	ImageURL        string `json:"imageUrl"`
	IsFeatured      bool   `json:"isFeatured"`
}

// bookingResponse は予約情報のAPIレスポンス。
type bookingResponse struct {
	ID            int64     `json:"id"`
	CustomerID    int64     `json:"customerId"`
	ProviderID    *int64    `json:"providerId"`
	ServiceID     int64     `json:"serviceId"`
	Status        string    `json:"status"`
	ScheduledDate time.Time `json:"scheduledDate"`
	Address       string    `json:"address"`
	Notes         string    `json:"notes"`
	TotalPrice    int64     `json:"totalPrice"`
	PaymentStatus string    `json:"paymentStatus"`
	CreatedAt     time.Time `json:"createdAt"`
}

// reviewResponse はレビュー情報のAPIレスポンス。
type reviewResponse struct {
	ID         int64     `json:"id"`
	BookingID  int64     `json:"bookingId"`
	CustomerID int64     `json:"customerId"`
	ProviderID int64     `json:"providerId"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
}

// trendPointResponse は日別予約件数のAPIレスポンス。
type trendPointResponse struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// categoryStatResponse はカテゴリ別予約件数のAPIレスポンス。
type categoryStatResponse struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// statsResponse はダッシュボード統計のAPIレスポンス。
type statsResponse struct {
	TotalBookings     int                    `json:"totalBookings"`
	ActiveBookings    int                    `json:"activeBookings"`
	CompletedBookings int                    `json:"completedBookings"`
	Revenue           int64                  `json:"revenue"`
	ActiveProviders   int                    `json:"activeProviders"`
	Satisfaction      float64                `json:"satisfaction"`
	BookingsTrend     []trendPointResponse   `json:"bookingsTrend"`
	CategoryStats     []categoryStatResponse `json:"categoryStats"`
}

// --- モデルからレスポンスへの変換 ---

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:             u.ID,
		Role:           string(u.Role),
		Name:           u.Name,
		Email:          u.Email,
		AvatarURL:      u.AvatarURL,
		Phone:          u.Phone,
		Address:        u.Address,
		Bio:            u.Bio,
		Specialization: u.Specialization,
		Rating:         u.Rating,
	}
}

func toUserResponses(users []*model.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

func toServiceResponse(s *model.Service) serviceResponse {
	return serviceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		Category:        s.Category,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
		ImageURL:        s.ImageURL,
		IsFeatured:      s.IsFeatured,
	}
}

func toServiceResponses(services []*model.Service) []serviceResponse {
	out := make([]serviceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, toServiceResponse(s))
	}
	return out
}

func toBookingResponse(b *model.Booking) bookingResponse {
	return bookingResponse{
		ID:            b.ID,
		CustomerID:    b.CustomerID,
		ProviderID:    b.ProviderID,
		ServiceID:     b.ServiceID,
		Status:        string(b.Status),
		ScheduledDate: b.ScheduledDate,
		Address:       b.Address,
		Notes:         b.Notes,
		TotalPrice:    b.TotalPrice,
		PaymentStatus: string(b.PaymentStatus),
		CreatedAt:     b.CreatedAt,
	}
}

func toBookingResponses(bookings []*model.Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	return out
}

func toReviewResponse(r *model.Review) reviewResponse {
	return reviewResponse{
		ID:         r.ID,
		BookingID:  r.BookingID,
		CustomerID: r.CustomerID,
		ProviderID: r.ProviderID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}

func toReviewResponses(reviews []*model.Review) []reviewResponse {
	out := make([]reviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, toReviewResponse(r))
	}
	return out
}

func toStatsResponse(s *stats.Summary) statsResponse {
	trend := make([]trendPointResponse, 0, len(s.BookingsTrend))
	for _, p := range s.BookingsTrend {
		trend = append(trend, trendPointResponse{Date: p.Date, Count: p.Count})
	}
	categories := make([]categoryStatResponse, 0, len(s.CategoryStats))
	for _, c := range s.CategoryStats {
		categories = append(categories, categoryStatResponse{Category: c.Category, Count: c.Count})
	}
	return statsResponse{
		TotalBookings:     s.TotalBookings,
		ActiveBookings:    s.ActiveBookings,
		CompletedBookings: s.CompletedBookings,
		Revenue:           s.Revenue,
		ActiveProviders:   s.ActiveProviders,
		Satisfaction:      s.Satisfaction,
		BookingsTrend:     trend,
		CategoryStats:     categories,
	}
}
