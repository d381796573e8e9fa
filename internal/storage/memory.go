package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hitoshi/homecare/internal/model"
)

// MemoryStore はマップベースのインメモリ実装。
// HTTPリクエストは並行に処理されるため、全操作をmutexで直列化する。
// 返却するエンティティは常にコピーであり、呼び出し側の変更はストアに影響しない。
type MemoryStore struct {
	mu sync.RWMutex

	users    map[int64]*model.User
	services map[int64]*model.Service
	bookings map[int64]*model.Booking
	reviews  map[int64]*model.Review

	nextUserID    int64
	nextServiceID int64
	nextBookingID int64
	nextReviewID  int64

	// テストから時刻を固定するためのフック。
	now func() time.Time
}

// NewMemoryStore は空のMemoryStoreを生成する。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[int64]*model.User),
		services:      make(map[int64]*model.Service),
		bookings:      make(map[int64]*model.Booking),
		reviews:       make(map[int64]*model.Review),
		nextUserID:    1,
		nextServiceID: 1,
		nextBookingID: 1,
		nextReviewID:  1,
		now:           time.Now,
	}
}

// ListUsers は全ユーザーを取得する。
func (s *MemoryStore) ListUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*model.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, cloneUser(u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// FindUserByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
func (s *MemoryStore) FindUserByID(ctx context.Context, id int64) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

// ListUsersByRole は指定された役割のユーザーを取得する。
func (s *MemoryStore) ListUsersByRole(ctx context.Context, role model.Role) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*model.User, 0)
	for _, u := range s.users {
		if u.Role == role {
			users = append(users, cloneUser(u))
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// CreateUser はユーザーを作成し、採番したIDを設定する。
func (s *MemoryStore) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ID = s.nextUserID
	s.nextUserID++
	if user.Rating == 0 {
		user.Rating = model.DefaultRating
	}
	s.users[user.ID] = cloneUser(user)
	return nil
}

// UpdateUser は指定されたフィールドのみを既存レコードにマージする。
func (s *MemoryStore) UpdateUser(ctx context.Context, id int64, update model.UserUpdate) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, model.NewUserNotFoundError(id)
	}

	if update.Role != nil {
		u.Role = *update.Role
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.AvatarURL != nil {
		u.AvatarURL = *update.AvatarURL
	}
	if update.Phone != nil {
		u.Phone = *update.Phone
	}
	if update.Address != nil {
		u.Address = *update.Address
	}
	if update.Bio != nil {
		u.Bio = *update.Bio
	}
	if update.Specialization != nil {
		u.Specialization = *update.Specialization
	}
	if update.Rating != nil {
		u.Rating = *update.Rating
	}

	return cloneUser(u), nil
}

// ListServices は全サービスを取得する。
func (s *MemoryStore) ListServices(ctx context.Context) ([]*model.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	services := make([]*model.Service, 0, len(s.services))
	for _, svc := range s.services {
		services = append(services, cloneService(svc))
	}
	sort.Slice(services, func(i, j int) bool { return services[i].ID < services[j].ID })
	return services, nil
}

// FindServiceByID は指定IDのサービスを取得する。見つからない場合はnilを返す。
func (s *MemoryStore) FindServiceByID(ctx context.Context, id int64) (*model.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	svc, ok := s.services[id]
	if !ok {
		return nil, nil
	}
	return cloneService(svc), nil
}

// CreateService はサービスを作成し、採番したIDを設定する。
func (s *MemoryStore) CreateService(ctx context.Context, service *model.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	service.ID = s.nextServiceID
	s.nextServiceID++
	s.services[service.ID] = cloneService(service)
	return nil
}

// ListBookings は全予約を予定日時の降順で取得する。
func (s *MemoryStore) ListBookings(ctx context.Context) ([]*model.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookings := make([]*model.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		bookings = append(bookings, cloneBooking(b))
	}
	sortBookings(bookings)
	return bookings, nil
}

// ListUserBookings は役割に応じてフィルタした予約を予定日時の降順で取得する。
func (s *MemoryStore) ListUserBookings(ctx context.Context, userID int64, role model.Role) ([]*model.Booking, error) {
	switch role {
	case model.RoleCustomer:
		return s.listBookingsFiltered(func(b *model.Booking) bool {
			return b.CustomerID == userID
		})
	case model.RoleProvider:
		return s.listBookingsFiltered(func(b *model.Booking) bool {
			return b.ProviderID != nil && *b.ProviderID == userID
		})
	default:
		return s.ListBookings(ctx)
	}
}

func (s *MemoryStore) listBookingsFiltered(match func(*model.Booking) bool) ([]*model.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookings := make([]*model.Booking, 0)
	for _, b := range s.bookings {
		if match(b) {
			bookings = append(bookings, cloneBooking(b))
		}
	}
	sortBookings(bookings)
	return bookings, nil
}

// FindBookingByID は指定IDの予約を取得する。見つからない場合はnilを返す。
func (s *MemoryStore) FindBookingByID(ctx context.Context, id int64) (*model.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, nil
	}
	return cloneBooking(b), nil
}

// CreateBooking は予約を作成し、採番したIDを設定する。
func (s *MemoryStore) CreateBooking(ctx context.Context, booking *model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking.ID = s.nextBookingID
	s.nextBookingID++
	if booking.Status == "" {
		booking.Status = model.BookingStatusPending
	}
	if booking.PaymentStatus == "" {
		booking.PaymentStatus = model.PaymentStatusUnpaid
	}
	booking.CreatedAt = s.now()
	s.bookings[booking.ID] = cloneBooking(booking)
	return nil
}

// UpdateBooking は指定されたフィールドのみを既存レコードにマージする。
// CreatedAt は作成時の値を常に維持する。
func (s *MemoryStore) UpdateBooking(ctx context.Context, id int64, update model.BookingUpdate) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, model.NewBookingNotFoundError(id)
	}

	if update.CustomerID != nil {
		b.CustomerID = *update.CustomerID
	}
	if update.ProviderID != nil {
		pid := *update.ProviderID
		b.ProviderID = &pid
	}
	if update.ServiceID != nil {
		b.ServiceID = *update.ServiceID
	}
	if update.Status != nil {
		b.Status = *update.Status
	}
	if update.ScheduledDate != nil {
		b.ScheduledDate = *update.ScheduledDate
	}
	if update.Address != nil {
		b.Address = *update.Address
	}
	if update.Notes != nil {
		b.Notes = *update.Notes
	}
	if update.TotalPrice != nil {
		b.TotalPrice = *update.TotalPrice
	}
	if update.PaymentStatus != nil {
		b.PaymentStatus = *update.PaymentStatus
	}

	return cloneBooking(b), nil
}

// CreateReview はレビューを作成し、採番したIDを設定する。
func (s *MemoryStore) CreateReview(ctx context.Context, review *model.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	review.ID = s.nextReviewID
	s.nextReviewID++
	review.CreatedAt = s.now()
	reviewCopy := *review
	s.reviews[review.ID] = &reviewCopy
	return nil
}

// ListReviewsByProvider は指定提供者のレビューを作成日時の降順で取得する。
func (s *MemoryStore) ListReviewsByProvider(ctx context.Context, providerID int64) ([]*model.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reviews := make([]*model.Review, 0)
	for _, r := range s.reviews {
		if r.ProviderID == providerID {
			reviewCopy := *r
			reviews = append(reviews, &reviewCopy)
		}
	}
	sort.Slice(reviews, func(i, j int) bool {
		if !reviews[i].CreatedAt.Equal(reviews[j].CreatedAt) {
			return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
		}
		return reviews[i].ID > reviews[j].ID
	})
	return reviews, nil
}

// sortBookings は予定日時の降順に整列する。同時刻はIDの降順。
func sortBookings(bookings []*model.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if !bookings[i].ScheduledDate.Equal(bookings[j].ScheduledDate) {
			return bookings[i].ScheduledDate.After(bookings[j].ScheduledDate)
		}
		return bookings[i].ID > bookings[j].ID
	})
}

func cloneUser(u *model.User) *model.User {
	userCopy := *u
	return &userCopy
}

func cloneService(svc *model.Service) *model.Service {
	serviceCopy := *svc
	return &serviceCopy
}

func cloneBooking(b *model.Booking) *model.Booking {
	bookingCopy := *b
	if b.ProviderID != nil {
		pid := *b.ProviderID
		bookingCopy.ProviderID = &pid
	}
	return &bookingCopy
}

// compile-time interface check
var _ Store = (*MemoryStore)(nil)
