package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/homecare/internal/model"
)

const bookingColumns = `id, customer_id, provider_id, service_id, status, scheduled_date,
	address, notes, total_price, payment_status, created_at`

// ListBookings は全予約を予定日時の降順で取得する。
func (s *PostgresStore) ListBookings(ctx context.Context) ([]*model.Booking, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings ORDER BY scheduled_date DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListUserBookings は役割に応じてフィルタした予約を予定日時の降順で取得する。
func (s *PostgresStore) ListUserBookings(ctx context.Context, userID int64, role model.Role) ([]*model.Booking, error) {
	var query string
	switch role {
	case model.RoleCustomer:
		query = `SELECT ` + bookingColumns + ` FROM bookings WHERE customer_id = $1 ORDER BY scheduled_date DESC, id DESC`
	case model.RoleProvider:
		query = `SELECT ` + bookingColumns + ` FROM bookings WHERE provider_id = $1 ORDER BY scheduled_date DESC, id DESC`
	default:
		return s.ListBookings(ctx)
	}

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user bookings: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CreateBooking は予約を作成し、採番したIDを設定する。
func (s *PostgresStore) CreateBooking(ctx context.Context, booking *model.Booking) error {
	if booking.Status == "" {
		booking.Status = model.BookingStatusPending
	}
	if booking.PaymentStatus == "" {
		booking.PaymentStatus = model.PaymentStatusUnpaid
	}
	booking.CreatedAt = s.now()

	var providerID sql.NullInt64
	if booking.ProviderID != nil {
		providerID = sql.NullInt64{Int64: *booking.ProviderID, Valid: true}
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO bookings (customer_id, provider_id, service_id, status, scheduled_date,
		   address, notes, total_price, payment_status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		booking.CustomerID, providerID, booking.ServiceID, string(booking.Status),
		booking.ScheduledDate, booking.Address, booking.Notes,
		booking.TotalPrice, string(booking.PaymentStatus), booking.CreatedAt,
	).Scan(&booking.ID)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	return nil
}

// UpdateBooking は指定されたフィールドのみを既存レコードにマージする。
// created_at は更新対象に含めない。
func (s *PostgresStore) UpdateBooking(ctx context.Context, id int64, update model.BookingUpdate) (*model.Booking, error) {
	set, args := buildUpdateSet(
		updateField{"customer_id", update.CustomerID},
		updateField{"provider_id", update.ProviderID},
		updateField{"service_id", update.ServiceID},
		updateField{"status", update.Status},
		updateField{"scheduled_date", update.ScheduledDate},
		updateField{"address", update.Address},
		updateField{"notes", update.Notes},
		updateField{"total_price", update.TotalPrice},
		updateField{"payment_status", update.PaymentStatus},
	)
	if len(args) == 0 {
		booking, err := s.FindBookingByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if booking == nil {
			return nil, model.NewBookingNotFoundError(id)
		}
		return booking, nil
	}

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE bookings SET %s WHERE id = $%d RETURNING `+bookingColumns,
		set, len(args),
	)

	booking, err := scanBookingRow(s.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, model.NewBookingNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	return booking, nil
}

// FindBookingByID は指定IDの予約を取得する。見つからない場合はnilを返す。
func (s *PostgresStore) FindBookingByID(ctx context.Context, id int64) (*model.Booking, error) {
	booking, err := scanBookingRow(s.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`,
		id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return booking, nil
}

// rowScanner は*sql.Rowと*sql.Rowsの共通Scanインターフェース。
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookingRow(row rowScanner) (*model.Booking, error) {
	booking := &model.Booking{}
	var providerID sql.NullInt64
	err := row.Scan(&booking.ID, &booking.CustomerID, &providerID, &booking.ServiceID,
		&booking.Status, &booking.ScheduledDate, &booking.Address, &booking.Notes,
		&booking.TotalPrice, &booking.PaymentStatus, &booking.CreatedAt)
	if err != nil {
		return nil, err
	}
	if providerID.Valid {
		booking.ProviderID = &providerID.Int64
	}
	return booking, nil
}

func scanBookings(rows *sql.Rows) ([]*model.Booking, error) {
	bookings := make([]*model.Booking, 0)
	for rows.Next() {
		booking, err := scanBookingRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}
	return bookings, nil
}
