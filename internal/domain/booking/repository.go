package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines booking data access interface
type Repository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByPaymentSession(ctx context.Context, sessionID string) (*Booking, error)
	ListForSpaceDay(ctx context.Context, spaceID uuid.UUID, date time.Time) ([]*Booking, error)
	ListByGuest(ctx context.Context, guestID uuid.UUID, limit, offset int) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	SetPaymentSession(ctx context.Context, id uuid.UUID, sessionID string) error
}

type repository struct {
	db *sqlx.DB
}

const bookingSelectColumns = `
	id, space_id, guest_id, start_date, start_time, end_time, guests_count,
	hours, subtotal, service_fee, total, currency,
	status, payment_session_id, created_at, updated_at
`

// NewRepository creates new booking repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Create inserts a pending booking. A partial unique index on
// (space_id, start_date, start_time) over pending and confirmed rows
// is the last line of defense against double booking; a violation
// surfaces as ErrSlotTaken.
func (r *repository) Create(ctx context.Context, booking *Booking) error {
	query := `
		INSERT INTO bookings (
			id, space_id, guest_id, start_date, start_time, end_time, guests_count,
			hours, subtotal, service_fee, total, currency, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12, $13
		)
	`

	_, err := r.db.ExecContext(ctx, query,
		booking.ID, booking.SpaceID, booking.GuestID,
		booking.StartDate, booking.StartTime, booking.EndTime, booking.GuestsCount,
		booking.Hours, booking.Subtotal, booking.ServiceFee, booking.Total, booking.Currency,
		booking.Status,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrSlotTaken
		}
		return fmt.Errorf("booking repository create: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	query := `SELECT ` + bookingSelectColumns + ` FROM bookings WHERE id = $1`

	var b Booking
	if err := r.db.GetContext(ctx, &b, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("booking repository get by id: %w", err)
	}

	return &b, nil
}

func (r *repository) GetByPaymentSession(ctx context.Context, sessionID string) (*Booking, error) {
	query := `SELECT ` + bookingSelectColumns + ` FROM bookings WHERE payment_session_id = $1`

	var b Booking
	if err := r.db.GetContext(ctx, &b, query, sessionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("booking repository get by payment session: %w", err)
	}

	return &b, nil
}

// ListForSpaceDay returns the bookings that hold hours on a date.
// Only pending and confirmed rows block availability.
func (r *repository) ListForSpaceDay(ctx context.Context, spaceID uuid.UUID, date time.Time) ([]*Booking, error) {
	query := `
		SELECT ` + bookingSelectColumns + `
		FROM bookings
		WHERE space_id = $1 AND start_date = $2 AND status IN ('pending', 'confirmed')
		ORDER BY start_time
	`

	var bookings []*Booking
	if err := r.db.SelectContext(ctx, &bookings, query, spaceID, date.Format("2006-01-02")); err != nil {
		return nil, fmt.Errorf("booking repository list for space day: %w", err)
	}

	return bookings, nil
}

func (r *repository) ListByGuest(ctx context.Context, guestID uuid.UUID, limit, offset int) ([]*Booking, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM bookings WHERE guest_id = $1`, guestID); err != nil {
		return nil, 0, fmt.Errorf("booking repository count by guest: %w", err)
	}

	query := `
		SELECT ` + bookingSelectColumns + `
		FROM bookings
		WHERE guest_id = $1
		ORDER BY start_date DESC, start_time DESC
		LIMIT $2 OFFSET $3
	`

	var bookings []*Booking
	if err := r.db.SelectContext(ctx, &bookings, query, guestID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("booking repository list by guest: %w", err)
	}

	return bookings, total, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("booking repository update status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *repository) SetPaymentSession(ctx context.Context, id uuid.UUID, sessionID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET payment_session_id = $2, updated_at = now() WHERE id = $1`, id, sessionID)
	if err != nil {
		return fmt.Errorf("booking repository set payment session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBookingNotFound
	}

	return nil
}
