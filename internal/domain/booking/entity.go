package booking

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Status represents booking lifecycle state (matches booking_status enum)
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Booking represents a reservation of a space for a same-day time range
// (matches bookings table). Times are 24h "HH:MM" strings; the range is
// [StartTime, EndTime) on StartDate.
type Booking struct {
	ID      uuid.UUID `db:"id"`
	SpaceID uuid.UUID `db:"space_id"`
	GuestID uuid.UUID `db:"guest_id"`

	StartDate time.Time `db:"start_date"`
	StartTime string    `db:"start_time"`
	EndTime   string    `db:"end_time"`

	GuestsCount int `db:"guests_count"`

	Hours      float64 `db:"hours"`
	Subtotal   float64 `db:"subtotal"`
	ServiceFee float64 `db:"service_fee"`
	Total      float64 `db:"total"`
	Currency   string  `db:"currency"`

	Status           Status         `db:"status"`
	PaymentSessionID sql.NullString `db:"payment_session_id"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Blocks reports whether this booking keeps its slot unavailable.
// Cancelled and completed bookings release their hours.
func (b *Booking) Blocks() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCancelledBy checks if user may cancel this booking
func (b *Booking) CanBeCancelledBy(userID uuid.UUID) bool {
	return b.GuestID == userID
}
