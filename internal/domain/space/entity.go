package space

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Status represents space listing status (matches space_status enum)
type Status string

const (
	StatusDraft    Status = "draft"
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// Space represents a rentable space listing (matches spaces table)
type Space struct {
	ID     uuid.UUID `db:"id"`
	HostID uuid.UUID `db:"host_id"`

	Title       string `db:"title"`
	Description string `db:"description"`
	Category    string `db:"category"`

	// Location
	Street    string          `db:"street"`
	City      string          `db:"city"`
	Country   string          `db:"country"`
	Latitude  sql.NullFloat64 `db:"latitude"`
	Longitude sql.NullFloat64 `db:"longitude"`

	Capacity     int     `db:"capacity"`
	PricePerHour float64 `db:"price_per_hour"`
	Currency     string  `db:"currency"`

	Amenities pq.StringArray `db:"amenities"`
	Photos    pq.StringArray `db:"photos"`

	// Weekly opening hours; absent days are closed.
	AvailabilityHours WeeklySchedule `db:"availability_hours"`

	Status Status `db:"status"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// IsActive returns true if the space accepts bookings
func (s *Space) IsActive() bool {
	return s.Status == StatusActive
}

// CanBeEditedBy checks if user can edit this space
func (s *Space) CanBeEditedBy(userID uuid.UUID) bool {
	return s.HostID == userID
}

// BlockedHour represents a host-declared unavailable slot (matches blocked_hours table).
// It blocks its slot regardless of booking state.
type BlockedHour struct {
	ID          uuid.UUID      `db:"id"`
	SpaceID     uuid.UUID      `db:"space_id"`
	BlockedDate time.Time      `db:"blocked_date"`
	StartTime   string         `db:"start_time"`
	Reason      sql.NullString `db:"reason"`
	CreatedAt   time.Time      `db:"created_at"`
}
