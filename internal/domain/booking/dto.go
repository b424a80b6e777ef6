package booking

import (
	"time"

	"github.com/google/uuid"
)

// SubmitRequest represents booking submission payload. Empty time
// fields are allowed at the transport level so the service can answer
// with a friendly prompt instead of a schema error.
type SubmitRequest struct {
	SpaceID     uuid.UUID `json:"space_id" validate:"required"`
	Date        string    `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	GuestsCount int       `json:"guests_count" validate:"omitempty,gte=1"`
}

// QuoteRequest represents price quote payload
type QuoteRequest struct {
	SpaceID   uuid.UUID `json:"space_id" validate:"required"`
	StartTime string    `json:"start_time" validate:"required,hhmm"`
	EndTime   string    `json:"end_time" validate:"required,hhmm"`
}

// BookingResponse is the public booking representation
type BookingResponse struct {
	ID          uuid.UUID `json:"id"`
	SpaceID     uuid.UUID `json:"space_id"`
	Date        string    `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	GuestsCount int       `json:"guests_count"`
	Hours       float64   `json:"hours"`
	Subtotal    float64   `json:"subtotal"`
	ServiceFee  float64   `json:"service_fee"`
	Total       float64   `json:"total"`
	Currency    string    `json:"currency"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// SubmitResponse carries the created booking plus the payment redirect
type SubmitResponse struct {
	Booking    BookingResponse `json:"booking"`
	PaymentURL string          `json:"payment_url"`
}

// AvailabilityResponse lists bookable hour starts for one day
type AvailabilityResponse struct {
	SpaceID uuid.UUID `json:"space_id"`
	Date    string    `json:"date"`
	Slots   []string  `json:"slots"`
}

// ToResponse converts a Booking to its public representation
func ToResponse(b *Booking) BookingResponse {
	return BookingResponse{
		ID:          b.ID,
		SpaceID:     b.SpaceID,
		Date:        b.StartDate.Format("2006-01-02"),
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		GuestsCount: b.GuestsCount,
		Hours:       b.Hours,
		Subtotal:    b.Subtotal,
		ServiceFee:  b.ServiceFee,
		Total:       b.Total,
		Currency:    b.Currency,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
	}
}
