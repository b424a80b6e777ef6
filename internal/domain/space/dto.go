package space

import (
	"time"

	"github.com/google/uuid"
)

// CreateSpaceRequest represents space creation payload
type CreateSpaceRequest struct {
	Title        string         `json:"title" validate:"required,min=3,max=140"`
	Description  string         `json:"description" validate:"max=4000"`
	Category     string         `json:"category" validate:"max=60"`
	Street       string         `json:"street" validate:"required,max=200"`
	City         string         `json:"city" validate:"required,max=100"`
	Country      string         `json:"country" validate:"required,max=100"`
	Latitude     *float64       `json:"latitude"`
	Longitude    *float64       `json:"longitude"`
	Capacity     int            `json:"capacity" validate:"required,gte=1,lte=1000"`
	PricePerHour float64        `json:"price_per_hour" validate:"required,gt=0"`
	Currency     string         `json:"currency" validate:"required,currency"`
	Amenities    []string       `json:"amenities" validate:"max=50"`
	Photos       []string       `json:"photos" validate:"max=20,dive,url"`
	ServiceHours WeeklySchedule `json:"service_hours"`
}

// UpdateSpaceRequest represents space update payload; nil fields are unchanged
type UpdateSpaceRequest struct {
	Title        *string         `json:"title" validate:"omitempty,min=3,max=140"`
	Description  *string         `json:"description" validate:"omitempty,max=4000"`
	Category     *string         `json:"category" validate:"omitempty,max=60"`
	Street       *string         `json:"street" validate:"omitempty,max=200"`
	City         *string         `json:"city" validate:"omitempty,max=100"`
	Country      *string         `json:"country" validate:"omitempty,max=100"`
	Latitude     *float64        `json:"latitude"`
	Longitude    *float64        `json:"longitude"`
	Capacity     *int            `json:"capacity" validate:"omitempty,gte=1,lte=1000"`
	PricePerHour *float64        `json:"price_per_hour" validate:"omitempty,gt=0"`
	Currency     *string         `json:"currency" validate:"omitempty,currency"`
	Amenities    []string        `json:"amenities" validate:"omitempty,max=50"`
	Photos       []string        `json:"photos" validate:"omitempty,max=20,dive,url"`
	ServiceHours *WeeklySchedule `json:"service_hours"`
}

// BlockHourRequest represents blocked hour creation payload
type BlockHourRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,hhmm"`
	Reason    string `json:"reason" validate:"max=200"`
}

// SpaceResponse is the public space representation
type SpaceResponse struct {
	ID           uuid.UUID      `json:"id"`
	HostID       uuid.UUID      `json:"host_id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Category     string         `json:"category"`
	Street       string         `json:"street"`
	City         string         `json:"city"`
	Country      string         `json:"country"`
	Latitude     *float64       `json:"latitude,omitempty"`
	Longitude    *float64       `json:"longitude,omitempty"`
	Capacity     int            `json:"capacity"`
	PricePerHour float64        `json:"price_per_hour"`
	Currency     string         `json:"currency"`
	Amenities    []string       `json:"amenities"`
	Photos       []string       `json:"photos"`
	ServiceHours WeeklySchedule `json:"service_hours"`
	Status       Status         `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
}

// BlockedHourResponse is the public blocked hour representation
type BlockedHourResponse struct {
	ID        uuid.UUID `json:"id"`
	SpaceID   uuid.UUID `json:"space_id"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	Reason    string    `json:"reason,omitempty"`
}

// ToResponse converts a Space to its public representation
func ToResponse(s *Space) SpaceResponse {
	resp := SpaceResponse{
		ID:           s.ID,
		HostID:       s.HostID,
		Title:        s.Title,
		Description:  s.Description,
		Category:     s.Category,
		Street:       s.Street,
		City:         s.City,
		Country:      s.Country,
		Capacity:     s.Capacity,
		PricePerHour: s.PricePerHour,
		Currency:     s.Currency,
		Amenities:    s.Amenities,
		Photos:       s.Photos,
		ServiceHours: s.AvailabilityHours,
		Status:       s.Status,
		CreatedAt:    s.CreatedAt,
	}
	if s.Latitude.Valid {
		lat := s.Latitude.Float64
		resp.Latitude = &lat
	}
	if s.Longitude.Valid {
		lng := s.Longitude.Float64
		resp.Longitude = &lng
	}
	if resp.Amenities == nil {
		resp.Amenities = []string{}
	}
	if resp.Photos == nil {
		resp.Photos = []string{}
	}
	if resp.ServiceHours == nil {
		resp.ServiceHours = WeeklySchedule{}
	}
	return resp
}

// ToBlockedHourResponse converts a BlockedHour to its public representation
func ToBlockedHourResponse(b *BlockedHour) BlockedHourResponse {
	return BlockedHourResponse{
		ID:        b.ID,
		SpaceID:   b.SpaceID,
		Date:      b.BlockedDate.Format("2006-01-02"),
		StartTime: b.StartTime,
		Reason:    b.Reason.String,
	}
}
