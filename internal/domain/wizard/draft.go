package wizard

import (
	"time"

	"github.com/spacely/spacely-api/internal/domain/space"
)

// BasicInfo is the step 1 payload: what the space is.
type BasicInfo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Address is the step 2 payload: where the space is.
type Address struct {
	Street    string   `json:"street"`
	City      string   `json:"city"`
	Country   string   `json:"country"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Details is the step 3 payload: capacity, amenities, and opening hours.
type Details struct {
	Capacity     int                  `json:"capacity"`
	Amenities    []string             `json:"amenities"`
	ServiceHours space.WeeklySchedule `json:"service_hours"`
}

// Media is the step 4 payload: photo URLs from the upload endpoint.
type Media struct {
	URLs []string `json:"urls"`
}

// Pricing is the step 5 payload.
type Pricing struct {
	PricePerHour float64 `json:"price_per_hour"`
	Currency     string  `json:"currency"`
}

// Draft is the in-progress listing a host builds step by step. It
// lives in Redis until published or expired; it never touches the
// spaces table.
type Draft struct {
	BasicInfo BasicInfo `json:"basic_info"`
	Address   Address   `json:"address"`
	Details   Details   `json:"details"`
	Media     Media     `json:"media"`
	Pricing   Pricing   `json:"pricing"`

	// FurthestStep is the highest step the host may open. Steps past
	// it are locked until the ones before them are submitted.
	FurthestStep int `json:"furthest_step"`

	UpdatedAt time.Time `json:"updated_at"`
}

// NewDraft returns a fresh draft with defaults. Stored drafts are
// unmarshalled over these defaults, so fields added later hydrate
// sensibly for old drafts.
func NewDraft() *Draft {
	return &Draft{
		Details:      Details{Amenities: []string{}, ServiceHours: space.WeeklySchedule{}},
		Media:        Media{URLs: []string{}},
		Pricing:      Pricing{Currency: "USD"},
		FurthestStep: 1,
	}
}

// State is what the wizard UI renders: the draft plus its gate.
type State struct {
	Draft        *Draft     `json:"draft"`
	Steps        []StepInfo `json:"steps"`
	FurthestStep int        `json:"furthest_step"`
	TotalSteps   int        `json:"total_steps"`
}
