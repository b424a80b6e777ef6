package space

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/spacely/spacely-api/internal/pkg/validator"
)

// Notifier receives a signal whenever a space's bookable hours change.
type Notifier interface {
	AvailabilityChanged(ctx context.Context, spaceID uuid.UUID, date string)
}

// Service handles space business logic
type Service struct {
	spaces   Repository
	blocked  BlockedHourRepository
	notifier Notifier
}

// NewService creates new space service. notifier may be nil.
func NewService(spaces Repository, blocked BlockedHourRepository, notifier Notifier) *Service {
	return &Service{
		spaces:   spaces,
		blocked:  blocked,
		notifier: notifier,
	}
}

// Create creates a new space owned by hostID. Spaces created directly
// through the API start active; the listing wizard is the other entry point.
func (s *Service) Create(ctx context.Context, hostID uuid.UUID, req *CreateSpaceRequest) (*Space, error) {
	space := &Space{
		ID:                uuid.New(),
		HostID:            hostID,
		Title:             req.Title,
		Description:       req.Description,
		Category:          req.Category,
		Street:            req.Street,
		City:              req.City,
		Country:           req.Country,
		Capacity:          req.Capacity,
		PricePerHour:      req.PricePerHour,
		Currency:          req.Currency,
		Amenities:         req.Amenities,
		Photos:            req.Photos,
		AvailabilityHours: req.ServiceHours,
		Status:            StatusActive,
	}
	if req.Latitude != nil {
		space.Latitude = sql.NullFloat64{Float64: *req.Latitude, Valid: true}
	}
	if req.Longitude != nil {
		space.Longitude = sql.NullFloat64{Float64: *req.Longitude, Valid: true}
	}
	if space.AvailabilityHours == nil {
		space.AvailabilityHours = WeeklySchedule{}
	}

	if err := s.spaces.Create(ctx, space); err != nil {
		return nil, err
	}

	log.Info().
		Str("space_id", space.ID.String()).
		Str("host_id", hostID.String()).
		Msg("space created")

	return space, nil
}

// Get returns a space by id
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Space, error) {
	return s.spaces.GetByID(ctx, id)
}

// List returns spaces matching the filter. Only active spaces are listed
// unless the filter says otherwise.
func (s *Service) List(ctx context.Context, filter *Filter, pagination *Pagination) ([]*Space, int, error) {
	if filter == nil {
		filter = &Filter{}
	}
	if filter.Status == nil {
		active := StatusActive
		filter.Status = &active
	}
	return s.spaces.List(ctx, filter, pagination)
}

// ListMine returns all spaces owned by hostID regardless of status
func (s *Service) ListMine(ctx context.Context, hostID uuid.UUID, pagination *Pagination) ([]*Space, int, error) {
	return s.spaces.ListByHost(ctx, hostID, pagination)
}

// Update applies a partial update to a space owned by userID
func (s *Service) Update(ctx context.Context, userID, spaceID uuid.UUID, req *UpdateSpaceRequest) (*Space, error) {
	space, err := s.spaces.GetByID(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	if !space.CanBeEditedBy(userID) {
		return nil, ErrNotSpaceOwner
	}

	scheduleChanged := false

	if req.Title != nil {
		space.Title = *req.Title
	}
	if req.Description != nil {
		space.Description = *req.Description
	}
	if req.Category != nil {
		space.Category = *req.Category
	}
	if req.Street != nil {
		space.Street = *req.Street
	}
	if req.City != nil {
		space.City = *req.City
	}
	if req.Country != nil {
		space.Country = *req.Country
	}
	if req.Latitude != nil {
		space.Latitude = sql.NullFloat64{Float64: *req.Latitude, Valid: true}
	}
	if req.Longitude != nil {
		space.Longitude = sql.NullFloat64{Float64: *req.Longitude, Valid: true}
	}
	if req.Capacity != nil {
		space.Capacity = *req.Capacity
	}
	if req.PricePerHour != nil {
		space.PricePerHour = *req.PricePerHour
	}
	if req.Currency != nil {
		space.Currency = *req.Currency
	}
	if req.Amenities != nil {
		space.Amenities = req.Amenities
	}
	if req.Photos != nil {
		space.Photos = req.Photos
	}
	if req.ServiceHours != nil {
		space.AvailabilityHours = *req.ServiceHours
		scheduleChanged = true
	}

	if err := s.spaces.Update(ctx, space); err != nil {
		return nil, err
	}

	if scheduleChanged && s.notifier != nil {
		s.notifier.AvailabilityChanged(ctx, space.ID, "")
	}

	return space, nil
}

// Archive hides a space from search and new bookings
func (s *Service) Archive(ctx context.Context, userID, spaceID uuid.UUID) error {
	space, err := s.spaces.GetByID(ctx, spaceID)
	if err != nil {
		return err
	}
	if !space.CanBeEditedBy(userID) {
		return ErrNotSpaceOwner
	}
	return s.spaces.UpdateStatus(ctx, spaceID, StatusArchived)
}

// Activate makes a draft or archived space bookable again
func (s *Service) Activate(ctx context.Context, userID, spaceID uuid.UUID) error {
	space, err := s.spaces.GetByID(ctx, spaceID)
	if err != nil {
		return err
	}
	if !space.CanBeEditedBy(userID) {
		return ErrNotSpaceOwner
	}
	return s.spaces.UpdateStatus(ctx, spaceID, StatusActive)
}

// BlockHour marks a single hour slot as unavailable for booking
func (s *Service) BlockHour(ctx context.Context, userID, spaceID uuid.UUID, req *BlockHourRequest) (*BlockedHour, error) {
	space, err := s.spaces.GetByID(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	if !space.CanBeEditedBy(userID) {
		return nil, ErrNotSpaceOwner
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidTime
	}
	if !validator.IsHHMM(req.StartTime) {
		return nil, ErrInvalidTime
	}

	blocked := &BlockedHour{
		ID:          uuid.New(),
		SpaceID:     spaceID,
		BlockedDate: date,
		StartTime:   req.StartTime,
	}
	if req.Reason != "" {
		blocked.Reason = sql.NullString{String: req.Reason, Valid: true}
	}

	if err := s.blocked.Create(ctx, blocked); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.AvailabilityChanged(ctx, spaceID, req.Date)
	}

	return blocked, nil
}

// UnblockHour removes a blocked hour
func (s *Service) UnblockHour(ctx context.Context, userID, spaceID, blockedID uuid.UUID) error {
	space, err := s.spaces.GetByID(ctx, spaceID)
	if err != nil {
		return err
	}
	if !space.CanBeEditedBy(userID) {
		return ErrNotSpaceOwner
	}

	blocked, err := s.blocked.GetByID(ctx, blockedID)
	if err != nil {
		return err
	}
	if blocked.SpaceID != spaceID {
		return ErrBlockedHourNotFound
	}

	if err := s.blocked.Delete(ctx, blockedID); err != nil {
		return err
	}

	if s.notifier != nil {
		s.notifier.AvailabilityChanged(ctx, spaceID, blocked.BlockedDate.Format("2006-01-02"))
	}

	return nil
}

// BlockedStarts returns the blocked hour starts for a space on a date.
// Used by availability resolution, so it skips ownership checks.
func (s *Service) BlockedStarts(ctx context.Context, spaceID uuid.UUID, date time.Time) ([]string, error) {
	blocked, err := s.blocked.ListForDay(ctx, spaceID, date)
	if err != nil {
		return nil, err
	}
	starts := make([]string, 0, len(blocked))
	for _, b := range blocked {
		starts = append(starts, b.StartTime)
	}
	return starts, nil
}

// ListBlockedHours returns blocked hours for a space owned by userID.
// With a date it returns that day only; otherwise everything upcoming.
func (s *Service) ListBlockedHours(ctx context.Context, userID, spaceID uuid.UUID, dateStr string) ([]*BlockedHour, error) {
	space, err := s.spaces.GetByID(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	if !space.CanBeEditedBy(userID) {
		return nil, ErrNotSpaceOwner
	}

	if dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, ErrInvalidTime
		}
		return s.blocked.ListForDay(ctx, spaceID, date)
	}

	return s.blocked.ListForSpace(ctx, spaceID, time.Now().AddDate(0, 0, -1))
}
