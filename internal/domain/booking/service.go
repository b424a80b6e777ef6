package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/spacely/spacely-api/internal/domain/space"
	"github.com/spacely/spacely-api/internal/pkg/paygate"
)

// SpaceDirectory is the slice of the space domain bookings need.
type SpaceDirectory interface {
	GetSpace(ctx context.Context, id uuid.UUID) (*space.Space, error)
	BlockedStarts(ctx context.Context, spaceID uuid.UUID, date time.Time) ([]string, error)
}

// PaymentGateway creates hosted checkout sessions.
type PaymentGateway interface {
	CreateSession(ctx context.Context, req paygate.SessionRequest) (*paygate.SessionResponse, error)
}

// Notifier receives a signal whenever a space's bookable hours change.
type Notifier interface {
	AvailabilityChanged(ctx context.Context, spaceID uuid.UUID, date string)
}

// Config holds service wiring that is not a collaborator.
type Config struct {
	ReturnURL string
	CancelURL string
}

// Service handles booking business logic
type Service struct {
	bookings Repository
	spaces   SpaceDirectory
	payments PaymentGateway
	notifier Notifier
	config   Config
	now      func() time.Time
}

// NewService creates new booking service. payments and notifier may be nil.
func NewService(bookings Repository, spaces SpaceDirectory, payments PaymentGateway, notifier Notifier, config Config) *Service {
	return &Service{
		bookings: bookings,
		spaces:   spaces,
		payments: payments,
		notifier: notifier,
		config:   config,
		now:      time.Now,
	}
}

// Availability returns the bookable hour starts for a space on a date.
func (s *Service) Availability(ctx context.Context, spaceID uuid.UUID, dateStr string) (*AvailabilityResponse, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, ErrMalformedTimeRange
	}

	sp, err := s.spaces.GetSpace(ctx, spaceID)
	if err != nil {
		return nil, err
	}

	slots, err := s.availableSlots(ctx, sp, date)
	if err != nil {
		return nil, err
	}

	return &AvailabilityResponse{
		SpaceID: spaceID,
		Date:    dateStr,
		Slots:   slots,
	}, nil
}

// QuoteFor prices a time range against a space's hourly rate.
func (s *Service) QuoteFor(ctx context.Context, spaceID uuid.UUID, startTime, endTime string) (*PriceQuote, error) {
	sp, err := s.spaces.GetSpace(ctx, spaceID)
	if err != nil {
		return nil, err
	}

	quote := Quote(RangeHours(startTime, endTime), sp.PricePerHour)
	return &quote, nil
}

// Submit validates and persists a booking, then opens a payment
// session for it. The slot is revalidated against fresh reads right
// before the insert; the database unique index settles any race that
// slips through. If the payment session fails the booking stays
// pending and the caller gets its id back for retry.
func (s *Service) Submit(ctx context.Context, guestID uuid.UUID, req *SubmitRequest) (*SubmitResponse, error) {
	if req.Date == "" || req.StartTime == "" || req.EndTime == "" {
		return nil, ErrNoTimeSelected
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrNoTimeSelected
	}

	// A booking claims exactly one slot: an hour-aligned 1-hour span.
	from, err := parseClock(req.StartTime)
	if err != nil {
		return nil, ErrMalformedTimeRange
	}
	to, err := parseClock(req.EndTime)
	if err != nil || from%60 != 0 || to-from != 60 {
		return nil, ErrMalformedTimeRange
	}

	sp, err := s.spaces.GetSpace(ctx, req.SpaceID)
	if err != nil {
		return nil, err
	}
	if !sp.IsActive() {
		return nil, space.ErrSpaceNotActive
	}

	available, err := s.availableSlots(ctx, sp, date)
	if err != nil {
		return nil, err
	}
	open := make(map[string]bool, len(available))
	for _, slot := range available {
		open[slot] = true
	}
	for _, hour := range HourStarts(req.StartTime, req.EndTime) {
		if !open[hour] {
			return nil, ErrSlotUnavailable
		}
	}

	quote := Quote(RangeHours(req.StartTime, req.EndTime), sp.PricePerHour)

	guests := req.GuestsCount
	if guests < 1 {
		guests = 1
	}

	booking := &Booking{
		ID:          uuid.New(),
		SpaceID:     sp.ID,
		GuestID:     guestID,
		StartDate:   date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		GuestsCount: guests,
		Hours:       quote.Hours,
		Subtotal:    quote.Subtotal,
		ServiceFee:  quote.ServiceFee,
		Total:       quote.Total,
		Currency:    sp.Currency,
		Status:      StatusPending,
		CreatedAt:   s.now(),
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	log.Info().
		Str("booking_id", booking.ID.String()).
		Str("space_id", sp.ID.String()).
		Str("date", req.Date).
		Str("start", req.StartTime).
		Msg("booking created")

	if s.notifier != nil {
		s.notifier.AvailabilityChanged(ctx, sp.ID, req.Date)
	}

	session, err := s.createPaymentSession(ctx, booking, sp)
	if err != nil {
		return nil, &PaymentSessionError{BookingID: booking.ID, Err: err}
	}

	return &SubmitResponse{
		Booking:    ToResponse(booking),
		PaymentURL: session.SessionURL,
	}, nil
}

// RetryPayment opens a fresh payment session for a pending booking
// whose first session failed.
func (s *Service) RetryPayment(ctx context.Context, userID, bookingID uuid.UUID) (*SubmitResponse, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.GuestID != userID {
		return nil, ErrNotBookingOwner
	}
	if booking.Status != StatusPending {
		return nil, ErrCannotCancel
	}

	sp, err := s.spaces.GetSpace(ctx, booking.SpaceID)
	if err != nil {
		return nil, err
	}

	session, err := s.createPaymentSession(ctx, booking, sp)
	if err != nil {
		return nil, &PaymentSessionError{BookingID: booking.ID, Err: err}
	}

	return &SubmitResponse{
		Booking:    ToResponse(booking),
		PaymentURL: session.SessionURL,
	}, nil
}

func (s *Service) createPaymentSession(ctx context.Context, booking *Booking, sp *space.Space) (*paygate.SessionResponse, error) {
	if s.payments == nil {
		return nil, fmt.Errorf("payment gateway not configured")
	}

	session, err := s.payments.CreateSession(ctx, paygate.SessionRequest{
		BookingID:   booking.ID.String(),
		SpaceID:     sp.ID.String(),
		Amount:      booking.Total,
		Currency:    booking.Currency,
		Description: fmt.Sprintf("%s on %s %s-%s", sp.Title, booking.StartDate.Format("2006-01-02"), booking.StartTime, booking.EndTime),
		ReturnURL:   s.config.ReturnURL,
		CancelURL:   s.config.CancelURL,
	})
	if err != nil {
		log.Error().
			Err(err).
			Str("booking_id", booking.ID.String()).
			Msg("payment session creation failed")
		return nil, err
	}

	if err := s.bookings.SetPaymentSession(ctx, booking.ID, session.SessionID); err != nil {
		return nil, err
	}
	booking.PaymentSessionID.String = session.SessionID
	booking.PaymentSessionID.Valid = true

	return session, nil
}

// ConfirmPayment applies a gateway settlement result to its booking.
// The reported amount must match what the booking was priced at.
func (s *Service) ConfirmPayment(ctx context.Context, sessionID, gatewayStatus, rawAmount string) error {
	booking, err := s.bookings.GetByPaymentSession(ctx, sessionID)
	if err != nil {
		return err
	}

	reported, err := paygate.ParseAmount(rawAmount)
	if err != nil {
		return ErrAmountMismatch
	}
	expected, err := paygate.ParseAmount(fmt.Sprintf("%.2f", booking.Total))
	if err != nil {
		return ErrAmountMismatch
	}
	if !paygate.AmountsEqual(expected, reported) {
		log.Warn().
			Str("booking_id", booking.ID.String()).
			Str("reported", rawAmount).
			Float64("expected", booking.Total).
			Msg("webhook amount mismatch")
		return ErrAmountMismatch
	}

	switch gatewayStatus {
	case "paid":
		if booking.Status != StatusPending {
			return nil
		}
		return s.bookings.UpdateStatus(ctx, booking.ID, StatusConfirmed)
	case "cancelled", "expired":
		if booking.Status != StatusPending {
			return nil
		}
		if err := s.bookings.UpdateStatus(ctx, booking.ID, StatusCancelled); err != nil {
			return err
		}
		if s.notifier != nil {
			s.notifier.AvailabilityChanged(ctx, booking.SpaceID, booking.StartDate.Format("2006-01-02"))
		}
		return nil
	default:
		log.Warn().Str("status", gatewayStatus).Msg("ignoring unknown gateway status")
		return nil
	}
}

// Cancel cancels a booking on behalf of its guest, releasing the slot.
func (s *Service) Cancel(ctx context.Context, userID, bookingID uuid.UUID) error {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if !booking.CanBeCancelledBy(userID) {
		return ErrNotBookingOwner
	}
	if !booking.Blocks() {
		return ErrCannotCancel
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, StatusCancelled); err != nil {
		return err
	}

	if s.notifier != nil {
		s.notifier.AvailabilityChanged(ctx, booking.SpaceID, booking.StartDate.Format("2006-01-02"))
	}

	return nil
}

// Get returns a booking to its guest or to the host of its space.
func (s *Service) Get(ctx context.Context, userID, bookingID uuid.UUID) (*Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.GuestID != userID {
		sp, err := s.spaces.GetSpace(ctx, booking.SpaceID)
		if err != nil || sp.HostID != userID {
			return nil, ErrNotBookingOwner
		}
	}
	return booking, nil
}

// ListMine returns the caller's bookings, newest first
func (s *Service) ListMine(ctx context.Context, userID uuid.UUID, page, limit int) ([]*Booking, int, error) {
	return s.bookings.ListByGuest(ctx, userID, limit, (page-1)*limit)
}

// ListForSpace returns the live bookings on a space for one day, for
// that space's host.
func (s *Service) ListForSpace(ctx context.Context, hostID, spaceID uuid.UUID, dateStr string) ([]*Booking, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, ErrMalformedTimeRange
	}

	sp, err := s.spaces.GetSpace(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	if sp.HostID != hostID {
		return nil, space.ErrNotSpaceOwner
	}

	return s.bookings.ListForSpaceDay(ctx, spaceID, date)
}

func (s *Service) availableSlots(ctx context.Context, sp *space.Space, date time.Time) ([]string, error) {
	unavailable := make(map[string]bool)

	blocked, err := s.spaces.BlockedStarts(ctx, sp.ID, date)
	if err != nil {
		return nil, err
	}
	for _, start := range blocked {
		unavailable[start] = true
	}

	bookings, err := s.bookings.ListForSpaceDay(ctx, sp.ID, date)
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		for _, hour := range HourStarts(b.StartTime, b.EndTime) {
			unavailable[hour] = true
		}
	}

	return AvailableSlots(sp.AvailabilityHours, date, unavailable, s.now()), nil
}
