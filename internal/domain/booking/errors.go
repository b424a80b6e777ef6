package booking

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNoTimeSelected     = errors.New("please select a date and time")
	ErrMalformedTimeRange = errors.New("end time must be after start time")
	ErrSlotUnavailable    = errors.New("the selected time is no longer available")
	ErrSlotTaken          = errors.New("someone just booked this time")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrNotBookingOwner    = errors.New("you can only manage your own bookings")
	ErrCannotCancel       = errors.New("this booking can no longer be cancelled")
	ErrPaymentSession     = errors.New("payment session could not be created")
	ErrAmountMismatch     = errors.New("webhook amount does not match booking total")
)

// PaymentSessionError reports a booking that was persisted but whose
// payment session failed. The booking stays pending; callers retry the
// session without creating a second booking.
type PaymentSessionError struct {
	BookingID uuid.UUID
	Err       error
}

func (e *PaymentSessionError) Error() string {
	return fmt.Sprintf("payment session for booking %s: %v", e.BookingID, e.Err)
}

func (e *PaymentSessionError) Unwrap() error {
	return ErrPaymentSession
}
