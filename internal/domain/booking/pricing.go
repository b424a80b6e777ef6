package booking

import "math"

// ServiceFeeRate is the platform cut applied on top of the host's rate.
const ServiceFeeRate = 0.15

// PriceQuote breaks a booking total down for display and persistence.
type PriceQuote struct {
	Hours      float64 `json:"hours"`
	Subtotal   float64 `json:"subtotal"`
	ServiceFee float64 `json:"service_fee"`
	Total      float64 `json:"total"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Quote prices hours at ratePerHour. The subtotal keeps cents; the
// service fee rounds to the nearest whole unit. Non-positive hours
// price to zero.
func Quote(hours, ratePerHour float64) PriceQuote {
	if hours <= 0 {
		return PriceQuote{}
	}

	subtotal := round2(hours * ratePerHour)
	fee := math.Round(subtotal * ServiceFeeRate)
	return PriceQuote{
		Hours:      hours,
		Subtotal:   subtotal,
		ServiceFee: fee,
		Total:      round2(subtotal + fee),
	}
}

// RangeHours returns the duration of a [start, end) clock range in
// hours, or 0 when the range is malformed or inverted.
func RangeHours(start, end string) float64 {
	from, err := parseClock(start)
	if err != nil {
		return 0
	}
	to, err := parseClock(end)
	if err != nil || to <= from {
		return 0
	}
	return float64(to-from) / 60
}
