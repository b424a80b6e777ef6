package booking

import "testing"

func TestQuote(t *testing.T) {
	cases := []struct {
		name       string
		hours      float64
		rate       float64
		subtotal   float64
		serviceFee float64
		total      float64
	}{
		{"two and a half hours", 2.5, 100, 250, 38, 288},
		{"whole hours", 3, 80, 240, 36, 276},
		{"fee rounds down", 1, 90, 90, 14, 104},
		{"fee rounds half up", 1, 50, 50, 8, 58},
		{"cents in subtotal", 1.5, 33.33, 50, 8, 58},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := Quote(tc.hours, tc.rate)
			if q.Subtotal != tc.subtotal {
				t.Errorf("subtotal = %v, want %v", q.Subtotal, tc.subtotal)
			}
			if q.ServiceFee != tc.serviceFee {
				t.Errorf("service fee = %v, want %v", q.ServiceFee, tc.serviceFee)
			}
			if q.Total != tc.total {
				t.Errorf("total = %v, want %v", q.Total, tc.total)
			}
		})
	}
}

func TestQuoteNonPositiveHours(t *testing.T) {
	for _, hours := range []float64{0, -1} {
		q := Quote(hours, 100)
		if q.Subtotal != 0 || q.ServiceFee != 0 || q.Total != 0 {
			t.Errorf("Quote(%v, 100) = %+v, want zero quote", hours, q)
		}
	}
}

func TestRangeHours(t *testing.T) {
	cases := []struct {
		start, end string
		want       float64
	}{
		{"10:00", "12:00", 2},
		{"10:00", "12:30", 2.5},
		{"10:15", "10:45", 0.5},
		{"12:00", "10:00", 0},
		{"12:00", "12:00", 0},
		{"", "12:00", 0},
	}

	for _, tc := range cases {
		if got := RangeHours(tc.start, tc.end); got != tc.want {
			t.Errorf("RangeHours(%q, %q) = %v, want %v", tc.start, tc.end, got, tc.want)
		}
	}
}
