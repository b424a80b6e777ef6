package booking

import (
	"reflect"
	"testing"
	"time"

	"github.com/spacely/spacely-api/internal/domain/space"
)

var farPast = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func TestAvailableSlotsUsesWeekdayWindow(t *testing.T) {
	schedule := space.WeeklySchedule{
		"monday": {Start: "10:00", End: "14:00"},
		"friday": {Start: "08:00", End: "12:00"},
	}
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	got := AvailableSlots(schedule, monday, nil, farPast)
	want := []string{"10:00", "11:00", "12:00", "13:00"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestAvailableSlotsFallsBackToFirstConfiguredDay(t *testing.T) {
	// Sunday has no window; wednesday's window is the first configured
	// one scanning from monday.
	schedule := space.WeeklySchedule{
		"wednesday": {Start: "12:00", End: "15:00"},
		"saturday":  {Start: "08:00", End: "20:00"},
	}
	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)

	got := AvailableSlots(schedule, sunday, nil, farPast)
	want := []string{"12:00", "13:00", "14:00"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestAvailableSlotsDefaultsWithEmptySchedule(t *testing.T) {
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	got := AvailableSlots(space.WeeklySchedule{}, day, nil, farPast)
	want := []string{"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if got := AvailableSlots(nil, day, nil, farPast); !reflect.DeepEqual(got, want) {
		t.Errorf("nil schedule: got %v, want %v", got, want)
	}
}

func TestAvailableSlotsMalformedWindowClosesDay(t *testing.T) {
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	// A present-but-broken window never inherits the default hours.
	schedules := []space.WeeklySchedule{
		{"monday": {Start: "soon", End: "later"}},
		{"monday": {Start: "17:00", End: "09:00"}},
		{"monday": {Start: "12:00", End: "12:00"}},
	}
	for _, schedule := range schedules {
		if got := AvailableSlots(schedule, monday, nil, farPast); len(got) != 0 {
			t.Errorf("schedule %v: got %v, want no slots", schedule, got)
		}
	}

	// A well-formed window on another day does not rescue the broken one.
	mixed := space.WeeklySchedule{
		"monday":  {Start: "17:00", End: "09:00"},
		"tuesday": {Start: "09:00", End: "17:00"},
	}
	if got := AvailableSlots(mixed, monday, nil, farPast); len(got) != 0 {
		t.Errorf("mixed schedule: got %v, want no slots", got)
	}

	// The Monday-first fallback is held to the same standard.
	badFallback := space.WeeklySchedule{
		"wednesday": {Start: "15:00", End: "10:00"},
	}
	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	if got := AvailableSlots(badFallback, sunday, nil, farPast); len(got) != 0 {
		t.Errorf("fallback schedule: got %v, want no slots", got)
	}
}

func TestAvailableSlotsExcludesUnavailable(t *testing.T) {
	schedule := space.WeeklySchedule{
		"monday": {Start: "09:00", End: "13:00"},
	}
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	unavailable := map[string]bool{"10:00": true, "12:00": true}

	got := AvailableSlots(schedule, monday, unavailable, farPast)
	want := []string{"09:00", "11:00"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestAvailableSlotsCutsPastHoursToday(t *testing.T) {
	schedule := space.WeeklySchedule{
		"monday": {Start: "09:00", End: "17:00"},
	}
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 7, 13, 30, 0, 0, time.UTC)

	got := AvailableSlots(schedule, monday, nil, now)
	want := []string{"14:00", "15:00", "16:00"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	// A different day is untouched by the clock.
	tuesday := monday.AddDate(0, 0, 1)
	if got := AvailableSlots(schedule, tuesday, nil, now); len(got) != 8 {
		t.Errorf("future day trimmed: %v", got)
	}
}

func TestAvailableSlotsKeepsSlotStartingNow(t *testing.T) {
	schedule := space.WeeklySchedule{
		"monday": {Start: "09:00", End: "17:00"},
	}
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	// Exactly on the hour the slot is still in the future.
	onTheHour := time.Date(2026, 9, 7, 14, 0, 0, 0, time.UTC)
	got := AvailableSlots(schedule, monday, nil, onTheHour)
	want := []string{"14:00", "15:00", "16:00"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("at 14:00:00: got %v, want %v", got, want)
	}

	// One second later it has started and drops off.
	justAfter := onTheHour.Add(time.Second)
	got = AvailableSlots(schedule, monday, nil, justAfter)
	want = []string{"15:00", "16:00"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("at 14:00:01: got %v, want %v", got, want)
	}
}

func TestAvailableSlotsAlignsOddOpening(t *testing.T) {
	schedule := space.WeeklySchedule{
		"monday": {Start: "09:30", End: "12:30"},
	}
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	// First whole hour inside the window is 10:00; 12:00+1h overruns close.
	got := AvailableSlots(schedule, monday, nil, farPast)
	want := []string{"10:00", "11:00"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestHourStarts(t *testing.T) {
	cases := []struct {
		start, end string
		want       []string
	}{
		{"10:00", "13:00", []string{"10:00", "11:00", "12:00"}},
		{"10:00", "11:00", []string{"10:00"}},
		{"10:30", "12:00", []string{"10:00", "11:00"}},
		{"12:00", "10:00", nil},
		{"12:00", "12:00", nil},
		{"junk", "13:00", nil},
	}

	for _, tc := range cases {
		if got := HourStarts(tc.start, tc.end); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("HourStarts(%q, %q) = %v, want %v", tc.start, tc.end, got, tc.want)
		}
	}
}
