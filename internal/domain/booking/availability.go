package booking

import (
	"fmt"
	"time"

	"github.com/spacely/spacely-api/internal/domain/space"
)

// Hours used when a space has no usable schedule at all.
const (
	defaultOpen  = "09:00"
	defaultClose = "17:00"
)

// parseClock converts a 24h "HH:MM" string to minutes since midnight.
func parseClock(s string) (int, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%2d:%2d", &hour, &minute); err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("parse clock %q: out of range", s)
	}
	return hour*60 + minute, nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// HourStarts expands a [start, end) range into the whole-hour starts it
// covers. A range that is not hour-aligned still claims every hour it
// touches. Malformed or inverted ranges expand to nothing.
func HourStarts(start, end string) []string {
	from, err := parseClock(start)
	if err != nil {
		return nil
	}
	to, err := parseClock(end)
	if err != nil || to <= from {
		return nil
	}

	var starts []string
	for m := (from / 60) * 60; m < to; m += 60 {
		starts = append(starts, formatClock(m))
	}
	return starts
}

// dayWindow resolves the open/close pair for a date. A day without its
// own window borrows the first configured window of the week; a space
// with no configured window at all falls back to standard business
// hours. A window that is present but malformed (unparseable bound or
// start >= end) closes the day: broken data yields zero slots, never a
// default full day.
func dayWindow(schedule space.WeeklySchedule, date time.Time) (int, int) {
	w, ok := schedule.Window(date)
	if !ok {
		w, ok = schedule.FirstWindow()
	}
	if !ok {
		openMin, _ := parseClock(defaultOpen)
		closeMin, _ := parseClock(defaultClose)
		return openMin, closeMin
	}

	openMin, errOpen := parseClock(w.Start)
	closeMin, errClose := parseClock(w.End)
	if errOpen != nil || errClose != nil || openMin >= closeMin {
		return 0, 0
	}
	return openMin, closeMin
}

// AvailableSlots returns the bookable hour starts for a space on a date.
// unavailable holds hour starts already claimed by bookings or blocked
// hours. Slots that start strictly before now are dropped when date is
// today in now's location; a slot starting exactly at now survives.
func AvailableSlots(schedule space.WeeklySchedule, date time.Time, unavailable map[string]bool, now time.Time) []string {
	openMin, closeMin := dayWindow(schedule, date)

	// First whole hour at or after opening.
	first := ((openMin + 59) / 60) * 60

	sameDay := date.Year() == now.Year() && date.YearDay() == now.YearDay()
	nowSeconds := now.Hour()*3600 + now.Minute()*60 + now.Second()

	slots := []string{}
	for m := first; m+60 <= closeMin; m += 60 {
		if sameDay && m*60 < nowSeconds {
			continue
		}
		start := formatClock(m)
		if unavailable[start] {
			continue
		}
		slots = append(slots, start)
	}
	return slots
}
