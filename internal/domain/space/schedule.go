package space

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DayWindow is the open/close pair for one weekday, 24h "HH:MM" strings.
type DayWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// IsSet reports whether both bounds are present.
func (w DayWindow) IsSet() bool {
	return w.Start != "" && w.End != ""
}

// WeeklySchedule maps lowercase weekday name to its opening window.
// Absent days are closed. Stored as JSONB.
type WeeklySchedule map[string]DayWindow

// WeekdayOrder is the fixed Monday-first day order used for fallback scans.
var WeekdayOrder = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// WeekdayKey returns the schedule key for a date.
func WeekdayKey(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// Window returns the window for a date's weekday.
func (s WeeklySchedule) Window(date time.Time) (DayWindow, bool) {
	w, ok := s[WeekdayKey(date)]
	return w, ok && w.IsSet()
}

// FirstWindow returns the first set window scanning Monday-first.
func (s WeeklySchedule) FirstWindow() (DayWindow, bool) {
	for _, day := range WeekdayOrder {
		if w, ok := s[day]; ok && w.IsSet() {
			return w, true
		}
	}
	return DayWindow{}, false
}

// Value implements driver.Valuer for JSONB storage
func (s WeeklySchedule) Value() (driver.Value, error) {
	if s == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for JSONB storage
func (s *WeeklySchedule) Scan(src interface{}) error {
	if src == nil {
		*s = WeeklySchedule{}
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported schedule type %T", src)
	}

	return json.Unmarshal(data, s)
}
