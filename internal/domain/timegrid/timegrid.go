package timegrid

import (
	"fmt"
	"time"
)

const Layout = "15:04"

// Shift is a half-open block of bookable time [StartHour, EndHour).
type Shift struct {
	StartHour int
	EndHour   int
}

// Default business day: morning closes at 11:00, afternoon at 19:00.
var (
	Morning   = Shift{StartHour: 8, EndHour: 11}
	Afternoon = Shift{StartHour: 13, EndHour: 19}
)

const StepMinutes = 30

// DefaultTimes returns the canonical seed grid for one business day,
// in ascending order.
func DefaultTimes() []string {
	return Times(Morning, Afternoon)
}

func Times(shifts ...Shift) []string {
	var out []string
	for _, s := range shifts {
		for m := s.StartHour * 60; m < s.EndHour*60; m += StepMinutes {
			out = append(out, fmt.Sprintf("%02d:%02d", m/60, m%60))
		}
	}
	return out
}

// ValidTime reports whether s is a well-formed HH:MM time of day.
func ValidTime(s string) bool {
	if len(s) != len(Layout) {
		return false
	}
	_, err := time.Parse(Layout, s)
	return err == nil
}
