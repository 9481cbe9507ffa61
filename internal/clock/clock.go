package clock

import (
	"time"

	"github.com/BruksfildServices01/barber-agenda/internal/domain/calendar"
)

const DefaultTimezone = "America/Sao_Paulo"

type Clock interface {
	Now() time.Time
}

// Location resolves tz, falling back to DefaultTimezone and then UTC.
func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// System reads the wall clock in a fixed location.
type System struct {
	Loc *time.Location
}

func NewSystem(tz string) System {
	return System{Loc: Location(tz)}
}

func (s System) Now() time.Time {
	if s.Loc == nil {
		return time.Now()
	}
	return time.Now().In(s.Loc)
}

// Fixed always returns the same instant.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time {
	return f.T
}

func Today(c Clock) calendar.Date {
	return calendar.Of(c.Now())
}

// NowHM is the current time of day as HH:MM.
func NowHM(c Clock) string {
	return c.Now().Format("15:04")
}
