package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
)

// Date is a calendar day stored as separate year/month/day columns.
// It carries no time zone; "today" is decided by the caller's clock.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// NewDate validates the parts before building a Date. Out-of-range
// parts (Feb 30, month 13) are an invalid_day business error.
func NewDate(year, month, day int) (Date, error) {
	d := Date{Year: year, Month: month, Day: day}
	if !d.Valid() {
		return Date{}, httperr.ErrBusiness("invalid_day")
	}
	return d, nil
}

// ParseParts builds a Date from raw request input. Missing year or
// month fall back to the month of today; a missing or non-numeric day,
// or a non-numeric year/month, is invalid_day.
func ParseParts(year, month, day string, today Date) (Date, error) {
	d, err := atoi(day)
	if err != nil || d == nil {
		return Date{}, httperr.ErrBusiness("invalid_day")
	}

	y, err := atoi(year)
	if err != nil {
		return Date{}, httperr.ErrBusiness("invalid_day")
	}
	m, err := atoi(month)
	if err != nil {
		return Date{}, httperr.ErrBusiness("invalid_day")
	}

	out := Date{Year: today.Year, Month: today.Month, Day: *d}
	if y != nil {
		out.Year = *y
	}
	if m != nil {
		out.Month = *m
	}

	return NewDate(out.Year, out.Month, out.Day)
}

func atoi(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func Of(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

func (d Date) Valid() bool {
	if d.Year < 1 || d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return false
	}
	return d.Day <= DaysIn(d.Year, d.Month)
}

func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

func (d Date) Equal(o Date) bool {
	return d == o
}

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, loc)
}

func (d Date) Weekday() time.Weekday {
	return d.Time(time.UTC).Weekday()
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// DaysIn returns the number of days of month in year.
func DaysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
