package model

import (
	"fmt"
	"time"
)

// DateLayout is the wire and storage format for transaction dates.
const DateLayout = "2006-01-02"

// Date is a calendar day with no time-of-day component. The zero value is
// invalid; construct via NewDate or ParseDate.
type Date struct {
	time.Time
}

// NewDate builds a date in UTC. Out-of-range months and days normalize the way
// time.Date does, so NewDate(y, m+1, 1) is the first of the next month and
// NewDate(y, m+1, 0) the last day of month m.
func NewDate(year, month, day int) Date {
	return Date{time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string. Dates that do not exist on the
// calendar, such as February 30th, are rejected rather than normalized.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// Year returns the calendar year.
func (d Date) Year() int {
	return d.Time.Year()
}

// Month returns the calendar month as 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// Before reports whether d falls on an earlier day than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// Validate rejects the zero value.
func (d Date) Validate() error {
	if d.IsZero() {
		return fmt.Errorf("%w: date is not set", ErrInvalidDate)
	}
	return nil
}
