// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"gorm.io/datatypes"
)

// DateLayout is the wire format of every calendar date in the API.
const DateLayout = "2006-01-02"

var academyLoc atomic.Pointer[time.Location]

// SetLocation sets the academy timezone used to decide what "today" is.
// Unknown names fall back to UTC and return the lookup error.
func SetLocation(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		academyLoc.Store(time.UTC)
		return nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		academyLoc.Store(time.UTC)
		return err
	}
	academyLoc.Store(loc)
	return nil
}

func Location() *time.Location {
	if loc := academyLoc.Load(); loc != nil {
		return loc
	}
	return time.UTC
}

// Now is the wall clock in the academy timezone.
func Now() time.Time { return time.Now().In(Location()) }

// Today is the current academy calendar date, as UTC midnight.
func Today() time.Time { return DateOf(Now()) }

// DateOf drops the clock part of t (read in t's own location) and returns the
// calendar date as UTC midnight, so dates compare by value.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate accepts "YYYY-MM-DD" and, leniently, RFC3339 timestamps.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOf(t), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected %s", s, DateLayout)
}

// ToDate converts a parsed date for storage.
func ToDate(t time.Time) datatypes.Date { return datatypes.Date(DateOf(t)) }

// ParseDatePtr is ParseDate for optional fields; nil or blank gives nil.
func ParseDatePtr(s *string) (*datatypes.Date, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return nil, err
	}
	d := ToDate(t)
	return &d, nil
}

func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}

func FormatDatePtr(d *datatypes.Date) *string {
	if d == nil || time.Time(*d).IsZero() {
		return nil
	}
	s := FormatDate(*d)
	return &s
}
