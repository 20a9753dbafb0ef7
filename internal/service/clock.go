package service

import (
	"time"

	"raja-digital/internal/model"
	"raja-digital/internal/weekly"
)

// nowFunc is replaced in tests
var nowFunc = time.Now

// Clock business wall clock (Asia/Jakarta by default)
type Clock struct {
	loc *time.Location
}

// NewClock creates a Clock in loc
func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{loc: loc}
}

// Now current time in the business timezone
func (c Clock) Now() time.Time { return nowFunc().In(c.loc) }

// Today current business date as YYYY-MM-DD
func (c Clock) Today() string { return c.Now().Format(weekly.DateLayout) }

// Location business timezone
func (c Clock) Location() *time.Location { return c.loc }

// DetectShift Shift1 from 07:00 until 16:59, Shift2 otherwise.
func DetectShift(t time.Time) string {
	if h := t.Hour(); h >= 7 && h < 17 {
		return model.Shift1
	}
	return model.Shift2
}
