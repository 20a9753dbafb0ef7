package weekly

import (
	"time"

	pkgerrors "raja-digital/pkg/errors"
)

// DaysPerWeek report window length (Monday .. Sunday)
const DaysPerWeek = 7

// DateLayout ISO calendar date used on the wire and in storage
const DateLayout = "2006-01-02"

// Window a Monday-aligned 7-day report window, both ends inclusive.
type Window struct {
	Start time.Time
	End   time.Time
}

// MondayOf returns the Monday (00:00, same location) of the ISO week containing t.
// A Sunday maps to the Monday six days earlier.
func MondayOf(t time.Time) time.Time {
	day := truncateDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// WeekOf returns the report window containing t.
func WeekOf(t time.Time) Window {
	start := MondayOf(t)
	return Window{Start: start, End: start.AddDate(0, 0, DaysPerWeek-1)}
}

// NewWindow validates that start is a Monday and end == start + 6 days.
func NewWindow(start, end time.Time) (Window, error) {
	start, end = truncateDay(start), truncateDay(end)
	if start.Weekday() != time.Monday {
		return Window{}, pkgerrors.Validationf("start_date", "harus hari Senin, bukan %s", start.Weekday())
	}
	if !end.Equal(start.AddDate(0, 0, DaysPerWeek-1)) {
		return Window{}, pkgerrors.NewValidation("end_date", "harus tepat 6 hari setelah start_date")
	}
	return Window{Start: start, End: end}, nil
}

// ParseWindow parses YYYY-MM-DD bounds and validates them with NewWindow.
func ParseWindow(startDate, endDate string) (Window, error) {
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return Window{}, pkgerrors.NewValidation("start_date", "format tanggal tidak valid (gunakan YYYY-MM-DD)")
	}
	end, err := time.Parse(DateLayout, endDate)
	if err != nil {
		return Window{}, pkgerrors.NewValidation("end_date", "format tanggal tidak valid (gunakan YYYY-MM-DD)")
	}
	return NewWindow(start, end)
}

// Days returns the 7 window dates in ascending order.
func (w Window) Days() []string {
	days := make([]string, DaysPerWeek)
	for i := range days {
		days[i] = w.Start.AddDate(0, 0, i).Format(DateLayout)
	}
	return days
}

// StartDate formatted window start
func (w Window) StartDate() string { return w.Start.Format(DateLayout) }

// EndDate formatted window end
func (w Window) EndDate() string { return w.End.Format(DateLayout) }

// Contains reports whether the ISO date falls inside the window.
func (w Window) Contains(date string) bool {
	return date >= w.StartDate() && date <= w.EndDate()
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
