package weekly

import "strings"

// Category driver fleet category
type Category string

const (
	CategoryStandar Category = "standar"
	CategoryPremium Category = "premium"
)

// NormalizeCategory maps a stored category to a partition; anything that is
// not "premium" (including empty) belongs to standar.
func NormalizeCategory(raw string) Category {
	if strings.EqualFold(strings.TrimSpace(raw), string(CategoryPremium)) {
		return CategoryPremium
	}
	return CategoryStandar
}

// DailyActivity one driver on one calendar date.
type DailyActivity struct {
	Date   string `json:"date"`
	KHD    int    `json:"khd"`    // permits (SIJ) issued
	RTS    int    `json:"rts"`    // trips (ritase) completed
	Reason string `json:"reason"` // absence code, empty if none recorded
}

// DriverWeekly one driver over a report window.
type DriverWeekly struct {
	DriverID string          `json:"driver_id"`
	Name     string          `json:"name"`
	Plate    string          `json:"plate"`
	Category string          `json:"category"`
	Daily    []DailyActivity `json:"daily"`
	TotalKHD int             `json:"total_khd"`
	TotalRTS int             `json:"total_rts"`
}

// DayStatus presentational classification of a day cell.
type DayStatus int

const (
	DayNormal DayStatus = iota
	DayAbsentUnexplained
	DayExplainedAbsence
	DayFraud
)

func (s DayStatus) String() string {
	switch s {
	case DayAbsentUnexplained:
		return "absent"
	case DayExplainedAbsence:
		return "explained"
	case DayFraud:
		return "fraud"
	default:
		return "normal"
	}
}

// Classify applies the zero/non-zero gate on khd: a day with a permit is
// never fraud, whatever the trip count.
func Classify(d DailyActivity) DayStatus {
	if d.KHD > 0 {
		return DayNormal
	}
	if strings.TrimSpace(d.Reason) != "" {
		return DayExplainedAbsence
	}
	if d.RTS > 0 {
		return DayFraud
	}
	return DayAbsentUnexplained
}

// FraudDays returns the positional indices of fraud days of a driver.
func FraudDays(d DriverWeekly) []int {
	var idx []int
	for i, day := range d.Daily {
		if Classify(day) == DayFraud {
			idx = append(idx, i)
		}
	}
	return idx
}
