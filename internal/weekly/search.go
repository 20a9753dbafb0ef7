package weekly

import "strings"

// View what the weekly screen displays for a search query.
type View struct {
	Query       string         `json:"query"`
	Standar     []DriverWeekly `json:"standar"`
	Premium     []DriverWeekly `json:"premium"`
	FraudCount  int            `json:"fraud_count"`
	LowActivity LowActivity    `json:"low_activity"`
}

// Matches case-insensitive substring match on name, plate or driver id.
// A blank query matches everything.
func Matches(d DriverWeekly, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(d.Name), q) ||
		strings.Contains(strings.ToLower(d.Plate), q) ||
		strings.Contains(strings.ToLower(d.DriverID), q)
}

// Filter returns the matching drivers in their original order.
func Filter(drivers []DriverWeekly, query string) []DriverWeekly {
	out := make([]DriverWeekly, 0, len(drivers))
	for _, d := range drivers {
		if Matches(d, query) {
			out = append(out, d)
		}
	}
	return out
}

// Search narrows the displayed partitions. Fraud count and low-activity
// lists are carried over from the unfiltered summary.
func (s *Summary) Search(query string) *View {
	return &View{
		Query:       strings.TrimSpace(query),
		Standar:     Filter(s.Standar, query),
		Premium:     Filter(s.Premium, query),
		FraudCount:  s.FraudCount,
		LowActivity: s.LowActivity,
	}
}
