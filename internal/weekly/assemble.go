package weekly

// Key identifies a driver on a date.
type Key struct {
	DriverID string
	Date     string
}

// RosterEntry a known driver, in the order the report lists them.
type RosterEntry struct {
	DriverID string
	Name     string
	Plate    string
	Category string
}

// Activity sparse per-(driver, date) facts fetched for a window.
type Activity struct {
	Permits map[Key]int    // active SIJ count
	Trips   map[Key]int    // ritase count
	Reasons map[Key]string // recorded absence reason
}

// Assemble builds one dense DriverWeekly per roster entry. Missing facts are
// zero counts and an empty reason.
func Assemble(w Window, roster []RosterEntry, act Activity) []DriverWeekly {
	days := w.Days()
	result := make([]DriverWeekly, 0, len(roster))

	for _, r := range roster {
		drv := DriverWeekly{
			DriverID: r.DriverID,
			Name:     r.Name,
			Plate:    r.Plate,
			Category: r.Category,
			Daily:    make([]DailyActivity, len(days)),
		}
		for i, day := range days {
			k := Key{DriverID: r.DriverID, Date: day}
			d := DailyActivity{
				Date:   day,
				KHD:    act.Permits[k],
				RTS:    act.Trips[k],
				Reason: act.Reasons[k],
			}
			drv.Daily[i] = d
			drv.TotalKHD += d.KHD
			drv.TotalRTS += d.RTS
		}
		result = append(result, drv)
	}

	return result
}
