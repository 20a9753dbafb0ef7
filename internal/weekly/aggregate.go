package weekly

import (
	pkgerrors "raja-digital/pkg/errors"
)

// LowActivityThreshold drivers with fewer weekly permits are flagged
const LowActivityThreshold = 5

// LowActivity low-activity drivers per partition, in roster order
type LowActivity struct {
	Standar []DriverWeekly `json:"standar"`
	Premium []DriverWeekly `json:"premium"`
}

// Summary aggregator output for one window.
//
// FraudCount and LowActivity always describe the full driver set; Search
// only narrows the displayed partitions.
type Summary struct {
	Window      Window         `json:"-"`
	Standar     []DriverWeekly `json:"standar"`
	Premium     []DriverWeekly `json:"premium"`
	FraudCount  int            `json:"fraud_count"`
	LowActivity LowActivity    `json:"low_activity"`
}

// Aggregate partitions drivers by category, recomputes totals, counts fraud
// days over all drivers and collects low-activity drivers.
//
// Every driver must carry exactly one DailyActivity per window day, aligned
// positionally; otherwise a *errors.ValidationError is returned and no
// partial result is produced. The input slice is not modified.
func Aggregate(w Window, drivers []DriverWeekly) (*Summary, error) {
	days := w.Days()
	s := &Summary{
		Window:      w,
		Standar:     []DriverWeekly{},
		Premium:     []DriverWeekly{},
		LowActivity: LowActivity{Standar: []DriverWeekly{}, Premium: []DriverWeekly{}},
	}

	for i := range drivers {
		drv, err := normalizeDriver(days, &drivers[i])
		if err != nil {
			return nil, err
		}

		s.FraudCount += len(FraudDays(drv))
		low := drv.TotalKHD < LowActivityThreshold

		if NormalizeCategory(drv.Category) == CategoryPremium {
			s.Premium = append(s.Premium, drv)
			if low {
				s.LowActivity.Premium = append(s.LowActivity.Premium, drv)
			}
			continue
		}
		s.Standar = append(s.Standar, drv)
		if low {
			s.LowActivity.Standar = append(s.LowActivity.Standar, drv)
		}
	}

	return s, nil
}

// normalizeDriver copies in, validates day alignment and recomputes totals.
func normalizeDriver(days []string, in *DriverWeekly) (DriverWeekly, error) {
	if len(in.Daily) != len(days) {
		return DriverWeekly{}, pkgerrors.Validationf("daily",
			"driver %s memiliki %d hari, seharusnya %d", in.DriverID, len(in.Daily), len(days))
	}

	out := *in
	out.Category = string(NormalizeCategory(in.Category))
	out.Daily = make([]DailyActivity, len(in.Daily))
	out.TotalKHD, out.TotalRTS = 0, 0

	for i, d := range in.Daily {
		if d.Date != days[i] {
			return DriverWeekly{}, pkgerrors.Validationf("daily",
				"driver %s hari ke-%d bertanggal %q, seharusnya %s", in.DriverID, i, d.Date, days[i])
		}
		if d.KHD < 0 || d.RTS < 0 {
			return DriverWeekly{}, pkgerrors.Validationf("daily",
				"driver %s tanggal %s memiliki nilai negatif", in.DriverID, d.Date)
		}
		out.Daily[i] = d
		out.TotalKHD += d.KHD
		out.TotalRTS += d.RTS
	}

	return out, nil
}
