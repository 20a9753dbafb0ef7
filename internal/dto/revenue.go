package dto

import "raja-digital/internal/repository"

// ── revenue ──

// RevenueRequest period bucket and anchor date
type RevenueRequest struct {
	Period string `form:"period" binding:"omitempty,oneof=daily weekly monthly"`
	Date   string `form:"date"   binding:"omitempty,datetime=2006-01-02"`
}

// RevenueMeta resolved range of a report
type RevenueMeta struct {
	Period   string `json:"period"`
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
}

// RevenueReport rows and their range
type RevenueReport struct {
	Rows []repository.RevenueRow `json:"rows"`
	Meta RevenueMeta             `json:"meta"`
}

// GrandTotal sums every row
func (r *RevenueReport) GrandTotal() repository.RevenueRow {
	t := repository.RevenueRow{PeriodLabel: "GRAND TOTAL"}
	for _, row := range r.Rows {
		t.QtyStandar += row.QtyStandar
		t.RevenueStandar += row.RevenueStandar
		t.QtyPremium += row.QtyPremium
		t.RevenuePremium += row.RevenuePremium
		t.TotalRevenue += row.TotalRevenue
	}
	return t
}
