package handler

import "raja-digital/internal/service"

// Handler aggregate of every module handler
type Handler struct {
	Auth      *AuthHandler
	User      *UserHandler
	Driver    *DriverHandler
	SIJ       *SIJHandler
	Ritase    *RitaseHandler
	Absence   *AbsenceHandler
	Report    *ReportHandler
	Dashboard *DashboardHandler
	Audit     *AuditHandler
	Export    *ExportHandler
}

// NewHandler creates the Handler aggregate
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth),
		User:      NewUserHandler(svc.User),
		Driver:    NewDriverHandler(svc.Driver),
		SIJ:       NewSIJHandler(svc.SIJ),
		Ritase:    NewRitaseHandler(svc.Ritase),
		Absence:   NewAbsenceHandler(svc.Absence),
		Report:    NewReportHandler(svc.Weekly, svc.Revenue),
		Dashboard: NewDashboardHandler(svc.Dashboard),
		Audit:     NewAuditHandler(svc.Audit),
		Export:    NewExportHandler(svc.Export),
	}
}
