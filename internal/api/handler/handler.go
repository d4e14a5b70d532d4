package handler

import (
	"intern-dtr/backend/config"
	"intern-dtr/backend/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	Internship *InternshipHandler
	Record     *RecordHandler
	Calendar   *CalendarHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth, cfg),
		Internship: NewInternshipHandler(svc.Internship),
		Record:     NewRecordHandler(svc.Record),
		Calendar:   NewCalendarHandler(svc.Calendar),
		Export:     NewExportHandler(svc.Export),
	}
}
