package service

import (
	"go.uber.org/zap"

	"intern-dtr/backend/config"
	"intern-dtr/backend/internal/repository"
	"intern-dtr/backend/pkg/jwt"
	"intern-dtr/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	Internship InternshipService
	Record     RecordService
	Calendar   CalendarService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Internship: NewInternshipService(repo, logger),
		Record:     NewRecordService(repo, cfg.Feature.HolidayImportEnabled, logger),
		Calendar:   NewCalendarService(repo, logger),
		Export:     NewExportService(repo, logger),
	}
}
