package service

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"intern-dtr/backend/internal/dto"
	"intern-dtr/backend/internal/model"
	"intern-dtr/backend/internal/repository"
)

// ── 实习档案模块业务错误 ──

var (
	ErrInternshipNotFound   = errors.New("实习档案不存在")
	ErrInternshipDateFormat = errors.New("开始日期格式无效，应为 YYYY-MM-DD")
)

// InternshipService 实习档案业务接口
type InternshipService interface {
	// GetMine 获取当前用户的实习档案
	GetMine(ctx context.Context, userID string) (*dto.InternshipResponse, error)
	// UpdateInfo 更新档案基本信息（不触碰派生缓存 total_hours_logged）
	UpdateInfo(ctx context.Context, userID string, req *dto.UpdateInternshipRequest) (*dto.InternshipResponse, error)
	// GetStats 实习进度统计（纯读，消费缓存总工时，从不重算）
	GetStats(ctx context.Context, userID string) (*dto.StatsResponse, error)
}

type internshipService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewInternshipService 创建 InternshipService 实例
func NewInternshipService(repo *repository.Repository, logger *zap.Logger) InternshipService {
	return &internshipService{repo: repo, logger: logger}
}

func (s *internshipService) GetMine(ctx context.Context, userID string) (*dto.InternshipResponse, error) {
	internship, err := s.getByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return internshipToResponse(internship), nil
}

func (s *internshipService) UpdateInfo(ctx context.Context, userID string, req *dto.UpdateInternshipRequest) (*dto.InternshipResponse, error) {
	internship, err := s.getByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.CompanyName != nil {
		internship.CompanyName = *req.CompanyName
	}
	if req.SupervisorName != nil {
		internship.SupervisorName = *req.SupervisorName
	}
	if req.StartDate != nil {
		startDate, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			return nil, ErrInternshipDateFormat
		}
		internship.StartDate = startDate
	}
	if req.TotalHoursRequired != nil {
		internship.TotalHoursRequired = *req.TotalHoursRequired
	}

	if err := s.repo.Internship.UpdateInfo(ctx, internship); err != nil {
		s.logger.Error("更新实习档案失败", zap.Error(err))
		return nil, err
	}

	// 重新加载，取数据库生成的 updated_at
	updated, err := s.repo.Internship.GetByID(ctx, internship.InternshipID)
	if err != nil {
		return nil, err
	}
	return internshipToResponse(updated), nil
}

// ────────────────────── GetStats ──────────────────────
//
// percent_complete 按原始口径向下取整（floor），不四舍五入：
// 33.9% 显示 33，percent_remaining = 100 - 33 = 67。

func (s *internshipService) GetStats(ctx context.Context, userID string) (*dto.StatsResponse, error) {
	internship, err := s.getByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	workDays, err := s.repo.DailyRecord.CountWorkDays(ctx, internship.InternshipID)
	if err != nil {
		s.logger.Error("统计打卡天数失败", zap.Error(err))
		return nil, err
	}

	logged := internship.TotalHoursLogged
	required := internship.TotalHoursRequired

	remaining := required - logged
	if remaining < 0 {
		remaining = 0
	}

	percentComplete := 0
	if required > 0 {
		percentComplete = int(math.Floor(logged / required * 100))
	}

	average := 0.0
	if workDays > 0 {
		average = math.Round(logged/float64(workDays)*10) / 10
	}

	return &dto.StatsResponse{
		TotalLogged:        logged,
		TotalRequired:      required,
		RemainingHours:     remaining,
		PercentComplete:    percentComplete,
		PercentRemaining:   100 - percentComplete,
		TotalDaysLogged:    workDays,
		AverageHoursPerDay: average,
	}, nil
}

// ────────────────────── 内部辅助 ──────────────────────

func (s *internshipService) getByUser(ctx context.Context, userID string) (*model.Internship, error) {
	internship, err := s.repo.Internship.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInternshipNotFound
		}
		s.logger.Error("查询实习档案失败", zap.Error(err))
		return nil, err
	}
	return internship, nil
}

func internshipToResponse(internship *model.Internship) *dto.InternshipResponse {
	return &dto.InternshipResponse{
		ID:                 internship.InternshipID,
		CompanyName:        internship.CompanyName,
		SupervisorName:     internship.SupervisorName,
		StartDate:          internship.StartDate.Format(dateLayout),
		TotalHoursRequired: internship.TotalHoursRequired,
		TotalHoursLogged:   internship.TotalHoursLogged,
		CreatedAt:          internship.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          internship.UpdatedAt.Format(time.RFC3339),
	}
}
