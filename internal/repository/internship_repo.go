package repository

import (
	"context"

	"gorm.io/gorm"

	"intern-dtr/backend/internal/model"
)

// InternshipRepository 实习档案数据访问接口
//
// TotalHoursLogged 不在本接口暴露写入：该字段只由
// DailyRecordRepository 在打卡写事务内重算（见 reconcile）。
type InternshipRepository interface {
	CreateWithUser(ctx context.Context, user *model.User, internship *model.Internship) error
	GetByID(ctx context.Context, id string) (*model.Internship, error)
	GetByUserID(ctx context.Context, userID string) (*model.Internship, error)
	UpdateInfo(ctx context.Context, internship *model.Internship) error
}

// internshipRepo InternshipRepository 的 GORM 实现
type internshipRepo struct {
	db *gorm.DB
}

// NewInternshipRepo 创建 InternshipRepository 实例
func NewInternshipRepo(db *gorm.DB) InternshipRepository {
	return &internshipRepo{db: db}
}

// CreateWithUser 在单个事务中创建账号与实习档案（注册即建档，1:1）
func (r *internshipRepo) CreateWithUser(ctx context.Context, user *model.User, internship *model.Internship) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		internship.UserID = user.UserID
		return tx.Create(internship).Error
	})
}

func (r *internshipRepo) GetByID(ctx context.Context, id string) (*model.Internship, error) {
	var internship model.Internship
	err := r.db.WithContext(ctx).
		Where("internship_id = ?", id).
		First(&internship).Error
	if err != nil {
		return nil, err
	}
	return &internship, nil
}

func (r *internshipRepo) GetByUserID(ctx context.Context, userID string) (*model.Internship, error) {
	var internship model.Internship
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&internship).Error
	if err != nil {
		return nil, err
	}
	return &internship, nil
}

// UpdateInfo 更新档案基本信息（公司/导师/开始日期/目标工时）
// 显式列出可写列，防止误写派生缓存 total_hours_logged
func (r *internshipRepo) UpdateInfo(ctx context.Context, internship *model.Internship) error {
	return r.db.WithContext(ctx).
		Model(&model.Internship{}).
		Where("internship_id = ?", internship.InternshipID).
		Select("company_name", "supervisor_name", "start_date", "total_hours_required", "updated_at").
		Updates(map[string]interface{}{
			"company_name":         internship.CompanyName,
			"supervisor_name":      internship.SupervisorName,
			"start_date":           internship.StartDate,
			"total_hours_required": internship.TotalHoursRequired,
			"updated_at":           gorm.Expr("CURRENT_TIMESTAMP"),
		}).Error
}
