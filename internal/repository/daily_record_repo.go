package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"intern-dtr/backend/internal/model"
)

// DailyRecordRepository 每日打卡记录数据访问接口
//
// 写操作（SaveAndReconcile / DeleteAndReconcile / MarkHolidaysAndReconcile）
// 均在单个事务内完成"写记录 + 重算档案总工时"两步：
// 重算采用全量 SUM 而非增量加减，天然幂等、不受写入顺序影响，
// 事务回滚时两步一起回滚，缓存与明细不会出现半更新状态。
type DailyRecordRepository interface {
	GetByDate(ctx context.Context, internshipID string, date time.Time) (*model.DailyTimeRecord, error)
	ListByYear(ctx context.Context, internshipID string, year int) ([]model.DailyTimeRecord, error)
	CountWorkDays(ctx context.Context, internshipID string) (int64, error)
	SaveAndReconcile(ctx context.Context, record *model.DailyTimeRecord) error
	DeleteAndReconcile(ctx context.Context, internshipID string, date time.Time) (bool, error)
	MarkHolidaysAndReconcile(ctx context.Context, internshipID string, dates []time.Time) error
}

// dailyRecordRepo DailyRecordRepository 的 GORM 实现
type dailyRecordRepo struct {
	db *gorm.DB
}

// NewDailyRecordRepo 创建 DailyRecordRepository 实例
func NewDailyRecordRepo(db *gorm.DB) DailyRecordRepository {
	return &dailyRecordRepo{db: db}
}

func (r *dailyRecordRepo) GetByDate(ctx context.Context, internshipID string, date time.Time) (*model.DailyTimeRecord, error) {
	var record model.DailyTimeRecord
	err := r.db.WithContext(ctx).
		Where("internship_id = ? AND record_date = ?", internshipID, date).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *dailyRecordRepo) ListByYear(ctx context.Context, internshipID string, year int) ([]model.DailyTimeRecord, error) {
	from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	var records []model.DailyTimeRecord
	err := r.db.WithContext(ctx).
		Where("internship_id = ? AND record_date >= ? AND record_date < ?", internshipID, from, to).
		Order("record_date").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// CountWorkDays 统计实际工作日打卡天数（两个标记均为 false 的记录数，
// 与当日工时是否为 0 无关）
func (r *dailyRecordRepo) CountWorkDays(ctx context.Context, internshipID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.DailyTimeRecord{}).
		Where("internship_id = ? AND is_holiday = FALSE AND is_weekend = FALSE", internshipID).
		Count(&count).Error
	return count, err
}

// SaveAndReconcile 保存（新建或更新）一条打卡记录并重算档案总工时
func (r *dailyRecordRepo) SaveAndReconcile(ctx context.Context, record *model.DailyTimeRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(record).Error; err != nil {
			return err
		}
		return reconcileTotalHours(tx, record.InternshipID)
	})
}

// DeleteAndReconcile 删除某日打卡记录并重算档案总工时
// 当日本无记录时返回 (false, nil)，不视为错误
func (r *dailyRecordRepo) DeleteAndReconcile(ctx context.Context, internshipID string, date time.Time) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("internship_id = ? AND record_date = ?", internshipID, date).
			Delete(&model.DailyTimeRecord{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil // 无记录，无需重算
		}
		deleted = true
		return reconcileTotalHours(tx, internshipID)
	})
	return deleted, err
}

// MarkHolidaysAndReconcile 批量将给定日期标记为节假日（逐日 get-or-create），
// 结束后重算一次档案总工时。标记日工时恒为 0，打卡原始时间保持不动。
func (r *dailyRecordRepo) MarkHolidaysAndReconcile(ctx context.Context, internshipID string, dates []time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, date := range dates {
			var record model.DailyTimeRecord
			err := tx.Where("internship_id = ? AND record_date = ?", internshipID, date).
				First(&record).Error
			switch {
			case err == nil:
				record.IsHoliday = true
				record.TotalHours = 0
				if err := tx.Save(&record).Error; err != nil {
					return err
				}
			case err == gorm.ErrRecordNotFound:
				record = model.DailyTimeRecord{
					InternshipID: internshipID,
					RecordDate:   date,
					IsHoliday:    true,
				}
				if err := tx.Create(&record).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}
		return reconcileTotalHours(tx, internshipID)
	})
}

// reconcileTotalHours 全量重算：total_hours_logged = SUM(total_hours)
// 必须在持有写事务的 tx 内调用
func reconcileTotalHours(tx *gorm.DB, internshipID string) error {
	var total float64
	err := tx.Model(&model.DailyTimeRecord{}).
		Where("internship_id = ?", internshipID).
		Select("COALESCE(SUM(total_hours), 0)").
		Scan(&total).Error
	if err != nil {
		return err
	}

	return tx.Model(&model.Internship{}).
		Where("internship_id = ?", internshipID).
		Update("total_hours_logged", total).Error
}
