package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"intern-dtr/backend/internal/dto"
	"intern-dtr/backend/internal/model"
	"intern-dtr/backend/internal/repository"
)

// ── 打卡记录模块业务错误 ──

var (
	ErrRecordInvalidDate     = errors.New("日期无效")
	ErrRecordInvalidTime     = errors.New("时间格式无效，应为 HH:MM")
	ErrRecordDayFull         = errors.New("当日四次打卡均已记录")
	ErrHolidayICSParseFailed = errors.New("节假日 ICS 文件解析失败")
	ErrHolidayICSEmpty       = errors.New("ICS 文件中未发现有效节假日日期")
	ErrHolidayImportDisabled = errors.New("节假日导入功能未启用")
)

// ── RecordService 接口 ──────────────────────────────────────
//
// 设计说明：
//   - 所有写操作遵循同一条显式调用链：
//     校验输入 → get-or-create 当日记录 → 计时算法重算 total_hours →
//     Repository 在单个事务内落库并全量重算档案 total_hours_logged。
//     工时计算与总工时重算不是调用方可跳过的独立步骤。
//   - 删除同样触发重算；当日无记录时删除是幂等空操作，不报错。
// ─────────────────────────────────────────────────────────────

// RecordService 打卡记录业务接口
type RecordService interface {
	// SaveRecord 保存某日打卡记录（按日期 upsert），重算当日工时并重算总工时
	SaveRecord(ctx context.Context, userID string, req *dto.SaveRecordRequest) (*dto.RecordResponse, error)
	// DeleteRecord 删除某日打卡记录并重算总工时；当日无记录返回 deleted=false
	DeleteRecord(ctx context.Context, userID string, req *dto.DeleteRecordRequest) (*dto.DeleteRecordResponse, error)
	// MarkDay 切换某日的节假日/周末标记（标记优先于打卡时间，打卡原值保留）
	MarkDay(ctx context.Context, userID string, req *dto.MarkDayRequest) (*dto.RecordResponse, error)
	// QuickLog 快速打卡：填入当日第一个空档
	QuickLog(ctx context.Context, userID string, req *dto.QuickLogRequest) (*dto.RecordResponse, error)
	// ImportHolidayICS 从 iCalendar 文件批量标记节假日
	ImportHolidayICS(ctx context.Context, userID string, reader io.Reader) (*dto.ImportHolidaysResponse, error)
}

type recordService struct {
	repo                 *repository.Repository
	holidayImportEnabled bool
	logger               *zap.Logger
}

// NewRecordService 创建 RecordService 实例
func NewRecordService(repo *repository.Repository, holidayImportEnabled bool, logger *zap.Logger) RecordService {
	return &recordService{
		repo:                 repo,
		holidayImportEnabled: holidayImportEnabled,
		logger:               logger,
	}
}

// ────────────────────── SaveRecord ──────────────────────

func (s *recordService) SaveRecord(ctx context.Context, userID string, req *dto.SaveRecordRequest) (*dto.RecordResponse, error) {
	internship, err := s.resolveInternship(ctx, userID)
	if err != nil {
		return nil, err
	}

	date, err := validateDate(req.Year, req.Month, req.Day)
	if err != nil {
		return nil, err
	}

	// 打卡时间先于任何写入校验；任一非法则整个请求拒绝
	amIn, err := normalizeClock(req.AmIn)
	if err != nil {
		return nil, err
	}
	amOut, err := normalizeClock(req.AmOut)
	if err != nil {
		return nil, err
	}
	pmIn, err := normalizeClock(req.PmIn)
	if err != nil {
		return nil, err
	}
	pmOut, err := normalizeClock(req.PmOut)
	if err != nil {
		return nil, err
	}

	record, err := s.getOrNewRecord(ctx, internship.InternshipID, date)
	if err != nil {
		return nil, err
	}

	record.AmIn = amIn
	record.AmOut = amOut
	record.PmIn = pmIn
	record.PmOut = pmOut
	if req.IsHoliday != nil {
		record.IsHoliday = *req.IsHoliday
	}
	if req.IsWeekend != nil {
		record.IsWeekend = *req.IsWeekend
	}
	record.TotalHours = computeDailyHours(record)

	if err := s.repo.DailyRecord.SaveAndReconcile(ctx, record); err != nil {
		s.logger.Error("保存打卡记录失败", zap.Error(err))
		return nil, err
	}

	return recordToResponse(record), nil
}

// ────────────────────── DeleteRecord ──────────────────────

func (s *recordService) DeleteRecord(ctx context.Context, userID string, req *dto.DeleteRecordRequest) (*dto.DeleteRecordResponse, error) {
	internship, err := s.resolveInternship(ctx, userID)
	if err != nil {
		return nil, err
	}

	date, err := validateDate(req.Year, req.Month, req.Day)
	if err != nil {
		return nil, err
	}

	deleted, err := s.repo.DailyRecord.DeleteAndReconcile(ctx, internship.InternshipID, date)
	if err != nil {
		s.logger.Error("删除打卡记录失败", zap.Error(err))
		return nil, err
	}

	return &dto.DeleteRecordResponse{Deleted: deleted}, nil
}

// ────────────────────── MarkDay ──────────────────────

func (s *recordService) MarkDay(ctx context.Context, userID string, req *dto.MarkDayRequest) (*dto.RecordResponse, error) {
	internship, err := s.resolveInternship(ctx, userID)
	if err != nil {
		return nil, err
	}

	date, err := validateDate(req.Year, req.Month, req.Day)
	if err != nil {
		return nil, err
	}

	record, err := s.getOrNewRecord(ctx, internship.InternshipID, date)
	if err != nil {
		return nil, err
	}

	// 再次标记即取消；只切换请求指定的标记，另一标记保持不动
	switch req.Kind {
	case "holiday":
		record.IsHoliday = !record.IsHoliday
	case "weekend":
		record.IsWeekend = !record.IsWeekend
	}
	record.TotalHours = computeDailyHours(record)

	if err := s.repo.DailyRecord.SaveAndReconcile(ctx, record); err != nil {
		s.logger.Error("标记日期失败", zap.Error(err))
		return nil, err
	}

	return recordToResponse(record), nil
}

// ────────────────────── QuickLog ──────────────────────

func (s *recordService) QuickLog(ctx context.Context, userID string, req *dto.QuickLogRequest) (*dto.RecordResponse, error) {
	internship, err := s.resolveInternship(ctx, userID)
	if err != nil {
		return nil, err
	}

	date, err := validateDate(req.Year, req.Month, req.Day)
	if err != nil {
		return nil, err
	}

	clock, err := normalizeClock(req.Time)
	if err != nil {
		return nil, err
	}
	if clock == nil {
		return nil, ErrRecordInvalidTime
	}

	record, err := s.getOrNewRecord(ctx, internship.InternshipID, date)
	if err != nil {
		return nil, err
	}

	// 按 am_in → am_out → pm_in → pm_out 顺序填入第一个空档
	switch {
	case record.AmIn == nil:
		record.AmIn = clock
	case record.AmOut == nil:
		record.AmOut = clock
	case record.PmIn == nil:
		record.PmIn = clock
	case record.PmOut == nil:
		record.PmOut = clock
	default:
		return nil, ErrRecordDayFull
	}
	record.TotalHours = computeDailyHours(record)

	if err := s.repo.DailyRecord.SaveAndReconcile(ctx, record); err != nil {
		s.logger.Error("快速打卡失败", zap.Error(err))
		return nil, err
	}

	return recordToResponse(record), nil
}

// ────────────────────── ImportHolidayICS ──────────────────────

func (s *recordService) ImportHolidayICS(ctx context.Context, userID string, reader io.Reader) (*dto.ImportHolidaysResponse, error) {
	if !s.holidayImportEnabled {
		return nil, ErrHolidayImportDisabled
	}

	internship, err := s.resolveInternship(ctx, userID)
	if err != nil {
		return nil, err
	}

	dates, err := parseHolidayICS(reader)
	if err != nil {
		s.logger.Error("节假日 ICS 解析失败", zap.Error(err))
		return nil, ErrHolidayICSParseFailed
	}
	if len(dates) == 0 {
		return nil, ErrHolidayICSEmpty
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	if err := s.repo.DailyRecord.MarkHolidaysAndReconcile(ctx, internship.InternshipID, dates); err != nil {
		s.logger.Error("批量标记节假日失败", zap.Error(err))
		return nil, err
	}

	marked := make([]string, 0, len(dates))
	for _, d := range dates {
		marked = append(marked, d.Format(dateLayout))
	}
	return &dto.ImportHolidaysResponse{MarkedDates: marked, Total: len(marked)}, nil
}

// ────────────────────── 内部辅助 ──────────────────────

const dateLayout = "2006-01-02"

func (s *recordService) resolveInternship(ctx context.Context, userID string) (*model.Internship, error) {
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

// getOrNewRecord 读取当日记录；不存在时返回未落库的新记录（惰性建档）
func (s *recordService) getOrNewRecord(ctx context.Context, internshipID string, date time.Time) (*model.DailyTimeRecord, error) {
	record, err := s.repo.DailyRecord.GetByDate(ctx, internshipID, date)
	if err == nil {
		return record, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.DailyTimeRecord{
			InternshipID: internshipID,
			RecordDate:   date,
		}, nil
	}
	s.logger.Error("查询打卡记录失败", zap.Error(err))
	return nil, err
}

// validateDate 校验 年/月/日 组合（如 2 月 30 日非法），返回 UTC 零点日期
func validateDate(year, month, day int) (time.Time, error) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, ErrRecordInvalidDate
	}
	if day > daysInMonth(year, month) {
		return time.Time{}, ErrRecordInvalidDate
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// daysInMonth 某年某月的天数
func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// normalizeClock 校验并规范化 "HH:MM" 输入；空串表示未打卡，返回 nil
func normalizeClock(s string) (*string, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return nil, ErrRecordInvalidTime
	}
	normalized := t.Format(clockLayout)
	return &normalized, nil
}

func recordToResponse(record *model.DailyTimeRecord) *dto.RecordResponse {
	return &dto.RecordResponse{
		Date:       record.RecordDate.Format(dateLayout),
		AmIn:       clockToWire(record.AmIn),
		AmOut:      clockToWire(record.AmOut),
		PmIn:       clockToWire(record.PmIn),
		PmOut:      clockToWire(record.PmOut),
		IsHoliday:  record.IsHoliday,
		IsWeekend:  record.IsWeekend,
		TotalHours: record.TotalHours,
	}
}
