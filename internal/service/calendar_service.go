package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"intern-dtr/backend/internal/dto"
	"intern-dtr/backend/internal/model"
	"intern-dtr/backend/internal/repository"
)

// ── 日历模块业务错误 ──

var ErrCalendarYearInvalid = errors.New("年份无效")

// CalendarService 日历视图业务接口
//
// 纯读投影：逐月铺满全部日历日，有记录的天填打卡与工时，
// 无记录的天全部取默认值。从不触发任何写或重算。
type CalendarService interface {
	GetCalendar(ctx context.Context, userID string, year int) (*dto.YearCalendarResponse, error)
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger}
}

func (s *calendarService) GetCalendar(ctx context.Context, userID string, year int) (*dto.YearCalendarResponse, error) {
	if year < 2000 || year > 2100 {
		return nil, ErrCalendarYearInvalid
	}

	internship, err := s.repo.Internship.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInternshipNotFound
		}
		s.logger.Error("查询实习档案失败", zap.Error(err))
		return nil, err
	}

	records, err := s.repo.DailyRecord.ListByYear(ctx, internship.InternshipID, year)
	if err != nil {
		s.logger.Error("查询年度打卡记录失败", zap.Error(err))
		return nil, err
	}

	// 日期 → 记录 索引
	byDate := make(map[string]*model.DailyTimeRecord, len(records))
	for i := range records {
		byDate[records[i].RecordDate.Format(dateLayout)] = &records[i]
	}

	months := make([]dto.CalendarMonth, 0, 12)
	for month := 1; month <= 12; month++ {
		numDays := daysInMonth(year, month)
		days := make([]dto.CalendarDay, 0, numDays)
		monthHours := 0.0

		for day := 1; day <= numDays; day++ {
			date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			entry := dto.CalendarDay{
				Day:     day,
				Weekday: goWeekdayToISO(date.Weekday()),
			}

			if record, ok := byDate[date.Format(dateLayout)]; ok {
				entry.AmIn = clockToWire(record.AmIn)
				entry.AmOut = clockToWire(record.AmOut)
				entry.PmIn = clockToWire(record.PmIn)
				entry.PmOut = clockToWire(record.PmOut)
				entry.Hours = record.TotalHours
				entry.IsHoliday = record.IsHoliday
				entry.IsWeekend = record.IsWeekend
				entry.HasRecord = true
				monthHours += record.TotalHours
			}

			days = append(days, entry)
		}

		months = append(months, dto.CalendarMonth{
			Month:      month,
			MonthHours: monthHours,
			Days:       days,
		})
	}

	return &dto.YearCalendarResponse{Year: year, Months: months}, nil
}

// goWeekdayToISO time.Weekday → ISO 星期（1=周一 … 7=周日）
func goWeekdayToISO(wd time.Weekday) int {
	if wd == time.Sunday {
		return 7
	}
	return int(wd)
}
