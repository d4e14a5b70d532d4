package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"intern-dtr/backend/internal/model"
	"intern-dtr/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoRecords    = errors.New("该年度暂无打卡记录")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 年度打卡表导出为 Excel (.xlsx)：首个 Sheet 为汇总页，
//     之后按月分 Sheet，仅包含有记录的月份
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportDTR 导出某年的打卡记录为 Excel
	ExportDTR(ctx context.Context, userID string, year int) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ════════════════════════════════════════════════════════════
// ExportDTR — 导出年度打卡表
// ════════════════════════════════════════════════════════════

func (s *exportService) ExportDTR(ctx context.Context, userID string, year int) (*bytes.Buffer, string, error) {
	if year < 2000 || year > 2100 {
		return nil, "", ErrCalendarYearInvalid
	}

	internship, err := s.repo.Internship.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInternshipNotFound
		}
		s.logger.Error("查询实习档案失败", zap.Error(err))
		return nil, "", err
	}

	records, err := s.repo.DailyRecord.ListByYear(ctx, internship.InternshipID, year)
	if err != nil {
		s.logger.Error("查询年度打卡记录失败", zap.Error(err))
		return nil, "", err
	}
	if len(records) == 0 {
		return nil, "", ErrExportNoRecords
	}

	// 按月分桶（ListByYear 已按日期升序）
	byMonth := make(map[int][]model.DailyTimeRecord)
	for _, r := range records {
		m := int(r.RecordDate.Month())
		byMonth[m] = append(byMonth[m], r)
	}

	f := excelize.NewFile()
	defer f.Close()

	// ── 汇总页 ──
	const summarySheet = "汇总"
	f.SetSheetName("Sheet1", summarySheet)

	summaryRows := [][]interface{}{
		{"公司", internship.CompanyName},
		{"导师", internship.SupervisorName},
		{"开始日期", internship.StartDate.Format(dateLayout)},
		{"目标工时", internship.TotalHoursRequired},
		{"累计工时", internship.TotalHoursLogged},
	}
	for i, row := range summaryRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, "", ErrExportGenerateFail
		}
	}

	// ── 月度明细页 ──
	header := []interface{}{"日期", "星期", "上午上班", "上午下班", "下午上班", "下午下班", "当日工时", "备注"}
	weekdayNames := []string{"周一", "周二", "周三", "周四", "周五", "周六", "周日"}

	for month := 1; month <= 12; month++ {
		monthRecords, ok := byMonth[month]
		if !ok {
			continue
		}

		sheet := fmt.Sprintf("%d月", month)
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, "", ErrExportGenerateFail
		}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return nil, "", ErrExportGenerateFail
		}

		subtotal := 0.0
		for i, r := range monthRecords {
			remark := ""
			if r.IsHoliday {
				remark = "节假日"
			} else if r.IsWeekend {
				remark = "周末"
			}
			row := []interface{}{
				r.RecordDate.Format(dateLayout),
				weekdayNames[goWeekdayToISO(r.RecordDate.Weekday())-1],
				punchCell(r.AmIn),
				punchCell(r.AmOut),
				punchCell(r.PmIn),
				punchCell(r.PmOut),
				r.TotalHours,
				remark,
			}
			cell, _ := excelize.CoordinatesToCellName(1, i+2)
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return nil, "", ErrExportGenerateFail
			}
			subtotal += r.TotalHours
		}

		totalRow := []interface{}{"小计", "", "", "", "", "", subtotal, ""}
		cell, _ := excelize.CoordinatesToCellName(1, len(monthRecords)+2)
		if err := f.SetSheetRow(sheet, cell, &totalRow); err != nil {
			return nil, "", ErrExportGenerateFail
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写出 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("实习打卡记录_%d.xlsx", year)
	return buf, filename, nil
}

// punchCell 打卡时间单元格取值；未打卡显示空，存储值规范化为 HH:MM
func punchCell(v *string) string {
	if w := clockToWire(v); w != nil {
		return *w
	}
	return ""
}
