package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"intern-dtr/backend/internal/dto"
)

// ── 测试辅助 ──

func setupTestInternshipService() (InternshipService, RecordService, *mockInternshipRepo) {
	repo, _, internshipRepo, _ := newTestRepository()
	logger := zap.NewNop()
	svc := NewInternshipService(repo, logger)
	recordSvc := NewRecordService(repo, true, logger)
	return svc, recordSvc, internshipRepo
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

// ── GetMine 测试 ──

func TestGetMine_Success(t *testing.T) {
	svc, _, internshipRepo := setupTestInternshipService()
	internship := createTestInternship(internshipRepo, "alice", 500)

	result, err := svc.GetMine(context.Background(), internship.UserID)

	if err != nil {
		t.Fatalf("GetMine 应成功: %v", err)
	}
	if result.CompanyName != "测试公司" {
		t.Errorf("期望 CompanyName=测试公司，实际=%s", result.CompanyName)
	}
	if result.StartDate != "2026-03-01" {
		t.Errorf("期望 StartDate=2026-03-01，实际=%s", result.StartDate)
	}
	if result.TotalHoursRequired != 500 {
		t.Errorf("期望 TotalHoursRequired=500，实际=%v", result.TotalHoursRequired)
	}
}

func TestGetMine_NotFound(t *testing.T) {
	svc, _, _ := setupTestInternshipService()

	_, err := svc.GetMine(context.Background(), "nonexistent")

	if !errors.Is(err, ErrInternshipNotFound) {
		t.Errorf("期望 ErrInternshipNotFound，实际: %v", err)
	}
}

// ── UpdateInfo 测试 ──

func TestUpdateInfo_PartialFields(t *testing.T) {
	svc, _, internshipRepo := setupTestInternshipService()
	internship := createTestInternship(internshipRepo, "alice", 500)
	internship.TotalHoursLogged = 42 // 已有进度

	result, err := svc.UpdateInfo(context.Background(), internship.UserID, &dto.UpdateInternshipRequest{
		CompanyName: strPtr("新公司"),
	})

	if err != nil {
		t.Fatalf("UpdateInfo 应成功: %v", err)
	}
	if result.CompanyName != "新公司" {
		t.Errorf("期望 CompanyName=新公司，实际=%s", result.CompanyName)
	}
	// 未提交的字段保持原值
	if result.SupervisorName != "测试导师" {
		t.Errorf("期望 SupervisorName=测试导师，实际=%s", result.SupervisorName)
	}
	// 派生缓存不受档案更新影响
	if result.TotalHoursLogged != 42 {
		t.Errorf("期望 TotalHoursLogged=42，实际=%v", result.TotalHoursLogged)
	}
}

func TestUpdateInfo_AllFields(t *testing.T) {
	svc, _, internshipRepo := setupTestInternshipService()
	internship := createTestInternship(internshipRepo, "alice", 500)

	result, err := svc.UpdateInfo(context.Background(), internship.UserID, &dto.UpdateInternshipRequest{
		CompanyName:        strPtr("新公司"),
		SupervisorName:     strPtr("新导师"),
		StartDate:          strPtr("2026-04-01"),
		TotalHoursRequired: floatPtr(600),
	})

	if err != nil {
		t.Fatalf("UpdateInfo 应成功: %v", err)
	}
	if result.StartDate != "2026-04-01" {
		t.Errorf("期望 StartDate=2026-04-01，实际=%s", result.StartDate)
	}
	if result.TotalHoursRequired != 600 {
		t.Errorf("期望 TotalHoursRequired=600，实际=%v", result.TotalHoursRequired)
	}
}

func TestUpdateInfo_BadDateFormat(t *testing.T) {
	svc, _, internshipRepo := setupTestInternshipService()
	internship := createTestInternship(internshipRepo, "alice", 500)

	_, err := svc.UpdateInfo(context.Background(), internship.UserID, &dto.UpdateInternshipRequest{
		StartDate: strPtr("01/04/2026"),
	})

	if !errors.Is(err, ErrInternshipDateFormat) {
		t.Errorf("期望 ErrInternshipDateFormat，实际: %v", err)
	}
}

// ── GetStats 测试 ──

func TestGetStats_Scenario(t *testing.T) {
	svc, recordSvc, internshipRepo := setupTestInternshipService()
	internship := createTestInternship(internshipRepo, "alice", 500)

	// 两个工作日：4.0h + 4.5h
	if _, err := recordSvc.SaveRecord(context.Background(), internship.UserID, &dto.SaveRecordRequest{
		Year: 2026, Month: 3, Day: 16,
		AmIn: "08:00", AmOut: "12:00",
	}); err != nil {
		t.Fatalf("预置记录失败: %v", err)
	}
	if _, err := recordSvc.SaveRecord(context.Background(), internship.UserID, &dto.SaveRecordRequest{
		Year: 2026, Month: 3, Day: 17,
		PmIn: "13:00", PmOut: "17:30",
	}); err != nil {
		t.Fatalf("预置记录失败: %v", err)
	}

	stats, err := svc.GetStats(context.Background(), internship.UserID)
	if err != nil {
		t.Fatalf("GetStats 应成功: %v", err)
	}

	if stats.TotalLogged != 8.5 {
		t.Errorf("期望 TotalLogged=8.5，实际=%v", stats.TotalLogged)
	}
	if stats.TotalRequired != 500 {
		t.Errorf("期望 TotalRequired=500，实际=%v", stats.TotalRequired)
	}
	if stats.RemainingHours != 491.5 {
		t.Errorf("期望 RemainingHours=491.5，实际=%v", stats.RemainingHours)
	}
	// 8.5/500 = 1.7% ⇒ 向下取整 1
	if stats.PercentComplete != 1 {
		t.Errorf("期望 PercentComplete=1，实际=%d", stats.PercentComplete)
	}
	if stats.PercentRemaining != 99 {
		t.Errorf("期望 PercentRemaining=99，实际=%d", stats.PercentRemaining)
	}
	if stats.TotalDaysLogged != 2 {
		t.Errorf("期望 TotalDaysLogged=2，实际=%d", stats.TotalDaysLogged)
	}
	// 8.5/2 = 4.25 ⇒ 保留一位小数 4.3
	if stats.AverageHoursPerDay != 4.3 {
		t.Errorf("期望 AverageHoursPerDay=4.3，实际=%v", stats.AverageHoursPerDay)
	}
}

func TestGetStats_AfterDelete(t *testing.T) {
	svc, recordSvc, internshipRepo := setupTestInternshipService()
	internship := createTestInternship(internshipRepo, "alice", 500)

	for day, punches := range map[int][2]string{
		16: {"08:00", "12:00"},
		17: {"13:00", "17:30"},
	} {
		req := &dto.SaveRecordRequest{Year: 2026, Month: 3, Day: day}
		if day == 16 {
			req.AmIn, req.AmOut = punches[0], punches[1]
		} else {
			req.PmIn, req.PmOut = punches[0], punches[1]
		}
		if _, err := recordSvc.SaveRecord(context.Background(), internship.UserID, req); err != nil {
			t.Fatalf("预置记录失败: %v", err)
		}
	}

	if _, err := recordSvc.DeleteRecord(context.Background(), internship.UserID, &dto.DeleteRecordRequest{
		Year: 2026, Month: 3, Day: 16,
	}); err != nil {
		t.Fatalf("删除失败: %v", err)
	}

	stats, err := svc.GetStats(context.Background(), internship.UserID)
	if err != nil {
		t.Fatalf("GetStats 应成功: %v", err)
	}
	if stats.TotalLogged != 4.5 {
		t.Errorf("期望 TotalLogged=4.5，实际=%v", stats.TotalLogged)
	}
	if stats.TotalDaysLogged != 1 {
		t.Errorf("期望 TotalDaysLogged=1，实际=%d", stats.TotalDaysLogged)
	}
}

func TestGetStats_HolidayExcludedFromWorkDays(t *testing.T) {
	svc, recordSvc, internshipRepo := setupTestInternshipService()
	internship := createTestInternship(internshipRepo, "alice", 500)

	if _, err := recordSvc.SaveRecord(context.Background(), internship.UserID, &dto.SaveRecordRequest{
		Year: 2026, Month: 3, Day: 16,
		AmIn: "09:00", AmOut: "12:00",
	}); err != nil {
		t.Fatalf("预置记录失败: %v", err)
	}
	if _, err := recordSvc.MarkDay(context.Background(), internship.UserID, &dto.MarkDayRequest{
		Year: 2026, Month: 5, Day: 1, Kind: "holiday",
	}); err != nil {
		t.Fatalf("标记节假日失败: %v", err)
	}

	stats, err := svc.GetStats(context.Background(), internship.UserID)
	if err != nil {
		t.Fatalf("GetStats 应成功: %v", err)
	}
	// 节假日记录不计入打卡天数
	if stats.TotalDaysLogged != 1 {
		t.Errorf("期望 TotalDaysLogged=1，实际=%d", stats.TotalDaysLogged)
	}
	if stats.AverageHoursPerDay != 3.0 {
		t.Errorf("期望 AverageHoursPerDay=3.0，实际=%v", stats.AverageHoursPerDay)
	}
}

func TestGetStats_OverRequiredClampsRemaining(t *testing.T) {
	svc, _, internshipRepo := setupTestInternshipService()
	internship := createTestInternship(internshipRepo, "alice", 10)
	internship.TotalHoursLogged = 12

	stats, err := svc.GetStats(context.Background(), internship.UserID)
	if err != nil {
		t.Fatalf("GetStats 应成功: %v", err)
	}
	if stats.RemainingHours != 0 {
		t.Errorf("超额完成期望 RemainingHours=0，实际=%v", stats.RemainingHours)
	}
	if stats.PercentComplete != 120 {
		t.Errorf("期望 PercentComplete=120，实际=%d", stats.PercentComplete)
	}
}

func TestGetStats_NoRecords(t *testing.T) {
	svc, _, internshipRepo := setupTestInternshipService()
	internship := createTestInternship(internshipRepo, "alice", 500)

	stats, err := svc.GetStats(context.Background(), internship.UserID)
	if err != nil {
		t.Fatalf("GetStats 应成功: %v", err)
	}
	if stats.TotalLogged != 0 || stats.PercentComplete != 0 || stats.AverageHoursPerDay != 0 {
		t.Errorf("空档案统计应全为零值，实际=%+v", stats)
	}
}
