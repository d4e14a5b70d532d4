package dto

// ── 打卡记录模块 DTO ──
//
// 打卡时间一律为 "HH:MM"（24 小时制）文本，空串表示未打卡（区别于 00:00）。
// 日期以 年/月/日 三个整数提交（与前端日历弹窗一致），
// 日的上限与月份相关，在 Service 层校验。

// SaveRecordRequest 保存某日打卡记录请求（按日期 upsert）
type SaveRecordRequest struct {
	Year      int    `json:"year"       binding:"required,min=2000,max=2100"`
	Month     int    `json:"month"      binding:"required,min=1,max=12"`
	Day       int    `json:"day"        binding:"required,min=1,max=31"`
	AmIn      string `json:"am_in"`
	AmOut     string `json:"am_out"`
	PmIn      string `json:"pm_in"`
	PmOut     string `json:"pm_out"`
	IsHoliday *bool  `json:"is_holiday"` // nil = 不修改
	IsWeekend *bool  `json:"is_weekend"` // nil = 不修改
}

// DeleteRecordRequest 删除某日打卡记录请求（Query 参数）
type DeleteRecordRequest struct {
	Year  int `form:"year"  binding:"required,min=2000,max=2100"`
	Month int `form:"month" binding:"required,min=1,max=12"`
	Day   int `form:"day"   binding:"required,min=1,max=31"`
}

// MarkDayRequest 标记/取消标记 节假日或周末 请求
type MarkDayRequest struct {
	Year  int    `json:"year"  binding:"required,min=2000,max=2100"`
	Month int    `json:"month" binding:"required,min=1,max=12"`
	Day   int    `json:"day"   binding:"required,min=1,max=31"`
	Kind  string `json:"kind"  binding:"required,oneof=holiday weekend"`
}

// QuickLogRequest 快速打卡请求：按 am_in → am_out → pm_in → pm_out
// 顺序填入当日第一个空档
type QuickLogRequest struct {
	Year  int    `json:"year"  binding:"required,min=2000,max=2100"`
	Month int    `json:"month" binding:"required,min=1,max=12"`
	Day   int    `json:"day"   binding:"required,min=1,max=31"`
	Time  string `json:"time"  binding:"required"` // "HH:MM"
}

// RecordResponse 单日打卡记录响应
type RecordResponse struct {
	Date       string  `json:"date"` // "2026-03-15"
	AmIn       *string `json:"am_in,omitempty"`
	AmOut      *string `json:"am_out,omitempty"`
	PmIn       *string `json:"pm_in,omitempty"`
	PmOut      *string `json:"pm_out,omitempty"`
	IsHoliday  bool    `json:"is_holiday"`
	IsWeekend  bool    `json:"is_weekend"`
	TotalHours float64 `json:"total_hours"`
}

// DeleteRecordResponse 删除结果响应
type DeleteRecordResponse struct {
	Deleted bool `json:"deleted"` // false 表示当日本无记录（非错误）
}

// ImportHolidaysResponse 节假日 ICS 导入结果响应
type ImportHolidaysResponse struct {
	MarkedDates []string `json:"marked_dates"` // 本次标记为节假日的日期
	Total       int      `json:"total"`
}
