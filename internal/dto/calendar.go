package dto

// ── 日历视图 DTO ──

// CalendarDay 日历中的一天
// 无打卡记录时四个时间均为空、HasRecord=false
type CalendarDay struct {
	Day       int     `json:"day"`
	Weekday   int     `json:"weekday"` // 1=周一 … 7=周日
	AmIn      *string `json:"am_in,omitempty"`
	AmOut     *string `json:"am_out,omitempty"`
	PmIn      *string `json:"pm_in,omitempty"`
	PmOut     *string `json:"pm_out,omitempty"`
	Hours     float64 `json:"hours"`
	IsHoliday bool    `json:"is_holiday"`
	IsWeekend bool    `json:"is_weekend"`
	HasRecord bool    `json:"has_record"`
}

// CalendarMonth 日历中的一个月
type CalendarMonth struct {
	Month      int           `json:"month"`
	MonthHours float64       `json:"month_hours"` // 当月工时小计
	Days       []CalendarDay `json:"days"`
}

// YearCalendarResponse 年度日历响应
type YearCalendarResponse struct {
	Year   int             `json:"year"`
	Months []CalendarMonth `json:"months"`
}
