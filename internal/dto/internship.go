package dto

// ── 实习档案模块 DTO ──

// UpdateInternshipRequest 更新实习档案请求
type UpdateInternshipRequest struct {
	CompanyName        *string  `json:"company_name"         binding:"omitempty,max=200"`
	SupervisorName     *string  `json:"supervisor_name"      binding:"omitempty,max=100"`
	StartDate          *string  `json:"start_date"`
	TotalHoursRequired *float64 `json:"total_hours_required" binding:"omitempty,gt=0"`
}

// InternshipResponse 实习档案响应
type InternshipResponse struct {
	ID                 string  `json:"id"`
	CompanyName        string  `json:"company_name"`
	SupervisorName     string  `json:"supervisor_name"`
	StartDate          string  `json:"start_date"`
	TotalHoursRequired float64 `json:"total_hours_required"`
	TotalHoursLogged   float64 `json:"total_hours_logged"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

// StatsResponse 实习进度统计响应
type StatsResponse struct {
	TotalLogged        float64 `json:"total_logged"`
	TotalRequired      float64 `json:"total_required"`
	RemainingHours     float64 `json:"remaining_hours"`
	PercentComplete    int     `json:"percent_complete"`  // 向下取整
	PercentRemaining   int     `json:"percent_remaining"` // 100 - percent_complete
	TotalDaysLogged    int64   `json:"total_days_logged"` // 非节假日/周末的打卡天数
	AverageHoursPerDay float64 `json:"average_hours_per_day"`
}
