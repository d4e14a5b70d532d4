package model

import "time"

// Internship 实习档案表 — 对应 internships
//
// TotalHoursLogged 为派生缓存字段：恒等于该实习所有打卡记录
// total_hours 之和，只允许由重算逻辑（DailyRecordRepository 的
// reconcile）写入，任何其他写路径都不得直接修改。
type Internship struct {
	InternshipID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"internship_id"`
	UserID             string    `gorm:"type:uuid;not null;uniqueIndex"                 json:"user_id"` // 1:1
	CompanyName        string    `gorm:"type:varchar(200);not null;default:''"          json:"company_name"`
	SupervisorName     string    `gorm:"type:varchar(100);not null;default:''"          json:"supervisor_name"`
	StartDate          time.Time `gorm:"type:date;not null"                             json:"start_date"`
	TotalHoursRequired float64   `gorm:"not null"                                       json:"total_hours_required"`
	TotalHoursLogged   float64   `gorm:"not null;default:0"                             json:"total_hours_logged"` // 派生缓存
	BaseModel
}

// TableName 指定表名
func (Internship) TableName() string { return "internships" }
