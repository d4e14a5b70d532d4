package model

import "time"

// DailyTimeRecord 每日打卡记录表 — 对应 daily_time_records
//
// 四个打卡时间均为可选（NULL = 未打卡，区别于 00:00），存储格式 HH:MM。
// TotalHours 为派生字段：每次保存时由计时算法重算，调用方不得直接赋值。
// IsHoliday / IsWeekend 两个标记在存储上互不排斥，但任一为 true 时
// 当日工时强制为 0（标记优先于打卡时间，打卡原始值保持不动）。
type DailyTimeRecord struct {
	RecordID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"            json:"record_id"`
	InternshipID string    `gorm:"type:uuid;not null;uniqueIndex:uniq_internship_date"       json:"internship_id"`
	RecordDate   time.Time `gorm:"type:date;not null;uniqueIndex:uniq_internship_date"       json:"record_date"`
	AmIn         *string   `gorm:"type:varchar(5)"                                           json:"am_in,omitempty"`
	AmOut        *string   `gorm:"type:varchar(5)"                                           json:"am_out,omitempty"`
	PmIn         *string   `gorm:"type:varchar(5)"                                           json:"pm_in,omitempty"`
	PmOut        *string   `gorm:"type:varchar(5)"                                           json:"pm_out,omitempty"`
	IsHoliday    bool      `gorm:"not null;default:false"                                    json:"is_holiday"`
	IsWeekend    bool      `gorm:"not null;default:false"                                    json:"is_weekend"`
	TotalHours   float64   `gorm:"not null;default:0"                                        json:"total_hours"` // 派生
	BaseModel

	// 关联
	Internship *Internship `gorm:"foreignKey:InternshipID;references:InternshipID" json:"internship,omitempty"`
}

// TableName 指定表名
func (DailyTimeRecord) TableName() string { return "daily_time_records" }
