package model

// User 用户表 — 对应 users
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username     string `gorm:"type:varchar(50);not null;uniqueIndex"          json:"username"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	BaseModel

	// 关联（1:1，账号删除时级联删除实习档案）
	Internship *Internship `gorm:"foreignKey:UserID;references:UserID" json:"internship,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }
