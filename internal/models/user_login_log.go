package models

import "time"

// UserLoginLog 登录尝试记录，失败时 UserID 可能为 0
type UserLoginLog struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	UserID     uint      `gorm:"index" json:"user_id"`
	Email      string    `gorm:"type:varchar(255);index;not null" json:"email"`
	Status     string    `gorm:"type:varchar(20);index;not null" json:"status"`
	FailReason string    `gorm:"type:varchar(50);index" json:"fail_reason,omitempty"`
	ClientIP   string    `gorm:"type:varchar(64);index" json:"client_ip"`
	UserAgent  string    `gorm:"type:text" json:"user_agent"`
	RequestID  string    `gorm:"type:varchar(64)" json:"request_id"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (UserLoginLog) TableName() string {
	return "user_login_logs"
}
