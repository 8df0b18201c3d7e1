package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// ScheduleDateLayout 排期日期格式
const ScheduleDateLayout = "2006-01-02"

// Schedule 开课日期
type Schedule struct {
	ID           uint           `gorm:"primarykey" json:"schedule_id"` // 主键
	ScheduleDate datatypes.Date `gorm:"not null;uniqueIndex" json:"-"` // 开课日期
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`       // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                    // 更新时间
}

// TableName 指定表名
func (Schedule) TableName() string {
	return "schedules"
}

// DateString 返回 YYYY-MM-DD 格式日期
func (s Schedule) DateString() string {
	return FormatScheduleDate(s.ScheduleDate)
}

// MarshalJSON 日期按 YYYY-MM-DD 输出
func (s Schedule) MarshalJSON() ([]byte, error) {
	type plain Schedule
	return json.Marshal(struct {
		plain
		ScheduleDate string `json:"schedule_date"`
	}{plain: plain(s), ScheduleDate: s.DateString()})
}

// ParseScheduleDate 解析 YYYY-MM-DD
func ParseScheduleDate(raw string) (datatypes.Date, error) {
	t, err := time.ParseInLocation(ScheduleDateLayout, raw, time.UTC)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

// FormatScheduleDate 格式化排期日期
func FormatScheduleDate(d datatypes.Date) string {
	t := time.Time(d)
	if t.IsZero() {
		return ""
	}
	return t.Format(ScheduleDateLayout)
}
