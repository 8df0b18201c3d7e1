package models

import "time"

// ScheduleCourse 课程排期（可购买的 offering）
type ScheduleCourse struct {
	ID         uint      `gorm:"primarykey" json:"schedule_course_id"`                                   // 主键
	CourseID   uint      `gorm:"not null;uniqueIndex:idx_schedule_course_pair" json:"course_id"`         // 课程ID
	ScheduleID uint      `gorm:"not null;uniqueIndex:idx_schedule_course_pair;index" json:"schedule_id"` // 排期ID
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                                                // 创建时间
	UpdatedAt  time.Time `json:"updated_at"`                                                             // 更新时间

	Course       *Course   `gorm:"foreignKey:CourseID" json:"-"`   // 关联课程
	Schedule     *Schedule `gorm:"foreignKey:ScheduleID" json:"-"` // 关联排期
	CourseName   string    `gorm:"-" json:"course_name,omitempty"` // 课程名称（展示）
	ScheduleDate string    `gorm:"-" json:"schedule_date"`         // 开课日期（展示）
}

// TableName 指定表名
func (ScheduleCourse) TableName() string {
	return "schedule_courses"
}

// FillDisplay 根据已加载的关联填充展示字段
func (o *ScheduleCourse) FillDisplay() {
	if o == nil {
		return
	}
	if o.Course != nil {
		o.CourseName = o.Course.Name
	}
	if o.Schedule != nil {
		o.ScheduleDate = o.Schedule.DateString()
	}
}
