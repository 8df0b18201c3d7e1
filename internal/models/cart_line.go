package models

import "time"

// CartLine 购物车行（一个待购买的课程排期）
type CartLine struct {
	ID         uint      `gorm:"primarykey" json:"cart_line_id"`                                            // 主键
	UserID     uint      `gorm:"not null;uniqueIndex:idx_cart_line_user_offering" json:"user_id"`           // 用户ID
	OfferingID uint      `gorm:"not null;uniqueIndex:idx_cart_line_user_offering;index" json:"offering_id"` // 课程排期ID
	CourseID   uint      `gorm:"not null;index" json:"course_id"`                                           // 课程ID
	UnitPrice  Amount    `gorm:"not null" json:"unit_price"`                                                // 加入时锁定的价格
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                                                   // 创建时间
	UpdatedAt  time.Time `json:"updated_at"`                                                                // 更新时间

	Course   *Course         `gorm:"foreignKey:CourseID" json:"-"`   // 关联课程
	Offering *ScheduleCourse `gorm:"foreignKey:OfferingID" json:"-"` // 关联排期

	CourseName   string `gorm:"-" json:"course_name,omitempty"`   // 课程名称（展示）
	CourseImage  string `gorm:"-" json:"course_image,omitempty"`  // 课程图片（展示）
	CategoryName string `gorm:"-" json:"category_name,omitempty"` // 分类名称（展示）
	ScheduleDate string `gorm:"-" json:"schedule_date,omitempty"` // 开课日期（展示）
}

// TableName 指定表名
func (CartLine) TableName() string {
	return "cart_lines"
}

// FillDisplay 根据已加载的关联填充展示字段
func (l *CartLine) FillDisplay() {
	if l == nil {
		return
	}
	if l.Course != nil {
		l.CourseName = l.Course.Name
		l.CourseImage = l.Course.Image
		if l.Course.Category != nil {
			l.CategoryName = l.Course.Category.Name
		}
	}
	if l.Offering != nil && l.Offering.Schedule != nil {
		l.ScheduleDate = l.Offering.Schedule.DateString()
	}
}
