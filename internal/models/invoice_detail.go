package models

import "time"

// InvoiceDetail 发票明细（由购物车行迁移而来）
type InvoiceDetail struct {
	ID            uint      `gorm:"primarykey" json:"invoice_detail_id"` // 主键
	InvoiceID     uint      `gorm:"not null;index" json:"invoice_id"`    // 所属发票
	CartLineID    *uint     `gorm:"index" json:"cart_line_id"`           // 来源购物车行（弱引用，可为空）
	CourseID      uint      `gorm:"not null;index" json:"course_id"`     // 课程ID
	OfferingID    uint      `gorm:"not null;index" json:"offering_id"`   // 课程排期ID
	SubTotalPrice Amount    `gorm:"not null" json:"sub_total_price"`     // 结算时冻结的小计
	CreatedAt     time.Time `json:"created_at"`                          // 创建时间

	Course   *Course         `gorm:"foreignKey:CourseID" json:"-"`   // 关联课程
	Offering *ScheduleCourse `gorm:"foreignKey:OfferingID" json:"-"` // 关联排期

	DetailNo     int    `gorm:"-" json:"detail_no"`     // 序号（从 1 开始）
	CourseName   string `gorm:"-" json:"course_name"`   // 课程名称
	Language     string `gorm:"-" json:"language"`      // 语言（分类名称）
	ScheduleDate string `gorm:"-" json:"schedule_date"` // 开课日期
}

// TableName 指定表名
func (InvoiceDetail) TableName() string {
	return "invoice_details"
}

// HasCartLine 来源购物车行是否仍被引用
func (d *InvoiceDetail) HasCartLine() bool {
	return d != nil && d.CartLineID != nil && *d.CartLineID != 0
}

// FillDisplay 根据已加载的关联填充展示字段
func (d *InvoiceDetail) FillDisplay() {
	if d == nil {
		return
	}
	if d.Course != nil {
		d.CourseName = d.Course.Name
		if d.Course.Category != nil {
			d.Language = d.Course.Category.Name
		}
	}
	if d.Offering != nil && d.Offering.Schedule != nil {
		d.ScheduleDate = d.Offering.Schedule.DateString()
	}
}
