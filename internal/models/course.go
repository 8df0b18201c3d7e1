package models

import "time"

// Course 课程
type Course struct {
	ID          uint      `gorm:"primarykey" json:"course_id"`                   // 主键
	CategoryID  uint      `gorm:"not null;index" json:"category_id"`             // 分类ID
	Name        string    `gorm:"type:varchar(100);not null" json:"course_name"` // 名称
	Price       Amount    `gorm:"not null;default:0" json:"course_price"`        // 当前价格
	Image       string    `gorm:"type:varchar(500)" json:"course_image"`         // 封面
	Description string    `gorm:"type:text" json:"course_description"`           // 描述
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                       // 创建时间
	UpdatedAt   time.Time `json:"updated_at"`                                    // 更新时间

	Category     *Category `gorm:"foreignKey:CategoryID" json:"-"` // 关联分类
	CategoryName string    `gorm:"-" json:"category_name"`         // 分类名称（展示）
}

// TableName 指定表名
func (Course) TableName() string {
	return "courses"
}

// FillDisplay 根据已加载的关联填充展示字段
func (c *Course) FillDisplay() {
	if c == nil || c.Category == nil {
		return
	}
	c.CategoryName = c.Category.Name
}
