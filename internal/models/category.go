package models

import "time"

// Category 课程分类（语言）
type Category struct {
	ID          uint      `gorm:"primarykey" json:"category_id"`                               // 主键
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"category_name"` // 名称
	Description string    `gorm:"type:varchar(500)" json:"category_description"`               // 描述
	Image       string    `gorm:"type:varchar(500)" json:"category_image"`                     // 图片
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt   time.Time `json:"updated_at"`                                                  // 更新时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
