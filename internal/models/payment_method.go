package models

import "time"

// PaymentMethod 支付方式
type PaymentMethod struct {
	ID        uint      `gorm:"primarykey" json:"payment_method_id"`                   // 主键
	Name      string    `gorm:"type:varchar(100);not null" json:"payment_method_name"` // 名称
	Logo      string    `gorm:"type:varchar(500)" json:"payment_method_logo"`          // 图标
	IsActive  bool      `gorm:"not null;index" json:"is_active"`                       // 是否启用
	CreatedAt time.Time `gorm:"index" json:"created_at"`                               // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                            // 更新时间
}

// TableName 指定表名
func (PaymentMethod) TableName() string {
	return "payment_methods"
}
