package models

import "time"

// Invoice 发票头
type Invoice struct {
	ID              uint      `gorm:"primarykey" json:"invoice_id"`                                // 主键
	InvoiceNumber   string    `gorm:"type:varchar(32);uniqueIndex;not null" json:"invoice_number"` // 发票号（唯一递增）
	UserID          uint      `gorm:"not null;index" json:"user_id"`                               // 用户ID
	TotalPrice      Amount    `gorm:"not null;default:0" json:"total_price"`                       // 总价（结算时冻结）
	PaymentMethodID uint      `gorm:"not null;index" json:"payment_method_id"`                     // 支付方式ID
	IsPaid          bool      `gorm:"not null;index" json:"is_paid"`                               // 是否已支付
	CreatedAt       time.Time `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt       time.Time `json:"updated_at"`                                                  // 更新时间

	PaymentMethod     *PaymentMethod  `gorm:"foreignKey:PaymentMethodID" json:"-"`           // 关联支付方式
	Details           []InvoiceDetail `gorm:"foreignKey:InvoiceID" json:"details,omitempty"` // 发票明细
	PaymentMethodName string          `gorm:"-" json:"payment_method_name"`                  // 支付方式名称（展示）
	TotalCourses      int             `gorm:"-" json:"total_courses"`                        // 明细数量（展示）
}

// TableName 指定表名
func (Invoice) TableName() string {
	return "invoices"
}

// DetailTotal 计算明细小计之和
func (i *Invoice) DetailTotal() Amount {
	if i == nil {
		return 0
	}
	var total Amount
	for _, d := range i.Details {
		total += d.SubTotalPrice
	}
	return total
}

// FillDisplay 根据已加载的关联填充展示字段
func (i *Invoice) FillDisplay() {
	if i == nil {
		return
	}
	if i.PaymentMethod != nil {
		i.PaymentMethodName = i.PaymentMethod.Name
	}
	if len(i.Details) > 0 {
		i.TotalCourses = len(i.Details)
	}
	for idx := range i.Details {
		i.Details[idx].DetailNo = idx + 1
		i.Details[idx].FillDisplay()
	}
}
