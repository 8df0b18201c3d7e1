package models

import "time"

// InvoiceNumberSequence 每个前缀已发出的最大发票序号，删除发票后号码也不会回退
type InvoiceNumberSequence struct {
	Prefix    string    `gorm:"type:varchar(32);primaryKey" json:"prefix"` // 发票号前缀
	LastValue int       `gorm:"not null;default:0" json:"last_value"`      // 已发出的最大序号
	UpdatedAt time.Time `json:"updated_at"`                                // 更新时间
}

// TableName 指定表名
func (InvoiceNumberSequence) TableName() string {
	return "invoice_number_sequences"
}
