package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuthzAuditLog 角色与策略变更审计
type AuthzAuditLog struct {
	ID             uint              `gorm:"primarykey" json:"id"`
	OperatorUserID uint              `gorm:"index;not null" json:"operator_user_id"`
	OperatorRole   string            `gorm:"type:varchar(50);not null;default:''" json:"operator_role"`
	TargetUserID   *uint             `gorm:"index" json:"target_user_id,omitempty"`
	Action         string            `gorm:"type:varchar(50);index;not null" json:"action"`
	Role           string            `gorm:"type:varchar(120);index;not null;default:''" json:"role"`
	Object         string            `gorm:"type:varchar(255);not null;default:''" json:"object"`
	Method         string            `gorm:"type:varchar(20);not null;default:''" json:"method"`
	RequestID      string            `gorm:"type:varchar(64);not null;default:''" json:"request_id"`
	Detail         datatypes.JSONMap `json:"detail,omitempty"`
	CreatedAt      time.Time         `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (AuthzAuditLog) TableName() string {
	return "authz_audit_logs"
}
