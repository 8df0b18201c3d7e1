package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表
type User struct {
	ID                         uint           `gorm:"primarykey" json:"user_id"`                                // 主键
	Username                   string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`   // 用户名
	Email                      string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`      // 邮箱
	PasswordHash               string         `gorm:"not null" json:"-"`                                        // 密码哈希（不返回给前端）
	Role                       string         `gorm:"type:varchar(20);not null;default:'member'" json:"role"`   // 角色
	Status                     string         `gorm:"type:varchar(20);not null;default:'active'" json:"status"` // 账号状态
	TokenVersion               uint64         `gorm:"not null;default:0" json:"-"`                              // Token 版本（用于全量失效）
	TokenInvalidBefore         *time.Time     `gorm:"index" json:"-"`                                           // 该时间点前签发的 Token 失效
	EmailVerifiedAt            *time.Time     `json:"email_verified_at"`                                        // 邮箱验证时间
	VerificationToken          string         `gorm:"type:varchar(64);index" json:"-"`                          // 邮箱验证令牌
	VerificationTokenExpiresAt *time.Time     `json:"-"`                                                        // 邮箱验证令牌过期时间
	ResetToken                 string         `gorm:"type:varchar(64);index" json:"-"`                          // 重置密码令牌
	ResetTokenExpiresAt        *time.Time     `json:"-"`                                                        // 重置密码令牌过期时间
	LastLoginAt                *time.Time     `json:"last_login_at"`                                            // 最后登录时间
	CreatedAt                  time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt                  time.Time      `gorm:"index" json:"updated_at"`                                  // 更新时间
	DeletedAt                  gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// IsEmailVerified 邮箱是否已验证
func (u *User) IsEmailVerified() bool {
	return u != nil && u.EmailVerifiedAt != nil
}
