package repository

import "time"

// CartListOptions 购物车查询选项
type CartListOptions struct {
	// WithDisplay 预加载课程、分类与排期，用于展示
	WithDisplay bool
}

// InvoiceListFilter 查询发票列表的过滤条件
type InvoiceListFilter struct {
	Page          int
	PageSize      int
	UserID        uint
	IsPaid        *bool
	InvoiceNumber string
}

// CourseListFilter 查询课程列表的过滤条件
type CourseListFilter struct {
	Page         int
	PageSize     int
	CategoryID   uint
	Search       string
	WithCategory bool
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Status   string
	Role     string
}

// LoginLogListFilter 查询登录日志的过滤条件
type LoginLogListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Email       string
	Status      string
	ClientIP    string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// AuthzAuditListFilter 查询权限审计日志的过滤条件
type AuthzAuditListFilter struct {
	Page           int
	PageSize       int
	OperatorUserID uint
	Action         string
	Role           string
	CreatedFrom    *time.Time
	CreatedTo      *time.Time
}
