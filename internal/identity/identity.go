// Package identity 解析当前请求的调用方身份
package identity

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// 上下文键，由 JWT 中间件写入
const (
	ContextKeyUserID = "user_id"
	ContextKeyEmail  = "user_email"
	ContextKeyRole   = "user_role"
)

// ErrUnauthenticated 请求未携带有效身份
var ErrUnauthenticated = errors.New("unauthenticated")

// Identity 已认证的调用方
type Identity struct {
	UserID uint
	Email  string
	Role   string
}

// Resolver 身份解析能力，购物车与结算只依赖此接口
type Resolver interface {
	Resolve(c *gin.Context) (Identity, error)
}

// ContextResolver 从 gin 上下文读取中间件写入的身份
type ContextResolver struct{}

// NewContextResolver 创建上下文身份解析器
func NewContextResolver() ContextResolver {
	return ContextResolver{}
}

// Resolve 解析身份
func (ContextResolver) Resolve(c *gin.Context) (Identity, error) {
	if c == nil {
		return Identity{}, ErrUnauthenticated
	}
	raw, ok := c.Get(ContextKeyUserID)
	if !ok {
		return Identity{}, ErrUnauthenticated
	}
	userID, ok := raw.(uint)
	if !ok || userID == 0 {
		return Identity{}, ErrUnauthenticated
	}
	return Identity{
		UserID: userID,
		Email:  c.GetString(ContextKeyEmail),
		Role:   c.GetString(ContextKeyRole),
	}, nil
}

// Set 写入身份（JWT 中间件使用）
func Set(c *gin.Context, id Identity) {
	c.Set(ContextKeyUserID, id.UserID)
	c.Set(ContextKeyEmail, id.Email)
	c.Set(ContextKeyRole, id.Role)
}

// Fixed 固定身份，测试与脚本使用
type Fixed struct {
	Identity Identity
}

// Resolve 返回固定身份；UserID 为 0 视为未认证
func (f Fixed) Resolve(*gin.Context) (Identity, error) {
	if f.Identity.UserID == 0 {
		return Identity{}, ErrUnauthenticated
	}
	return f.Identity, nil
}
