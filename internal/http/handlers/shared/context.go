package shared

import (
	"github.com/dlanguage-api/internal/http/response"
	"github.com/dlanguage-api/internal/identity"

	"github.com/gin-gonic/gin"
)

// ResolveIdentity 解析调用方身份，未认证时直接返回 401。
func ResolveIdentity(c *gin.Context, resolver identity.Resolver) (identity.Identity, bool) {
	if resolver == nil {
		resolver = identity.NewContextResolver()
	}
	id, err := resolver.Resolve(c)
	if err != nil {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return identity.Identity{}, false
	}
	return id, true
}

// RequestID 读取中间件写入的请求 ID
func RequestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if value, ok := c.Get("request_id"); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
