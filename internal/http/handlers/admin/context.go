package admin

import (
	handlershared "github.com/dlanguage-api/internal/http/handlers/shared"
	"github.com/dlanguage-api/internal/identity"

	"github.com/gin-gonic/gin"
)

func (h *Handler) currentIdentity(c *gin.Context) (identity.Identity, bool) {
	return handlershared.ResolveIdentity(c, h.Identity)
}

// operatorFields 审计日志中的操作人字段
func operatorFields(c *gin.Context) []interface{} {
	id, err := identity.NewContextResolver().Resolve(c)
	if err != nil {
		return []interface{}{"operator_user_id", 0}
	}
	return []interface{}{"operator_user_id", id.UserID, "operator_role", id.Role}
}
