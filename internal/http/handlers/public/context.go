package public

import (
	handlershared "github.com/dlanguage-api/internal/http/handlers/shared"
	"github.com/dlanguage-api/internal/http/response"
	"github.com/dlanguage-api/internal/i18n"
	"github.com/dlanguage-api/internal/identity"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func (h *Handler) currentIdentity(c *gin.Context) (identity.Identity, bool) {
	return handlershared.ResolveIdentity(c, h.Identity)
}

func respondCreated(c *gin.Context, key string, data interface{}) {
	response.Created(c, i18n.T(i18n.ResolveLocale(c), key), data)
}
