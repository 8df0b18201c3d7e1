package shared

import (
	"errors"

	"github.com/dlanguage-api/internal/http/response"
	"github.com/dlanguage-api/internal/i18n"
	"github.com/dlanguage-api/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	locale := i18n.ResolveLocale(c)
	msg := i18n.T(locale, key)
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// RespondErrorWithMsg 返回自定义消息错误响应，并在有原始错误时记录日志。
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// RespondBindError 请求参数校验失败时返回 400，并逐项列出字段错误。
func RespondBindError(c *gin.Context, err error) {
	locale := i18n.ResolveLocale(c)
	msg := i18n.T(locale, "error.bad_request")

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		items := make([]string, 0, len(validationErrs))
		for _, fieldErr := range validationErrs {
			items = append(items, i18n.Sprintf(locale, "validation."+fieldErr.Tag(), fieldErr.Field()))
		}
		response.ErrorWithErrors(c, response.CodeBadRequest, msg, items)
		return
	}
	RequestLog(c).Debugw("request_bind_failed", "error", err)
	response.ErrorWithErrors(c, response.CodeBadRequest, msg, []string{err.Error()})
}
