package shared

import (
	"errors"

	"github.com/dlanguage-api/internal/http/response"
	"github.com/dlanguage-api/internal/i18n"

	"github.com/gin-gonic/gin"
)

// MappedError 业务错误到接口错误响应的映射规则。
type MappedError struct {
	Target error
	Code   int
	Key    string
}

// keyedError 自带翻译键与参数的业务错误（如密码策略）。
type keyedError interface {
	error
	Key() string
	Args() []interface{}
}

// RespondWithMappedError 按规则顺序匹配错误并返回；无匹配时使用兜底响应并记录原始错误。
func RespondWithMappedError(c *gin.Context, err error, rules []MappedError, fallbackCode int, fallbackKey string) {
	var keyed keyedError
	if errors.As(err, &keyed) {
		locale := i18n.ResolveLocale(c)
		response.Error(c, response.CodeBadRequest, i18n.Sprintf(locale, keyed.Key(), keyed.Args()...))
		return
	}
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			RespondError(c, rule.Code, rule.Key, nil)
			return
		}
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}

// ConcatMappedErrors 合并多组映射规则。
func ConcatMappedErrors(groups ...[]MappedError) []MappedError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]MappedError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}
