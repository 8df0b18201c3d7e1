package shared

import (
	"strconv"
	"strings"
	"time"

	"github.com/dlanguage-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ParseIDParam 解析路径中的正整数 ID，失败时直接返回 400。
func ParseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		RespondError(c, response.CodeBadRequest, "error.id_invalid", nil)
		return 0, false
	}
	return uint(id), true
}

// ParseOptionalBool 解析可选布尔查询参数，空值返回 nil。
func ParseOptionalBool(raw string) (*bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, false
	}
	return &value, true
}

// ParseOptionalUint 解析可选整数查询参数，空值返回 0。
func ParseOptionalUint(raw string) (uint, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, true
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(value), true
}

// ParseOptionalTime 解析可选时间参数，支持 RFC3339 与 YYYY-MM-DD；endOfDay 时日期取当日末尾。
func ParseOptionalTime(raw string, endOfDay bool) (*time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	if value, err := time.Parse(time.RFC3339, raw); err == nil {
		return &value, true
	}
	value, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return nil, false
	}
	if endOfDay {
		value = value.Add(24*time.Hour - time.Nanosecond)
	}
	return &value, true
}
