package admin

import (
	handlershared "github.com/dlanguage-api/internal/http/handlers/shared"
	"github.com/dlanguage-api/internal/http/response"
	"github.com/dlanguage-api/internal/identity"
	"github.com/dlanguage-api/internal/repository"
	"github.com/dlanguage-api/internal/service"

	"github.com/gin-gonic/gin"
)

// GetUserLoginLogs 管理端查询登录日志
func (h *Handler) GetUserLoginLogs(c *gin.Context) {
	var query struct {
		UserID      uint   `form:"user_id"`
		Email       string `form:"email"`
		Status      string `form:"status"`
		ClientIP    string `form:"client_ip"`
		CreatedFrom string `form:"created_from"`
		CreatedTo   string `form:"created_to"`
		Page        int    `form:"page"`
		PageSize    int    `form:"page_size"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	from, okFrom := handlershared.ParseOptionalTime(query.CreatedFrom, false)
	to, okTo := handlershared.ParseOptionalTime(query.CreatedTo, true)
	if !okFrom || !okTo {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	page, pageSize := handlershared.NormalizePagination(query.Page, query.PageSize)

	logs, total, err := h.LoginLogService.List(repository.LoginLogListFilter{
		Page:        page,
		PageSize:    pageSize,
		UserID:      query.UserID,
		Email:       query.Email,
		Status:      query.Status,
		ClientIP:    query.ClientIP,
		CreatedFrom: from,
		CreatedTo:   to,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.login_log_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, logs, response.NewPagination(page, pageSize, total))
}

// GetAuthzAuditLogs 管理端查询权限审计日志
func (h *Handler) GetAuthzAuditLogs(c *gin.Context) {
	var query struct {
		OperatorUserID uint   `form:"operator_user_id"`
		Action         string `form:"action"`
		Role           string `form:"role"`
		CreatedFrom    string `form:"created_from"`
		CreatedTo      string `form:"created_to"`
		Page           int    `form:"page"`
		PageSize       int    `form:"page_size"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	from, okFrom := handlershared.ParseOptionalTime(query.CreatedFrom, false)
	to, okTo := handlershared.ParseOptionalTime(query.CreatedTo, true)
	if !okFrom || !okTo {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	page, pageSize := handlershared.NormalizePagination(query.Page, query.PageSize)

	logs, total, err := h.AuthzAuditService.List(repository.AuthzAuditListFilter{
		Page:           page,
		PageSize:       pageSize,
		OperatorUserID: query.OperatorUserID,
		Action:         query.Action,
		Role:           query.Role,
		CreatedFrom:    from,
		CreatedTo:      to,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_audit_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, logs, response.NewPagination(page, pageSize, total))
}

// recordAuthzAudit 写入权限审计；失败只记日志
func (h *Handler) recordAuthzAudit(c *gin.Context, input service.AuthzAuditRecordInput) {
	var resolver identity.Resolver = identity.NewContextResolver()
	if h.Identity != nil {
		resolver = h.Identity
	}
	if id, err := resolver.Resolve(c); err == nil {
		input.OperatorUserID = id.UserID
		input.OperatorRole = id.Role
	}
	input.RequestID = handlershared.RequestID(c)
	if err := h.AuthzAuditService.Record(input); err != nil {
		requestLog(c).Warnw("admin_authz_audit_record_failed", "action", input.Action, "error", err)
	}
}
