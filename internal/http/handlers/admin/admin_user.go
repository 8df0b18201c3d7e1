package admin

import (
	"github.com/dlanguage-api/internal/constants"
	handlershared "github.com/dlanguage-api/internal/http/handlers/shared"
	"github.com/dlanguage-api/internal/http/response"
	"github.com/dlanguage-api/internal/repository"
	"github.com/dlanguage-api/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateAdminUserRequest 管理员更新用户请求
type UpdateAdminUserRequest struct {
	Role   *string `json:"role"`
	Status *string `json:"status"`
}

// GetAdminUsers 获取用户列表
func (h *Handler) GetAdminUsers(c *gin.Context) {
	var query struct {
		Keyword  string `form:"keyword"`
		Status   string `form:"status"`
		Role     string `form:"role"`
		Page     int    `form:"page"`
		PageSize int    `form:"page_size"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	page, pageSize := handlershared.NormalizePagination(query.Page, query.PageSize)

	users, total, err := h.UserService.List(repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  query.Keyword,
		Status:   query.Status,
		Role:     query.Role,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.user_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, users, response.NewPagination(page, pageSize, total))
}

// GetAdminUser 获取用户详情
func (h *Handler) GetAdminUser(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	detail, err := h.UserService.GetDetail(id)
	if err != nil {
		respondWithMappedError(c, err, adminUserErrorRules, response.CodeInternal, "error.user_fetch_failed")
		return
	}
	response.Success(c, detail)
}

// UpdateAdminUser 修改用户角色与状态
func (h *Handler) UpdateAdminUser(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateAdminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	if req.Role == nil && req.Status == nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	user, err := h.UserService.Update(id, service.UpdateUserInput{Role: req.Role, Status: req.Status})
	if err != nil {
		respondWithMappedError(c, err, adminUserErrorRules, response.CodeInternal, "error.user_update_failed")
		return
	}
	requestLog(c).Infow("admin_user_updated", append(operatorFields(c),
		"user_id", user.ID,
		"role", user.Role,
		"status", user.Status,
	)...)
	if req.Role != nil {
		targetID := user.ID
		h.recordAuthzAudit(c, service.AuthzAuditRecordInput{
			Action:       constants.AuthzAuditActionUserRole,
			Role:         user.Role,
			TargetUserID: &targetID,
			Detail:       map[string]interface{}{"status": user.Status},
		})
	}
	response.Success(c, user)
}
