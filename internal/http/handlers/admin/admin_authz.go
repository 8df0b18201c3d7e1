package admin

import (
	"net/url"
	"strings"

	"github.com/dlanguage-api/internal/authz"
	"github.com/dlanguage-api/internal/constants"
	handlershared "github.com/dlanguage-api/internal/http/handlers/shared"
	"github.com/dlanguage-api/internal/http/response"
	"github.com/dlanguage-api/internal/service"

	"github.com/gin-gonic/gin"
)

type authzRolePayload struct {
	Role string `json:"role" binding:"required"`
}

type authzPolicyPayload struct {
	Role   string `json:"role" binding:"required"`
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

// GetAuthzMe 获取当前用户角色的权限快照
func (h *Handler) GetAuthzMe(c *gin.Context) {
	id, ok := h.currentIdentity(c)
	if !ok {
		return
	}
	subject, err := authz.SubjectForRole(id.Role)
	if err != nil {
		respondError(c, response.CodeForbidden, "error.forbidden", nil)
		return
	}
	policies, err := h.AuthzService.GetRolePolicies(subject)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{
		"user_id":  id.UserID,
		"role":     subject,
		"policies": policies,
	})
}

// ListAuthzRoles 获取角色列表
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	response.Success(c, roles)
}

// CreateAuthzRole 创建角色
func (h *Handler) CreateAuthzRole(c *gin.Context) {
	var req authzRolePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}

	role, err := h.AuthzService.EnsureRole(req.Role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	requestLog(c).Infow("admin_authz_role_created", append(operatorFields(c), "role", role)...)
	h.recordAuthzAudit(c, service.AuthzAuditRecordInput{Action: constants.AuthzAuditActionRoleCreate, Role: role})
	respondCreated(c, "message.created", gin.H{"role": role})
}

// DeleteAuthzRole 删除角色；预置角色不可删除
func (h *Handler) DeleteAuthzRole(c *gin.Context) {
	role := decodeRoleParam(c.Param("role"))
	if role == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if authz.IsImmutableRole(role) {
		respondError(c, response.CodeConflict, "error.role_immutable", nil)
		return
	}

	if err := h.AuthzService.DeleteRole(role); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	requestLog(c).Infow("admin_authz_role_deleted", append(operatorFields(c), "role", role)...)
	h.recordAuthzAudit(c, service.AuthzAuditRecordInput{Action: constants.AuthzAuditActionRoleDelete, Role: role})
	response.Success(c, gin.H{"deleted": true})
}

// GetAuthzRolePolicies 获取角色策略
func (h *Handler) GetAuthzRolePolicies(c *gin.Context) {
	role := decodeRoleParam(c.Param("role"))
	if role == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	policies, err := h.AuthzService.GetRolePolicies(role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	response.Success(c, policies)
}

// GrantAuthzPolicy 授予角色策略
func (h *Handler) GrantAuthzPolicy(c *gin.Context) {
	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}

	if err := h.AuthzService.GrantRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	requestLog(c).Infow("admin_authz_policy_granted", append(operatorFields(c),
		"role", req.Role,
		"object", authz.NormalizeObject(req.Object),
		"action", authz.NormalizeAction(req.Action),
	)...)
	h.recordAuthzAudit(c, service.AuthzAuditRecordInput{
		Action: constants.AuthzAuditActionPolicyGrant,
		Role:   req.Role,
		Object: authz.NormalizeObject(req.Object),
		Method: authz.NormalizeAction(req.Action),
	})
	response.Success(c, gin.H{"granted": true})
}

// RevokeAuthzPolicy 撤销角色策略
func (h *Handler) RevokeAuthzPolicy(c *gin.Context) {
	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}

	if err := h.AuthzService.RevokeRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	requestLog(c).Infow("admin_authz_policy_revoked", append(operatorFields(c),
		"role", req.Role,
		"object", authz.NormalizeObject(req.Object),
		"action", authz.NormalizeAction(req.Action),
	)...)
	h.recordAuthzAudit(c, service.AuthzAuditRecordInput{
		Action: constants.AuthzAuditActionPolicyRevoke,
		Role:   req.Role,
		Object: authz.NormalizeObject(req.Object),
		Method: authz.NormalizeAction(req.Action),
	})
	response.Success(c, gin.H{"revoked": true})
}

func decodeRoleParam(value string) string {
	decoded, err := url.QueryUnescape(value)
	if err != nil {
		return strings.TrimSpace(value)
	}
	return strings.TrimSpace(decoded)
}
