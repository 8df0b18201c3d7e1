package service

import (
	"strings"
	"time"

	"github.com/dlanguage-api/internal/models"
	"github.com/dlanguage-api/internal/repository"

	"gorm.io/datatypes"
)

// AuthzAuditRecordInput 权限审计记录输入
type AuthzAuditRecordInput struct {
	OperatorUserID uint
	OperatorRole   string
	TargetUserID   *uint
	Action         string
	Role           string
	Object         string
	Method         string
	RequestID      string
	Detail         map[string]interface{}
}

// AuthzAuditService 权限审计服务
type AuthzAuditService struct {
	repo repository.AuthzAuditLogRepository
}

// NewAuthzAuditService 创建权限审计服务
func NewAuthzAuditService(repo repository.AuthzAuditLogRepository) *AuthzAuditService {
	return &AuthzAuditService{repo: repo}
}

// Record 记录权限变更；缺少操作人或动作时忽略
func (s *AuthzAuditService) Record(input AuthzAuditRecordInput) error {
	if s == nil || s.repo == nil {
		return nil
	}
	action := strings.TrimSpace(input.Action)
	if input.OperatorUserID == 0 || action == "" {
		return nil
	}

	item := &models.AuthzAuditLog{
		OperatorUserID: input.OperatorUserID,
		OperatorRole:   strings.TrimSpace(input.OperatorRole),
		TargetUserID:   input.TargetUserID,
		Action:         action,
		Role:           strings.TrimSpace(input.Role),
		Object:         strings.TrimSpace(input.Object),
		Method:         strings.ToUpper(strings.TrimSpace(input.Method)),
		RequestID:      strings.TrimSpace(input.RequestID),
		CreatedAt:      time.Now(),
	}
	if len(input.Detail) > 0 {
		item.Detail = datatypes.JSONMap(input.Detail)
	}
	return s.repo.Create(item)
}

// List 管理端查询权限审计日志
func (s *AuthzAuditService) List(filter repository.AuthzAuditListFilter) ([]models.AuthzAuditLog, int64, error) {
	if s == nil || s.repo == nil {
		return []models.AuthzAuditLog{}, 0, nil
	}
	return s.repo.List(filter)
}
