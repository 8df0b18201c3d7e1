package service

import (
	"context"
	"strings"

	"github.com/dlanguage-api/internal/cache"
	"github.com/dlanguage-api/internal/constants"
	"github.com/dlanguage-api/internal/logger"
	"github.com/dlanguage-api/internal/models"
	"github.com/dlanguage-api/internal/repository"
)

// UserService 管理端用户服务
type UserService struct {
	userRepo    repository.UserRepository
	invoiceRepo repository.InvoiceRepository
}

// NewUserService 创建用户服务
func NewUserService(userRepo repository.UserRepository, invoiceRepo repository.InvoiceRepository) *UserService {
	return &UserService{userRepo: userRepo, invoiceRepo: invoiceRepo}
}

// UserDetail 管理端用户详情
type UserDetail struct {
	User         *models.User  `json:"user"`
	InvoiceTotal models.Amount `json:"invoice_total"`
}

// UpdateUserInput 管理端修改角色与状态
type UpdateUserInput struct {
	Role   *string
	Status *string
}

// List 用户列表
func (s *UserService) List(filter repository.UserListFilter) ([]models.User, int64, error) {
	filter.Keyword = strings.TrimSpace(filter.Keyword)
	filter.Status = strings.ToLower(strings.TrimSpace(filter.Status))
	filter.Role = strings.ToLower(strings.TrimSpace(filter.Role))
	return s.userRepo.List(filter)
}

// GetDetail 用户详情（含累计发票金额）
func (s *UserService) GetDetail(id uint) (*UserDetail, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	total, err := s.invoiceRepo.TotalPriceByUser(id)
	if err != nil {
		return nil, err
	}
	return &UserDetail{User: user, InvoiceTotal: total}, nil
}

// Update 修改角色与状态
func (s *UserService) Update(id uint, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	role := user.Role
	if input.Role != nil {
		role = strings.ToLower(strings.TrimSpace(*input.Role))
		if !isValidRole(role) {
			return nil, ErrInvalidRole
		}
	}
	status := user.Status
	if input.Status != nil {
		status = strings.ToLower(strings.TrimSpace(*input.Status))
		if status != constants.UserStatusActive && status != constants.UserStatusDisabled {
			return nil, ErrInvalidUserStatus
		}
	}

	if err := s.userRepo.UpdateRoleStatus(id, role, status); err != nil {
		return nil, err
	}
	_ = cache.DelUserAuthState(context.Background(), id)
	logger.Infow("user_role_status_updated",
		"user_id", id,
		"role", role,
		"status", status,
	)
	return s.userRepo.GetByID(id)
}

func isValidRole(role string) bool {
	switch role {
	case constants.UserRoleMember, constants.UserRoleAdmin, constants.UserRoleFinance:
		return true
	default:
		return false
	}
}
