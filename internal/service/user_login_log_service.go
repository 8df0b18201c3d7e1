package service

import (
	"errors"
	"strings"
	"time"

	"github.com/dlanguage-api/internal/constants"
	"github.com/dlanguage-api/internal/models"
	"github.com/dlanguage-api/internal/repository"
)

// LoginLogService 登录日志服务
type LoginLogService struct {
	repo     repository.LoginLogRepository
	userRepo repository.UserRepository
}

// NewLoginLogService 创建登录日志服务
func NewLoginLogService(repo repository.LoginLogRepository, userRepo repository.UserRepository) *LoginLogService {
	return &LoginLogService{repo: repo, userRepo: userRepo}
}

// RecordLoginInput 登录日志记录输入
type RecordLoginInput struct {
	UserID    uint
	Email     string
	Err       error
	ClientIP  string
	UserAgent string
	RequestID string
}

// Record 记录一次登录尝试；失败时按邮箱补全用户ID
func (s *LoginLogService) Record(input RecordLoginInput) error {
	if s == nil || s.repo == nil {
		return nil
	}

	email := strings.TrimSpace(input.Email)
	if normalized, err := normalizeEmail(email); err == nil {
		email = normalized
	}

	status := constants.LoginLogStatusSuccess
	failReason := ""
	if input.Err != nil {
		status = constants.LoginLogStatusFailed
		failReason = LoginFailReason(input.Err)
	}

	userID := input.UserID
	if userID == 0 && email != "" && s.userRepo != nil {
		if user, err := s.userRepo.GetByEmail(email); err == nil && user != nil {
			userID = user.ID
		}
	}

	return s.repo.Create(&models.UserLoginLog{
		UserID:     userID,
		Email:      email,
		Status:     status,
		FailReason: failReason,
		ClientIP:   strings.TrimSpace(input.ClientIP),
		UserAgent:  strings.TrimSpace(input.UserAgent),
		RequestID:  strings.TrimSpace(input.RequestID),
		CreatedAt:  time.Now(),
	})
}

// LoginFailReason 将登录错误映射为日志中的失败原因
func LoginFailReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidCredentials):
		return constants.LoginLogFailReasonInvalidCredentials
	case errors.Is(err, ErrEmailNotVerified):
		return constants.LoginLogFailReasonEmailNotVerified
	case errors.Is(err, ErrUserDisabled):
		return constants.LoginLogFailReasonUserDisabled
	default:
		return constants.LoginLogFailReasonInternalError
	}
}

// List 管理端查询登录日志
func (s *LoginLogService) List(filter repository.LoginLogListFilter) ([]models.UserLoginLog, int64, error) {
	if s == nil || s.repo == nil {
		return []models.UserLoginLog{}, 0, nil
	}
	filter.Email = strings.ToLower(strings.TrimSpace(filter.Email))
	filter.Status = strings.ToLower(strings.TrimSpace(filter.Status))
	return s.repo.List(filter)
}

// ListByUser 用户查询自己的登录记录
func (s *LoginLogService) ListByUser(userID uint, page, pageSize int) ([]models.UserLoginLog, int64, error) {
	if s == nil || s.repo == nil || userID == 0 {
		return []models.UserLoginLog{}, 0, nil
	}
	return s.repo.List(repository.LoginLogListFilter{UserID: userID, Page: page, PageSize: pageSize})
}
