package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/dlanguage-api/internal/constants"
	"github.com/dlanguage-api/internal/models"

	"gorm.io/gorm"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	GetByEmail(email string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	GetByVerificationToken(token string) (*models.User, error)
	GetByResetToken(token string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	List(filter UserListFilter) ([]models.User, int64, error)
	UpdateRoleStatus(userID uint, role, status string) error
}

// GormUserRepository GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) firstBy(column, value string) (*models.User, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	var user models.User
	if err := r.db.Where(column+" = ?", value).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail 根据邮箱获取用户
func (r *GormUserRepository) GetByEmail(email string) (*models.User, error) {
	return r.firstBy("email", email)
}

// GetByUsername 根据用户名获取用户
func (r *GormUserRepository) GetByUsername(username string) (*models.User, error) {
	return r.firstBy("username", username)
}

// GetByVerificationToken 根据邮箱验证令牌获取用户
func (r *GormUserRepository) GetByVerificationToken(token string) (*models.User, error) {
	return r.firstBy("verification_token", token)
}

// GetByResetToken 根据重置令牌获取用户
func (r *GormUserRepository) GetByResetToken(token string) (*models.User, error) {
	return r.firstBy("reset_token", token)
}

// GetByID 根据 ID 获取用户
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create 创建用户
func (r *GormUserRepository) Create(user *models.User) error {
	return translateUniqueViolation(r.db.Create(user).Error)
}

// Update 更新用户
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// List 用户列表
func (r *GormUserRepository) List(filter UserListFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})

	if condition, args := buildLikeCondition(r.db, filter.Keyword, "email", "username"); condition != "" {
		query = query.Where(condition, args...)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var users []models.User
	if err := query.Order("id DESC").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// UpdateRoleStatus 更新角色与状态；禁用或角色变化时令已签发 Token 失效
func (r *GormUserRepository) UpdateRoleStatus(userID uint, role, status string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"role":       role,
		"status":     status,
		"updated_at": now,
	}
	var current models.User
	if err := r.db.Select("id", "role", "status").First(&current, userID).Error; err != nil {
		return err
	}
	if current.Role != role || strings.ToLower(strings.TrimSpace(status)) == constants.UserStatusDisabled {
		updates["token_invalid_before"] = now
		updates["token_version"] = gorm.Expr("token_version + 1")
	}
	return r.db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
}
