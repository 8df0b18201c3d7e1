package repository

import (
	"errors"

	"github.com/dlanguage-api/internal/models"

	"gorm.io/gorm"
)

// PaymentMethodRepository 支付方式数据访问接口
type PaymentMethodRepository interface {
	List(onlyActive bool) ([]models.PaymentMethod, error)
	GetByID(id uint) (*models.PaymentMethod, error)
	Create(method *models.PaymentMethod) error
	Update(method *models.PaymentMethod) error
	Delete(id uint) (bool, error)
}

// GormPaymentMethodRepository GORM 实现
type GormPaymentMethodRepository struct {
	db *gorm.DB
}

// NewPaymentMethodRepository 创建支付方式仓库
func NewPaymentMethodRepository(db *gorm.DB) *GormPaymentMethodRepository {
	return &GormPaymentMethodRepository{db: db}
}

// List 支付方式列表
func (r *GormPaymentMethodRepository) List(onlyActive bool) ([]models.PaymentMethod, error) {
	query := r.db.Model(&models.PaymentMethod{})
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	var methods []models.PaymentMethod
	if err := query.Order("id ASC").Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}

// GetByID 根据 ID 获取
func (r *GormPaymentMethodRepository) GetByID(id uint) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	if err := r.db.First(&method, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &method, nil
}

// Create 创建
func (r *GormPaymentMethodRepository) Create(method *models.PaymentMethod) error {
	return r.db.Create(method).Error
}

// Update 更新
func (r *GormPaymentMethodRepository) Update(method *models.PaymentMethod) error {
	return r.db.Save(method).Error
}

// Delete 删除
func (r *GormPaymentMethodRepository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&models.PaymentMethod{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
