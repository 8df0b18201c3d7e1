package service

import (
	"strings"

	"github.com/dlanguage-api/internal/models"
	"github.com/dlanguage-api/internal/repository"
)

// PaymentMethodService 支付方式服务
type PaymentMethodService struct {
	repo        repository.PaymentMethodRepository
	invoiceRepo repository.InvoiceRepository
}

// NewPaymentMethodService 创建支付方式服务
func NewPaymentMethodService(repo repository.PaymentMethodRepository, invoiceRepo repository.InvoiceRepository) *PaymentMethodService {
	return &PaymentMethodService{repo: repo, invoiceRepo: invoiceRepo}
}

// PaymentMethodInput 支付方式输入
type PaymentMethodInput struct {
	Name     string
	Logo     string
	IsActive *bool
}

// List 支付方式列表
func (s *PaymentMethodService) List(onlyActive bool) ([]models.PaymentMethod, error) {
	return s.repo.List(onlyActive)
}

// GetByID 获取支付方式
func (s *PaymentMethodService) GetByID(id uint) (*models.PaymentMethod, error) {
	method, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, ErrPaymentMethodNotFound
	}
	return method, nil
}

// Create 创建支付方式，默认启用
func (s *PaymentMethodService) Create(input PaymentMethodInput) (*models.PaymentMethod, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	method := models.PaymentMethod{
		Name:     name,
		Logo:     strings.TrimSpace(input.Logo),
		IsActive: true,
	}
	if input.IsActive != nil {
		method.IsActive = *input.IsActive
	}
	if err := s.repo.Create(&method); err != nil {
		return nil, err
	}
	return &method, nil
}

// Update 更新支付方式
func (s *PaymentMethodService) Update(id uint, input PaymentMethodInput) (*models.PaymentMethod, error) {
	method, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	method.Name = name
	method.Logo = strings.TrimSpace(input.Logo)
	if input.IsActive != nil {
		method.IsActive = *input.IsActive
	}
	if err := s.repo.Update(method); err != nil {
		return nil, err
	}
	return method, nil
}

// Delete 删除支付方式，已被发票使用时拒绝（可改为停用）
func (s *PaymentMethodService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	count, err := s.invoiceRepo.CountByPaymentMethod(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrPaymentMethodInUse
	}
	deleted, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPaymentMethodNotFound
	}
	return nil
}
