package service

import (
	"time"

	"github.com/dlanguage-api/internal/logger"
	"github.com/dlanguage-api/internal/models"
	"github.com/dlanguage-api/internal/repository"
)

// AdminCreateInvoiceInput 管理端创建发票输入
type AdminCreateInvoiceInput struct {
	UserID          uint
	PaymentMethodID uint
	CartLineIDs     []uint
	IsPaid          *bool
	Locale          string
}

// UpdateInvoiceInput 管理端状态修正输入
type UpdateInvoiceInput struct {
	PaymentMethodID *uint
	IsPaid          *bool
}

// InvoiceService 发票服务
type InvoiceService struct {
	invoiceRepo       repository.InvoiceRepository
	userRepo          repository.UserRepository
	paymentMethodRepo repository.PaymentMethodRepository
	settlement        *SettlementService
}

// NewInvoiceService 创建发票服务
func NewInvoiceService(invoiceRepo repository.InvoiceRepository, userRepo repository.UserRepository, paymentMethodRepo repository.PaymentMethodRepository, settlement *SettlementService) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:       invoiceRepo,
		userRepo:          userRepo,
		paymentMethodRepo: paymentMethodRepo,
		settlement:        settlement,
	}
}

// ListByUser 用户发票列表
func (s *InvoiceService) ListByUser(userID uint) ([]models.Invoice, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	invoices, err := s.invoiceRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if invoices == nil {
		invoices = []models.Invoice{}
	}
	return invoices, nil
}

// GetForUser 获取用户自己的发票
func (s *InvoiceService) GetForUser(userID, invoiceID uint) (*models.Invoice, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	invoice, err := s.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil || invoice.UserID != userID {
		return nil, ErrInvoiceNotFound
	}
	return invoice, nil
}

// GetByID 管理端获取发票
func (s *InvoiceService) GetByID(invoiceID uint) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}
	return invoice, nil
}

// List 管理端发票列表
func (s *InvoiceService) List(filter repository.InvoiceListFilter) ([]models.Invoice, int64, error) {
	return s.invoiceRepo.List(filter)
}

// CreateForUser 管理端代用户结算；未指定选择时结算整个购物车，is_paid 默认 false
func (s *InvoiceService) CreateForUser(input AdminCreateInvoiceInput) (*models.Invoice, error) {
	if input.UserID == 0 {
		return nil, ErrUserNotFound
	}
	user, err := s.userRepo.GetByID(input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	isPaid := false
	if input.IsPaid != nil {
		isPaid = *input.IsPaid
	}
	return s.settlement.Settle(SettleInput{
		UserID:             user.ID,
		PaymentMethodID:    input.PaymentMethodID,
		CartLineIDs:        input.CartLineIDs,
		IsPaid:             isPaid,
		SelectAllWhenEmpty: true,
		Locale:             input.Locale,
	})
}

// UpdateStatus 管理端状态修正，金额与明细保持不变
func (s *InvoiceService) UpdateStatus(invoiceID uint, input UpdateInvoiceInput) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}
	if input.PaymentMethodID != nil && *input.PaymentMethodID != invoice.PaymentMethodID {
		method, err := s.paymentMethodRepo.GetByID(*input.PaymentMethodID)
		if err != nil {
			return nil, err
		}
		if method == nil {
			return nil, ErrPaymentMethodNotFound
		}
		invoice.PaymentMethodID = method.ID
	}
	if input.IsPaid != nil {
		invoice.IsPaid = *input.IsPaid
	}
	invoice.UpdatedAt = time.Now()
	updated, err := s.invoiceRepo.Update(invoice)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrInvoiceNotFound
	}
	logger.Infow("invoice_status_updated",
		"invoice_id", invoice.ID,
		"payment_method_id", invoice.PaymentMethodID,
		"is_paid", invoice.IsPaid,
	)
	return s.invoiceRepo.GetByID(invoiceID)
}

// Delete 管理端删除发票
func (s *InvoiceService) Delete(invoiceID uint) error {
	deleted, err := s.invoiceRepo.Delete(invoiceID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrInvoiceNotFound
	}
	logger.Infow("invoice_deleted", "invoice_id", invoiceID)
	return nil
}
