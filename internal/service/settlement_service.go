package service

import (
	"errors"

	"github.com/dlanguage-api/internal/config"
	"github.com/dlanguage-api/internal/constants"
	"github.com/dlanguage-api/internal/logger"
	"github.com/dlanguage-api/internal/models"
	"github.com/dlanguage-api/internal/queue"
	"github.com/dlanguage-api/internal/repository"

	"gorm.io/gorm"
)

// invoiceNumberSource 序号来源
type invoiceNumberSource interface {
	NextNumber(repo invoiceNumberReader, afterConflict bool) (int, error)
	Record(repo invoiceNumberWriter, value int) error
	Format(value int) string
}

// SettleInput 结算输入
type SettleInput struct {
	UserID          uint
	PaymentMethodID uint
	CartLineIDs     []uint
	// IsPaid 由调用入口显式决定：用户结算为 true，管理端创建默认 false
	IsPaid bool
	// SelectAllWhenEmpty 选择为空时结算整个购物车（仅管理端使用）
	SelectAllWhenEmpty bool
	Locale             string
}

// SettlementService 购物车结算服务
type SettlementService struct {
	cartRepo          repository.CartRepository
	invoiceRepo       repository.InvoiceRepository
	paymentMethodRepo repository.PaymentMethodRepository
	queueClient       *queue.Client
	numbering         invoiceNumberSource
	maxAttempts       int
}

// NewSettlementService 创建结算服务
func NewSettlementService(cartRepo repository.CartRepository, invoiceRepo repository.InvoiceRepository, paymentMethodRepo repository.PaymentMethodRepository, queueClient *queue.Client, cfg config.InvoiceConfig) *SettlementService {
	maxAttempts := cfg.NumberMaxRetries
	if maxAttempts <= 0 {
		maxAttempts = constants.DefaultInvoiceNumberRetry
	}
	return &SettlementService{
		cartRepo:          cartRepo,
		invoiceRepo:       invoiceRepo,
		paymentMethodRepo: paymentMethodRepo,
		queueClient:       queueClient,
		numbering:         NewInvoiceNumbering(cfg.NumberPrefix),
		maxAttempts:       maxAttempts,
	}
}

// Settle 将选中的购物车行转换为发票
func (s *SettlementService) Settle(input SettleInput) (*models.Invoice, error) {
	if len(input.CartLineIDs) == 0 && !input.SelectAllWhenEmpty {
		return nil, ErrSettlementSelectionEmpty
	}
	if input.UserID == 0 {
		return nil, ErrUnauthenticated
	}
	if err := s.ensurePaymentMethod(input.PaymentMethodID); err != nil {
		return nil, err
	}

	var invoiceID uint
	for attempt := 1; ; attempt++ {
		id, err := s.settleOnce(input, attempt > 1)
		if err == nil {
			invoiceID = id
			break
		}
		if !errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, err
		}
		if attempt >= s.maxAttempts {
			logger.Errorw("invoice_number_conflict_exhausted",
				"user_id", input.UserID,
				"attempts", attempt,
			)
			return nil, ErrInvoiceNumberConflict
		}
		logger.Warnw("invoice_number_conflict_retry",
			"user_id", input.UserID,
			"attempt", attempt,
		)
	}

	invoice, err := s.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}

	logger.Infow("settlement_committed",
		"user_id", input.UserID,
		"invoice_id", invoice.ID,
		"invoice_number", invoice.InvoiceNumber,
		"total_price", invoice.TotalPrice.Int64(),
		"lines", len(invoice.Details),
		"is_paid", invoice.IsPaid,
	)

	if err := s.queueClient.EnqueueInvoiceReceipt(queue.InvoiceReceiptPayload{
		InvoiceID: invoice.ID,
		Locale:    input.Locale,
	}); err != nil {
		logger.Warnw("invoice_receipt_enqueue_failed",
			"invoice_id", invoice.ID,
			"error", err,
		)
	}
	return invoice, nil
}

func (s *SettlementService) ensurePaymentMethod(paymentMethodID uint) error {
	if paymentMethodID == 0 {
		return ErrPaymentMethodNotFound
	}
	method, err := s.paymentMethodRepo.GetByID(paymentMethodID)
	if err != nil {
		return err
	}
	if method == nil {
		return ErrPaymentMethodNotFound
	}
	if !method.IsActive {
		return ErrPaymentMethodInactive
	}
	return nil
}

// settleOnce 单次事务：锁定购物车行、分配发票号、写发票头与明细、移除购物车行。
// 重试时按现存最大合法发票号分配，避免重复撞上同一个号码。
func (s *SettlementService) settleOnce(input SettleInput, afterConflict bool) (uint, error) {
	var invoiceID uint
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		invoiceRepo := s.invoiceRepo.WithTx(tx)

		lines, err := cartRepo.ListByUserForUpdate(input.UserID)
		if err != nil {
			return err
		}
		selected := selectCartLines(lines, input.CartLineIDs, input.SelectAllWhenEmpty)
		if len(selected) == 0 {
			return ErrSettlementNoMatchingItems
		}

		var total models.Amount
		for _, line := range selected {
			total += line.UnitPrice
		}

		next, err := s.numbering.NextNumber(invoiceRepo, afterConflict)
		if err != nil {
			return err
		}
		invoice := &models.Invoice{
			InvoiceNumber:   s.numbering.Format(next),
			UserID:          input.UserID,
			TotalPrice:      total,
			PaymentMethodID: input.PaymentMethodID,
			IsPaid:          input.IsPaid,
		}
		if err := invoiceRepo.CreateHeader(invoice); err != nil {
			return err
		}
		if err := s.numbering.Record(invoiceRepo, next); err != nil {
			return err
		}

		// 先写明细再移除购物车行
		for _, line := range selected {
			lineID := line.ID
			if err := invoiceRepo.AddDetail(&models.InvoiceDetail{
				InvoiceID:     invoice.ID,
				CartLineID:    &lineID,
				CourseID:      line.CourseID,
				OfferingID:    line.OfferingID,
				SubTotalPrice: line.UnitPrice,
			}); err != nil {
				return err
			}
			removed, err := cartRepo.Remove(input.UserID, line.ID)
			if err != nil {
				return err
			}
			if !removed {
				return ErrCartLineChanged
			}
		}
		invoiceID = invoice.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return invoiceID, nil
}

// selectCartLines 按购物车顺序取选择与购物车的交集，不属于该用户的 ID 被忽略
func selectCartLines(lines []models.CartLine, selection []uint, selectAllWhenEmpty bool) []models.CartLine {
	if len(selection) == 0 {
		if selectAllWhenEmpty {
			return lines
		}
		return nil
	}
	wanted := make(map[uint]struct{}, len(selection))
	for _, id := range selection {
		wanted[id] = struct{}{}
	}
	selected := make([]models.CartLine, 0, len(selection))
	for _, line := range lines {
		if _, ok := wanted[line.ID]; ok {
			selected = append(selected, line)
		}
	}
	return selected
}
