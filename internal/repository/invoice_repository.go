package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/dlanguage-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InvoiceRepository 发票数据访问接口
type InvoiceRepository interface {
	CreateHeader(invoice *models.Invoice) error
	AddDetail(detail *models.InvoiceDetail) error
	GetByID(id uint) (*models.Invoice, error)
	ListByUser(userID uint) ([]models.Invoice, error)
	List(filter InvoiceListFilter) ([]models.Invoice, int64, error)
	TotalPriceByUser(userID uint) (models.Amount, error)
	LastInvoiceNumber() (string, bool, error)
	ListInvoiceNumbersByPrefix(prefix string, offset, limit int) ([]string, error)
	LastIssuedNumber(prefix string) (int, bool, error)
	SaveIssuedNumber(prefix string, value int) error
	Update(invoice *models.Invoice) (bool, error)
	Delete(id uint) (bool, error)
	CountByPaymentMethod(paymentMethodID uint) (int64, error)
	CountDetailsByCourse(courseID uint) (int64, error)
	CountDetailsByOffering(offeringID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormInvoiceRepository
}

// GormInvoiceRepository GORM 实现
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository 创建发票仓库
func NewInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// WithTx 绑定事务
func (r *GormInvoiceRepository) WithTx(tx *gorm.DB) *GormInvoiceRepository {
	if tx == nil {
		return r
	}
	return &GormInvoiceRepository{db: tx}
}

// CreateHeader 写入发票头（不含明细）
func (r *GormInvoiceRepository) CreateHeader(invoice *models.Invoice) error {
	if invoice == nil {
		return nil
	}
	// 明细由 AddDetail 单独写入
	return translateUniqueViolation(r.db.Omit("Details", "PaymentMethod").Create(invoice).Error)
}

// AddDetail 追加一条发票明细
func (r *GormInvoiceRepository) AddDetail(detail *models.InvoiceDetail) error {
	if detail == nil {
		return nil
	}
	return r.db.Omit("Course", "Offering").Create(detail).Error
}

// GetByID 获取发票及其明细
func (r *GormInvoiceRepository) GetByID(id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.
		Preload("PaymentMethod").
		Preload("Details", func(db *gorm.DB) *gorm.DB {
			return db.Order("invoice_details.id ASC")
		}).
		Preload("Details.Course.Category").
		Preload("Details.Offering.Schedule").
		First(&invoice, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	invoice.FillDisplay()
	return &invoice, nil
}

// ListByUser 用户发票列表，最新在前，不展开明细
func (r *GormInvoiceRepository) ListByUser(userID uint) ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := r.db.Preload("PaymentMethod").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	if err := r.annotate(invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// List 管理端发票列表
func (r *GormInvoiceRepository) List(filter InvoiceListFilter) ([]models.Invoice, int64, error) {
	query := r.db.Model(&models.Invoice{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.IsPaid != nil {
		query = query.Where("is_paid = ?", *filter.IsPaid)
	}
	if number := strings.TrimSpace(filter.InvoiceNumber); number != "" {
		condition, args := buildLikeCondition(r.db, number, "invoice_number")
		query = query.Where(condition, args...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var invoices []models.Invoice
	if err := query.Preload("PaymentMethod").Order("created_at DESC, id DESC").Find(&invoices).Error; err != nil {
		return nil, 0, err
	}
	if err := r.annotate(invoices); err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

// annotate 填充支付方式名称与明细数量
func (r *GormInvoiceRepository) annotate(invoices []models.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(invoices))
	for _, inv := range invoices {
		ids = append(ids, inv.ID)
	}

	type detailCount struct {
		InvoiceID uint
		Total     int
	}
	var counts []detailCount
	if err := r.db.Model(&models.InvoiceDetail{}).
		Select("invoice_id, COUNT(*) AS total").
		Where("invoice_id IN ?", ids).
		Group("invoice_id").
		Scan(&counts).Error; err != nil {
		return err
	}
	countMap := make(map[uint]int, len(counts))
	for _, c := range counts {
		countMap[c.InvoiceID] = c.Total
	}
	for i := range invoices {
		invoices[i].FillDisplay()
		invoices[i].TotalCourses = countMap[invoices[i].ID]
	}
	return nil
}

// TotalPriceByUser 汇总用户发票金额
func (r *GormInvoiceRepository) TotalPriceByUser(userID uint) (models.Amount, error) {
	var total int64
	if err := r.db.Model(&models.Invoice{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return models.Amount(total), nil
}

// LastInvoiceNumber 读取最近创建的发票号
func (r *GormInvoiceRepository) LastInvoiceNumber() (string, bool, error) {
	var invoice models.Invoice
	err := r.db.Select("id", "invoice_number").Order("id DESC").Limit(1).Take(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return invoice.InvoiceNumber, true, nil
}

// ListInvoiceNumbersByPrefix 按前缀列出发票号，长度降序再按字典序降序
func (r *GormInvoiceRepository) ListInvoiceNumbersByPrefix(prefix string, offset, limit int) ([]string, error) {
	if prefix == "" || limit <= 0 {
		return nil, nil
	}
	if offset < 0 {
		offset = 0
	}
	var numbers []string
	err := r.db.Model(&models.Invoice{}).
		Where("SUBSTR(invoice_number, 1, ?) = ?", len(prefix), prefix).
		Order("LENGTH(invoice_number) DESC").
		Order("invoice_number DESC").
		Offset(offset).
		Limit(limit).
		Pluck("invoice_number", &numbers).Error
	if err != nil {
		return nil, err
	}
	return numbers, nil
}

// LastIssuedNumber 读取前缀已发出的最大序号，支持的方言上加行锁
func (r *GormInvoiceRepository) LastIssuedNumber(prefix string) (int, bool, error) {
	var sequence models.InvoiceNumberSequence
	err := lockForUpdate(r.db).Where("prefix = ?", prefix).Take(&sequence).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return sequence.LastValue, true, nil
}

// SaveIssuedNumber 记录前缀已发出的序号
func (r *GormInvoiceRepository) SaveIssuedNumber(prefix string, value int) error {
	sequence := models.InvoiceNumberSequence{Prefix: prefix, LastValue: value, UpdatedAt: time.Now()}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "prefix"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_value", "updated_at"}),
	}).Create(&sequence).Error
}

// Update 更新发票状态字段（金额与明细不可变）
func (r *GormInvoiceRepository) Update(invoice *models.Invoice) (bool, error) {
	if invoice == nil || invoice.ID == 0 {
		return false, nil
	}
	result := r.db.Model(&models.Invoice{}).Where("id = ?", invoice.ID).Updates(map[string]interface{}{
		"payment_method_id": invoice.PaymentMethodID,
		"is_paid":           invoice.IsPaid,
		"updated_at":        invoice.UpdatedAt,
	})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete 删除发票及其明细
func (r *GormInvoiceRepository) Delete(id uint) (bool, error) {
	var deleted bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceDetail{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Invoice{}, id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// CountByPaymentMethod 统计使用某支付方式的发票
func (r *GormInvoiceRepository) CountByPaymentMethod(paymentMethodID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Invoice{}).Where("payment_method_id = ?", paymentMethodID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountDetailsByCourse 统计引用某课程的发票明细
func (r *GormInvoiceRepository) CountDetailsByCourse(courseID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.InvoiceDetail{}).Where("course_id = ?", courseID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountDetailsByOffering 统计引用某排期的发票明细
func (r *GormInvoiceRepository) CountDetailsByOffering(offeringID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.InvoiceDetail{}).Where("offering_id = ?", offeringID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
