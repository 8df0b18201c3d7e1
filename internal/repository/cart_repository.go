package repository

import (
	"errors"

	"github.com/dlanguage-api/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	Add(line *models.CartLine) error
	ListByUser(userID uint, opts CartListOptions) ([]models.CartLine, error)
	ListByUserForUpdate(userID uint) ([]models.CartLine, error)
	GetByID(userID, cartLineID uint) (*models.CartLine, error)
	TotalPrice(userID uint) (models.Amount, error)
	Exists(userID, offeringID uint) (bool, error)
	Remove(userID, cartLineID uint) (bool, error)
	ClearByUser(userID uint) error
	CountByOffering(offeringID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// Add 加入购物车；同一用户同一排期只允许一行
func (r *GormCartRepository) Add(line *models.CartLine) error {
	if line == nil {
		return nil
	}
	exists, err := r.Exists(line.UserID, line.OfferingID)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateEntry
	}
	// 并发插入由唯一索引兜底
	return translateUniqueViolation(r.db.Create(line).Error)
}

// ListByUser 获取用户购物车行，按加入顺序
func (r *GormCartRepository) ListByUser(userID uint, opts CartListOptions) ([]models.CartLine, error) {
	query := r.db.Where("user_id = ?", userID)
	if opts.WithDisplay {
		query = query.Preload("Course.Category").Preload("Offering.Schedule")
	}
	var lines []models.CartLine
	if err := query.Order("id ASC").Find(&lines).Error; err != nil {
		return nil, err
	}
	if opts.WithDisplay {
		for i := range lines {
			lines[i].FillDisplay()
		}
	}
	return lines, nil
}

// ListByUserForUpdate 结算时读取并锁定用户购物车行
func (r *GormCartRepository) ListByUserForUpdate(userID uint) ([]models.CartLine, error) {
	var lines []models.CartLine
	query := lockForUpdate(r.db.Model(&models.CartLine{}))
	if err := query.Where("user_id = ?", userID).Order("id ASC").Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// GetByID 获取用户名下的购物车行
func (r *GormCartRepository) GetByID(userID, cartLineID uint) (*models.CartLine, error) {
	var line models.CartLine
	if err := r.db.Where("id = ? AND user_id = ?", cartLineID, userID).First(&line).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &line, nil
}

// TotalPrice 汇总用户购物车价格
func (r *GormCartRepository) TotalPrice(userID uint) (models.Amount, error) {
	var total int64
	if err := r.db.Model(&models.CartLine{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(unit_price), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return models.Amount(total), nil
}

// Exists 判断用户购物车中是否已有该排期
func (r *GormCartRepository) Exists(userID, offeringID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.CartLine{}).
		Where("user_id = ? AND offering_id = ?", userID, offeringID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Remove 删除购物车行：先置空引用它的发票明细，再删除本行
func (r *GormCartRepository) Remove(userID, cartLineID uint) (bool, error) {
	var removed bool
	err := r.inTx(func(tx *gorm.DB) error {
		if err := tx.Model(&models.InvoiceDetail{}).
			Where("cart_line_id = ? AND cart_line_id IN (?)", cartLineID,
				tx.Model(&models.CartLine{}).Select("id").Where("id = ? AND user_id = ?", cartLineID, userID)).
			Update("cart_line_id", nil).Error; err != nil {
			return err
		}
		result := tx.Where("id = ? AND user_id = ?", cartLineID, userID).Delete(&models.CartLine{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// ClearByUser 清空购物车，同样先置空明细引用
func (r *GormCartRepository) ClearByUser(userID uint) error {
	return r.inTx(func(tx *gorm.DB) error {
		if err := tx.Model(&models.InvoiceDetail{}).
			Where("cart_line_id IN (?)", tx.Model(&models.CartLine{}).Select("id").Where("user_id = ?", userID)).
			Update("cart_line_id", nil).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&models.CartLine{}).Error
	})
}

// CountByOffering 统计引用某排期的购物车行
func (r *GormCartRepository) CountByOffering(offeringID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.CartLine{}).Where("offering_id = ?", offeringID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// inTx 已在事务中时复用当前事务，否则开启新事务
func (r *GormCartRepository) inTx(fn func(tx *gorm.DB) error) error {
	if _, ok := r.db.Statement.ConnPool.(gorm.TxCommitter); ok {
		return fn(r.db)
	}
	return r.db.Transaction(fn)
}
