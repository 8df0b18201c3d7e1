package repository

import (
	"errors"

	"github.com/dlanguage-api/internal/models"

	"gorm.io/gorm"
)

// OfferingRepository 课程排期数据访问接口
type OfferingRepository interface {
	List() ([]models.ScheduleCourse, error)
	ListByCourse(courseID uint) ([]models.ScheduleCourse, error)
	GetByID(id uint) (*models.ScheduleCourse, error)
	Create(offering *models.ScheduleCourse) error
	Update(offering *models.ScheduleCourse) error
	Delete(id uint) (bool, error)
}

// GormOfferingRepository GORM 实现
type GormOfferingRepository struct {
	db *gorm.DB
}

// NewOfferingRepository 创建课程排期仓库
func NewOfferingRepository(db *gorm.DB) *GormOfferingRepository {
	return &GormOfferingRepository{db: db}
}

func (r *GormOfferingRepository) withDisplay() *gorm.DB {
	return r.db.Preload("Course").Preload("Schedule")
}

// List 全部课程排期
func (r *GormOfferingRepository) List() ([]models.ScheduleCourse, error) {
	var offerings []models.ScheduleCourse
	if err := r.withDisplay().Order("id ASC").Find(&offerings).Error; err != nil {
		return nil, err
	}
	fillOfferingDisplay(offerings)
	return offerings, nil
}

// ListByCourse 课程下的排期
func (r *GormOfferingRepository) ListByCourse(courseID uint) ([]models.ScheduleCourse, error) {
	var offerings []models.ScheduleCourse
	if err := r.withDisplay().Where("course_id = ?", courseID).Order("id ASC").Find(&offerings).Error; err != nil {
		return nil, err
	}
	fillOfferingDisplay(offerings)
	return offerings, nil
}

// GetByID 获取课程排期（含课程与日期）
func (r *GormOfferingRepository) GetByID(id uint) (*models.ScheduleCourse, error) {
	var offering models.ScheduleCourse
	if err := r.db.Preload("Course.Category").Preload("Schedule").First(&offering, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	offering.FillDisplay()
	return &offering, nil
}

// Create 创建，课程与日期组合唯一
func (r *GormOfferingRepository) Create(offering *models.ScheduleCourse) error {
	return translateUniqueViolation(r.db.Omit("Course", "Schedule").Create(offering).Error)
}

// Update 更新
func (r *GormOfferingRepository) Update(offering *models.ScheduleCourse) error {
	return translateUniqueViolation(r.db.Omit("Course", "Schedule").Save(offering).Error)
}

// Delete 删除
func (r *GormOfferingRepository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&models.ScheduleCourse{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func fillOfferingDisplay(offerings []models.ScheduleCourse) {
	for i := range offerings {
		offerings[i].FillDisplay()
	}
}
