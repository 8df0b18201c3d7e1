package repository

import (
	"errors"

	"github.com/dlanguage-api/internal/models"

	"gorm.io/gorm"
)

// ScheduleRepository 开课日期数据访问接口
type ScheduleRepository interface {
	List() ([]models.Schedule, error)
	GetByID(id uint) (*models.Schedule, error)
	Create(schedule *models.Schedule) error
	Update(schedule *models.Schedule) error
	Delete(id uint) (bool, error)
	CountOfferings(scheduleID uint) (int64, error)
}

// GormScheduleRepository GORM 实现
type GormScheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository 创建开课日期仓库
func NewScheduleRepository(db *gorm.DB) *GormScheduleRepository {
	return &GormScheduleRepository{db: db}
}

// List 按日期升序列出
func (r *GormScheduleRepository) List() ([]models.Schedule, error) {
	var schedules []models.Schedule
	if err := r.db.Order("schedule_date ASC, id ASC").Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

// GetByID 根据 ID 获取
func (r *GormScheduleRepository) GetByID(id uint) (*models.Schedule, error) {
	var schedule models.Schedule
	if err := r.db.First(&schedule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

// Create 创建
func (r *GormScheduleRepository) Create(schedule *models.Schedule) error {
	return translateUniqueViolation(r.db.Create(schedule).Error)
}

// Update 更新
func (r *GormScheduleRepository) Update(schedule *models.Schedule) error {
	return translateUniqueViolation(r.db.Save(schedule).Error)
}

// Delete 删除
func (r *GormScheduleRepository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&models.Schedule{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountOfferings 统计引用该日期的课程排期
func (r *GormScheduleRepository) CountOfferings(scheduleID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.ScheduleCourse{}).Where("schedule_id = ?", scheduleID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
