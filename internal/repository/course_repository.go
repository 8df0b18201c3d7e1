package repository

import (
	"errors"

	"github.com/dlanguage-api/internal/models"

	"gorm.io/gorm"
)

// CourseRepository 课程数据访问接口
type CourseRepository interface {
	List(filter CourseListFilter) ([]models.Course, int64, error)
	GetByID(id uint) (*models.Course, error)
	Create(course *models.Course) error
	Update(course *models.Course) error
	Delete(id uint) (bool, error)
	CountOfferings(courseID uint) (int64, error)
}

// GormCourseRepository GORM 实现
type GormCourseRepository struct {
	db *gorm.DB
}

// NewCourseRepository 创建课程仓库
func NewCourseRepository(db *gorm.DB) *GormCourseRepository {
	return &GormCourseRepository{db: db}
}

// List 课程列表
func (r *GormCourseRepository) List(filter CourseListFilter) ([]models.Course, int64, error) {
	query := r.db.Model(&models.Course{})
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if condition, args := buildLikeCondition(r.db, filter.Search, "name", "description"); condition != "" {
		query = query.Where(condition, args...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if filter.WithCategory {
		query = query.Preload("Category")
	}

	var courses []models.Course
	if err := query.Order("id ASC").Find(&courses).Error; err != nil {
		return nil, 0, err
	}
	for i := range courses {
		courses[i].FillDisplay()
	}
	return courses, total, nil
}

// GetByID 获取课程（含分类）
func (r *GormCourseRepository) GetByID(id uint) (*models.Course, error) {
	var course models.Course
	if err := r.db.Preload("Category").First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	course.FillDisplay()
	return &course, nil
}

// Create 创建课程
func (r *GormCourseRepository) Create(course *models.Course) error {
	return r.db.Omit("Category").Create(course).Error
}

// Update 更新课程
func (r *GormCourseRepository) Update(course *models.Course) error {
	return r.db.Omit("Category").Save(course).Error
}

// Delete 删除课程
func (r *GormCourseRepository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&models.Course{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountOfferings 统计课程的排期数量
func (r *GormCourseRepository) CountOfferings(courseID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.ScheduleCourse{}).Where("course_id = ?", courseID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
