package service

import (
	"strings"

	"github.com/dlanguage-api/internal/models"
	"github.com/dlanguage-api/internal/repository"
)

// CourseService 课程业务服务
type CourseService struct {
	courseRepo   repository.CourseRepository
	categoryRepo repository.CategoryRepository
	invoiceRepo  repository.InvoiceRepository
}

// NewCourseService 创建课程服务
func NewCourseService(courseRepo repository.CourseRepository, categoryRepo repository.CategoryRepository, invoiceRepo repository.InvoiceRepository) *CourseService {
	return &CourseService{
		courseRepo:   courseRepo,
		categoryRepo: categoryRepo,
		invoiceRepo:  invoiceRepo,
	}
}

// CourseInput 创建/更新课程输入
type CourseInput struct {
	CategoryID  uint
	Name        string
	Price       models.Amount
	Image       string
	Description string
}

// List 课程列表
func (s *CourseService) List(filter repository.CourseListFilter) ([]models.Course, int64, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	filter.WithCategory = true
	return s.courseRepo.List(filter)
}

// GetByID 获取课程
func (s *CourseService) GetByID(id uint) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}
	return course, nil
}

// Create 创建课程
func (s *CourseService) Create(input CourseInput) (*models.Course, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}
	course := models.Course{
		CategoryID:  input.CategoryID,
		Name:        strings.TrimSpace(input.Name),
		Price:       input.Price,
		Image:       strings.TrimSpace(input.Image),
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.courseRepo.Create(&course); err != nil {
		return nil, err
	}
	return s.GetByID(course.ID)
}

// Update 更新课程；已有的购物车行与发票金额不受影响
func (s *CourseService) Update(id uint, input CourseInput) (*models.Course, error) {
	course, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(input); err != nil {
		return nil, err
	}
	course.CategoryID = input.CategoryID
	course.Name = strings.TrimSpace(input.Name)
	course.Price = input.Price
	course.Image = strings.TrimSpace(input.Image)
	course.Description = strings.TrimSpace(input.Description)
	if err := s.courseRepo.Update(course); err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// Delete 删除课程，仍有排期或发票明细引用时拒绝
func (s *CourseService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	offerings, err := s.courseRepo.CountOfferings(id)
	if err != nil {
		return err
	}
	if offerings > 0 {
		return ErrCourseInUse
	}
	details, err := s.invoiceRepo.CountDetailsByCourse(id)
	if err != nil {
		return err
	}
	if details > 0 {
		return ErrCourseInUse
	}
	deleted, err := s.courseRepo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCourseNotFound
	}
	return nil
}

func (s *CourseService) validate(input CourseInput) error {
	if strings.TrimSpace(input.Name) == "" || input.Price < 0 {
		return ErrInvalidInput
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	return nil
}
