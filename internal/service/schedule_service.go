package service

import (
	"errors"
	"strings"

	"github.com/dlanguage-api/internal/models"
	"github.com/dlanguage-api/internal/repository"
)

// ScheduleService 开课日期与课程排期服务
type ScheduleService struct {
	scheduleRepo repository.ScheduleRepository
	offeringRepo repository.OfferingRepository
	courseRepo   repository.CourseRepository
	cartRepo     repository.CartRepository
	invoiceRepo  repository.InvoiceRepository
}

// NewScheduleService 创建排期服务
func NewScheduleService(
	scheduleRepo repository.ScheduleRepository,
	offeringRepo repository.OfferingRepository,
	courseRepo repository.CourseRepository,
	cartRepo repository.CartRepository,
	invoiceRepo repository.InvoiceRepository,
) *ScheduleService {
	return &ScheduleService{
		scheduleRepo: scheduleRepo,
		offeringRepo: offeringRepo,
		courseRepo:   courseRepo,
		cartRepo:     cartRepo,
		invoiceRepo:  invoiceRepo,
	}
}

// OfferingInput 课程排期输入
type OfferingInput struct {
	CourseID   uint
	ScheduleID uint
}

// ListSchedules 开课日期列表
func (s *ScheduleService) ListSchedules() ([]models.Schedule, error) {
	return s.scheduleRepo.List()
}

// GetSchedule 获取开课日期
func (s *ScheduleService) GetSchedule(id uint) (*models.Schedule, error) {
	schedule, err := s.scheduleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}
	return schedule, nil
}

// CreateSchedule 创建开课日期（YYYY-MM-DD，唯一）
func (s *ScheduleService) CreateSchedule(rawDate string) (*models.Schedule, error) {
	date, err := models.ParseScheduleDate(strings.TrimSpace(rawDate))
	if err != nil {
		return nil, ErrScheduleDateInvalid
	}
	schedule := models.Schedule{ScheduleDate: date}
	if err := s.scheduleRepo.Create(&schedule); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrScheduleDateExists
		}
		return nil, err
	}
	return &schedule, nil
}

// UpdateSchedule 修改开课日期
func (s *ScheduleService) UpdateSchedule(id uint, rawDate string) (*models.Schedule, error) {
	schedule, err := s.GetSchedule(id)
	if err != nil {
		return nil, err
	}
	date, err := models.ParseScheduleDate(strings.TrimSpace(rawDate))
	if err != nil {
		return nil, ErrScheduleDateInvalid
	}
	schedule.ScheduleDate = date
	if err := s.scheduleRepo.Update(schedule); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrScheduleDateExists
		}
		return nil, err
	}
	return schedule, nil
}

// DeleteSchedule 删除开课日期，仍有课程排期时拒绝
func (s *ScheduleService) DeleteSchedule(id uint) error {
	if _, err := s.GetSchedule(id); err != nil {
		return err
	}
	count, err := s.scheduleRepo.CountOfferings(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrScheduleInUse
	}
	deleted, err := s.scheduleRepo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrScheduleNotFound
	}
	return nil
}

// ListOfferings 全部课程排期
func (s *ScheduleService) ListOfferings() ([]models.ScheduleCourse, error) {
	return s.offeringRepo.List()
}

// ListOfferingsByCourse 课程的可选日期
func (s *ScheduleService) ListOfferingsByCourse(courseID uint) ([]models.ScheduleCourse, error) {
	course, err := s.courseRepo.GetByID(courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}
	offerings, err := s.offeringRepo.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}
	if offerings == nil {
		offerings = []models.ScheduleCourse{}
	}
	return offerings, nil
}

// GetOffering 获取课程排期
func (s *ScheduleService) GetOffering(id uint) (*models.ScheduleCourse, error) {
	offering, err := s.offeringRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if offering == nil {
		return nil, ErrOfferingNotFound
	}
	return offering, nil
}

// CreateOffering 创建课程排期
func (s *ScheduleService) CreateOffering(input OfferingInput) (*models.ScheduleCourse, error) {
	if err := s.validateOffering(input); err != nil {
		return nil, err
	}
	offering := models.ScheduleCourse{CourseID: input.CourseID, ScheduleID: input.ScheduleID}
	if err := s.offeringRepo.Create(&offering); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrOfferingExists
		}
		return nil, err
	}
	return s.GetOffering(offering.ID)
}

// UpdateOffering 修改课程排期
func (s *ScheduleService) UpdateOffering(id uint, input OfferingInput) (*models.ScheduleCourse, error) {
	offering, err := s.GetOffering(id)
	if err != nil {
		return nil, err
	}
	if err := s.validateOffering(input); err != nil {
		return nil, err
	}
	offering.CourseID = input.CourseID
	offering.ScheduleID = input.ScheduleID
	if err := s.offeringRepo.Update(offering); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrOfferingExists
		}
		return nil, err
	}
	return s.GetOffering(id)
}

// DeleteOffering 删除课程排期，仍在购物车或发票中时拒绝
func (s *ScheduleService) DeleteOffering(id uint) error {
	if _, err := s.GetOffering(id); err != nil {
		return err
	}
	inCart, err := s.cartRepo.CountByOffering(id)
	if err != nil {
		return err
	}
	inInvoices, err := s.invoiceRepo.CountDetailsByOffering(id)
	if err != nil {
		return err
	}
	if inCart > 0 || inInvoices > 0 {
		return ErrOfferingInUse
	}
	deleted, err := s.offeringRepo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrOfferingNotFound
	}
	return nil
}

func (s *ScheduleService) validateOffering(input OfferingInput) error {
	course, err := s.courseRepo.GetByID(input.CourseID)
	if err != nil {
		return err
	}
	if course == nil {
		return ErrCourseNotFound
	}
	if _, err := s.GetSchedule(input.ScheduleID); err != nil {
		return err
	}
	return nil
}
