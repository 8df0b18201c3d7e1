package service

import (
	"github.com/dlanguage-api/internal/models"
	"github.com/dlanguage-api/internal/repository"
)

// OfferingQuote 课程排期报价（加入购物车时使用当前课程价格）
type OfferingQuote struct {
	OfferingID   uint          `json:"offering_id"`
	CourseID     uint          `json:"course_id"`
	CourseName   string        `json:"course_name"`
	CourseImage  string        `json:"course_image"`
	CategoryName string        `json:"category_name"`
	ScheduleDate string        `json:"schedule_date"`
	Price        models.Amount `json:"price"`
}

// CatalogService 目录查询服务
type CatalogService struct {
	offeringRepo repository.OfferingRepository
}

// NewCatalogService 创建目录查询服务
func NewCatalogService(offeringRepo repository.OfferingRepository) *CatalogService {
	return &CatalogService{offeringRepo: offeringRepo}
}

// LookupOffering 解析排期对应的课程名称与当前价格
func (s *CatalogService) LookupOffering(offeringID uint) (*OfferingQuote, error) {
	if offeringID == 0 {
		return nil, ErrOfferingNotFound
	}
	offering, err := s.offeringRepo.GetByID(offeringID)
	if err != nil {
		return nil, err
	}
	if offering == nil || offering.Course == nil {
		return nil, ErrOfferingNotFound
	}
	quote := &OfferingQuote{
		OfferingID:   offering.ID,
		CourseID:     offering.CourseID,
		CourseName:   offering.Course.Name,
		CourseImage:  offering.Course.Image,
		ScheduleDate: offering.ScheduleDate,
		Price:        offering.Course.Price,
	}
	if offering.Course.Category != nil {
		quote.CategoryName = offering.Course.Category.Name
	}
	return quote, nil
}
