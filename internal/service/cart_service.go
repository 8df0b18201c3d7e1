package service

import (
	"errors"

	"github.com/dlanguage-api/internal/models"
	"github.com/dlanguage-api/internal/repository"
)

// CartView 购物车视图
type CartView struct {
	Items      []models.CartLine `json:"items"`
	TotalPrice models.Amount     `json:"total_price"`
}

// CartService 购物车服务
type CartService struct {
	cartRepo repository.CartRepository
	catalog  *CatalogService
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, catalog *CatalogService) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		catalog:  catalog,
	}
}

// AddLine 将课程排期加入购物车，价格在此刻冻结
func (s *CartService) AddLine(userID, offeringID uint) (*models.CartLine, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	quote, err := s.catalog.LookupOffering(offeringID)
	if err != nil {
		return nil, err
	}
	line := &models.CartLine{
		UserID:     userID,
		OfferingID: quote.OfferingID,
		CourseID:   quote.CourseID,
		UnitPrice:  quote.Price,
	}
	if err := s.cartRepo.Add(line); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrCartLineDuplicate
		}
		return nil, err
	}
	line.CourseName = quote.CourseName
	line.CourseImage = quote.CourseImage
	line.CategoryName = quote.CategoryName
	line.ScheduleDate = quote.ScheduleDate
	return line, nil
}

// List 获取购物车及合计
func (s *CartService) List(userID uint) (*CartView, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	lines, err := s.cartRepo.ListByUser(userID, repository.CartListOptions{WithDisplay: true})
	if err != nil {
		return nil, err
	}
	total, err := s.cartRepo.TotalPrice(userID)
	if err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []models.CartLine{}
	}
	return &CartView{Items: lines, TotalPrice: total}, nil
}

// RemoveLine 删除购物车行
func (s *CartService) RemoveLine(userID, cartLineID uint) error {
	if userID == 0 {
		return ErrUnauthenticated
	}
	removed, err := s.cartRepo.Remove(userID, cartLineID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrCartLineNotFound
	}
	return nil
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	if userID == 0 {
		return ErrUnauthenticated
	}
	return s.cartRepo.ClearByUser(userID)
}
