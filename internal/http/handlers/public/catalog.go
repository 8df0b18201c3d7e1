package public

import (
	"strings"

	"github.com/dlanguage-api/internal/cache"
	handlershared "github.com/dlanguage-api/internal/http/handlers/shared"
	"github.com/dlanguage-api/internal/http/response"
	"github.com/dlanguage-api/internal/repository"

	"github.com/gin-gonic/gin"
)

// CourseListQuery 课程列表查询参数
type CourseListQuery struct {
	CategoryID uint   `form:"category_id"`
	Search     string `form:"search"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

// GetCategories 获取分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// GetCategory 获取分类详情
func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	category, err := h.CategoryService.GetByID(id)
	if err != nil {
		respondWithMappedError(c, err, catalogReadErrorRules, response.CodeInternal, "error.category_fetch_failed")
		return
	}
	response.Success(c, category)
}

// GetCourses 获取课程列表（支持分类筛选、搜索与分页）
func (h *Handler) GetCourses(c *gin.Context) {
	var query CourseListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	page, pageSize := handlershared.NormalizePagination(query.Page, query.PageSize)

	courses, total, err := h.CourseService.List(repository.CourseListFilter{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: query.CategoryID,
		Search:     strings.TrimSpace(query.Search),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.course_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, courses, response.NewPagination(page, pageSize, total))
}

// GetCourse 获取课程详情（带短期缓存）
func (h *Handler) GetCourse(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if cached, hit, err := cache.GetCourseDetail(ctx, id); err == nil && hit && cached != nil {
		response.Success(c, cached)
		return
	}

	course, err := h.CourseService.GetByID(id)
	if err != nil {
		respondWithMappedError(c, err, catalogReadErrorRules, response.CodeInternal, "error.course_fetch_failed")
		return
	}
	if err := cache.SetCourseDetail(ctx, course); err != nil {
		requestLog(c).Warnw("course_detail_cache_set_failed", "course_id", id, "error", err)
	}
	response.Success(c, course)
}

// GetCourseOfferings 获取课程的可购买排期
func (h *Handler) GetCourseOfferings(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	offerings, err := h.ScheduleService.ListOfferingsByCourse(id)
	if err != nil {
		respondWithMappedError(c, err, catalogReadErrorRules, response.CodeInternal, "error.offering_fetch_failed")
		return
	}
	response.Success(c, offerings)
}

// GetSchedules 获取开课日期列表
func (h *Handler) GetSchedules(c *gin.Context) {
	schedules, err := h.ScheduleService.ListSchedules()
	if err != nil {
		respondError(c, response.CodeInternal, "error.schedule_fetch_failed", err)
		return
	}
	response.Success(c, schedules)
}

// GetPaymentMethods 获取启用的支付方式
func (h *Handler) GetPaymentMethods(c *gin.Context) {
	methods, err := h.PaymentMethodService.List(true)
	if err != nil {
		respondError(c, response.CodeInternal, "error.payment_method_fetch_failed", err)
		return
	}
	response.Success(c, methods)
}
