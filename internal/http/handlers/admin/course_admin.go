package admin

import (
	"strings"

	"github.com/dlanguage-api/internal/cache"
	handlershared "github.com/dlanguage-api/internal/http/handlers/shared"
	"github.com/dlanguage-api/internal/http/response"
	"github.com/dlanguage-api/internal/models"
	"github.com/dlanguage-api/internal/repository"
	"github.com/dlanguage-api/internal/service"

	"github.com/gin-gonic/gin"
)

// CourseRequest 课程请求
type CourseRequest struct {
	CategoryID  uint          `json:"category_id" binding:"required"`
	Name        string        `json:"course_name" binding:"required,max=100"`
	Price       models.Amount `json:"course_price"`
	Image       string        `json:"course_image" binding:"max=500"`
	Description string        `json:"course_description"`
}

func (r CourseRequest) toInput() service.CourseInput {
	return service.CourseInput{
		CategoryID:  r.CategoryID,
		Name:        r.Name,
		Price:       r.Price,
		Image:       r.Image,
		Description: r.Description,
	}
}

// GetAdminCourses 课程列表
func (h *Handler) GetAdminCourses(c *gin.Context) {
	var query struct {
		CategoryID uint   `form:"category_id"`
		Search     string `form:"search"`
		Page       int    `form:"page"`
		PageSize   int    `form:"page_size"`
	}
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

// GetAdminCourse 课程详情（不走缓存）
func (h *Handler) GetAdminCourse(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	course, err := h.CourseService.GetByID(id)
	if err != nil {
		respondWithMappedError(c, err, courseErrorRules, response.CodeInternal, "error.course_fetch_failed")
		return
	}
	response.Success(c, course)
}

// CreateCourse 创建课程
func (h *Handler) CreateCourse(c *gin.Context) {
	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	course, err := h.CourseService.Create(req.toInput())
	if err != nil {
		respondWithMappedError(c, err, withInvalidInput(courseErrorRules), response.CodeInternal, "error.course_save_failed")
		return
	}
	requestLog(c).Infow("admin_course_created", append(operatorFields(c), "course_id", course.ID)...)
	respondCreated(c, "message.created", course)
}

// UpdateCourse 更新课程；已在购物车中的行保留加入时的价格
func (h *Handler) UpdateCourse(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	course, err := h.CourseService.Update(id, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, withInvalidInput(courseErrorRules), response.CodeInternal, "error.course_save_failed")
		return
	}
	h.invalidateCourseCache(c, id)
	response.Success(c, course)
}

// DeleteCourse 删除课程
func (h *Handler) DeleteCourse(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.CourseService.Delete(id); err != nil {
		respondWithMappedError(c, err, courseErrorRules, response.CodeInternal, "error.course_delete_failed")
		return
	}
	h.invalidateCourseCache(c, id)
	requestLog(c).Infow("admin_course_deleted", append(operatorFields(c), "course_id", id)...)
	response.Success(c, gin.H{"deleted": true})
}

func (h *Handler) invalidateCourseCache(c *gin.Context, courseID uint) {
	if err := cache.DelCourseDetail(c.Request.Context(), courseID); err != nil {
		requestLog(c).Warnw("course_detail_cache_invalidate_failed", "course_id", courseID, "error", err)
	}
}
