package admin

import (
	handlershared "github.com/dlanguage-api/internal/http/handlers/shared"
	"github.com/dlanguage-api/internal/http/response"
	"github.com/dlanguage-api/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 分类请求
type CategoryRequest struct {
	Name        string `json:"category_name" binding:"required,max=100"`
	Description string `json:"category_description" binding:"max=500"`
	Image       string `json:"category_image" binding:"max=500"`
}

func (r CategoryRequest) toInput() service.CategoryInput {
	return service.CategoryInput{Name: r.Name, Description: r.Description, Image: r.Image}
}

// GetAdminCategories 分类列表
func (h *Handler) GetAdminCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// GetAdminCategory 分类详情
func (h *Handler) GetAdminCategory(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	category, err := h.CategoryService.GetByID(id)
	if err != nil {
		respondWithMappedError(c, err, categoryErrorRules, response.CodeInternal, "error.category_fetch_failed")
		return
	}
	response.Success(c, category)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	category, err := h.CategoryService.Create(req.toInput())
	if err != nil {
		respondWithMappedError(c, err, withInvalidInput(categoryErrorRules), response.CodeInternal, "error.category_save_failed")
		return
	}
	requestLog(c).Infow("admin_category_created", append(operatorFields(c), "category_id", category.ID)...)
	respondCreated(c, "message.created", category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	category, err := h.CategoryService.Update(id, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, withInvalidInput(categoryErrorRules), response.CodeInternal, "error.category_save_failed")
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.CategoryService.Delete(id); err != nil {
		respondWithMappedError(c, err, categoryErrorRules, response.CodeInternal, "error.category_delete_failed")
		return
	}
	requestLog(c).Infow("admin_category_deleted", append(operatorFields(c), "category_id", id)...)
	response.Success(c, gin.H{"deleted": true})
}
