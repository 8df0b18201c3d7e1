package public

import (
	handlershared "github.com/dlanguage-api/internal/http/handlers/shared"
	"github.com/dlanguage-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AddCartLineRequest 加入购物车请求
type AddCartLineRequest struct {
	OfferingID uint `json:"offering_id" binding:"required"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	id, ok := h.currentIdentity(c)
	if !ok {
		return
	}

	view, err := h.CartService.List(id.UserID)
	if err != nil {
		respondWithMappedError(c, err, identityErrorRules, response.CodeInternal, "error.cart_fetch_failed")
		return
	}
	response.Success(c, view)
}

// AddCartLine 加入购物车，价格按当前课程价锁定
func (h *Handler) AddCartLine(c *gin.Context) {
	id, ok := h.currentIdentity(c)
	if !ok {
		return
	}
	var req AddCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}

	line, err := h.CartService.AddLine(id.UserID, req.OfferingID)
	if err != nil {
		respondCartAddError(c, err)
		return
	}
	respondCreated(c, "message.cart_line_added", line)
}

// RemoveCartLine 移除购物车行
func (h *Handler) RemoveCartLine(c *gin.Context) {
	id, ok := h.currentIdentity(c)
	if !ok {
		return
	}
	lineID, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.CartService.RemoveLine(id.UserID, lineID); err != nil {
		respondWithMappedError(c, err, handlershared.ConcatMappedErrors(identityErrorRules, cartRemoveErrorRules), response.CodeInternal, "error.cart_update_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	id, ok := h.currentIdentity(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(id.UserID); err != nil {
		respondWithMappedError(c, err, identityErrorRules, response.CodeInternal, "error.cart_update_failed")
		return
	}
	response.Success(c, gin.H{"cleared": true})
}
