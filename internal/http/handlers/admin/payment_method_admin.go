package admin

import (
	handlershared "github.com/dlanguage-api/internal/http/handlers/shared"
	"github.com/dlanguage-api/internal/http/response"
	"github.com/dlanguage-api/internal/service"

	"github.com/gin-gonic/gin"
)

// PaymentMethodRequest 支付方式请求
type PaymentMethodRequest struct {
	Name     string `json:"payment_method_name" binding:"required,max=100"`
	Logo     string `json:"payment_method_logo" binding:"max=500"`
	IsActive *bool  `json:"is_active"`
}

func (r PaymentMethodRequest) toInput() service.PaymentMethodInput {
	return service.PaymentMethodInput{Name: r.Name, Logo: r.Logo, IsActive: r.IsActive}
}

// GetAdminPaymentMethods 支付方式列表（含停用）
func (h *Handler) GetAdminPaymentMethods(c *gin.Context) {
	methods, err := h.PaymentMethodService.List(false)
	if err != nil {
		respondError(c, response.CodeInternal, "error.payment_method_fetch_failed", err)
		return
	}
	response.Success(c, methods)
}

// GetAdminPaymentMethod 支付方式详情
func (h *Handler) GetAdminPaymentMethod(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	method, err := h.PaymentMethodService.GetByID(id)
	if err != nil {
		respondWithMappedError(c, err, paymentMethodErrorRules, response.CodeInternal, "error.payment_method_fetch_failed")
		return
	}
	response.Success(c, method)
}

// CreatePaymentMethod 创建支付方式
func (h *Handler) CreatePaymentMethod(c *gin.Context) {
	var req PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	method, err := h.PaymentMethodService.Create(req.toInput())
	if err != nil {
		respondWithMappedError(c, err, withInvalidInput(paymentMethodErrorRules), response.CodeInternal, "error.payment_method_save_failed")
		return
	}
	respondCreated(c, "message.created", method)
}

// UpdatePaymentMethod 更新支付方式
func (h *Handler) UpdatePaymentMethod(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	method, err := h.PaymentMethodService.Update(id, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, withInvalidInput(paymentMethodErrorRules), response.CodeInternal, "error.payment_method_save_failed")
		return
	}
	response.Success(c, method)
}

// DeletePaymentMethod 删除支付方式
func (h *Handler) DeletePaymentMethod(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.PaymentMethodService.Delete(id); err != nil {
		respondWithMappedError(c, err, paymentMethodErrorRules, response.CodeInternal, "error.payment_method_delete_failed")
		return
	}
	requestLog(c).Infow("admin_payment_method_deleted", append(operatorFields(c), "payment_method_id", id)...)
	response.Success(c, gin.H{"deleted": true})
}
