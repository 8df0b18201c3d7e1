package admin

import (
	"strings"

	handlershared "github.com/dlanguage-api/internal/http/handlers/shared"
	"github.com/dlanguage-api/internal/http/response"
	"github.com/dlanguage-api/internal/i18n"
	"github.com/dlanguage-api/internal/repository"
	"github.com/dlanguage-api/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminCreateInvoiceRequest 管理端代用户结算请求
type AdminCreateInvoiceRequest struct {
	UserID          uint   `json:"user_id" binding:"required"`
	PaymentMethodID uint   `json:"payment_method_id" binding:"required"`
	CartLineIDs     []uint `json:"cart_line_ids" binding:"ids_unique"`
	IsPaid          *bool  `json:"is_paid"`
}

// AdminUpdateInvoiceRequest 管理端发票状态修正请求
type AdminUpdateInvoiceRequest struct {
	PaymentMethodID *uint `json:"payment_method_id"`
	IsPaid          *bool `json:"is_paid"`
}

// GetAdminInvoices 发票列表（按用户、支付状态、发票号筛选）
func (h *Handler) GetAdminInvoices(c *gin.Context) {
	var query struct {
		UserID        string `form:"user_id"`
		IsPaid        string `form:"is_paid"`
		InvoiceNumber string `form:"invoice_number"`
		Page          int    `form:"page"`
		PageSize      int    `form:"page_size"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	userID, ok := handlershared.ParseOptionalUint(query.UserID)
	if !ok {
		respondError(c, response.CodeBadRequest, "error.user_id_invalid", nil)
		return
	}
	isPaid, ok := handlershared.ParseOptionalBool(query.IsPaid)
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	page, pageSize := handlershared.NormalizePagination(query.Page, query.PageSize)

	invoices, total, err := h.InvoiceService.List(repository.InvoiceListFilter{
		Page:          page,
		PageSize:      pageSize,
		UserID:        userID,
		IsPaid:        isPaid,
		InvoiceNumber: strings.TrimSpace(query.InvoiceNumber),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.invoice_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, invoices, response.NewPagination(page, pageSize, total))
}

// GetAdminInvoice 发票详情
func (h *Handler) GetAdminInvoice(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	invoice, err := h.InvoiceService.GetByID(id)
	if err != nil {
		respondWithMappedError(c, err, adminInvoiceErrorRules, response.CodeInternal, "error.invoice_fetch_failed")
		return
	}
	response.Success(c, invoice)
}

// CreateAdminInvoice 代用户结算购物车；未选择时结算整个购物车，默认未支付
func (h *Handler) CreateAdminInvoice(c *gin.Context) {
	var req AdminCreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	invoice, err := h.InvoiceService.CreateForUser(service.AdminCreateInvoiceInput{
		UserID:          req.UserID,
		PaymentMethodID: req.PaymentMethodID,
		CartLineIDs:     req.CartLineIDs,
		IsPaid:          req.IsPaid,
		Locale:          i18n.ResolveLocale(c),
	})
	if err != nil {
		respondWithMappedError(c, err, adminInvoiceErrorRules, response.CodeInternal, "error.settlement_failed")
		return
	}
	requestLog(c).Infow("admin_invoice_created", append(operatorFields(c),
		"invoice_id", invoice.ID,
		"user_id", invoice.UserID,
		"is_paid", invoice.IsPaid,
	)...)
	respondCreated(c, "message.invoice_created", invoice)
}

// UpdateAdminInvoice 修正支付方式与支付状态
func (h *Handler) UpdateAdminInvoice(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req AdminUpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	if req.PaymentMethodID == nil && req.IsPaid == nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	invoice, err := h.InvoiceService.UpdateStatus(id, service.UpdateInvoiceInput{
		PaymentMethodID: req.PaymentMethodID,
		IsPaid:          req.IsPaid,
	})
	if err != nil {
		respondWithMappedError(c, err, adminInvoiceErrorRules, response.CodeInternal, "error.invoice_update_failed")
		return
	}
	response.Success(c, invoice)
}

// DeleteAdminInvoice 删除发票
func (h *Handler) DeleteAdminInvoice(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.InvoiceService.Delete(id); err != nil {
		respondWithMappedError(c, err, adminInvoiceErrorRules, response.CodeInternal, "error.invoice_delete_failed")
		return
	}
	requestLog(c).Infow("admin_invoice_deleted", append(operatorFields(c), "invoice_id", id)...)
	response.Success(c, gin.H{"deleted": true})
}
