package public

import (
	handlershared "github.com/dlanguage-api/internal/http/handlers/shared"
	"github.com/dlanguage-api/internal/http/response"
	"github.com/dlanguage-api/internal/i18n"
	"github.com/dlanguage-api/internal/service"

	"github.com/gin-gonic/gin"
)

// SettleRequest 结算请求
type SettleRequest struct {
	PaymentMethodID uint   `json:"payment_method_id" binding:"required"`
	CartLineIDs     []uint `json:"cart_line_ids" binding:"ids_unique"`
}

// Settle 将选中的购物车行结算为发票
func (h *Handler) Settle(c *gin.Context) {
	id, ok := h.currentIdentity(c)
	if !ok {
		return
	}
	var req SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}

	invoice, err := h.SettlementService.Settle(service.SettleInput{
		UserID:          id.UserID,
		PaymentMethodID: req.PaymentMethodID,
		CartLineIDs:     req.CartLineIDs,
		IsPaid:          true,
		Locale:          i18n.ResolveLocale(c),
	})
	if err != nil {
		respondSettleError(c, err)
		return
	}
	respondCreated(c, "message.invoice_created", invoice)
}

// ListInvoices 当前用户的发票列表（新到旧）
func (h *Handler) ListInvoices(c *gin.Context) {
	id, ok := h.currentIdentity(c)
	if !ok {
		return
	}
	invoices, err := h.InvoiceService.ListByUser(id.UserID)
	if err != nil {
		respondWithMappedError(c, err, identityErrorRules, response.CodeInternal, "error.invoice_fetch_failed")
		return
	}
	response.Success(c, invoices)
}

// GetInvoice 当前用户的发票详情
func (h *Handler) GetInvoice(c *gin.Context) {
	id, ok := h.currentIdentity(c)
	if !ok {
		return
	}
	invoiceID, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	invoice, err := h.InvoiceService.GetForUser(id.UserID, invoiceID)
	if err != nil {
		respondWithMappedError(c, err, handlershared.ConcatMappedErrors(identityErrorRules, invoiceReadErrorRules), response.CodeInternal, "error.invoice_fetch_failed")
		return
	}
	response.Success(c, invoice)
}
