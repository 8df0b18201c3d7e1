package admin

import (
	handlershared "github.com/dlanguage-api/internal/http/handlers/shared"
	"github.com/dlanguage-api/internal/http/response"
	"github.com/dlanguage-api/internal/i18n"
	"github.com/dlanguage-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type mappedHandlerError = handlershared.MappedError

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	handlershared.RespondWithMappedError(c, err, rules, fallbackCode, fallbackKey)
}

func respondCreated(c *gin.Context, key string, data interface{}) {
	response.Created(c, i18n.T(i18n.ResolveLocale(c), key), data)
}

var invalidInputRules = []mappedHandlerError{
	{Target: service.ErrInvalidInput, Code: response.CodeBadRequest, Key: "error.bad_request"},
}

var categoryErrorRules = []mappedHandlerError{
	{Target: service.ErrCategoryNotFound, Code: response.CodeNotFound, Key: "error.category_not_found"},
	{Target: service.ErrCategoryNameExists, Code: response.CodeConflict, Key: "error.category_name_exists"},
	{Target: service.ErrCategoryInUse, Code: response.CodeConflict, Key: "error.category_in_use"},
}

var courseErrorRules = []mappedHandlerError{
	{Target: service.ErrCourseNotFound, Code: response.CodeNotFound, Key: "error.course_not_found"},
	{Target: service.ErrCategoryNotFound, Code: response.CodeBadRequest, Key: "error.category_not_found"},
	{Target: service.ErrCourseInUse, Code: response.CodeConflict, Key: "error.course_in_use"},
}

var scheduleErrorRules = []mappedHandlerError{
	{Target: service.ErrScheduleNotFound, Code: response.CodeNotFound, Key: "error.schedule_not_found"},
	{Target: service.ErrScheduleDateInvalid, Code: response.CodeBadRequest, Key: "error.schedule_date_invalid"},
	{Target: service.ErrScheduleDateExists, Code: response.CodeConflict, Key: "error.schedule_date_exists"},
	{Target: service.ErrScheduleInUse, Code: response.CodeConflict, Key: "error.schedule_in_use"},
}

var offeringErrorRules = []mappedHandlerError{
	{Target: service.ErrOfferingNotFound, Code: response.CodeNotFound, Key: "error.offering_not_found"},
	{Target: service.ErrCourseNotFound, Code: response.CodeBadRequest, Key: "error.course_not_found"},
	{Target: service.ErrScheduleNotFound, Code: response.CodeBadRequest, Key: "error.schedule_not_found"},
	{Target: service.ErrOfferingExists, Code: response.CodeConflict, Key: "error.offering_exists"},
	{Target: service.ErrOfferingInUse, Code: response.CodeConflict, Key: "error.offering_in_use"},
}

var paymentMethodErrorRules = []mappedHandlerError{
	{Target: service.ErrPaymentMethodNotFound, Code: response.CodeNotFound, Key: "error.payment_method_not_found"},
	{Target: service.ErrPaymentMethodInUse, Code: response.CodeConflict, Key: "error.payment_method_in_use"},
}

var adminInvoiceErrorRules = []mappedHandlerError{
	{Target: service.ErrInvoiceNotFound, Code: response.CodeNotFound, Key: "error.invoice_not_found"},
	{Target: service.ErrUserNotFound, Code: response.CodeBadRequest, Key: "error.user_not_found"},
	{Target: service.ErrPaymentMethodNotFound, Code: response.CodeBadRequest, Key: "error.payment_method_not_found"},
	{Target: service.ErrPaymentMethodInactive, Code: response.CodeBadRequest, Key: "error.payment_method_inactive"},
	{Target: service.ErrSettlementSelectionEmpty, Code: response.CodeBadRequest, Key: "error.settlement_selection_empty"},
	{Target: service.ErrSettlementNoMatchingItems, Code: response.CodeBadRequest, Key: "error.settlement_no_matching_items"},
	{Target: service.ErrCartLineChanged, Code: response.CodeConflict, Key: "error.cart_line_changed"},
	{Target: service.ErrInvoiceNumberConflict, Code: response.CodeConflict, Key: "error.invoice_number_conflict"},
}

var adminUserErrorRules = []mappedHandlerError{
	{Target: service.ErrUserNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
	{Target: service.ErrInvalidRole, Code: response.CodeBadRequest, Key: "error.role_invalid"},
	{Target: service.ErrInvalidUserStatus, Code: response.CodeBadRequest, Key: "error.user_status_invalid"},
}

func withInvalidInput(rules []mappedHandlerError) []mappedHandlerError {
	return handlershared.ConcatMappedErrors(invalidInputRules, rules)
}
