package public

import (
	handlershared "github.com/dlanguage-api/internal/http/handlers/shared"
	"github.com/dlanguage-api/internal/http/response"
	"github.com/dlanguage-api/internal/service"

	"github.com/gin-gonic/gin"
)

type mappedHandlerError = handlershared.MappedError

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	handlershared.RespondWithMappedError(c, err, rules, fallbackCode, fallbackKey)
}

var identityErrorRules = []mappedHandlerError{
	{Target: service.ErrUnauthenticated, Code: response.CodeUnauthorized, Key: "error.unauthorized"},
}

var cartAddErrorRules = []mappedHandlerError{
	{Target: service.ErrOfferingNotFound, Code: response.CodeNotFound, Key: "error.offering_not_found"},
	{Target: service.ErrCartLineDuplicate, Code: response.CodeConflict, Key: "error.cart_line_duplicate"},
}

var cartRemoveErrorRules = []mappedHandlerError{
	{Target: service.ErrCartLineNotFound, Code: response.CodeNotFound, Key: "error.cart_line_not_found"},
}

var settleErrorRules = []mappedHandlerError{
	{Target: service.ErrInvalidInput, Code: response.CodeBadRequest, Key: "error.bad_request"},
	{Target: service.ErrSettlementSelectionEmpty, Code: response.CodeBadRequest, Key: "error.settlement_selection_empty"},
	{Target: service.ErrPaymentMethodNotFound, Code: response.CodeBadRequest, Key: "error.payment_method_not_found"},
	{Target: service.ErrPaymentMethodInactive, Code: response.CodeBadRequest, Key: "error.payment_method_inactive"},
	{Target: service.ErrSettlementNoMatchingItems, Code: response.CodeBadRequest, Key: "error.settlement_no_matching_items"},
	{Target: service.ErrCartLineChanged, Code: response.CodeConflict, Key: "error.cart_line_changed"},
	{Target: service.ErrInvoiceNumberConflict, Code: response.CodeConflict, Key: "error.invoice_number_conflict"},
}

var invoiceReadErrorRules = []mappedHandlerError{
	{Target: service.ErrInvoiceNotFound, Code: response.CodeNotFound, Key: "error.invoice_not_found"},
}

var registerErrorRules = []mappedHandlerError{
	{Target: service.ErrInvalidInput, Code: response.CodeBadRequest, Key: "error.username_invalid"},
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.email_invalid"},
	{Target: service.ErrEmailExists, Code: response.CodeConflict, Key: "error.email_exists"},
	{Target: service.ErrUsernameExists, Code: response.CodeConflict, Key: "error.username_exists"},
	{Target: service.ErrWeakPassword, Code: response.CodeBadRequest, Key: "error.password_weak"},
}

var loginErrorRules = []mappedHandlerError{
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.login_invalid"},
	{Target: service.ErrEmailNotVerified, Code: response.CodeForbidden, Key: "error.email_not_verified"},
	{Target: service.ErrUserDisabled, Code: response.CodeForbidden, Key: "error.user_disabled"},
}

var verificationErrorRules = []mappedHandlerError{
	{Target: service.ErrVerificationTokenInvalid, Code: response.CodeBadRequest, Key: "error.verification_token_invalid"},
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.email_invalid"},
	{Target: service.ErrUserNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
	{Target: service.ErrEmailAlreadyVerified, Code: response.CodeConflict, Key: "error.email_already_verified"},
	{Target: service.ErrUserDisabled, Code: response.CodeForbidden, Key: "error.user_disabled"},
}

var resetPasswordErrorRules = []mappedHandlerError{
	{Target: service.ErrResetTokenInvalid, Code: response.CodeBadRequest, Key: "error.reset_token_invalid"},
	{Target: service.ErrWeakPassword, Code: response.CodeBadRequest, Key: "error.password_weak"},
}

var catalogReadErrorRules = []mappedHandlerError{
	{Target: service.ErrCategoryNotFound, Code: response.CodeNotFound, Key: "error.category_not_found"},
	{Target: service.ErrCourseNotFound, Code: response.CodeNotFound, Key: "error.course_not_found"},
}

func respondSettleError(c *gin.Context, err error) {
	respondWithMappedError(c, err, handlershared.ConcatMappedErrors(identityErrorRules, settleErrorRules), response.CodeInternal, "error.settlement_failed")
}

func respondCartAddError(c *gin.Context, err error) {
	respondWithMappedError(c, err, handlershared.ConcatMappedErrors(identityErrorRules, cartAddErrorRules), response.CodeInternal, "error.cart_update_failed")
}
