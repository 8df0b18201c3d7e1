package service

import "errors"

// 通用错误
var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidInput    = errors.New("invalid input")
)

// 购物车与结算错误
var (
	ErrCartLineDuplicate         = errors.New("course offering already in cart")
	ErrCartLineNotFound          = errors.New("cart line not found")
	ErrCartLineChanged           = errors.New("cart line changed during settlement")
	ErrSettlementSelectionEmpty  = errors.New("settlement selection is empty")
	ErrSettlementNoMatchingItems = errors.New("no matching cart items")
	ErrInvoiceNotFound           = errors.New("invoice not found")
	ErrInvoiceNumberConflict     = errors.New("invoice number conflict")
)

// 目录错误
var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryNameExists    = errors.New("category name exists")
	ErrCategoryInUse         = errors.New("category in use")
	ErrCourseNotFound        = errors.New("course not found")
	ErrCourseInUse           = errors.New("course in use")
	ErrScheduleNotFound      = errors.New("schedule not found")
	ErrScheduleDateExists    = errors.New("schedule date exists")
	ErrScheduleDateInvalid   = errors.New("schedule date invalid")
	ErrScheduleInUse         = errors.New("schedule in use")
	ErrOfferingNotFound      = errors.New("offering not found")
	ErrOfferingExists        = errors.New("offering exists")
	ErrOfferingInUse         = errors.New("offering in use")
	ErrPaymentMethodNotFound = errors.New("payment method not found")
	ErrPaymentMethodInactive = errors.New("payment method inactive")
	ErrPaymentMethodInUse    = errors.New("payment method in use")
)

// 用户与认证错误
var (
	ErrUserNotFound             = errors.New("user not found")
	ErrEmailExists              = errors.New("email exists")
	ErrUsernameExists           = errors.New("username exists")
	ErrInvalidEmail             = errors.New("invalid email")
	ErrInvalidCredentials       = errors.New("invalid credentials")
	ErrEmailNotVerified         = errors.New("email not verified")
	ErrEmailAlreadyVerified     = errors.New("email already verified")
	ErrUserDisabled             = errors.New("user disabled")
	ErrWeakPassword             = errors.New("weak password")
	ErrVerificationTokenInvalid = errors.New("verification token invalid")
	ErrResetTokenInvalid        = errors.New("reset token invalid")
	ErrInvalidRole              = errors.New("invalid role")
	ErrInvalidUserStatus        = errors.New("invalid user status")
)

// 邮件错误
var (
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
)
