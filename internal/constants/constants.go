package constants

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 用户角色常量
const (
	UserRoleMember  = "member"
	UserRoleAdmin   = "admin"
	UserRoleFinance = "finance"
)

// 邮件令牌用途常量
const (
	TokenPurposeVerifyEmail   = "verify_email"
	TokenPurposeResetPassword = "reset_password"
)

// 发票号码常量
const (
	DefaultInvoiceNumberPrefix = "DLA"
	InvoiceNumberDigits        = 5
	DefaultInvoiceNumberRetry  = 3
)

// 队列名称常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 异步任务类型常量
const (
	TaskVerificationEmail  = "email:verification"
	TaskPasswordResetEmail = "email:password_reset"
	TaskInvoiceReceipt     = "email:invoice_receipt"
)

// 缓存键常量
const (
	CacheKeyCourseDetail = "catalog:course:%d"
)

// 登录日志常量
const (
	LoginLogStatusSuccess = "success"
	LoginLogStatusFailed  = "failed"

	LoginLogFailReasonInvalidCredentials = "invalid_credentials"
	LoginLogFailReasonEmailNotVerified   = "email_not_verified"
	LoginLogFailReasonUserDisabled       = "user_disabled"
	LoginLogFailReasonInternalError      = "internal_error"
)

// 权限审计动作常量
const (
	AuthzAuditActionRoleCreate   = "role_create"
	AuthzAuditActionRoleDelete   = "role_delete"
	AuthzAuditActionPolicyGrant  = "policy_grant"
	AuthzAuditActionPolicyRevoke = "policy_revoke"
	AuthzAuditActionUserRole     = "user_role_update"
)
