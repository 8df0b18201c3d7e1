package public

import (
	handlershared "github.com/dlanguage-api/internal/http/handlers/shared"
	"github.com/dlanguage-api/internal/http/response"
	"github.com/dlanguage-api/internal/i18n"
	"github.com/dlanguage-api/internal/models"
	"github.com/dlanguage-api/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest 用户注册请求
type UserRegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserRegister 用户注册，成功后发送验证邮件
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}

	user, err := h.UserAuthService.Register(service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Locale:   i18n.ResolveLocale(c),
	})
	if err != nil {
		respondWithMappedError(c, err, registerErrorRules, response.CodeInternal, "error.register_failed")
		return
	}
	respondCreated(c, "message.register_success", gin.H{
		"user":                  user,
		"verification_required": true,
	})
}

// UserLoginRequest 用户登录请求
type UserLoginRequest struct {
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// UserLogin 用户登录
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(req.Email, req.Password, req.RememberMe)
	h.recordLogin(c, req.Email, user, err)
	if err != nil {
		respondWithMappedError(c, err, loginErrorRules, response.CodeInternal, "error.login_failed")
		return
	}
	requestLog(c).Infow("user_login_success", "user_id", user.ID, "client_ip", c.ClientIP())

	response.Success(c, gin.H{
		"user":       user,
		"token":      token,
		"expires_at": expiresAt,
	})
}

// VerifyEmail 通过邮件链接令牌验证邮箱
func (h *Handler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		respondError(c, response.CodeBadRequest, "error.verification_token_invalid", nil)
		return
	}
	user, err := h.UserAuthService.VerifyEmail(token)
	if err != nil {
		respondWithMappedError(c, err, verificationErrorRules, response.CodeInternal, "error.verify_email_failed")
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "message.email_verified"), gin.H{
		"email":             user.Email,
		"email_verified_at": user.EmailVerifiedAt,
	})
}

// GetVerificationStatus 查询邮箱验证状态
func (h *Handler) GetVerificationStatus(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		respondError(c, response.CodeBadRequest, "error.email_invalid", nil)
		return
	}
	status, err := h.UserAuthService.GetVerificationStatus(email)
	if err != nil {
		respondWithMappedError(c, err, verificationErrorRules, response.CodeInternal, "error.user_fetch_failed")
		return
	}
	response.Success(c, status)
}

// UserEmailRequest 仅包含邮箱的请求
type UserEmailRequest struct {
	Email string `json:"email" binding:"required"`
}

// ResendVerification 重新发送验证邮件
func (h *Handler) ResendVerification(c *gin.Context) {
	var req UserEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	if err := h.UserAuthService.ResendVerification(req.Email, i18n.ResolveLocale(c)); err != nil {
		respondWithMappedError(c, err, verificationErrorRules, response.CodeInternal, "error.send_verification_failed")
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "message.verification_sent"), gin.H{"sent": true})
}

// UserForgotPassword 忘记密码；无论邮箱是否存在都返回相同结果
func (h *Handler) UserForgotPassword(c *gin.Context) {
	var req UserEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	if err := h.UserAuthService.ForgotPassword(req.Email, i18n.ResolveLocale(c)); err != nil {
		respondError(c, response.CodeInternal, "error.forgot_password_failed", err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "message.password_reset_requested"), gin.H{"requested": true})
}

// UserResetPasswordRequest 重置密码请求
type UserResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UserResetPassword 使用邮件令牌重置密码
func (h *Handler) UserResetPassword(c *gin.Context) {
	var req UserResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	if err := h.UserAuthService.ResetPassword(req.Token, req.NewPassword); err != nil {
		respondWithMappedError(c, err, resetPasswordErrorRules, response.CodeInternal, "error.reset_failed")
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "message.password_reset"), gin.H{"reset": true})
}

// GetCurrentUser 获取当前登录用户
func (h *Handler) GetCurrentUser(c *gin.Context) {
	id, ok := h.currentIdentity(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetUserByID(id.UserID)
	if err != nil {
		respondWithMappedError(c, err, concatUserRules(), response.CodeInternal, "error.user_fetch_failed")
		return
	}
	response.Success(c, user)
}

func concatUserRules() []mappedHandlerError {
	return handlershared.ConcatMappedErrors(identityErrorRules, []mappedHandlerError{
		{Target: service.ErrUserNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
	})
}

func (h *Handler) recordLogin(c *gin.Context, email string, user *models.User, loginErr error) {
	input := service.RecordLoginInput{
		Email:     email,
		Err:       loginErr,
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RequestID: handlershared.RequestID(c),
	}
	if user != nil && loginErr == nil {
		input.UserID = user.ID
	}
	if err := h.LoginLogService.Record(input); err != nil {
		requestLog(c).Warnw("user_login_log_record_failed", "error", err)
	}
}

// GetMyLoginLogs 查询当前用户的登录记录
func (h *Handler) GetMyLoginLogs(c *gin.Context) {
	id, ok := h.currentIdentity(c)
	if !ok {
		return
	}
	var query struct {
		Page     int `form:"page"`
		PageSize int `form:"page_size"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	page, pageSize := handlershared.NormalizePagination(query.Page, query.PageSize)
	logs, total, err := h.LoginLogService.ListByUser(id.UserID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.login_log_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, logs, response.NewPagination(page, pageSize, total))
}
