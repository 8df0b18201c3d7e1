package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dlanguage-api/internal/cache"
	"github.com/dlanguage-api/internal/config"
	"github.com/dlanguage-api/internal/constants"
	"github.com/dlanguage-api/internal/logger"
	"github.com/dlanguage-api/internal/models"
	"github.com/dlanguage-api/internal/queue"
	"github.com/dlanguage-api/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserAuthService 用户认证服务
type UserAuthService struct {
	cfg         *config.Config
	userRepo    repository.UserRepository
	queueClient *queue.Client
}

// NewUserAuthService 创建用户认证服务
func NewUserAuthService(cfg *config.Config, userRepo repository.UserRepository, queueClient *queue.Client) *UserAuthService {
	return &UserAuthService{
		cfg:         cfg,
		userRepo:    userRepo,
		queueClient: queueClient,
	}
}

// UserJWTClaims 用户 JWT 声明
type UserJWTClaims struct {
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// RegisterInput 注册输入
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Locale   string
}

// VerificationStatus 邮箱验证状态
type VerificationStatus struct {
	Email           string     `json:"email"`
	Verified        bool       `json:"verified"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
}

// GenerateUserJWT 生成用户 JWT Token
func (s *UserAuthService) GenerateUserJWT(user *models.User, expireHours int) (string, time.Time, error) {
	resolvedHours := expireHours
	if resolvedHours <= 0 {
		resolvedHours = resolveUserJWTExpireHours(s.cfg.UserJWT)
	}
	now := time.Now()
	expiresAt := now.Add(time.Duration(resolvedHours) * time.Hour)
	claims := UserJWTClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.UserJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseUserJWT 解析用户 JWT Token
func (s *UserAuthService) ParseUserJWT(tokenString string) (*UserJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &UserJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.UserJWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*UserJWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// Register 用户注册，创建后发送验证邮件
func (s *UserAuthService) Register(input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if length := utf8.RuneCountInString(username); length < 3 || length > 50 {
		return nil, ErrInvalidInput
	}
	normalized, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, err
	}

	exist, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrEmailExists
	}
	exist, err = s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrUsernameExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	token, expiresAt := s.newVerificationToken(now)
	user := &models.User{
		Username:                   username,
		Email:                      normalized,
		PasswordHash:               string(hashedPassword),
		Role:                       constants.UserRoleMember,
		Status:                     constants.UserStatusActive,
		VerificationToken:          token,
		VerificationTokenExpiresAt: &expiresAt,
		CreatedAt:                  now,
		UpdatedAt:                  now,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	logger.Infow("user_registered", "user_id", user.ID, "email", user.Email)
	s.enqueueVerification(user, input.Locale)
	return user, nil
}

// Login 用户登录
func (s *UserAuthService) Login(email, password string, rememberMe bool) (*models.User, string, time.Time, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if strings.ToLower(user.Status) != constants.UserStatusActive {
		return nil, "", time.Time{}, ErrUserDisabled
	}
	if !user.IsEmailVerified() {
		return nil, "", time.Time{}, ErrEmailNotVerified
	}

	expireHours := resolveUserJWTExpireHours(s.cfg.UserJWT)
	if rememberMe {
		expireHours = resolveRememberMeExpireHours(s.cfg.UserJWT)
	}
	token, expiresAt, err := s.GenerateUserJWT(user, expireHours)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))

	return user, token, expiresAt, nil
}

// VerifyEmail 使用邮件中的令牌完成邮箱验证
func (s *UserAuthService) VerifyEmail(token string) (*models.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrVerificationTokenInvalid
	}
	user, err := s.userRepo.GetByVerificationToken(token)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrVerificationTokenInvalid
	}
	if user.IsEmailVerified() {
		return nil, ErrEmailAlreadyVerified
	}
	now := time.Now()
	if user.VerificationTokenExpiresAt == nil || user.VerificationTokenExpiresAt.Before(now) {
		return nil, ErrVerificationTokenInvalid
	}

	user.EmailVerifiedAt = &now
	user.VerificationToken = ""
	user.VerificationTokenExpiresAt = nil
	user.UpdatedAt = now
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	logger.Infow("user_email_verified", "user_id", user.ID)
	return user, nil
}

// GetVerificationStatus 查询邮箱验证状态
func (s *UserAuthService) GetVerificationStatus(email string) (*VerificationStatus, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return &VerificationStatus{
		Email:           user.Email,
		Verified:        user.IsEmailVerified(),
		EmailVerifiedAt: user.EmailVerifiedAt,
	}, nil
}

// ResendVerification 重新发送验证邮件，旧令牌作废
func (s *UserAuthService) ResendVerification(email, locale string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.IsEmailVerified() {
		return ErrEmailAlreadyVerified
	}

	now := time.Now()
	token, expiresAt := s.newVerificationToken(now)
	user.VerificationToken = token
	user.VerificationTokenExpiresAt = &expiresAt
	user.UpdatedAt = now
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	s.enqueueVerification(user, locale)
	return nil
}

// ForgotPassword 发起重置密码；账户不存在时同样返回成功
func (s *UserAuthService) ForgotPassword(email, locale string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if user == nil {
		logger.Debugw("password_reset_unknown_email")
		return nil
	}

	now := time.Now()
	token := uuid.NewString()
	expiresAt := now.Add(time.Duration(resolveResetTokenTTLMinutes(s.cfg.Auth)) * time.Minute)
	user.ResetToken = token
	user.ResetTokenExpiresAt = &expiresAt
	user.UpdatedAt = now
	if err := s.userRepo.Update(user); err != nil {
		return err
	}

	if err := s.queueClient.EnqueuePasswordResetEmail(queue.PasswordResetEmailPayload{
		UserID: user.ID,
		Email:  user.Email,
		Token:  token,
		Locale: locale,
	}); err != nil {
		logger.Warnw("password_reset_email_enqueue_failed", "user_id", user.ID, "error", err)
	}
	return nil
}

// ResetPassword 使用重置令牌设置新密码，并使既有 Token 失效
func (s *UserAuthService) ResetPassword(token, newPassword string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrResetTokenInvalid
	}
	user, err := s.userRepo.GetByResetToken(token)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrResetTokenInvalid
	}
	now := time.Now()
	if user.ResetTokenExpiresAt == nil || user.ResetTokenExpiresAt.Before(now) {
		return ErrResetTokenInvalid
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashedPassword)
	user.ResetToken = ""
	user.ResetTokenExpiresAt = nil
	user.UpdatedAt = now
	user.TokenVersion++
	user.TokenInvalidBefore = &now
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	_ = cache.DelUserAuthState(context.Background(), user.ID)
	logger.Infow("user_password_reset", "user_id", user.ID)
	return nil
}

// GetUserByID 获取用户信息
func (s *UserAuthService) GetUserByID(id uint) (*models.User, error) {
	if id == 0 {
		return nil, ErrUnauthenticated
	}
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserAuthService) newVerificationToken(now time.Time) (string, time.Time) {
	ttl := time.Duration(resolveVerificationTokenTTLHours(s.cfg.Auth)) * time.Hour
	return uuid.NewString(), now.Add(ttl)
}

func (s *UserAuthService) enqueueVerification(user *models.User, locale string) {
	if err := s.queueClient.EnqueueVerificationEmail(queue.VerificationEmailPayload{
		UserID: user.ID,
		Email:  user.Email,
		Token:  user.VerificationToken,
		Locale: locale,
	}); err != nil {
		logger.Warnw("verification_email_enqueue_failed", "user_id", user.ID, "error", err)
	}
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

// NormalizeEmail 统一邮箱格式
func NormalizeEmail(email string) (string, error) {
	return normalizeEmail(email)
}

func resolveUserJWTExpireHours(cfg config.JWTConfig) int {
	if cfg.ExpireHours <= 0 {
		return 24
	}
	return cfg.ExpireHours
}

func resolveRememberMeExpireHours(cfg config.JWTConfig) int {
	if cfg.RememberMeExpireHours <= 0 {
		return resolveUserJWTExpireHours(cfg)
	}
	return cfg.RememberMeExpireHours
}

func resolveVerificationTokenTTLHours(cfg config.AuthConfig) int {
	if cfg.VerificationTokenTTLHours <= 0 {
		return 24
	}
	return cfg.VerificationTokenTTLHours
}

func resolveResetTokenTTLMinutes(cfg config.AuthConfig) int {
	if cfg.ResetTokenTTLMinutes <= 0 {
		return 60
	}
	return cfg.ResetTokenTTLMinutes
}
