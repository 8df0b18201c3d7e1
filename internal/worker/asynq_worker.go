package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/dlanguage-api/internal/logger"
	"github.com/dlanguage-api/internal/models"
	"github.com/dlanguage-api/internal/provider"
	"github.com/dlanguage-api/internal/queue"
	"github.com/dlanguage-api/internal/repository"
	"github.com/dlanguage-api/internal/service"

	"github.com/hibiken/asynq"
)

// Mailer 邮件发送能力
type Mailer interface {
	SendVerificationEmail(toEmail, username, token, locale string) error
	SendPasswordResetEmail(toEmail, username, token, locale string) error
	SendInvoiceReceipt(toEmail string, invoice *models.Invoice, locale string) error
}

// Consumer 异步任务消费者
type Consumer struct {
	userRepo    repository.UserRepository
	invoiceRepo repository.InvoiceRepository
	mailer      Mailer
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	if c == nil {
		return &Consumer{}
	}
	consumer := &Consumer{
		userRepo:    c.UserRepo,
		invoiceRepo: c.InvoiceRepo,
	}
	if c.EmailService != nil {
		consumer.mailer = c.EmailService
	}
	return consumer
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskVerificationEmail, c.handleVerificationEmail)
	mux.HandleFunc(queue.TaskPasswordResetEmail, c.handlePasswordResetEmail)
	mux.HandleFunc(queue.TaskInvoiceReceipt, c.handleInvoiceReceipt)
}

func (c *Consumer) handleVerificationEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_verification_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.VerificationEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_verification_email_unmarshal_failed", "error", err)
		return err
	}
	receiver := strings.TrimSpace(payload.Email)
	if receiver == "" || strings.TrimSpace(payload.Token) == "" {
		logger.Debugw("worker_verification_email_skip_invalid_payload", "user_id", payload.UserID)
		return nil
	}
	if c.mailer == nil {
		logger.Warnw("worker_verification_email_skip_mailer_nil", "user_id", payload.UserID)
		return nil
	}
	username := c.lookupUsername(payload.UserID)
	err := c.mailer.SendVerificationEmail(receiver, username, payload.Token, payload.Locale)
	return c.finishSend("worker_verification_email", err, "user_id", payload.UserID, "receiver_email", receiver)
}

func (c *Consumer) handlePasswordResetEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_password_reset_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.PasswordResetEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_password_reset_email_unmarshal_failed", "error", err)
		return err
	}
	receiver := strings.TrimSpace(payload.Email)
	if receiver == "" || strings.TrimSpace(payload.Token) == "" {
		logger.Debugw("worker_password_reset_email_skip_invalid_payload", "user_id", payload.UserID)
		return nil
	}
	if c.mailer == nil {
		logger.Warnw("worker_password_reset_email_skip_mailer_nil", "user_id", payload.UserID)
		return nil
	}
	username := c.lookupUsername(payload.UserID)
	err := c.mailer.SendPasswordResetEmail(receiver, username, payload.Token, payload.Locale)
	return c.finishSend("worker_password_reset_email", err, "user_id", payload.UserID, "receiver_email", receiver)
}

func (c *Consumer) handleInvoiceReceipt(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_invoice_receipt_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.InvoiceReceiptPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_invoice_receipt_unmarshal_failed", "error", err)
		return err
	}
	if payload.InvoiceID == 0 {
		logger.Debugw("worker_invoice_receipt_skip_invalid_payload", "invoice_id", payload.InvoiceID)
		return nil
	}
	if c.mailer == nil || c.invoiceRepo == nil || c.userRepo == nil {
		logger.Warnw("worker_invoice_receipt_skip_dependency_nil", "invoice_id", payload.InvoiceID)
		return nil
	}
	invoice, err := c.invoiceRepo.GetByID(payload.InvoiceID)
	if err != nil {
		logger.Warnw("worker_invoice_receipt_fetch_invoice_failed", "invoice_id", payload.InvoiceID, "error", err)
		return err
	}
	if invoice == nil {
		// 发票已被删除
		logger.Debugw("worker_invoice_receipt_skip_invoice_not_found", "invoice_id", payload.InvoiceID)
		return nil
	}
	user, err := c.userRepo.GetByID(invoice.UserID)
	if err != nil {
		logger.Warnw("worker_invoice_receipt_fetch_user_failed", "invoice_id", invoice.ID, "user_id", invoice.UserID, "error", err)
		return err
	}
	if user == nil || strings.TrimSpace(user.Email) == "" {
		logger.Debugw("worker_invoice_receipt_skip_empty_receiver", "invoice_id", invoice.ID, "user_id", invoice.UserID)
		return nil
	}
	err = c.mailer.SendInvoiceReceipt(strings.TrimSpace(user.Email), invoice, payload.Locale)
	return c.finishSend("worker_invoice_receipt", err, "invoice_id", invoice.ID, "invoice_number", invoice.InvoiceNumber)
}

func (c *Consumer) lookupUsername(userID uint) string {
	if c.userRepo == nil || userID == 0 {
		return ""
	}
	user, err := c.userRepo.GetByID(userID)
	if err != nil || user == nil {
		return ""
	}
	return user.Username
}

// finishSend 邮件未启用或未配置时不重试
func (c *Consumer) finishSend(event string, err error, kv ...interface{}) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, service.ErrEmailServiceDisabled) || errors.Is(err, service.ErrEmailServiceNotConfigured) {
		logger.Debugw(event+"_skip_email_disabled", kv...)
		return nil
	}
	logger.Warnw(event+"_send_failed", append(kv, "error", err)...)
	return err
}
