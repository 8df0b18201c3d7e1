package queue

import (
	"encoding/json"

	"github.com/dlanguage-api/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskVerificationEmail 邮箱验证邮件任务
	TaskVerificationEmail = constants.TaskVerificationEmail
	// TaskPasswordResetEmail 重置密码邮件任务
	TaskPasswordResetEmail = constants.TaskPasswordResetEmail
	// TaskInvoiceReceipt 发票回执邮件任务
	TaskInvoiceReceipt = constants.TaskInvoiceReceipt
)

// VerificationEmailPayload 邮箱验证邮件载荷
type VerificationEmailPayload struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
	Locale string `json:"locale"`
}

// PasswordResetEmailPayload 重置密码邮件载荷
type PasswordResetEmailPayload struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
	Locale string `json:"locale"`
}

// InvoiceReceiptPayload 发票回执邮件载荷
type InvoiceReceiptPayload struct {
	InvoiceID uint   `json:"invoice_id"`
	Locale    string `json:"locale"`
}

func newJSONTask(taskType string, payload interface{}) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(taskType, body), nil
}

// NewVerificationEmailTask 创建邮箱验证邮件任务
func NewVerificationEmailTask(payload VerificationEmailPayload) (*asynq.Task, error) {
	return newJSONTask(TaskVerificationEmail, payload)
}

// NewPasswordResetEmailTask 创建重置密码邮件任务
func NewPasswordResetEmailTask(payload PasswordResetEmailPayload) (*asynq.Task, error) {
	return newJSONTask(TaskPasswordResetEmail, payload)
}

// NewInvoiceReceiptTask 创建发票回执邮件任务
func NewInvoiceReceiptTask(payload InvoiceReceiptPayload) (*asynq.Task, error) {
	return newJSONTask(TaskInvoiceReceipt, payload)
}
