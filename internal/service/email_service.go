package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/dlanguage-api/internal/config"
	"github.com/dlanguage-api/internal/i18n"
	"github.com/dlanguage-api/internal/models"
)

// EmailService 邮件发送服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// Enabled 邮件服务是否可用
func (s *EmailService) Enabled() bool {
	return s != nil && s.cfg != nil && s.cfg.Enabled
}

// SendVerificationEmail 发送邮箱验证链接
func (s *EmailService) SendVerificationEmail(toEmail, username, token, locale string) error {
	link := s.buildLink("/verify-email", token)
	subject := i18n.T(locale, "email.verification.subject")
	body := i18n.Sprintf(locale, "email.verification.body", username, link)
	return s.sendTextEmail(toEmail, subject, body)
}

// SendPasswordResetEmail 发送重置密码链接
func (s *EmailService) SendPasswordResetEmail(toEmail, username, token, locale string) error {
	link := s.buildLink("/reset-password", token)
	subject := i18n.T(locale, "email.password_reset.subject")
	body := i18n.Sprintf(locale, "email.password_reset.body", username, link)
	return s.sendTextEmail(toEmail, subject, body)
}

// SendInvoiceReceipt 发送发票回执
func (s *EmailService) SendInvoiceReceipt(toEmail string, invoice *models.Invoice, locale string) error {
	if invoice == nil {
		return ErrInvoiceNotFound
	}
	subject, body := buildInvoiceReceiptContent(invoice, locale)
	return s.sendTextEmail(toEmail, subject, body)
}

func (s *EmailService) buildLink(path, token string) string {
	base := ""
	if s.cfg != nil {
		base = strings.TrimRight(strings.TrimSpace(s.cfg.FrontendURL), "/")
	}
	return fmt.Sprintf("%s%s?token=%s", base, path, token)
}

func buildInvoiceReceiptContent(invoice *models.Invoice, locale string) (string, string) {
	subject := i18n.Sprintf(locale, "email.invoice_receipt.subject", invoice.InvoiceNumber)

	var lines strings.Builder
	for _, detail := range invoice.Details {
		lines.WriteString(i18n.Sprintf(locale, "email.invoice_receipt.line",
			detail.DetailNo,
			detail.CourseName,
			detail.ScheduleDate,
			detail.SubTotalPrice.Grouped(),
		))
		lines.WriteString("\n")
	}

	statusKey := "email.invoice_receipt.status_unpaid"
	if invoice.IsPaid {
		statusKey = "email.invoice_receipt.status_paid"
	}
	body := i18n.Sprintf(locale, "email.invoice_receipt.body",
		invoice.InvoiceNumber,
		invoice.PaymentMethodName,
		i18n.T(locale, statusKey),
		strings.TrimRight(lines.String(), "\n"),
		invoice.TotalPrice.Grouped(),
	)
	return subject, body
}

func (s *EmailService) sendTextEmail(toEmail, subject, body string) error {
	if s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := buildEmailMessage(from, toEmail, subject, body)

	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprintf("%d", s.cfg.Port))
	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	client, err := s.dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()
	return normalizeEmailSendError(deliver(client, auth, s.cfg.From, []string{toEmail}, []byte(msg)))
}

// dial SSL 直连优先，其次 STARTTLS，最后明文
func (s *EmailService) dial(addr string) (*smtp.Client, error) {
	tlsConfig := &tls.Config{ServerName: s.cfg.Host}
	if s.cfg.UseSSL {
		conn, err := tls.Dial("tcp", addr, tlsConfig)
		if err != nil {
			return nil, err
		}
		client, err := smtp.NewClient(conn, s.cfg.Host)
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
		return client, nil
	}
	client, err := smtp.Dial(addr)
	if err != nil {
		return nil, err
	}
	if s.cfg.UseTLS {
		if err := client.StartTLS(tlsConfig); err != nil {
			_ = client.Close()
			return nil, err
		}
	}
	return client, nil
}

func deliver(client *smtp.Client, auth smtp.Auth, from string, to []string, msg []byte) error {
	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

func normalizeEmailSendError(err error) error {
	if err == nil {
		return nil
	}
	if isEmailRecipientRejected(err) {
		return fmt.Errorf("%w: %v", ErrEmailRecipientRejected, err)
	}
	return err
}

var recipientRejectedKeywords = []string{
	"no such recipient",
	"no such user",
	"recipient not found",
	"recipient address rejected",
	"invalid recipient",
	"user unknown",
	"unknown user",
	"mailbox unavailable",
}

func isEmailRecipientRejected(err error) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(strings.TrimSpace(err.Error()))
	for _, keyword := range recipientRejectedKeywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	if strings.Contains(message, "550") {
		for _, hint := range []string{"recipient", "mailbox", "rcpt"} {
			if strings.Contains(message, hint) {
				return true
			}
		}
	}
	return false
}
