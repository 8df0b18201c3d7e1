package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/dlanguage-api/internal/config"
	"github.com/dlanguage-api/internal/i18n"
	"github.com/dlanguage-api/internal/models"
)

func TestBuildInvoiceReceiptContent(t *testing.T) {
	invoice := &models.Invoice{
		InvoiceNumber:     "DLA00007",
		TotalPrice:        125000,
		IsPaid:            true,
		PaymentMethodName: "Bank Transfer",
		Details: []models.InvoiceDetail{
			{DetailNo: 1, CourseName: "Korean Basic", ScheduleDate: "2025-03-10", SubTotalPrice: 50000},
			{DetailNo: 2, CourseName: "Korean Intermediate", ScheduleDate: "2025-03-10", SubTotalPrice: 75000},
		},
	}

	tests := []struct {
		name             string
		locale           string
		wantSubject      string
		wantBodyContains []string
	}{
		{
			name:        "indonesian",
			locale:      i18n.LocaleID,
			wantSubject: "DLA00007",
			wantBodyContains: []string{
				"Korean Basic",
				"Rp 125.000",
				"Lunas",
			},
		},
		{
			name:        "english",
			locale:      i18n.LocaleEN,
			wantSubject: "DLA00007",
			wantBodyContains: []string{
				"Korean Intermediate",
				"Bank Transfer",
				"Paid",
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			subject, body := buildInvoiceReceiptContent(invoice, tc.locale)
			if !strings.Contains(subject, tc.wantSubject) {
				t.Fatalf("subject %q missing %q", subject, tc.wantSubject)
			}
			for _, want := range tc.wantBodyContains {
				if !strings.Contains(body, want) {
					t.Fatalf("body missing %q: %s", want, body)
				}
			}
		})
	}
}

func TestEmailServiceDisabled(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{Enabled: false})
	if err := svc.SendVerificationEmail("member@example.com", "member", "token", i18n.LocaleID); !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("expected ErrEmailServiceDisabled, got %v", err)
	}
	svc = NewEmailService(&config.EmailConfig{Enabled: true})
	if err := svc.SendPasswordResetEmail("member@example.com", "member", "token", i18n.LocaleID); !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("expected ErrEmailServiceNotConfigured, got %v", err)
	}
}

func TestBuildLinkUsesFrontendURL(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{FrontendURL: "https://dlanguage.test/"})
	if got := svc.buildLink("/verify-email", "abc"); got != "https://dlanguage.test/verify-email?token=abc" {
		t.Fatalf("unexpected link: %s", got)
	}
}

func TestIsEmailRecipientRejected(t *testing.T) {
	if !isEmailRecipientRejected(errors.New("550 5.1.1 Recipient address rejected")) {
		t.Fatalf("expected rejection to be detected")
	}
	if isEmailRecipientRejected(errors.New("421 service not available")) {
		t.Fatalf("temporary failure must not be treated as rejection")
	}
	if err := normalizeEmailSendError(errors.New("550 no such user")); !errors.Is(err, ErrEmailRecipientRejected) {
		t.Fatalf("expected ErrEmailRecipientRejected, got %v", err)
	}
}
