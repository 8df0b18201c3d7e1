package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dlanguage-api/internal/constants"
	"github.com/dlanguage-api/internal/models"
	"github.com/dlanguage-api/internal/repository"
)

func TestLoginLogServiceRecord(t *testing.T) {
	db := setupServiceTestDB(t, "login_log_record")
	user := models.User{Email: "budi@example.com", Username: "budi", PasswordHash: "x", Role: constants.UserRoleMember, Status: constants.UserStatusActive}
	mustCreate(t, db, &user)

	svc := NewLoginLogService(repository.NewLoginLogRepository(db), repository.NewUserRepository(db))
	if err := svc.Record(RecordLoginInput{UserID: user.ID, Email: "budi@example.com", ClientIP: "10.0.0.1", RequestID: "req-1"}); err != nil {
		t.Fatalf("record success failed: %v", err)
	}
	if err := svc.Record(RecordLoginInput{Email: " BUDI@example.com ", Err: ErrInvalidCredentials, ClientIP: "10.0.0.2"}); err != nil {
		t.Fatalf("record failure failed: %v", err)
	}
	if err := svc.Record(RecordLoginInput{Email: "ghost@example.com", Err: fmt.Errorf("wrap: %w", ErrEmailNotVerified)}); err != nil {
		t.Fatalf("record unknown user failed: %v", err)
	}

	logs, total, err := svc.ListByUser(user.ID, 1, 20)
	if err != nil {
		t.Fatalf("list by user failed: %v", err)
	}
	if total != 2 || len(logs) != 2 {
		t.Fatalf("expected 2 logs for user, got total=%d len=%d", total, len(logs))
	}
	latest := logs[0]
	if latest.Status != constants.LoginLogStatusFailed || latest.FailReason != constants.LoginLogFailReasonInvalidCredentials {
		t.Fatalf("unexpected latest log: %+v", latest)
	}
	if latest.Email != "budi@example.com" {
		t.Fatalf("email should be normalized, got %q", latest.Email)
	}

	failed, total, err := svc.List(repository.LoginLogListFilter{Status: "FAILED", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed logs failed: %v", err)
	}
	if total != 2 || len(failed) != 2 {
		t.Fatalf("expected 2 failed logs, got %d", total)
	}
	if failed[0].UserID != 0 || failed[0].FailReason != constants.LoginLogFailReasonEmailNotVerified {
		t.Fatalf("unexpected unknown-user log: %+v", failed[0])
	}
}

func TestLoginFailReason(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrInvalidCredentials, constants.LoginLogFailReasonInvalidCredentials},
		{ErrUserDisabled, constants.LoginLogFailReasonUserDisabled},
		{ErrEmailNotVerified, constants.LoginLogFailReasonEmailNotVerified},
		{errors.New("db down"), constants.LoginLogFailReasonInternalError},
	}
	for _, tc := range cases {
		if got := LoginFailReason(tc.err); got != tc.want {
			t.Fatalf("LoginFailReason(%v)=%q want %q", tc.err, got, tc.want)
		}
	}
}

func TestAuthzAuditServiceRecord(t *testing.T) {
	db := setupServiceTestDB(t, "authz_audit_record")
	svc := NewAuthzAuditService(repository.NewAuthzAuditLogRepository(db))

	if err := svc.Record(AuthzAuditRecordInput{Action: constants.AuthzAuditActionRoleCreate}); err != nil {
		t.Fatalf("record without operator failed: %v", err)
	}
	if err := svc.Record(AuthzAuditRecordInput{
		OperatorUserID: 1,
		OperatorRole:   "admin",
		Action:         constants.AuthzAuditActionPolicyGrant,
		Role:           "role:support",
		Object:         "/admin/invoices",
		Method:         "get",
		Detail:         map[string]interface{}{"source": "test"},
	}); err != nil {
		t.Fatalf("record policy grant failed: %v", err)
	}

	logs, total, err := svc.List(repository.AuthzAuditListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list audit logs failed: %v", err)
	}
	if total != 1 || len(logs) != 1 {
		t.Fatalf("expected exactly one audit log, got %d", total)
	}
	if logs[0].Method != "GET" || logs[0].Detail["source"] != "test" {
		t.Fatalf("unexpected audit log: %+v", logs[0])
	}
}
