package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicateEntry 唯一约束冲突
var ErrDuplicateEntry = errors.New("duplicate entry")

const pgUniqueViolation = "23505"

// IsUniqueViolation 判断错误是否为唯一约束冲突，兼容 postgres / mysql / sqlite
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDuplicateEntry) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") ||
		strings.Contains(msg, "duplicate entry") ||
		strings.Contains(msg, "duplicate key value")
}

// translateUniqueViolation 将唯一约束冲突统一转换为 ErrDuplicateEntry
func translateUniqueViolation(err error) error {
	if IsUniqueViolation(err) {
		return ErrDuplicateEntry
	}
	return err
}
