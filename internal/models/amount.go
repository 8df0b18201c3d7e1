package models

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrAmountNotIntegral = errors.New("amount must be a whole number of minor units")
	ErrAmountNegative    = errors.New("amount must not be negative")
)

// Amount 金额（最小货币单位，整数）
type Amount int64

// NewAmountFromDecimal 从 decimal 创建金额，要求为非负整数
func NewAmountFromDecimal(d decimal.Decimal) (Amount, error) {
	if !d.Equal(d.Truncate(0)) {
		return 0, ErrAmountNotIntegral
	}
	if d.IsNegative() {
		return 0, ErrAmountNegative
	}
	return Amount(d.IntPart()), nil
}

// Decimal 转换为 decimal
func (a Amount) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(a))
}

// Int64 返回原始整数值
func (a Amount) Int64() int64 {
	return int64(a)
}

// String 返回十进制文本
func (a Amount) String() string {
	return strconv.FormatInt(int64(a), 10)
}

// Grouped 千位以点分隔，用于邮件与报表展示（125000 -> 125.000）
func (a Amount) Grouped() string {
	digits := a.Decimal().Abs().StringFixed(0)
	var b strings.Builder
	if a < 0 {
		b.WriteByte('-')
	}
	for i, ch := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(ch)
	}
	return b.String()
}

// UnmarshalJSON 解析金额（字符串或数字）
func (a *Amount) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	raw := b
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = []byte(s)
	}
	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return err
	}
	amount, err := NewAmountFromDecimal(d)
	if err != nil {
		return err
	}
	*a = amount
	return nil
}

// SumAmounts 求和
func SumAmounts(values ...Amount) Amount {
	var total Amount
	for _, v := range values {
		total += v
	}
	return total
}
