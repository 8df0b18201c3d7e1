package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dlanguage-api/internal/constants"
)

// invoiceNumberScanBatch 扫描历史发票号的分页大小
const invoiceNumberScanBatch = 100

// invoiceNumberReader 发票号读取
type invoiceNumberReader interface {
	LastInvoiceNumber() (string, bool, error)
	ListInvoiceNumbersByPrefix(prefix string, offset, limit int) ([]string, error)
	LastIssuedNumber(prefix string) (int, bool, error)
}

// invoiceNumberWriter 记录已发出的序号
type invoiceNumberWriter interface {
	SaveIssuedNumber(prefix string, value int) error
}

// InvoiceNumbering 发票号分配
type InvoiceNumbering struct {
	prefix string
}

// NewInvoiceNumbering 创建发票号分配器
func NewInvoiceNumbering(prefix string) *InvoiceNumbering {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = constants.DefaultInvoiceNumberPrefix
	}
	return &InvoiceNumbering{prefix: prefix}
}

// Prefix 发票号前缀
func (n *InvoiceNumbering) Prefix() string {
	return n.prefix
}

// NextNumber 返回下一个序号。
// 最近一张发票号合法时取其值 + 1；不合法或 afterConflict 时改用现存最大的合法发票号 + 1；
// 没有任何合法发票号时为 1。结果不小于已发出的最大序号 + 1，删除的号码不会再次发出。
func (n *InvoiceNumbering) NextNumber(repo invoiceNumberReader, afterConflict bool) (int, error) {
	next, err := n.derive(repo, afterConflict)
	if err != nil {
		return 0, err
	}
	issued, ok, err := repo.LastIssuedNumber(n.prefix)
	if err != nil {
		return 0, err
	}
	if ok && issued >= next {
		next = issued + 1
	}
	return next, nil
}

// Record 记录已写入的序号
func (n *InvoiceNumbering) Record(repo invoiceNumberWriter, value int) error {
	return repo.SaveIssuedNumber(n.prefix, value)
}

func (n *InvoiceNumbering) derive(repo invoiceNumberReader, afterConflict bool) (int, error) {
	if !afterConflict {
		last, ok, err := repo.LastInvoiceNumber()
		if err != nil {
			return 0, err
		}
		if !ok {
			return 1, nil
		}
		if value, valid := n.parse(last); valid {
			return value + 1, nil
		}
	}
	highest, err := n.highest(repo)
	if err != nil {
		return 0, err
	}
	return highest + 1, nil
}

// highest 扫描同前缀的发票号，返回最大的合法序号，没有时返回 0
func (n *InvoiceNumbering) highest(repo invoiceNumberReader) (int, error) {
	for offset := 0; ; offset += invoiceNumberScanBatch {
		numbers, err := repo.ListInvoiceNumbersByPrefix(n.prefix, offset, invoiceNumberScanBatch)
		if err != nil {
			return 0, err
		}
		// 长度降序 + 字典序降序，第一个合法值即最大值
		for _, number := range numbers {
			if value, valid := n.parse(number); valid {
				return value, nil
			}
		}
		if len(numbers) < invoiceNumberScanBatch {
			return 0, nil
		}
	}
}

// parse 合法格式：前缀 + 至少 5 位数字，超过 5 位时不允许前导零
func (n *InvoiceNumbering) parse(number string) (int, bool) {
	number = strings.TrimSpace(number)
	if !strings.HasPrefix(number, n.prefix) {
		return 0, false
	}
	digits := strings.TrimPrefix(number, n.prefix)
	if len(digits) < constants.InvoiceNumberDigits {
		return 0, false
	}
	if len(digits) > constants.InvoiceNumberDigits && digits[0] == '0' {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	value, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return value, true
}

// Format 渲染为 前缀 + 5 位补零序号
func (n *InvoiceNumbering) Format(value int) string {
	return FormatInvoiceNumber(n.prefix, value)
}

// FormatInvoiceNumber 渲染发票号
func FormatInvoiceNumber(prefix string, value int) string {
	return fmt.Sprintf("%s%0*d", prefix, constants.InvoiceNumberDigits, value)
}
