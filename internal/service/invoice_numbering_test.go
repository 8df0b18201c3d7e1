package service

import (
	"errors"
	"testing"
)

// stubLastNumberReader all 需按长度降序、字典序降序排好
type stubLastNumberReader struct {
	number  string
	ok      bool
	err     error
	all     []string
	scanErr error
	issued  int
}

func (s stubLastNumberReader) LastInvoiceNumber() (string, bool, error) {
	return s.number, s.ok, s.err
}

func (s stubLastNumberReader) LastIssuedNumber(string) (int, bool, error) {
	return s.issued, s.issued > 0, nil
}

func (s stubLastNumberReader) ListInvoiceNumbersByPrefix(_ string, offset, limit int) ([]string, error) {
	if s.scanErr != nil {
		return nil, s.scanErr
	}
	if offset >= len(s.all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(s.all) {
		end = len(s.all)
	}
	return s.all[offset:end], nil
}

func TestInvoiceNumberingNextNumber(t *testing.T) {
	numbering := NewInvoiceNumbering("DLA")
	cases := []struct {
		name   string
		reader stubLastNumberReader
		want   int
	}{
		{name: "empty table", reader: stubLastNumberReader{}, want: 1},
		{name: "sequential", reader: stubLastNumberReader{number: "DLA00042", ok: true}, want: 43},
		{name: "beyond padding", reader: stubLastNumberReader{number: "DLA123456", ok: true}, want: 123457},
		{name: "malformed digits", reader: stubLastNumberReader{number: "DLAabc", ok: true}, want: 1},
		{name: "foreign prefix", reader: stubLastNumberReader{number: "INV00042", ok: true}, want: 1},
		{name: "prefix only", reader: stubLastNumberReader{number: "DLA", ok: true}, want: 1},
		{name: "negative", reader: stubLastNumberReader{number: "DLA-5", ok: true}, want: 1},
		{name: "short digits", reader: stubLastNumberReader{number: "DLA42", ok: true}, want: 1},
		{
			name:   "malformed last falls back to highest well-formed",
			reader: stubLastNumberReader{number: "LEGACY-7", ok: true, all: []string{"DLAabcdef", "DLA00009", "DLA00001"}},
			want:   10,
		},
		{name: "deleted numbers stay issued", reader: stubLastNumberReader{number: "DLA00003", ok: true, issued: 5}, want: 6},
		{name: "issued below last", reader: stubLastNumberReader{number: "DLA00003", ok: true, issued: 2}, want: 4},
		{
			name:   "padded overflow is malformed",
			reader: stubLastNumberReader{number: "DLA0000042", ok: true, all: []string{"DLA0000042", "DLA00003"}},
			want:   4,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := numbering.NextNumber(tc.reader, false)
			if err != nil {
				t.Fatalf("next number failed: %v", err)
			}
			if got != tc.want {
				t.Fatalf("want %d got %d", tc.want, got)
			}
		})
	}
}

func TestInvoiceNumberingPropagatesStoreError(t *testing.T) {
	boom := errors.New("db down")
	_, err := NewInvoiceNumbering("DLA").NextNumber(stubLastNumberReader{err: boom}, false)
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
	_, err = NewInvoiceNumbering("DLA").NextNumber(stubLastNumberReader{number: "bad", ok: true, scanErr: boom}, false)
	if !errors.Is(err, boom) {
		t.Fatalf("expected scan error, got %v", err)
	}
}

func TestInvoiceNumberingAfterConflictUsesHighest(t *testing.T) {
	numbering := NewInvoiceNumbering("DLA")
	reader := stubLastNumberReader{number: "DLA00003", ok: true, all: []string{"DLA00010", "DLA00004", "DLA00003"}}

	got, err := numbering.NextNumber(reader, false)
	if err != nil || got != 4 {
		t.Fatalf("expected 4 from last number, got %d %v", got, err)
	}
	got, err = numbering.NextNumber(reader, true)
	if err != nil || got != 11 {
		t.Fatalf("expected 11 after conflict, got %d %v", got, err)
	}
}

func TestInvoiceNumberingScansAcrossBatches(t *testing.T) {
	all := make([]string, 0, invoiceNumberScanBatch+1)
	for i := 0; i < invoiceNumberScanBatch; i++ {
		all = append(all, "DLAzzzzz")
	}
	all = append(all, "DLA00077")
	got, err := NewInvoiceNumbering("DLA").NextNumber(stubLastNumberReader{number: "DLAzzzzz", ok: true, all: all}, false)
	if err != nil {
		t.Fatalf("next number failed: %v", err)
	}
	if got != 78 {
		t.Fatalf("expected 78, got %d", got)
	}
}

func TestFormatInvoiceNumber(t *testing.T) {
	if got := FormatInvoiceNumber("DLA", 1); got != "DLA00001" {
		t.Fatalf("unexpected number: %s", got)
	}
	if got := NewInvoiceNumbering("").Format(43); got != "DLA00043" {
		t.Fatalf("unexpected number with default prefix: %s", got)
	}
	if got := FormatInvoiceNumber("DLA", 123456); got != "DLA123456" {
		t.Fatalf("overflowing counter should not be truncated: %s", got)
	}
}
