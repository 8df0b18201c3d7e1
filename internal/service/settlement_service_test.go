package service

import (
	"errors"
	"testing"

	"github.com/dlanguage-api/internal/config"
	"github.com/dlanguage-api/internal/models"
	"github.com/dlanguage-api/internal/repository"

	"gorm.io/gorm"
)

func newSettlementServiceForTest(db *gorm.DB) *SettlementService {
	return NewSettlementService(
		repository.NewCartRepository(db),
		repository.NewInvoiceRepository(db),
		repository.NewPaymentMethodRepository(db),
		nil,
		config.InvoiceConfig{NumberPrefix: "DLA", NumberMaxRetries: 3},
	)
}

type scriptedNumbering struct {
	values    []int
	calls     int
	conflicts int
}

func (s *scriptedNumbering) NextNumber(_ invoiceNumberReader, afterConflict bool) (int, error) {
	if afterConflict {
		s.conflicts++
	}
	value := s.values[len(s.values)-1]
	if s.calls < len(s.values) {
		value = s.values[s.calls]
	}
	s.calls++
	return value, nil
}

func (s *scriptedNumbering) Record(invoiceNumberWriter, int) error {
	return nil
}

func (s *scriptedNumbering) Format(value int) string {
	return FormatInvoiceNumber("DLA", value)
}

func countCartLines(t *testing.T, db *gorm.DB, userID uint) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.CartLine{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		t.Fatalf("count cart lines failed: %v", err)
	}
	return count
}

func countInvoices(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.Invoice{}).Count(&count).Error; err != nil {
		t.Fatalf("count invoices failed: %v", err)
	}
	return count
}

func TestSettleMigratesSelectedLines(t *testing.T) {
	db := setupServiceTestDB(t, "settle_basic")
	fx := seedServiceFixture(t, db)
	svc := newSettlementServiceForTest(db)

	lineA := seedCartLine(t, db, 7, fx.OfferingA, 50000)
	lineB := seedCartLine(t, db, 7, fx.OfferingB, 75000)

	invoice, err := svc.Settle(SettleInput{
		UserID:          7,
		PaymentMethodID: fx.PaymentMethod.ID,
		CartLineIDs:     []uint{lineA.ID, lineB.ID},
		IsPaid:          true,
	})
	if err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	if invoice.InvoiceNumber != "DLA00001" {
		t.Fatalf("unexpected invoice number: %s", invoice.InvoiceNumber)
	}
	if invoice.TotalPrice != 125000 {
		t.Fatalf("unexpected total: %d", invoice.TotalPrice)
	}
	if !invoice.IsPaid || invoice.UserID != 7 {
		t.Fatalf("unexpected invoice header: %+v", invoice)
	}
	if len(invoice.Details) != 2 {
		t.Fatalf("expected 2 details, got %d", len(invoice.Details))
	}
	if invoice.Details[0].OfferingID != fx.OfferingA.ID || invoice.Details[1].OfferingID != fx.OfferingB.ID {
		t.Fatalf("details not in cart order: %+v", invoice.Details)
	}
	if invoice.Details[0].SubTotalPrice != 50000 || invoice.Details[1].SubTotalPrice != 75000 {
		t.Fatalf("unexpected detail prices: %+v", invoice.Details)
	}
	if invoice.DetailTotal() != invoice.TotalPrice {
		t.Fatalf("detail total %d does not match header %d", invoice.DetailTotal(), invoice.TotalPrice)
	}
	if invoice.PaymentMethodName != "Bank Transfer" {
		t.Fatalf("unexpected payment method name: %q", invoice.PaymentMethodName)
	}
	if countCartLines(t, db, 7) != 0 {
		t.Fatalf("expected cart to be empty after settlement")
	}
}

func TestSettleSequentialNumbers(t *testing.T) {
	db := setupServiceTestDB(t, "settle_sequence")
	fx := seedServiceFixture(t, db)
	svc := newSettlementServiceForTest(db)

	first := seedCartLine(t, db, 7, fx.OfferingA, 50000)
	invoice, err := svc.Settle(SettleInput{UserID: 7, PaymentMethodID: fx.PaymentMethod.ID, CartLineIDs: []uint{first.ID}, IsPaid: true})
	if err != nil {
		t.Fatalf("first settle failed: %v", err)
	}
	if invoice.InvoiceNumber != "DLA00001" {
		t.Fatalf("unexpected first number: %s", invoice.InvoiceNumber)
	}

	second := seedCartLine(t, db, 8, fx.OfferingB, 75000)
	invoice, err = svc.Settle(SettleInput{UserID: 8, PaymentMethodID: fx.PaymentMethod.ID, CartLineIDs: []uint{second.ID}, IsPaid: true})
	if err != nil {
		t.Fatalf("second settle failed: %v", err)
	}
	if invoice.InvoiceNumber != "DLA00002" {
		t.Fatalf("unexpected second number: %s", invoice.InvoiceNumber)
	}
}

func TestSettleContinuesFromLastNumber(t *testing.T) {
	db := setupServiceTestDB(t, "settle_last_number")
	fx := seedServiceFixture(t, db)
	svc := newSettlementServiceForTest(db)

	mustCreate(t, db, &models.Invoice{InvoiceNumber: "DLA00042", UserID: 3, TotalPrice: 1000, PaymentMethodID: fx.PaymentMethod.ID})
	line := seedCartLine(t, db, 7, fx.OfferingA, 50000)

	invoice, err := svc.Settle(SettleInput{UserID: 7, PaymentMethodID: fx.PaymentMethod.ID, CartLineIDs: []uint{line.ID}, IsPaid: true})
	if err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	if invoice.InvoiceNumber != "DLA00043" {
		t.Fatalf("expected DLA00043, got %s", invoice.InvoiceNumber)
	}
}

func TestSettleIgnoresForeignLinesAndKeepsUnselected(t *testing.T) {
	db := setupServiceTestDB(t, "settle_foreign")
	fx := seedServiceFixture(t, db)
	svc := newSettlementServiceForTest(db)

	ownA := seedCartLine(t, db, 7, fx.OfferingA, 50000)
	ownC := seedCartLine(t, db, 7, fx.OfferingC, 90000)
	foreign := seedCartLine(t, db, 9, fx.OfferingB, 75000)

	invoice, err := svc.Settle(SettleInput{
		UserID:          7,
		PaymentMethodID: fx.PaymentMethod.ID,
		CartLineIDs:     []uint{foreign.ID, ownA.ID},
		IsPaid:          true,
	})
	if err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	if invoice.TotalPrice != 50000 || len(invoice.Details) != 1 {
		t.Fatalf("unexpected invoice: total=%d details=%d", invoice.TotalPrice, len(invoice.Details))
	}

	var remaining []models.CartLine
	if err := db.Where("user_id = ?", 7).Find(&remaining).Error; err != nil {
		t.Fatalf("load remaining cart failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != ownC.ID {
		t.Fatalf("expected only unselected line to remain, got %+v", remaining)
	}
	if countCartLines(t, db, 9) != 1 {
		t.Fatalf("foreign cart line must be untouched")
	}
}

func TestSettleNoMatchingItems(t *testing.T) {
	db := setupServiceTestDB(t, "settle_no_match")
	fx := seedServiceFixture(t, db)
	svc := newSettlementServiceForTest(db)

	foreign := seedCartLine(t, db, 7, fx.OfferingA, 50000)

	_, err := svc.Settle(SettleInput{UserID: 9, PaymentMethodID: fx.PaymentMethod.ID, CartLineIDs: []uint{foreign.ID}, IsPaid: true})
	if !errors.Is(err, ErrSettlementNoMatchingItems) {
		t.Fatalf("expected ErrSettlementNoMatchingItems, got %v", err)
	}
	if countInvoices(t, db) != 0 {
		t.Fatalf("no invoice should be written")
	}
	if countCartLines(t, db, 7) != 1 {
		t.Fatalf("owner cart must be untouched")
	}
}

func TestSettleResubmitAfterSuccess(t *testing.T) {
	db := setupServiceTestDB(t, "settle_resubmit")
	fx := seedServiceFixture(t, db)
	svc := newSettlementServiceForTest(db)

	line := seedCartLine(t, db, 7, fx.OfferingA, 50000)
	input := SettleInput{UserID: 7, PaymentMethodID: fx.PaymentMethod.ID, CartLineIDs: []uint{line.ID}, IsPaid: true}
	if _, err := svc.Settle(input); err != nil {
		t.Fatalf("first settle failed: %v", err)
	}
	if _, err := svc.Settle(input); !errors.Is(err, ErrSettlementNoMatchingItems) {
		t.Fatalf("expected ErrSettlementNoMatchingItems on resubmit, got %v", err)
	}
	if countInvoices(t, db) != 1 {
		t.Fatalf("resubmit must not create a second invoice")
	}
}

func TestSettleRejectsInvalidInput(t *testing.T) {
	db := setupServiceTestDB(t, "settle_invalid")
	fx := seedServiceFixture(t, db)
	svc := newSettlementServiceForTest(db)
	line := seedCartLine(t, db, 7, fx.OfferingA, 50000)

	cases := []struct {
		name  string
		input SettleInput
		want  error
	}{
		{
			name:  "empty selection",
			input: SettleInput{UserID: 7, PaymentMethodID: fx.PaymentMethod.ID},
			want:  ErrSettlementSelectionEmpty,
		},
		{
			name:  "anonymous",
			input: SettleInput{PaymentMethodID: fx.PaymentMethod.ID, CartLineIDs: []uint{line.ID}},
			want:  ErrUnauthenticated,
		},
		{
			name:  "missing payment method",
			input: SettleInput{UserID: 7, PaymentMethodID: 999, CartLineIDs: []uint{line.ID}},
			want:  ErrPaymentMethodNotFound,
		},
		{
			name:  "inactive payment method",
			input: SettleInput{UserID: 7, PaymentMethodID: fx.Inactive.ID, CartLineIDs: []uint{line.ID}},
			want:  ErrPaymentMethodInactive,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Settle(tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
	if countCartLines(t, db, 7) != 1 {
		t.Fatalf("rejected settlements must not touch the cart")
	}
}

func TestSettleConflictExhaustedRollsBack(t *testing.T) {
	db := setupServiceTestDB(t, "settle_conflict")
	fx := seedServiceFixture(t, db)
	svc := newSettlementServiceForTest(db)

	// 最新一行是 DLA00001，下一个号码总会撞上已存在的 DLA00002
	mustCreate(t, db, &models.Invoice{InvoiceNumber: "DLA00002", UserID: 3, TotalPrice: 1000, PaymentMethodID: fx.PaymentMethod.ID})
	mustCreate(t, db, &models.Invoice{InvoiceNumber: "DLA00001", UserID: 3, TotalPrice: 1000, PaymentMethodID: fx.PaymentMethod.ID})

	lineA := seedCartLine(t, db, 7, fx.OfferingA, 50000)
	lineB := seedCartLine(t, db, 7, fx.OfferingB, 75000)

	_, err := svc.Settle(SettleInput{UserID: 7, PaymentMethodID: fx.PaymentMethod.ID, CartLineIDs: []uint{lineA.ID, lineB.ID}, IsPaid: true})
	if !errors.Is(err, ErrInvoiceNumberConflict) {
		t.Fatalf("expected ErrInvoiceNumberConflict, got %v", err)
	}
	if countCartLines(t, db, 7) != 2 {
		t.Fatalf("cart must be intact after rollback")
	}
	if countInvoices(t, db) != 2 {
		t.Fatalf("no invoice should be written on conflict")
	}
	var details int64
	if err := db.Model(&models.InvoiceDetail{}).Count(&details).Error; err != nil {
		t.Fatalf("count details failed: %v", err)
	}
	if details != 0 {
		t.Fatalf("expected no details, got %d", details)
	}
}

func TestSettleRetriesAfterNumberConflict(t *testing.T) {
	db := setupServiceTestDB(t, "settle_retry")
	fx := seedServiceFixture(t, db)
	svc := newSettlementServiceForTest(db)
	numbering := &scriptedNumbering{values: []int{5, 6}}
	svc.numbering = numbering

	mustCreate(t, db, &models.Invoice{InvoiceNumber: "DLA00005", UserID: 3, TotalPrice: 1000, PaymentMethodID: fx.PaymentMethod.ID})
	line := seedCartLine(t, db, 7, fx.OfferingA, 50000)

	invoice, err := svc.Settle(SettleInput{UserID: 7, PaymentMethodID: fx.PaymentMethod.ID, CartLineIDs: []uint{line.ID}, IsPaid: true})
	if err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	if invoice.InvoiceNumber != "DLA00006" {
		t.Fatalf("expected DLA00006 after retry, got %s", invoice.InvoiceNumber)
	}
	if numbering.calls != 2 || numbering.conflicts != 1 {
		t.Fatalf("expected 2 numbering attempts with 1 conflict retry, got %d/%d", numbering.calls, numbering.conflicts)
	}
	if countCartLines(t, db, 7) != 0 {
		t.Fatalf("cart line should be migrated after retry")
	}
}

func TestSettleAfterMalformedLegacyNumber(t *testing.T) {
	db := setupServiceTestDB(t, "settle_legacy_number")
	fx := seedServiceFixture(t, db)
	svc := newSettlementServiceForTest(db)

	mustCreate(t, db, &models.Invoice{InvoiceNumber: "DLA00001", UserID: 3, TotalPrice: 1000, PaymentMethodID: fx.PaymentMethod.ID})
	mustCreate(t, db, &models.Invoice{InvoiceNumber: "LEGACY-7", UserID: 3, TotalPrice: 1000, PaymentMethodID: fx.PaymentMethod.ID})
	lineA := seedCartLine(t, db, 7, fx.OfferingA, 50000)
	lineB := seedCartLine(t, db, 7, fx.OfferingB, 75000)

	first, err := svc.Settle(SettleInput{UserID: 7, PaymentMethodID: fx.PaymentMethod.ID, CartLineIDs: []uint{lineA.ID}, IsPaid: true})
	if err != nil {
		t.Fatalf("settle after legacy number failed: %v", err)
	}
	if first.InvoiceNumber != "DLA00002" {
		t.Fatalf("expected DLA00002, got %s", first.InvoiceNumber)
	}
	second, err := svc.Settle(SettleInput{UserID: 7, PaymentMethodID: fx.PaymentMethod.ID, CartLineIDs: []uint{lineB.ID}, IsPaid: true})
	if err != nil {
		t.Fatalf("second settle failed: %v", err)
	}
	if second.InvoiceNumber != "DLA00003" {
		t.Fatalf("expected DLA00003, got %s", second.InvoiceNumber)
	}
}

func TestSettleRecoversFromStaleLastNumber(t *testing.T) {
	db := setupServiceTestDB(t, "settle_stale_number")
	fx := seedServiceFixture(t, db)
	svc := newSettlementServiceForTest(db)

	// 最近一张是 DLA00003，但更早的数据里已有 DLA00004 与 DLA00009
	mustCreate(t, db, &models.Invoice{InvoiceNumber: "DLA00004", UserID: 3, TotalPrice: 1000, PaymentMethodID: fx.PaymentMethod.ID})
	mustCreate(t, db, &models.Invoice{InvoiceNumber: "DLA00009", UserID: 3, TotalPrice: 1000, PaymentMethodID: fx.PaymentMethod.ID})
	mustCreate(t, db, &models.Invoice{InvoiceNumber: "DLA00003", UserID: 3, TotalPrice: 1000, PaymentMethodID: fx.PaymentMethod.ID})
	line := seedCartLine(t, db, 7, fx.OfferingA, 50000)

	invoice, err := svc.Settle(SettleInput{UserID: 7, PaymentMethodID: fx.PaymentMethod.ID, CartLineIDs: []uint{line.ID}, IsPaid: true})
	if err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	if invoice.InvoiceNumber != "DLA00010" {
		t.Fatalf("expected DLA00010 after conflict retry, got %s", invoice.InvoiceNumber)
	}
	if countCartLines(t, db, 7) != 0 {
		t.Fatalf("cart line should be migrated")
	}
}

func TestSettleDoesNotReissueDeletedNumber(t *testing.T) {
	db := setupServiceTestDB(t, "settle_deleted_number")
	fx := seedServiceFixture(t, db)
	svc := newSettlementServiceForTest(db)

	lineA := seedCartLine(t, db, 7, fx.OfferingA, 50000)
	lineB := seedCartLine(t, db, 7, fx.OfferingB, 75000)

	first, err := svc.Settle(SettleInput{UserID: 7, PaymentMethodID: fx.PaymentMethod.ID, CartLineIDs: []uint{lineA.ID}, IsPaid: true})
	if err != nil {
		t.Fatalf("first settle failed: %v", err)
	}
	if first.InvoiceNumber != "DLA00001" {
		t.Fatalf("expected DLA00001, got %s", first.InvoiceNumber)
	}
	deleted, err := repository.NewInvoiceRepository(db).Delete(first.ID)
	if err != nil || !deleted {
		t.Fatalf("delete invoice failed: %v %v", deleted, err)
	}

	second, err := svc.Settle(SettleInput{UserID: 7, PaymentMethodID: fx.PaymentMethod.ID, CartLineIDs: []uint{lineB.ID}, IsPaid: true})
	if err != nil {
		t.Fatalf("second settle failed: %v", err)
	}
	if second.InvoiceNumber != "DLA00002" {
		t.Fatalf("deleted number must not be issued again, got %s", second.InvoiceNumber)
	}
}

func TestSettleSelectAllWhenEmpty(t *testing.T) {
	db := setupServiceTestDB(t, "settle_select_all")
	fx := seedServiceFixture(t, db)
	svc := newSettlementServiceForTest(db)

	seedCartLine(t, db, 7, fx.OfferingA, 50000)
	seedCartLine(t, db, 7, fx.OfferingB, 75000)

	invoice, err := svc.Settle(SettleInput{UserID: 7, PaymentMethodID: fx.PaymentMethod.ID, SelectAllWhenEmpty: true})
	if err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	if invoice.IsPaid {
		t.Fatalf("expected unpaid invoice")
	}
	if invoice.TotalPrice != 125000 || len(invoice.Details) != 2 {
		t.Fatalf("unexpected invoice: total=%d details=%d", invoice.TotalPrice, len(invoice.Details))
	}
}

func TestSelectCartLinesKeepsCartOrder(t *testing.T) {
	lines := []models.CartLine{{ID: 3}, {ID: 5}, {ID: 8}}
	selected := selectCartLines(lines, []uint{8, 3, 42, 8}, false)
	if len(selected) != 2 || selected[0].ID != 3 || selected[1].ID != 8 {
		t.Fatalf("unexpected selection: %+v", selected)
	}
	if got := selectCartLines(lines, nil, false); got != nil {
		t.Fatalf("expected nil selection, got %+v", got)
	}
	if got := selectCartLines(lines, nil, true); len(got) != 3 {
		t.Fatalf("expected all lines, got %+v", got)
	}
}
