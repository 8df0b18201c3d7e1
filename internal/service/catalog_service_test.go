package service

import (
	"errors"
	"testing"

	"github.com/dlanguage-api/internal/repository"
)

func TestCategoryServiceRejectsDuplicateAndInUse(t *testing.T) {
	db := setupServiceTestDB(t, "category_service")
	fx := seedServiceFixture(t, db)
	svc := NewCategoryService(repository.NewCategoryRepository(db))

	if _, err := svc.Create(CategoryInput{Name: " Korean "}); !errors.Is(err, ErrCategoryNameExists) {
		t.Fatalf("expected ErrCategoryNameExists, got %v", err)
	}
	if err := svc.Delete(fx.Category.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}

	created, err := svc.Create(CategoryInput{Name: "Japanese", Description: "JLPT prep"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("delete unused category failed: %v", err)
	}
	if _, err := svc.GetByID(created.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCourseServiceValidation(t *testing.T) {
	db := setupServiceTestDB(t, "course_service")
	fx := seedServiceFixture(t, db)
	svc := NewCourseService(
		repository.NewCourseRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewInvoiceRepository(db),
	)

	if _, err := svc.Create(CourseInput{CategoryID: 999, Name: "Thai Basic", Price: 1000}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
	if _, err := svc.Create(CourseInput{CategoryID: fx.Category.ID, Name: "Korean Free", Price: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	course, err := svc.Create(CourseInput{CategoryID: fx.Category.ID, Name: "Korean Conversation", Price: 120000})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if course.CategoryName != "Korean" {
		t.Fatalf("expected category name to be filled, got %q", course.CategoryName)
	}
	if err := svc.Delete(fx.CourseA.ID); !errors.Is(err, ErrCourseInUse) {
		t.Fatalf("expected ErrCourseInUse, got %v", err)
	}
	if err := svc.Delete(course.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
}

func TestScheduleServiceOfferings(t *testing.T) {
	db := setupServiceTestDB(t, "schedule_service")
	fx := seedServiceFixture(t, db)
	svc := NewScheduleService(
		repository.NewScheduleRepository(db),
		repository.NewOfferingRepository(db),
		repository.NewCourseRepository(db),
		repository.NewCartRepository(db),
		repository.NewInvoiceRepository(db),
	)

	if _, err := svc.CreateSchedule("10/03/2025"); !errors.Is(err, ErrScheduleDateInvalid) {
		t.Fatalf("expected ErrScheduleDateInvalid, got %v", err)
	}
	if _, err := svc.CreateSchedule("2025-03-10"); !errors.Is(err, ErrScheduleDateExists) {
		t.Fatalf("expected ErrScheduleDateExists, got %v", err)
	}
	if _, err := svc.CreateOffering(OfferingInput{CourseID: fx.CourseA.ID, ScheduleID: fx.Schedule.ID}); !errors.Is(err, ErrOfferingExists) {
		t.Fatalf("expected ErrOfferingExists, got %v", err)
	}

	schedule, err := svc.CreateSchedule("2025-04-14")
	if err != nil {
		t.Fatalf("create schedule failed: %v", err)
	}
	offering, err := svc.CreateOffering(OfferingInput{CourseID: fx.CourseA.ID, ScheduleID: schedule.ID})
	if err != nil {
		t.Fatalf("create offering failed: %v", err)
	}
	if offering.ScheduleDate != "2025-04-14" || offering.CourseName != "Korean Basic" {
		t.Fatalf("unexpected offering display: %+v", offering)
	}
	offerings, err := svc.ListOfferingsByCourse(fx.CourseA.ID)
	if err != nil {
		t.Fatalf("list offerings failed: %v", err)
	}
	if len(offerings) != 2 {
		t.Fatalf("expected 2 offerings, got %d", len(offerings))
	}

	if err := svc.DeleteSchedule(schedule.ID); !errors.Is(err, ErrScheduleInUse) {
		t.Fatalf("expected ErrScheduleInUse, got %v", err)
	}
	seedCartLine(t, db, 7, *offering, 50000)
	if err := svc.DeleteOffering(offering.ID); !errors.Is(err, ErrOfferingInUse) {
		t.Fatalf("expected ErrOfferingInUse, got %v", err)
	}
}

func TestPaymentMethodServiceInUse(t *testing.T) {
	db := setupServiceTestDB(t, "payment_method_service")
	fx := seedServiceFixture(t, db)
	svc := NewPaymentMethodService(repository.NewPaymentMethodRepository(db), repository.NewInvoiceRepository(db))

	active, err := svc.List(true)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(active) != 1 || active[0].ID != fx.PaymentMethod.ID {
		t.Fatalf("expected only the active method, got %+v", active)
	}

	line := seedCartLine(t, db, 7, fx.OfferingA, 50000)
	settlement := newSettlementServiceForTest(db)
	if _, err := settlement.Settle(SettleInput{UserID: 7, PaymentMethodID: fx.PaymentMethod.ID, CartLineIDs: []uint{line.ID}, IsPaid: true}); err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	if err := svc.Delete(fx.PaymentMethod.ID); !errors.Is(err, ErrPaymentMethodInUse) {
		t.Fatalf("expected ErrPaymentMethodInUse, got %v", err)
	}
	if err := svc.Delete(fx.Inactive.ID); err != nil {
		t.Fatalf("delete unused method failed: %v", err)
	}
}
