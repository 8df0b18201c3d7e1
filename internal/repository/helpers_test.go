package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/dlanguage-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type catalogFixture struct {
	Category      models.Category
	CourseA       models.Course
	CourseB       models.Course
	Schedule      models.Schedule
	OfferingA     models.ScheduleCourse
	OfferingB     models.ScheduleCourse
	PaymentMethod models.PaymentMethod
}

func setupRepositoryTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func seedCatalogFixture(t *testing.T, db *gorm.DB) catalogFixture {
	t.Helper()
	var fx catalogFixture

	fx.Category = models.Category{Name: "Korean"}
	if err := db.Create(&fx.Category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	fx.CourseA = models.Course{CategoryID: fx.Category.ID, Name: "Korean Basic", Price: 50000, Image: "korean-basic.png"}
	fx.CourseB = models.Course{CategoryID: fx.Category.ID, Name: "Korean Intermediate", Price: 75000}
	if err := db.Create(&fx.CourseA).Error; err != nil {
		t.Fatalf("create course A failed: %v", err)
	}
	if err := db.Create(&fx.CourseB).Error; err != nil {
		t.Fatalf("create course B failed: %v", err)
	}
	date, err := models.ParseScheduleDate("2025-03-10")
	if err != nil {
		t.Fatalf("parse schedule date failed: %v", err)
	}
	fx.Schedule = models.Schedule{ScheduleDate: date}
	if err := db.Create(&fx.Schedule).Error; err != nil {
		t.Fatalf("create schedule failed: %v", err)
	}
	fx.OfferingA = models.ScheduleCourse{CourseID: fx.CourseA.ID, ScheduleID: fx.Schedule.ID}
	fx.OfferingB = models.ScheduleCourse{CourseID: fx.CourseB.ID, ScheduleID: fx.Schedule.ID}
	if err := db.Create(&fx.OfferingA).Error; err != nil {
		t.Fatalf("create offering A failed: %v", err)
	}
	if err := db.Create(&fx.OfferingB).Error; err != nil {
		t.Fatalf("create offering B failed: %v", err)
	}
	fx.PaymentMethod = models.PaymentMethod{Name: "Bank Transfer", IsActive: true}
	if err := db.Create(&fx.PaymentMethod).Error; err != nil {
		t.Fatalf("create payment method failed: %v", err)
	}
	return fx
}
