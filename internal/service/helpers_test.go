package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/dlanguage-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type serviceFixture struct {
	Category      models.Category
	CourseA       models.Course
	CourseB       models.Course
	CourseC       models.Course
	Schedule      models.Schedule
	OfferingA     models.ScheduleCourse
	OfferingB     models.ScheduleCourse
	OfferingC     models.ScheduleCourse
	PaymentMethod models.PaymentMethod
	Inactive      models.PaymentMethod
}

func setupServiceTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	previous := models.DB
	models.DB = db
	t.Cleanup(func() {
		models.DB = previous
	})
	return db
}

func seedServiceFixture(t *testing.T, db *gorm.DB) serviceFixture {
	t.Helper()
	var fx serviceFixture

	fx.Category = models.Category{Name: "Korean"}
	mustCreate(t, db, &fx.Category)
	fx.CourseA = models.Course{CategoryID: fx.Category.ID, Name: "Korean Basic", Price: 50000}
	fx.CourseB = models.Course{CategoryID: fx.Category.ID, Name: "Korean Intermediate", Price: 75000}
	fx.CourseC = models.Course{CategoryID: fx.Category.ID, Name: "Korean Advanced", Price: 90000}
	mustCreate(t, db, &fx.CourseA)
	mustCreate(t, db, &fx.CourseB)
	mustCreate(t, db, &fx.CourseC)

	date, err := models.ParseScheduleDate("2025-03-10")
	if err != nil {
		t.Fatalf("parse schedule date failed: %v", err)
	}
	fx.Schedule = models.Schedule{ScheduleDate: date}
	mustCreate(t, db, &fx.Schedule)

	fx.OfferingA = models.ScheduleCourse{CourseID: fx.CourseA.ID, ScheduleID: fx.Schedule.ID}
	fx.OfferingB = models.ScheduleCourse{CourseID: fx.CourseB.ID, ScheduleID: fx.Schedule.ID}
	fx.OfferingC = models.ScheduleCourse{CourseID: fx.CourseC.ID, ScheduleID: fx.Schedule.ID}
	mustCreate(t, db, &fx.OfferingA)
	mustCreate(t, db, &fx.OfferingB)
	mustCreate(t, db, &fx.OfferingC)

	fx.PaymentMethod = models.PaymentMethod{Name: "Bank Transfer", IsActive: true}
	mustCreate(t, db, &fx.PaymentMethod)
	fx.Inactive = models.PaymentMethod{Name: "Legacy Wallet", IsActive: true}
	mustCreate(t, db, &fx.Inactive)
	if err := db.Model(&fx.Inactive).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate payment method failed: %v", err)
	}
	fx.Inactive.IsActive = false
	return fx
}

func seedCartLine(t *testing.T, db *gorm.DB, userID uint, offering models.ScheduleCourse, price models.Amount) models.CartLine {
	t.Helper()
	line := models.CartLine{
		UserID:     userID,
		OfferingID: offering.ID,
		CourseID:   offering.CourseID,
		UnitPrice:  price,
	}
	mustCreate(t, db, &line)
	return line
}

func seedUser(t *testing.T, db *gorm.DB, username, email string) models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: "hash",
		Role:         "member",
		Status:       "active",
	}
	mustCreate(t, db, &user)
	return user
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("create %T failed: %v", value, err)
	}
}
