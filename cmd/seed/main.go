package main

import (
	"errors"
	"flag"
	"os"

	"github.com/dlanguage-api/internal/config"
	"github.com/dlanguage-api/internal/logger"
	"github.com/dlanguage-api/internal/models"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type courseSeed struct {
	Category    string
	Name        string
	Price       string
	Image       string
	Description string
}

var categorySeeds = []models.Category{
	{Name: "Korean", Description: "Kursus bahasa Korea dari dasar hingga TOPIK", Image: "korean.png"},
	{Name: "Japanese", Description: "Kursus bahasa Jepang persiapan JLPT", Image: "japanese.png"},
	{Name: "English", Description: "Kursus bahasa Inggris umum dan bisnis", Image: "english.png"},
}

var courseSeeds = []courseSeed{
	{Category: "Korean", Name: "Korean Basic", Price: "350000", Image: "korean-basic.png", Description: "Hangeul, perkenalan, dan percakapan sehari-hari"},
	{Category: "Korean", Name: "Korean Intermediate", Price: "450000", Image: "korean-intermediate.png", Description: "Tata bahasa menengah dan latihan TOPIK I"},
	{Category: "Japanese", Name: "Japanese N5", Price: "400000", Image: "japanese-n5.png", Description: "Hiragana, katakana, dan kanji dasar"},
	{Category: "Japanese", Name: "Japanese N4", Price: "500000", Image: "japanese-n4.png", Description: "Persiapan JLPT N4"},
	{Category: "English", Name: "English Conversation", Price: "300000", Image: "english-conversation.png", Description: "Latihan berbicara untuk situasi sehari-hari"},
	{Category: "English", Name: "Business English", Price: "550000.00", Image: "business-english.png", Description: "Email, presentasi, dan rapat"},
}

var scheduleSeeds = []string{"2025-03-10", "2025-03-17", "2025-04-07"}

var paymentMethodSeeds = []models.PaymentMethod{
	{Name: "Bank Transfer", Logo: "bank-transfer.png", IsActive: true},
	{Name: "GoPay", Logo: "gopay.png", IsActive: true},
	{Name: "OVO", Logo: "ovo.png", IsActive: false},
}

func main() {
	var envFile string
	flag.StringVar(&envFile, "env", ".env", "环境变量文件，不存在时忽略")
	flag.Parse()
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		logger.Warnw("seed_env_load_failed", "file", envFile, "error", err)
	}

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	if err := models.DB.Transaction(seedCatalog); err != nil {
		stdLog.Fatalf("Failed to seed catalog: %v", err)
	}
	if err := models.InitDefaultAdmin(cfg.Admin.DefaultEmail, cfg.Admin.DefaultUsername, cfg.Admin.DefaultPassword); err != nil {
		logger.Warnw("seed_default_admin_failed", "error", err)
	}
	logger.Infow("seed_done")
}

func seedCatalog(tx *gorm.DB) error {
	categoryIDs := make(map[string]uint, len(categorySeeds))
	for _, seed := range categorySeeds {
		category := seed
		if err := tx.Where("name = ?", category.Name).FirstOrCreate(&category).Error; err != nil {
			return err
		}
		categoryIDs[category.Name] = category.ID
		logger.Infow("seed_category_ready", "category_id", category.ID, "name", category.Name)
	}

	courseIDs := make([]uint, 0, len(courseSeeds))
	for _, seed := range courseSeeds {
		categoryID, ok := categoryIDs[seed.Category]
		if !ok {
			return errors.New("unknown category " + seed.Category)
		}
		price, err := models.NewAmountFromDecimal(decimal.RequireFromString(seed.Price))
		if err != nil {
			return err
		}
		course := models.Course{
			CategoryID:  categoryID,
			Name:        seed.Name,
			Price:       price,
			Image:       seed.Image,
			Description: seed.Description,
		}
		if err := tx.Where("category_id = ? AND name = ?", categoryID, seed.Name).FirstOrCreate(&course).Error; err != nil {
			return err
		}
		courseIDs = append(courseIDs, course.ID)
		logger.Infow("seed_course_ready", "course_id", course.ID, "name", course.Name, "price", course.Price.String())
	}

	for _, raw := range scheduleSeeds {
		date, err := models.ParseScheduleDate(raw)
		if err != nil {
			return err
		}
		schedule := models.Schedule{ScheduleDate: date}
		if err := tx.Where("schedule_date = ?", date).FirstOrCreate(&schedule).Error; err != nil {
			return err
		}
		for _, courseID := range courseIDs {
			offering := models.ScheduleCourse{CourseID: courseID, ScheduleID: schedule.ID}
			if err := tx.Where("course_id = ? AND schedule_id = ?", courseID, schedule.ID).FirstOrCreate(&offering).Error; err != nil {
				return err
			}
		}
		logger.Infow("seed_schedule_ready", "schedule_id", schedule.ID, "date", raw, "offerings", len(courseIDs))
	}

	for _, seed := range paymentMethodSeeds {
		method := seed
		if err := tx.Where("name = ?", method.Name).FirstOrCreate(&method).Error; err != nil {
			return err
		}
		logger.Infow("seed_payment_method_ready", "payment_method_id", method.ID, "name", method.Name, "active", method.IsActive)
	}
	return nil
}
