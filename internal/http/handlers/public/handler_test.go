package public

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dlanguage-api/internal/config"
	"github.com/dlanguage-api/internal/constants"
	handlershared "github.com/dlanguage-api/internal/http/handlers/shared"
	"github.com/dlanguage-api/internal/identity"
	"github.com/dlanguage-api/internal/models"
	"github.com/dlanguage-api/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type publicFixture struct {
	User      models.User
	Other     models.User
	CourseA   models.Course
	CourseB   models.Course
	OfferingA models.ScheduleCourse
	OfferingB models.ScheduleCourse
	Method    models.PaymentMethod
	Inactive  models.PaymentMethod
}

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Errors     []string        `json:"errors"`
	StatusCode int             `json:"statusCode"`
}

func setupPublicHandlerTest(t *testing.T) (*gorm.DB, *provider.Container, publicFixture) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if err := handlershared.RegisterValidators(); err != nil {
		t.Fatalf("register validators failed: %v", err)
	}

	dsn := fmt.Sprintf("file:public_handler_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	previous := models.DB
	models.DB = db
	t.Cleanup(func() { models.DB = previous })

	cfg := &config.Config{
		Invoice: config.InvoiceConfig{NumberPrefix: "DLA", NumberMaxRetries: 3},
		UserJWT: config.JWTConfig{SecretKey: "public-handler-secret", ExpireHours: 1},
	}
	container := provider.NewContainer(cfg)

	var fx publicFixture
	now := time.Now()
	fx.User = models.User{Username: "sari", Email: "sari@example.com", PasswordHash: "x", Role: constants.UserRoleMember, Status: constants.UserStatusActive, EmailVerifiedAt: &now}
	fx.Other = models.User{Username: "dimas", Email: "dimas@example.com", PasswordHash: "x", Role: constants.UserRoleMember, Status: constants.UserStatusActive, EmailVerifiedAt: &now}
	category := models.Category{Name: "Japanese"}
	mustCreate(t, db, &fx.User)
	mustCreate(t, db, &fx.Other)
	mustCreate(t, db, &category)
	fx.CourseA = models.Course{CategoryID: category.ID, Name: "Japanese N5", Price: 60000}
	fx.CourseB = models.Course{CategoryID: category.ID, Name: "Japanese N4", Price: 80000}
	mustCreate(t, db, &fx.CourseA)
	mustCreate(t, db, &fx.CourseB)
	date, err := models.ParseScheduleDate("2025-03-17")
	if err != nil {
		t.Fatalf("parse schedule date failed: %v", err)
	}
	schedule := models.Schedule{ScheduleDate: date}
	mustCreate(t, db, &schedule)
	fx.OfferingA = models.ScheduleCourse{CourseID: fx.CourseA.ID, ScheduleID: schedule.ID}
	fx.OfferingB = models.ScheduleCourse{CourseID: fx.CourseB.ID, ScheduleID: schedule.ID}
	mustCreate(t, db, &fx.OfferingA)
	mustCreate(t, db, &fx.OfferingB)
	fx.Method = models.PaymentMethod{Name: "GoPay", IsActive: true}
	fx.Inactive = models.PaymentMethod{Name: "OVO", IsActive: false}
	mustCreate(t, db, &fx.Method)
	mustCreate(t, db, &fx.Inactive)
	return db, container, fx
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("create %T failed: %v", value, err)
	}
}

// newPublicRouter 以固定身份挂载处理器，userID 为 0 时模拟未登录
func newPublicRouter(container *provider.Container, userID uint) *gin.Engine {
	scoped := *container
	scoped.Identity = identity.Fixed{Identity: identity.Identity{UserID: userID, Role: constants.UserRoleMember}}
	h := New(&scoped)
	r := gin.New()
	r.GET("/categories/:id", h.GetCategory)
	r.GET("/courses/:id", h.GetCourse)
	r.GET("/payment-methods", h.GetPaymentMethods)
	r.GET("/cart", h.GetCart)
	r.POST("/cart", h.AddCartLine)
	r.DELETE("/cart/:id", h.RemoveCartLine)
	r.POST("/checkout/settle", h.Settle)
	r.GET("/invoices", h.ListInvoices)
	r.GET("/invoices/:id", h.GetInvoice)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", "en-US")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response failed: %v body=%s", err, w.Body.String())
	}
	if env.StatusCode != w.Code {
		t.Fatalf("statusCode %d does not match http status %d", env.StatusCode, w.Code)
	}
	return w, env
}

func addToCart(t *testing.T, r http.Handler, offeringID uint) uint {
	t.Helper()
	w, env := doJSON(t, r, http.MethodPost, "/cart", gin.H{"offering_id": offeringID})
	if w.Code != http.StatusCreated {
		t.Fatalf("add to cart want 201 got %d: %s", w.Code, w.Body.String())
	}
	var line struct {
		ID uint `json:"cart_line_id"`
	}
	if err := json.Unmarshal(env.Data, &line); err != nil || line.ID == 0 {
		t.Fatalf("decode cart line failed: %v data=%s", err, env.Data)
	}
	return line.ID
}

func TestCartAddDuplicateAndTotal(t *testing.T) {
	_, container, fx := setupPublicHandlerTest(t)
	r := newPublicRouter(container, fx.User.ID)

	addToCart(t, r, fx.OfferingA.ID)
	addToCart(t, r, fx.OfferingB.ID)

	w, env := doJSON(t, r, http.MethodPost, "/cart", gin.H{"offering_id": fx.OfferingA.ID})
	if w.Code != http.StatusConflict || env.Success {
		t.Fatalf("duplicate add want 409 got %d: %s", w.Code, w.Body.String())
	}

	w, env = doJSON(t, r, http.MethodPost, "/cart", gin.H{"offering_id": 9999})
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown offering want 404 got %d", w.Code)
	}

	w, env = doJSON(t, r, http.MethodGet, "/cart", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get cart want 200 got %d", w.Code)
	}
	var view struct {
		Items []struct {
			CourseName   string `json:"course_name"`
			ScheduleDate string `json:"schedule_date"`
		} `json:"items"`
		TotalPrice int64 `json:"total_price"`
	}
	if err := json.Unmarshal(env.Data, &view); err != nil {
		t.Fatalf("decode cart view failed: %v", err)
	}
	if len(view.Items) != 2 || view.TotalPrice != 140000 {
		t.Fatalf("unexpected cart view: %+v", view)
	}
	if view.Items[0].ScheduleDate != "2025-03-17" {
		t.Fatalf("schedule date should be displayed, got %+v", view.Items[0])
	}
}

func TestRemoveCartLineOfAnotherUser(t *testing.T) {
	_, container, fx := setupPublicHandlerTest(t)
	owner := newPublicRouter(container, fx.User.ID)
	lineID := addToCart(t, owner, fx.OfferingA.ID)

	intruder := newPublicRouter(container, fx.Other.ID)
	w, _ := doJSON(t, intruder, http.MethodDelete, fmt.Sprintf("/cart/%d", lineID), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("removing another user's line want 404 got %d", w.Code)
	}

	w, _ = doJSON(t, owner, http.MethodDelete, fmt.Sprintf("/cart/%d", lineID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("remove own line want 200 got %d", w.Code)
	}
}

func TestSettleCreatesPaidInvoiceAndClearsLines(t *testing.T) {
	db, container, fx := setupPublicHandlerTest(t)
	r := newPublicRouter(container, fx.User.ID)
	lineA := addToCart(t, r, fx.OfferingA.ID)
	lineB := addToCart(t, r, fx.OfferingB.ID)

	w, env := doJSON(t, r, http.MethodPost, "/checkout/settle", gin.H{
		"payment_method_id": fx.Method.ID,
		"cart_line_ids":     []uint{lineA},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("settle want 201 got %d: %s", w.Code, w.Body.String())
	}
	var invoice struct {
		ID            uint   `json:"invoice_id"`
		InvoiceNumber string `json:"invoice_number"`
		TotalPrice    int64  `json:"total_price"`
		IsPaid        bool   `json:"is_paid"`
		Details       []struct {
			CourseID      uint  `json:"course_id"`
			SubTotalPrice int64 `json:"sub_total_price"`
		} `json:"details"`
	}
	if err := json.Unmarshal(env.Data, &invoice); err != nil {
		t.Fatalf("decode invoice failed: %v", err)
	}
	if invoice.InvoiceNumber != "DLA00001" || !invoice.IsPaid || invoice.TotalPrice != 60000 {
		t.Fatalf("unexpected invoice: %+v", invoice)
	}
	if len(invoice.Details) != 1 || invoice.Details[0].CourseID != fx.CourseA.ID {
		t.Fatalf("unexpected invoice details: %+v", invoice.Details)
	}

	var remaining []models.CartLine
	if err := db.Where("user_id = ?", fx.User.ID).Find(&remaining).Error; err != nil {
		t.Fatalf("load remaining cart failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != lineB {
		t.Fatalf("only the unselected line should remain, got %+v", remaining)
	}

	w, _ = doJSON(t, r, http.MethodPost, "/checkout/settle", gin.H{
		"payment_method_id": fx.Method.ID,
		"cart_line_ids":     []uint{lineB},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("second settle want 201 got %d", w.Code)
	}

	w, env = doJSON(t, r, http.MethodGet, "/invoices", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list invoices want 200 got %d", w.Code)
	}
	var list []struct {
		InvoiceNumber string `json:"invoice_number"`
	}
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatalf("decode invoice list failed: %v", err)
	}
	if len(list) != 2 || list[0].InvoiceNumber != "DLA00002" {
		t.Fatalf("invoices should be newest first: %+v", list)
	}

	other := newPublicRouter(container, fx.Other.ID)
	w, _ = doJSON(t, other, http.MethodGet, fmt.Sprintf("/invoices/%d", invoice.ID), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("another user's invoice want 404 got %d", w.Code)
	}
}

func TestSettleRejectsInvalidSelections(t *testing.T) {
	_, container, fx := setupPublicHandlerTest(t)
	r := newPublicRouter(container, fx.User.ID)
	lineA := addToCart(t, r, fx.OfferingA.ID)

	cases := []struct {
		name string
		body gin.H
		want int
	}{
		{name: "duplicate ids", body: gin.H{"payment_method_id": fx.Method.ID, "cart_line_ids": []uint{lineA, lineA}}, want: http.StatusBadRequest},
		{name: "empty selection", body: gin.H{"payment_method_id": fx.Method.ID, "cart_line_ids": []uint{}}, want: http.StatusBadRequest},
		{name: "unknown payment method", body: gin.H{"payment_method_id": 9999, "cart_line_ids": []uint{lineA}}, want: http.StatusBadRequest},
		{name: "inactive payment method", body: gin.H{"payment_method_id": fx.Inactive.ID, "cart_line_ids": []uint{lineA}}, want: http.StatusBadRequest},
		{name: "no matching lines", body: gin.H{"payment_method_id": fx.Method.ID, "cart_line_ids": []uint{lineA + 100}}, want: http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, env := doJSON(t, r, http.MethodPost, "/checkout/settle", tc.body)
			if w.Code != tc.want || env.Success {
				t.Fatalf("want %d got %d: %s", tc.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	_, container, _ := setupPublicHandlerTest(t)
	r := newPublicRouter(container, 0)

	for _, path := range []string{"/cart", "/invoices"} {
		w, env := doJSON(t, r, http.MethodGet, path, nil)
		if w.Code != http.StatusUnauthorized || env.Success {
			t.Fatalf("%s want 401 got %d", path, w.Code)
		}
	}
}

func TestCatalogReads(t *testing.T) {
	_, container, fx := setupPublicHandlerTest(t)
	r := newPublicRouter(container, 0)

	w, _ := doJSON(t, r, http.MethodGet, "/courses/9999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown course want 404 got %d", w.Code)
	}
	w, _ = doJSON(t, r, http.MethodGet, "/categories/abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid id want 400 got %d", w.Code)
	}
	w, _ = doJSON(t, r, http.MethodGet, fmt.Sprintf("/courses/%d", fx.CourseA.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("course detail want 200 got %d", w.Code)
	}

	w, env := doJSON(t, r, http.MethodGet, "/payment-methods", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("payment methods want 200 got %d", w.Code)
	}
	var methods []struct {
		Name string `json:"payment_method_name"`
	}
	if err := json.Unmarshal(env.Data, &methods); err != nil {
		t.Fatalf("decode payment methods failed: %v", err)
	}
	if len(methods) != 1 || methods[0].Name != "GoPay" {
		t.Fatalf("only active payment methods should be listed: %+v", methods)
	}
}
