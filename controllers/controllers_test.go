package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bridal-studio-backend/config"
	"bridal-studio-backend/models"
	"bridal-studio-backend/services"
)

type fakeMirror struct {
	sheets     map[string][][]interface{}
	failAppend bool
}

func newFakeMirror() *fakeMirror {
	return &fakeMirror{sheets: map[string][][]interface{}{}}
}

func (m *fakeMirror) AppendRow(_ context.Context, sheet string, row []interface{}) (int, error) {
	if m.failAppend {
		return 0, errors.New("append refused")
	}
	m.sheets[sheet] = append(m.sheets[sheet], row)
	return len(m.sheets[sheet]) - 1, nil
}

func (m *fakeMirror) UpdateRow(_ context.Context, sheet string, rowIndex int, row []interface{}) error {
	rows := m.sheets[sheet]
	if rowIndex < 0 || rowIndex >= len(rows) {
		return nil
	}
	for i, v := range row {
		pos := 2 + i
		for len(rows[rowIndex]) <= pos {
			rows[rowIndex] = append(rows[rowIndex], nil)
		}
		rows[rowIndex][pos] = v
	}
	return nil
}

func (m *fakeMirror) DeleteRow(_ context.Context, sheet string, rowIndex int) error {
	rows := m.sheets[sheet]
	if rowIndex < 0 || rowIndex >= len(rows) {
		return nil
	}
	m.sheets[sheet] = append(rows[:rowIndex], rows[rowIndex+1:]...)
	return nil
}

func setupTest(t *testing.T, name string) (*gin.Engine, *gorm.DB, *fakeMirror) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Customer{},
		&models.Booking{},
		&models.DeviceToken{},
		&models.NotificationLog{},
	))

	config.DB = db
	config.App = &config.Config{CronSecret: "cron-secret"}

	mirror := newFakeMirror()
	Setup(
		services.NewSyncBridge(db, mirror),
		services.NewReminderService(db, nil, config.App),
	)

	// Session middleware is exercised separately; handlers mount bare here.
	r := gin.New()
	r.POST("/api/add-customer", AddCustomer)
	r.GET("/api/customers", GetCustomers)
	r.POST("/api/update-customer", UpdateCustomer)
	r.DELETE("/api/update-customer", DeleteCustomer)
	r.POST("/api/add-booking", AddBooking)
	r.GET("/api/bookings", GetBookings)
	r.PATCH("/api/bookings", UpdateBooking)
	r.DELETE("/api/bookings", DeleteBooking)
	r.GET("/api/analytics", GetAnalytics)
	r.GET("/api/cron/booking-reminders", TriggerBookingReminders)
	r.POST("/api/save-fcm-token", SaveFCMToken)
	return r, db, mirror
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAddCustomerEndpoint(t *testing.T) {
	r, db, mirror := setupTest(t, "ctl_add_customer")

	w := doJSON(t, r, http.MethodPost, "/api/add-customer", map[string]interface{}{
		"name":        "Asha",
		"services":    []string{"Haircut"},
		"amount":      500, // clients send numbers or strings
		"paymentMode": "cash",
	})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, true, resp["success"])

	var stored models.Customer
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, "500", stored.Amount)
	assert.Equal(t, "system", stored.CreatedBy)

	rows := mirror.sheets[""]
	require.Len(t, rows, 1)
	assert.Equal(t, "Asha", rows[0][2])
	assert.Equal(t, "N/A", rows[0][3])
}

func TestAddCustomerRejectsMissingServices(t *testing.T) {
	r, db, _ := setupTest(t, "ctl_add_invalid")

	w := doJSON(t, r, http.MethodPost, "/api/add-customer", map[string]interface{}{
		"name":        "Asha",
		"amount":      "500",
		"paymentMode": "cash",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, false, resp["success"])

	var count int64
	db.Model(&models.Customer{}).Count(&count)
	assert.Zero(t, count)
}

func TestAddCustomerMirrorFailureReportsPartialSuccess(t *testing.T) {
	r, db, mirror := setupTest(t, "ctl_add_partial")
	mirror.failAppend = true

	w := doJSON(t, r, http.MethodPost, "/api/add-customer", map[string]interface{}{
		"name":        "Asha",
		"services":    []string{"Haircut"},
		"amount":      "500",
		"paymentMode": "cash",
	})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, true, resp["savedToDatabase"])
	assert.Contains(t, resp["error"], "sheets:")

	var count int64
	db.Model(&models.Customer{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestUpdateCustomerEndpointResolvesStoredRowIndex(t *testing.T) {
	r, db, mirror := setupTest(t, "ctl_update_customer")

	doJSON(t, r, http.MethodPost, "/api/add-customer", map[string]interface{}{
		"name":        "Asha",
		"services":    []string{"Haircut"},
		"amount":      "500",
		"paymentMode": "cash",
	})

	var stored models.Customer
	require.NoError(t, db.First(&stored).Error)

	w := doJSON(t, r, http.MethodPost, "/api/update-customer", map[string]interface{}{
		"customerId": stored.ID.String(),
		"customerData": map[string]interface{}{
			"name": "Asha K",
		},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Asha K", mirror.sheets[""][0][2])
}

func TestDeleteCustomerEndpoint(t *testing.T) {
	r, db, mirror := setupTest(t, "ctl_delete_customer")

	doJSON(t, r, http.MethodPost, "/api/add-customer", map[string]interface{}{
		"name":        "Asha",
		"services":    []string{"Haircut"},
		"amount":      "500",
		"paymentMode": "cash",
	})

	var stored models.Customer
	require.NoError(t, db.First(&stored).Error)

	w := doJSON(t, r, http.MethodDelete, "/api/update-customer", map[string]interface{}{
		"customerId": stored.ID.String(),
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, mirror.sheets[""])

	err := db.First(&models.Customer{}, "id = ?", stored.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBookingEndpoints(t *testing.T) {
	r, db, _ := setupTest(t, "ctl_bookings")

	w := doJSON(t, r, http.MethodPost, "/api/add-booking", map[string]interface{}{
		"name":    "Asha",
		"service": "Bridal Makeup",
		"date":    "2026-09-10",
		"time":    "11:00",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var booking models.Booking
	require.NoError(t, db.First(&booking).Error)

	w = doJSON(t, r, http.MethodPatch, "/api/bookings", map[string]interface{}{
		"id":   booking.ID.String(),
		"data": map[string]interface{}{"time": "12:30"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/bookings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	bookings, ok := resp["bookings"].([]interface{})
	require.True(t, ok)
	require.Len(t, bookings, 1)

	w = doJSON(t, r, http.MethodDelete, "/api/bookings", map[string]interface{}{
		"id": booking.ID.String(),
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/bookings", map[string]interface{}{
		"id": booking.ID.String(),
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCronEndpointRejectsWrongBearerToken(t *testing.T) {
	r, db, _ := setupTest(t, "ctl_cron_auth")

	req := httptest.NewRequest(http.MethodGet, "/api/cron/booking-reminders", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Nothing ran: no audit entry was written.
	var count int64
	db.Model(&models.NotificationLog{}).Count(&count)
	assert.Zero(t, count)
}

func TestCronEndpointNoBookingsTomorrow(t *testing.T) {
	r, _, _ := setupTest(t, "ctl_cron_empty")

	req := httptest.NewRequest(http.MethodGet, "/api/cron/booking-reminders", nil)
	req.Header.Set("Authorization", "Bearer cron-secret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "No bookings for tomorrow", resp["message"])
}

func TestSaveFCMTokenUpserts(t *testing.T) {
	r, db, _ := setupTest(t, "ctl_token")

	w := doJSON(t, r, http.MethodPost, "/api/save-fcm-token", map[string]interface{}{"token": "first"})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/save-fcm-token", map[string]interface{}{"token": "second"})
	require.Equal(t, http.StatusOK, w.Code)

	var tokens []models.DeviceToken
	require.NoError(t, db.Find(&tokens).Error)
	require.Len(t, tokens, 1)
	assert.Equal(t, models.ManagerTokenName, tokens[0].Name)
	assert.Equal(t, "second", tokens[0].Token)
	assert.True(t, tokens[0].Active)

	w = doJSON(t, r, http.MethodPost, "/api/save-fcm-token", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyticsZeroesUnparseableAmounts(t *testing.T) {
	r, db, _ := setupTest(t, "ctl_analytics")

	require.NoError(t, db.Create(&models.Customer{
		Name: "Asha", Services: models.StringList{"Haircut"},
		Amount: "500", PaymentMode: "cash",
	}).Error)
	// A corrupt amount must count as zero, not break the report.
	require.NoError(t, db.Create(&models.Customer{
		Name: "Meera", Services: models.StringList{"Facial"},
		Amount: "five hundred", PaymentMode: "upi",
	}).Error)

	w := doJSON(t, r, http.MethodGet, "/api/analytics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	analytics, ok := resp["analytics"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 2, analytics["totalVisits"])
	assert.EqualValues(t, 500, analytics["totalRevenue"])
}
