package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bridal-studio-backend/models"
	"bridal-studio-backend/utils"
)

type fakePusher struct {
	sent []PushMessage
	fail bool
}

func (p *fakePusher) Send(_ context.Context, msg PushMessage) (string, error) {
	if p.fail {
		return "", errors.New("push transport unavailable")
	}
	p.sent = append(p.sent, msg)
	return "msg-123", nil
}

func newTestDispatcher(db *gorm.DB, pusher Pusher) *ReminderService {
	return &ReminderService{db: db, pusher: pusher}
}

func addBookingForTomorrow(t *testing.T, db *gorm.DB, name string, advance string) {
	t.Helper()
	booking := models.Booking{
		Name:    name,
		Service: "Bridal Makeup",
		Time:    "11:00",
		Date:    utils.TomorrowDate(time.Now()),
	}
	if advance != "" {
		booking.AdvancePaid = true
		booking.AdvanceAmount = advance
	}
	require.NoError(t, db.Create(&booking).Error)
}

func saveManagerToken(t *testing.T, db *gorm.DB, token string, active bool) {
	t.Helper()
	require.NoError(t, db.Create(&models.DeviceToken{
		Name:      models.ManagerTokenName,
		Token:     token,
		Active:    active,
		UpdatedAt: time.Now(),
	}).Error)
}

func auditRows(t *testing.T, db *gorm.DB) []models.NotificationLog {
	t.Helper()
	var logs []models.NotificationLog
	require.NoError(t, db.Find(&logs).Error)
	return logs
}

func TestDispatcherNoBookingsIsSuccessfulNoop(t *testing.T) {
	db := newTestDB(t, "reminder_none")
	pusher := &fakePusher{}
	s := newTestDispatcher(db, pusher)

	result := s.SendBookingReminders(context.Background())

	assert.True(t, result.Success)
	assert.Equal(t, "No bookings for tomorrow", result.Message)
	assert.Empty(t, pusher.sent)

	logs := auditRows(t, db)
	require.Len(t, logs, 1)
	assert.Equal(t, "no_bookings", logs[0].Outcome)
	assert.True(t, logs[0].Success)
}

func TestDispatcherNoTokenIsSuccessfulNoop(t *testing.T) {
	db := newTestDB(t, "reminder_no_token")
	addBookingForTomorrow(t, db, "Asha", "")
	pusher := &fakePusher{}
	s := newTestDispatcher(db, pusher)

	result := s.SendBookingReminders(context.Background())

	assert.True(t, result.Success)
	assert.Equal(t, "No FCM token found", result.Message)
	assert.Empty(t, pusher.sent)

	logs := auditRows(t, db)
	require.Len(t, logs, 1)
	assert.Equal(t, "no_token", logs[0].Outcome)
}

func TestDispatcherInactiveTokenIsSuccessfulNoop(t *testing.T) {
	db := newTestDB(t, "reminder_inactive")
	addBookingForTomorrow(t, db, "Asha", "")
	saveManagerToken(t, db, "tok", false)
	pusher := &fakePusher{}
	s := newTestDispatcher(db, pusher)

	result := s.SendBookingReminders(context.Background())

	assert.True(t, result.Success)
	assert.Equal(t, "FCM token inactive", result.Message)
	assert.Empty(t, pusher.sent)
}

func TestDispatcherSendsSummaryPush(t *testing.T) {
	db := newTestDB(t, "reminder_send")
	addBookingForTomorrow(t, db, "Asha", "1500")
	addBookingForTomorrow(t, db, "Meera", "")
	saveManagerToken(t, db, "manager-token", true)
	pusher := &fakePusher{}
	s := newTestDispatcher(db, pusher)

	result := s.SendBookingReminders(context.Background())

	require.True(t, result.Success)
	assert.Equal(t, 2, result.BookingCount)
	assert.Equal(t, 1, result.AdvanceCount)
	assert.Equal(t, 1500.0, result.AdvanceTotal)
	assert.Equal(t, "msg-123", result.MessageID)

	require.Len(t, pusher.sent, 1)
	msg := pusher.sent[0]
	assert.Equal(t, "manager-token", msg.Token)
	assert.Contains(t, msg.Title, "(2)")
	assert.Contains(t, msg.Body, "2 appointments")
	assert.Contains(t, msg.Body, "1 customer paid advance")
	assert.Equal(t, utils.TomorrowDate(time.Now()), msg.Data["date"])
	assert.Equal(t, "2", msg.Data["count"])
	assert.Equal(t, "/manage-bookings", msg.Data["click_action"])

	logs := auditRows(t, db)
	require.Len(t, logs, 1)
	assert.Equal(t, "sent", logs[0].Outcome)
	assert.True(t, logs[0].Success)
	assert.Equal(t, "msg-123", logs[0].MessageID)
	assert.Equal(t, 2, logs[0].BookingCount)
}

func TestDispatcherLogsPushFailure(t *testing.T) {
	db := newTestDB(t, "reminder_fail")
	addBookingForTomorrow(t, db, "Asha", "")
	saveManagerToken(t, db, "manager-token", true)
	pusher := &fakePusher{fail: true}
	s := newTestDispatcher(db, pusher)

	result := s.SendBookingReminders(context.Background())

	assert.False(t, result.Success)
	assert.Equal(t, "push transport unavailable", result.Err)

	logs := auditRows(t, db)
	require.Len(t, logs, 1)
	assert.Equal(t, "push_failed", logs[0].Outcome)
	assert.False(t, logs[0].Success)
	assert.Equal(t, "push transport unavailable", logs[0].ErrorMessage)
}
