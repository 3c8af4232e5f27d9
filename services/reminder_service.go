// services/reminder_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"

	"bridal-studio-backend/config"
	"bridal-studio-backend/models"
	"bridal-studio-backend/utils"
)

// ReminderService is the notification dispatcher: once per invocation it
// finds tomorrow's bookings, pushes one summary to the manager device, and
// optionally texts each booked customer. Every invocation writes a
// NotificationLog row. Overlapping runs are not guarded against; duplicate
// reminders are possible if the scheduler fires twice for the same period.
type ReminderService struct {
	db     *gorm.DB
	pusher Pusher

	smsClient  *twilio.RestClient
	smsFrom    string
	smsEnabled bool
}

func NewReminderService(db *gorm.DB, pusher Pusher, cfg *config.Config) *ReminderService {
	return &ReminderService{
		db:     db,
		pusher: pusher,
		smsClient: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.Twilio.AccountSID,
			Password: cfg.Twilio.AuthToken,
		}),
		smsFrom:    cfg.Twilio.FromNumber,
		smsEnabled: cfg.SMSRemindersEnabled,
	}
}

func (s *ReminderService) StartScheduler(schedule string) {
	if schedule == "" {
		schedule = "0 9 * * *"
	}
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		s.SendBookingReminders(context.Background())
	}); err != nil {
		log.Printf("Failed to schedule booking reminders: %v", err)
		return
	}
	c.Start()
	log.Println("Reminder scheduler started")
}

// DispatchResult reports one dispatcher invocation to callers.
type DispatchResult struct {
	Success      bool    `json:"success"`
	Message      string  `json:"message,omitempty"`
	Date         string  `json:"date"`
	BookingCount int     `json:"bookingCount,omitempty"`
	AdvanceCount int     `json:"advanceCount,omitempty"`
	AdvanceTotal float64 `json:"advanceTotal,omitempty"`
	MessageID    string  `json:"messageId,omitempty"`
	Err          string  `json:"error,omitempty"`
}

func (s *ReminderService) SendBookingReminders(ctx context.Context) DispatchResult {
	date := utils.TomorrowDate(time.Now())
	log.Println("Starting booking reminder job for", date)

	var bookings []models.Booking
	if err := s.db.WithContext(ctx).Where("date = ?", date).Find(&bookings).Error; err != nil {
		log.Printf("Failed to fetch bookings for %s: %v", date, err)
		s.logOutcome(date, "store_failed", 0, 0, 0, "", err)
		return DispatchResult{Success: false, Date: date, Err: err.Error()}
	}

	if len(bookings) == 0 {
		log.Println("No bookings found for tomorrow")
		s.logOutcome(date, "no_bookings", 0, 0, 0, "", nil)
		return DispatchResult{Success: true, Date: date, Message: "No bookings for tomorrow"}
	}

	var token models.DeviceToken
	if err := s.db.WithContext(ctx).First(&token, "name = ?", models.ManagerTokenName).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Println("No device token found for manager")
			s.logOutcome(date, "no_token", len(bookings), 0, 0, "", nil)
			return DispatchResult{Success: true, Date: date, Message: "No FCM token found"}
		}
		s.logOutcome(date, "store_failed", len(bookings), 0, 0, "", err)
		return DispatchResult{Success: false, Date: date, Err: err.Error()}
	}
	if !token.Active || token.Token == "" {
		log.Println("Device token is inactive or missing")
		s.logOutcome(date, "token_inactive", len(bookings), 0, 0, "", nil)
		return DispatchResult{Success: true, Date: date, Message: "FCM token inactive"}
	}

	count := len(bookings)
	var lines []string
	var advanceTotal float64
	var advanceCount int
	for _, b := range bookings {
		timeStr := ""
		if b.Time != "" {
			timeStr = " at " + b.Time
		}
		lines = append(lines, fmt.Sprintf("• %s%s - %s", b.Name, timeStr, b.Service))
		if b.AdvancePaid && b.AdvanceAmount != "" {
			advanceTotal += utils.ParseAmountOrZero(b.AdvanceAmount)
			advanceCount++
		}
	}

	body := fmt.Sprintf("You have %d appointment%s scheduled for tomorrow", count, plural(count))
	if advanceCount > 0 {
		body += fmt.Sprintf("\n%d customer%s paid advance (₹%s)",
			advanceCount, plural(advanceCount), strconv.FormatFloat(advanceTotal, 'f', -1, 64))
	}

	linesJSON, _ := json.Marshal(lines)
	msg := PushMessage{
		Title: fmt.Sprintf("📅 Tomorrow's Bookings (%d)", count),
		Body:  body,
		Token: token.Token,
		Data: map[string]string{
			"date":         date,
			"count":        strconv.Itoa(count),
			"bookings":     string(linesJSON),
			"advanceTotal": strconv.FormatFloat(advanceTotal, 'f', -1, 64),
			"advanceCount": strconv.Itoa(advanceCount),
			"click_action": "/manage-bookings",
		},
	}

	messageID, err := s.pusher.Send(ctx, msg)
	if err != nil {
		log.Printf("Failed to send push notification: %v", err)
		s.logAttempt(date, "push_failed", count, advanceCount, advanceTotal, "push", models.ManagerTokenName, "", err)
		return DispatchResult{Success: false, Date: date, BookingCount: count, Err: err.Error()}
	}
	log.Printf("Push notification sent, message id: %s", messageID)
	s.logAttempt(date, "sent", count, advanceCount, advanceTotal, "push", models.ManagerTokenName, messageID, nil)

	if s.smsEnabled {
		s.sendSMSReminders(date, bookings)
	}

	return DispatchResult{
		Success:      true,
		Message:      "Notification sent successfully",
		Date:         date,
		BookingCount: count,
		AdvanceCount: advanceCount,
		AdvanceTotal: advanceTotal,
		MessageID:    messageID,
	}
}

// sendSMSReminders texts each next-day customer with a phone number. Failures
// are logged per attempt and never fail the run.
func (s *ReminderService) sendSMSReminders(date string, bookings []models.Booking) {
	for _, b := range bookings {
		if b.Phone == "" {
			continue
		}

		text := fmt.Sprintf("Reminder: your %s appointment is tomorrow", b.Service)
		if b.Time != "" {
			text += " at " + b.Time
		}
		text += "."

		params := &twilioApi.CreateMessageParams{}
		params.SetTo(b.Phone)
		params.SetFrom(s.smsFrom)
		params.SetBody(text)

		resp, err := s.smsClient.Api.CreateMessage(params)
		if err != nil {
			log.Printf("Failed to send SMS to %s: %v", b.Phone, err)
			s.logAttempt(date, "sms_failed", 1, 0, 0, "sms", b.Phone, "", err)
			continue
		}

		sid := ""
		if resp.Sid != nil {
			sid = *resp.Sid
		}
		log.Printf("SMS sent to %s, SID: %s", b.Phone, sid)
		s.logAttempt(date, "sent", 1, 0, 0, "sms", b.Phone, sid, nil)
	}
}

// logOutcome records a no-op or pre-send failure.
func (s *ReminderService) logOutcome(date, outcome string, count, advanceCount int, advanceTotal float64, messageID string, cause error) {
	s.logAttempt(date, outcome, count, advanceCount, advanceTotal, "push", models.ManagerTokenName, messageID, cause)
}

func (s *ReminderService) logAttempt(date, outcome string, count, advanceCount int, advanceTotal float64, channel, recipient, messageID string, cause error) {
	entry := models.NotificationLog{
		Type:         "booking_reminder",
		Date:         date,
		Outcome:      outcome,
		BookingCount: count,
		AdvanceCount: advanceCount,
		AdvanceTotal: advanceTotal,
		Channel:      channel,
		Recipient:    recipient,
		MessageID:    messageID,
		Success:      cause == nil && outcome != "push_failed" && outcome != "sms_failed",
		SentAt:       time.Now(),
	}
	if channel == "sms" {
		entry.Type = "booking_reminder_sms"
	}
	if cause != nil {
		entry.ErrorMessage = cause.Error()
	}

	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to write notification log: %v", err)
	}
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
