package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationLog records one dispatcher send attempt or no-op outcome.
type NotificationLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Type         string    `gorm:"type:varchar(40);not null" json:"type"` // booking_reminder, booking_reminder_sms
	Date         string    `gorm:"type:varchar(10);index" json:"date"`
	Outcome      string    `gorm:"type:varchar(20)" json:"outcome"` // sent, no_bookings, no_token, token_inactive, push_failed, sms_failed, store_failed
	BookingCount int       `json:"bookingCount"`
	AdvanceCount int       `json:"advanceCount"`
	AdvanceTotal float64   `json:"advanceTotal"`
	Channel      string    `gorm:"type:varchar(10)" json:"channel"` // push or sms
	Recipient    string    `json:"recipient"`
	MessageID    string    `json:"messageId"`
	ErrorMessage string    `gorm:"type:text" json:"errorMessage"`
	Success      bool      `json:"success"`
	SentAt       time.Time `json:"sentAt"`
	gorm.Model
}

func (n *NotificationLog) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}
