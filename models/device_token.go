package models

import "time"

// ManagerTokenName is the single device-token slot the dispatcher sends to.
const ManagerTokenName = "manager"

// DeviceToken is a named push-token slot. Last writer wins; no history.
type DeviceToken struct {
	Name      string    `gorm:"primaryKey;type:varchar(32)" json:"name"`
	Token     string    `gorm:"type:text;not null" json:"token"`
	Active    bool      `json:"active"`
	UpdatedAt time.Time `json:"updatedAt"`
}
