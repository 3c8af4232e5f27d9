package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringList stores a list of service names as a JSON column.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *StringList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("type assertion to []byte failed")
	}
}

type Customer struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Name     string     `gorm:"not null" json:"name"`
	Phone    string     `json:"phone"`
	Services StringList `gorm:"type:jsonb;not null" json:"services"`

	// Amount is kept exactly as submitted; it is validated to parse as a
	// non-negative number on entry, and aggregate code parses it tolerantly.
	Amount      string `gorm:"not null" json:"amount"`
	PaymentMode string `gorm:"type:varchar(10);not null" json:"paymentMode"` // cash or upi

	// Position of this record's row in the spreadsheet mirror, assigned when
	// the row is appended. Not re-indexed when other rows are deleted.
	SheetRowIndex *int `json:"rowIndex,omitempty"`

	CreatedBy string `json:"createdBy"`
	UpdatedBy string `json:"updatedBy"`

	gorm.Model
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
