package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Booking struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Name    string `gorm:"not null" json:"name"`
	Phone   string `json:"phone"`
	Service string `gorm:"not null" json:"service"`

	// Calendar date as YYYY-MM-DD; reminder queries match on it exactly.
	Date  string `gorm:"type:varchar(10);index;not null" json:"date"`
	Time  string `json:"time"`
	Notes string `json:"notes"`

	AdvancePaid   bool   `json:"advancePaid"`
	AdvanceAmount string `json:"advanceAmount"`

	SheetRowIndex *int `json:"rowIndex,omitempty"`

	CreatedBy string `json:"createdBy"`

	gorm.Model
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}
