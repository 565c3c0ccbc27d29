package models

import (
	"time"
)

type Address struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BuyerID     uint      `gorm:"index;not null" json:"buyer_id"`
	Label       string    `gorm:"size:100;default:'Home'" json:"label"` // e.g. Home, Office
	AddressLine string    `gorm:"type:text;not null" json:"address_line"`
	City        string    `gorm:"size:100;not null" json:"city"`
	PostalCode  string    `gorm:"size:10;not null" json:"postal_code"`
	Country     string    `gorm:"size:50;default:'India'" json:"country"`
	IsDefault   bool      `gorm:"default:false" json:"is_default"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Buyer User `gorm:"foreignKey:BuyerID;constraint:OnDelete:CASCADE" json:"-"`
}
