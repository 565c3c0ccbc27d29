package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Craft categories a product may belong to. Mirrored in the categories
// table by the seeder.
var Categories = []string{
	"Pottery",
	"Woodcraft",
	"Textiles",
	"Jewelry",
	"Leatherwork",
	"Sculptures",
}

// ValidCategory reports whether name is one of the known craft categories.
func ValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	ArtisanID   uint            `gorm:"index;not null" json:"artisan_id"`
	Title       string          `gorm:"size:200;not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	Category    string          `gorm:"size:100;index" json:"category"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock       uint            `gorm:"default:1" json:"stock"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Artisan User `gorm:"foreignKey:ArtisanID;constraint:OnDelete:CASCADE" json:"artisan"`
}
