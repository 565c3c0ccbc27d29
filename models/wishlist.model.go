package models

import (
	"time"
)

// Wishlist is a unique (buyer, product) bookmark. No quantity.
type Wishlist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BuyerID   uint      `gorm:"not null;uniqueIndex:idx_wishlist_buyer_product" json:"buyer_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_wishlist_buyer_product" json:"product_id"`
	AddedAt   time.Time `gorm:"autoCreateTime" json:"added_at"`

	// Relations
	Buyer   User    `gorm:"foreignKey:BuyerID;constraint:OnDelete:CASCADE" json:"-"`
	Product Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product"`
}
