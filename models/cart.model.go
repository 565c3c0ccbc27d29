package models

import (
	"time"
)

// CartItem is one (buyer, product) line in a buyer's cart. The pair is
// unique; adding the same product again updates the quantity instead.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BuyerID   uint      `gorm:"not null;uniqueIndex:idx_cart_buyer_product" json:"buyer_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_buyer_product" json:"product_id"`
	Quantity  uint      `gorm:"default:1" json:"quantity"`
	AddedAt   time.Time `gorm:"autoCreateTime" json:"added_at"`

	// Relations
	Buyer   User    `gorm:"foreignKey:BuyerID;constraint:OnDelete:CASCADE" json:"-"`
	Product Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product"`
}
