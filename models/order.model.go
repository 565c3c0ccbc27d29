package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Approval statuses (artisan/admin controlled accept/reject gate).
const (
	OrderStatusPending  = "pending"
	OrderStatusApproved = "approved"
	OrderStatusDenied   = "denied"
)

// Delivery statuses. An independent track: delivery may advance while
// approval is still pending.
const (
	DeliveryStatusPending        = "pending"
	DeliveryStatusShipped        = "shipped"
	DeliveryStatusOutForDelivery = "out_for_delivery"
	DeliveryStatusDelivered      = "delivered"
)

// Payment methods.
const (
	PaymentCOD = "cod"
	PaymentUPI = "upi"
	PaymentCC  = "cc"
)

// ValidPaymentMethod reports whether m is a supported payment method.
func ValidPaymentMethod(m string) bool {
	return m == PaymentCOD || m == PaymentUPI || m == PaymentCC
}

type Order struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	BuyerID         uint       `gorm:"index;not null" json:"buyer_id"`
	ShippingAddress string     `gorm:"type:text" json:"shipping_address"`
	PhoneNumber     string     `gorm:"size:15" json:"phone_number"`
	PaymentMethod   string     `gorm:"size:20;default:'cod'" json:"payment_method"`
	Status          string     `gorm:"size:20;default:'pending';index" json:"status"`
	DeliveryStatus  string     `gorm:"size:30;default:'pending'" json:"delivery_status"`
	DeliveryDate    *time.Time `json:"delivery_date"`
	CreatedAt       time.Time  `json:"created_at"`

	// Relations
	Buyer User        `gorm:"foreignKey:BuyerID;constraint:OnDelete:CASCADE" json:"buyer"`
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// Total is the sum of price×quantity over the order's items. Always
// computed from the snapshots, never stored.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

type OrderItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	OrderID   uint `gorm:"index;not null" json:"order_id"`
	ProductID uint `gorm:"not null" json:"product_id"`
	Quantity  uint `gorm:"default:1" json:"quantity"`

	// Price is a snapshot of the product price at purchase time. Never
	// recomputed from the live product.
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`

	// Relations
	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product"`
}

// Subtotal is price×quantity for a single line item.
func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
