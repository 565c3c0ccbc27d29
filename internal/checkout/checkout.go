// Package checkout turns a cart or a single-product request into an
// order with an immutable line-item price snapshot, optionally gated by
// a one-time confirmation code.
package checkout

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/afridaasad/craftique-backend/models"

	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrEmptyCart       = errors.New("your cart is empty")
	ErrCodeExpired     = errors.New("checkout code expired or not found")
	ErrCodeMismatch    = errors.New("invalid checkout code")
)

// CodeTTL is how long a generated confirmation code stays valid.
const CodeTTL = 300 * time.Second

// deliveryLeadDays is the estimated gap between ordering and delivery.
const deliveryLeadDays = 5

type Service struct {
	db    *gorm.DB
	codes CodeStore
}

func NewService(db *gorm.DB, codes CodeStore) *Service {
	return &Service{db: db, codes: codes}
}

// ShippingDetails carries the optional shipping fields of both checkout
// paths. Zero values fall back to the same placeholders the order table
// defaults to.
type ShippingDetails struct {
	Address       string
	Phone         string
	PaymentMethod string
}

func (d *ShippingDetails) applyDefaults() {
	if d.Address == "" {
		d.Address = "Not provided"
	}
	if d.Phone == "" {
		d.Phone = "0000000000"
	}
	if d.PaymentMethod == "" {
		d.PaymentMethod = models.PaymentCOD
	}
}

func estimatedDeliveryDate() *time.Time {
	date := time.Now().AddDate(0, 0, deliveryLeadDays)
	return &date
}

// BuyNow creates one order with a single line item snapshotting the
// product's current price. The cart is not touched and stock is not
// decremented.
func (s *Service) BuyNow(ctx context.Context, buyerID, productID uint, quantity uint, ship ShippingDetails) (*models.Order, error) {
	if quantity < 1 {
		quantity = 1
	}

	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	ship.applyDefaults()

	order := models.Order{
		BuyerID:         buyerID,
		ShippingAddress: ship.Address,
		PhoneNumber:     ship.Phone,
		PaymentMethod:   ship.PaymentMethod,
		Status:          models.OrderStatusPending,
		DeliveryStatus:  models.DeliveryStatusPending,
		DeliveryDate:    estimatedDeliveryDate(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		item := models.OrderItem{
			OrderID:   order.ID,
			ProductID: product.ID,
			Quantity:  quantity,
			Price:     product.Price,
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		order.Items = []models.OrderItem{item}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// Initiate generates a 6-digit confirmation code for the buyer's cart
// checkout and stores it with a 5-minute expiry. Fails when the cart is
// empty without allocating a code.
func (s *Service) Initiate(ctx context.Context, buyerID uint) (string, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("buyer_id = ?", buyerID).Count(&count).Error; err != nil {
		return "", err
	}
	if count == 0 {
		return "", ErrEmptyCart
	}

	code, err := generateCode()
	if err != nil {
		return "", err
	}
	if err := s.codes.Set(ctx, buyerID, code, CodeTTL); err != nil {
		return "", err
	}
	return code, nil
}

// Confirm validates the submitted code and converts the buyer's cart
// into an order as a single unit: order row, one item snapshot per cart
// line, and cart deletion all commit or roll back together. The stored
// code is invalidated afterwards.
//
// Preconditions are checked in order: live code exists, code matches,
// cart is non-empty.
func (s *Service) Confirm(ctx context.Context, buyerID uint, submittedCode string, ship ShippingDetails) (*models.Order, error) {
	stored, err := s.codes.Get(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(submittedCode) != stored {
		return nil, ErrCodeMismatch
	}

	var cartItems []models.CartItem
	if err := s.db.WithContext(ctx).Preload("Product").
		Where("buyer_id = ?", buyerID).Find(&cartItems).Error; err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	ship.applyDefaults()

	order := models.Order{
		BuyerID:         buyerID,
		ShippingAddress: ship.Address,
		PhoneNumber:     ship.Phone,
		PaymentMethod:   ship.PaymentMethod,
		Status:          models.OrderStatusPending,
		DeliveryStatus:  models.DeliveryStatusPending,
		DeliveryDate:    estimatedDeliveryDate(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, cartItem := range cartItems {
			item := models.OrderItem{
				OrderID:   order.ID,
				ProductID: cartItem.ProductID,
				Quantity:  cartItem.Quantity,
				Price:     cartItem.Product.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			order.Items = append(order.Items, item)
		}
		return tx.Where("buyer_id = ?", buyerID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	// Invalidated only after commit; on delete failure the code simply
	// expires with its TTL.
	_ = s.codes.Delete(ctx, buyerID)

	return &order, nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
