// Package orders owns the two independent status tracks on an order:
// the approval gate and the delivery progress. The tracks are not
// cross-validated against each other.
package orders

import (
	"context"
	"errors"

	"github.com/afridaasad/craftique-backend/models"

	"gorm.io/gorm"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrNotOwner        = errors.New("you do not have permission to modify this order")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrAlreadyResolved = errors.New("order approval has already been resolved")
)

// Actor is the authenticated user attempting a transition.
type Actor struct {
	ID   uint
	Role string
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) loadOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Items.Product").First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// ownsAnyItem reports whether any line item's product belongs to the
// artisan.
func ownsAnyItem(order *models.Order, artisanID uint) bool {
	for _, item := range order.Items {
		if item.Product.ArtisanID == artisanID {
			return true
		}
	}
	return false
}

func (s *Service) authorize(order *models.Order, actor Actor) error {
	if actor.Role == models.RoleAdmin {
		return nil
	}
	if actor.Role == models.RoleArtisan && ownsAnyItem(order, actor.ID) {
		return nil
	}
	return ErrNotOwner
}

// UpdateApproval moves the approval status from pending to approved or
// denied. Any other target value, or an order no longer pending, is
// rejected. Approval is terminal once set.
func (s *Service) UpdateApproval(ctx context.Context, actor Actor, orderID uint, newStatus string) (*models.Order, error) {
	if newStatus != models.OrderStatusApproved && newStatus != models.OrderStatusDenied {
		return nil, ErrInvalidStatus
	}

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(order, actor); err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPending {
		return nil, ErrAlreadyResolved
	}

	order.Status = newStatus
	if err := s.db.WithContext(ctx).Model(order).Update("status", newStatus).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateDelivery sets the delivery status to shipped, out_for_delivery
// or delivered. Pending cannot be re-entered, and no ordering between
// the three targets is enforced.
func (s *Service) UpdateDelivery(ctx context.Context, actor Actor, orderID uint, newStatus string) (*models.Order, error) {
	switch newStatus {
	case models.DeliveryStatusShipped, models.DeliveryStatusOutForDelivery, models.DeliveryStatusDelivered:
	default:
		return nil, ErrInvalidStatus
	}

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(order, actor); err != nil {
		return nil, err
	}

	order.DeliveryStatus = newStatus
	if err := s.db.WithContext(ctx).Model(order).Update("delivery_status", newStatus).Error; err != nil {
		return nil, err
	}
	return order, nil
}
