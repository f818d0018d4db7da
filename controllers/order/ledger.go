package orderControllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/Guillermo-Costilla/store-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrIntentAttached    = errors.New("payment intent already attached")
	ErrEmptyOrder        = errors.New("order must include at least one item")
)

type OrderItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

type ShippingAddress struct {
	Street     string `json:"street" binding:"required"`
	Locality   string `json:"locality" binding:"required"`
	Region     string `json:"region" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
}

// CreateOrder validates the requested items against the catalog, snapshots
// name and price per line, and persists the order as unpaid. Stock is NOT
// touched here; it is deducted when the order ships.
func CreateOrder(db *gorm.DB, userID uint, items []OrderItemRequest, addr ShippingAddress) (*models.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	order := models.Order{
		ID:                uuid.NewString(),
		UserID:            userID,
		Street:            addr.Street,
		Locality:          addr.Locality,
		Region:            addr.Region,
		PostalCode:        addr.PostalCode,
		FulfillmentStatus: models.FulfillmentPending,
		PaymentStatus:     models.PaymentUnpaid,
		CreatedAt:         time.Now(),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var total float64
		for _, item := range items {
			var product models.Product
			if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: product %d", ErrProductNotFound, item.ProductID)
				}
				return err
			}

			if product.Stock < item.Quantity {
				return fmt.Errorf("%w: %s (available: %d)", ErrInsufficientStock, product.Name, product.Stock)
			}

			subtotal := product.Price * float64(item.Quantity)
			total += subtotal

			order.Items = append(order.Items, models.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				UnitPrice:   product.Price,
				Quantity:    item.Quantity,
				Subtotal:    subtotal,
			})
		}

		order.Total = total
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// AttachPaymentIntent records the gateway intent reference on an order.
// The write is one-time: a second attach is rejected.
func AttachPaymentIntent(db *gorm.DB, orderID, intentID string) error {
	res := db.Model(&models.Order{}).
		Where("id = ? AND (payment_intent_id IS NULL OR payment_intent_id = '')", orderID).
		Update("payment_intent_id", intentID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := db.Model(&models.Order{}).Where("id = ?", orderID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrOrderNotFound
	}
	return ErrIntentAttached
}

// SetPaymentStatus moves an order's payment status from unpaid to a terminal
// state with a conditional update so that racing writers cannot both apply
// the transition. The returned bool reports whether THIS call performed the
// transition; side effects must key on it.
//
// Repeating the same terminal target is a no-op (false, nil). Targeting a
// different terminal state than the one already recorded fails with
// ErrInvalidTransition.
func SetPaymentStatus(db *gorm.DB, orderID string, status models.PaymentStatus) (bool, error) {
	if status != models.PaymentPaid && status != models.PaymentCancelled {
		return false, fmt.Errorf("%w: target %q", ErrInvalidTransition, status)
	}

	res := db.Model(&models.Order{}).
		Where("id = ? AND payment_status = ?", orderID, models.PaymentUnpaid).
		Update("payment_status", status)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 1 {
		return true, nil
	}

	// The guarded update matched nothing: order absent, already at the
	// requested state, or in a conflicting terminal state.
	var order models.Order
	if err := db.Select("payment_status").First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrOrderNotFound
		}
		return false, err
	}
	if order.PaymentStatus == status {
		return false, nil
	}
	return false, fmt.Errorf("%w: order is already %s", ErrInvalidTransition, order.PaymentStatus)
}

// SetFulfillmentStatus updates an order's fulfillment status. Transitioning
// into shipped deducts stock for every line item by its snapshotted quantity,
// exactly once, in the same transaction as the status write: if any item
// cannot be deducted the whole transition rolls back and the order stays in
// its previous status.
func SetFulfillmentStatus(db *gorm.DB, orderID string, status models.FulfillmentStatus) error {
	if status != models.FulfillmentShipped {
		res := db.Model(&models.Order{}).Where("id = ?", orderID).Update("fulfillment_status", status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOrderNotFound
		}
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		// Claim the transition first; a repeated ship request matches
		// nothing and must not deduct stock again.
		res := tx.Model(&models.Order{}).
			Where("id = ? AND fulfillment_status <> ?", orderID, models.FulfillmentShipped).
			Update("fulfillment_status", models.FulfillmentShipped)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.Order{}).Where("id = ?", orderID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrOrderNotFound
			}
			return nil // already shipped, stock was already deducted
		}

		var items []models.OrderItem
		if err := tx.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
			return err
		}

		for _, item := range items {
			dec := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if dec.Error != nil {
				return dec.Error
			}
			if dec.RowsAffected == 0 {
				return fmt.Errorf("%w: product %d", ErrInsufficientStock, item.ProductID)
			}
		}
		return nil
	})
}
