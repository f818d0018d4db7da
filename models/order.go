package models

import "time"

type FulfillmentStatus string
type PaymentStatus string

const (
	// Fulfillment statuses
	FulfillmentPending   FulfillmentStatus = "pending"   // Order placed, not dispatched yet
	FulfillmentShipped   FulfillmentStatus = "shipped"   // Out for delivery; stock is deducted here
	FulfillmentDelivered FulfillmentStatus = "delivered" // Customer received the items
	FulfillmentCancelled FulfillmentStatus = "cancelled" // Cancelled before shipping

	// Payment statuses. Paid and cancelled are terminal.
	PaymentUnpaid    PaymentStatus = "unpaid"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
)

type Order struct {
	ID     string `gorm:"primaryKey" json:"id"` // UUID, assigned at creation
	UserID uint   `gorm:"not null;index" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Total float64     `json:"total"`

	// Shipping address, snapshotted from the request at creation.
	Street     string `json:"street"`
	Locality   string `json:"locality"`
	Region     string `json:"region"`
	PostalCode string `json:"postal_code"`

	FulfillmentStatus FulfillmentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"fulfillment_status"`
	PaymentStatus     PaymentStatus     `gorm:"type:VARCHAR(20);default:'unpaid'" json:"payment_status"`

	// External payment gateway intent reference, attached once after the
	// gateway confirms intent creation.
	PaymentIntentID string `gorm:"index" json:"payment_intent_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// OrderItem is a line item with name and price copied from the product at
// order-creation time. Later catalog changes never touch these rows.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderID     string  `gorm:"index" json:"order_id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}
