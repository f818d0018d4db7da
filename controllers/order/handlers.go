package orderControllers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/Guillermo-Costilla/store-backend/mailer"
	"github.com/Guillermo-Costilla/store-backend/models"
	"github.com/Guillermo-Costilla/store-backend/payments/stripe"
	"github.com/Guillermo-Costilla/store-backend/web"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" binding:"required,dive"`
	ShippingAddress ShippingAddress    `json:"shipping_address" binding:"required"`
}

type UpdateStatusRequest struct {
	FulfillmentStatus *models.FulfillmentStatus `json:"fulfillment_status"`
	PaymentStatus     *models.PaymentStatus     `json:"payment_status"`
}

// CreateOrderHandler persists the order, creates a payment intent for its
// total and attaches the intent reference. The intent is only attached after
// the gateway confirms creation; a gateway failure leaves the order unpaid
// with no reference, which the client can retry.
func CreateOrderHandler(db *gorm.DB, gw *stripe.Client, mail mailer.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			web.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}

		order, err := CreateOrder(db, userID, req.Items, req.ShippingAddress)
		if err != nil {
			switch {
			case errors.Is(err, ErrProductNotFound):
				web.Fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", err.Error())
			case errors.Is(err, ErrInsufficientStock):
				web.Fail(c, http.StatusBadRequest, "INSUFFICIENT_STOCK", err.Error())
			case errors.Is(err, ErrEmptyOrder):
				web.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			default:
				log.Println("❌ Failed to create order:", err)
				web.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create order")
			}
			return
		}

		amountCents := int64(math.Round(order.Total * 100))
		intent, err := gw.CreateIntent(c.Request.Context(), amountCents, "usd", map[string]string{
			"order_id": order.ID,
			"user_id":  strconv.FormatUint(uint64(userID), 10),
		})
		if err != nil {
			log.Println("❌ Payment intent creation failed for order", order.ID, ":", err)
			var gwErr *stripe.GatewayError
			if errors.As(err, &gwErr) {
				web.Fail(c, gwErr.HTTPStatus(), "GATEWAY_ERROR", gwErr.Message)
				return
			}
			web.Fail(c, http.StatusServiceUnavailable, "GATEWAY_ERROR", "Payment gateway unavailable")
			return
		}

		if err := AttachPaymentIntent(db, order.ID, intent.ID); err != nil {
			log.Println("❌ Failed to attach payment intent to order", order.ID, ":", err)
			web.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to record payment intent")
			return
		}
		order.PaymentIntentID = intent.ID

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err == nil {
			mailer.SendAsync(mail, user.Email,
				"🎉 Confirmación de tu orden en Tienda Online",
				mailer.OrderCreatedBody(user.Name, order.ID, order.Total))
		}

		BroadcastOrder(*order)

		c.JSON(http.StatusCreated, gin.H{
			"order_id":          order.ID,
			"total":             order.Total,
			"client_secret":     intent.ClientSecret,
			"payment_intent_id": intent.ID,
		})
	}
}

// GetUserOrdersHandler lists the authenticated user's orders, newest first.
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			web.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch orders")
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GetAllOrdersHandler lists all orders (admin), with optional
// fulfillment/payment status filters and pagination.
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

		query := db.Preload("User").Preload("Items")
		if status := c.Query("fulfillment_status"); status != "" {
			query = query.Where("fulfillment_status = ?", status)
		}
		if status := c.Query("payment_status"); status != "" {
			query = query.Where("payment_status = ?", status)
		}

		var orders []models.Order
		if err := query.
			Order("created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&orders).Error; err != nil {
			web.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch orders")
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// UpdateOrderStatusHandler updates fulfillment and/or payment status (admin).
// Shipping an order deducts stock; see SetFulfillmentStatus.
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")

		var req UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			web.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		if req.FulfillmentStatus == nil && req.PaymentStatus == nil {
			web.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "At least one status field is required")
			return
		}

		if req.FulfillmentStatus != nil {
			if !validFulfillmentStatus(*req.FulfillmentStatus) {
				web.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid fulfillment status")
				return
			}
			if err := SetFulfillmentStatus(db, orderID, *req.FulfillmentStatus); err != nil {
				switch {
				case errors.Is(err, ErrOrderNotFound):
					web.Fail(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
				case errors.Is(err, ErrInsufficientStock):
					web.Fail(c, http.StatusConflict, "INSUFFICIENT_STOCK", err.Error())
				default:
					log.Println("❌ Failed to update fulfillment status:", err)
					web.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update order status")
				}
				return
			}
		}

		if req.PaymentStatus != nil {
			if _, err := SetPaymentStatus(db, orderID, *req.PaymentStatus); err != nil {
				switch {
				case errors.Is(err, ErrOrderNotFound):
					web.Fail(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
				case errors.Is(err, ErrInvalidTransition):
					web.Fail(c, http.StatusConflict, "INVALID_TRANSITION", err.Error())
				default:
					log.Println("❌ Failed to update payment status:", err)
					web.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update payment status")
				}
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}

func validFulfillmentStatus(s models.FulfillmentStatus) bool {
	switch s {
	case models.FulfillmentPending, models.FulfillmentShipped,
		models.FulfillmentDelivered, models.FulfillmentCancelled:
		return true
	}
	return false
}
