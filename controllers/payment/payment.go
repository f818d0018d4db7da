package paymentControllers

import (
	"errors"
	"io"
	"log"
	"net/http"

	orderControllers "github.com/Guillermo-Costilla/store-backend/controllers/order"
	"github.com/Guillermo-Costilla/store-backend/mailer"
	"github.com/Guillermo-Costilla/store-backend/models"
	"github.com/Guillermo-Costilla/store-backend/payments/stripe"
	"github.com/Guillermo-Costilla/store-backend/web"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
}

// ConfirmPaymentHandler is the client-initiated reconciliation trigger: it
// retrieves the intent from the gateway and maps its status onto the order.
// Non-terminal intent statuses leave the order untouched.
func ConfirmPaymentHandler(db *gorm.DB, gw *stripe.Client, mail mailer.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ConfirmPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			web.Fail(c, http.StatusBadRequest, "MISSING_PAYMENT_INTENT", "payment_intent_id is required")
			return
		}

		intent, err := gw.RetrieveIntent(c.Request.Context(), req.PaymentIntentID)
		if err != nil {
			var gwErr *stripe.GatewayError
			if errors.As(err, &gwErr) {
				web.Fail(c, gwErr.HTTPStatus(), "GATEWAY_ERROR", gwErr.Message)
				return
			}
			web.Fail(c, http.StatusServiceUnavailable, "GATEWAY_ERROR", "Payment gateway unavailable")
			return
		}

		switch intent.Status {
		case stripe.IntentSucceeded:
			if _, err := applyOutcome(db, mail, intent, models.PaymentPaid); err != nil {
				respondOutcomeError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment confirmed successfully"})

		case stripe.IntentCanceled:
			if _, err := applyOutcome(db, mail, intent, models.PaymentCancelled); err != nil {
				respondOutcomeError(c, err)
				return
			}
			web.Fail(c, http.StatusBadRequest, "PAYMENT_FAILED", "The payment was not successful")

		default:
			// requires_payment_method, processing, etc: nothing to record yet.
			web.Fail(c, http.StatusBadRequest, "PAYMENT_INCOMPLETE", "The payment has not succeeded yet")
		}
	}
}

func respondOutcomeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errNoOrderRef), errors.Is(err, orderControllers.ErrOrderNotFound):
		web.Fail(c, http.StatusNotFound, "ORDER_NOT_FOUND", "No order found for this payment")
	case errors.Is(err, orderControllers.ErrInvalidTransition):
		web.Fail(c, http.StatusConflict, "INVALID_TRANSITION", "Order payment is already settled")
	default:
		log.Println("❌ Failed to apply payment outcome:", err)
		web.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to confirm payment")
	}
}

// WebhookHandler is the gateway-pushed reconciliation trigger. The signature
// is the only authentication on this route: verification failures are
// rejected with 400 and never processed. Everything that verifies is
// acknowledged with 200 so the gateway stops retrying, even when the event
// references an order we cannot act on.
func WebhookHandler(db *gorm.DB, gw *stripe.Client, mail mailer.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := io.ReadAll(c.Request.Body)
		if err != nil {
			web.Fail(c, http.StatusBadRequest, "INVALID_PAYLOAD", "Failed to read request body")
			return
		}

		event, err := gw.VerifyWebhookSignature(payload, c.GetHeader("Stripe-Signature"))
		if err != nil {
			log.Println("⚠️ Webhook signature verification failed:", err)
			web.Fail(c, http.StatusBadRequest, "INVALID_SIGNATURE", "Webhook signature verification failed")
			return
		}

		switch event.Kind() {
		case stripe.EventPaymentSucceeded:
			logOutcome(db, mail, &event.Data.Object, models.PaymentPaid)
		case stripe.EventPaymentFailed:
			logOutcome(db, mail, &event.Data.Object, models.PaymentCancelled)
		case stripe.EventUnrecognized:
			log.Printf("Unhandled event type %s", event.Type)
		}

		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}

type CreateIntentRequest struct {
	Amount   int64             `json:"amount" binding:"required,gt=0"` // cents
	Currency string            `json:"currency"`
	Metadata map[string]string `json:"metadata"`
}

// CreateIntentHandler creates a standalone payment intent, unattached to an
// order. Kept for clients that drive their own checkout.
func CreateIntentHandler(gw *stripe.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateIntentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			web.Fail(c, http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be greater than 0")
			return
		}
		if req.Currency == "" {
			req.Currency = "usd"
		}

		intent, err := gw.CreateIntent(c.Request.Context(), req.Amount, req.Currency, req.Metadata)
		if err != nil {
			var gwErr *stripe.GatewayError
			if errors.As(err, &gwErr) {
				web.Fail(c, gwErr.HTTPStatus(), "GATEWAY_ERROR", gwErr.Message)
				return
			}
			web.Fail(c, http.StatusServiceUnavailable, "GATEWAY_ERROR", "Payment gateway unavailable")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":           true,
			"client_secret":     intent.ClientSecret,
			"payment_intent_id": intent.ID,
			"amount":            intent.Amount,
			"currency":          intent.Currency,
			"status":            intent.Status,
		})
	}
}

// PaymentStatusHandler reports the gateway's view of an intent.
func PaymentStatusHandler(gw *stripe.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		intent, err := gw.RetrieveIntent(c.Request.Context(), c.Param("paymentIntentID"))
		if err != nil {
			var gwErr *stripe.GatewayError
			if errors.As(err, &gwErr) {
				web.Fail(c, gwErr.HTTPStatus(), "RETRIEVAL_ERROR", gwErr.Message)
				return
			}
			web.Fail(c, http.StatusServiceUnavailable, "GATEWAY_ERROR", "Payment gateway unavailable")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"payment_intent": gin.H{
				"id":       intent.ID,
				"status":   intent.Status,
				"amount":   intent.Amount,
				"currency": intent.Currency,
				"created":  intent.Created,
			},
		})
	}
}

// PublicKeyHandler hands the frontend the publishable key.
func PublicKeyHandler(publicKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if publicKey == "" {
			web.Fail(c, http.StatusInternalServerError, "CONFIG_ERROR", "Public key not configured")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "public_key": publicKey})
	}
}
