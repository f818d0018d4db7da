package routes

import (
	"github.com/Guillermo-Costilla/store-backend/config"
	paymentControllers "github.com/Guillermo-Costilla/store-backend/controllers/payment"
	"github.com/Guillermo-Costilla/store-backend/mailer"
	"github.com/Guillermo-Costilla/store-backend/payments/stripe"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupPaymentRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config, gw *stripe.Client, mail mailer.Sender) {
	payments := r.Group("/payments")
	{
		payments.POST("/create-payment-intent", paymentControllers.CreateIntentHandler(gw))
		payments.GET("/status/:paymentIntentID", paymentControllers.PaymentStatusHandler(gw))
		payments.GET("/public-key", paymentControllers.PublicKeyHandler(cfg.StripePublicKey))

		// No auth middleware here: the webhook signature is the auth.
		payments.POST("/webhook", paymentControllers.WebhookHandler(db, gw, mail))
	}
}
