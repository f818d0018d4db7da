package routes

import (
	"github.com/Guillermo-Costilla/store-backend/config"
	orderControllers "github.com/Guillermo-Costilla/store-backend/controllers/order"
	paymentControllers "github.com/Guillermo-Costilla/store-backend/controllers/payment"
	"github.com/Guillermo-Costilla/store-backend/mailer"
	"github.com/Guillermo-Costilla/store-backend/middleware"
	"github.com/Guillermo-Costilla/store-backend/payments/stripe"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config, gw *stripe.Client, mail mailer.Sender) {
	orders := r.Group("/orders")
	{
		auth := middleware.ValidateToken(cfg.JWTSecret)

		// Create a new order (also creates the payment intent)
		orders.POST("", auth, orderControllers.CreateOrderHandler(db, gw, mail))

		// Fetch the caller's orders
		orders.GET("/my-orders", auth, orderControllers.GetUserOrdersHandler(db))

		// Synchronous payment confirmation
		orders.POST("/confirm-payment", paymentControllers.ConfirmPaymentHandler(db, gw, mail))

		// Admin routes
		orders.GET("/all", auth, middleware.RequireAdmin(), orderControllers.GetAllOrdersHandler(db))
		orders.PUT("/:orderID/status", auth, middleware.RequireAdmin(), orderControllers.UpdateOrderStatusHandler(db))
	}
}
