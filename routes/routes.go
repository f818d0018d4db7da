package routes

import (
	"github.com/Guillermo-Costilla/store-backend/config"
	"github.com/Guillermo-Costilla/store-backend/mailer"
	"github.com/Guillermo-Costilla/store-backend/payments/stripe"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up every route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config, gw *stripe.Client, mail mailer.Sender) {
	SetupUserRoutes(r, db, cfg)

	SetupProductRoutes(r, db, cfg)

	SetupFavoritesRoutes(r, db, cfg)

	SetupOrderRoutes(r, db, cfg, gw, mail)

	SetupPaymentRoutes(r, db, cfg, gw, mail)

	SetupAdminRoutes(r, db, cfg)
}
