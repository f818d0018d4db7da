package routes

import (
	"github.com/Guillermo-Costilla/store-backend/config"
	adminControllers "github.com/Guillermo-Costilla/store-backend/controllers/admin"
	orderControllers "github.com/Guillermo-Costilla/store-backend/controllers/order"
	"github.com/Guillermo-Costilla/store-backend/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	admin := r.Group("/admin", middleware.ValidateToken(cfg.JWTSecret), middleware.RequireAdmin())
	{
		admin.GET("/dashboard", adminControllers.DashboardHandler(db))
		admin.GET("/orders/export", adminControllers.ExportOrdersToExcel(db))

		// Live feed of incoming orders for the dashboard
		admin.GET("/orders/feed", orderControllers.OrderFeedHandler)
	}
}
