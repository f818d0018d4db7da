package routes

import (
	"github.com/Guillermo-Costilla/store-backend/config"
	productControllers "github.com/Guillermo-Costilla/store-backend/controllers/product"
	"github.com/Guillermo-Costilla/store-backend/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupProductRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	products := r.Group("/products")
	{
		// Public catalog
		products.GET("", productControllers.GetProductsHandler(db))
		products.GET("/categories", productControllers.GetCategoriesHandler(db))
		products.GET("/:id", productControllers.GetProductByIDHandler(db))

		// Admin catalog management
		admin := products.Group("", middleware.ValidateToken(cfg.JWTSecret), middleware.RequireAdmin())
		{
			admin.GET("/export", productControllers.ExportProductsToExcel(db))
			admin.POST("", productControllers.CreateProductHandler(db))
			admin.PUT("/:id", productControllers.UpdateProductHandler(db))
			admin.DELETE("/:id", productControllers.DeleteProductHandler(db))
		}
	}
}
