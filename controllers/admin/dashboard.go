package adminControllers

import (
	"log"
	"net/http"

	"github.com/Guillermo-Costilla/store-backend/models"
	"github.com/Guillermo-Costilla/store-backend/web"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type statusCount struct {
	FulfillmentStatus string `json:"fulfillment_status"`
	Count             int64  `json:"count"`
}

type topProduct struct {
	ProductName string `json:"product_name"`
	UnitsSold   int64  `json:"units_sold"`
}

type lowStockProduct struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// DashboardHandler aggregates the reporting numbers for the admin panel.
func DashboardHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var totalSales float64
		if err := db.Model(&models.Order{}).
			Select("COALESCE(SUM(total), 0)").
			Scan(&totalSales).Error; err != nil {
			log.Println("❌ Dashboard query failed:", err)
			web.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch dashboard metrics")
			return
		}

		var totalOrders int64
		if err := db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
			web.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch dashboard metrics")
			return
		}

		var byStatus []statusCount
		if err := db.Model(&models.Order{}).
			Select("fulfillment_status, COUNT(*) as count").
			Group("fulfillment_status").
			Scan(&byStatus).Error; err != nil {
			web.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch dashboard metrics")
			return
		}

		var topProducts []topProduct
		if err := db.Model(&models.OrderItem{}).
			Select("product_name, SUM(quantity) as units_sold").
			Group("product_name").
			Order("units_sold DESC").
			Limit(5).
			Scan(&topProducts).Error; err != nil {
			web.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch dashboard metrics")
			return
		}

		var lowStock []lowStockProduct
		if err := db.Model(&models.Product{}).
			Select("name, stock").
			Where("stock < ?", 5).
			Scan(&lowStock).Error; err != nil {
			web.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch dashboard metrics")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"total_sales":      totalSales,
			"total_orders":     totalOrders,
			"orders_by_status": byStatus,
			"top_products":     topProducts,
			"low_stock":        lowStock,
		})
	}
}
