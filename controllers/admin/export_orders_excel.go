package adminControllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Guillermo-Costilla/store-backend/models"
	"github.com/Guillermo-Costilla/store-backend/web"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// ExportOrdersToExcel streams every order as an xlsx download.
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("User").Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			web.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch orders")
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			web.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create Excel sheet")
			return
		}

		headers := []string{
			"ID", "Customer", "Email", "Total", "FulfillmentStatus",
			"PaymentStatus", "PaymentIntentID", "Items", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			row := sheet.AddRow()

			row.AddCell().SetValue(o.ID)
			row.AddCell().SetValue(o.User.Name)
			row.AddCell().SetValue(o.User.Email)
			row.AddCell().SetValue(o.Total)
			row.AddCell().SetValue(string(o.FulfillmentStatus))
			row.AddCell().SetValue(string(o.PaymentStatus))
			row.AddCell().SetValue(o.PaymentIntentID)

			var lines []string
			for _, item := range o.Items {
				lines = append(lines, item.ProductName+" x"+strconv.Itoa(item.Quantity))
			}
			row.AddCell().SetValue(strings.Join(lines, ", "))

			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			web.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to write Excel file")
			return
		}
	}
}
