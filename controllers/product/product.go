package productControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Guillermo-Costilla/store-backend/models"
	"github.com/Guillermo-Costilla/store-backend/web"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProductInput struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Stock       int     `json:"stock" binding:"gte=0"`
	Rating      float64 `json:"rating"`
}

// GET /products — public listing; only in-stock products are shown.
func GetProductsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

		query := db.Where("stock > 0")
		if category := c.Query("category"); category != "" {
			query = query.Where("category = ?", category)
		}

		var products []models.Product
		if err := query.
			Order("created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&products).Error; err != nil {
			web.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch products")
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /products/:id
func GetProductByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				web.Fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
				return
			}
			web.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch product")
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// GET /products/categories
func GetCategoriesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []string
		if err := db.Model(&models.Product{}).
			Distinct("category").
			Where("category <> ''").
			Order("category").
			Pluck("category", &categories).Error; err != nil {
			web.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch categories")
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// POST /products (admin)
func CreateProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			web.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}

		product := models.Product{
			Name:        input.Name,
			Category:    input.Category,
			Image:       input.Image,
			Description: input.Description,
			Price:       input.Price,
			Stock:       input.Stock,
			Rating:      input.Rating,
		}
		if err := db.Create(&product).Error; err != nil {
			web.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create product")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Product created successfully", "product": product})
	}
}

// PUT /products/:id (admin)
func UpdateProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			web.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}

		res := db.Model(&models.Product{}).Where("id = ?", c.Param("id")).Updates(map[string]interface{}{
			"name":        input.Name,
			"category":    input.Category,
			"image":       input.Image,
			"description": input.Description,
			"price":       input.Price,
			"stock":       input.Stock,
			"rating":      input.Rating,
		})
		if res.Error != nil {
			web.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update product")
			return
		}
		if res.RowsAffected == 0 {
			web.Fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully"})
	}
}

// DELETE /products/:id (admin)
func DeleteProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.Where("id = ?", c.Param("id")).Delete(&models.Product{})
		if res.Error != nil {
			web.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete product")
			return
		}
		if res.RowsAffected == 0 {
			web.Fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
