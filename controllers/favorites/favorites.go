package favoritesControllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Guillermo-Costilla/store-backend/models"
	"github.com/Guillermo-Costilla/store-backend/web"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FavoriteRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// POST /favorites
func AddFavoriteHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var req FavoriteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			web.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}

		favorite := models.Favorite{
			UserID:    userID,
			ProductID: req.ProductID,
			AddedAt:   time.Now(),
		}
		if err := db.Create(&favorite).Error; err != nil {
			// unique (user, product) pair already exists
			if isDuplicate(err) {
				web.Fail(c, http.StatusConflict, "ALREADY_FAVORITE", "Product is already in favorites")
				return
			}
			web.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to add favorite")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Added to favorites"})
	}
}

// isDuplicate reports whether err is a unique-constraint violation. The
// string checks cover drivers opened without TranslateError.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(strings.ToUpper(err.Error()), "UNIQUE") ||
		strings.Contains(err.Error(), "duplicate key")
}

// DELETE /favorites
func RemoveFavoriteHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var req FavoriteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			web.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}

		if err := db.Where("user_id = ? AND product_id = ?", userID, req.ProductID).
			Delete(&models.Favorite{}).Error; err != nil {
			web.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to remove favorite")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Removed from favorites"})
	}
}

// GET /favorites — the caller's favorited products.
func GetFavoritesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var products []models.Product
		if err := db.
			Joins("JOIN favorites ON favorites.product_id = products.id").
			Where("favorites.user_id = ?", userID).
			Find(&products).Error; err != nil {
			web.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch favorites")
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
