package routes

import (
	"github.com/Guillermo-Costilla/store-backend/config"
	favoritesControllers "github.com/Guillermo-Costilla/store-backend/controllers/favorites"
	"github.com/Guillermo-Costilla/store-backend/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupFavoritesRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	favorites := r.Group("/favorites", middleware.ValidateToken(cfg.JWTSecret))
	{
		favorites.POST("", favoritesControllers.AddFavoriteHandler(db))
		favorites.DELETE("", favoritesControllers.RemoveFavoriteHandler(db))
		favorites.GET("", favoritesControllers.GetFavoritesHandler(db))
	}
}
