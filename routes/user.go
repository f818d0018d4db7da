package routes

import (
	"github.com/Guillermo-Costilla/store-backend/config"
	userControllers "github.com/Guillermo-Costilla/store-backend/controllers/user"
	"github.com/Guillermo-Costilla/store-backend/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupUserRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	users := r.Group("/users")
	{
		users.POST("/register", userControllers.RegisterHandler(db))
		users.POST("/login", userControllers.LoginHandler(db, cfg.JWTSecret))

		authed := users.Group("", middleware.ValidateToken(cfg.JWTSecret))
		{
			authed.GET("/profile", userControllers.GetProfileHandler(db))
			authed.PUT("/profile", userControllers.UpdateProfileHandler(db))
		}
	}
}
