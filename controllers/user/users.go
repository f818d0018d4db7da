package userControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Guillermo-Costilla/store-backend/models"
	"github.com/Guillermo-Costilla/store-backend/web"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	Country    string `json:"country"`
	Locality   string `json:"locality"`
	PostalCode string `json:"postal_code"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Country    *string `json:"country"`
	Locality   *string `json:"locality"`
	PostalCode *string `json:"postal_code"`
}

// POST /users/register
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			web.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}

		var existing models.User
		if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			web.Fail(c, http.StatusBadRequest, "EMAIL_TAKEN", "Email is already registered")
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			web.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to register user")
			return
		}

		user := models.User{
			Name:       req.Name,
			Email:      req.Email,
			Password:   string(hashed),
			Country:    req.Country,
			Locality:   req.Locality,
			PostalCode: req.PostalCode,
			Role:       models.RoleUser, // registration never grants admin
			CreatedAt:  time.Now(),
		}
		if err := db.Create(&user).Error; err != nil {
			web.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to register user")
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	}
}

// POST /users/login
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			web.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			web.Fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			web.Fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
			return
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": user.ID,
			"email":   user.Email,
			"role":    string(user.Role),
			"exp":     time.Now().Add(24 * time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte(jwtSecret))
		if err != nil {
			web.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to sign token")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token": signed,
			"user": gin.H{
				"id":          user.ID,
				"email":       user.Email,
				"name":        user.Name,
				"role":        user.Role,
				"country":     user.Country,
				"locality":    user.Locality,
				"postal_code": user.PostalCode,
			},
		})
	}
}

// GET /users/profile
func GetProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				web.Fail(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
				return
			}
			web.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch profile")
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// PUT /users/profile
func UpdateProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			web.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}

		updates := make(map[string]interface{})
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Email != nil {
			updates["email"] = *req.Email
		}
		if req.Country != nil {
			updates["country"] = *req.Country
		}
		if req.Locality != nil {
			updates["locality"] = *req.Locality
		}
		if req.PostalCode != nil {
			updates["postal_code"] = *req.PostalCode
		}

		if len(updates) > 0 {
			if err := db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
				web.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update profile")
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
	}
}
