package favoritesControllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/Guillermo-Costilla/store-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setup(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Favorite{}))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	fakeAuth := func(c *gin.Context) { c.Set("user_id", uint(1)) }
	r.POST("/favorites", fakeAuth, AddFavoriteHandler(db))
	r.DELETE("/favorites", fakeAuth, RemoveFavoriteHandler(db))
	r.GET("/favorites", fakeAuth, GetFavoritesHandler(db))
	return db, r
}

func do(r *gin.Engine, method string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, "/favorites", reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFavoritesAddListRemove(t *testing.T) {
	db, r := setup(t)
	product := models.Product{Name: "Mate", Price: 10, Stock: 3}
	require.NoError(t, db.Create(&product).Error)

	w := do(r, http.MethodPost, gin.H{"product_id": product.ID})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(r, http.MethodGet, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var products []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Mate", products[0].Name)

	w = do(r, http.MethodDelete, gin.H{"product_id": product.ID})
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Favorite{}).Count(&count)
	assert.Zero(t, count)
}

func TestAddFavoriteTwiceConflicts(t *testing.T) {
	db, r := setup(t)
	product := models.Product{Name: "Mate", Price: 10, Stock: 3}
	require.NoError(t, db.Create(&product).Error)

	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, gin.H{"product_id": product.ID}).Code)

	w := do(r, http.MethodPost, gin.H{"product_id": product.ID})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ALREADY_FAVORITE")
}

func TestIsDuplicate(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"translated", gorm.ErrDuplicatedKey, true},
		{"wrapped translated", fmt.Errorf("create favorite: %w", gorm.ErrDuplicatedKey), true},
		{"sqlite text", errors.New("UNIQUE constraint failed: favorites.user_id, favorites.product_id"), true},
		{"postgres text", errors.New(`ERROR: duplicate key value violates unique constraint "idx_user_product" (SQLSTATE 23505)`), true},
		{"unrelated", errors.New("connection refused"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isDuplicate(tc.err))
		})
	}
}
