package orderControllers

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/Guillermo-Costilla/store-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Favorite{},
	))
	return db
}

func seedProducts(t *testing.T, db *gorm.DB) (models.Product, models.Product) {
	t.Helper()
	p1 := models.Product{Name: "Mate Imperial", Category: "hogar", Price: 10, Stock: 5}
	p2 := models.Product{Name: "Yerba 1kg", Category: "almacen", Price: 5, Stock: 8}
	require.NoError(t, db.Create(&p1).Error)
	require.NoError(t, db.Create(&p2).Error)
	return p1, p2
}

var testAddress = ShippingAddress{
	Street:     "Av. Corrientes 1234",
	Locality:   "Buenos Aires",
	Region:     "CABA",
	PostalCode: "1043",
}

func TestCreateOrderSnapshotsPricesAndTotals(t *testing.T) {
	db := setupDB(t)
	p1, p2 := seedProducts(t, db)

	order, err := CreateOrder(db, 1, []OrderItemRequest{
		{ProductID: p1.ID, Quantity: 1},
		{ProductID: p2.ID, Quantity: 2},
	}, testAddress)
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, 20.0, order.Total)
	assert.Equal(t, models.PaymentUnpaid, order.PaymentStatus)
	assert.Equal(t, models.FulfillmentPending, order.FulfillmentStatus)
	assert.Empty(t, order.PaymentIntentID)

	var sum float64
	for _, item := range order.Items {
		assert.Equal(t, item.UnitPrice*float64(item.Quantity), item.Subtotal)
		sum += item.Subtotal
	}
	assert.Equal(t, order.Total, sum)

	// Catalog price changes must not leak into the snapshot.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", p1.ID).Update("price", 99).Error)

	var reloaded models.Order
	require.NoError(t, db.Preload("Items").First(&reloaded, "id = ?", order.ID).Error)
	assert.Equal(t, 20.0, reloaded.Total)
	for _, item := range reloaded.Items {
		if item.ProductID == p1.ID {
			assert.Equal(t, 10.0, item.UnitPrice)
		}
	}

	// Stock is untouched at creation time.
	var fresh models.Product
	require.NoError(t, db.First(&fresh, "id = ?", p1.ID).Error)
	assert.Equal(t, 5, fresh.Stock)
}

func TestCreateOrderProductNotFound(t *testing.T) {
	db := setupDB(t)
	seedProducts(t, db)

	_, err := CreateOrder(db, 1, []OrderItemRequest{{ProductID: 999, Quantity: 1}}, testAddress)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCreateOrderInsufficientStockPersistsNothing(t *testing.T) {
	db := setupDB(t)
	p1, p2 := seedProducts(t, db)

	_, err := CreateOrder(db, 1, []OrderItemRequest{
		{ProductID: p1.ID, Quantity: 1},
		{ProductID: p2.ID, Quantity: 100},
	}, testAddress)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	var orders, items int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderItem{}).Count(&items)
	assert.Zero(t, orders)
	assert.Zero(t, items)
}

func TestCreateOrderRejectsEmptyItemList(t *testing.T) {
	db := setupDB(t)

	_, err := CreateOrder(db, 1, nil, testAddress)
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestAttachPaymentIntentIsOneTime(t *testing.T) {
	db := setupDB(t)
	p1, _ := seedProducts(t, db)
	order, err := CreateOrder(db, 1, []OrderItemRequest{{ProductID: p1.ID, Quantity: 1}}, testAddress)
	require.NoError(t, err)

	require.NoError(t, AttachPaymentIntent(db, order.ID, "pi_123"))
	assert.ErrorIs(t, AttachPaymentIntent(db, order.ID, "pi_456"), ErrIntentAttached)

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, "id = ?", order.ID).Error)
	assert.Equal(t, "pi_123", reloaded.PaymentIntentID)

	assert.ErrorIs(t, AttachPaymentIntent(db, "missing", "pi_789"), ErrOrderNotFound)
}

func TestSetPaymentStatusIsIdempotent(t *testing.T) {
	db := setupDB(t)
	p1, _ := seedProducts(t, db)
	order, err := CreateOrder(db, 1, []OrderItemRequest{{ProductID: p1.ID, Quantity: 1}}, testAddress)
	require.NoError(t, err)

	applied, err := SetPaymentStatus(db, order.ID, models.PaymentPaid)
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = SetPaymentStatus(db, order.ID, models.PaymentPaid)
	require.NoError(t, err)
	assert.False(t, applied, "repeat of the same target must be a no-op")

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, "id = ?", order.ID).Error)
	assert.Equal(t, models.PaymentPaid, reloaded.PaymentStatus)
}

func TestSetPaymentStatusTerminalConflict(t *testing.T) {
	db := setupDB(t)
	p1, _ := seedProducts(t, db)
	order, err := CreateOrder(db, 1, []OrderItemRequest{{ProductID: p1.ID, Quantity: 1}}, testAddress)
	require.NoError(t, err)

	_, err = SetPaymentStatus(db, order.ID, models.PaymentPaid)
	require.NoError(t, err)

	_, err = SetPaymentStatus(db, order.ID, models.PaymentCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, "id = ?", order.ID).Error)
	assert.Equal(t, models.PaymentPaid, reloaded.PaymentStatus)
}

func TestSetPaymentStatusRejectsUnpaidTarget(t *testing.T) {
	db := setupDB(t)
	p1, _ := seedProducts(t, db)
	order, err := CreateOrder(db, 1, []OrderItemRequest{{ProductID: p1.ID, Quantity: 1}}, testAddress)
	require.NoError(t, err)

	_, err = SetPaymentStatus(db, order.ID, models.PaymentUnpaid)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSetPaymentStatusOrderNotFound(t *testing.T) {
	db := setupDB(t)

	_, err := SetPaymentStatus(db, "missing", models.PaymentPaid)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestSetPaymentStatusConcurrentWritersApplyOnce(t *testing.T) {
	db := setupDB(t)
	p1, _ := seedProducts(t, db)
	order, err := CreateOrder(db, 1, []OrderItemRequest{{ProductID: p1.ID, Quantity: 1}}, testAddress)
	require.NoError(t, err)

	const writers = 8
	results := make(chan bool, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			applied, err := SetPaymentStatus(db, order.ID, models.PaymentPaid)
			if err == nil {
				results <- applied
			}
		}()
	}
	wg.Wait()
	close(results)

	appliedCount := 0
	for applied := range results {
		if applied {
			appliedCount++
		}
	}
	assert.Equal(t, 1, appliedCount, "exactly one writer must win the transition")
}

func TestShippedDecrementsStockExactlyOnce(t *testing.T) {
	db := setupDB(t)
	p1, p2 := seedProducts(t, db)
	order, err := CreateOrder(db, 1, []OrderItemRequest{
		{ProductID: p1.ID, Quantity: 1},
		{ProductID: p2.ID, Quantity: 2},
	}, testAddress)
	require.NoError(t, err)

	require.NoError(t, SetFulfillmentStatus(db, order.ID, models.FulfillmentShipped))

	var fresh1, fresh2 models.Product
	require.NoError(t, db.First(&fresh1, "id = ?", p1.ID).Error)
	require.NoError(t, db.First(&fresh2, "id = ?", p2.ID).Error)
	assert.Equal(t, 4, fresh1.Stock)
	assert.Equal(t, 6, fresh2.Stock)

	// A repeat ship request must not deduct again.
	require.NoError(t, SetFulfillmentStatus(db, order.ID, models.FulfillmentShipped))
	require.NoError(t, db.First(&fresh1, "id = ?", p1.ID).Error)
	require.NoError(t, db.First(&fresh2, "id = ?", p2.ID).Error)
	assert.Equal(t, 4, fresh1.Stock)
	assert.Equal(t, 6, fresh2.Stock)
}

func TestShippedRollsBackOnPartialStockFailure(t *testing.T) {
	db := setupDB(t)
	p1, p2 := seedProducts(t, db)
	order, err := CreateOrder(db, 1, []OrderItemRequest{
		{ProductID: p1.ID, Quantity: 2},
		{ProductID: p2.ID, Quantity: 3},
	}, testAddress)
	require.NoError(t, err)

	// Another order drained the second product between placement and shipping.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", p2.ID).Update("stock", 1).Error)

	err = SetFulfillmentStatus(db, order.ID, models.FulfillmentShipped)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// The transition rolled back whole: status unchanged, first item's stock untouched.
	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, "id = ?", order.ID).Error)
	assert.Equal(t, models.FulfillmentPending, reloaded.FulfillmentStatus)

	var fresh1 models.Product
	require.NoError(t, db.First(&fresh1, "id = ?", p1.ID).Error)
	assert.Equal(t, 5, fresh1.Stock)
}

func TestSetFulfillmentStatusNotFound(t *testing.T) {
	db := setupDB(t)

	assert.ErrorIs(t, SetFulfillmentStatus(db, "missing", models.FulfillmentDelivered), ErrOrderNotFound)
	assert.ErrorIs(t, SetFulfillmentStatus(db, "missing", models.FulfillmentShipped), ErrOrderNotFound)
}
