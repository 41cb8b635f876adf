package orderControllers

import (
	"errors"
	"regexp"
	"testing"

	"github.com/lumora-shop/lumora-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

// seedCheckout creates products 3 (10.00) and 5 (3.50) and the cart
// {42,3: qty 2}, {42,5: qty 1}.
func seedCheckout(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&models.Product{ID: 3, Name: "Paneer Roll", Category: "Snacks", Price: 10, Stock: 50}).Error)
	require.NoError(t, db.Create(&models.Product{ID: 5, Name: "Masala Chai", Category: "Beverages", Price: 3.5, Stock: 50}).Error)
	require.NoError(t, db.Create(&models.CartItem{UserID: 42, ProductID: 3, Quantity: 2}).Error)
	require.NoError(t, db.Create(&models.CartItem{UserID: 42, ProductID: 5, Quantity: 1}).Error)
}

func cartCount(t *testing.T, db *gorm.DB, userID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", userID).Count(&count).Error)
	return count
}

func TestPlaceOrderCreatesOrderAndClearsCart(t *testing.T) {
	db := newTestDB(t)
	seedCheckout(t, db)

	order, err := PlaceOrder(db, 42)
	require.NoError(t, err)

	assert.InDelta(t, 23.5, order.TotalAmount, 1e-9)
	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	assert.Len(t, order.Items, 2)
	assert.EqualValues(t, 0, cartCount(t, db, 42))

	var stored models.Order
	require.NoError(t, db.Preload("Items").First(&stored, order.ID).Error)
	assert.Len(t, stored.Items, 2)
	assert.InDelta(t, 23.5, stored.TotalAmount, 1e-9)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := newTestDB(t)

	_, err := PlaceOrder(db, 42)
	assert.True(t, errors.Is(err, ErrEmptyCart))

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestPlaceOrderSnapshotsPrices(t *testing.T) {
	db := newTestDB(t)
	seedCheckout(t, db)

	order, err := PlaceOrder(db, 42)
	require.NoError(t, err)

	// A later price change must not touch the stored order.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", 3).Update("price", 99.0).Error)

	var stored models.Order
	require.NoError(t, db.Preload("Items").First(&stored, order.ID).Error)
	assert.InDelta(t, 23.5, stored.TotalAmount, 1e-9)
	for _, item := range stored.Items {
		if item.ProductID == 3 {
			assert.InDelta(t, 10.0, item.Price, 1e-9)
		}
	}
}

func TestPlaceOrderSkipsDeletedProducts(t *testing.T) {
	db := newTestDB(t)
	seedCheckout(t, db)
	require.NoError(t, db.Delete(&models.Product{}, "id = ?", 5).Error)

	order, err := PlaceOrder(db, 42)
	require.NoError(t, err)

	assert.InDelta(t, 20.0, order.TotalAmount, 1e-9)
	require.Len(t, order.Items, 1)
	assert.EqualValues(t, 3, order.Items[0].ProductID)
	assert.EqualValues(t, 0, cartCount(t, db, 42))
}

func TestPlaceOrderRollsBackOnFailure(t *testing.T) {
	db := newTestDB(t)
	seedCheckout(t, db)

	// Force the order-items insert to fail mid-transaction.
	require.NoError(t, db.Migrator().DropTable(&models.OrderItem{}))

	_, err := PlaceOrder(db, 42)
	require.Error(t, err)

	assert.EqualValues(t, 2, cartCount(t, db, 42))
	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.EqualValues(t, 0, orders)
}

func TestTrackingNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^LUMORA[0-9A-F]{12}$`)
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		tracking := newTrackingNumber()
		assert.Regexp(t, pattern, tracking)
		assert.False(t, seen[tracking], "tracking numbers should not repeat")
		seen[tracking] = true
	}
}

func TestMapOrderStatus(t *testing.T) {
	status, err := mapOrderStatus("shipped")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, status)

	status, err = mapOrderStatus("Processing")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, status)

	_, err = mapOrderStatus("teleported")
	assert.Error(t, err)
}
