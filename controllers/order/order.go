package orderControllers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lumora-shop/lumora-api/models"
	"gorm.io/gorm"
)

// ErrEmptyCart is returned when checkout is attempted with an empty cart.
var ErrEmptyCart = errors.New("cart is empty")

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// -------- Helpers --------

func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case strings.ToLower(string(models.OrderStatusProcessing)):
		return models.OrderStatusProcessing, nil
	case strings.ToLower(string(models.OrderStatusShipped)):
		return models.OrderStatusShipped, nil
	case strings.ToLower(string(models.OrderStatusDelivered)):
		return models.OrderStatusDelivered, nil
	case strings.ToLower(string(models.OrderStatusCancelled)):
		return models.OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

// newTrackingNumber generates the human-facing order reference,
// e.g. LUMORA3F9A12B07C4D.
func newTrackingNumber() string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "LUMORA000000000000"
	}
	return "LUMORA" + strings.ToUpper(hex.EncodeToString(buf))
}

// -------- Core Logic --------

// PlaceOrder converts the user's persisted cart into an immutable order.
// The cart read, price re-read, order insert and cart delete all run inside
// one transaction: either the order and its items exist and the cart is
// empty, or nothing changed and the cart is intact.
//
// Prices are re-fetched from the products table at this moment; cart rows
// whose product has been deleted are excluded from the total and the order,
// and the stale cart row is removed with the rest of the cart.
func PlaceOrder(db *gorm.DB, userID uint) (*models.Order, error) {
	var placed models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		if err := tx.Where("user_id = ?", userID).Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		ids := make([]uint, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ProductID)
		}
		var products []models.Product
		if err := tx.Where("id IN ?", ids).Find(&products).Error; err != nil {
			return err
		}
		prices := make(map[uint]float64, len(products))
		for _, product := range products {
			prices[product.ID] = product.Price
		}

		var total float64
		var orderItems []models.OrderItem
		for _, item := range items {
			price, exists := prices[item.ProductID]
			if !exists {
				continue // product deleted since it was added
			}
			total += price * float64(item.Quantity)
			orderItems = append(orderItems, models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     price,
			})
		}

		placed = models.Order{
			UserID:         userID,
			Items:          orderItems,
			TotalAmount:    total,
			Status:         models.OrderStatusProcessing,
			TrackingNumber: newTrackingNumber(),
			CreatedAt:      time.Now(),
		}
		if err := tx.Create(&placed).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	broadcastNewOrder(placed)
	return &placed, nil
}

// -------- Handlers --------

// POST /user/checkout
func CheckoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		order, err := PlaceOrder(db, userID)
		if err != nil {
			if errors.Is(err, ErrEmptyCart) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while placing your order."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Order placed successfully!", "order": order})
	}
}

// GET /user/orders
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not retrieve your orders."})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /user/orders/:order_id
func GetOrderDetailHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		orderID := c.Param("order_id")

		var order models.Order
		if err := db.
			Preload("Items").
			Preload("Items.Product").
			Where("id = ? AND user_id = ?", orderID, userID).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found or you do not have permission to view it."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not retrieve the order."})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /admin/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("Items").
			Preload("Items.Product").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// PUT /admin/orders/:orderID/status
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := mapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result := db.Model(&models.Order{}).Where("id = ?", orderID).Update("status", newStatus)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}
