package cartControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/lumora-shop/lumora-api/middleware"
	"github.com/lumora-shop/lumora-api/models"
	"gorm.io/gorm"
)

type CartItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type SetQuantityInput struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GET /cart
// Serves guests from the session cart and logged-in users from cart_items.
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := currentEntries(c, db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load cart items."})
			return
		}

		lines, total, err := LoadCart(db, entries)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load cart items."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": lines, "total_price": total})
	}
}

// GET /cart/count
func GetCartCount(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := currentEntries(c, db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load cart items."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart_item_count": entries.Count()})
	}
}

// POST /cart/items
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		if userID, ok := middleware.SessionUserID(c); ok {
			if err := AddItem(db, userID, input.ProductID, input.Quantity); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
				return
			}
		} else {
			session := sessions.Default(c)
			cart := GuestCartFromSession(session)
			cart.Add(input.ProductID, input.Quantity)
			if err := SaveGuestCart(session, cart); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "Item added to cart!"})
	}
}

// PUT /cart/items/:product_id
// Replaces the quantity; zero or below removes the row.
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.SessionUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please log in to access this page."})
			return
		}

		productID, err := parseProductID(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
			return
		}

		var input SetQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := SetQuantity(db, userID, productID, *input.Quantity); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart updated."})
	}
}

// DELETE /cart/items/:product_id
func RemoveCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.SessionUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please log in to access this page."})
			return
		}

		productID, err := parseProductID(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
			return
		}

		if err := RemoveItem(db, userID, productID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item from cart."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart."})
	}
}

func currentEntries(c *gin.Context, db *gorm.DB) (GuestCart, error) {
	if userID, ok := middleware.SessionUserID(c); ok {
		return UserCartEntries(db, userID)
	}
	return GuestCartFromSession(sessions.Default(c)), nil
}

func parseProductID(c *gin.Context) (uint, error) {
	id64, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	return uint(id64), err
}
