package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/lumora-shop/lumora-api/controllers/cart"
	contactControllers "github.com/lumora-shop/lumora-api/controllers/contact"
	productControllers "github.com/lumora-shop/lumora-api/controllers/product"
	"gorm.io/gorm"
)

// SetupShopRoutes registers the public storefront endpoints. The cart
// endpoints are session-aware: guests work against the session cart,
// logged-in users against their persisted cart.
func SetupShopRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/products", productControllers.GetProducts(db))
	r.GET("/products/:id", productControllers.GetProductByID(db))
	r.GET("/menu", productControllers.GetMenu(db))
	r.POST("/contact", contactControllers.SubmitContact(db))

	cartGroup := r.Group("/cart")
	{
		cartGroup.GET("", cartControllers.GetCart(db))
		cartGroup.GET("/count", cartControllers.GetCartCount(db))
		cartGroup.POST("/items", cartControllers.AddToCart(db))
		cartGroup.PUT("/items/:product_id", cartControllers.UpdateCartItem(db))
		cartGroup.DELETE("/items/:product_id", cartControllers.RemoveCartItem(db))
	}
}
