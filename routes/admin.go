package routes

import (
	"github.com/gin-gonic/gin"
	adminController "github.com/lumora-shop/lumora-api/controllers/admin"
	orderControllers "github.com/lumora-shop/lumora-api/controllers/order"
	productControllers "github.com/lumora-shop/lumora-api/controllers/product"
	"github.com/lumora-shop/lumora-api/middleware"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all "/admin/*" endpoints behind the admin
// token middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAdminToken)
	{
		// User management
		adminGroup.GET("/users", adminController.GetAllUsers(db))
		adminGroup.DELETE("/users/:id", adminController.DeleteUser(db))

		// Menu management
		menuAdmin := adminGroup.Group("/menu")
		{
			menuAdmin.POST("", productControllers.CreateProduct(db))
			menuAdmin.PUT("/:id", productControllers.UpdateProduct(db))
			menuAdmin.DELETE("/:id", productControllers.DeleteProduct(db))
			menuAdmin.GET("/export-excel", productControllers.ExportProductsToExcel(db))
		}

		// Order management
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
			orderAdmin.GET("/ws", orderControllers.OrderWebSocketHandler)
		}
	}
}
