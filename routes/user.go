package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/lumora-shop/lumora-api/auth"
	orderControllers "github.com/lumora-shop/lumora-api/controllers/order"
	userControllers "github.com/lumora-shop/lumora-api/controllers/user"
	"github.com/lumora-shop/lumora-api/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires a logged-in
// session.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.RequireLogin)
	{
		userGroup.GET("/profile", userControllers.GetProfile(db))
		userGroup.PUT("/profile", userControllers.UpdateProfile(db))
		userGroup.POST("/profile/picture", userControllers.UploadProfilePicture(db))
		userGroup.POST("/change-password", auth.ChangePasswordHandler(db))

		userGroup.POST("/checkout", orderControllers.CheckoutHandler(db))
		userGroup.GET("/orders", orderControllers.GetUserOrdersHandler(db))
		userGroup.GET("/orders/:order_id", orderControllers.GetOrderDetailHandler(db))
	}
}
