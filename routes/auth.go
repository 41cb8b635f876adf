package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/lumora-shop/lumora-api/auth"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", auth.SignupHandler(db))
		authGroup.POST("/login", auth.LoginHandler(db))
		authGroup.POST("/logout", auth.LogoutHandler())

		// Social login (google, facebook)
		authGroup.GET("/:provider", auth.SocialLoginHandler())
		authGroup.GET("/:provider/callback", auth.SocialCallbackHandler(db))

		authGroup.POST("/admin/login", auth.AdminLoginHandler())
	}
}
