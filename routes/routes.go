package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the public, user, and
// admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// Public shop routes: products, menu, contact, session-aware cart
	SetupShopRoutes(r, db)

	// User routes (session-protected)
	SetupUserRoutes(r, db)

	// Admin routes (JWT-protected)
	SetupAdminRoutes(r, db)
}
